// SPDX-License-Identifier: AGPL-3.0-only
package worker

import (
	"sync"
	"time"

	"github.com/fluffyriot/postview/internal/normalize"
)

const (
	SourceFeed = "feed"
	SourceMine = "mine"
)

type Entry struct {
	Posts    []normalize.Post
	Total    int
	SyncedAt time.Time
	Err      string
}

// Snapshot holds the last normalized result per source. Readers get their
// own copy of the post slice; the posts themselves are never mutated after
// they are stored.
type Snapshot struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewSnapshot() *Snapshot {
	return &Snapshot{entries: make(map[string]Entry)}
}

func (s *Snapshot) Put(source string, e Entry) {
	s.mu.Lock()
	s.entries[source] = e
	s.mu.Unlock()
}

// Fail records a sync error without dropping the last good posts.
func (s *Snapshot) Fail(source string, err error, at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := s.entries[source]
	e.Err = err.Error()
	e.SyncedAt = at
	s.entries[source] = e
}

func (s *Snapshot) Get(source string) (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[source]
	if !ok {
		return Entry{}, false
	}
	e.Posts = append([]normalize.Post(nil), e.Posts...)
	return e, true
}

// Find looks a post up by id across all sources.
func (s *Snapshot) Find(id string) (normalize.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, source := range []string{SourceFeed, SourceMine} {
		for _, p := range s.entries[source].Posts {
			if p.ID() == id {
				return p, true
			}
		}
	}
	return nil, false
}
