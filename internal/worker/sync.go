// SPDX-License-Identifier: AGPL-3.0-only
package worker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/fluffyriot/postview/internal/fetcher"
	"github.com/fluffyriot/postview/internal/normalize"
)

const maxFeedPages = 50

// Source is the part of the content service the worker reads from.
type Source interface {
	FetchFeed(ctx context.Context, page, pageSize int) (fetcher.Page, error)
	FetchMyPosts(ctx context.Context) ([]normalize.RawPost, error)
	Me(ctx context.Context) (fetcher.User, error)
}

// RunSync refreshes every source concurrently and stores the results.
func (w *Worker) RunSync(ctx context.Context) {
	w.Logger.Info("Worker: Starting sync")

	var wg sync.WaitGroup
	for name, fn := range map[string]func(context.Context) (Entry, error){
		SourceFeed: w.syncFeed,
		SourceMine: w.syncMine,
	} {
		name, fn := name, fn // per-iteration copy (go < 1.22 loop semantics)
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.syncSource(ctx, name, fn)
		}()
	}
	wg.Wait()

	w.Logger.Info("Worker: Completed sync")
}

func (w *Worker) syncSource(ctx context.Context, name string, fn func(context.Context) (Entry, error)) {
	defer func() {
		if r := recover(); r != nil {
			w.Logger.Error("Worker: Panic in source sync", "source", name, "panic", r)
			w.Snapshot.Fail(name, fmt.Errorf("panic: %v", r), time.Now())
		}
	}()

	entry, err := fn(ctx)
	if errors.Is(err, errSkipped) {
		w.Logger.Debug("Worker: Source skipped", "source", name)
		return
	}
	if err != nil {
		w.Logger.Error("Worker: Source sync failed", "source", name, "err", err)
		w.Snapshot.Fail(name, err, time.Now())
		return
	}

	w.Snapshot.Put(name, entry)
	w.Logger.Info("Worker: Source synced", "source", name, "posts", len(entry.Posts), "total", entry.Total)
}

var errSkipped = errors.New("source skipped")

func (w *Worker) syncFeed(ctx context.Context) (Entry, error) {
	pageSize := w.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	var raw []normalize.RawPost
	total := 0

	for page := 1; page <= maxFeedPages; page++ {
		p, err := w.Source.FetchFeed(ctx, page, pageSize)
		if err != nil {
			return Entry{}, fmt.Errorf("page %d: %w", page, err)
		}

		raw = append(raw, p.Posts...)
		total = p.Total

		if len(p.Posts) < pageSize || (total > 0 && len(raw) >= total) {
			break
		}
	}

	posts, err := w.Normalizer.PostsParallel(ctx, raw, w.FallbackAvatar, w.Workers)
	if err != nil {
		return Entry{}, err
	}

	return Entry{Posts: posts, Total: total, SyncedAt: time.Now()}, nil
}

// syncMine needs a logged in session; anonymous runs skip it.
func (w *Worker) syncMine(ctx context.Context) (Entry, error) {
	me, err := w.Source.Me(ctx)
	if isUnauthorized(err) {
		return Entry{}, errSkipped
	}
	if err != nil {
		return Entry{}, err
	}

	raw, err := w.Source.FetchMyPosts(ctx)
	if err != nil {
		return Entry{}, err
	}

	fallback := me.Avatar
	if fallback == "" {
		fallback = w.FallbackAvatar
	}

	posts := w.Normalizer.Posts(raw, w.Normalizer.URL(fallback))
	return Entry{Posts: posts, Total: len(posts), SyncedAt: time.Now()}, nil
}

func isUnauthorized(err error) bool {
	var statusErr *fetcher.StatusError
	if !errors.As(err, &statusErr) {
		return false
	}
	return statusErr.Status == http.StatusUnauthorized || statusErr.Status == http.StatusForbidden
}
