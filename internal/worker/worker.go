// SPDX-License-Identifier: AGPL-3.0-only
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fluffyriot/postview/internal/logging"
	"github.com/fluffyriot/postview/internal/normalize"
)

type Worker struct {
	Source         Source
	Normalizer     *normalize.Normalizer
	Snapshot       *Snapshot
	Logger         *log.Logger
	PageSize       int
	FallbackAvatar string
	Workers        int
	Ticker         *time.Ticker
	StopChan       chan bool
	mu             sync.Mutex
	running        bool
	active         bool
}

func NewWorker(src Source, n *normalize.Normalizer, snap *Snapshot, logger *log.Logger) *Worker {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Worker{
		Source:     src,
		Normalizer: n,
		Snapshot:   snap,
		Logger:     logger,
		Workers:    4,
		StopChan:   make(chan bool),
	}
}

func (w *Worker) Start(interval time.Duration) {
	w.mu.Lock()
	if w.active {
		w.mu.Unlock()
		w.Logger.Warn("Worker: Scheduler already active, use Restart to change interval")
		return
	}
	w.active = true
	w.mu.Unlock()

	w.Ticker = time.NewTicker(interval)
	go func() {
		defer func() {
			w.mu.Lock()
			w.active = false
			w.mu.Unlock()
		}()
		for {
			select {
			case <-w.Ticker.C:
				w.SyncAll()
			case <-w.StopChan:
				w.Ticker.Stop()
				return
			}
		}
	}()
	w.Logger.Info("Background worker started", "interval", interval)
}

func (w *Worker) Stop() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		w.Logger.Warn("Worker: Scheduler not active")
		return
	}
	w.mu.Unlock()

	w.StopChan <- true
	w.Logger.Info("Background worker stopped")
}

func (w *Worker) Restart(interval time.Duration) {
	w.mu.Lock()
	isActive := w.active
	w.mu.Unlock()

	if isActive {
		w.Stop()
		time.Sleep(100 * time.Millisecond)
	}
	w.Start(interval)
}

func (w *Worker) IsActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

func (w *Worker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

// SyncAll runs one sync unless another one is still in flight. It reports
// whether a sync actually ran.
func (w *Worker) SyncAll() bool {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		w.Logger.Info("Worker: Sync already in progress, skipping...")
		return false
	}
	w.running = true
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
	}()

	w.RunSync(context.Background())
	return true
}
