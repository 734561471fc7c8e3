// internal/app/system/workers/overduesweep.go
package workers

import (
	"context"
	"sync"
	"time"

	"github.com/rent360/rent360/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// OverdueMarker is the store side of the sweep.
type OverdueMarker interface {
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

// OverdueSweep is a background worker that moves unpaid payments past their
// due date to overdue.
type OverdueSweep struct {
	marker   OverdueMarker
	log      *zap.Logger
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewOverdueSweep creates a sweep that runs every interval once started.
func NewOverdueSweep(marker OverdueMarker, logger *zap.Logger, interval time.Duration) *OverdueSweep {
	return &OverdueSweep{
		marker:   marker,
		log:      logger,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one sweep right away and then one per interval until Stop.
func (w *OverdueSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("overdue sweep worker started", zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish. It is safe to
// call more than once.
func (w *OverdueSweep) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("overdue sweep worker stopped")
	})
}

func (w *OverdueSweep) run() {
	defer w.wg.Done()

	w.Sweep()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep runs one pass. Errors are logged; the next tick tries again.
func (w *OverdueSweep) Sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Medium())
	defer cancel()

	count, err := w.marker.MarkOverdue(ctx, w.now())
	if err != nil {
		w.log.Error("overdue sweep failed", zap.Error(err))
		return
	}
	if count > 0 {
		w.log.Info("payments marked overdue", zap.Int64("count", count))
	}
}
