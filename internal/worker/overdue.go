// Package worker runs the background jobs of the ledger. The only job
// today is the overdue sweep: entries never flip to VENCIDO on read,
// the sweep is the single writer of that transition.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/dfarias/fincontrol/internal/ledger"
)

type OverdueSweeper struct {
	svc      *ledger.Service
	interval time.Duration
}

func NewOverdueSweeper(svc *ledger.Service, interval time.Duration) *OverdueSweeper {
	return &OverdueSweeper{svc: svc, interval: interval}
}

// Run sweeps immediately, then on every tick until ctx is cancelled.
func (w *OverdueSweeper) Run(ctx context.Context) {
	w.sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("overdue sweeper stopped")
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *OverdueSweeper) sweep(ctx context.Context) {
	n, err := w.svc.MarkOverdue(ctx, time.Now())
	if err != nil {
		slog.Error("overdue sweep failed", "error", err)
		return
	}

	if n > 0 {
		slog.Info("marked entries overdue", "count", n)
	}
}
