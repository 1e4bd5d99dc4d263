package worker_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/dfarias/fincontrol/internal/ledger"
	"github.com/dfarias/fincontrol/internal/worker"
)

func TestOverdueSweeper_SweepsUntilCancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := ledger.NewMockRepository(ctrl)
	repo.EXPECT().
		MarkOverdue(gomock.Any(), gomock.Any()).
		Return(int64(2), nil).
		MinTimes(2)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})

	sweeper := worker.NewOverdueSweeper(ledger.NewService(repo), 10*time.Millisecond)

	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancellation")
	}
}
