package workers

import (
	"context"
	"liftotron/domain"
	"liftotron/observability"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

func TestHeartbeatWorker_PublishesAttendanceGauges(t *testing.T) {
	req := require.New(t)
	tracker := domain.NewTracker([]int64{1, 2, 3})
	tracker.RecordGreeting(lo.ToPtr[int64](1), nil)

	worker := NewHeartbeatWorker(slog.Default(), tracker, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- worker.Run(ctx) }()

	req.Eventually(func() bool {
		return testutil.ToFloat64(observability.RosterSize) == 3 &&
			testutil.ToFloat64(observability.GreetedSize) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	req.ErrorIs(<-done, context.Canceled)
}
