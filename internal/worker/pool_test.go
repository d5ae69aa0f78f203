package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/qs3c/salon_go_server/internal/pkg/queue"
	"github.com/qs3c/salon_go_server/internal/testutil"
)

func TestPool_DrainsQueue(t *testing.T) {
	client, _, cleanup := testutil.SetupTestRedis(t)
	defer cleanup()

	q := queue.NewQueue(client, "test_notifications")
	mailer := &fakeMailer{}
	pool := NewPool(q, NewProcessor(mailer, q, 0), 2)
	pool.timeout = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		pool.Run(ctx)
		close(done)
	}()

	for i := 0; i < 3; i++ {
		msg := message(queue.KindAppointmentCreated)
		msg.AppointmentID = int64(i + 1)
		require.NoError(t, q.Push(context.Background(), msg))
	}

	require.Eventually(t, func() bool { return mailer.count() == 3 }, 3*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("pool did not stop")
	}
}
