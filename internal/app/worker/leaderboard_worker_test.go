package worker

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestStartReturnsPromptlyOnCancel(t *testing.T) {
	// Nothing listens on this address; the cancelled context must stop the
	// loop before any retry sleep.
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer rdb.Close()
	w := NewLeaderboardWorker(rdb, nil, "standings_test_queue")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("worker did not stop after context cancellation")
	}
}
