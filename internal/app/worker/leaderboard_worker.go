package worker

import (
	"context"
	"errors"
	"log"
	"time"

	"shnoor_lms/internal/app/service"

	"github.com/redis/go-redis/v9"
)

// LeaderboardWorker drains the rebuild queue and refreshes cached standings
// after each submission. One rebuild per queued contest ID; duplicates are
// harmless since a rebuild is idempotent.
type LeaderboardWorker struct {
	rdb         *redis.Client
	leaderboard *service.LeaderboardService
	queueName   string
}

func NewLeaderboardWorker(rdb *redis.Client, leaderboard *service.LeaderboardService, queueName string) *LeaderboardWorker {
	return &LeaderboardWorker{
		rdb:         rdb,
		leaderboard: leaderboard,
		queueName:   queueName,
	}
}

func (w *LeaderboardWorker) Start(ctx context.Context) {
	log.Println("Leaderboard worker started, listening to queue:", w.queueName)
	for {
		select {
		case <-ctx.Done():
			log.Println("Leaderboard worker stopping...")
			return
		default:
			// Blocking pop from Redis queue
			result, err := w.rdb.BRPop(ctx, 0*time.Second, w.queueName).Result()
			if err != nil {
				if ctx.Err() != nil {
					log.Println("Leaderboard worker stopping...")
					return
				}
				if errors.Is(err, redis.Nil) {
					continue
				}
				log.Printf("ERROR: Failed to BRPop from Redis queue '%s': %v", w.queueName, err)
				time.Sleep(5 * time.Second)
				continue
			}

			// result is an array: [queueName, value]
			if len(result) < 2 || result[1] == "" {
				log.Println("WARN: BRPop returned empty contest ID.")
				continue
			}
			contestID := result[1]

			if _, err := w.leaderboard.Rebuild(ctx, contestID); err != nil {
				log.Printf("ERROR: Failed to rebuild leaderboard for contest %s: %v", contestID, err)
				continue
			}
			log.Printf("Leaderboard rebuilt for contest %s", contestID)
		}
	}
}
