package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"shnoor_lms/internal/common"
	"shnoor_lms/internal/domain/model"
	"shnoor_lms/internal/domain/repository"

	"github.com/redis/go-redis/v9"
)

type LeaderboardService struct {
	submissionRepo repository.SubmissionRepository
	rdb            *redis.Client
	queueName      string
	cacheTTL       time.Duration
}

func NewLeaderboardService(
	submissionRepo repository.SubmissionRepository,
	rdb *redis.Client,
	queueName string,
	cacheTTL time.Duration,
) *LeaderboardService {
	return &LeaderboardService{
		submissionRepo: submissionRepo,
		rdb:            rdb,
		queueName:      queueName,
		cacheTTL:       cacheTTL,
	}
}

func leaderboardCacheKey(contestID string) string {
	return "contest:leaderboard:" + contestID
}

// Get serves the standings from the redis cache when present, otherwise
// computes them from the store and fills the cache.
func (s *LeaderboardService) Get(ctx context.Context, contestID string) ([]model.LeaderboardEntry, error) {
	cached, err := s.rdb.Get(ctx, leaderboardCacheKey(contestID)).Result()
	if err == nil {
		var entries []model.LeaderboardEntry
		if err := json.Unmarshal([]byte(cached), &entries); err == nil {
			return entries, nil
		}
		// Corrupt cache entry; fall through and rebuild.
	}

	return s.Rebuild(ctx, contestID)
}

// Rebuild recomputes a contest's standings and overwrites the cached copy.
// Called by the worker after each submission and on cache misses.
func (s *LeaderboardService) Rebuild(ctx context.Context, contestID string) ([]model.LeaderboardEntry, error) {
	entries, err := s.submissionRepo.BestByStudent(ctx, contestID)
	if err != nil {
		return nil, common.Errorf("failed to compute leaderboard: %w", err)
	}

	rankEntries(entries)

	payload, err := json.Marshal(entries)
	if err != nil {
		return nil, common.Errorf("failed to marshal leaderboard: %w", err)
	}
	if err := s.rdb.Set(ctx, leaderboardCacheKey(contestID), payload, s.cacheTTL).Err(); err != nil {
		// Cache write failure must not hide a computed result.
		return entries, nil
	}
	return entries, nil
}

// rankEntries orders standings by best score, ties broken by the earlier
// submission, and assigns 1-based ranks.
func rankEntries(entries []model.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].SubmittedAt.Before(entries[j].SubmittedAt)
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// EnqueueRebuild pushes the contest ID onto the rebuild queue consumed by
// the leaderboard worker.
func (s *LeaderboardService) EnqueueRebuild(ctx context.Context, contestID string) error {
	return s.rdb.LPush(ctx, s.queueName, contestID).Err()
}
