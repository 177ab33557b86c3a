package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// UsageTracker counts report requests per user in redis. The counters
// feed the admin usage endpoint; they are best-effort and never block
// report generation.
type UsageTracker struct {
	redis *redis.Client
}

func NewUsageTracker(redisClient *redis.Client) *UsageTracker {
	return &UsageTracker{redis: redisClient}
}

func (t *UsageTracker) RecordReportRequest(ctx context.Context, userID uuid.UUID) error {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, now.Location())

	pipe := t.redis.Pipeline()

	pipe.Incr(ctx, fmt.Sprintf("reports:requests:%s:total", userID))

	todayKey := fmt.Sprintf("reports:requests:%s:today", userID)
	pipe.Incr(ctx, todayKey)
	pipe.ExpireAt(ctx, todayKey, midnight)

	hourKey := fmt.Sprintf("reports:requests:%s:hour", userID)
	pipe.Incr(ctx, hourKey)
	pipe.Expire(ctx, hourKey, 1*time.Hour)

	activeKey := "reports:active_users"
	pipe.ZAdd(ctx, activeKey, redis.Z{
		Score:  float64(now.Unix()),
		Member: userID.String(),
	})

	fifteenMinutesAgo := now.Add(-15 * time.Minute).Unix()
	pipe.ZRemRangeByScore(ctx, activeKey, "0", fmt.Sprintf("%d", fifteenMinutesAgo))

	_, err := pipe.Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update usage counters: %w", err)
	}

	return nil
}

func (t *UsageTracker) GetTodayRequests(ctx context.Context, userID uuid.UUID) (int64, error) {
	todayKey := fmt.Sprintf("reports:requests:%s:today", userID)
	count, err := t.redis.Get(ctx, todayKey).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get today's request count: %w", err)
	}
	return count, nil
}

func (t *UsageTracker) GetActiveUsers(ctx context.Context) (int64, error) {
	fifteenMinutesAgo := time.Now().Add(-15 * time.Minute).Unix()

	count, err := t.redis.ZCount(ctx, "reports:active_users", fmt.Sprintf("%d", fifteenMinutesAgo), "+inf").Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count active users: %w", err)
	}

	return count, nil
}
