package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/orchids/social-analytics/pkg/logger"
)

type QueueClient struct {
	client *asynq.Client
	logger *logger.Logger
}

func NewQueueClient(redisAddr string, logger *logger.Logger) *QueueClient {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	return &QueueClient{
		client: client,
		logger: logger,
	}
}

func (q *QueueClient) Close() error {
	return q.client.Close()
}

func (q *QueueClient) EnqueueReportGeneration(ctx context.Context, payload ReportGenerationPayload) error {
	task, err := NewReportGenerationTask(payload)
	if err != nil {
		q.logger.Error(ctx, "failed to create report generation task", err, map[string]interface{}{
			"user_id":  payload.UserID,
			"platform": payload.Platform,
		})
		return fmt.Errorf("failed to create task: %w", err)
	}

	opts := []asynq.Option{
		asynq.MaxRetry(3),
		asynq.Timeout(10 * time.Minute),
		asynq.Queue(getQueueName(payload.Priority)),
	}

	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		q.logger.Error(ctx, "failed to enqueue report generation task", err, map[string]interface{}{
			"user_id":  payload.UserID,
			"platform": payload.Platform,
		})
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	q.logger.Info(ctx, "report generation task enqueued", map[string]interface{}{
		"user_id":  payload.UserID,
		"platform": payload.Platform,
		"task_id":  info.ID,
		"queue":    info.Queue,
	})

	return nil
}

func (q *QueueClient) EnqueueCacheWarmup(ctx context.Context, payload CacheWarmupPayload) error {
	task, err := NewCacheWarmupTask(payload)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	opts := []asynq.Option{
		asynq.MaxRetry(1),
		asynq.Timeout(5 * time.Minute),
		asynq.Queue("low"),
	}

	info, err := q.client.EnqueueContext(ctx, task, opts...)
	if err != nil {
		q.logger.Error(ctx, "failed to enqueue cache warmup task", err, map[string]interface{}{
			"user_id": payload.UserID,
		})
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	q.logger.Info(ctx, "cache warmup task enqueued", map[string]interface{}{
		"user_id": payload.UserID,
		"task_id": info.ID,
	})

	return nil
}

func getQueueName(priority int) string {
	if priority >= 2 {
		return "critical"
	} else if priority <= -1 {
		return "low"
	}
	return "default"
}
