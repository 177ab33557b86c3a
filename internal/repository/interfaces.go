package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/orchids/social-analytics/internal/domain"
)

type MetricRepository interface {
	FetchRecords(ctx context.Context, userID uuid.UUID, platform domain.Platform, tr domain.TimeRange) ([]domain.MetricRecord, error)
}

type SnapshotRepository interface {
	FetchSnapshot(ctx context.Context, userID uuid.UUID) (*domain.ECommerceSnapshot, error)
}

type ReportRunRepository interface {
	CreateRun(ctx context.Context, run *domain.ReportRun) error
	ListRuns(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.ReportRun, int64, error)
}
