package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orchids/social-analytics/internal/domain"
)

type ReportRunRepository struct {
	db *pgxpool.Pool
}

func NewReportRunRepository(db *pgxpool.Pool) *ReportRunRepository {
	return &ReportRunRepository{db: db}
}

func (r *ReportRunRepository) CreateRun(ctx context.Context, run *domain.ReportRun) error {
	query := `
	INSERT INTO report_runs (
		id, user_id, platform, range_start, range_end, success,
		warning_count, record_count, growth_source, correlation_id,
		duration_ms, created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		run.ID,
		run.UserID,
		string(run.Platform),
		run.RangeStart,
		run.RangeEnd,
		run.Success,
		run.WarningCount,
		run.RecordCount,
		run.GrowthSource,
		run.CorrelationID,
		run.DurationMs,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %s", domain.ErrDatabaseError, err.Error())
	}

	return nil
}

func (r *ReportRunRepository) ListRuns(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.ReportRun, int64, error) {
	var total int64
	countQuery := `SELECT COUNT(*) FROM report_runs WHERE user_id = $1`
	if err := r.db.QueryRow(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrDatabaseError, err.Error())
	}

	query := `
	SELECT
		id, user_id, platform, range_start, range_end, success,
		warning_count, record_count, growth_source, correlation_id,
		duration_ms, created_at
	FROM report_runs
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrDatabaseError, err.Error())
	}
	defer rows.Close()

	var runs []*domain.ReportRun
	for rows.Next() {
		run := &domain.ReportRun{}
		var platformValue string
		err := rows.Scan(
			&run.ID,
			&run.UserID,
			&platformValue,
			&run.RangeStart,
			&run.RangeEnd,
			&run.Success,
			&run.WarningCount,
			&run.RecordCount,
			&run.GrowthSource,
			&run.CorrelationID,
			&run.DurationMs,
			&run.CreatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s", domain.ErrDatabaseError, err.Error())
		}
		run.Platform = domain.Platform(platformValue)
		runs = append(runs, run)
	}

	return runs, total, rows.Err()
}
