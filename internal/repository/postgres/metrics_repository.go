package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orchids/social-analytics/internal/domain"
)

type MetricRepository struct {
	db *pgxpool.Pool
}

func NewMetricRepository(db *pgxpool.Pool) *MetricRepository {
	return &MetricRepository{db: db}
}

// FetchRecords returns the per-post metric rows for one user and
// platform inside the range, ordered ascending by publish time. The
// engine depends on that ordering for its trend series.
func (r *MetricRepository) FetchRecords(ctx context.Context, userID uuid.UUID, platform domain.Platform, tr domain.TimeRange) ([]domain.MetricRecord, error) {
	query := `
	SELECT
		external_id,
		title,
		published_at,
		like_count,
		comment_count,
		share_count,
		view_count,
		COALESCE(tags, '{}'),
		platform
	FROM post_metrics
	WHERE user_id = $1
		AND platform = $2
		AND published_at >= $3
		AND published_at <= $4
	ORDER BY published_at ASC
	`

	rows, err := r.db.Query(ctx, query, userID, string(platform), tr.Start, tr.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDatabaseError, err.Error())
	}
	defer rows.Close()

	var records []domain.MetricRecord
	for rows.Next() {
		var rec domain.MetricRecord
		var platformValue string
		err := rows.Scan(
			&rec.ID,
			&rec.Title,
			&rec.PublishedAt,
			&rec.LikeCount,
			&rec.CommentCount,
			&rec.ShareCount,
			&rec.ViewCount,
			&rec.Tags,
			&platformValue,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrMalformedRecord, err.Error())
		}
		rec.Platform = domain.Platform(platformValue)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDatabaseError, err.Error())
	}

	return records, nil
}
