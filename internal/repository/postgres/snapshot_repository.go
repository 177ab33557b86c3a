package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/orchids/social-analytics/internal/domain"
)

type SnapshotRepository struct {
	db *pgxpool.Pool
}

func NewSnapshotRepository(db *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// FetchSnapshot loads the most recent e-commerce snapshot for the
// user. Every column is nullable: absent figures stay nil so the
// deriver can tell "not tracked" apart from zero. No snapshot at all
// is a normal case and returns nil, nil.
func (r *SnapshotRepository) FetchSnapshot(ctx context.Context, userID uuid.UUID) (*domain.ECommerceSnapshot, error) {
	query := `
	SELECT
		id,
		total_revenue,
		attributed_revenue,
		total_orders,
		product_views,
		cart_additions,
		clicks,
		impressions,
		conversion_rate,
		average_order_value,
		acquisition_cost,
		click_through_rate,
		return_on_ad_spend,
		campaign_name,
		campaign_spend
	FROM ecommerce_snapshots
	WHERE user_id = $1
	ORDER BY captured_at DESC
	LIMIT 1
	`

	var (
		snapshotID    uuid.UUID
		snap          domain.ECommerceSnapshot
		campaignName  sql.NullString
		campaignSpend sql.NullFloat64
	)

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&snapshotID,
		&snap.TotalRevenue,
		&snap.AttributedRevenue,
		&snap.TotalOrders,
		&snap.ProductViews,
		&snap.CartAdditions,
		&snap.Clicks,
		&snap.Impressions,
		&snap.ConversionRate,
		&snap.AverageOrderValue,
		&snap.AcquisitionCost,
		&snap.ClickThroughRate,
		&snap.ReturnOnAdSpend,
		&campaignName,
		&campaignSpend,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDatabaseError, err.Error())
	}

	if campaignSpend.Valid {
		snap.Campaign = &domain.CampaignData{
			Name:  campaignName.String,
			Spend: campaignSpend.Float64,
		}
	}

	products, err := r.fetchTopProducts(ctx, snapshotID)
	if err == nil {
		snap.TopProducts = products
	}

	return &snap, nil
}

func (r *SnapshotRepository) fetchTopProducts(ctx context.Context, snapshotID uuid.UUID) ([]domain.TopProduct, error) {
	query := `
	SELECT product_id, name, units, revenue
	FROM snapshot_top_products
	WHERE snapshot_id = $1
	ORDER BY revenue DESC
	LIMIT 10
	`

	rows, err := r.db.Query(ctx, query, snapshotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []domain.TopProduct
	for rows.Next() {
		var p domain.TopProduct
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Units, &p.Revenue); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}
