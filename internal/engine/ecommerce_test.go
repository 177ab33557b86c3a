package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchids/social-analytics/internal/domain"
)

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func TestDeriveCommerceMetrics_NilSnapshot(t *testing.T) {
	metrics := DeriveCommerceMetrics(nil)

	assert.Nil(t, metrics.ROI)
	assert.Nil(t, metrics.ConversionRate)
	assert.Nil(t, metrics.AverageOrderValue)
	assert.Nil(t, metrics.CustomerAcquisition)
	assert.Nil(t, metrics.ClickThroughRate)
	assert.Nil(t, metrics.CostPerClick)
	assert.Nil(t, metrics.CostPerAcquisition)
	assert.Nil(t, metrics.CartConversionRate)
	assert.Nil(t, metrics.TopProductRevenueShare)
}

func TestDeriveCommerceMetrics_ROIFromAttributedRevenue(t *testing.T) {
	metrics := DeriveCommerceMetrics(&domain.ECommerceSnapshot{
		AttributedRevenue: f64(1500),
		Campaign:          &domain.CampaignData{Name: "spring", Spend: 1000},
	})

	require.NotNil(t, metrics.ROI)
	assert.Equal(t, 50.0, *metrics.ROI)
}

func TestDeriveCommerceMetrics_ROIFallsBackToROAS(t *testing.T) {
	metrics := DeriveCommerceMetrics(&domain.ECommerceSnapshot{
		ReturnOnAdSpend: f64(3.456),
	})

	require.NotNil(t, metrics.ROI)
	assert.Equal(t, 3.46, *metrics.ROI)
}

func TestDeriveCommerceMetrics_ROIOmittedWithZeroSpend(t *testing.T) {
	metrics := DeriveCommerceMetrics(&domain.ECommerceSnapshot{
		AttributedRevenue: f64(1500),
		Campaign:          &domain.CampaignData{Name: "organic", Spend: 0},
	})

	assert.Nil(t, metrics.ROI)
}

func TestDeriveCommerceMetrics_ConversionRatePrefersDirectValue(t *testing.T) {
	metrics := DeriveCommerceMetrics(&domain.ECommerceSnapshot{
		ConversionRate: f64(0.12344),
		TotalOrders:    i64(1),
		ProductViews:   i64(1000),
	})

	require.NotNil(t, metrics.ConversionRate)
	assert.Equal(t, 0.1234, *metrics.ConversionRate)
}

func TestDeriveCommerceMetrics_ConversionRateDerived(t *testing.T) {
	metrics := DeriveCommerceMetrics(&domain.ECommerceSnapshot{
		TotalOrders:  i64(30),
		ProductViews: i64(900),
	})

	require.NotNil(t, metrics.ConversionRate)
	assert.InDelta(t, 0.0333, *metrics.ConversionRate, 1e-9)
}

func TestDeriveCommerceMetrics_AOVComputedFromTotals(t *testing.T) {
	metrics := DeriveCommerceMetrics(&domain.ECommerceSnapshot{
		TotalRevenue: f64(1000),
		TotalOrders:  i64(20),
		// The direct value loses to the computed one.
		AverageOrderValue: f64(99),
	})

	require.NotNil(t, metrics.AverageOrderValue)
	assert.Equal(t, 50.0, *metrics.AverageOrderValue)
}

func TestDeriveCommerceMetrics_AOVDirectWhenOrdersMissing(t *testing.T) {
	metrics := DeriveCommerceMetrics(&domain.ECommerceSnapshot{
		TotalRevenue:      f64(1000),
		AverageOrderValue: f64(42.424),
	})

	require.NotNil(t, metrics.AverageOrderValue)
	assert.Equal(t, 42.42, *metrics.AverageOrderValue)
}

func TestDeriveCommerceMetrics_ZeroOrdersOmitsRatios(t *testing.T) {
	metrics := DeriveCommerceMetrics(&domain.ECommerceSnapshot{
		TotalRevenue: f64(1000),
		TotalOrders:  i64(0),
		Campaign:     &domain.CampaignData{Spend: 500},
	})

	// Zero orders is not a zero AOV: the metric is absent.
	assert.Nil(t, metrics.AverageOrderValue)
	assert.Nil(t, metrics.CostPerAcquisition)
	assert.Nil(t, metrics.CustomerAcquisition)
}

func TestDeriveCommerceMetrics_ClickMetrics(t *testing.T) {
	metrics := DeriveCommerceMetrics(&domain.ECommerceSnapshot{
		Clicks:      i64(250),
		Impressions: i64(10000),
		Campaign:    &domain.CampaignData{Spend: 500},
	})

	require.NotNil(t, metrics.ClickThroughRate)
	assert.Equal(t, 0.025, *metrics.ClickThroughRate)

	require.NotNil(t, metrics.CostPerClick)
	assert.Equal(t, 2.0, *metrics.CostPerClick)
}

func TestDeriveCommerceMetrics_CartConversion(t *testing.T) {
	metrics := DeriveCommerceMetrics(&domain.ECommerceSnapshot{
		TotalOrders:   i64(40),
		CartAdditions: i64(160),
	})

	require.NotNil(t, metrics.CartConversionRate)
	assert.Equal(t, 0.25, *metrics.CartConversionRate)
}

func TestDeriveCommerceMetrics_TopProductRevenueShare(t *testing.T) {
	metrics := DeriveCommerceMetrics(&domain.ECommerceSnapshot{
		TotalRevenue: f64(2000),
		TopProducts: []domain.TopProduct{
			{ProductID: "p1", Revenue: 600},
			{ProductID: "p2", Revenue: 400},
		},
	})

	require.NotNil(t, metrics.TopProductRevenueShare)
	assert.Equal(t, 0.5, *metrics.TopProductRevenueShare)
}

func TestDeriveCommerceMetrics_CurrencyRoundedToCents(t *testing.T) {
	metrics := DeriveCommerceMetrics(&domain.ECommerceSnapshot{
		TotalRevenue: f64(100),
		TotalOrders:  i64(3),
	})

	require.NotNil(t, metrics.AverageOrderValue)
	assert.Equal(t, 33.33, *metrics.AverageOrderValue)
}
