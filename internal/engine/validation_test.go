package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchids/social-analytics/internal/domain"
)

func TestValidateTimeRange_AcceptsBothLayouts(t *testing.T) {
	var gate ValidationGate

	tr, err := gate.ValidateTimeRange("2026-01-01", "2026-01-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), tr.Start)
	assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), tr.End)

	tr, err = gate.ValidateTimeRange("2026-01-01T08:30:00Z", "2026-01-02T08:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, tr.Duration())
}

func TestValidateTimeRange_UnparseableInputsReportPerField(t *testing.T) {
	var gate ValidationGate

	_, err := gate.ValidateTimeRange("not-a-date", "also-not-a-date")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTimeRange))

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Contains(t, vErr.FieldErrors, "start_date")
	assert.Contains(t, vErr.FieldErrors, "end_date")
}

func TestValidateTimeRange_SingleBadField(t *testing.T) {
	var gate ValidationGate

	_, err := gate.ValidateTimeRange("2026-01-01", "garbage")
	require.Error(t, err)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.NotContains(t, vErr.FieldErrors, "start_date")
	assert.Contains(t, vErr.FieldErrors, "end_date")
}

func TestValidateTimeRange_StartAfterEndIsFatal(t *testing.T) {
	var gate ValidationGate

	_, err := gate.ValidateTimeRange("2026-02-01", "2026-01-01")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidTimeRange))

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Equal(t, "must not be after end_date", vErr.FieldErrors["start_date"])
}

func TestValidateTimeRange_EqualBoundsAllowed(t *testing.T) {
	var gate ValidationGate

	_, err := gate.ValidateTimeRange("2026-01-15", "2026-01-15")
	assert.NoError(t, err)
}

func TestValidateSnapshot_NilSnapshot(t *testing.T) {
	var gate ValidationGate

	snap, warnings := gate.ValidateSnapshot(nil)
	assert.Nil(t, snap)
	assert.Empty(t, warnings)
}

func TestValidateSnapshot_NegativeCounterDropsSnapshot(t *testing.T) {
	var gate ValidationGate

	revenue := -100.0
	snap, warnings := gate.ValidateSnapshot(&domain.ECommerceSnapshot{
		TotalRevenue: &revenue,
	})

	assert.Nil(t, snap)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "negative total revenue")
}

func TestValidateSnapshot_NegativeCampaignSpendDropsSnapshot(t *testing.T) {
	var gate ValidationGate

	snap, warnings := gate.ValidateSnapshot(&domain.ECommerceSnapshot{
		Campaign: &domain.CampaignData{Name: "spring", Spend: -50},
	})

	assert.Nil(t, snap)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "negative campaign spend")
}

func TestValidateSnapshot_HighConversionRateIsAdvisory(t *testing.T) {
	var gate ValidationGate

	rate := 0.35
	input := &domain.ECommerceSnapshot{ConversionRate: &rate}
	snap, warnings := gate.ValidateSnapshot(input)

	// The snapshot survives; the rate is suspicious, not invalid.
	assert.Same(t, input, snap)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "verify data accuracy")
}

func TestValidateSnapshot_DerivedConversionRateChecked(t *testing.T) {
	var gate ValidationGate

	orders := int64(300)
	views := int64(1000)
	snap, warnings := gate.ValidateSnapshot(&domain.ECommerceSnapshot{
		TotalOrders:  &orders,
		ProductViews: &views,
	})

	assert.NotNil(t, snap)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "verify data accuracy")
}

func TestValidateSnapshot_ImplausiblyLowAOV(t *testing.T) {
	var gate ValidationGate

	revenue := 5.0
	orders := int64(100)
	snap, warnings := gate.ValidateSnapshot(&domain.ECommerceSnapshot{
		TotalRevenue: &revenue,
		TotalOrders:  &orders,
	})

	assert.NotNil(t, snap)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "check currency/units")
}

func TestValidateSnapshot_CleanSnapshotNoWarnings(t *testing.T) {
	var gate ValidationGate

	revenue := 1000.0
	orders := int64(20)
	views := int64(5000)
	snap, warnings := gate.ValidateSnapshot(&domain.ECommerceSnapshot{
		TotalRevenue: &revenue,
		TotalOrders:  &orders,
		ProductViews: &views,
	})

	assert.NotNil(t, snap)
	assert.Empty(t, warnings)
}
