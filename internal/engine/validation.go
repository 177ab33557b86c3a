package engine

import (
	"fmt"
	"time"

	"github.com/orchids/social-analytics/internal/domain"
)

// ValidationGate checks input shapes before any computation runs.
// Time-range failures are fatal; snapshot failures drop the snapshot
// and downgrade to warnings.
type ValidationGate struct{}

const (
	highConversionRate = 0.20
	minPlausibleAOV    = 1.0
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02",
}

func parseInstant(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func (ValidationGate) ValidateTimeRange(start, end string) (domain.TimeRange, error) {
	fieldErrors := map[string]string{}

	startTime, err := parseInstant(start)
	if err != nil {
		fieldErrors["start_date"] = fmt.Sprintf("not a parseable timestamp: %q", start)
	}
	endTime, err := parseInstant(end)
	if err != nil {
		fieldErrors["end_date"] = fmt.Sprintf("not a parseable timestamp: %q", end)
	}
	if len(fieldErrors) > 0 {
		return domain.TimeRange{}, domain.NewValidationError(domain.ErrInvalidTimeRange, "invalid time range", fieldErrors)
	}

	if startTime.After(endTime) {
		return domain.TimeRange{}, domain.NewValidationError(domain.ErrInvalidTimeRange, "invalid time range", map[string]string{
			"start_date": "must not be after end_date",
		})
	}

	return domain.TimeRange{Start: startTime, End: endTime}, nil
}

// ValidateSnapshot never fails the request: a snapshot that does not
// hold together is dropped and reported as a warning, and downstream
// metrics fall back to their defaults.
func (ValidationGate) ValidateSnapshot(snap *domain.ECommerceSnapshot) (*domain.ECommerceSnapshot, []string) {
	if snap == nil {
		return nil, nil
	}

	var warnings []string

	if reason, ok := snapshotStructurallyInvalid(snap); ok {
		warnings = append(warnings, fmt.Sprintf("E-commerce snapshot dropped: %s; commerce metrics will use defaults", reason))
		return nil, warnings
	}

	if rate, ok := effectiveConversionRate(snap); ok && rate > highConversionRate {
		warnings = append(warnings, fmt.Sprintf("Conversion rate %.2f exceeds %.2f; verify data accuracy", rate, highConversionRate))
	}

	if snap.TotalRevenue != nil && snap.TotalOrders != nil && *snap.TotalOrders > 0 {
		aov := *snap.TotalRevenue / float64(*snap.TotalOrders)
		if aov < minPlausibleAOV {
			warnings = append(warnings, fmt.Sprintf("Average order value %.2f is below %.2f; check currency/units", aov, minPlausibleAOV))
		}
	}

	return snap, warnings
}

func snapshotStructurallyInvalid(snap *domain.ECommerceSnapshot) (string, bool) {
	if snap.TotalRevenue != nil && *snap.TotalRevenue < 0 {
		return "negative total revenue", true
	}
	if snap.AttributedRevenue != nil && *snap.AttributedRevenue < 0 {
		return "negative attributed revenue", true
	}
	if snap.TotalOrders != nil && *snap.TotalOrders < 0 {
		return "negative order count", true
	}
	if snap.ProductViews != nil && *snap.ProductViews < 0 {
		return "negative product views", true
	}
	if snap.CartAdditions != nil && *snap.CartAdditions < 0 {
		return "negative cart additions", true
	}
	if snap.Clicks != nil && *snap.Clicks < 0 {
		return "negative click count", true
	}
	if snap.Impressions != nil && *snap.Impressions < 0 {
		return "negative impression count", true
	}
	if snap.Campaign != nil && snap.Campaign.Spend < 0 {
		return "negative campaign spend", true
	}
	for _, p := range snap.TopProducts {
		if p.Revenue < 0 || p.Units < 0 {
			return "negative top-product figures", true
		}
	}
	return "", false
}

func effectiveConversionRate(snap *domain.ECommerceSnapshot) (float64, bool) {
	if snap.ConversionRate != nil {
		return *snap.ConversionRate, true
	}
	if snap.TotalOrders != nil && snap.ProductViews != nil && *snap.ProductViews > 0 {
		return float64(*snap.TotalOrders) / float64(*snap.ProductViews), true
	}
	return 0, false
}
