package engine

import (
	"fmt"

	"github.com/orchids/social-analytics/internal/domain"
)

const (
	// highEngagementThreshold flags per-record rates that are almost
	// certainly tracking artifacts rather than real engagement.
	highEngagementThreshold = 0.5
	minSampleSize           = 5
)

// CalculateEngagementTrends converts an ordered record list into four
// parallel time-indexed series, one point per record.
func CalculateEngagementTrends(records []domain.MetricRecord) domain.EngagementTrends {
	trends := domain.EngagementTrends{
		Likes:           make([]domain.EngagementTrendPoint, 0, len(records)),
		Comments:        make([]domain.EngagementTrendPoint, 0, len(records)),
		Views:           make([]domain.EngagementTrendPoint, 0, len(records)),
		EngagementRates: make([]domain.EngagementTrendPoint, 0, len(records)),
	}

	for _, rec := range records {
		trends.Likes = append(trends.Likes, domain.EngagementTrendPoint{
			Timestamp: rec.PublishedAt,
			Value:     float64(rec.LikeCount),
		})
		trends.Comments = append(trends.Comments, domain.EngagementTrendPoint{
			Timestamp: rec.PublishedAt,
			Value:     float64(rec.CommentCount),
		})
		trends.Views = append(trends.Views, domain.EngagementTrendPoint{
			Timestamp: rec.PublishedAt,
			Value:     float64(rec.ViewCount),
		})
		trends.EngagementRates = append(trends.EngagementRates, domain.EngagementTrendPoint{
			Timestamp: rec.PublishedAt,
			Value:     rec.EngagementRate(),
		})
	}

	return trends
}

// ScanDataQuality inspects the batch independently of trend
// construction and reports advisory anomalies.
func ScanDataQuality(records []domain.MetricRecord) []string {
	var warnings []string

	zeroViews := 0
	highRate := 0
	for _, rec := range records {
		if rec.ViewCount == 0 {
			zeroViews++
		}
		if rec.EngagementRate() > highEngagementThreshold {
			highRate++
		}
	}

	if zeroViews > 0 {
		warnings = append(warnings, fmt.Sprintf("%d records have zero views", zeroViews))
	}
	if highRate > 0 {
		warnings = append(warnings, fmt.Sprintf("%d records have unusually high engagement rates; verify accuracy", highRate))
	}
	if len(records) > 0 && len(records) < minSampleSize {
		warnings = append(warnings, fmt.Sprintf("Limited data: only %d records in period; trends may not be representative", len(records)))
	}

	return warnings
}
