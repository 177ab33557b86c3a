package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchids/social-analytics/internal/domain"
)

func makeRecord(id string, published time.Time, likes, comments, shares, views int64) domain.MetricRecord {
	return domain.MetricRecord{
		ID:           id,
		Title:        "post " + id,
		PublishedAt:  published,
		LikeCount:    likes,
		CommentCount: comments,
		ShareCount:   shares,
		ViewCount:    views,
		Platform:     domain.PlatformInstagram,
	}
}

func TestCalculateEngagementTrends_BuildsParallelSeries(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	records := []domain.MetricRecord{
		makeRecord("a", base, 100, 10, 5, 1000),
		makeRecord("b", base.Add(24*time.Hour), 200, 20, 10, 2000),
	}

	trends := CalculateEngagementTrends(records)

	require.Len(t, trends.Likes, 2)
	require.Len(t, trends.Comments, 2)
	require.Len(t, trends.Views, 2)
	require.Len(t, trends.EngagementRates, 2)

	assert.Equal(t, base, trends.Likes[0].Timestamp)
	assert.Equal(t, 100.0, trends.Likes[0].Value)
	assert.Equal(t, 20.0, trends.Comments[1].Value)
	assert.Equal(t, 2000.0, trends.Views[1].Value)
	assert.InDelta(t, 0.115, trends.EngagementRates[0].Value, 1e-9)
}

func TestCalculateEngagementTrends_EmptyInput(t *testing.T) {
	trends := CalculateEngagementTrends(nil)

	assert.Empty(t, trends.Likes)
	assert.Empty(t, trends.Comments)
	assert.Empty(t, trends.Views)
	assert.Empty(t, trends.EngagementRates)
}

func TestCalculateEngagementTrends_ZeroViewsKeepRawNumerator(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.MetricRecord{
		makeRecord("a", base, 7, 2, 1, 0),
	}

	trends := CalculateEngagementTrends(records)

	require.Len(t, trends.EngagementRates, 1)
	assert.Equal(t, 10.0, trends.EngagementRates[0].Value)
}

func TestScanDataQuality_NoRecordsNoWarnings(t *testing.T) {
	assert.Empty(t, ScanDataQuality(nil))
}

func TestScanDataQuality_ZeroViewRecords(t *testing.T) {
	base := time.Now()
	records := []domain.MetricRecord{
		makeRecord("a", base, 0, 0, 0, 0),
		makeRecord("b", base, 0, 0, 0, 0),
		makeRecord("c", base, 10, 1, 0, 1000),
		makeRecord("d", base, 10, 1, 0, 1000),
		makeRecord("e", base, 10, 1, 0, 1000),
	}

	warnings := ScanDataQuality(records)

	require.Len(t, warnings, 1)
	assert.Equal(t, "2 records have zero views", warnings[0])
}

func TestScanDataQuality_HighEngagementRates(t *testing.T) {
	base := time.Now()
	records := []domain.MetricRecord{
		makeRecord("a", base, 600, 0, 0, 1000),
		makeRecord("b", base, 10, 0, 0, 1000),
		makeRecord("c", base, 10, 0, 0, 1000),
		makeRecord("d", base, 10, 0, 0, 1000),
		makeRecord("e", base, 10, 0, 0, 1000),
	}

	warnings := ScanDataQuality(records)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "unusually high engagement rates; verify accuracy")
}

func TestScanDataQuality_LimitedSample(t *testing.T) {
	base := time.Now()
	records := []domain.MetricRecord{
		makeRecord("a", base, 10, 1, 0, 1000),
		makeRecord("b", base, 10, 1, 0, 1000),
	}

	warnings := ScanDataQuality(records)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "only 2 records in period")
}

func TestScanDataQuality_StacksIndependentWarnings(t *testing.T) {
	base := time.Now()
	records := []domain.MetricRecord{
		makeRecord("a", base, 5, 0, 0, 0),
	}

	warnings := ScanDataQuality(records)

	// Zero views, a rate of 5.0 against the floored denominator, and a
	// sample below the minimum all fire at once.
	require.Len(t, warnings, 3)
	assert.Contains(t, warnings[0], "zero views")
	assert.Contains(t, warnings[1], "unusually high")
	assert.Contains(t, warnings[2], "Limited data")
}
