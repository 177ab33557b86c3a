package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orchids/social-analytics/internal/domain"
)

// rateRecord builds a record whose engagement rate is exactly
// likes/1000.
func rateRecord(id string, likes int64) domain.MetricRecord {
	return makeRecord(id, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), likes, 0, 0, 1000)
}

func TestRankContentPerformance_Empty(t *testing.T) {
	perf := RankContentPerformance(nil)

	assert.Empty(t, perf.TopPerformers)
	assert.Empty(t, perf.BottomPerformers)
	assert.NotNil(t, perf.ContentTypeAverages)
	assert.Empty(t, perf.ContentTypeAverages)
}

func TestRankContentPerformance_FewerRecordsThanListSize(t *testing.T) {
	records := []domain.MetricRecord{
		rateRecord("low", 10),
		rateRecord("high", 500),
		rateRecord("mid", 100),
	}

	perf := RankContentPerformance(records)

	require.Len(t, perf.TopPerformers, 3)
	require.Len(t, perf.BottomPerformers, 3)

	assert.Equal(t, "high", perf.TopPerformers[0].ID)
	assert.Equal(t, "mid", perf.TopPerformers[1].ID)
	assert.Equal(t, "low", perf.TopPerformers[2].ID)

	// With everything in one list, the bottom list is the top list
	// reversed: same elements, opposite relative order.
	for i := range perf.TopPerformers {
		assert.Equal(t,
			perf.TopPerformers[len(perf.TopPerformers)-1-i].ID,
			perf.BottomPerformers[i].ID)
	}
}

// The bottom list is the tail of the descending sort reversed: it
// leads with the worst record and ascends toward the least bad of the
// group. One prose reading of the reporting requirements has the worst
// record last instead; the reversal mechanics and the reversed-order
// property both say worst first, so that is what is pinned here.
func TestRankContentPerformance_BottomListWorstFirst(t *testing.T) {
	records := make([]domain.MetricRecord, 0, 8)
	for i := 1; i <= 8; i++ {
		records = append(records, rateRecord(fmt.Sprintf("r%d", i), int64(i*10)))
	}

	perf := RankContentPerformance(records)

	require.Len(t, perf.TopPerformers, 5)
	require.Len(t, perf.BottomPerformers, 5)

	// Top list reads best first.
	assert.Equal(t, "r8", perf.TopPerformers[0].ID)
	assert.Equal(t, "r4", perf.TopPerformers[4].ID)

	// Bottom list leads with the worst record.
	assert.Equal(t, "r1", perf.BottomPerformers[0].ID)
	assert.Equal(t, "r5", perf.BottomPerformers[len(perf.BottomPerformers)-1].ID)

	for i := 1; i < len(perf.BottomPerformers); i++ {
		assert.GreaterOrEqual(t,
			perf.BottomPerformers[i].EngagementRate(),
			perf.BottomPerformers[i-1].EngagementRate())
	}
}

func TestRankContentPerformance_StableOrderForTies(t *testing.T) {
	records := []domain.MetricRecord{
		rateRecord("first", 100),
		rateRecord("second", 100),
	}

	perf := RankContentPerformance(records)

	assert.Equal(t, "first", perf.TopPerformers[0].ID)
	assert.Equal(t, "second", perf.TopPerformers[1].ID)
}

func TestOverallStats_PooledRateNotMeanOfRates(t *testing.T) {
	records := []domain.MetricRecord{
		// 50 engagements over 100 views: per-record rate 0.5.
		makeRecord("small", time.Now(), 50, 0, 0, 100),
		// 100 engagements over 10000 views: per-record rate 0.01.
		makeRecord("large", time.Now(), 100, 0, 0, 10000),
	}

	perf := RankContentPerformance(records)
	stats, ok := perf.ContentTypeAverages["overall"]
	require.True(t, ok)

	assert.Equal(t, 2, stats.RecordCount)
	assert.Equal(t, 75.0, stats.AvgLikes)
	assert.Equal(t, 5050.0, stats.AvgViews)

	// Pooled: 150/10100, nowhere near the 0.255 a mean of rates gives.
	assert.InDelta(t, 150.0/10100.0, stats.EngagementRate, 1e-9)
}

func TestOverallStats_AllZeroViews(t *testing.T) {
	records := []domain.MetricRecord{
		makeRecord("a", time.Now(), 5, 0, 0, 0),
	}

	perf := RankContentPerformance(records)
	stats := perf.ContentTypeAverages["overall"]

	assert.Equal(t, 5.0, stats.AvgLikes)
	assert.Zero(t, stats.EngagementRate)
}
