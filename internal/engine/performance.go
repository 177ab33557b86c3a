package engine

import (
	"sort"

	"github.com/orchids/social-analytics/internal/domain"
)

const performerListSize = 5

// RankContentPerformance sorts records by engagement rate descending
// and extracts the top and bottom performer lists.
//
// The bottom list is the tail of the sorted order reversed, so it
// reads worst first and ascends toward the least bad of the group.
// When every record fits in one list the bottom list is exactly the
// top list reversed.
func RankContentPerformance(records []domain.MetricRecord) domain.ContentPerformance {
	perf := domain.ContentPerformance{
		TopPerformers:       []domain.MetricRecord{},
		BottomPerformers:    []domain.MetricRecord{},
		ContentTypeAverages: map[string]domain.ContentTypeStats{},
	}
	if len(records) == 0 {
		return perf
	}

	sorted := make([]domain.MetricRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EngagementRate() > sorted[j].EngagementRate()
	})

	n := performerListSize
	if len(sorted) < n {
		n = len(sorted)
	}

	perf.TopPerformers = append(perf.TopPerformers, sorted[:n]...)

	bottom := make([]domain.MetricRecord, n)
	copy(bottom, sorted[len(sorted)-n:])
	for i, j := 0, len(bottom)-1; i < j; i, j = i+1, j-1 {
		bottom[i], bottom[j] = bottom[j], bottom[i]
	}
	perf.BottomPerformers = bottom

	perf.ContentTypeAverages["overall"] = overallStats(records)

	return perf
}

// overallStats reports arithmetic means per counter but a pooled
// engagement rate: sum of numerators over sum of views, which is not
// the same number as averaging the per-record rates.
func overallStats(records []domain.MetricRecord) domain.ContentTypeStats {
	var likes, comments, shares, views int64
	for _, rec := range records {
		likes += rec.LikeCount
		comments += rec.CommentCount
		shares += rec.ShareCount
		views += rec.ViewCount
	}

	count := float64(len(records))
	stats := domain.ContentTypeStats{
		AvgLikes:    float64(likes) / count,
		AvgComments: float64(comments) / count,
		AvgShares:   float64(shares) / count,
		AvgViews:    float64(views) / count,
		RecordCount: len(records),
	}
	if views > 0 {
		stats.EngagementRate = float64(likes+comments+shares) / float64(views)
	}

	return stats
}
