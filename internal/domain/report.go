package domain

import (
	"time"
)

type ReportSummary struct {
	TotalPosts        int
	TotalLikes        int64
	TotalComments     int64
	TotalShares       int64
	TotalViews        int64
	AvgEngagementRate float64
	Commerce          ReportMetrics
}

type PlatformComparison struct {
	Platform       Platform
	Posts          int
	Views          int64
	EngagementRate float64
}

type TrendAnalysis struct {
	HistoricalViewGrowth []EngagementTrendPoint
	TrendingAudio        []TrendingAudio
	GrowthSource         string
}

type TimeSeriesPoint struct {
	Timestamp time.Time
	Likes     int64
	Comments  int64
	Shares    int64
	Views     int64
}

// AnalyticsReport is built fresh per request and never persisted by
// the engine itself.
type AnalyticsReport struct {
	Summary            ReportSummary
	PlatformComparison []PlatformComparison
	ContentPerformance ContentPerformance
	Trends             EngagementTrends
	Audience           AudienceDemographics
	TrendAnalysis      TrendAnalysis
	TimeSeries         []TimeSeriesPoint
}

type ResultMetadata struct {
	GeneratedAt   time.Time
	Source        string
	Warnings      []string
	CorrelationID string
}

// AnalysisResult is the engine's output envelope. Fatal failures set
// Success false and leave Data nil; advisory problems ride along in
// Metadata.Warnings on an otherwise successful result.
type AnalysisResult struct {
	Success  bool
	Data     *AnalyticsReport
	Error    string
	Metadata ResultMetadata
}

func FailedResult(correlationID, source string, err error) AnalysisResult {
	return AnalysisResult{
		Success: false,
		Error:   err.Error(),
		Metadata: ResultMetadata{
			GeneratedAt:   time.Now(),
			Source:        source,
			CorrelationID: correlationID,
		},
	}
}
