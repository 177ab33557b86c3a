package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/orchids/social-analytics/internal/domain"
	"github.com/orchids/social-analytics/pkg/logger"
)

const (
	reportSource = "analytics-engine"

	// priorPeriodFactor stands in for a real prior-period query:
	// the baseline is assumed to be 80% of current-period views.
	// Growth figures built on it are estimates, not measurements.
	priorPeriodFactor = 0.8

	noDataWarning = "No video data found for this period."
)

type RecordSource interface {
	FetchRecords(ctx context.Context, userID uuid.UUID, platform domain.Platform, tr domain.TimeRange) ([]domain.MetricRecord, error)
}

type SnapshotSource interface {
	FetchSnapshot(ctx context.Context, userID uuid.UUID) (*domain.ECommerceSnapshot, error)
}

// PlatformInsights is the optional per-platform capability. A missing
// variant or a failing call is a normal case answered with defaults,
// never an error surfaced to the caller.
type PlatformInsights interface {
	Demographics(ctx context.Context) (*domain.AudienceDemographics, error)
	TopLocations(ctx context.Context) ([]domain.LocationStat, error)
	TopLanguages(ctx context.Context) ([]domain.LanguageStat, error)
	TrendingAudio(ctx context.Context) ([]domain.TrendingAudio, error)
}

// Engine is the analytics computation engine. It holds no state of its
// own beyond injected collaborators and is safe to share across
// requests.
type Engine struct {
	gate      ValidationGate
	records   RecordSource
	snapshots SnapshotSource
	sentiment *SentimentEngine
	platforms map[domain.Platform]PlatformInsights
	log       *logger.Logger
}

func New(
	records RecordSource,
	snapshots SnapshotSource,
	summarizer Summarizer,
	platforms map[domain.Platform]PlatformInsights,
	log *logger.Logger,
) *Engine {
	if platforms == nil {
		platforms = map[domain.Platform]PlatformInsights{}
	}
	return &Engine{
		records:   records,
		snapshots: snapshots,
		sentiment: NewSentimentEngine(summarizer),
		platforms: platforms,
		log:       log,
	}
}

func (e *Engine) Sentiment() *SentimentEngine {
	return e.sentiment
}

// GenerateReport runs the full pipeline: validation gate, record
// fetch, snapshot resolution, then five concurrent sub-computations
// joined with a wait-all. Each sub-computation owns its own recovery
// and substitutes a documented default on failure, so the join itself
// never aborts.
func (e *Engine) GenerateReport(ctx context.Context, userID uuid.UUID, platform domain.Platform, startDate, endDate string) domain.AnalysisResult {
	correlationID := uuid.New().String()

	timeRange, err := e.gate.ValidateTimeRange(startDate, endDate)
	if err != nil {
		return domain.FailedResult(correlationID, reportSource, err)
	}

	if !platform.IsValid() {
		return domain.FailedResult(correlationID, reportSource, domain.ErrInvalidPlatform)
	}

	records, err := e.records.FetchRecords(ctx, userID, platform, timeRange)
	if err != nil {
		return domain.FailedResult(correlationID, reportSource,
			fmt.Errorf("%w: %s", domain.ErrRecordFetchFailed, err.Error()))
	}
	for _, rec := range records {
		if err := rec.Validate(); err != nil {
			return domain.FailedResult(correlationID, reportSource,
				fmt.Errorf("%w: record %q: %s", domain.ErrMalformedRecord, rec.ID, err.Error()))
		}
	}

	var warnings []string
	if len(records) == 0 {
		warnings = append(warnings, noDataWarning)
	}
	warnings = append(warnings, ScanDataQuality(records)...)

	snapshot := e.resolveSnapshot(ctx, userID, &warnings)
	commerce := DeriveCommerceMetrics(snapshot)

	report := e.assembleReport(ctx, platform, records, commerce)

	return domain.AnalysisResult{
		Success: true,
		Data:    report,
		Metadata: domain.ResultMetadata{
			GeneratedAt:   time.Now(),
			Source:        reportSource,
			Warnings:      warnings,
			CorrelationID: correlationID,
		},
	}
}

// ComputeTrends runs only the validation gate, record fetch and trend
// calculation, for callers that want the series without a full report.
func (e *Engine) ComputeTrends(ctx context.Context, userID uuid.UUID, platform domain.Platform, startDate, endDate string) (domain.EngagementTrends, []string, error) {
	timeRange, err := e.gate.ValidateTimeRange(startDate, endDate)
	if err != nil {
		return domain.EngagementTrends{}, nil, err
	}

	if !platform.IsValid() {
		return domain.EngagementTrends{}, nil, domain.ErrInvalidPlatform
	}

	records, err := e.records.FetchRecords(ctx, userID, platform, timeRange)
	if err != nil {
		return domain.EngagementTrends{}, nil, fmt.Errorf("%w: %s", domain.ErrRecordFetchFailed, err.Error())
	}

	var warnings []string
	if len(records) == 0 {
		warnings = append(warnings, noDataWarning)
	}
	warnings = append(warnings, ScanDataQuality(records)...)

	return CalculateEngagementTrends(records), warnings, nil
}

func (e *Engine) resolveSnapshot(ctx context.Context, userID uuid.UUID, warnings *[]string) *domain.ECommerceSnapshot {
	if e.snapshots == nil {
		return nil
	}

	snapshot, err := e.snapshots.FetchSnapshot(ctx, userID)
	if err != nil {
		*warnings = append(*warnings, "E-commerce snapshot unavailable; commerce metrics will use defaults")
		return nil
	}

	validated, snapWarnings := e.gate.ValidateSnapshot(snapshot)
	*warnings = append(*warnings, snapWarnings...)
	return validated
}

// assembleReport fans out the independent sub-computations and joins
// on completion of all of them.
func (e *Engine) assembleReport(ctx context.Context, platform domain.Platform, records []domain.MetricRecord, commerce domain.ReportMetrics) *domain.AnalyticsReport {
	report := &domain.AnalyticsReport{}

	var wg sync.WaitGroup
	run := func(name string, fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil && e.log != nil {
					e.log.Error(ctx, "report sub-computation failed, using defaults", nil, map[string]interface{}{
						"computation": name,
						"panic":       fmt.Sprint(r),
					})
				}
			}()
			fn()
		}()
	}

	run("summary", func() {
		report.Summary = buildSummary(records, commerce)
	})
	run("platform_comparison", func() {
		report.PlatformComparison = comparePlatforms(records)
	})
	run("content_performance", func() {
		report.ContentPerformance = RankContentPerformance(records)
	})
	run("audience", func() {
		report.Audience = e.resolveAudience(ctx, platform)
	})
	run("trends", func() {
		report.Trends = CalculateEngagementTrends(records)
		report.TimeSeries = buildTimeSeries(records)
		report.TrendAnalysis = e.analyzeTrends(ctx, platform, records)
	})

	wg.Wait()

	return report
}

func buildSummary(records []domain.MetricRecord, commerce domain.ReportMetrics) domain.ReportSummary {
	summary := domain.ReportSummary{
		TotalPosts: len(records),
		Commerce:   commerce,
	}

	for _, rec := range records {
		summary.TotalLikes += rec.LikeCount
		summary.TotalComments += rec.CommentCount
		summary.TotalShares += rec.ShareCount
		summary.TotalViews += rec.ViewCount
	}
	if summary.TotalViews > 0 {
		summary.AvgEngagementRate = float64(summary.TotalLikes+summary.TotalComments+summary.TotalShares) / float64(summary.TotalViews)
	}

	return summary
}

func comparePlatforms(records []domain.MetricRecord) []domain.PlatformComparison {
	type acc struct {
		posts      int
		views      int64
		numerators int64
	}

	byPlatform := map[domain.Platform]*acc{}
	var order []domain.Platform
	for _, rec := range records {
		a, ok := byPlatform[rec.Platform]
		if !ok {
			a = &acc{}
			byPlatform[rec.Platform] = a
			order = append(order, rec.Platform)
		}
		a.posts++
		a.views += rec.ViewCount
		a.numerators += rec.LikeCount + rec.CommentCount + rec.ShareCount
	}

	comparisons := make([]domain.PlatformComparison, 0, len(order))
	for _, platform := range order {
		a := byPlatform[platform]
		cmp := domain.PlatformComparison{
			Platform: platform,
			Posts:    a.posts,
			Views:    a.views,
		}
		if a.views > 0 {
			cmp.EngagementRate = float64(a.numerators) / float64(a.views)
		}
		comparisons = append(comparisons, cmp)
	}

	return comparisons
}

func buildTimeSeries(records []domain.MetricRecord) []domain.TimeSeriesPoint {
	series := make([]domain.TimeSeriesPoint, 0, len(records))
	for _, rec := range records {
		series = append(series, domain.TimeSeriesPoint{
			Timestamp: rec.PublishedAt,
			Likes:     rec.LikeCount,
			Comments:  rec.CommentCount,
			Shares:    rec.ShareCount,
			Views:     rec.ViewCount,
		})
	}
	return series
}

func (e *Engine) resolveAudience(ctx context.Context, platform domain.Platform) domain.AudienceDemographics {
	insights, ok := e.platforms[platform]
	if !ok {
		return domain.DefaultDemographics()
	}

	demo, err := insights.Demographics(ctx)
	if err != nil || demo == nil {
		return domain.DefaultDemographics()
	}
	audience := *demo

	if locations, err := insights.TopLocations(ctx); err == nil && len(locations) > 0 {
		audience.TopLocations = locations
	}
	if languages, err := insights.TopLanguages(ctx); err == nil && len(languages) > 0 {
		audience.TopLanguages = languages
	}
	if len(audience.TopLocations) == 0 {
		audience.TopLocations = domain.DefaultDemographics().TopLocations
	}
	if len(audience.TopLanguages) == 0 {
		audience.TopLanguages = domain.DefaultDemographics().TopLanguages
	}

	return audience
}

func (e *Engine) analyzeTrends(ctx context.Context, platform domain.Platform, records []domain.MetricRecord) domain.TrendAnalysis {
	analysis := domain.TrendAnalysis{
		HistoricalViewGrowth: []domain.EngagementTrendPoint{},
		GrowthSource:         "estimated",
	}

	if len(records) > 0 {
		var currentViews int64
		for _, rec := range records {
			currentViews += rec.ViewCount
		}
		baseline := float64(currentViews) * priorPeriodFactor
		analysis.HistoricalViewGrowth = []domain.EngagementTrendPoint{
			{Timestamp: records[0].PublishedAt, Value: baseline},
			{Timestamp: records[len(records)-1].PublishedAt, Value: float64(currentViews)},
		}
	}

	if insights, ok := e.platforms[platform]; ok {
		if audio, err := insights.TrendingAudio(ctx); err == nil {
			analysis.TrendingAudio = audio
		}
	}

	return analysis
}
