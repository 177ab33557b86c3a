package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/orchids/social-analytics/internal/domain"
	"github.com/orchids/social-analytics/internal/engine"
	"github.com/orchids/social-analytics/internal/repository"
	"github.com/orchids/social-analytics/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// ReportService fronts the engine with a redis cache and records an
// audit row per generation run. The engine itself stays stateless;
// caching and persistence live here.
type ReportService struct {
	engine    *engine.Engine
	runs      repository.ReportRunRepository
	redis     *redis.Client
	log       *logger.Logger
	reportTTL time.Duration
	trendsTTL time.Duration
}

func NewReportService(
	eng *engine.Engine,
	runs repository.ReportRunRepository,
	redisClient *redis.Client,
	log *logger.Logger,
	reportTTL, trendsTTL time.Duration,
) *ReportService {
	return &ReportService{
		engine:    eng,
		runs:      runs,
		redis:     redisClient,
		log:       log,
		reportTTL: reportTTL,
		trendsTTL: trendsTTL,
	}
}

// DefaultReportRange is the trailing 30-day window used when a caller
// does not specify dates, formatted the way the dashboard sends them.
func DefaultReportRange() (string, string) {
	now := time.Now().UTC()
	return now.AddDate(0, 0, -30).Format("2006-01-02"), now.Format("2006-01-02")
}

func (s *ReportService) GenerateReport(ctx context.Context, userID uuid.UUID, platform domain.Platform, startDate, endDate string) domain.AnalysisResult {
	cacheKey := fmt.Sprintf("analytics:report:%s:%s:%s:%s", userID, platform, startDate, endDate)

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var result domain.AnalysisResult
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				return result
			}
		}
	}

	started := time.Now()
	result := s.engine.GenerateReport(ctx, userID, platform, startDate, endDate)
	s.recordRun(userID, platform, startDate, endDate, result, started)

	// Only successful reports are worth caching; failures should be
	// retried on the next request.
	if result.Success && s.redis != nil {
		if payload, err := json.Marshal(result); err == nil {
			s.redis.Set(ctx, cacheKey, payload, s.reportTTL)
		}
	}

	return result
}

func (s *ReportService) GetEngagementTrends(ctx context.Context, userID uuid.UUID, platform domain.Platform, startDate, endDate string) (domain.EngagementTrends, []string, error) {
	cacheKey := fmt.Sprintf("analytics:trends:%s:%s:%s:%s", userID, platform, startDate, endDate)

	type cachedTrends struct {
		Trends   domain.EngagementTrends
		Warnings []string
	}

	if s.redis != nil {
		cached, err := s.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var entry cachedTrends
			if err := json.Unmarshal([]byte(cached), &entry); err == nil {
				return entry.Trends, entry.Warnings, nil
			}
		}
	}

	trends, warnings, err := s.engine.ComputeTrends(ctx, userID, platform, startDate, endDate)
	if err != nil {
		return domain.EngagementTrends{}, nil, err
	}

	if s.redis != nil {
		if payload, err := json.Marshal(cachedTrends{Trends: trends, Warnings: warnings}); err == nil {
			s.redis.Set(ctx, cacheKey, payload, s.trendsTTL)
		}
	}

	return trends, warnings, nil
}

func (s *ReportService) InvalidateUserCache(ctx context.Context, userID uuid.UUID) error {
	if s.redis == nil {
		return nil
	}

	pattern := fmt.Sprintf("analytics:*:%s:*", userID)
	iter := s.redis.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		s.redis.Del(ctx, iter.Val())
	}
	return iter.Err()
}

func (s *ReportService) ListRuns(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*domain.ReportRun, int64, error) {
	return s.runs.ListRuns(ctx, userID, limit, offset)
}

func (s *ReportService) recordRun(userID uuid.UUID, platform domain.Platform, startDate, endDate string, result domain.AnalysisResult, started time.Time) {
	if s.runs == nil {
		return
	}

	run := &domain.ReportRun{
		ID:            uuid.New(),
		UserID:        userID,
		Platform:      platform,
		RangeStart:    parseRunBound(startDate),
		RangeEnd:      parseRunBound(endDate),
		Success:       result.Success,
		WarningCount:  len(result.Metadata.Warnings),
		CorrelationID: result.Metadata.CorrelationID,
		DurationMs:    time.Since(started).Milliseconds(),
		CreatedAt:     time.Now(),
	}
	if result.Data != nil {
		run.RecordCount = result.Data.Summary.TotalPosts
		run.GrowthSource = result.Data.TrendAnalysis.GrowthSource
	}

	// Audit writes stay off the request path.
	s.persistRun(run)
}

// parseRunBound is best-effort: the engine already validated the range,
// so a parse failure here only leaves a zero timestamp in the audit row.
func parseRunBound(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (s *ReportService) persistRun(run *domain.ReportRun) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.runs.CreateRun(ctx, run); err != nil {
			s.log.Warn(ctx, "failed to record report run", map[string]interface{}{
				"error":          err.Error(),
				"correlation_id": run.CorrelationID,
			})
		}
	}()
}
