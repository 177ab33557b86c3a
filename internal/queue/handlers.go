package queue

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/orchids/social-analytics/internal/domain"
	"github.com/orchids/social-analytics/internal/service"
	"github.com/orchids/social-analytics/pkg/logger"
	"github.com/orchids/social-analytics/pkg/validator"
)

type ReportGenerationHandler struct {
	reportService *service.ReportService
	logger        *logger.Logger
}

func NewReportGenerationHandler(reportService *service.ReportService, logger *logger.Logger) *ReportGenerationHandler {
	return &ReportGenerationHandler{
		reportService: reportService,
		logger:        logger,
	}
}

func (h *ReportGenerationHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseReportGenerationPayload(task)
	if err != nil {
		h.logger.Error(ctx, "failed to parse report generation payload", err, nil)
		return fmt.Errorf("parse payload: %w", err)
	}

	userID, err := validator.ValidateUUID(payload.UserID)
	if err != nil {
		h.logger.Error(ctx, "report generation task carries invalid user ID", err, map[string]interface{}{
			"user_id": payload.UserID,
		})
		return fmt.Errorf("invalid user ID: %w", err)
	}

	h.logger.Info(ctx, "generating scheduled report", map[string]interface{}{
		"user_id":  payload.UserID,
		"platform": payload.Platform,
		"task_id":  task.ResultWriter().TaskID(),
	})

	result := h.reportService.GenerateReport(ctx, userID, domain.Platform(payload.Platform), payload.StartDate, payload.EndDate)
	if !result.Success {
		h.logger.Error(ctx, "scheduled report generation failed", nil, map[string]interface{}{
			"user_id":        payload.UserID,
			"platform":       payload.Platform,
			"error":          result.Error,
			"correlation_id": result.Metadata.CorrelationID,
		})
		return fmt.Errorf("generate report: %s", result.Error)
	}

	h.logger.Info(ctx, "scheduled report generated", map[string]interface{}{
		"user_id":        payload.UserID,
		"platform":       payload.Platform,
		"warnings":       len(result.Metadata.Warnings),
		"correlation_id": result.Metadata.CorrelationID,
	})

	return nil
}

type CacheWarmupHandler struct {
	reportService *service.ReportService
	logger        *logger.Logger
}

func NewCacheWarmupHandler(reportService *service.ReportService, logger *logger.Logger) *CacheWarmupHandler {
	return &CacheWarmupHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// ProcessTask regenerates the default 30-day report per platform so
// the first dashboard load after a sync hits warm cache.
func (h *CacheWarmupHandler) ProcessTask(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseCacheWarmupPayload(task)
	if err != nil {
		h.logger.Error(ctx, "failed to parse cache warmup payload", err, nil)
		return fmt.Errorf("parse payload: %w", err)
	}

	userID, err := validator.ValidateUUID(payload.UserID)
	if err != nil {
		return fmt.Errorf("invalid user ID: %w", err)
	}

	startDate, endDate := service.DefaultReportRange()
	for _, p := range payload.Platforms {
		platform := domain.Platform(p)
		if !platform.IsValid() {
			continue
		}
		result := h.reportService.GenerateReport(ctx, userID, platform, startDate, endDate)
		if !result.Success {
			h.logger.Warn(ctx, "cache warmup skipped platform", map[string]interface{}{
				"user_id":  payload.UserID,
				"platform": p,
				"error":    result.Error,
			})
		}
	}

	return nil
}
