package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/orchids/social-analytics/internal/domain"
	"github.com/orchids/social-analytics/internal/engine"
	"github.com/orchids/social-analytics/internal/service"
	"github.com/orchids/social-analytics/pkg/logger"
	"github.com/orchids/social-analytics/pkg/response"
	"github.com/orchids/social-analytics/pkg/validator"
)

type AnalyticsHandler struct {
	reportService    *service.ReportService
	sentimentService *service.SentimentService
	usage            *service.UsageTracker
	gate             engine.ValidationGate
	log              *logger.Logger
}

func NewAnalyticsHandler(
	reportService *service.ReportService,
	sentimentService *service.SentimentService,
	usage *service.UsageTracker,
	log *logger.Logger,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		reportService:    reportService,
		sentimentService: sentimentService,
		usage:            usage,
		log:              log,
	}
}

func (h *AnalyticsHandler) GetReport(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := validator.ValidateUUID(c.Query("user_id"))
	if err != nil {
		response.ValidationError(c, "Invalid user ID format")
		return
	}

	platform := domain.Platform(validator.SanitizeString(c.Query("platform")))
	if !platform.IsValid() {
		response.ValidationError(c, "Unknown platform")
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" && endDate == "" {
		startDate, endDate = service.DefaultReportRange()
	}

	// The engine re-runs the gate; validating here too lets the API
	// answer with per-field errors instead of a flattened message.
	if _, err := h.gate.ValidateTimeRange(startDate, endDate); err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			response.ErrorWithFields(c, http.StatusBadRequest, "VALIDATION_ERROR", vErr.Message, vErr.FieldErrors)
			return
		}
		response.ValidationError(c, err.Error())
		return
	}

	if h.usage != nil {
		if err := h.usage.RecordReportRequest(ctx, userID); err != nil {
			h.log.Warn(ctx, "failed to record usage", map[string]interface{}{
				"user_id": userID,
				"error":   err.Error(),
			})
		}
	}

	result := h.reportService.GenerateReport(ctx, userID, platform, startDate, endDate)
	if !result.Success {
		h.log.Error(ctx, "report generation failed", nil, map[string]interface{}{
			"user_id":        userID,
			"platform":       platform,
			"error":          result.Error,
			"correlation_id": result.Metadata.CorrelationID,
		})
		response.ErrorWithFields(c, http.StatusUnprocessableEntity, "REPORT_FAILED", result.Error, nil)
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, result.Data, response.Meta{
		GeneratedAt:   result.Metadata.GeneratedAt,
		Source:        result.Metadata.Source,
		Warnings:      result.Metadata.Warnings,
		CorrelationID: result.Metadata.CorrelationID,
	})
}

func (h *AnalyticsHandler) GetEngagementTrends(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := validator.ValidateUUID(c.Query("user_id"))
	if err != nil {
		response.ValidationError(c, "Invalid user ID format")
		return
	}

	platform := domain.Platform(validator.SanitizeString(c.Query("platform")))
	if !platform.IsValid() {
		response.ValidationError(c, "Unknown platform")
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" && endDate == "" {
		startDate, endDate = service.DefaultReportRange()
	}

	trends, warnings, err := h.reportService.GetEngagementTrends(ctx, userID, platform, startDate, endDate)
	if err != nil {
		var vErr *domain.ValidationError
		if errors.As(err, &vErr) {
			response.ErrorWithFields(c, http.StatusBadRequest, "VALIDATION_ERROR", vErr.Message, vErr.FieldErrors)
			return
		}
		h.log.Error(ctx, "trend computation failed", err, map[string]interface{}{
			"user_id":  userID,
			"platform": platform,
		})
		response.InternalError(c, "Failed to compute engagement trends")
		return
	}

	response.SuccessWithMeta(c, http.StatusOK, trends, response.Meta{
		Warnings: warnings,
	})
}

type sentimentRequest struct {
	Text   string   `json:"text" binding:"required"`
	Brands []string `json:"brands"`
}

func (h *AnalyticsHandler) AnalyzeSentiment(c *gin.Context) {
	ctx := c.Request.Context()

	var req sentimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "Invalid request body: text is required")
		return
	}

	if err := validator.ValidateAnalysisText(req.Text); err != nil {
		response.ValidationError(c, err.Error())
		return
	}
	if err := validator.ValidateBrandList(req.Brands); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	analysis := h.sentimentService.Analyze(ctx, req.Text, req.Brands)

	response.Success(c, http.StatusOK, gin.H{
		"overall": analysis.Overall,
		"brands":  analysis.Brands,
	})
}
