package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/orchids/social-analytics/internal/domain"
	"github.com/orchids/social-analytics/internal/queue"
	"github.com/orchids/social-analytics/internal/service"
	"github.com/orchids/social-analytics/pkg/logger"
	"github.com/orchids/social-analytics/pkg/response"
	"github.com/orchids/social-analytics/pkg/validator"
)

type AdminHandler struct {
	reportService *service.ReportService
	monitoring    *service.MonitoringService
	usage         *service.UsageTracker
	queueClient   *queue.QueueClient
	log           *logger.Logger
}

func NewAdminHandler(
	reportService *service.ReportService,
	monitoring *service.MonitoringService,
	usage *service.UsageTracker,
	queueClient *queue.QueueClient,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		reportService: reportService,
		monitoring:    monitoring,
		usage:         usage,
		queueClient:   queueClient,
		log:           log,
	}
}

func (h *AdminHandler) GetSystemMetrics(c *gin.Context) {
	ctx := c.Request.Context()

	metrics, err := h.monitoring.GetSystemMetrics(ctx)
	if err != nil {
		h.log.Error(ctx, "failed to collect system metrics", err, nil)
		response.InternalError(c, "Failed to collect system metrics")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"cpu_percent":    metrics.CPUPercent,
		"memory_total":   metrics.MemoryTotal,
		"memory_used":    metrics.MemoryUsed,
		"memory_percent": metrics.MemoryPercent,
		"goroutines":     metrics.Goroutines,
		"uptime_seconds": metrics.Uptime.Seconds(),
		"timestamp":      metrics.Timestamp,
	})
}

func (h *AdminHandler) GetQueueStats(c *gin.Context) {
	ctx := c.Request.Context()

	metrics, err := h.monitoring.GetQueueMetrics(ctx)
	if err != nil {
		h.log.Error(ctx, "failed to get queue stats", err, nil)
		response.InternalError(c, "Failed to retrieve queue statistics")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"pending":   metrics.PendingJobs,
		"active":    metrics.ActiveJobs,
		"scheduled": metrics.ScheduledJobs,
		"retry":     metrics.RetryJobs,
		"archived":  metrics.ArchivedJobs,
		"processed": metrics.ProcessedLast,
		"timestamp": metrics.Timestamp,
	})
}

func (h *AdminHandler) GetUsageMetrics(c *gin.Context) {
	ctx := c.Request.Context()

	activeUsers, err := h.usage.GetActiveUsers(ctx)
	if err != nil {
		h.log.Error(ctx, "failed to count active users", err, nil)
		response.InternalError(c, "Failed to retrieve usage metrics")
		return
	}

	metrics := domain.UsageMetrics{
		ActiveUsers: activeUsers,
		Timestamp:   time.Now(),
	}

	// Per-user request counts only when a user is named.
	if userParam := c.Query("user_id"); userParam != "" {
		userID, err := validator.ValidateUUID(userParam)
		if err != nil {
			response.ValidationError(c, "Invalid user ID format")
			return
		}
		today, err := h.usage.GetTodayRequests(ctx, userID)
		if err != nil {
			h.log.Error(ctx, "failed to read request counters", err, map[string]interface{}{
				"user_id": userID,
			})
			response.InternalError(c, "Failed to retrieve usage metrics")
			return
		}
		metrics.TodayRequests = today
	}

	response.Success(c, http.StatusOK, metrics)
}

func (h *AdminHandler) ListReportRuns(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := validator.ValidateUUID(c.Query("user_id"))
	if err != nil {
		response.ValidationError(c, "Invalid user ID format")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err := validator.ValidatePageParams(page, limit); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	runs, total, err := h.reportService.ListRuns(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		h.log.Error(ctx, "failed to list report runs", err, map[string]interface{}{
			"user_id": userID,
		})
		response.InternalError(c, "Failed to retrieve report runs")
		return
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	response.SuccessWithList(c, runs, response.PaginationMeta{
		Total:       int(total),
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	})
}

func (h *AdminHandler) InvalidateCache(c *gin.Context) {
	ctx := c.Request.Context()

	userID, err := validator.ValidateUUID(c.Param("user_id"))
	if err != nil {
		response.ValidationError(c, "Invalid user ID format")
		return
	}

	if err := h.reportService.InvalidateUserCache(ctx, userID); err != nil {
		h.log.Error(ctx, "failed to invalidate report cache", err, map[string]interface{}{
			"user_id": userID,
		})
		response.InternalError(c, "Failed to invalidate cache")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Report cache invalidated",
		"user_id": userID,
	})
}

type enqueueReportRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	Platform  string `json:"platform" binding:"required"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Priority  int    `json:"priority"`
}

func (h *AdminHandler) EnqueueReportGeneration(c *gin.Context) {
	ctx := c.Request.Context()

	var req enqueueReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "user_id and platform are required")
		return
	}

	if _, err := validator.ValidateUUID(req.UserID); err != nil {
		response.ValidationError(c, "Invalid user ID format")
		return
	}

	startDate, endDate := req.StartDate, req.EndDate
	if startDate == "" && endDate == "" {
		startDate, endDate = service.DefaultReportRange()
	}

	payload := queue.ReportGenerationPayload{
		UserID:    req.UserID,
		Platform:  req.Platform,
		StartDate: startDate,
		EndDate:   endDate,
		Priority:  req.Priority,
	}
	if err := h.queueClient.EnqueueReportGeneration(ctx, payload); err != nil {
		h.log.Error(ctx, "failed to enqueue report generation", err, map[string]interface{}{
			"user_id":  req.UserID,
			"platform": req.Platform,
		})
		response.InternalError(c, "Failed to enqueue report generation")
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{
		"message":  "Report generation queued",
		"user_id":  req.UserID,
		"platform": req.Platform,
	})
}
