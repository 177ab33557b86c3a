package queue

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	TypeReportGeneration = "report:generate"
	TypeCacheWarmup      = "report:warm_cache"
)

type ReportGenerationPayload struct {
	UserID    string `json:"user_id"`
	Platform  string `json:"platform"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Priority  int    `json:"priority"`
}

type CacheWarmupPayload struct {
	UserID    string   `json:"user_id"`
	Platforms []string `json:"platforms"`
}

func NewReportGenerationTask(payload ReportGenerationPayload) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report generation payload: %w", err)
	}
	return asynq.NewTask(TypeReportGeneration, payloadBytes), nil
}

func ParseReportGenerationPayload(task *asynq.Task) (*ReportGenerationPayload, error) {
	var payload ReportGenerationPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report generation payload: %w", err)
	}
	return &payload, nil
}

func NewCacheWarmupTask(payload CacheWarmupPayload) (*asynq.Task, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cache warmup payload: %w", err)
	}
	return asynq.NewTask(TypeCacheWarmup, payloadBytes), nil
}

func ParseCacheWarmupPayload(task *asynq.Task) (*CacheWarmupPayload, error) {
	var payload CacheWarmupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache warmup payload: %w", err)
	}
	return &payload, nil
}
