package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReportRun records a single report generation for traceability.
type ReportRun struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Platform      Platform
	RangeStart    time.Time
	RangeEnd      time.Time
	Success       bool
	WarningCount  int
	RecordCount   int
	GrowthSource  string
	CorrelationID string
	DurationMs    int64
	CreatedAt     time.Time
}
