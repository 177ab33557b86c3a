package domain

import "time"

type SystemMetrics struct {
	CPUPercent    float64
	MemoryTotal   uint64
	MemoryUsed    uint64
	MemoryPercent float64
	Goroutines    int
	Uptime        time.Duration
	Timestamp     time.Time
}

type QueueMetrics struct {
	PendingJobs   int64
	ActiveJobs    int64
	ScheduledJobs int64
	RetryJobs     int64
	ArchivedJobs  int64
	ProcessedLast int64
	Timestamp     time.Time
}

type UsageMetrics struct {
	ActiveUsers   int64
	TodayRequests int64
	Timestamp     time.Time
}
