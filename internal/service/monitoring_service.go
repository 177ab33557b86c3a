package service

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/hibiken/asynq"
	"github.com/orchids/social-analytics/internal/domain"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// MonitoringService surfaces host and queue health for the admin
// endpoints.
type MonitoringService struct {
	inspector *asynq.Inspector
	startTime time.Time
}

func NewMonitoringService(inspector *asynq.Inspector) *MonitoringService {
	return &MonitoringService{
		inspector: inspector,
		startTime: time.Now(),
	}
}

func (s *MonitoringService) GetSystemMetrics(ctx context.Context) (*domain.SystemMetrics, error) {
	cpuPercent, err := cpu.Percent(0, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get CPU usage: %w", err)
	}

	memStats, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to get memory stats: %w", err)
	}

	return &domain.SystemMetrics{
		CPUPercent:    cpuPercent[0],
		MemoryTotal:   memStats.Total,
		MemoryUsed:    memStats.Used,
		MemoryPercent: memStats.UsedPercent,
		Goroutines:    runtime.NumGoroutine(),
		Uptime:        time.Since(s.startTime),
		Timestamp:     time.Now(),
	}, nil
}

func (s *MonitoringService) GetQueueMetrics(ctx context.Context) (*domain.QueueMetrics, error) {
	queues, err := s.inspector.Queues()
	if err != nil {
		return nil, fmt.Errorf("failed to get queue list: %w", err)
	}

	metrics := &domain.QueueMetrics{Timestamp: time.Now()}

	for _, queue := range queues {
		info, err := s.inspector.GetQueueInfo(queue)
		if err != nil {
			continue
		}
		metrics.PendingJobs += int64(info.Pending)
		metrics.ActiveJobs += int64(info.Active)
		metrics.ScheduledJobs += int64(info.Scheduled)
		metrics.RetryJobs += int64(info.Retry)
		metrics.ArchivedJobs += int64(info.Archived)
		metrics.ProcessedLast += int64(info.Processed)
	}

	return metrics, nil
}
