// Package jobs wires background processing on top of Asynq.
package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskAnalyticsWarmup precomputes analytics reports and refreshes
	// the report cache.
	TaskAnalyticsWarmup = "analytics:warmup"
)

// AnalyticsWarmupPayload carries scheduling metadata for a warmup run.
type AnalyticsWarmupPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
	WindowDays   int       `json:"window_days"`
}

// NewAnalyticsWarmupTask constructs an Asynq task for report warmup.
func NewAnalyticsWarmupTask(at time.Time, windowDays int) (*asynq.Task, error) {
	payload := AnalyticsWarmupPayload{ScheduledFor: at, WindowDays: windowDays}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAnalyticsWarmup, body, asynq.Queue(QueueDefault)), nil
}
