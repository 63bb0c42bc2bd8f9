package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/stocklens/stocklens/internal/analytics"
	"github.com/stocklens/stocklens/internal/inventory"
	"github.com/stocklens/stocklens/internal/observability"
)

const warmupScopeTimeout = 20 * time.Second

// SnapshotStore persists precomputed report summaries.
type SnapshotStore interface {
	InsertReportSnapshot(ctx context.Context, snap inventory.ReportSnapshot) error
}

// AnalyticsWarmupJob precomputes the analytics report for every costing
// method so the first dashboard request of the day is served from cache,
// and persists a summary row per run.
type AnalyticsWarmupJob struct {
	Service    *analytics.Service
	Store      SnapshotStore
	Logger     *slog.Logger
	Metrics    *observability.Metrics
	WindowDays int

	clock func() time.Time
}

// NewAnalyticsWarmupJob constructs the warmup job handler.
func NewAnalyticsWarmupJob(service *analytics.Service, store SnapshotStore, logger *slog.Logger, metrics *observability.Metrics, windowDays int) *AnalyticsWarmupJob {
	return &AnalyticsWarmupJob{
		Service:    service,
		Store:      store,
		Logger:     logger,
		Metrics:    metrics,
		WindowDays: windowDays,
		clock:      func() time.Time { return time.Now().UTC() },
	}
}

// Handle runs the warmup for each costing method over the trailing window.
func (j *AnalyticsWarmupJob) Handle(ctx context.Context, task *asynq.Task) error {
	if j == nil || j.Service == nil {
		return fmt.Errorf("analytics warmup job not configured: %w", asynq.SkipRetry)
	}

	var payload AnalyticsWarmupPayload
	if len(task.Payload()) > 0 {
		if err := json.Unmarshal(task.Payload(), &payload); err != nil {
			return fmt.Errorf("decode warmup payload: %v: %w", err, asynq.SkipRetry)
		}
	}
	windowDays := payload.WindowDays
	if windowDays <= 0 {
		windowDays = j.WindowDays
	}
	if windowDays <= 0 {
		windowDays = 30
	}

	now := j.clock()
	to := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, time.UTC)
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -windowDays)
	window := analytics.Window{From: from, To: to}

	// Bump before warming so yesterday's cached reports are retired and
	// the fresh ones land under the new cache version.
	if err := j.Service.Invalidate(ctx); err != nil {
		j.Logger.Warn("bump report cache", slog.Any("error", err))
	}

	methods := []analytics.CostingMethod{
		analytics.CostingFIFO,
		analytics.CostingLIFO,
		analytics.CostingWeightedAverage,
	}

	var failed int
	for _, method := range methods {
		if err := j.warmMethod(ctx, window, method); err != nil {
			failed++
			j.Logger.Error("warm analytics report",
				slog.String("method", string(method)),
				slog.Any("error", err))
			if j.Metrics != nil {
				j.Metrics.RecordJob(TaskAnalyticsWarmup, "error")
			}
			continue
		}
		if j.Metrics != nil {
			j.Metrics.RecordJob(TaskAnalyticsWarmup, "ok")
		}
	}

	if failed == len(methods) {
		return fmt.Errorf("analytics warmup: all %d methods failed", failed)
	}
	j.Logger.Info("analytics warmup complete",
		slog.Int("methods", len(methods)),
		slog.Int("failed", failed),
		slog.Time("from", from),
		slog.Time("to", to))
	return nil
}

func (j *AnalyticsWarmupJob) warmMethod(ctx context.Context, window analytics.Window, method analytics.CostingMethod) error {
	scopeCtx, cancel := context.WithTimeout(ctx, warmupScopeTimeout)
	defer cancel()

	report, err := j.Service.Report(scopeCtx, analytics.ReportFilter{Window: window, Method: method})
	if err != nil {
		return err
	}
	if j.Store == nil {
		return nil
	}

	snap := inventory.ReportSnapshot{
		ID:              report.ID,
		Period:          fmt.Sprintf("%s/%s", window.From.Format("2006-01-02"), window.To.Format("2006-01-02")),
		CostingMethod:   string(method),
		TotalProducts:   report.Summary.TotalProducts,
		TotalValue:      report.Summary.TotalValue,
		AverageTurnover: report.Summary.AverageTurnover,
		HealthScore:     report.Summary.StockHealthScore,
		GeneratedAt:     report.GeneratedAt,
	}
	if err := j.Store.InsertReportSnapshot(scopeCtx, snap); err != nil {
		if errors.Is(err, inventory.ErrSnapshotExists) {
			j.Logger.Debug("report snapshot already persisted",
				slog.String("period", snap.Period),
				slog.String("method", snap.CostingMethod))
			return nil
		}
		return fmt.Errorf("persist report snapshot: %w", err)
	}
	return nil
}
