package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/stocklens/stocklens/internal/inventory"
	"github.com/stocklens/stocklens/internal/observability"
)

// SnapshotSource supplies the read-only data snapshot a report runs on.
type SnapshotSource interface {
	LoadSnapshot(ctx context.Context, from, to time.Time) (inventory.Snapshot, error)
}

// ReportFilter selects the reporting window and costing method.
type ReportFilter struct {
	Window Window
	Method CostingMethod
}

// Service coordinates snapshot loading, report computation, and the
// cache layer.
type Service struct {
	source  SnapshotSource
	cache   *Cache
	metrics *observability.Metrics
}

// NewService wires a SnapshotSource with the cache helper. Both cache
// and metrics may be nil.
func NewService(source SnapshotSource, cache *Cache, metrics *observability.Metrics) *Service {
	return &Service{source: source, cache: cache, metrics: metrics}
}

// Report resolves the analytics report for the filter, via cache when
// one is configured.
func (s *Service) Report(ctx context.Context, filter ReportFilter) (Report, error) {
	if s == nil || s.source == nil {
		return Report{}, errors.New("analytics: snapshot source not configured")
	}
	loader := func(ctx context.Context) (interface{}, error) {
		snap, err := s.source.LoadSnapshot(ctx, filter.Window.From, filter.Window.To)
		if err != nil {
			return nil, fmt.Errorf("analytics: load snapshot: %w", err)
		}
		start := time.Now()
		report := Compute(snap, filter.Window, filter.Method)
		if s.metrics != nil {
			s.metrics.ObserveReportDuration(time.Since(start))
		}
		return report, nil
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return Report{}, err
		}
		return value.(Report), nil
	}

	key, err := s.cache.BuildKey(ctx, keyReport(filter.Method, filter.Window))
	if err != nil {
		return Report{}, err
	}
	var report Report
	if err := s.cache.FetchJSON(ctx, key, &report, loader); err != nil {
		return Report{}, err
	}
	return report, nil
}

// Invalidate bumps the cache version after stock movements.
func (s *Service) Invalidate(ctx context.Context) error {
	if s == nil || s.cache == nil {
		return nil
	}
	return s.cache.Bump(ctx)
}

// Compute runs the full analytics pipeline over a snapshot. It is a pure
// function of its inputs apart from the run ID and timestamp.
//
// The five analysis branches depend only on the aggregate, not on each
// other, so they fan out concurrently. A failure in one branch is
// recorded on that branch's Error field and never voids the others;
// callers always receive a report they can render partially.
func Compute(snap inventory.Snapshot, window Window, method CostingMethod) Report {
	agg := BuildAggregate(snap, window)

	report := Report{
		ID:               uuid.NewString(),
		GeneratedAt:      time.Now().UTC(),
		Window:           window,
		Method:           method,
		Monthly:          agg.Monthly,
		SkippedRecords:   agg.Skipped,
		UnmatchedRecords: agg.Unmatched,
	}

	var g errgroup.Group
	g.Go(func() error {
		report.Valuation.Error = runBranch("valuation", func() {
			report.Valuation = Valuation(method, agg.Items)
		})
		return nil
	})
	g.Go(func() error {
		report.ABC.Error = runBranch("abc", func() {
			report.ABC = ClassifyRevenue(agg.Items)
		})
		return nil
	})
	g.Go(func() error {
		report.Turnover.Error = runBranch("turnover", func() {
			report.Turnover = AnalyzeTurnover(agg.Items)
		})
		return nil
	})
	g.Go(func() error {
		report.Forecast.Error = runBranch("forecast", func() {
			report.Forecast = ForecastDemand(agg.Items)
		})
		return nil
	})
	g.Go(func() error {
		report.Health.Error = runBranch("health", func() {
			report.Health = ClassifyStockHealth(agg.Items)
		})
		return nil
	})
	_ = g.Wait()

	report.Summary = Summary{
		TotalProducts:    len(agg.Items),
		TotalValue:       report.Valuation.TotalValue,
		AverageTurnover:  report.Turnover.AverageRatio,
		StockHealthScore: report.Health.OverallScore,
	}
	return report
}

// runBranch executes one analysis branch, converting a panic into the
// branch's error tag so independent branches keep their results.
func runBranch(name string, fn func()) (errMsg string) {
	defer func() {
		if r := recover(); r != nil {
			errMsg = fmt.Sprintf("%s: %v", name, r)
		}
	}()
	fn()
	return ""
}
