// Package analytichttp exposes the analytics report over HTTP.
package analytichttp

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/stocklens/stocklens/internal/analytics"
	"github.com/stocklens/stocklens/internal/platform/httpx"
)

const (
	dateLayout        = "2006-01-02"
	defaultWindowDays = 30
	requestTimeout    = 5 * time.Second
)

// ReportService defines the report contract used by the handler.
type ReportService interface {
	Report(ctx context.Context, filter analytics.ReportFilter) (analytics.Report, error)
}

// Handler coordinates HTTP requests for the inventory analytics report.
type Handler struct {
	logger   *slog.Logger
	service  ReportService
	validate *validator.Validate
	csvPool  sync.Pool
	now      func() time.Time
}

// NewHandler constructs the analytics HTTP handler.
func NewHandler(logger *slog.Logger, service ReportService) *Handler {
	h := &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		now:      time.Now,
	}
	h.csvPool.New = func() interface{} { return new(bytes.Buffer) }
	return h
}

// WithNow overrides the handler clock for testing.
func (h *Handler) WithNow(fn func() time.Time) {
	if fn != nil {
		h.now = fn
	}
}

type reportQuery struct {
	From   string `validate:"omitempty,datetime=2006-01-02"`
	To     string `validate:"omitempty,datetime=2006-01-02"`
	Method string `validate:"omitempty,oneof=fifo lifo avg"`
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := h.service.Report(ctx, filter)
	if err != nil {
		h.logger.Error("compute report", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, report)
}

func (h *Handler) handleCSV(w http.ResponseWriter, r *http.Request) {
	filter, err := h.parseFilter(r)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	report, err := h.service.Report(ctx, filter)
	if err != nil {
		h.logger.Error("compute report for export", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	buf := h.csvPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer h.csvPool.Put(buf)

	if err := analytics.WriteCSV(buf, report); err != nil {
		h.logger.Error("render csv", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Export Failed", "")
		return
	}

	filename := fmt.Sprintf("stocklens-report-%s-%s.csv",
		filter.Window.From.Format(dateLayout), filter.Window.To.Format(dateLayout))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Warn("stream csv", slog.Any("error", err))
	}
}

// parseFilter resolves the reporting window and costing method from query
// parameters. Missing dates default to the trailing 30 days; the window
// end is inclusive through the final day.
func (h *Handler) parseFilter(r *http.Request) (analytics.ReportFilter, error) {
	q := reportQuery{
		From:   r.URL.Query().Get("from"),
		To:     r.URL.Query().Get("to"),
		Method: r.URL.Query().Get("method"),
	}
	if err := h.validate.Struct(q); err != nil {
		return analytics.ReportFilter{}, fmt.Errorf("%w: %v", httpx.ErrValidation, err)
	}

	now := h.now().UTC()
	to := now
	if q.To != "" {
		parsed, err := time.Parse(dateLayout, q.To)
		if err != nil {
			return analytics.ReportFilter{}, fmt.Errorf("%w: to date %q", httpx.ErrValidation, q.To)
		}
		to = parsed
	}
	to = time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, time.UTC)

	from := to.AddDate(0, 0, -defaultWindowDays)
	if q.From != "" {
		parsed, err := time.Parse(dateLayout, q.From)
		if err != nil {
			return analytics.ReportFilter{}, fmt.Errorf("%w: from date %q", httpx.ErrValidation, q.From)
		}
		from = parsed
	}
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)

	if from.After(to) {
		return analytics.ReportFilter{}, fmt.Errorf("%w: from date after to date", httpx.ErrValidation)
	}

	return analytics.ReportFilter{
		Window: analytics.Window{From: from, To: to},
		Method: analytics.ParseCostingMethod(q.Method),
	}, nil
}
