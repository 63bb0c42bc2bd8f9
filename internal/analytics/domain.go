// Package analytics turns raw purchase and sale history into inventory
// intelligence: valuation under selectable costing methods, ABC revenue
// classification, turnover and demand metrics, and stock health.
//
// Everything in this package is a pure computation over an in-memory
// snapshot. Inputs are never mutated and no state is shared between
// invocations, so concurrent report runs need no locking.
package analytics

import (
	"strings"
	"time"
)

// CostingMethod selects the lot-consumption convention used for valuation.
type CostingMethod string

const (
	// CostingFIFO consumes the oldest purchase lots first.
	CostingFIFO CostingMethod = "fifo"
	// CostingLIFO consumes the newest purchase lots first.
	CostingLIFO CostingMethod = "lifo"
	// CostingWeightedAverage prices all on-hand units at the average
	// cost over every recorded lot.
	CostingWeightedAverage CostingMethod = "avg"
)

// ParseCostingMethod resolves a method name. Unknown names fall back to
// the weighted average; this is the only implicit method resolution.
func ParseCostingMethod(raw string) CostingMethod {
	switch CostingMethod(strings.ToLower(strings.TrimSpace(raw))) {
	case CostingFIFO:
		return CostingFIFO
	case CostingLIFO:
		return CostingLIFO
	default:
		return CostingWeightedAverage
	}
}

// Window bounds a reporting period. Both ends are inclusive.
type Window struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t falls inside the window. A zero t never
// matches; records without a usable date fail the filter.
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	if !w.From.IsZero() && t.Before(w.From) {
		return false
	}
	if !w.To.IsZero() && t.After(w.To) {
		return false
	}
	return true
}

// ValuationEntry prices one product's on-hand stock.
type ValuationEntry struct {
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitCost    float64 `json:"unit_cost"`
	OnHandQty   float64 `json:"on_hand_qty"`
	TotalValue  float64 `json:"total_value"`
}

// ValuationReport aggregates per-product valuations.
type ValuationReport struct {
	Method       CostingMethod    `json:"method"`
	Entries      []ValuationEntry `json:"entries"`
	TotalValue   float64          `json:"total_value"`
	ProductCount int              `json:"product_count"`
	Error        string           `json:"error,omitempty"`
}

// ABCCategory is a Pareto contribution band.
type ABCCategory string

const (
	CategoryA ABCCategory = "A"
	CategoryB ABCCategory = "B"
	CategoryC ABCCategory = "C"
)

// ABCEntry ranks one product by realized revenue.
type ABCEntry struct {
	ProductID         int64       `json:"product_id"`
	ProductName       string      `json:"product_name"`
	Rank              int         `json:"rank"`
	Revenue           float64     `json:"revenue"`
	SharePercent      float64     `json:"share_percent"`
	CumulativePercent float64     `json:"cumulative_percent"`
	Category          ABCCategory `json:"category"`
}

// ABCSummary totals one contribution band.
type ABCSummary struct {
	Category     ABCCategory `json:"category"`
	Count        int         `json:"count"`
	Revenue      float64     `json:"revenue"`
	SharePercent float64     `json:"share_percent"`
}

// ABCReport holds the full Pareto classification.
type ABCReport struct {
	Entries      []ABCEntry   `json:"entries"`
	Summary      []ABCSummary `json:"summary"`
	TotalRevenue float64      `json:"total_revenue"`
	Error        string       `json:"error,omitempty"`
}

// TurnoverBucket labels sell-through velocity.
type TurnoverBucket string

const (
	TurnoverHigh   TurnoverBucket = "high"
	TurnoverNormal TurnoverBucket = "normal"
	TurnoverLow    TurnoverBucket = "low"
)

// TurnoverEntry measures one product's sell-through in the window.
type TurnoverEntry struct {
	ProductID    int64          `json:"product_id"`
	ProductName  string         `json:"product_name"`
	SoldQty      float64        `json:"sold_qty"`
	AverageStock float64        `json:"average_stock"`
	Ratio        float64        `json:"ratio"`
	Bucket       TurnoverBucket `json:"bucket"`
}

// TurnoverReport aggregates turnover across all products.
type TurnoverReport struct {
	Entries      []TurnoverEntry `json:"entries"`
	AverageRatio float64         `json:"average_ratio"`
	HighCount    int             `json:"high_count"`
	LowCount     int             `json:"low_count"`
	Error        string          `json:"error,omitempty"`
}

// Confidence grades a demand forecast by history depth.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// ForecastEntry projects short-horizon demand for one product.
type ForecastEntry struct {
	ProductID          int64      `json:"product_id"`
	ProductName        string     `json:"product_name"`
	AverageDailyDemand float64    `json:"average_daily_demand"`
	TrendPerDay        float64    `json:"trend_per_day"`
	ForecastedDemand   float64    `json:"forecasted_demand"`
	Confidence         Confidence `json:"confidence"`
}

// ForecastReport lists projections for products with sale history.
// Products without any sale dates in the window are omitted.
type ForecastReport struct {
	Entries []ForecastEntry `json:"entries"`
	Error   string          `json:"error,omitempty"`
}

// HealthBucket labels stock condition.
type HealthBucket string

const (
	HealthHealthy   HealthBucket = "healthy"
	HealthLowStock  HealthBucket = "low-stock"
	HealthOverstock HealthBucket = "overstock"
	HealthDeadStock HealthBucket = "dead-stock"
)

// HealthEntry classifies one product's stock condition.
type HealthEntry struct {
	ProductID   int64        `json:"product_id"`
	ProductName string       `json:"product_name"`
	Bucket      HealthBucket `json:"bucket"`
}

// HealthReport aggregates stock health across the catalog.
type HealthReport struct {
	Entries      []HealthEntry `json:"entries"`
	HealthyCount int           `json:"healthy_count"`
	OverallScore float64       `json:"overall_score"`
	Error        string        `json:"error,omitempty"`
}

// Summary carries the top-line figures of a report.
type Summary struct {
	TotalProducts    int     `json:"total_products"`
	TotalValue       float64 `json:"total_value"`
	AverageTurnover  float64 `json:"average_turnover"`
	StockHealthScore float64 `json:"stock_health_score"`
}

// MonthlyFlow sums purchased and sold quantity for one calendar month.
type MonthlyFlow struct {
	Month        string  `json:"month"`
	PurchasedQty float64 `json:"purchased_qty"`
	SoldQty      float64 `json:"sold_qty"`
}

// Report is the composed result of one analytics run. Identical inputs
// always produce an identical report body; ID and GeneratedAt describe
// the run, not the data.
type Report struct {
	ID          string          `json:"id"`
	GeneratedAt time.Time       `json:"generated_at"`
	Window      Window          `json:"window"`
	Method      CostingMethod   `json:"method"`
	Valuation   ValuationReport `json:"valuation"`
	ABC         ABCReport       `json:"abc_analysis"`
	Turnover    TurnoverReport  `json:"turnover_analysis"`
	Forecast    ForecastReport  `json:"demand_forecast"`
	Health      HealthReport    `json:"stock_health"`
	Monthly     []MonthlyFlow   `json:"monthly_flow"`
	Summary     Summary         `json:"summary"`
	// SkippedRecords counts malformed rows excluded during aggregation,
	// UnmatchedRecords counts rows that referenced no known product.
	SkippedRecords   int `json:"skipped_records"`
	UnmatchedRecords int `json:"unmatched_records"`
}
