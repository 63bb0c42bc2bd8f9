package inventory

import (
	"errors"
	"time"
)

// Defaults applied when a product row carries no replenishment settings.
const (
	DefaultReorderPoint = 10
	DefaultReorderQty   = 50
)

// Product is a read-only snapshot of a catalog item. Products are owned by
// the surrounding CRUD modules; the analytics engine never mutates them.
type Product struct {
	ID           int64
	Name         string
	Category     string
	Quantity     int64
	ReorderPoint int64
	ReorderQty   int64
}

// PurchaseLot records one receipt of stock at a specific cost and date.
// Immutable once created. ProductID may be zero for legacy rows that were
// recorded against a product name only.
type PurchaseLot struct {
	ProductID   int64
	ProductName string
	Quantity    float64
	UnitCost    float64
	PurchasedAt time.Time
}

// SaleRecord is one sale line. Immutable. Revenue is the realized amount
// for the full line, not a per-unit price.
type SaleRecord struct {
	ProductID   int64
	ProductName string
	Quantity    float64
	Revenue     float64
	SoldAt      time.Time
}

// Snapshot bundles the three collections the analytics engine consumes.
type Snapshot struct {
	Products  []Product
	Purchases []PurchaseLot
	Sales     []SaleRecord
}

// ReportSnapshot is a persisted summary of one precomputed analytics run.
type ReportSnapshot struct {
	ID              string
	Period          string
	CostingMethod   string
	TotalProducts   int
	TotalValue      float64
	AverageTurnover float64
	HealthScore     float64
	GeneratedAt     time.Time
}

// ErrSnapshotExists indicates a report snapshot was already persisted for
// the same period and costing method.
var ErrSnapshotExists = errors.New("inventory: report snapshot already exists")
