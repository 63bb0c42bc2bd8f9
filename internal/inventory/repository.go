package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stocklens/stocklens/internal/platform/db"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Repository loads inventory snapshots from PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListProducts returns the full product catalog. NULL replenishment
// settings fall back to the documented defaults.
func (r *Repository) ListProducts(ctx context.Context) ([]Product, error) {
	if r == nil {
		return nil, errors.New("inventory repository not initialised")
	}
	return listProducts(ctx, r.pool)
}

func listProducts(ctx context.Context, q querier) ([]Product, error) {
	rows, err := q.Query(ctx, `SELECT id, name, category, quantity, COALESCE(reorder_point, $1), COALESCE(reorder_qty, $2)
FROM products
ORDER BY id ASC`, DefaultReorderPoint, DefaultReorderQty)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	products := []Product{}
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Quantity, &p.ReorderPoint, &p.ReorderQty); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return products, nil
}

// ListPurchaseLots returns purchase receipts dated inside [from, to].
// Legacy rows may carry a NULL product_id and only a product_name.
func (r *Repository) ListPurchaseLots(ctx context.Context, from, to time.Time) ([]PurchaseLot, error) {
	if r == nil {
		return nil, errors.New("inventory repository not initialised")
	}
	return listPurchaseLots(ctx, r.pool, from, to)
}

func listPurchaseLots(ctx context.Context, q querier, from, to time.Time) ([]PurchaseLot, error) {
	rows, err := q.Query(ctx, `SELECT COALESCE(product_id, 0), COALESCE(product_name, ''), quantity, unit_cost, purchased_at
FROM purchase_lots
WHERE purchased_at BETWEEN COALESCE($1, '-infinity') AND COALESCE($2, 'infinity')
ORDER BY purchased_at ASC, id ASC`, nullTime(from), nullTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	lots := []PurchaseLot{}
	for rows.Next() {
		var lot PurchaseLot
		if err := rows.Scan(&lot.ProductID, &lot.ProductName, &lot.Quantity, &lot.UnitCost, &lot.PurchasedAt); err != nil {
			return nil, err
		}
		lots = append(lots, lot)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return lots, nil
}

// ListSaleRecords returns sale lines dated inside [from, to].
func (r *Repository) ListSaleRecords(ctx context.Context, from, to time.Time) ([]SaleRecord, error) {
	if r == nil {
		return nil, errors.New("inventory repository not initialised")
	}
	return listSaleRecords(ctx, r.pool, from, to)
}

func listSaleRecords(ctx context.Context, q querier, from, to time.Time) ([]SaleRecord, error) {
	rows, err := q.Query(ctx, `SELECT COALESCE(product_id, 0), COALESCE(product_name, ''), quantity, total_amount, sold_at
FROM sale_records
WHERE sold_at BETWEEN COALESCE($1, '-infinity') AND COALESCE($2, 'infinity')
ORDER BY sold_at ASC, id ASC`, nullTime(from), nullTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sales := []SaleRecord{}
	for rows.Next() {
		var sale SaleRecord
		if err := rows.Scan(&sale.ProductID, &sale.ProductName, &sale.Quantity, &sale.Revenue, &sale.SoldAt); err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sales, nil
}

// LoadSnapshot gathers products, purchases, and sales in one call. The
// three reads run inside a repeatable-read transaction so a concurrent
// stock movement cannot appear in one collection but not another.
func (r *Repository) LoadSnapshot(ctx context.Context, from, to time.Time) (Snapshot, error) {
	if r == nil {
		return Snapshot{}, errors.New("inventory repository not initialised")
	}
	var snap Snapshot
	err := db.ReadTx(ctx, r.pool, func(tx pgx.Tx) error {
		products, err := listProducts(ctx, tx)
		if err != nil {
			return err
		}
		purchases, err := listPurchaseLots(ctx, tx, from, to)
		if err != nil {
			return err
		}
		sales, err := listSaleRecords(ctx, tx, from, to)
		if err != nil {
			return err
		}
		snap = Snapshot{Products: products, Purchases: purchases, Sales: sales}
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// InsertReportSnapshot persists one precomputed report summary. The
// (period, costing_method) pair is unique; a repeat insert maps to
// ErrSnapshotExists so the warmup job can treat it as already done.
func (r *Repository) InsertReportSnapshot(ctx context.Context, snap ReportSnapshot) error {
	if r == nil {
		return errors.New("inventory repository not initialised")
	}
	_, err := r.pool.Exec(ctx, `INSERT INTO report_snapshots (id, period, costing_method, total_products, total_value, average_turnover, health_score, generated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		snap.ID, snap.Period, snap.CostingMethod, snap.TotalProducts, snap.TotalValue, snap.AverageTurnover, snap.HealthScore, snap.GeneratedAt)
	return snapshotInsertError(err)
}

// snapshotInsertError maps the unique (period, costing_method) constraint
// violation to ErrSnapshotExists. Other errors pass through unchanged.
func snapshotInsertError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.ConstraintName == "uq_report_snapshots_period_method" {
		return ErrSnapshotExists
	}
	return err
}

func nullTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
