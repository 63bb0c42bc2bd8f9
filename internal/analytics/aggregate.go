package analytics

import (
	"sort"
	"time"

	"github.com/stocklens/stocklens/internal/inventory"
)

// DailyDemand is the summed sale quantity for one distinct calendar date.
type DailyDemand struct {
	Date     time.Time
	Quantity float64
}

// ProductActivity holds one product's window-filtered history.
type ProductActivity struct {
	Product   inventory.Product
	Purchases []inventory.PurchaseLot
	SoldQty   float64
	Revenue   float64
	Daily     []DailyDemand
}

// HadSales reports whether the product sold anything in the window.
func (a ProductActivity) HadSales() bool {
	return len(a.Daily) > 0
}

// Aggregate is the filtered, per-product grouping every analysis branch
// consumes. Items preserve the product input order.
type Aggregate struct {
	Window    Window
	Items     []ProductActivity
	Monthly   []MonthlyFlow
	Skipped   int
	Unmatched int
}

// BuildAggregate filters purchases and sales to the reporting window and
// groups them per product.
//
// Records dated outside the window are dropped without note. Records with
// a zero date or a non-positive quantity are counted as skipped. Records
// that resolve to no known product, by ID or by name for legacy rows
// without an ID, are counted as unmatched and otherwise ignored.
func BuildAggregate(snap inventory.Snapshot, window Window) Aggregate {
	agg := Aggregate{Window: window}

	index := make(map[int64]int, len(snap.Products))
	byName := make(map[string]int, len(snap.Products))
	agg.Items = make([]ProductActivity, len(snap.Products))
	for i, p := range snap.Products {
		agg.Items[i] = ProductActivity{Product: p}
		index[p.ID] = i
		if _, dup := byName[p.Name]; !dup {
			byName[p.Name] = i
		}
	}

	months := make(map[string]*MonthlyFlow)
	daily := make(map[int64]map[time.Time]float64)

	for _, lot := range snap.Purchases {
		if lot.Quantity <= 0 || lot.UnitCost < 0 || lot.PurchasedAt.IsZero() {
			agg.Skipped++
			continue
		}
		if !window.Contains(lot.PurchasedAt) {
			continue
		}
		i, ok := resolve(index, byName, lot.ProductID, lot.ProductName)
		if !ok {
			agg.Unmatched++
			continue
		}
		agg.Items[i].Purchases = append(agg.Items[i].Purchases, lot)
		monthFlow(months, lot.PurchasedAt).PurchasedQty += lot.Quantity
	}

	for _, sale := range snap.Sales {
		if sale.Quantity <= 0 || sale.Revenue < 0 || sale.SoldAt.IsZero() {
			agg.Skipped++
			continue
		}
		if !window.Contains(sale.SoldAt) {
			continue
		}
		i, ok := resolve(index, byName, sale.ProductID, sale.ProductName)
		if !ok {
			agg.Unmatched++
			continue
		}
		item := &agg.Items[i]
		item.SoldQty += sale.Quantity
		item.Revenue += sale.Revenue
		day := sale.SoldAt.UTC().Truncate(24 * time.Hour)
		byDay, ok := daily[item.Product.ID]
		if !ok {
			byDay = make(map[time.Time]float64)
			daily[item.Product.ID] = byDay
		}
		byDay[day] += sale.Quantity
		monthFlow(months, sale.SoldAt).SoldQty += sale.Quantity
	}

	for i := range agg.Items {
		item := &agg.Items[i]
		sort.SliceStable(item.Purchases, func(a, b int) bool {
			return item.Purchases[a].PurchasedAt.Before(item.Purchases[b].PurchasedAt)
		})
		byDay := daily[item.Product.ID]
		if len(byDay) == 0 {
			continue
		}
		item.Daily = make([]DailyDemand, 0, len(byDay))
		for day, qty := range byDay {
			item.Daily = append(item.Daily, DailyDemand{Date: day, Quantity: qty})
		}
		sort.Slice(item.Daily, func(a, b int) bool {
			return item.Daily[a].Date.Before(item.Daily[b].Date)
		})
	}

	agg.Monthly = make([]MonthlyFlow, 0, len(months))
	for _, flow := range months {
		agg.Monthly = append(agg.Monthly, *flow)
	}
	sort.Slice(agg.Monthly, func(a, b int) bool {
		return agg.Monthly[a].Month < agg.Monthly[b].Month
	})

	return agg
}

// resolve locates a product by ID, falling back to the recorded name for
// legacy rows that carry no ID. Name lookups resolve to the first product
// bearing that name.
func resolve(index map[int64]int, byName map[string]int, id int64, name string) (int, bool) {
	if id != 0 {
		i, ok := index[id]
		return i, ok
	}
	if name == "" {
		return 0, false
	}
	i, ok := byName[name]
	return i, ok
}

func monthFlow(months map[string]*MonthlyFlow, t time.Time) *MonthlyFlow {
	key := t.UTC().Format("2006-01")
	flow, ok := months[key]
	if !ok {
		flow = &MonthlyFlow{Month: key}
		months[key] = flow
	}
	return flow
}
