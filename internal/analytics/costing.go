package analytics

import (
	"github.com/stocklens/stocklens/internal/inventory"
)

// UnitCost computes a single per-unit cost for onHand units given the
// product's purchase lots, ordered oldest first.
//
// FIFO and LIFO walk the lots consuming up to min(remaining on-hand,
// lot quantity) each. When on-hand exceeds the total recorded lot
// quantity, the shortfall contributes zero cost; this understates true
// cost for stock received before lot tracking began and is kept as
// documented behavior rather than reconciled.
func UnitCost(method CostingMethod, lots []inventory.PurchaseLot, onHand float64) float64 {
	if onHand <= 0 || len(lots) == 0 {
		return 0
	}
	switch method {
	case CostingFIFO:
		return consumeLots(lots, onHand, false)
	case CostingLIFO:
		return consumeLots(lots, onHand, true)
	default:
		return weightedAverage(lots)
	}
}

func weightedAverage(lots []inventory.PurchaseLot) float64 {
	var totalQty, totalCost float64
	for _, lot := range lots {
		totalQty += lot.Quantity
		totalCost += lot.Quantity * lot.UnitCost
	}
	if totalQty <= 0 {
		return 0
	}
	return totalCost / totalQty
}

func consumeLots(lots []inventory.PurchaseLot, onHand float64, newestFirst bool) float64 {
	remaining := onHand
	var consumedCost float64
	for i := range lots {
		if remaining <= 0 {
			break
		}
		lot := lots[i]
		if newestFirst {
			lot = lots[len(lots)-1-i]
		}
		take := lot.Quantity
		if take > remaining {
			take = remaining
		}
		consumedCost += take * lot.UnitCost
		remaining -= take
	}
	return consumedCost / onHand
}

// Valuation prices every product's on-hand stock under the given method.
// The report total is the exact sum of the entry totals.
func Valuation(method CostingMethod, items []ProductActivity) ValuationReport {
	report := ValuationReport{
		Method:       method,
		Entries:      make([]ValuationEntry, 0, len(items)),
		ProductCount: len(items),
	}
	for _, item := range items {
		onHand := float64(item.Product.Quantity)
		unitCost := UnitCost(method, item.Purchases, onHand)
		entry := ValuationEntry{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			UnitCost:    unitCost,
			OnHandQty:   onHand,
			TotalValue:  unitCost * onHand,
		}
		report.Entries = append(report.Entries, entry)
		report.TotalValue += entry.TotalValue
	}
	return report
}
