package analytics

import "github.com/stocklens/stocklens/internal/inventory"

// overstockFactor marks stock above reorderPoint x factor as overstocked.
const overstockFactor = 3

// ClassifyStockHealth labels each product healthy, low-stock, overstock,
// or dead-stock.
//
// The checks run in priority order: dead-stock requires positive stock
// with no sales in the window, so a zero-stock product that sold out is
// reported low-stock, not dead. The overall score is the healthy share
// of the catalog in percent.
func ClassifyStockHealth(items []ProductActivity) HealthReport {
	report := HealthReport{Entries: make([]HealthEntry, 0, len(items))}
	for _, item := range items {
		qty := item.Product.Quantity
		reorderPoint := item.Product.ReorderPoint
		if reorderPoint <= 0 {
			reorderPoint = inventory.DefaultReorderPoint
		}

		bucket := HealthHealthy
		switch {
		case !item.HadSales() && qty > 0:
			bucket = HealthDeadStock
		case qty <= reorderPoint:
			bucket = HealthLowStock
		case qty > reorderPoint*overstockFactor:
			bucket = HealthOverstock
		default:
			report.HealthyCount++
		}

		report.Entries = append(report.Entries, HealthEntry{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Bucket:      bucket,
		})
	}
	if len(report.Entries) > 0 {
		report.OverallScore = float64(report.HealthyCount) / float64(len(report.Entries)) * 100
	}
	return report
}
