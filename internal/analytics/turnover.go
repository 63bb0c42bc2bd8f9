package analytics

// Turnover ratio boundaries for velocity buckets.
const (
	turnoverHighRatio = 2.0
	turnoverLowRatio  = 0.5
)

// AnalyzeTurnover computes a sell-through ratio per product and buckets
// products into high/normal/low velocity.
//
// averageStock = currentQuantity + soldQuantity/2 is a simplified period
// average, not a time-weighted one; the approximation is intentional.
// The report's AverageRatio is a plain unweighted mean.
func AnalyzeTurnover(items []ProductActivity) TurnoverReport {
	report := TurnoverReport{Entries: make([]TurnoverEntry, 0, len(items))}
	var ratioSum float64
	for _, item := range items {
		averageStock := float64(item.Product.Quantity) + item.SoldQty/2
		var ratio float64
		if averageStock > 0 {
			ratio = item.SoldQty / averageStock
		}

		bucket := TurnoverNormal
		switch {
		case ratio > turnoverHighRatio:
			bucket = TurnoverHigh
			report.HighCount++
		case ratio < turnoverLowRatio:
			bucket = TurnoverLow
			report.LowCount++
		}

		report.Entries = append(report.Entries, TurnoverEntry{
			ProductID:    item.Product.ID,
			ProductName:  item.Product.Name,
			SoldQty:      item.SoldQty,
			AverageStock: averageStock,
			Ratio:        ratio,
			Bucket:       bucket,
		})
		ratioSum += ratio
	}
	if len(report.Entries) > 0 {
		report.AverageRatio = ratioSum / float64(len(report.Entries))
	}
	return report
}
