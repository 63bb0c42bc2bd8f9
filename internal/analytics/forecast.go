package analytics

// Distinct-date counts required for forecast confidence grades.
const (
	forecastHighDates   = 10
	forecastMediumDates = 5
)

// ForecastDemand estimates short-horizon demand per product from its
// daily sale history.
//
// averageDailyDemand is the mean over distinct sale dates; the trend is
// (last - first) / distinctDates when at least two dates exist. Products
// without any sale date in the window have no basis for a forecast and
// are omitted rather than projected as zero.
//
// Aggregation is keyed by product ID. The name-keyed grouping of earlier
// report tooling broke down when two products shared a name; display
// names are carried along for presentation only.
func ForecastDemand(items []ProductActivity) ForecastReport {
	report := ForecastReport{Entries: []ForecastEntry{}}
	for _, item := range items {
		if len(item.Daily) == 0 {
			continue
		}

		var sum float64
		for _, day := range item.Daily {
			sum += day.Quantity
		}
		avg := sum / float64(len(item.Daily))

		var trend float64
		if len(item.Daily) >= 2 {
			first := item.Daily[0].Quantity
			last := item.Daily[len(item.Daily)-1].Quantity
			trend = (last - first) / float64(len(item.Daily))
		}

		confidence := ConfidenceLow
		switch {
		case len(item.Daily) >= forecastHighDates:
			confidence = ConfidenceHigh
		case len(item.Daily) >= forecastMediumDates:
			confidence = ConfidenceMedium
		}

		report.Entries = append(report.Entries, ForecastEntry{
			ProductID:          item.Product.ID,
			ProductName:        item.Product.Name,
			AverageDailyDemand: avg,
			TrendPerDay:        trend,
			ForecastedDemand:   avg + trend,
			Confidence:         confidence,
		})
	}
	return report
}
