package analytics

import "sort"

// Cumulative-revenue thresholds for the Pareto bands.
const (
	abcThresholdA = 70.0
	abcThresholdB = 90.0
)

// ClassifyRevenue ranks products by realized revenue and partitions them
// into contribution bands A/B/C.
//
// Ties keep the product input order; no secondary sort key is invented.
// When total revenue is zero there is no meaningful classification and
// the report is returned empty instead of dividing by zero.
func ClassifyRevenue(items []ProductActivity) ABCReport {
	report := ABCReport{Entries: []ABCEntry{}, Summary: []ABCSummary{}}
	if len(items) == 0 {
		return report
	}

	ranked := make([]ProductActivity, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Revenue > ranked[j].Revenue
	})

	var total float64
	for _, item := range ranked {
		total += item.Revenue
	}
	report.TotalRevenue = total
	if total <= 0 {
		return report
	}

	var cumulative float64
	totals := map[ABCCategory]*ABCSummary{}
	for i, item := range ranked {
		cumulative += item.Revenue
		cumulativePct := cumulative / total * 100

		category := CategoryC
		switch {
		// The top-revenue product always lands in A even when it alone
		// crosses the 70% threshold.
		case cumulativePct <= abcThresholdA || i == 0:
			category = CategoryA
		case cumulativePct <= abcThresholdB:
			category = CategoryB
		}

		entry := ABCEntry{
			ProductID:         item.Product.ID,
			ProductName:       item.Product.Name,
			Rank:              i + 1,
			Revenue:           item.Revenue,
			SharePercent:      item.Revenue / total * 100,
			CumulativePercent: cumulativePct,
			Category:          category,
		}
		report.Entries = append(report.Entries, entry)

		summary, ok := totals[category]
		if !ok {
			summary = &ABCSummary{Category: category}
			totals[category] = summary
		}
		summary.Count++
		summary.Revenue += item.Revenue
	}

	for _, category := range []ABCCategory{CategoryA, CategoryB, CategoryC} {
		summary, ok := totals[category]
		if !ok {
			continue
		}
		summary.SharePercent = summary.Revenue / total * 100
		report.Summary = append(report.Summary, *summary)
	}
	return report
}
