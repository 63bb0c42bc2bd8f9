package analytics

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteCSV streams the valuation and ABC sections of a report as CSV.
// Monetary totals in the trailing summary rows are grouped for humans
// opening the file directly in a spreadsheet.
func WriteCSV(w io.Writer, report Report) error {
	cw := csv.NewWriter(w)
	printer := message.NewPrinter(language.English)

	if err := cw.Write([]string{"section", "product_id", "product_name", "unit_cost", "on_hand_qty", "total_value", "rank", "revenue", "share_pct", "cumulative_pct", "category"}); err != nil {
		return err
	}
	for _, entry := range report.Valuation.Entries {
		record := []string{
			"valuation",
			strconv.FormatInt(entry.ProductID, 10),
			entry.ProductName,
			formatFloat(entry.UnitCost),
			formatFloat(entry.OnHandQty),
			formatFloat(entry.TotalValue),
			"", "", "", "", "",
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	for _, entry := range report.ABC.Entries {
		record := []string{
			"abc",
			strconv.FormatInt(entry.ProductID, 10),
			entry.ProductName,
			"", "", "",
			strconv.Itoa(entry.Rank),
			formatFloat(entry.Revenue),
			formatFloat(entry.SharePercent),
			formatFloat(entry.CumulativePercent),
			string(entry.Category),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	summaryRows := [][]string{
		{"summary", "", "total_products", strconv.Itoa(report.Summary.TotalProducts), "", "", "", "", "", "", ""},
		{"summary", "", "total_value", printer.Sprintf("%.2f", report.Summary.TotalValue), "", "", "", "", "", "", ""},
		{"summary", "", "average_turnover", formatFloat(report.Summary.AverageTurnover), "", "", "", "", "", "", ""},
		{"summary", "", "stock_health_score", formatFloat(report.Summary.StockHealthScore), "", "", "", "", "", "", ""},
	}
	for _, row := range summaryRows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("analytics: write csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
