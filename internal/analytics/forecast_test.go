package analytics

import (
	"testing"
	"time"

	"github.com/stocklens/stocklens/internal/inventory"
)

func dailySeries(quantities ...float64) []DailyDemand {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	series := make([]DailyDemand, 0, len(quantities))
	for i, qty := range quantities {
		series = append(series, DailyDemand{Date: base.AddDate(0, 0, i), Quantity: qty})
	}
	return series
}

func TestForecastDemandConfidenceGrades(t *testing.T) {
	items := []ProductActivity{
		{Product: inventory.Product{ID: 1, Name: "Deep"}, Daily: dailySeries(5, 5, 5, 5, 5, 5, 5, 5, 5, 5)},
		{Product: inventory.Product{ID: 2, Name: "Mid"}, Daily: dailySeries(3, 3, 3, 3, 3, 3, 3, 3, 3)},
		{Product: inventory.Product{ID: 3, Name: "Thin"}, Daily: dailySeries(2, 6, 4, 4)},
	}

	report := ForecastDemand(items)
	if len(report.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(report.Entries))
	}
	if report.Entries[0].Confidence != ConfidenceHigh {
		t.Fatalf("10 dates should grade high, got %s", report.Entries[0].Confidence)
	}
	if report.Entries[1].Confidence != ConfidenceMedium {
		t.Fatalf("9 dates should grade medium, got %s", report.Entries[1].Confidence)
	}
	if report.Entries[2].Confidence != ConfidenceLow {
		t.Fatalf("4 dates should grade low, got %s", report.Entries[2].Confidence)
	}
}

func TestForecastDemandTrend(t *testing.T) {
	items := []ProductActivity{
		{Product: inventory.Product{ID: 1, Name: "Rising"}, Daily: dailySeries(2, 4, 6)},
	}

	report := ForecastDemand(items)
	entry := report.Entries[0]
	if !almostEqual(entry.AverageDailyDemand, 4) {
		t.Fatalf("expected average 4, got %.4f", entry.AverageDailyDemand)
	}
	// trend = (6 - 2) / 3 distinct dates.
	if !almostEqual(entry.TrendPerDay, 4.0/3) {
		t.Fatalf("expected trend %.4f, got %.4f", 4.0/3, entry.TrendPerDay)
	}
	if !almostEqual(entry.ForecastedDemand, 4+4.0/3) {
		t.Fatalf("expected forecast %.4f, got %.4f", 4+4.0/3, entry.ForecastedDemand)
	}
}

func TestForecastDemandSingleDateHasNoTrend(t *testing.T) {
	items := []ProductActivity{
		{Product: inventory.Product{ID: 1, Name: "Once"}, Daily: dailySeries(7)},
	}

	report := ForecastDemand(items)
	entry := report.Entries[0]
	if entry.TrendPerDay != 0 {
		t.Fatalf("expected zero trend for one date, got %.4f", entry.TrendPerDay)
	}
	if !almostEqual(entry.ForecastedDemand, 7) {
		t.Fatalf("expected forecast 7, got %.4f", entry.ForecastedDemand)
	}
}

func TestForecastDemandOmitsProductsWithoutSales(t *testing.T) {
	items := []ProductActivity{
		{Product: inventory.Product{ID: 1, Name: "Sold"}, Daily: dailySeries(1)},
		{Product: inventory.Product{ID: 2, Name: "Silent"}},
	}

	report := ForecastDemand(items)
	if len(report.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(report.Entries))
	}
	if report.Entries[0].ProductID != 1 {
		t.Fatalf("unexpected product %d in forecast", report.Entries[0].ProductID)
	}
}
