package analytics

import (
	"testing"

	"github.com/stocklens/stocklens/internal/inventory"
)

func TestAnalyzeTurnoverBuckets(t *testing.T) {
	items := []ProductActivity{
		// averageStock = 30 + 10 = 40, ratio 0.5, normal boundary.
		{Product: inventory.Product{ID: 1, Name: "Steady", Quantity: 30}, SoldQty: 20},
		// averageStock = 100 + 5 = 105, ratio below 0.5.
		{Product: inventory.Product{ID: 2, Name: "Slow", Quantity: 100}, SoldQty: 10},
	}

	report := AnalyzeTurnover(items)
	if len(report.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(report.Entries))
	}
	if report.Entries[0].Bucket != TurnoverNormal {
		t.Fatalf("ratio at boundary should be normal, got %s", report.Entries[0].Bucket)
	}
	if report.Entries[1].Bucket != TurnoverLow {
		t.Fatalf("expected low bucket, got %s", report.Entries[1].Bucket)
	}
	if report.LowCount != 1 || report.HighCount != 0 {
		t.Fatalf("unexpected bucket counts high=%d low=%d", report.HighCount, report.LowCount)
	}
}

func TestAnalyzeTurnoverZeroStockNoSales(t *testing.T) {
	items := []ProductActivity{
		{Product: inventory.Product{ID: 1, Name: "Empty", Quantity: 0}},
	}

	report := AnalyzeTurnover(items)
	entry := report.Entries[0]
	if entry.Ratio != 0 {
		t.Fatalf("expected zero ratio for empty product, got %.4f", entry.Ratio)
	}
	if entry.Bucket != TurnoverLow {
		t.Fatalf("expected low bucket for zero ratio, got %s", entry.Bucket)
	}
}

func TestAnalyzeTurnoverAverageRatio(t *testing.T) {
	items := []ProductActivity{
		{Product: inventory.Product{ID: 1, Name: "P1", Quantity: 10}, SoldQty: 20}, // avg 20, ratio 1.0
		{Product: inventory.Product{ID: 2, Name: "P2", Quantity: 40}, SoldQty: 0},  // ratio 0
	}

	report := AnalyzeTurnover(items)
	if !almostEqual(report.AverageRatio, 0.5) {
		t.Fatalf("expected average ratio 0.5, got %.4f", report.AverageRatio)
	}
}

func TestAnalyzeTurnoverEmpty(t *testing.T) {
	report := AnalyzeTurnover(nil)
	if report.AverageRatio != 0 || len(report.Entries) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}
