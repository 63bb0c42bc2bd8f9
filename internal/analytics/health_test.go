package analytics

import (
	"testing"

	"github.com/stocklens/stocklens/internal/inventory"
)

func TestClassifyStockHealthBuckets(t *testing.T) {
	sold := dailySeries(1)
	items := []ProductActivity{
		{Product: inventory.Product{ID: 1, Name: "Dusty", Quantity: 20, ReorderPoint: 10}},
		{Product: inventory.Product{ID: 2, Name: "Scarce", Quantity: 5, ReorderPoint: 10}, Daily: sold},
		{Product: inventory.Product{ID: 3, Name: "Hoarded", Quantity: 100, ReorderPoint: 10}, Daily: sold},
		{Product: inventory.Product{ID: 4, Name: "Fine", Quantity: 20, ReorderPoint: 10}, Daily: sold},
	}

	report := ClassifyStockHealth(items)
	want := []HealthBucket{HealthDeadStock, HealthLowStock, HealthOverstock, HealthHealthy}
	for i, entry := range report.Entries {
		if entry.Bucket != want[i] {
			t.Fatalf("product %d: expected %s got %s", entry.ProductID, want[i], entry.Bucket)
		}
	}
	if report.HealthyCount != 1 {
		t.Fatalf("expected 1 healthy, got %d", report.HealthyCount)
	}
	if !almostEqual(report.OverallScore, 25) {
		t.Fatalf("expected score 25, got %.4f", report.OverallScore)
	}
}

func TestClassifyStockHealthSoldOutIsLowStock(t *testing.T) {
	// Zero stock with sales in the window is a replenishment problem,
	// not dead stock.
	items := []ProductActivity{
		{Product: inventory.Product{ID: 1, Name: "SoldOut", Quantity: 0, ReorderPoint: 10}, Daily: dailySeries(4)},
	}

	report := ClassifyStockHealth(items)
	if report.Entries[0].Bucket != HealthLowStock {
		t.Fatalf("expected low-stock, got %s", report.Entries[0].Bucket)
	}
}

func TestClassifyStockHealthDefaultReorderPoint(t *testing.T) {
	items := []ProductActivity{
		// No reorder point configured; the default of 10 applies.
		{Product: inventory.Product{ID: 1, Name: "Unconfigured", Quantity: 8}, Daily: dailySeries(2)},
		{Product: inventory.Product{ID: 2, Name: "Plenty", Quantity: 31}, Daily: dailySeries(2)},
	}

	report := ClassifyStockHealth(items)
	if report.Entries[0].Bucket != HealthLowStock {
		t.Fatalf("expected low-stock under default threshold, got %s", report.Entries[0].Bucket)
	}
	if report.Entries[1].Bucket != HealthOverstock {
		t.Fatalf("expected overstock above 3x default, got %s", report.Entries[1].Bucket)
	}
}

func TestClassifyStockHealthEmpty(t *testing.T) {
	report := ClassifyStockHealth(nil)
	if report.OverallScore != 0 || len(report.Entries) != 0 {
		t.Fatalf("expected empty report, got %+v", report)
	}
}
