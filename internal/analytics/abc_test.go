package analytics

import (
	"testing"

	"github.com/stocklens/stocklens/internal/inventory"
)

func activityWithRevenue(id int64, name string, revenue float64) ProductActivity {
	return ProductActivity{Product: inventory.Product{ID: id, Name: name}, Revenue: revenue}
}

func TestClassifyRevenueBands(t *testing.T) {
	items := []ProductActivity{
		activityWithRevenue(1, "Alpha", 700),
		activityWithRevenue(2, "Beta", 200),
		activityWithRevenue(3, "Gamma", 100),
	}

	report := ClassifyRevenue(items)
	if len(report.Entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(report.Entries))
	}
	want := []ABCCategory{CategoryA, CategoryB, CategoryC}
	for i, entry := range report.Entries {
		if entry.Category != want[i] {
			t.Fatalf("rank %d: expected %s got %s", entry.Rank, want[i], entry.Category)
		}
		if entry.Rank != i+1 {
			t.Fatalf("expected rank %d got %d", i+1, entry.Rank)
		}
	}
	if report.Entries[2].CumulativePercent != 100 {
		t.Fatalf("expected final cumulative 100, got %.4f", report.Entries[2].CumulativePercent)
	}
}

func TestClassifyRevenueTopProductAlwaysA(t *testing.T) {
	// A single product crossing 70% on its own still lands in A.
	items := []ProductActivity{
		activityWithRevenue(1, "Dominant", 950),
		activityWithRevenue(2, "Minor", 30),
		activityWithRevenue(3, "Trace", 20),
	}

	report := ClassifyRevenue(items)
	if report.Entries[0].Category != CategoryA {
		t.Fatalf("expected top product in A, got %s", report.Entries[0].Category)
	}
	if report.Entries[1].Category != CategoryC || report.Entries[2].Category != CategoryC {
		t.Fatalf("expected tail in C, got %s and %s", report.Entries[1].Category, report.Entries[2].Category)
	}
}

func TestClassifyRevenueCumulativeMonotonic(t *testing.T) {
	items := []ProductActivity{
		activityWithRevenue(1, "P1", 400),
		activityWithRevenue(2, "P2", 300),
		activityWithRevenue(3, "P3", 200),
		activityWithRevenue(4, "P4", 100),
	}

	report := ClassifyRevenue(items)
	var prev float64
	for _, entry := range report.Entries {
		if entry.CumulativePercent < prev {
			t.Fatalf("cumulative percent decreased at rank %d", entry.Rank)
		}
		prev = entry.CumulativePercent
	}
	if prev != 100 {
		t.Fatalf("expected cumulative to end at 100, got %.4f", prev)
	}
}

func TestClassifyRevenueSummaryPartitions(t *testing.T) {
	items := []ProductActivity{
		activityWithRevenue(1, "P1", 500),
		activityWithRevenue(2, "P2", 250),
		activityWithRevenue(3, "P3", 150),
		activityWithRevenue(4, "P4", 100),
	}

	report := ClassifyRevenue(items)
	var count int
	var revenue float64
	for _, summary := range report.Summary {
		count += summary.Count
		revenue += summary.Revenue
	}
	if count != len(items) {
		t.Fatalf("summary counts %d do not cover %d products", count, len(items))
	}
	if revenue != report.TotalRevenue {
		t.Fatalf("summary revenue %.2f does not match total %.2f", revenue, report.TotalRevenue)
	}
}

func TestClassifyRevenueZeroTotal(t *testing.T) {
	items := []ProductActivity{
		activityWithRevenue(1, "P1", 0),
		activityWithRevenue(2, "P2", 0),
	}

	report := ClassifyRevenue(items)
	if len(report.Entries) != 0 {
		t.Fatalf("expected empty classification for zero revenue, got %d entries", len(report.Entries))
	}
}
