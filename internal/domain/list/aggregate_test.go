package list_test

import (
	"math"
	"testing"

	"github.com/paguielng/shopisapp/internal/domain/item"
	"github.com/paguielng/shopisapp/internal/domain/list"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name          string
		items         []item.Item
		wantCount     int
		wantCompleted int
		wantSpent     float64
	}{
		{
			name:  "empty",
			items: nil,
		},
		{
			name: "single_item_price_times_quantity",
			items: []item.Item{
				{Name: "Milk", Quantity: 2, Price: 3.99},
			},
			wantCount: 1,
			wantSpent: 7.98,
		},
		{
			name: "mixed_completion",
			items: []item.Item{
				{Name: "Milk", Quantity: 2, Price: 3.99, Completed: true},
				{Name: "Bread", Quantity: 1, Price: 2.50},
				{Name: "Eggs", Quantity: 3, Price: 0.40, Completed: true},
			},
			wantCount:     3,
			wantCompleted: 2,
			wantSpent:     7.98 + 2.50 + 1.20,
		},
		{
			name: "zero_price_items_count_but_cost_nothing",
			items: []item.Item{
				{Name: "Coupon item", Quantity: 5, Price: 0},
			},
			wantCount: 1,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			agg := list.Summarize(tt.items)

			if agg.ItemsCount != tt.wantCount {
				t.Errorf("ItemsCount = %d, want %d", agg.ItemsCount, tt.wantCount)
			}
			if agg.CompletedCount != tt.wantCompleted {
				t.Errorf("CompletedCount = %d, want %d", agg.CompletedCount, tt.wantCompleted)
			}
			if !almostEqual(agg.TotalSpent, tt.wantSpent) {
				t.Errorf("TotalSpent = %v, want %v", agg.TotalSpent, tt.wantSpent)
			}
		})
	}
}

// Toggling completion twice must land back on the starting counters.
func TestSummarizeToggleRoundTrip(t *testing.T) {
	items := []item.Item{
		{Name: "Milk", Quantity: 2, Price: 3.99},
		{Name: "Bread", Quantity: 1, Price: 2.50, Completed: true},
	}

	before := list.Summarize(items)

	items[0].Completed = true
	on := list.Summarize(items)

	if on.CompletedCount != before.CompletedCount+1 {
		t.Fatalf("after toggle on: CompletedCount = %d, want %d", on.CompletedCount, before.CompletedCount+1)
	}

	items[0].Completed = false
	off := list.Summarize(items)

	if off.CompletedCount != before.CompletedCount {
		t.Fatalf("after toggle off: CompletedCount = %d, want %d", off.CompletedCount, before.CompletedCount)
	}

	if !almostEqual(off.TotalSpent, before.TotalSpent) {
		t.Fatalf("TotalSpent changed across toggles: %v vs %v", off.TotalSpent, before.TotalSpent)
	}
}

func TestBudgetUtilization(t *testing.T) {
	pct, ok := list.BudgetUtilization(7.98, 120.00)

	if !ok {
		t.Fatal("expected utilization to be defined for a positive budget")
	}

	if !almostEqual(pct, 7.98/120.00*100) {
		t.Fatalf("pct = %v", pct)
	}

	if _, ok := list.BudgetUtilization(10, 0); ok {
		t.Fatal("utilization must be undefined for a zero budget")
	}

	if _, ok := list.BudgetUtilization(10, -5); ok {
		t.Fatal("utilization must be undefined for a negative budget")
	}
}
