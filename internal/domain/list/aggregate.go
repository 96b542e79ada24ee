package list

import "github.com/paguielng/shopisapp/internal/domain/item"

// Aggregate holds the derived fields of a list's item collection.
type Aggregate struct {
	ItemsCount     int
	CompletedCount int
	TotalSpent     float64
}

// Summarize recomputes the aggregate from scratch. It is the single source
// of truth for total_spent and the completion counters: nothing persists
// these values, so they can never drift from the items.
func Summarize(items []item.Item) Aggregate {
	var agg Aggregate

	for _, it := range items {
		agg.ItemsCount++
		agg.TotalSpent += it.Price * float64(it.Quantity)

		if it.Completed {
			agg.CompletedCount++
		}
	}

	return agg
}

// BudgetUtilization reports spend as a percentage of budget. The second
// return is false when the list has no budget, in which case the
// percentage is meaningless and callers must not render it.
func BudgetUtilization(totalSpent, budget float64) (float64, bool) {
	if budget <= 0 {
		return 0, false
	}

	return totalSpent / budget * 100, true
}
