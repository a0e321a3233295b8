// Package analytics computes derived figures from a ledger snapshot.
//
// Every function here is pure and total over well-formed records: empty
// input yields zero values, never an error. Malformed records are refused at
// the ledger boundary, not re-checked here.
package analytics

import (
	"sort"

	"fintrack/internal/core"
)

// MonthlyTotal is one calendar-month bucket of a yearly series.
type MonthlyTotal struct {
	Month   int        `json:"month"` // 1-12
	Income  core.Money `json:"income"`
	Expense core.Money `json:"expense"`
}

// CategoryAmount is an amount aggregated by category name.
type CategoryAmount struct {
	Category string     `json:"category"`
	Amount   core.Money `json:"amount"`
}

// SumByType sums the amounts of transactions matching the given type.
func SumByType(txns []core.Transaction, typ core.TransactionType) core.Money {
	var total core.Money
	for _, t := range txns {
		if t.Type == typ {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// SumByCategory sums the amounts of transactions whose category exactly
// equals the given one. A non-empty typ additionally filters by type.
func SumByCategory(txns []core.Transaction, category string, typ core.TransactionType) core.Money {
	var total core.Money
	for _, t := range txns {
		if t.Category != category {
			continue
		}
		if typ != "" && t.Type != typ {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}

// GroupByMonth buckets the given year's transactions into twelve calendar
// months, January first, zero-filled for months with no activity.
func GroupByMonth(txns []core.Transaction, year int) []MonthlyTotal {
	series := make([]MonthlyTotal, 12)
	for i := range series {
		series[i].Month = i + 1
	}
	for _, t := range txns {
		if t.Date.Year() != year {
			continue
		}
		bucket := &series[t.Date.MonthIndex()-1]
		switch t.Type {
		case core.Income:
			bucket.Income = bucket.Income.Add(t.Amount)
		case core.Expense:
			bucket.Expense = bucket.Expense.Add(t.Amount)
		}
	}
	return series
}

// TopCategories returns per-category totals for the given type, sorted
// descending by amount. Ties keep the order in which categories were first
// encountered. limit truncates the result, it never pads.
func TopCategories(txns []core.Transaction, typ core.TransactionType, limit int) []CategoryAmount {
	totals := make(map[string]core.Money)
	var order []string
	for _, t := range txns {
		if t.Type != typ {
			continue
		}
		if _, seen := totals[t.Category]; !seen {
			order = append(order, t.Category)
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	out := make([]CategoryAmount, 0, len(order))
	for _, cat := range order {
		out = append(out, CategoryAmount{Category: cat, Amount: totals[cat]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PercentageOf returns part as a percentage of whole. A zero whole yields 0,
// never a division by zero; this guard backs every percentage in the system
// (budget usage, goal progress, savings rate).
func PercentageOf(part, whole core.Money) float64 {
	if whole.Cents == 0 {
		return 0
	}
	return float64(part.Cents) / float64(whole.Cents) * 100
}
