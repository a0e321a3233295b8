package analytics

import (
	"testing"

	"fintrack/internal/core"
)

func txn(typ core.TransactionType, cents int64, category string, date core.Date) core.Transaction {
	return core.Transaction{
		Type:     typ,
		Amount:   core.Money{Cents: cents},
		Category: category,
		Date:     date,
	}
}

func sampleLedger() []core.Transaction {
	return []core.Transaction{
		txn(core.Expense, 10000, "Food", core.NewDate(2024, 1, 5)),
		txn(core.Expense, 5000, "Food", core.NewDate(2024, 1, 10)),
		txn(core.Income, 50000, "Salary", core.NewDate(2024, 1, 1)),
	}
}

func TestSumByTypeEmpty(t *testing.T) {
	if got := SumByType(nil, core.Income); got.Cents != 0 {
		t.Fatalf("expected 0, got %d", got.Cents)
	}
}

func TestSumByType(t *testing.T) {
	txns := sampleLedger()
	if got := SumByType(txns, core.Expense); got.Cents != 15000 {
		t.Fatalf("expense sum expected 15000, got %d", got.Cents)
	}
	if got := SumByType(txns, core.Income); got.Cents != 50000 {
		t.Fatalf("income sum expected 50000, got %d", got.Cents)
	}
}

func TestSumByCategory(t *testing.T) {
	txns := append(sampleLedger(), txn(core.Income, 700, "Food", core.NewDate(2024, 2, 1)))

	// Exact match only, no normalization
	if got := SumByCategory(txns, "food", core.Expense); got.Cents != 0 {
		t.Fatalf("case-different category must not match, got %d", got.Cents)
	}
	if got := SumByCategory(txns, "Food", core.Expense); got.Cents != 15000 {
		t.Fatalf("expected 15000, got %d", got.Cents)
	}
	// Empty type matches both kinds
	if got := SumByCategory(txns, "Food", ""); got.Cents != 15700 {
		t.Fatalf("expected 15700, got %d", got.Cents)
	}
}

func TestGroupByMonthEmpty(t *testing.T) {
	series := GroupByMonth(nil, 2024)
	if len(series) != 12 {
		t.Fatalf("expected 12 buckets, got %d", len(series))
	}
	for i, m := range series {
		if m.Month != i+1 {
			t.Fatalf("bucket %d expected month %d, got %d", i, i+1, m.Month)
		}
		if m.Income.Cents != 0 || m.Expense.Cents != 0 {
			t.Fatalf("bucket %d expected zero-filled, got %+v", i, m)
		}
	}
}

func TestGroupByMonth(t *testing.T) {
	txns := append(sampleLedger(),
		txn(core.Expense, 2000, "Food", core.NewDate(2023, 12, 31)), // other year
		txn(core.Expense, 3000, "Transport", core.NewDate(2024, 3, 15)),
	)
	series := GroupByMonth(txns, 2024)
	if series[0].Income.Cents != 50000 || series[0].Expense.Cents != 15000 {
		t.Fatalf("january expected 50000/15000, got %+v", series[0])
	}
	if series[2].Expense.Cents != 3000 {
		t.Fatalf("march expected 3000, got %+v", series[2])
	}
	if series[11].Expense.Cents != 0 {
		t.Fatalf("december expected empty, got %+v", series[11])
	}
}

func TestTopCategories(t *testing.T) {
	txns := []core.Transaction{
		txn(core.Expense, 100, "A", core.NewDate(2024, 1, 1)),
		txn(core.Expense, 300, "B", core.NewDate(2024, 1, 2)),
		txn(core.Expense, 100, "C", core.NewDate(2024, 1, 3)),
		txn(core.Expense, 200, "A", core.NewDate(2024, 1, 4)),
		txn(core.Income, 900, "Salary", core.NewDate(2024, 1, 5)),
	}

	got := TopCategories(txns, core.Expense, 10)
	want := []CategoryAmount{
		{Category: "A", Amount: core.Money{Cents: 300}},
		{Category: "B", Amount: core.Money{Cents: 300}},
		{Category: "C", Amount: core.Money{Cents: 100}},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entry %d expected %+v, got %+v", i, want[i], got[i])
		}
	}

	// limit truncates, never pads
	if got := TopCategories(txns, core.Expense, 2); len(got) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(got))
	}
	if got := TopCategories(nil, core.Expense, 5); len(got) != 0 {
		t.Fatalf("expected empty result, got %d", len(got))
	}
}

func TestPercentageOf(t *testing.T) {
	cases := []struct {
		part, whole int64
		want        float64
	}{
		{0, 0, 0},
		{100, 0, 0}, // zero-guard: never NaN or infinity
		{-50, 0, 0},
		{5000, 10000, 50},
		{15000, 12000, 125},
	}
	for _, tc := range cases {
		got := PercentageOf(core.Money{Cents: tc.part}, core.Money{Cents: tc.whole})
		if got != tc.want {
			t.Fatalf("%d/%d expected %v, got %v", tc.part, tc.whole, tc.want, got)
		}
	}
}
