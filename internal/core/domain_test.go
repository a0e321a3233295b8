package core

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		Type:     Expense,
		Amount:   Money{Cents: 10000},
		Category: "Food",
		Date:     NewDate(2024, 1, 5),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Type: "transfer", Amount: Money{Cents: 1}, Category: "c", Date: NewDate(2024, 1, 1)},
		{Type: Expense, Amount: Money{Cents: -1}, Category: "c", Date: NewDate(2024, 1, 1)},
		{Type: Expense, Amount: Money{Cents: 1}, Category: " ", Date: NewDate(2024, 1, 1)},
		{Type: Expense, Amount: Money{Cents: 1}, Category: "c"}, // zero date
	}
	for i, txn := range bads {
		err := txn.Validate()
		if err == nil {
			t.Fatalf("case %d expected error", i)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d expected validation kind, got %v", i, err)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{Category: "Food", Limit: Money{Cents: 12000}, Period: Monthly}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Budget{
		{Category: "", Limit: Money{Cents: 1}, Period: Monthly},
		{Category: "Food", Limit: Money{Cents: 0}, Period: Monthly},
		{Category: "Food", Limit: Money{Cents: 1}, Period: "daily"},
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestGoalValidate(t *testing.T) {
	good := Goal{Title: "Emergency fund", TargetAmount: Money{Cents: 100000}, Deadline: NewDate(2025, 6, 1)}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []Goal{
		{Title: "", TargetAmount: Money{Cents: 1}, Deadline: NewDate(2025, 1, 1)},
		{Title: "t", TargetAmount: Money{Cents: 0}, Deadline: NewDate(2025, 1, 1)},
		{Title: "t", TargetAmount: Money{Cents: 1}, CurrentAmount: Money{Cents: -5}, Deadline: NewDate(2025, 1, 1)},
		{Title: "t", TargetAmount: Money{Cents: 1}},
	}
	for i, g := range bads {
		if err := g.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestAccountValidate(t *testing.T) {
	good := Account{Name: "UOB Credit Card", Type: Credit, Balance: Money{Cents: -250000}, Currency: "SGD"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok for negative balance, got %v", err)
	}
	if err := (Account{Name: "x", Type: "wallet"}).Validate(); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	if err := (Account{Name: "", Type: Checking}).Validate(); err == nil {
		t.Fatalf("expected error for empty name")
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, 1, 5)
	raw, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(raw) != `"2024-01-05"` {
		t.Fatalf("unexpected encoding %s", raw)
	}
	var back Date
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Equal(d.Time) {
		t.Fatalf("round trip mismatch: %v != %v", back, d)
	}
	if err := json.Unmarshal([]byte(`"05/01/2024"`), &back); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}
