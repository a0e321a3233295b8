package http

import (
	"errors"
	"testing"

	"fintrack/internal/core"
)

func TestTransactionRequestToInput(t *testing.T) {
	req := transactionRequest{
		Type:        " expense ",
		Amount:      "12,34",
		Category:    " Food ",
		Description: "groceries",
		Date:        "2025-03-10",
		Recurring:   true,
	}

	in, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput() error = %v", err)
	}
	if in.Type != core.Expense {
		t.Errorf("Type = %v, want expense", in.Type)
	}
	if in.Amount.Cents != 1234 {
		t.Errorf("Amount = %d cents, want 1234", in.Amount.Cents)
	}
	if in.Category != "Food" {
		t.Errorf("Category = %q, want Food", in.Category)
	}
	if !in.Recurring {
		t.Error("Recurring should be true")
	}
	if in.Date.String() != "2025-03-10" {
		t.Errorf("Date = %v, want 2025-03-10", in.Date)
	}
}

func TestTransactionRequestRejectsBadFields(t *testing.T) {
	tests := []struct {
		name string
		req  transactionRequest
	}{
		{"bad amount", transactionRequest{Type: "expense", Amount: "12.3.4", Date: "2025-03-10"}},
		{"signed amount", transactionRequest{Type: "expense", Amount: "-5", Date: "2025-03-10"}},
		{"empty amount", transactionRequest{Type: "expense", Amount: "", Date: "2025-03-10"}},
		{"bad date", transactionRequest{Type: "expense", Amount: "5.00", Date: "03/10/2025"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.toInput()
			if err == nil {
				t.Fatal("toInput() expected error")
			}
			if !errors.Is(err, core.ErrValidation) {
				t.Errorf("error %v should wrap ErrValidation", err)
			}
		})
	}
}

func TestGoalRequestDefaultsCurrentAmount(t *testing.T) {
	req := goalRequest{
		Title:        "Vacation",
		Category:     "Travel",
		TargetAmount: "1000.00",
		Deadline:     "2026-06-01",
	}

	in, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput() error = %v", err)
	}
	if in.CurrentAmount.Cents != 0 {
		t.Errorf("CurrentAmount = %d, want 0", in.CurrentAmount.Cents)
	}
	if in.TargetAmount.Cents != 100000 {
		t.Errorf("TargetAmount = %d, want 100000", in.TargetAmount.Cents)
	}
}

func TestAccountRequestAcceptsSignedBalance(t *testing.T) {
	req := accountRequest{
		Name:     "Card",
		Type:     "credit",
		Balance:  "-25.00",
		Currency: "EUR",
	}

	in, err := req.toInput()
	if err != nil {
		t.Fatalf("toInput() error = %v", err)
	}
	if in.Balance.Cents != -2500 {
		t.Errorf("Balance = %d cents, want -2500", in.Balance.Cents)
	}
}
