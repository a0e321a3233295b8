package backup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/engine"
)

func TestExportParseRoundTrip(t *testing.T) {
	snap := engine.Snapshot{
		Transactions: []core.Transaction{
			{ID: "t1", Type: core.Expense, Amount: core.Money{Cents: 10000}, Category: "Food", Date: core.NewDate(2024, 1, 5)},
		},
		Budgets: []core.Budget{
			{ID: "b1", Category: "Food", Limit: core.Money{Cents: 12000}, Period: core.Monthly, Spent: core.Money{Cents: 10000}},
		},
		Goals: []core.Goal{
			{ID: "g1", Title: "Fund", TargetAmount: core.Money{Cents: 100000}, Deadline: core.NewDate(2025, 6, 1)},
		},
		Accounts: []core.Account{
			{ID: "a1", Name: "DBS", Type: core.Savings, Balance: core.Money{Cents: 1500000}, Currency: "SGD"},
		},
		Profile: core.Profile{Name: "John Doe", Currency: "SGD"},
	}

	raw, err := Export(snap, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)).Marshal()
	require.NoError(t, err)

	back, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, snap, back)
}

func TestParseRejectsPartialDocuments(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing accounts", `{"transactions":[],"budgets":[],"goals":[]}`},
		{"missing transactions", `{"budgets":[],"goals":[],"accounts":[]}`},
		{"empty object", `{}`},
		{"not json", `not json`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			require.ErrorIs(t, err, core.ErrValidation)
		})
	}
}

func TestParseAcceptsExplicitEmptyCollections(t *testing.T) {
	snap, err := Parse([]byte(`{"transactions":[],"budgets":[],"goals":[],"accounts":[]}`))
	require.NoError(t, err)
	require.Empty(t, snap.Transactions)
	require.Empty(t, snap.Accounts)
}
