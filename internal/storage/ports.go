// Package storage defines the persistence collaborator consumed by the
// engine. The engine loads every collection once at startup and writes the
// affected collection through after each successful mutation; backends treat
// each save as an atomic, all-or-nothing snapshot replace.
package storage

import (
	"context"

	"fintrack/internal/core"
)

// Logical collection keys. Backends and the backup document agree on these
// names.
const (
	KeyTransactions = "transactions"
	KeyBudgets      = "budgets"
	KeyGoals        = "goals"
	KeyAccounts     = "accounts"
	KeyProfile      = "profile"
)

// Ports for the persistence backends, one pair per collection.
type (
	TransactionStore interface {
		LoadTransactions(ctx context.Context) ([]core.Transaction, error)
		SaveTransactions(ctx context.Context, txns []core.Transaction) error
	}

	BudgetStore interface {
		LoadBudgets(ctx context.Context) ([]core.Budget, error)
		SaveBudgets(ctx context.Context, budgets []core.Budget) error
	}

	GoalStore interface {
		LoadGoals(ctx context.Context) ([]core.Goal, error)
		SaveGoals(ctx context.Context, goals []core.Goal) error
	}

	AccountStore interface {
		LoadAccounts(ctx context.Context) ([]core.Account, error)
		SaveAccounts(ctx context.Context, accounts []core.Account) error
	}

	ProfileStore interface {
		// LoadProfile returns the stored profile, or the zero value when
		// none has been saved yet.
		LoadProfile(ctx context.Context) (core.Profile, error)
		SaveProfile(ctx context.Context, p core.Profile) error
	}
)

// Store is the full persistence surface the engine is constructed with.
type Store interface {
	TransactionStore
	BudgetStore
	GoalStore
	AccountStore
	ProfileStore

	Close() error
}
