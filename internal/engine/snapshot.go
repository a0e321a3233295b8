package engine

import (
	"context"
	"fmt"

	"fintrack/internal/core"
)

// Snapshot is a full copy of the engine state, used by analytics reads and
// by the backup collaborator.
type Snapshot struct {
	Transactions []core.Transaction
	Budgets      []core.Budget
	Goals        []core.Goal
	Accounts     []core.Account
	Profile      core.Profile
}

// Snapshot copies out every collection plus the profile.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		Transactions: snapshot(e.transactions),
		Budgets:      snapshot(e.budgets),
		Goals:        snapshot(e.goals),
		Accounts:     snapshot(e.accounts),
		Profile:      e.profile,
	}
}

// Restore replaces the entire engine state from an imported snapshot.
// Every record is re-validated first and nothing is applied on failure;
// budget spent totals are rebuilt from the imported ledger, not trusted
// from the document.
func (e *Engine) Restore(ctx context.Context, s Snapshot) error {
	for _, t := range s.Transactions {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("transaction %s: %w", t.ID, err)
		}
	}
	for _, b := range s.Budgets {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("budget %s: %w", b.ID, err)
		}
	}
	for _, g := range s.Goals {
		if err := g.Validate(); err != nil {
			return fmt.Errorf("goal %s: %w", g.ID, err)
		}
	}
	for _, a := range s.Accounts {
		if err := a.Validate(); err != nil {
			return fmt.Errorf("account %s: %w", a.ID, err)
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.transactions = snapshot(s.Transactions)
	e.budgets = snapshot(s.Budgets)
	e.goals = snapshot(s.Goals)
	e.accounts = snapshot(s.Accounts)
	e.profile = s.Profile

	for i := range e.budgets {
		e.budgets[i] = Recompute(e.budgets[i], e.transactions)
	}

	e.log.InfoContext(ctx, "Engine state restored",
		"transactions", len(e.transactions),
		"budgets", len(e.budgets),
		"goals", len(e.goals),
		"accounts", len(e.accounts))

	return e.persist(ctx, e.saveAll(ctx))
}

func (e *Engine) saveAll(ctx context.Context) error {
	if err := e.store.SaveTransactions(ctx, e.transactions); err != nil {
		return err
	}
	if err := e.store.SaveBudgets(ctx, e.budgets); err != nil {
		return err
	}
	if err := e.store.SaveGoals(ctx, e.goals); err != nil {
		return err
	}
	if err := e.store.SaveAccounts(ctx, e.accounts); err != nil {
		return err
	}
	return e.store.SaveProfile(ctx, e.profile)
}
