// Package engine owns the canonical in-memory collections (ledger, budgets,
// goals, accounts, profile) and keeps every derived aggregate consistent
// across mutations.
//
// All operations are synchronous and run to completion: a caller never
// observes a ledger mutation without budget state already recomputed for it.
// A single mutex serializes every operation, so concurrent callers (the HTTP
// handlers run on per-request goroutines) always see fully-applied state.
// Saves are write-through; when the persistence collaborator fails the
// in-memory state stays authoritative and the failure is surfaced as a
// PersistenceError alongside the already-applied result.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type Engine struct {
	store    storage.Store
	notifier BudgetNotifier
	log      *slog.Logger

	// mu guards the collections and the profile. Operations are serialized
	// in full, write-through save included.
	mu sync.Mutex

	transactions []core.Transaction
	budgets      []core.Budget
	goals        []core.Goal
	accounts     []core.Account
	profile      core.Profile
}

type Option func(*Engine)

// WithNotifier installs the budget status-transition collaborator.
func WithNotifier(n BudgetNotifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New loads every collection from the store once and recomputes budget
// spent totals against the loaded ledger, so stale stored aggregates can
// never survive a restart.
func New(ctx context.Context, store storage.Store, opts ...Option) (*Engine, error) {
	e := &Engine{
		store: store,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}

	var err error
	if e.transactions, err = store.LoadTransactions(ctx); err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	if e.budgets, err = store.LoadBudgets(ctx); err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	if e.goals, err = store.LoadGoals(ctx); err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	if e.accounts, err = store.LoadAccounts(ctx); err != nil {
		return nil, fmt.Errorf("load accounts: %w", err)
	}
	if e.profile, err = store.LoadProfile(ctx); err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	for i := range e.budgets {
		e.budgets[i] = Recompute(e.budgets[i], e.transactions)
	}

	e.log.InfoContext(ctx, "Engine initialized",
		"transactions", len(e.transactions),
		"budgets", len(e.budgets),
		"goals", len(e.goals),
		"accounts", len(e.accounts))

	return e, nil
}

// Profile returns the stored user profile.
func (e *Engine) Profile() core.Profile {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.profile
}

// UpdateProfile replaces the profile and writes it through.
func (e *Engine) UpdateProfile(ctx context.Context, p core.Profile) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.profile = p
	return e.persist(ctx, e.store.SaveProfile(ctx, e.profile))
}

// persist wraps a store failure as a PersistenceError. The mutation has
// already been applied in memory by the time this runs; memory stays
// authoritative until the next successful save.
func (e *Engine) persist(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	e.log.ErrorContext(ctx, "Write-through save failed, in-memory state remains authoritative", "error", err)
	return fmt.Errorf("%w: %w", core.ErrPersistence, err)
}

func snapshot[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
