// Package memory implements the persistence collaborator in process memory.
// It is the default backend and the one the test suites run against.
package memory

import (
	"context"
	"sync"

	"fintrack/internal/core"
)

type Store struct {
	mu           sync.Mutex
	transactions []core.Transaction
	budgets      []core.Budget
	goals        []core.Goal
	accounts     []core.Account
	profile      core.Profile
}

func New() *Store {
	return &Store{}
}

// Seed pre-populates the store, used by tests and for demo data.
func (s *Store) Seed(txns []core.Transaction, budgets []core.Budget, goals []core.Goal, accounts []core.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = cloneSlice(txns)
	s.budgets = cloneSlice(budgets)
	s.goals = cloneSlice(goals)
	s.accounts = cloneSlice(accounts)
}

func (s *Store) LoadTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.transactions), nil
}

func (s *Store) SaveTransactions(_ context.Context, txns []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = cloneSlice(txns)
	return nil
}

func (s *Store) LoadBudgets(_ context.Context) ([]core.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.budgets), nil
}

func (s *Store) SaveBudgets(_ context.Context, budgets []core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets = cloneSlice(budgets)
	return nil
}

func (s *Store) LoadGoals(_ context.Context) ([]core.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.goals), nil
}

func (s *Store) SaveGoals(_ context.Context, goals []core.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals = cloneSlice(goals)
	return nil
}

func (s *Store) LoadAccounts(_ context.Context) ([]core.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneSlice(s.accounts), nil
}

func (s *Store) SaveAccounts(_ context.Context, accounts []core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = cloneSlice(accounts)
	return nil
}

func (s *Store) LoadProfile(_ context.Context) (core.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile, nil
}

func (s *Store) SaveProfile(_ context.Context, p core.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = p
	return nil
}

func (s *Store) Close() error {
	return nil
}

// cloneSlice keeps callers from aliasing the store's backing arrays.
func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}
