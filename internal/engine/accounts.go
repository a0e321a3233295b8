package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

// AccountInput is an account minus its id. Balances are user-authored
// snapshots; the engine deliberately does not derive them from the ledger.
type AccountInput struct {
	Name        string
	Type        core.AccountType
	Balance     core.Money
	Currency    string
	Description string
}

func (in AccountInput) record(id string) core.Account {
	return core.Account{
		ID:          id,
		Name:        in.Name,
		Type:        in.Type,
		Balance:     in.Balance,
		Currency:    in.Currency,
		Description: in.Description,
	}
}

// Accounts returns a snapshot of all accounts.
func (e *Engine) Accounts() []core.Account {
	e.mu.Lock()
	defer e.mu.Unlock()

	return snapshot(e.accounts)
}

// NetWorth sums all account balances, signed.
func (e *Engine) NetWorth() core.Money {
	e.mu.Lock()
	defer e.mu.Unlock()

	return analytics.NetWorth(e.accounts)
}

func (e *Engine) AddAccount(ctx context.Context, in AccountInput) (core.Account, error) {
	a := in.record(uuid.NewString())
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.accounts = append(e.accounts, a)

	e.log.InfoContext(ctx, "Account added", "id", a.ID, "name", a.Name, "type", a.Type)

	return a, e.persist(ctx, e.store.SaveAccounts(ctx, e.accounts))
}

func (e *Engine) UpdateAccount(ctx context.Context, id string, in AccountInput) (core.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findAccount(id)
	if idx < 0 {
		return core.Account{}, fmt.Errorf("%w: account %s", core.ErrNotFound, id)
	}

	a := in.record(id)
	if err := a.Validate(); err != nil {
		return core.Account{}, err
	}

	e.accounts[idx] = a

	e.log.InfoContext(ctx, "Account updated", "id", id)

	return a, e.persist(ctx, e.store.SaveAccounts(ctx, e.accounts))
}

func (e *Engine) DeleteAccount(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findAccount(id)
	if idx < 0 {
		return fmt.Errorf("%w: account %s", core.ErrNotFound, id)
	}

	e.accounts = append(e.accounts[:idx], e.accounts[idx+1:]...)

	e.log.InfoContext(ctx, "Account deleted", "id", id)

	return e.persist(ctx, e.store.SaveAccounts(ctx, e.accounts))
}

func (e *Engine) findAccount(id string) int {
	for i, a := range e.accounts {
		if a.ID == id {
			return i
		}
	}
	return -1
}
