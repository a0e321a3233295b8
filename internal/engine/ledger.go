package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

// TransactionInput is a transaction minus its id; ids are assigned by the
// engine at creation and never reused.
type TransactionInput struct {
	Type        core.TransactionType
	Amount      core.Money
	Category    string
	Description string
	Date        core.Date
	Recurring   bool
}

func (in TransactionInput) record(id string) core.Transaction {
	return core.Transaction{
		ID:          id,
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
		Recurring:   in.Recurring,
	}
}

// Transactions returns a snapshot of the ledger; mutating the returned
// slice does not affect the engine.
func (e *Engine) Transactions() []core.Transaction {
	e.mu.Lock()
	defer e.mu.Unlock()

	return snapshot(e.transactions)
}

// AddTransaction validates the input, appends it to the ledger under a new
// id and recomputes all budget aggregates before returning.
func (e *Engine) AddTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	t := in.record(uuid.NewString())
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.transactions = append(e.transactions, t)
	e.afterLedgerChange(ctx)

	e.log.InfoContext(ctx, "Transaction added",
		"id", t.ID,
		"type", t.Type,
		"category", t.Category,
		"amount_cents", t.Amount.Cents)

	return t, e.persist(ctx, e.saveLedgerAndBudgets(ctx))
}

// UpdateTransaction replaces the record with the given id in full; the id
// is preserved.
func (e *Engine) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (core.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findTransaction(id)
	if idx < 0 {
		return core.Transaction{}, fmt.Errorf("%w: transaction %s", core.ErrNotFound, id)
	}

	t := in.record(id)
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	e.transactions[idx] = t
	e.afterLedgerChange(ctx)

	e.log.InfoContext(ctx, "Transaction updated", "id", id)

	return t, e.persist(ctx, e.saveLedgerAndBudgets(ctx))
}

// DeleteTransaction removes the record. A missing id is an error, never
// silently ignored.
func (e *Engine) DeleteTransaction(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findTransaction(id)
	if idx < 0 {
		return fmt.Errorf("%w: transaction %s", core.ErrNotFound, id)
	}

	e.transactions = append(e.transactions[:idx], e.transactions[idx+1:]...)
	e.afterLedgerChange(ctx)

	e.log.InfoContext(ctx, "Transaction deleted", "id", id)

	return e.persist(ctx, e.saveLedgerAndBudgets(ctx))
}

func (e *Engine) findTransaction(id string) int {
	for i, t := range e.transactions {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// afterLedgerChange recomputes every budget against the mutated ledger and
// dispatches status-transition alerts. It runs before the mutation is
// observable by the caller.
func (e *Engine) afterLedgerChange(ctx context.Context) {
	e.notifyTransitions(ctx, e.recomputeBudgets())
}

// saveLedgerAndBudgets writes both collections touched by a ledger
// mutation: the ledger itself and the recomputed budget aggregates.
func (e *Engine) saveLedgerAndBudgets(ctx context.Context) error {
	if err := e.store.SaveTransactions(ctx, e.transactions); err != nil {
		return err
	}
	return e.store.SaveBudgets(ctx, e.budgets)
}
