package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
)

// BudgetInput is a budget minus its id and derived spent total.
type BudgetInput struct {
	Category string
	Limit    core.Money
	Period   core.BudgetPeriod
}

// Recompute returns the budget with its spent total rebuilt from the full
// ledger: the sum of expense transactions whose category exactly equals the
// budget's. It is pure, total and idempotent.
func Recompute(b core.Budget, txns []core.Transaction) core.Budget {
	b.Spent = analytics.SumByCategory(txns, b.Category, core.Expense)
	return b
}

// StatusOf classifies a budget: good below 80% usage, warning from 80%
// up to but excluding 100%, over at and past 100%.
func StatusOf(b core.Budget) core.BudgetStatus {
	pct := analytics.PercentageOf(b.Spent, b.Limit)
	switch {
	case pct >= 100:
		return core.StatusOver
	case pct >= 80:
		return core.StatusWarning
	default:
		return core.StatusGood
	}
}

// Budgets returns a snapshot of all budgets with their current aggregates.
func (e *Engine) Budgets() []core.Budget {
	e.mu.Lock()
	defer e.mu.Unlock()

	return snapshot(e.budgets)
}

// AddBudget validates the input and stores the budget with its spent total
// computed from the current ledger.
func (e *Engine) AddBudget(ctx context.Context, in BudgetInput) (core.Budget, error) {
	b := core.Budget{
		ID:       uuid.NewString(),
		Category: in.Category,
		Limit:    in.Limit,
		Period:   in.Period,
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	b = Recompute(b, e.transactions)
	e.budgets = append(e.budgets, b)

	e.log.InfoContext(ctx, "Budget added",
		"id", b.ID,
		"category", b.Category,
		"limit_cents", b.Limit.Cents,
		"status", StatusOf(b))

	return b, e.persist(ctx, e.store.SaveBudgets(ctx, e.budgets))
}

// UpdateBudget replaces category, limit and period; spent is recomputed,
// never taken from the caller. A status change caused by the edit is
// dispatched like any ledger-driven transition.
func (e *Engine) UpdateBudget(ctx context.Context, id string, in BudgetInput) (core.Budget, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findBudget(id)
	if idx < 0 {
		return core.Budget{}, fmt.Errorf("%w: budget %s", core.ErrNotFound, id)
	}

	b := core.Budget{ID: id, Category: in.Category, Limit: in.Limit, Period: in.Period}
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	before := StatusOf(e.budgets[idx])
	b = Recompute(b, e.transactions)
	e.budgets[idx] = b

	if after := StatusOf(b); after != before {
		e.notifyTransitions(ctx, []statusChange{{budget: b, from: before, to: after}})
	}

	e.log.InfoContext(ctx, "Budget updated", "id", id, "category", b.Category)

	return b, e.persist(ctx, e.store.SaveBudgets(ctx, e.budgets))
}

// DeleteBudget removes the budget from tracking. The ledger is untouched.
func (e *Engine) DeleteBudget(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findBudget(id)
	if idx < 0 {
		return fmt.Errorf("%w: budget %s", core.ErrNotFound, id)
	}

	e.budgets = append(e.budgets[:idx], e.budgets[idx+1:]...)

	e.log.InfoContext(ctx, "Budget deleted", "id", id)

	return e.persist(ctx, e.store.SaveBudgets(ctx, e.budgets))
}

func (e *Engine) findBudget(id string) int {
	for i, b := range e.budgets {
		if b.ID == id {
			return i
		}
	}
	return -1
}

type statusChange struct {
	budget core.Budget
	from   core.BudgetStatus
	to     core.BudgetStatus
}

// recomputeBudgets rebuilds every spent total from the ledger and reports
// which budgets changed status.
func (e *Engine) recomputeBudgets() []statusChange {
	var changes []statusChange
	for i := range e.budgets {
		before := StatusOf(e.budgets[i])
		e.budgets[i] = Recompute(e.budgets[i], e.transactions)
		if after := StatusOf(e.budgets[i]); after != before {
			changes = append(changes, statusChange{budget: e.budgets[i], from: before, to: after})
		}
	}
	return changes
}

// notifyTransitions hands status changes to the notification collaborator.
// Alerts are gated by the profile preference and a failed notification
// never fails the mutation that caused it.
func (e *Engine) notifyTransitions(ctx context.Context, changes []statusChange) {
	if e.notifier == nil || !e.profile.Notifications.BudgetAlerts {
		return
	}
	for _, c := range changes {
		alert := BudgetAlert{
			BudgetID: c.budget.ID,
			Category: c.budget.Category,
			From:     c.from,
			To:       c.to,
			Spent:    c.budget.Spent,
			Limit:    c.budget.Limit,
			Percent:  analytics.PercentageOf(c.budget.Spent, c.budget.Limit),
		}
		if err := e.notifier.NotifyBudgetStatus(ctx, alert); err != nil {
			e.log.ErrorContext(ctx, "Failed to dispatch budget alert",
				"budget_id", c.budget.ID,
				"to", c.to,
				"error", err)
		}
	}
}
