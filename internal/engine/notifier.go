package engine

import (
	"context"

	"fintrack/internal/core"
)

// BudgetAlert describes one budget status transition.
type BudgetAlert struct {
	BudgetID string            `json:"budgetId"`
	Category string            `json:"category"`
	From     core.BudgetStatus `json:"from"`
	To       core.BudgetStatus `json:"to"`
	Spent    core.Money        `json:"spent"`
	Limit    core.Money        `json:"limit"`
	Percent  float64           `json:"percent"`
}

// BudgetNotifier receives budget status transitions. Implementations must
// tolerate being called synchronously on the mutation path; a returned
// error is logged, never propagated to the mutating caller.
type BudgetNotifier interface {
	NotifyBudgetStatus(ctx context.Context, alert BudgetAlert) error
}
