package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"fintrack/internal/core"
)

// GoalInput is a goal minus its id. CurrentAmount admits a starting value;
// afterwards it moves only through Contribute.
type GoalInput struct {
	Title         string
	Category      string
	TargetAmount  core.Money
	CurrentAmount core.Money
	Deadline      core.Date
}

func (in GoalInput) record(id string) core.Goal {
	return core.Goal{
		ID:            id,
		Title:         in.Title,
		Category:      in.Category,
		TargetAmount:  in.TargetAmount,
		CurrentAmount: in.CurrentAmount,
		Deadline:      in.Deadline,
	}
}

// Goals returns a snapshot of all goals.
func (e *Engine) Goals() []core.Goal {
	e.mu.Lock()
	defer e.mu.Unlock()

	return snapshot(e.goals)
}

func (e *Engine) AddGoal(ctx context.Context, in GoalInput) (core.Goal, error) {
	g := in.record(uuid.NewString())
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.goals = append(e.goals, g)

	e.log.InfoContext(ctx, "Goal added", "id", g.ID, "title", g.Title, "target_cents", g.TargetAmount.Cents)

	return g, e.persist(ctx, e.store.SaveGoals(ctx, e.goals))
}

func (e *Engine) UpdateGoal(ctx context.Context, id string, in GoalInput) (core.Goal, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findGoal(id)
	if idx < 0 {
		return core.Goal{}, fmt.Errorf("%w: goal %s", core.ErrNotFound, id)
	}

	g := in.record(id)
	if err := g.Validate(); err != nil {
		return core.Goal{}, err
	}

	e.goals[idx] = g

	e.log.InfoContext(ctx, "Goal updated", "id", id)

	return g, e.persist(ctx, e.store.SaveGoals(ctx, e.goals))
}

func (e *Engine) DeleteGoal(ctx context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findGoal(id)
	if idx < 0 {
		return fmt.Errorf("%w: goal %s", core.ErrNotFound, id)
	}

	e.goals = append(e.goals[:idx], e.goals[idx+1:]...)

	e.log.InfoContext(ctx, "Goal deleted", "id", id)

	return e.persist(ctx, e.store.SaveGoals(ctx, e.goals))
}

// Contribute adds a positive amount to the goal's current total.
// Contributions are not ledger transactions and never appear in analytics.
// Contributing past the target is allowed; progress simply reads over 100%.
func (e *Engine) Contribute(ctx context.Context, id string, amount core.Money) (core.Goal, error) {
	if err := amount.ValidatePositive(); err != nil {
		return core.Goal{}, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.findGoal(id)
	if idx < 0 {
		return core.Goal{}, fmt.Errorf("%w: goal %s", core.ErrNotFound, id)
	}

	e.goals[idx].CurrentAmount = e.goals[idx].CurrentAmount.Add(amount)
	g := e.goals[idx]

	e.log.InfoContext(ctx, "Goal contribution applied",
		"id", id,
		"amount_cents", amount.Cents,
		"current_cents", g.CurrentAmount.Cents)

	return g, e.persist(ctx, e.store.SaveGoals(ctx, e.goals))
}

func (e *Engine) findGoal(id string) int {
	for i, g := range e.goals {
		if g.ID == id {
			return i
		}
	}
	return -1
}
