package engine

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"fintrack/internal/analytics"
	"fintrack/internal/core"
	"fintrack/internal/storage/memory"
)

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *memory.Store) {
	t.Helper()
	store := memory.New()
	e, err := New(context.Background(), store, opts...)
	require.NoError(t, err)
	return e, store
}

func expenseInput(cents int64, category string, date core.Date) TransactionInput {
	return TransactionInput{
		Type:     core.Expense,
		Amount:   core.Money{Cents: cents},
		Category: category,
		Date:     date,
	}
}

// requireBudgetInvariant asserts the core consistency property: every
// budget's spent equals the exact expense sum of its category over the
// entire ledger.
func requireBudgetInvariant(t *testing.T, e *Engine) {
	t.Helper()
	txns := e.Transactions()
	for _, b := range e.Budgets() {
		want := analytics.SumByCategory(txns, b.Category, core.Expense)
		require.Equal(t, want.Cents, b.Spent.Cents, "budget %s (%s)", b.ID, b.Category)
	}
}

func TestBudgetSpentTracksLedger(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	budget, err := e.AddBudget(ctx, BudgetInput{Category: "Food", Limit: core.Money{Cents: 12000}, Period: core.Monthly})
	require.NoError(t, err)
	require.Zero(t, budget.Spent.Cents)
	require.Equal(t, core.StatusGood, StatusOf(budget))

	// Scenario from the ledger: 100 + 50 expenses on Food, 500 income
	_, err = e.AddTransaction(ctx, expenseInput(10000, "Food", core.NewDate(2024, 1, 5)))
	require.NoError(t, err)
	requireBudgetInvariant(t, e)

	second, err := e.AddTransaction(ctx, expenseInput(5000, "Food", core.NewDate(2024, 1, 10)))
	require.NoError(t, err)
	_, err = e.AddTransaction(ctx, TransactionInput{Type: core.Income, Amount: core.Money{Cents: 50000}, Category: "Salary", Date: core.NewDate(2024, 1, 1)})
	require.NoError(t, err)
	requireBudgetInvariant(t, e)

	got := e.Budgets()[0]
	require.Equal(t, int64(15000), got.Spent.Cents) // income never counts
	require.Equal(t, core.StatusOver, StatusOf(got)) // 150/120 = 125% >= 100%

	// Deleting a Food expense drops spent immediately
	require.NoError(t, e.DeleteTransaction(ctx, second.ID))
	requireBudgetInvariant(t, e)
	require.Equal(t, int64(10000), e.Budgets()[0].Spent.Cents)

	// Updating a transaction out of the category drops it too
	first := e.Transactions()[0]
	_, err = e.UpdateTransaction(ctx, first.ID, expenseInput(10000, "Transport", first.Date))
	require.NoError(t, err)
	requireBudgetInvariant(t, e)
	require.Zero(t, e.Budgets()[0].Spent.Cents)
}

func TestDeleteThenReinsertRestoresTotalsNotID(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	_, err := e.AddBudget(ctx, BudgetInput{Category: "Food", Limit: core.Money{Cents: 50000}, Period: core.Monthly})
	require.NoError(t, err)

	in := expenseInput(10000, "Food", core.NewDate(2024, 1, 5))
	original, err := e.AddTransaction(ctx, in)
	require.NoError(t, err)

	require.NoError(t, e.DeleteTransaction(ctx, original.ID))
	require.Zero(t, e.Budgets()[0].Spent.Cents)

	reinserted, err := e.AddTransaction(ctx, in)
	require.NoError(t, err)
	require.Equal(t, int64(10000), e.Budgets()[0].Spent.Cents)
	require.NotEqual(t, original.ID, reinserted.ID) // ids are never reused
}

func TestRecomputeIdempotent(t *testing.T) {
	txns := []core.Transaction{
		{ID: "1", Type: core.Expense, Amount: core.Money{Cents: 10000}, Category: "Food", Date: core.NewDate(2024, 1, 5)},
	}
	b := core.Budget{ID: "b", Category: "Food", Limit: core.Money{Cents: 12000}, Period: core.Monthly}

	once := Recompute(b, txns)
	twice := Recompute(once, txns)
	require.Equal(t, once, twice)
	require.Equal(t, StatusOf(once), StatusOf(twice))
}

func TestStatusBoundaries(t *testing.T) {
	cases := []struct {
		spent int64
		want  core.BudgetStatus
	}{
		{0, core.StatusGood},
		{7999, core.StatusGood},
		{8000, core.StatusWarning}, // 80% inclusive
		{9999, core.StatusWarning},
		{10000, core.StatusOver}, // 100% inclusive
		{25000, core.StatusOver},
	}
	for _, tc := range cases {
		b := core.Budget{Limit: core.Money{Cents: 10000}, Spent: core.Money{Cents: tc.spent}}
		require.Equal(t, tc.want, StatusOf(b), "spent=%d", tc.spent)
	}

	// Zero limit is invalid input, but classification still never divides
	// by zero: percentage reads 0, status good.
	require.Equal(t, core.StatusGood, StatusOf(core.Budget{Spent: core.Money{Cents: 500}}))
}

func TestMutationErrors(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	_, err := e.AddTransaction(ctx, expenseInput(100, "", core.NewDate(2024, 1, 1)))
	require.ErrorIs(t, err, core.ErrValidation)
	require.Empty(t, e.Transactions())

	_, err = e.UpdateTransaction(ctx, "missing", expenseInput(100, "Food", core.NewDate(2024, 1, 1)))
	require.ErrorIs(t, err, core.ErrNotFound)

	// Deleting an absent id is an error, never a silent no-op
	require.ErrorIs(t, e.DeleteTransaction(ctx, "missing"), core.ErrNotFound)

	_, err = e.AddBudget(ctx, BudgetInput{Category: "Food", Limit: core.Money{Cents: 0}, Period: core.Monthly})
	require.ErrorIs(t, err, core.ErrValidation)
	require.ErrorIs(t, e.DeleteBudget(ctx, "missing"), core.ErrNotFound)
}

// flakyStore fails transaction saves on demand while the embedded memory
// store keeps working for everything else.
type flakyStore struct {
	*memory.Store
	failSaves bool
}

func (f *flakyStore) SaveTransactions(ctx context.Context, txns []core.Transaction) error {
	if f.failSaves {
		return errors.New("disk full")
	}
	return f.Store.SaveTransactions(ctx, txns)
}

func TestSaveFailureLeavesMemoryAuthoritative(t *testing.T) {
	ctx := context.Background()
	store := &flakyStore{Store: memory.New()}
	e, err := New(ctx, store)
	require.NoError(t, err)

	store.failSaves = true
	txn, err := e.AddTransaction(ctx, expenseInput(10000, "Food", core.NewDate(2024, 1, 5)))
	require.ErrorIs(t, err, core.ErrPersistence)

	// The mutation is applied in memory and the record was still returned
	require.NotEmpty(t, txn.ID)
	require.Len(t, e.Transactions(), 1)

	// No rollback: the next successful save persists the applied state
	store.failSaves = false
	_, err = e.AddTransaction(ctx, expenseInput(5000, "Food", core.NewDate(2024, 1, 6)))
	require.NoError(t, err)

	persisted, err := store.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, 2)
}

// captureNotifier records alerts instead of publishing them.
type captureNotifier struct {
	alerts []BudgetAlert
	fail   bool
}

func (n *captureNotifier) NotifyBudgetStatus(_ context.Context, alert BudgetAlert) error {
	if n.fail {
		return errors.New("broker unavailable")
	}
	n.alerts = append(n.alerts, alert)
	return nil
}

func TestStatusTransitionNotifications(t *testing.T) {
	ctx := context.Background()
	notifier := &captureNotifier{}
	e, _ := newTestEngine(t, WithNotifier(notifier))

	require.NoError(t, e.UpdateProfile(ctx, core.Profile{
		Notifications: core.NotificationPrefs{BudgetAlerts: true},
	}))

	_, err := e.AddBudget(ctx, BudgetInput{Category: "Food", Limit: core.Money{Cents: 10000}, Period: core.Monthly})
	require.NoError(t, err)

	// good -> warning
	_, err = e.AddTransaction(ctx, expenseInput(8500, "Food", core.NewDate(2024, 1, 5)))
	require.NoError(t, err)
	require.Len(t, notifier.alerts, 1)
	require.Equal(t, core.StatusGood, notifier.alerts[0].From)
	require.Equal(t, core.StatusWarning, notifier.alerts[0].To)

	// warning -> over
	_, err = e.AddTransaction(ctx, expenseInput(2000, "Food", core.NewDate(2024, 1, 6)))
	require.NoError(t, err)
	require.Len(t, notifier.alerts, 2)
	require.Equal(t, core.StatusOver, notifier.alerts[1].To)
	require.Equal(t, float64(105), notifier.alerts[1].Percent)

	// Same-status mutations stay silent
	_, err = e.AddTransaction(ctx, expenseInput(100, "Food", core.NewDate(2024, 1, 7)))
	require.NoError(t, err)
	require.Len(t, notifier.alerts, 2)

	// A failing notifier never fails the mutation
	notifier.fail = true
	require.NoError(t, e.DeleteTransaction(ctx, e.Transactions()[0].ID))
}

func TestAlertsGatedByProfilePreference(t *testing.T) {
	ctx := context.Background()
	notifier := &captureNotifier{}
	e, _ := newTestEngine(t, WithNotifier(notifier))

	// BudgetAlerts defaults off
	_, err := e.AddBudget(ctx, BudgetInput{Category: "Food", Limit: core.Money{Cents: 1000}, Period: core.Weekly})
	require.NoError(t, err)
	_, err = e.AddTransaction(ctx, expenseInput(5000, "Food", core.NewDate(2024, 1, 5)))
	require.NoError(t, err)
	require.Empty(t, notifier.alerts)
}

func TestRestartRebuildsSpentFromLedger(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	store.Seed(
		[]core.Transaction{
			{ID: "t1", Type: core.Expense, Amount: core.Money{Cents: 15000}, Category: "Food", Date: core.NewDate(2024, 1, 5)},
		},
		// Stored spent is stale on purpose; load must not trust it
		[]core.Budget{
			{ID: "b1", Category: "Food", Limit: core.Money{Cents: 12000}, Period: core.Monthly, Spent: core.Money{Cents: 999}},
		},
		nil, nil,
	)

	e, err := New(ctx, store)
	require.NoError(t, err)
	require.Equal(t, int64(15000), e.Budgets()[0].Spent.Cents)
	require.Equal(t, core.StatusOver, StatusOf(e.Budgets()[0]))
}

func TestRestoreRejectsInvalidRecordsWholesale(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)

	_, err := e.AddTransaction(ctx, expenseInput(100, "Food", core.NewDate(2024, 1, 1)))
	require.NoError(t, err)

	bad := Snapshot{
		Transactions: []core.Transaction{
			{ID: "x", Type: "transfer", Amount: core.Money{Cents: 1}, Category: "c", Date: core.NewDate(2024, 1, 1)},
		},
	}
	require.ErrorIs(t, e.Restore(ctx, bad), core.ErrValidation)

	// Nothing was applied
	require.Len(t, e.Transactions(), 1)
	require.Equal(t, "Food", e.Transactions()[0].Category)
}

func TestRestoreRecomputesBudgets(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t)

	snap := Snapshot{
		Transactions: []core.Transaction{
			{ID: "t1", Type: core.Expense, Amount: core.Money{Cents: 9000}, Category: "Food", Date: core.NewDate(2024, 2, 1)},
		},
		Budgets: []core.Budget{
			// Document claims 0 spent; the import must not believe it
			{ID: "b1", Category: "Food", Limit: core.Money{Cents: 10000}, Period: core.Monthly},
		},
	}
	require.NoError(t, e.Restore(ctx, snap))
	require.Equal(t, int64(9000), e.Budgets()[0].Spent.Cents)

	persisted, err := store.LoadBudgets(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(9000), persisted[0].Spent.Cents)
}

func TestConcurrentMutationsSerialize(t *testing.T) {
	ctx := context.Background()
	e, store := newTestEngine(t)

	_, err := e.AddBudget(ctx, BudgetInput{Category: "Food", Limit: core.Money{Cents: 100000}, Period: core.Monthly})
	require.NoError(t, err)

	// Handlers run on per-request goroutines; mutations must serialize so
	// no insert is lost and spent stays consistent with the final ledger.
	const writers = 16
	var wg sync.WaitGroup
	wg.Add(writers)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			_, err := e.AddTransaction(ctx, expenseInput(1000, "Food", core.NewDate(2024, 3, 1)))
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	require.Len(t, e.Transactions(), writers)
	requireBudgetInvariant(t, e)
	require.Equal(t, int64(writers*1000), e.Budgets()[0].Spent.Cents)

	persisted, err := store.LoadTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, persisted, writers)
}
