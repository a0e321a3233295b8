package analytics

import (
	"time"

	"fintrack/internal/core"
)

// Summary is the headline cashflow view over a transaction set.
type Summary struct {
	Income      core.Money `json:"income"`
	Expense     core.Money `json:"expense"`
	Net         core.Money `json:"net"`
	SavingsRate float64    `json:"savingsRate"` // percent of income kept
}

// AccountGroup is one bucket of the per-type account breakdown.
type AccountGroup struct {
	Type     core.AccountType `json:"type"`
	Total    core.Money       `json:"total"`
	Accounts []core.Account   `json:"accounts"`
}

// Summarize computes total income, total expense, net cashflow and the
// savings rate for a transaction set.
func Summarize(txns []core.Transaction) Summary {
	income := SumByType(txns, core.Income)
	expense := SumByType(txns, core.Expense)
	return Summary{
		Income:      income,
		Expense:     expense,
		Net:         income.Sub(expense),
		SavingsRate: PercentageOf(income.Sub(expense), income),
	}
}

// TrailingAverages returns the average monthly income and expense over the
// window of calendar months ending at (year, month), clamped to January of
// that year. window values below 1 are treated as 1.
func TrailingAverages(txns []core.Transaction, year, month, window int) (avgIncome, avgExpense core.Money) {
	if window < 1 {
		window = 1
	}
	if month > 12 {
		month = 12
	}
	if month < 1 {
		return core.Money{}, core.Money{}
	}
	series := GroupByMonth(txns, year)
	start := month - window + 1
	if start < 1 {
		start = 1
	}

	var income, expense core.Money
	n := int64(month - start + 1)
	for i := start; i <= month; i++ {
		income = income.Add(series[i-1].Income)
		expense = expense.Add(series[i-1].Expense)
	}
	return core.Money{Cents: income.Cents / n}, core.Money{Cents: expense.Cents / n}
}

// NetWorth sums account balances, signed: negative balances (credit debt)
// subtract from the total.
func NetWorth(accounts []core.Account) core.Money {
	var total core.Money
	for _, a := range accounts {
		total = total.Add(a.Balance)
	}
	return total
}

// accountGroupOrder fixes the breakdown ordering; the "other" bucket for
// unrecognized types always comes last.
var accountGroupOrder = []core.AccountType{
	core.Checking, core.Savings, core.Credit, core.Investment, core.OtherAccounts,
}

// GroupAccountsByType partitions accounts by type. Accounts whose type is
// not one of the recognized four are bucketed under OtherAccounts rather
// than dropped. Empty buckets are omitted.
func GroupAccountsByType(accounts []core.Account) []AccountGroup {
	buckets := make(map[core.AccountType][]core.Account)
	for _, a := range accounts {
		typ := a.Type
		if typ.Validate() != nil {
			typ = core.OtherAccounts
		}
		buckets[typ] = append(buckets[typ], a)
	}

	var out []AccountGroup
	for _, typ := range accountGroupOrder {
		members := buckets[typ]
		if len(members) == 0 {
			continue
		}
		out = append(out, AccountGroup{Type: typ, Total: NetWorth(members), Accounts: members})
	}
	return out
}

// GoalProgress returns the goal's completion percentage, unclamped: past
// 100 means overfunded and is rendered by callers as completed.
func GoalProgress(g core.Goal) float64 {
	return PercentageOf(g.CurrentAmount, g.TargetAmount)
}

// DaysRemaining returns the calendar-day distance from now to the goal's
// deadline. Negative values mean the goal is overdue and are surfaced as
// such, never clamped to zero.
func DaysRemaining(g core.Goal, now time.Time) int {
	today := core.Today(now)
	return int(g.Deadline.Sub(today.Time).Hours() / 24)
}
