package core

import (
	"encoding/json"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	Weekly  BudgetPeriod = "weekly"
	Monthly BudgetPeriod = "monthly"
	Yearly  BudgetPeriod = "yearly"
)

const (
	StatusGood    BudgetStatus = "good"
	StatusWarning BudgetStatus = "warning"
	StatusOver    BudgetStatus = "over"
)

const (
	Checking   AccountType = "checking"
	Savings    AccountType = "savings"
	Credit     AccountType = "credit"
	Investment AccountType = "investment"

	// OtherAccounts is the breakdown bucket for account types the
	// grouping does not recognize. It is never a valid input type.
	OtherAccounts AccountType = "other"
)

type (
	TransactionType string
	BudgetPeriod    string
	BudgetStatus    string
	AccountType     string

	// Date is a calendar date with no time-of-day semantics. The wrapped
	// time is always UTC midnight.
	Date struct {
		time.Time
	}

	// Transaction is one record of the ledger. Immutable once created
	// except via full replace-by-id; the engine never creates one on its
	// own. Recurring is an informational flag only.
	Transaction struct {
		ID          string          `json:"id"`
		Type        TransactionType `json:"type"`
		Amount      Money           `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        Date            `json:"date"`
		Recurring   bool            `json:"recurring"`
	}

	// Budget is a per-category spending cap. Spent is derived from the
	// ledger (expense transactions with exactly matching category, over
	// the whole history) and is never authored by a caller. Period is a
	// classification label only; it does not window the spent total.
	Budget struct {
		ID       string       `json:"id"`
		Category string       `json:"category"`
		Limit    Money        `json:"limit"`
		Period   BudgetPeriod `json:"period"`
		Spent    Money        `json:"spent"`
	}

	// Goal is a savings target. CurrentAmount moves only through explicit
	// contributions, which are not ledger transactions.
	Goal struct {
		ID            string `json:"id"`
		Title         string `json:"title"`
		Category      string `json:"category"`
		TargetAmount  Money  `json:"targetAmount"`
		CurrentAmount Money  `json:"currentAmount"`
		Deadline      Date   `json:"deadline"`
	}

	// Account carries an independently maintained balance snapshot. The
	// engine does not derive balances from transactions.
	Account struct {
		ID          string      `json:"id"`
		Name        string      `json:"name"`
		Type        AccountType `json:"type"`
		Balance     Money       `json:"balance"`
		Currency    string      `json:"currency"`
		Description string      `json:"description"`
	}

	// Profile holds the user's settings persisted under its own
	// collection key.
	Profile struct {
		Name          string            `json:"name"`
		Email         string            `json:"email"`
		Currency      string            `json:"currency"`
		Notifications NotificationPrefs `json:"notifications"`
	}

	NotificationPrefs struct {
		BudgetAlerts   bool `json:"budgetAlerts"`
		GoalReminders  bool `json:"goalReminders"`
		WeeklyReports  bool `json:"weeklyReports"`
		MonthlyReports bool `json:"monthlyReports"`
	}
)

const dateLayout = "2006-01-02"

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a calendar date in ISO form (2006-01-02).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t.UTC()}, nil
}

// Today returns the calendar date of now in UTC.
func Today(now time.Time) Date {
	y, m, d := now.UTC().Date()
	return NewDate(y, int(m), d)
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Year returns the calendar year.
func (d Date) Year() int {
	return d.Time.Year()
}

// MonthIndex returns the calendar month as 1-12.
func (d Date) MonthIndex() int {
	return int(d.Time.Month())
}

func (d Date) String() string {
	return d.Time.Format(dateLayout)
}

// MarshalJSON encodes the date as "2006-01-02".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes "2006-01-02".
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (t TransactionType) Validate() error {
	switch t {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidType
	}
}

func (p BudgetPeriod) Validate() error {
	switch p {
	case Weekly, Monthly, Yearly:
		return nil
	default:
		return ErrInvalidType
	}
}

func (a AccountType) Validate() error {
	switch a {
	case Checking, Savings, Credit, Investment:
		return nil
	default:
		return ErrInvalidType
	}
}

func (t Transaction) Validate() error {
	if err := t.Type.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(t.Description) > 200 {
		return ErrLongDescription
	}
	return t.Date.Validate()
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if err := b.Limit.ValidatePositive(); err != nil {
		return err
	}
	return b.Period.Validate()
}

func (g Goal) Validate() error {
	if strings.TrimSpace(g.Title) == "" {
		return ErrEmptyTitle
	}
	if err := g.TargetAmount.ValidatePositive(); err != nil {
		return err
	}
	if err := g.CurrentAmount.Validate(); err != nil {
		return err
	}
	return g.Deadline.Validate()
}

func (a Account) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	// Balance is intentionally unconstrained: credit accounts carry
	// negative balances.
	return a.Type.Validate()
}
