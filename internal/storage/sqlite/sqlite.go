// Package sqlite implements the persistence collaborator on a local SQLite
// database. Each save replaces the collection snapshot inside a single DB
// transaction, which gives the all-or-nothing contract the engine expects.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func New(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *Store) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, amount_cents, category, description, date, recurring
		 FROM transactions ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		var (
			t         core.Transaction
			date      string
			recurring int64
		)
		if err := rows.Scan(&t.ID, &t.Type, &t.Amount.Cents, &t.Category, &t.Description, &date, &recurring); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		if t.Date, err = core.ParseDate(date); err != nil {
			return nil, fmt.Errorf("parse transaction date %q: %w", date, err)
		}
		t.Recurring = recurring != 0
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) SaveTransactions(ctx context.Context, txns []core.Transaction) error {
	return s.replace(ctx, "transactions", func(tx *sql.Tx) error {
		for i, t := range txns {
			recurring := 0
			if t.Recurring {
				recurring = 1
			}
			_, err := tx.ExecContext(ctx,
				`INSERT INTO transactions (id, pos, type, amount_cents, category, description, date, recurring)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				t.ID, i, string(t.Type), t.Amount.Cents, t.Category, t.Description, t.Date.String(), recurring)
			if err != nil {
				return fmt.Errorf("insert transaction %s: %w", t.ID, err)
			}
		}
		return nil
	})
}

func (s *Store) LoadBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, limit_cents, period, spent_cents FROM budgets ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("query budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var b core.Budget
		if err := rows.Scan(&b.ID, &b.Category, &b.Limit.Cents, &b.Period, &b.Spent.Cents); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *Store) SaveBudgets(ctx context.Context, budgets []core.Budget) error {
	return s.replace(ctx, "budgets", func(tx *sql.Tx) error {
		for i, b := range budgets {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO budgets (id, pos, category, limit_cents, period, spent_cents)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				b.ID, i, b.Category, b.Limit.Cents, string(b.Period), b.Spent.Cents)
			if err != nil {
				return fmt.Errorf("insert budget %s: %w", b.ID, err)
			}
		}
		return nil
	})
}

func (s *Store) LoadGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, category, target_cents, current_cents, deadline FROM goals ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("query goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		var (
			g        core.Goal
			deadline string
		)
		if err := rows.Scan(&g.ID, &g.Title, &g.Category, &g.TargetAmount.Cents, &g.CurrentAmount.Cents, &deadline); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		if g.Deadline, err = core.ParseDate(deadline); err != nil {
			return nil, fmt.Errorf("parse goal deadline %q: %w", deadline, err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) SaveGoals(ctx context.Context, goals []core.Goal) error {
	return s.replace(ctx, "goals", func(tx *sql.Tx) error {
		for i, g := range goals {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO goals (id, pos, title, category, target_cents, current_cents, deadline)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				g.ID, i, g.Title, g.Category, g.TargetAmount.Cents, g.CurrentAmount.Cents, g.Deadline.String())
			if err != nil {
				return fmt.Errorf("insert goal %s: %w", g.ID, err)
			}
		}
		return nil
	})
}

func (s *Store) LoadAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, balance_cents, currency, description FROM accounts ORDER BY pos`)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	var out []core.Account
	for rows.Next() {
		var a core.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.Type, &a.Balance.Cents, &a.Currency, &a.Description); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (s *Store) SaveAccounts(ctx context.Context, accounts []core.Account) error {
	return s.replace(ctx, "accounts", func(tx *sql.Tx) error {
		for i, a := range accounts {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO accounts (id, pos, name, type, balance_cents, currency, description)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				a.ID, i, a.Name, string(a.Type), a.Balance.Cents, a.Currency, a.Description)
			if err != nil {
				return fmt.Errorf("insert account %s: %w", a.ID, err)
			}
		}
		return nil
	})
}

func (s *Store) LoadProfile(ctx context.Context) (core.Profile, error) {
	var p core.Profile
	var alerts, reminders, weekly, monthly int64
	err := s.db.QueryRowContext(ctx,
		`SELECT name, email, currency, budget_alerts, goal_reminders, weekly_reports, monthly_reports
		 FROM profile WHERE id = 1`).
		Scan(&p.Name, &p.Email, &p.Currency, &alerts, &reminders, &weekly, &monthly)
	if err == sql.ErrNoRows {
		return core.Profile{}, nil
	}
	if err != nil {
		return core.Profile{}, fmt.Errorf("query profile: %w", err)
	}
	p.Notifications = core.NotificationPrefs{
		BudgetAlerts:   alerts != 0,
		GoalReminders:  reminders != 0,
		WeeklyReports:  weekly != 0,
		MonthlyReports: monthly != 0,
	}
	return p, nil
}

func (s *Store) SaveProfile(ctx context.Context, p core.Profile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profile (id, name, email, currency, budget_alerts, goal_reminders, weekly_reports, monthly_reports)
		 VALUES (1, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			currency = excluded.currency,
			budget_alerts = excluded.budget_alerts,
			goal_reminders = excluded.goal_reminders,
			weekly_reports = excluded.weekly_reports,
			monthly_reports = excluded.monthly_reports`,
		p.Name, p.Email, p.Currency,
		boolInt(p.Notifications.BudgetAlerts), boolInt(p.Notifications.GoalReminders),
		boolInt(p.Notifications.WeeklyReports), boolInt(p.Notifications.MonthlyReports))
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

// replace rewrites one collection table as a single snapshot inside a DB
// transaction.
func (s *Store) replace(ctx context.Context, table string, insert func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	if err := insert(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s snapshot: %w", table, err)
	}

	slog.DebugContext(ctx, "Collection snapshot saved", "collection", table)
	return nil
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
