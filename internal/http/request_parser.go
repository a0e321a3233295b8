// Request payload decoding. Amounts travel as decimal strings ("12.34")
// and dates as ISO days ("2006-01-02"); both are parsed into core types
// here so handlers only see validated values.
package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/engine"
)

type transactionRequest struct {
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
	Recurring   bool   `json:"recurring"`
}

type budgetRequest struct {
	Category string `json:"category"`
	Limit    string `json:"limit"`
	Period   string `json:"period"`
}

type goalRequest struct {
	Title         string `json:"title"`
	Category      string `json:"category"`
	TargetAmount  string `json:"targetAmount"`
	CurrentAmount string `json:"currentAmount"`
	Deadline      string `json:"deadline"`
}

type accountRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Balance     string `json:"balance"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
}

type contributionRequest struct {
	Amount string `json:"amount"`
}

// decodeJSON decodes a request body, rejecting unknown fields so typos in
// payloads surface as 400s instead of silently dropped data.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", core.ErrValidation, err)
	}
	return nil
}

func parseAmount(field, s string) (core.Money, error) {
	m, err := core.ParseMoney(strings.TrimSpace(s))
	if err != nil {
		return core.Money{}, fmt.Errorf("%w: field %q", err, field)
	}
	return m, nil
}

func parseDate(field, s string) (core.Date, error) {
	d, err := core.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return core.Date{}, fmt.Errorf("%w: field %q", err, field)
	}
	return d, nil
}

func (req transactionRequest) toInput() (engine.TransactionInput, error) {
	amount, err := parseAmount("amount", req.Amount)
	if err != nil {
		return engine.TransactionInput{}, err
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		return engine.TransactionInput{}, err
	}
	return engine.TransactionInput{
		Type:        core.TransactionType(strings.TrimSpace(req.Type)),
		Amount:      amount,
		Category:    strings.TrimSpace(req.Category),
		Description: strings.TrimSpace(req.Description),
		Date:        date,
		Recurring:   req.Recurring,
	}, nil
}

func (req budgetRequest) toInput() (engine.BudgetInput, error) {
	limit, err := parseAmount("limit", req.Limit)
	if err != nil {
		return engine.BudgetInput{}, err
	}
	return engine.BudgetInput{
		Category: strings.TrimSpace(req.Category),
		Limit:    limit,
		Period:   core.BudgetPeriod(strings.TrimSpace(req.Period)),
	}, nil
}

func (req goalRequest) toInput() (engine.GoalInput, error) {
	target, err := parseAmount("targetAmount", req.TargetAmount)
	if err != nil {
		return engine.GoalInput{}, err
	}
	current := core.Money{}
	if strings.TrimSpace(req.CurrentAmount) != "" {
		current, err = parseAmount("currentAmount", req.CurrentAmount)
		if err != nil {
			return engine.GoalInput{}, err
		}
	}
	deadline, err := parseDate("deadline", req.Deadline)
	if err != nil {
		return engine.GoalInput{}, err
	}
	return engine.GoalInput{
		Title:         strings.TrimSpace(req.Title),
		Category:      strings.TrimSpace(req.Category),
		TargetAmount:  target,
		CurrentAmount: current,
		Deadline:      deadline,
	}, nil
}

func (req accountRequest) toInput() (engine.AccountInput, error) {
	// Balances are signed; a credit account legitimately carries "-25.00".
	balance, err := core.ParseSignedMoney(req.Balance)
	if err != nil {
		return engine.AccountInput{}, fmt.Errorf("%w: field %q", err, "balance")
	}
	return engine.AccountInput{
		Name:        strings.TrimSpace(req.Name),
		Type:        core.AccountType(strings.TrimSpace(req.Type)),
		Balance:     balance,
		Currency:    strings.TrimSpace(req.Currency),
		Description: strings.TrimSpace(req.Description),
	}, nil
}
