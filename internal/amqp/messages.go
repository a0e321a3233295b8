package amqp

import (
	"encoding/json"
	"time"

	"fintrack/internal/engine"
)

// BudgetAlertMessage is the wire form of a budget status transition.
// Amounts travel as integer cents so consumers never parse decimals.
type BudgetAlertMessage struct {
	BudgetID   string    `json:"budgetId"`
	Category   string    `json:"category"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	SpentCents int64     `json:"spentCents"`
	LimitCents int64     `json:"limitCents"`
	Percent    float64   `json:"percent"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewBudgetAlertMessage builds a message from an engine alert.
func NewBudgetAlertMessage(alert engine.BudgetAlert) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		BudgetID:   alert.BudgetID,
		Category:   alert.Category,
		From:       string(alert.From),
		To:         string(alert.To),
		SpentCents: alert.Spent.Cents,
		LimitCents: alert.Limit.Cents,
		Percent:    alert.Percent,
		Timestamp:  time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// BudgetAlertMessageFromJSON creates a message from JSON bytes
func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
