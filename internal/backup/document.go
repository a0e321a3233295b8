// Package backup implements the bulk export/import document: one JSON
// object aggregating all four collections plus the profile, keyed by the
// logical collection names the persistence layer uses.
package backup

import (
	"encoding/json"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/engine"
	"fintrack/internal/storage"
)

// Document is the backup wire format.
type Document struct {
	ExportedAt   time.Time          `json:"exportedAt"`
	Transactions []core.Transaction `json:"transactions"`
	Budgets      []core.Budget      `json:"budgets"`
	Goals        []core.Goal        `json:"goals"`
	Accounts     []core.Account     `json:"accounts"`
	Profile      core.Profile       `json:"profile"`
}

// requiredKeys are the collection keys an import must carry. A document
// missing any of them is rejected wholesale; partial imports are never
// merged field by field.
var requiredKeys = []string{
	storage.KeyTransactions,
	storage.KeyBudgets,
	storage.KeyGoals,
	storage.KeyAccounts,
}

// Export builds a document from an engine snapshot.
func Export(s engine.Snapshot, now time.Time) Document {
	return Document{
		ExportedAt:   now.UTC(),
		Transactions: s.Transactions,
		Budgets:      s.Budgets,
		Goals:        s.Goals,
		Accounts:     s.Accounts,
		Profile:      s.Profile,
	}
}

// Marshal renders the document for download.
func (d Document) Marshal() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Parse validates and decodes a backup document into an engine snapshot.
// All four collection keys must be present (explicit empty arrays are
// fine); a missing key rejects the whole document.
func Parse(data []byte) (engine.Snapshot, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(data, &keys); err != nil {
		return engine.Snapshot{}, fmt.Errorf("%w: malformed backup document", core.ErrValidation)
	}
	for _, key := range requiredKeys {
		if _, ok := keys[key]; !ok {
			return engine.Snapshot{}, fmt.Errorf("%w: backup document missing %q; partial imports are rejected", core.ErrValidation, key)
		}
	}

	var d Document
	if err := json.Unmarshal(data, &d); err != nil {
		return engine.Snapshot{}, fmt.Errorf("%w: %s", core.ErrValidation, err)
	}

	return engine.Snapshot{
		Transactions: d.Transactions,
		Budgets:      d.Budgets,
		Goals:        d.Goals,
		Accounts:     d.Accounts,
		Profile:      d.Profile,
	}, nil
}
