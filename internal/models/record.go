// Package models provides the data structures used throughout the application.
package models

import (
	"fmt"
	"strings"
)

// Record is one stored financial transaction. Records are written once and never updated.
type Record struct {
	ID        int64   `json:"id,omitempty" csv:"id"`
	Operation string  `json:"operation" csv:"operation"`
	Card      string  `json:"card" csv:"card"`
	Merchant  string  `json:"merchant" csv:"merchant"`
	Amount    float64 `json:"amount" csv:"amount"`
	Balance   float64 `json:"balance" csv:"balance"`
	Timestamp string  `json:"timestamp" csv:"timestamp"`
	Category  string  `json:"category" csv:"category"`
}

// Columns lists the persisted fields in table order, without the identifier.
var Columns = []string{"operation", "card", "merchant", "amount", "balance", "timestamp", "category"}

// RawRecord is a record as it arrives from outside: the oracle reply, an API body or a test.
// Amount and Balance may hold any JSON number, Go numeric value or numeric string.
type RawRecord struct {
	Operation *string     `json:"operation"`
	Card      *string     `json:"card"`
	Merchant  *string     `json:"merchant"`
	Amount    interface{} `json:"amount"`
	Balance   interface{} `json:"balance"`
	Timestamp *string     `json:"timestamp"`
	Category  string      `json:"category,omitempty"`
}

// MissingFieldError names the first required field absent from a RawRecord.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Normalize checks that every extracted field is present and coerces the numeric ones.
// It never returns a partially filled Record: on error the zero Record is returned.
func (r RawRecord) Normalize() (Record, error) {
	strs := []struct {
		name string
		val  *string
	}{
		{"operation", r.Operation},
		{"card", r.Card},
		{"merchant", r.Merchant},
		{"timestamp", r.Timestamp},
	}
	for _, s := range strs {
		if s.val == nil {
			return Record{}, &MissingFieldError{Field: s.name}
		}
	}
	if r.Amount == nil {
		return Record{}, &MissingFieldError{Field: "amount"}
	}
	if r.Balance == nil {
		return Record{}, &MissingFieldError{Field: "balance"}
	}

	amount, err := ToFloat(r.Amount)
	if err != nil {
		return Record{}, fmt.Errorf("amount: %w", err)
	}
	balance, err := ToFloat(r.Balance)
	if err != nil {
		return Record{}, fmt.Errorf("balance: %w", err)
	}

	return Record{
		Operation: *r.Operation,
		Card:      *r.Card,
		Merchant:  *r.Merchant,
		Amount:    amount,
		Balance:   balance,
		Timestamp: *r.Timestamp,
		Category:  r.Category,
	}, nil
}

// NewRawRecord is a convenience constructor used by callers that already hold plain values.
func NewRawRecord(operation, card, merchant string, amount, balance interface{}, timestamp, category string) RawRecord {
	return RawRecord{
		Operation: &operation,
		Card:      &card,
		Merchant:  &merchant,
		Amount:    amount,
		Balance:   balance,
		Timestamp: &timestamp,
		Category:  category,
	}
}

// Validate reports whether a Record may be persisted.
func (r Record) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return &MissingFieldError{Field: "category"}
	}
	if !IsFinite(r.Amount) {
		return fmt.Errorf("amount must be a finite number, got %v", r.Amount)
	}
	if !IsFinite(r.Balance) {
		return fmt.Errorf("balance must be a finite number, got %v", r.Balance)
	}
	if r.Amount < 0 {
		return fmt.Errorf("amount must not be negative, got %v", r.Amount)
	}
	return nil
}
