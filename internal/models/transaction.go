package models

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

const (
	KindOneTime   = "one-time"
	KindRecurring = "recurring"
	KindTimeline  = "timeline"
)

// Transaction is a single income or expense entry (a row of cost_entries).
type Transaction struct {
	ID              string          `json:"id"`
	UserID          string          `json:"userId"`
	Type            string          `json:"type"` // "income" or "expense"
	Title           string          `json:"title"`
	Description     *string         `json:"description,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Subcategory     *string         `json:"subcategory,omitempty"`
	Date            civil.Date      `json:"date"`
	Time            *string         `json:"time,omitempty"` // HH:MM
	TransactionType string          `json:"transactionType"`
	Frequency       *string         `json:"frequency,omitempty"`
	StartDate       *civil.Date     `json:"startDate,omitempty"`
	EndDate         *civil.Date     `json:"endDate,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// ValidType reports whether t is a known transaction type.
func ValidType(t string) bool {
	return t == TypeIncome || t == TypeExpense
}
