package models

import (
	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

// DailyTotal is the per-day sum of a user's amounts, split by type.
// Either side may be null when the database returns no value.
type DailyTotal struct {
	Date     civil.Date
	Income   decimal.NullDecimal
	Expenses decimal.NullDecimal
}

// PeriodTotals holds the income and expense sums over a date window.
type PeriodTotals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
}
