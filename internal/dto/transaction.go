package dto

import (
	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/cost-tracker/internal/models"
)

type TransactionQuery struct {
	Type  *string
	Range DateRange
}

// TransactionRequest is the body of create and update calls. Dates and time
// arrive as strings and are validated by the service.
type TransactionRequest struct {
	Title           string          `json:"title"`
	Amount          decimal.Decimal `json:"amount"`
	Description     *string         `json:"description,omitempty"`
	Category        string          `json:"category"`
	Subcategory     *string         `json:"subcategory,omitempty"`
	Type            string          `json:"type"`
	Date            string          `json:"date"`
	Time            string          `json:"time"`
	TransactionType string          `json:"transactionType"`
	Frequency       string          `json:"frequency"`
	StartDate       string          `json:"startDate"`
	EndDate         string          `json:"endDate"`
}

type TransactionListResult struct {
	Transactions []models.Transaction `json:"transactions"`
	Count        int                  `json:"count"`
}
