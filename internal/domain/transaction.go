// Package domain defines the core business entities for the dealer
// back office. These models are independent of external services and
// represent the canonical data structures used throughout the service.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types.
const (
	TransactionIncome  = "income"
	TransactionExpense = "expense"
)

// Ledger categories with aggregation semantics. Categories are
// free-text, but these specific names drive the dashboard and
// business-performance math.
const (
	CategoryContribution     = "Contribution"
	CategoryProfitAhmed      = "Profit-AHMED"
	CategoryProfitNada       = "Profit-NADA"
	CategoryPersonalExpenses = "Personal Expenses"
	CategoryDistribution     = "Distribution"
	CategoryVehicleExpense   = "Vehicle Expense"
	CategoryVehicleSale      = "Vehicle Sale"
)

// Transaction is a single ledger entry.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"` // income | expense
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"` // YYYY-MM-DD
	ReferenceID string          `json:"reference_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
}

// TransactionInput carries a new or updated ledger entry.
// Validated with go-playground/validator before any write.
type TransactionInput struct {
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type" validate:"required,oneof=income expense"`
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description"`
	Date        string          `json:"date" validate:"required,datetime=2006-01-02"`
	ReferenceID string          `json:"reference_id,omitempty"`
}

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	StartDate string
	EndDate   string
	Type      string
	Category  string
}

// MonthKey returns the YYYY-MM bucket key for the transaction date.
func (t Transaction) MonthKey() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}
