package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category is a ledger grouping. Counts and totals are derived from
// the transaction set on read, never stored.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	UserID    string    `json:"user_id,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`

	TransactionCount int             `json:"transaction_count"`
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
}
