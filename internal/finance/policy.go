// Package finance holds the pure computation core of the back office:
// dashboard aggregation, the vehicle profit split, and the
// month/year business-performance roll-up. Everything here is a
// side-effect-free function over already-fetched rows; all currency
// math uses shopspring/decimal, never floats.
package finance

import "github.com/shopspring/decimal"

// Profit split recipients.
const (
	RecipientAhmed  = "Ahmed"
	RecipientNada   = "Nada"
	RecipientShaker = "Shaker"

	// RecipientOther buckets expenses whose recipient is unset.
	RecipientOther = "Other"
)

// ShareRule is one row of the distribution policy: who gets which
// percentage of net profit, and whether the vehicle's purchase price
// is repaid to them on top of it.
type ShareRule struct {
	Recipient string
	// Percentage of net profit, as a whole number (35 means 35%).
	Percentage decimal.Decimal
	// ReimbursePurchase adds the vehicle purchase price to the payable
	// amount. Ahmed fronts the acquisition cost, so he is repaid it
	// alongside his profit share.
	ReimbursePurchase bool
}

// DistributionPolicy is the fixed three-way split applied to every
// sold vehicle's net profit. Kept as a table so the policy is
// auditable and swappable without touching the summation logic.
var DistributionPolicy = []ShareRule{
	{Recipient: RecipientAhmed, Percentage: decimal.NewFromInt(35), ReimbursePurchase: true},
	{Recipient: RecipientNada, Percentage: decimal.NewFromInt(15)},
	{Recipient: RecipientShaker, Percentage: decimal.NewFromInt(50)},
}

var oneHundred = decimal.NewFromInt(100)
