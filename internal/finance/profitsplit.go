package finance

import (
	"fmt"
	"strings"

	"github.com/challengerucars/backoffice-go/internal/domain"

	"github.com/shopspring/decimal"
)

// Share is one recipient's computed slice of a vehicle's profit.
type Share struct {
	Recipient  string
	Percentage decimal.Decimal
	// ProfitShare is netProfit × percentage.
	ProfitShare decimal.Decimal
	// Reimbursement is the sum of this recipient's recorded expenses.
	Reimbursement decimal.Decimal
	// PurchasePrice is the repaid acquisition cost (Ahmed only, zero otherwise).
	PurchasePrice decimal.Decimal
	// Payable = ProfitShare + Reimbursement + PurchasePrice.
	Payable decimal.Decimal
	// ProfitOnly = ProfitShare + Reimbursement. This is what gets
	// posted to the ledger for Ahmed: the purchase-price repayment is
	// deliberately excluded there so it is not double counted as
	// income (the "Vehicle Sale" entry already carries it).
	ProfitOnly decimal.Decimal
	// Note is the human-readable breakdown stored on the distribution row.
	Note string
}

// TotalExpenses sums all recorded expenses for a vehicle.
func TotalExpenses(expenses []domain.VehicleExpense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// ExpensesByRecipient groups expense amounts by recipient. Expenses
// with no recipient accumulate under "Other".
func ExpensesByRecipient(expenses []domain.VehicleExpense) map[string]decimal.Decimal {
	byRecipient := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		r := RecipientOther
		if e.Recipient != nil && *e.Recipient != "" {
			r = *e.Recipient
		}
		byRecipient[r] = byRecipient[r].Add(e.Amount)
	}
	return byRecipient
}

// NetProfit computes sale − purchase − total expenses. An AVAILABLE
// vehicle has no profit yet, so it reports zero. A SOLD vehicle with
// no sale price is a corrupted record and must surface as such rather
// than silently computing zero.
func NetProfit(v domain.Vehicle, expenses []domain.VehicleExpense) (decimal.Decimal, error) {
	if v.Status != domain.VehicleSold {
		return decimal.Zero, nil
	}
	if v.SalePrice == nil {
		return decimal.Zero, &domain.ErrDataIntegrity{
			Entity:  "vehicle",
			ID:      v.ID,
			Message: "status is SOLD but sale_price is null",
		}
	}
	return v.SalePrice.Sub(v.PurchasePrice).Sub(TotalExpenses(expenses)), nil
}

// SplitProfit applies the distribution policy to a sold vehicle and
// returns one Share per policy row, in policy order.
func SplitProfit(v domain.Vehicle, expenses []domain.VehicleExpense) ([]Share, error) {
	netProfit, err := NetProfit(v, expenses)
	if err != nil {
		return nil, err
	}
	byRecipient := ExpensesByRecipient(expenses)

	shares := make([]Share, 0, len(DistributionPolicy))
	for _, rule := range DistributionPolicy {
		profitShare := netProfit.Mul(rule.Percentage).Div(oneHundred)
		reimbursement := byRecipient[rule.Recipient]

		share := Share{
			Recipient:     rule.Recipient,
			Percentage:    rule.Percentage,
			ProfitShare:   profitShare,
			Reimbursement: reimbursement,
			ProfitOnly:    profitShare.Add(reimbursement),
		}
		if rule.ReimbursePurchase {
			share.PurchasePrice = v.PurchasePrice
		}
		share.Payable = share.ProfitOnly.Add(share.PurchasePrice)
		share.Note = breakdownNote(share)

		shares = append(shares, share)
	}
	return shares, nil
}

// breakdownNote builds the human-readable note stored on each
// distribution row, e.g.
// "35% of net profit (AED 6,300.00) + reimbursement (AED 2,000.00) + purchase price (AED 50,000.00)".
func breakdownNote(s Share) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%% of net profit (AED %s)", s.Percentage.String(), FormatAmount(s.ProfitShare))
	if !s.Reimbursement.IsZero() {
		fmt.Fprintf(&b, " + reimbursement (AED %s)", FormatAmount(s.Reimbursement))
	}
	if !s.PurchasePrice.IsZero() {
		fmt.Fprintf(&b, " + purchase price (AED %s)", FormatAmount(s.PurchasePrice))
	}
	return b.String()
}

// FormatAmount renders a currency amount with two decimals and
// thousands separators, matching the notes and reports format.
func FormatAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}

	out := b.String() + "." + fracPart
	if neg {
		return "-" + out
	}
	return out
}
