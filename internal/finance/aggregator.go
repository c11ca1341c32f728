package finance

import (
	"github.com/challengerucars/backoffice-go/internal/domain"

	"github.com/shopspring/decimal"
)

// DashboardStats is the flat record of derived dashboard totals.
type DashboardStats struct {
	TotalIncome       decimal.Decimal `json:"total_income"`
	TotalExpenses     decimal.Decimal `json:"total_expenses"`
	TotalContribution decimal.Decimal `json:"total_contribution"`
	ProfitAhmed       decimal.Decimal `json:"profit_ahmed"`
	ProfitNada        decimal.Decimal `json:"profit_nada"`
	OverallMoneyFlow  decimal.Decimal `json:"overall_money_flow"`
	TotalLoans        decimal.Decimal `json:"total_loans"`
	TotalCapital      decimal.Decimal `json:"total_capital"`
	BankBalance       decimal.Decimal `json:"bank_balance"`
	AssetValue        decimal.Decimal `json:"asset_value"`
	// Expenses is the Personal Expenses + Distribution bucket only,
	// not the all-expense total.
	Expenses decimal.Decimal `json:"expenses"`
}

// Aggregate computes the dashboard totals from the full transaction
// set, the financial-settings baseline, and the vehicle inventory.
// It never fails: a nil settings pointer falls back to the documented
// defaults so the dashboard stays available.
func Aggregate(transactions []domain.Transaction, settings *domain.FinancialSettings, vehicles []domain.Vehicle) DashboardStats {
	if settings == nil {
		s := domain.DefaultFinancialSettings()
		settings = &s
	}

	var stats DashboardStats
	for _, t := range transactions {
		switch t.Type {
		case domain.TransactionIncome:
			stats.TotalIncome = stats.TotalIncome.Add(t.Amount)
			switch t.Category {
			case domain.CategoryContribution:
				stats.TotalContribution = stats.TotalContribution.Add(t.Amount)
			case domain.CategoryProfitAhmed:
				stats.ProfitAhmed = stats.ProfitAhmed.Add(t.Amount)
			case domain.CategoryProfitNada:
				stats.ProfitNada = stats.ProfitNada.Add(t.Amount)
			}
		case domain.TransactionExpense:
			stats.TotalExpenses = stats.TotalExpenses.Add(t.Amount)
			if t.Category == domain.CategoryPersonalExpenses || t.Category == domain.CategoryDistribution {
				stats.Expenses = stats.Expenses.Add(t.Amount)
			}
		}
	}

	for _, v := range vehicles {
		if v.Status == domain.VehicleAvailable {
			stats.AssetValue = stats.AssetValue.Add(v.PurchasePrice)
		}
	}

	stats.OverallMoneyFlow = stats.TotalContribution.Add(stats.ProfitAhmed)
	stats.TotalLoans = settings.ShowroomBalance.Add(settings.PersonalLoan)
	stats.TotalCapital = stats.OverallMoneyFlow.
		Add(stats.TotalLoans).
		Add(settings.Additional).
		Sub(stats.Expenses)
	stats.BankBalance = stats.TotalIncome.
		Add(settings.Additional).
		Sub(stats.TotalExpenses).
		Sub(stats.TotalLoans).
		Sub(settings.CashOnHand).
		Sub(stats.ProfitNada)

	return stats
}
