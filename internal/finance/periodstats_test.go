package finance_test

import (
	"testing"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/finance"
)

func TestMonthlyBreakdown(t *testing.T) {
	transactions := []domain.Transaction{
		{Amount: dec("5000"), Type: domain.TransactionIncome, Category: domain.CategoryProfitAhmed, Date: "2024-03-10"},
		{Amount: dec("1200"), Type: domain.TransactionExpense, Category: domain.CategoryPersonalExpenses, Date: "2024-03-22"},
	}

	months := finance.MonthlyBreakdown(transactions)
	if len(months) != 1 {
		t.Fatalf("expected 1 month, got %d", len(months))
	}

	m := months[0]
	if m.Month != "2024-03" {
		t.Errorf("month = %s, want 2024-03", m.Month)
	}
	if !m.Income.Equal(dec("5000")) {
		t.Errorf("income = %s, want 5000", m.Income)
	}
	if !m.Expenses.Equal(dec("1200")) {
		t.Errorf("expenses = %s, want 1200", m.Expenses)
	}
	if !m.Profit.Equal(dec("3800")) {
		t.Errorf("profit = %s, want 3800", m.Profit)
	}
	// (5,000 − 1,200) / 5,000 × 100 = 76
	if !m.ProfitPercentage.Equal(dec("76")) {
		t.Errorf("profit percentage = %s, want 76", m.ProfitPercentage)
	}
}

func TestMonthlyBreakdownIgnoresOtherCategories(t *testing.T) {
	transactions := []domain.Transaction{
		{Amount: dec("70000"), Type: domain.TransactionIncome, Category: domain.CategoryVehicleSale, Date: "2024-03-01"},
		{Amount: dec("10000"), Type: domain.TransactionIncome, Category: domain.CategoryContribution, Date: "2024-03-02"},
		{Amount: dec("2000"), Type: domain.TransactionExpense, Category: domain.CategoryVehicleExpense, Date: "2024-03-03"},
	}

	if months := finance.MonthlyBreakdown(transactions); len(months) != 0 {
		t.Errorf("expected no buckets for non-analytics categories, got %d", len(months))
	}
}

func TestMonthlyBreakdownSortedAscending(t *testing.T) {
	transactions := []domain.Transaction{
		{Amount: dec("100"), Type: domain.TransactionIncome, Category: domain.CategoryProfitAhmed, Date: "2024-05-01"},
		{Amount: dec("100"), Type: domain.TransactionIncome, Category: domain.CategoryProfitAhmed, Date: "2023-11-01"},
		{Amount: dec("100"), Type: domain.TransactionIncome, Category: domain.CategoryProfitAhmed, Date: "2024-01-01"},
	}

	months := finance.MonthlyBreakdown(transactions)
	want := []string{"2023-11", "2024-01", "2024-05"}
	if len(months) != len(want) {
		t.Fatalf("expected %d months, got %d", len(want), len(months))
	}
	for i, m := range months {
		if m.Month != want[i] {
			t.Errorf("months[%d] = %s, want %s", i, m.Month, want[i])
		}
	}
}

func TestMonthlyBreakdownZeroIncomePercentage(t *testing.T) {
	transactions := []domain.Transaction{
		{Amount: dec("500"), Type: domain.TransactionExpense, Category: domain.CategoryDistribution, Date: "2024-02-01"},
	}

	months := finance.MonthlyBreakdown(transactions)
	if len(months) != 1 {
		t.Fatalf("expected 1 month, got %d", len(months))
	}
	if !months[0].ProfitPercentage.IsZero() {
		t.Errorf("profit percentage with zero income = %s, want 0", months[0].ProfitPercentage)
	}
}

func TestYearlyBreakdown(t *testing.T) {
	transactions := []domain.Transaction{
		{Amount: dec("5000"), Type: domain.TransactionIncome, Category: domain.CategoryProfitAhmed, Date: "2024-01-10"},
		{Amount: dec("3000"), Type: domain.TransactionIncome, Category: domain.CategoryProfitAhmed, Date: "2024-06-10"},
		{Amount: dec("2000"), Type: domain.TransactionExpense, Category: domain.CategoryPersonalExpenses, Date: "2024-06-15"},
		{Amount: dec("4000"), Type: domain.TransactionIncome, Category: domain.CategoryProfitAhmed, Date: "2023-09-01"},
	}

	years := finance.YearlyBreakdown(transactions)
	if len(years) != 2 {
		t.Fatalf("expected 2 years, got %d", len(years))
	}

	// Years are sorted descending.
	if years[0].Year != 2024 || years[1].Year != 2023 {
		t.Fatalf("year order = [%d %d], want [2024 2023]", years[0].Year, years[1].Year)
	}

	y := years[0]
	if len(y.Months) != 2 {
		t.Errorf("2024 months = %d, want 2", len(y.Months))
	}
	if !y.TotalIncome.Equal(dec("8000")) {
		t.Errorf("2024 income = %s, want 8000", y.TotalIncome)
	}
	if !y.TotalExpenses.Equal(dec("2000")) {
		t.Errorf("2024 expenses = %s, want 2000", y.TotalExpenses)
	}
	if !y.TotalProfit.Equal(dec("6000")) {
		t.Errorf("2024 profit = %s, want 6000", y.TotalProfit)
	}
	// (8,000 − 2,000) / 8,000 × 100 = 75
	if !y.AverageProfitPercentage.Equal(dec("75")) {
		t.Errorf("2024 avg pct = %s, want 75", y.AverageProfitPercentage)
	}
}

func TestYearlyBreakdownSkipsMalformedDates(t *testing.T) {
	// restored rows bypass input validation, so dates shorter than a
	// year prefix can reach the roll-up
	transactions := []domain.Transaction{
		{Amount: dec("5000"), Type: domain.TransactionIncome, Category: domain.CategoryProfitAhmed, Date: "24"},
		{Amount: dec("3000"), Type: domain.TransactionIncome, Category: domain.CategoryProfitAhmed, Date: ""},
		{Amount: dec("1000"), Type: domain.TransactionIncome, Category: domain.CategoryProfitAhmed, Date: "not-a-date"},
		{Amount: dec("2000"), Type: domain.TransactionIncome, Category: domain.CategoryProfitAhmed, Date: "2024-03-10"},
	}

	years := finance.YearlyBreakdown(transactions)
	if len(years) != 1 {
		t.Fatalf("expected only the well-formed year, got %d buckets", len(years))
	}
	if years[0].Year != 2024 {
		t.Errorf("year = %d, want 2024", years[0].Year)
	}
	if !years[0].TotalIncome.Equal(dec("2000")) {
		t.Errorf("income = %s, want 2000", years[0].TotalIncome)
	}
}

func TestBreakdownEmptyInput(t *testing.T) {
	if got := finance.MonthlyBreakdown(nil); len(got) != 0 {
		t.Errorf("monthly breakdown of empty input = %d entries, want 0", len(got))
	}
	if got := finance.YearlyBreakdown(nil); len(got) != 0 {
		t.Errorf("yearly breakdown of empty input = %d entries, want 0", len(got))
	}
}
