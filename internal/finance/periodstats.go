package finance

import (
	"sort"
	"strconv"

	"github.com/challengerucars/backoffice-go/internal/domain"

	"github.com/shopspring/decimal"
)

// MonthlyStats is one YYYY-MM bucket of business performance.
type MonthlyStats struct {
	Month            string          `json:"month"`
	Profit           decimal.Decimal `json:"profit"`
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
}

// YearlyStats rolls a year's months into totals.
type YearlyStats struct {
	Year                    int             `json:"year"`
	Months                  []MonthlyStats  `json:"months"`
	TotalProfit             decimal.Decimal `json:"total_profit"`
	TotalIncome             decimal.Decimal `json:"total_income"`
	TotalExpenses           decimal.Decimal `json:"total_expenses"`
	AverageProfitPercentage decimal.Decimal `json:"average_profit_percentage"`
}

// MonthlyBreakdown buckets transactions by calendar month and derives
// the performance series, sorted ascending by month key.
//
// Only three categories feed business analytics: Profit-AHMED counts
// as income (and adds to profit); Personal Expenses and Distribution
// count as expenses (and subtract from profit). Everything else is
// ignored even if present in the input.
func MonthlyBreakdown(transactions []domain.Transaction) []MonthlyStats {
	byMonth := make(map[string]*MonthlyStats)
	for _, t := range transactions {
		var stats *MonthlyStats
		switch t.Category {
		case domain.CategoryProfitAhmed:
			stats = monthBucket(byMonth, t.MonthKey())
			stats.Income = stats.Income.Add(t.Amount)
			stats.Profit = stats.Profit.Add(t.Amount)
		case domain.CategoryPersonalExpenses, domain.CategoryDistribution:
			stats = monthBucket(byMonth, t.MonthKey())
			stats.Expenses = stats.Expenses.Add(t.Amount)
			stats.Profit = stats.Profit.Sub(t.Amount)
		}
	}

	result := make([]MonthlyStats, 0, len(byMonth))
	for _, stats := range byMonth {
		stats.ProfitPercentage = profitPercentage(stats.Income, stats.Expenses)
		result = append(result, *stats)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Month < result[j].Month })
	return result
}

// YearlyBreakdown rolls the monthly series into per-year totals,
// sorted descending by year.
func YearlyBreakdown(transactions []domain.Transaction) []YearlyStats {
	monthly := MonthlyBreakdown(transactions)

	byYear := make(map[int]*YearlyStats)
	for _, m := range monthly {
		// month keys come from stored dates, which restore accepts as
		// raw JSON; skip buckets whose key is too short to carry a year
		if len(m.Month) < 4 {
			continue
		}
		year, err := strconv.Atoi(m.Month[:4])
		if err != nil {
			continue
		}
		stats, ok := byYear[year]
		if !ok {
			stats = &YearlyStats{Year: year}
			byYear[year] = stats
		}
		stats.Months = append(stats.Months, m)
		stats.TotalProfit = stats.TotalProfit.Add(m.Profit)
		stats.TotalIncome = stats.TotalIncome.Add(m.Income)
		stats.TotalExpenses = stats.TotalExpenses.Add(m.Expenses)
	}

	result := make([]YearlyStats, 0, len(byYear))
	for _, stats := range byYear {
		stats.AverageProfitPercentage = profitPercentage(stats.TotalIncome, stats.TotalExpenses)
		result = append(result, *stats)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Year > result[j].Year })
	return result
}

func monthBucket(byMonth map[string]*MonthlyStats, key string) *MonthlyStats {
	stats, ok := byMonth[key]
	if !ok {
		stats = &MonthlyStats{Month: key}
		byMonth[key] = stats
	}
	return stats
}

// profitPercentage = (income − expenses) / income × 100, zero when
// there is no income to divide by.
func profitPercentage(income, expenses decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return income.Sub(expenses).Div(income).Mul(oneHundred)
}
