// Package report renders ledger and dashboard data as downloadable
// CSV and XLSX files.
package report

import (
	"encoding/csv"
	"io"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/finance"
)

var transactionHeader = []string{"Date", "Type", "Category", "Description", "Amount (AED)"}

// WriteTransactionsCSV streams the transaction list as CSV.
func WriteTransactionsCSV(w io.Writer, transactions []domain.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(transactionHeader); err != nil {
		return err
	}
	for _, tx := range transactions {
		record := []string{
			tx.Date,
			tx.Type,
			tx.Category,
			tx.Description,
			tx.Amount.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteMonthlyStatsCSV streams the monthly performance rollup as CSV.
func WriteMonthlyStatsCSV(w io.Writer, stats []finance.MonthlyStats) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"Month", "Income (AED)", "Expenses (AED)", "Profit (AED)", "Profit %"}); err != nil {
		return err
	}
	for _, row := range stats {
		record := []string{
			row.Month,
			row.Income.StringFixed(2),
			row.Expenses.StringFixed(2),
			row.Profit.StringFixed(2),
			row.ProfitPercentage.StringFixed(2),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
