package report

import (
	"fmt"
	"io"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/finance"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// WriteTransactionsXLSX renders the transaction list as a workbook.
// Amounts are written as floats so spreadsheet formulas work on them;
// the two-decimal presentation is the spreadsheet's concern.
func WriteTransactionsXLSX(w io.Writer, transactions []domain.Transaction) error {
	f := excelize.NewFile()
	defer f.Close()

	for col, h := range transactionHeader {
		cell := fmt.Sprintf("%c1", 'A'+col)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return err
		}
	}

	for i, tx := range transactions {
		row := i + 2
		amount, _ := tx.Amount.Float64()
		f.SetCellValue(sheetName, "A"+fmt.Sprint(row), tx.Date)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(row), tx.Type)
		f.SetCellValue(sheetName, "C"+fmt.Sprint(row), tx.Category)
		f.SetCellValue(sheetName, "D"+fmt.Sprint(row), tx.Description)
		f.SetCellValue(sheetName, "E"+fmt.Sprint(row), amount)
	}

	return f.Write(w)
}

// WriteDashboardXLSX renders the dashboard aggregates as a two-column
// workbook of metric name and value.
func WriteDashboardXLSX(w io.Writer, stats *finance.DashboardStats) error {
	f := excelize.NewFile()
	defer f.Close()

	entries := []struct {
		label  string
		amount string
	}{
		{"Total Income", finance.FormatAmount(stats.TotalIncome)},
		{"Total Expenses", finance.FormatAmount(stats.TotalExpenses)},
		{"Total Contribution", finance.FormatAmount(stats.TotalContribution)},
		{"Profit (Ahmed)", finance.FormatAmount(stats.ProfitAhmed)},
		{"Profit (Nada)", finance.FormatAmount(stats.ProfitNada)},
		{"Overall Money Flow", finance.FormatAmount(stats.OverallMoneyFlow)},
		{"Total Loans", finance.FormatAmount(stats.TotalLoans)},
		{"Total Capital", finance.FormatAmount(stats.TotalCapital)},
		{"Bank Balance", finance.FormatAmount(stats.BankBalance)},
		{"Asset Value", finance.FormatAmount(stats.AssetValue)},
	}

	f.SetCellValue(sheetName, "A1", "Metric")
	f.SetCellValue(sheetName, "B1", "Amount (AED)")
	for i, e := range entries {
		row := i + 2
		f.SetCellValue(sheetName, "A"+fmt.Sprint(row), e.label)
		f.SetCellValue(sheetName, "B"+fmt.Sprint(row), e.amount)
	}

	return f.Write(w)
}
