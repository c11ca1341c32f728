package report_test

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/finance"
	"github.com/challengerucars/backoffice-go/internal/report"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestWriteTransactionsCSV(t *testing.T) {
	transactions := []domain.Transaction{
		{
			Date:        "2024-06-15",
			Type:        domain.TransactionIncome,
			Category:    domain.CategoryVehicleSale,
			Description: "2019 Toyota Camry",
			Amount:      decimal.NewFromInt(50000),
		},
		{
			Date:        "2024-06-20",
			Type:        domain.TransactionExpense,
			Category:    domain.CategoryPersonalExpenses,
			Description: "fuel, with a comma",
			Amount:      decimal.NewFromFloat(312.5),
		},
	}

	var buf bytes.Buffer
	if err := report.WriteTransactionsCSV(&buf, transactions); err != nil {
		t.Fatalf("WriteTransactionsCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header plus 2 rows", len(records))
	}
	if records[0][0] != "Date" || records[0][4] != "Amount (AED)" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][4] != "50000.00" {
		t.Errorf("amount = %q, want 50000.00", records[1][4])
	}
	// commas in descriptions must survive the round trip
	if records[2][3] != "fuel, with a comma" {
		t.Errorf("description = %q", records[2][3])
	}
	if records[2][4] != "312.50" {
		t.Errorf("amount = %q, want 312.50", records[2][4])
	}
}

func TestWriteTransactionsCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteTransactionsCSV(&buf, nil); err != nil {
		t.Fatalf("WriteTransactionsCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Errorf("empty export should be header only, got %d lines", len(lines))
	}
}

func TestWriteMonthlyStatsCSV(t *testing.T) {
	stats := []finance.MonthlyStats{
		{
			Month:            "2024-05",
			Income:           decimal.NewFromInt(12000),
			Expenses:         decimal.NewFromInt(3000),
			Profit:           decimal.NewFromInt(9000),
			ProfitPercentage: decimal.NewFromInt(75),
		},
	}

	var buf bytes.Buffer
	if err := report.WriteMonthlyStatsCSV(&buf, stats); err != nil {
		t.Fatalf("WriteMonthlyStatsCSV: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	want := []string{"2024-05", "12000.00", "3000.00", "9000.00", "75.00"}
	for i, cell := range want {
		if records[1][i] != cell {
			t.Errorf("column %d = %q, want %q", i, records[1][i], cell)
		}
	}
}

func TestWriteTransactionsXLSX(t *testing.T) {
	transactions := []domain.Transaction{
		{
			Date:        "2024-06-15",
			Type:        domain.TransactionIncome,
			Category:    domain.CategoryVehicleSale,
			Description: "2019 Toyota Camry",
			Amount:      decimal.NewFromInt(50000),
		},
	}

	var buf bytes.Buffer
	if err := report.WriteTransactionsXLSX(&buf, transactions); err != nil {
		t.Fatalf("WriteTransactionsXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	header, err := f.GetCellValue("Sheet1", "A1")
	if err != nil {
		t.Fatalf("read A1: %v", err)
	}
	if header != "Date" {
		t.Errorf("A1 = %q, want Date", header)
	}
	category, _ := f.GetCellValue("Sheet1", "C2")
	if category != domain.CategoryVehicleSale {
		t.Errorf("C2 = %q, want %q", category, domain.CategoryVehicleSale)
	}
	amount, _ := f.GetCellValue("Sheet1", "E2")
	if amount != "50000" {
		t.Errorf("E2 = %q, want 50000", amount)
	}
}

func TestWriteDashboardXLSX(t *testing.T) {
	stats := &finance.DashboardStats{
		TotalIncome:   decimal.NewFromInt(80000),
		TotalExpenses: decimal.NewFromInt(20000),
	}

	var buf bytes.Buffer
	if err := report.WriteDashboardXLSX(&buf, stats); err != nil {
		t.Fatalf("WriteDashboardXLSX: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	label, _ := f.GetCellValue("Sheet1", "A2")
	if label != "Total Income" {
		t.Errorf("A2 = %q, want Total Income", label)
	}
}
