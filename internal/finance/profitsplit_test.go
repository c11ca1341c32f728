package finance_test

import (
	"errors"
	"testing"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/finance"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func soldVehicle(purchase, sale string) domain.Vehicle {
	salePrice := dec(sale)
	saleDate := "2024-03-15"
	return domain.Vehicle{
		ID:            "veh-1",
		VIN:           "WBA123456789",
		Make:          "Toyota",
		Model:         "Camry",
		Year:          2019,
		Status:        domain.VehicleSold,
		PurchasePrice: dec(purchase),
		PurchaseDate:  "2024-01-10",
		SalePrice:     &salePrice,
		SaleDate:      &saleDate,
	}
}

func TestSplitProfit(t *testing.T) {
	vehicle := soldVehicle("50000", "70000")
	expenses := []domain.VehicleExpense{
		{ID: "exp-1", VehicleID: vehicle.ID, Amount: dec("2000"), Recipient: strPtr("Ahmed"), Date: "2024-02-01", Type: "Repair"},
	}

	shares, err := finance.SplitProfit(vehicle, expenses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(shares) != 3 {
		t.Fatalf("expected 3 shares, got %d", len(shares))
	}

	// netProfit = 70,000 − 50,000 − 2,000 = 18,000
	wantPayable := map[string]string{
		"Ahmed":  "58300", // 18,000×0.35 + 2,000 + 50,000
		"Nada":   "2700",  // 18,000×0.15
		"Shaker": "9000",  // 18,000×0.50
	}
	for _, s := range shares {
		want := dec(wantPayable[s.Recipient])
		if !s.Payable.Equal(want) {
			t.Errorf("%s payable = %s, want %s", s.Recipient, s.Payable, want)
		}
	}

	// Ahmed's ledger amount excludes the purchase-price repayment.
	ahmed := shares[0]
	if ahmed.Recipient != "Ahmed" {
		t.Fatalf("expected Ahmed first in policy order, got %s", ahmed.Recipient)
	}
	if want := dec("8300"); !ahmed.ProfitOnly.Equal(want) {
		t.Errorf("Ahmed profit-only = %s, want %s", ahmed.ProfitOnly, want)
	}

	// Σ payables − purchase price = netProfit + reimbursed expenses.
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Payable)
	}
	if want := dec("70000"); !total.Equal(want) {
		// 58,300 + 2,700 + 9,000
		t.Errorf("sum of payables = %s, want %s", total, want)
	}
	if want := dec("20000"); !total.Sub(vehicle.PurchasePrice).Equal(want) {
		t.Errorf("payables minus purchase price = %s, want %s", total.Sub(vehicle.PurchasePrice), want)
	}
}

func TestSplitProfitNotes(t *testing.T) {
	vehicle := soldVehicle("50000", "70000")
	expenses := []domain.VehicleExpense{
		{Amount: dec("2000"), Recipient: strPtr("Ahmed")},
	}

	shares, err := finance.SplitProfit(vehicle, expenses)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantNotes := map[string]string{
		"Ahmed":  "35% of net profit (AED 6,300.00) + reimbursement (AED 2,000.00) + purchase price (AED 50,000.00)",
		"Nada":   "15% of net profit (AED 2,700.00)",
		"Shaker": "50% of net profit (AED 9,000.00)",
	}
	for _, s := range shares {
		if s.Note != wantNotes[s.Recipient] {
			t.Errorf("%s note = %q, want %q", s.Recipient, s.Note, wantNotes[s.Recipient])
		}
	}
}

func TestNetProfitAvailableVehicle(t *testing.T) {
	vehicle := domain.Vehicle{
		ID:            "veh-2",
		Status:        domain.VehicleAvailable,
		PurchasePrice: dec("30000"),
	}

	got, err := finance.NetProfit(vehicle, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("net profit for available vehicle = %s, want 0", got)
	}
}

func TestNetProfitSoldWithoutSalePrice(t *testing.T) {
	vehicle := domain.Vehicle{
		ID:            "veh-3",
		Status:        domain.VehicleSold,
		PurchasePrice: dec("30000"),
	}

	_, err := finance.NetProfit(vehicle, nil)
	var integrity *domain.ErrDataIntegrity
	if !errors.As(err, &integrity) {
		t.Fatalf("expected ErrDataIntegrity, got %v", err)
	}
}

func TestExpensesByRecipient(t *testing.T) {
	expenses := []domain.VehicleExpense{
		{Amount: dec("100"), Recipient: strPtr("Ahmed")},
		{Amount: dec("250"), Recipient: strPtr("Ahmed")},
		{Amount: dec("80"), Recipient: strPtr("Nada")},
		{Amount: dec("40")},                    // nil recipient
		{Amount: dec("60"), Recipient: strPtr("")}, // empty recipient
	}

	got := finance.ExpensesByRecipient(expenses)
	if want := dec("350"); !got["Ahmed"].Equal(want) {
		t.Errorf("Ahmed = %s, want %s", got["Ahmed"], want)
	}
	if want := dec("80"); !got["Nada"].Equal(want) {
		t.Errorf("Nada = %s, want %s", got["Nada"], want)
	}
	if want := dec("100"); !got[finance.RecipientOther].Equal(want) {
		t.Errorf("Other = %s, want %s", got[finance.RecipientOther], want)
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"2000", "2,000.00"},
		{"58300", "58,300.00"},
		{"1234567.899", "1,234,567.90"},
		{"-4100", "-4,100.00"},
		{"999", "999.00"},
	}
	for _, tt := range tests {
		if got := finance.FormatAmount(dec(tt.in)); got != tt.want {
			t.Errorf("FormatAmount(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
