package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Vehicle status values. sale_price and sale_date are non-null iff SOLD.
const (
	VehicleAvailable = "AVAILABLE"
	VehicleSold      = "SOLD"
)

// Vehicle is a unit of dealership inventory.
type Vehicle struct {
	ID                   string           `json:"id"`
	VIN                  string           `json:"vin"`
	Make                 string           `json:"make"`
	Model                string           `json:"model"`
	Year                 int              `json:"year"`
	Color                string           `json:"color"`
	Status               string           `json:"status"` // AVAILABLE | SOLD
	PurchasePrice        decimal.Decimal  `json:"purchase_price"`
	PurchaseDate         string           `json:"purchase_date"`
	SalePrice            *decimal.Decimal `json:"sale_price,omitempty"`
	SaleDate             *string          `json:"sale_date,omitempty"`
	Notes                string           `json:"notes,omitempty"`
	OwnerName            *string          `json:"owner_name,omitempty"`
	TCNumber             *string          `json:"tc_number,omitempty"`
	CertificateNumber    *string          `json:"certificate_number,omitempty"`
	RegistrationLocation *string          `json:"registration_location,omitempty"`
	CreatedAt            time.Time        `json:"created_at,omitempty"`
	UpdatedAt            time.Time        `json:"updated_at,omitempty"`
}

// Label returns the human-readable vehicle description used in ledger
// entries and audit logs, e.g. "2019 Toyota Camry".
func (v Vehicle) Label() string {
	return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
}

// VehicleInput carries a new or updated vehicle.
type VehicleInput struct {
	VIN                  string           `json:"vin" validate:"required"`
	Make                 string           `json:"make" validate:"required"`
	Model                string           `json:"model" validate:"required"`
	Year                 int              `json:"year" validate:"required,gte=1950,lte=2100"`
	Color                string           `json:"color"`
	Status               string           `json:"status" validate:"required,oneof=AVAILABLE SOLD"`
	PurchasePrice        decimal.Decimal  `json:"purchase_price"`
	PurchaseDate         string           `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	SalePrice            *decimal.Decimal `json:"sale_price,omitempty"`
	SaleDate             *string          `json:"sale_date,omitempty"`
	Notes                string           `json:"notes,omitempty"`
	OwnerName            *string          `json:"owner_name,omitempty"`
	TCNumber             *string          `json:"tc_number,omitempty"`
	CertificateNumber    *string          `json:"certificate_number,omitempty"`
	RegistrationLocation *string          `json:"registration_location,omitempty"`
}

// VehicleExpense is a cost attributed to one vehicle.
// If recipient is "Ahmed", a mirrored expense Transaction with
// reference_id = expense.id must exist (at most one).
type VehicleExpense struct {
	ID        string          `json:"id"`
	VehicleID string          `json:"vehicle_id"`
	Date      string          `json:"date"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Recipient *string         `json:"recipient,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
}

// VehicleExpenseInput carries a new or updated vehicle expense.
type VehicleExpenseInput struct {
	VehicleID string          `json:"vehicle_id" validate:"required"`
	Date      string          `json:"date" validate:"required,datetime=2006-01-02"`
	Type      string          `json:"type" validate:"required"`
	Amount    decimal.Decimal `json:"amount"`
	Recipient *string         `json:"recipient,omitempty"`
	Notes     *string         `json:"notes,omitempty"`
}

// ProfitDistribution is a denormalized output row of the profit split.
// The full set for a vehicle is regenerated on each auto-distribute
// run, never partially updated.
type ProfitDistribution struct {
	ID         string          `json:"id"`
	VehicleID  string          `json:"vehicle_id"`
	Recipient  string          `json:"recipient"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
	Date       string          `json:"date"`
	Notes      *string         `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
}

// VehicleFinancials is the pre-joined vehicle_financials view row:
// a vehicle plus its aggregate expense and profit totals.
type VehicleFinancials struct {
	Vehicle
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetProfit        decimal.Decimal `json:"net_profit"`
	TotalDistributed decimal.Decimal `json:"total_distributed"`
}
