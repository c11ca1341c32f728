package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FinancialSettingsID is the fixed row id of the financial settings
// singleton. The same value doubles as its user_id for consistency.
const FinancialSettingsID = "ef87c799-ef55-4608-bf91-a902229ee6b6"

// GlobalSettingsID is the fixed row id of the global settings singleton.
const GlobalSettingsID = "global-settings"

// FinancialSettings holds the manually maintained baseline figures
// that combine with transaction aggregates into dashboard totals.
type FinancialSettings struct {
	ID              string          `json:"id"`
	UserID          string          `json:"user_id"`
	CashOnHand      decimal.Decimal `json:"cash_on_hand"`
	ShowroomBalance decimal.Decimal `json:"showroom_balance"`
	PersonalLoan    decimal.Decimal `json:"personal_loan"`
	Additional      decimal.Decimal `json:"additional"`
	Expenses        decimal.Decimal `json:"expenses"`
	UpdatedAt       time.Time       `json:"updated_at,omitempty"`
}

// DefaultFinancialSettings returns the documented baseline used when
// the settings row is missing or unreachable. The dashboard must stay
// available, so aggregation falls back to these rather than failing.
func DefaultFinancialSettings() FinancialSettings {
	return FinancialSettings{
		ID:              FinancialSettingsID,
		UserID:          FinancialSettingsID,
		CashOnHand:      decimal.NewFromInt(18400),
		ShowroomBalance: decimal.NewFromInt(20135),
		PersonalLoan:    decimal.NewFromInt(22500),
		Additional:      decimal.NewFromInt(-4100),
		Expenses:        decimal.Zero,
	}
}

// FinancialSettingsInput carries an update to the baseline figures.
type FinancialSettingsInput struct {
	CashOnHand      *decimal.Decimal `json:"cash_on_hand,omitempty"`
	ShowroomBalance *decimal.Decimal `json:"showroom_balance,omitempty"`
	PersonalLoan    *decimal.Decimal `json:"personal_loan,omitempty"`
	Additional      *decimal.Decimal `json:"additional,omitempty"`
	Expenses        *decimal.Decimal `json:"expenses,omitempty"`
}

// GlobalSettings holds company-wide presentation settings.
type GlobalSettings struct {
	ID                string          `json:"id"`
	CompanyName       string          `json:"company_name"`
	CompanyAddress    string          `json:"company_address"`
	CompanyPhone      string          `json:"company_phone"`
	CompanyEmail      string          `json:"company_email"`
	Currency          string          `json:"currency"`
	ExchangeRate      decimal.Decimal `json:"exchange_rate"`
	DateFormat        string          `json:"date_format"`
	AutoLogoutMinutes int             `json:"auto_logout_minutes"`
	CreatedAt         time.Time       `json:"created_at,omitempty"`
	UpdatedAt         time.Time       `json:"updated_at,omitempty"`
}

// DefaultGlobalSettings returns the fallback company settings.
func DefaultGlobalSettings() GlobalSettings {
	return GlobalSettings{
		ID:                GlobalSettingsID,
		CompanyName:       "Challenger Used Cars",
		CompanyAddress:    "Showroom No 801/290, Opposite Tamouh Souq Al Haraj - Al Ruqa Al Hamra, Sharjah, United Arab Emirates",
		CompanyPhone:      "+971 50 123 4567",
		CompanyEmail:      "info@challengerucars.com",
		Currency:          "AED",
		ExchangeRate:      decimal.NewFromFloat(3.6725),
		DateFormat:        "YYYY-MM-DD",
		AutoLogoutMinutes: 30,
	}
}

// GlobalSettingsInput carries an update to global settings. Currency
// is always forced back to AED by the service layer.
type GlobalSettingsInput struct {
	CompanyName       *string          `json:"company_name,omitempty"`
	CompanyAddress    *string          `json:"company_address,omitempty"`
	CompanyPhone      *string          `json:"company_phone,omitempty"`
	CompanyEmail      *string          `json:"company_email,omitempty" validate:"omitempty,email"`
	ExchangeRate      *decimal.Decimal `json:"exchange_rate,omitempty"`
	DateFormat        *string          `json:"date_format,omitempty"`
	AutoLogoutMinutes *int             `json:"auto_logout_minutes,omitempty" validate:"omitempty,gte=1,lte=480"`
}
