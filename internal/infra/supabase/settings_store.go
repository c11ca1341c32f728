package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/challengerucars/backoffice-go/internal/domain"
)

// ============================================================
// SettingsStore implementation — two singleton rows
// ============================================================

func (c *Client) GetFinancialSettings(ctx context.Context) (*domain.FinancialSettings, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetFinancialSettings")
	defer span.End()

	path := fmt.Sprintf("financial_settings?id=eq.%s&limit=1", domain.FinancialSettingsID)
	body, err := c.doResilientGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/financial_settings", Err: err}
	}
	if body == nil || string(body) == "[]" {
		return nil, &domain.ErrNotFound{Resource: "financial_settings", ID: domain.FinancialSettingsID}
	}

	var rows []domain.FinancialSettings
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode financial_settings: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "financial_settings", ID: domain.FinancialSettingsID}
	}
	return &rows[0], nil
}

func (c *Client) CreateFinancialSettings(ctx context.Context, settings *domain.FinancialSettings) (*domain.FinancialSettings, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateFinancialSettings")
	defer span.End()

	row := map[string]any{
		"id":               settings.ID,
		"user_id":          settings.UserID,
		"cash_on_hand":     settings.CashOnHand,
		"showroom_balance": settings.ShowroomBalance,
		"personal_loan":    settings.PersonalLoan,
		"additional":       settings.Additional,
		"expenses":         settings.Expenses,
	}

	body, err := c.doPost(ctx, "financial_settings", row)
	if err != nil {
		return nil, err
	}

	var results []domain.FinancialSettings
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode financial_settings insert: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result returned from financial_settings insert")
	}
	return &results[0], nil
}

func (c *Client) UpdateFinancialSettings(ctx context.Context, updates map[string]any) (*domain.FinancialSettings, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateFinancialSettings")
	defer span.End()

	path := fmt.Sprintf("financial_settings?id=eq.%s", domain.FinancialSettingsID)
	body, err := c.doPatchReturning(ctx, path, updates)
	if err != nil {
		return nil, err
	}

	var results []domain.FinancialSettings
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode financial_settings update: %w", err)
	}
	if len(results) == 0 {
		return nil, &domain.ErrNotFound{Resource: "financial_settings", ID: domain.FinancialSettingsID}
	}
	return &results[0], nil
}

func (c *Client) GetGlobalSettings(ctx context.Context) (*domain.GlobalSettings, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetGlobalSettings")
	defer span.End()

	path := fmt.Sprintf("global_settings?id=eq.%s&limit=1", domain.GlobalSettingsID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return nil, &domain.ErrNotFound{Resource: "global_settings", ID: domain.GlobalSettingsID}
	}

	var rows []domain.GlobalSettings
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode global_settings: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "global_settings", ID: domain.GlobalSettingsID}
	}
	return &rows[0], nil
}

func (c *Client) UpdateGlobalSettings(ctx context.Context, updates map[string]any) (*domain.GlobalSettings, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateGlobalSettings")
	defer span.End()

	path := fmt.Sprintf("global_settings?id=eq.%s", domain.GlobalSettingsID)
	body, err := c.doPatchReturning(ctx, path, updates)
	if err != nil {
		return nil, err
	}

	var results []domain.GlobalSettings
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode global_settings update: %w", err)
	}
	if len(results) == 0 {
		return nil, &domain.ErrNotFound{Resource: "global_settings", ID: domain.GlobalSettingsID}
	}
	return &results[0], nil
}
