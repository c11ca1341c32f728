package service

import (
	"context"
	"errors"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/port"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var settingsTracer = otel.Tracer("service/settings")

// SettingsService handles the two settings singletons. Reads fall
// back to documented defaults when the row is missing; updates
// invalidate the dashboard's settings cache.
type SettingsService struct {
	store    port.SettingsStore
	cache    port.Cache[domain.FinancialSettings]
	audit    *AuditRecorder
	validate *validator.Validate
	logger   *zap.Logger
}

// NewSettingsService creates a settings service.
func NewSettingsService(store port.SettingsStore, cache port.Cache[domain.FinancialSettings], audit *AuditRecorder, validate *validator.Validate, logger *zap.Logger) *SettingsService {
	return &SettingsService{store: store, cache: cache, audit: audit, validate: validate, logger: logger}
}

// GetFinancial returns the financial settings row, creating it from
// the defaults when absent so a fresh deployment has a row to edit.
func (s *SettingsService) GetFinancial(ctx context.Context) (*domain.FinancialSettings, error) {
	ctx, span := settingsTracer.Start(ctx, "SettingsService.GetFinancial")
	defer span.End()

	settings, err := s.store.GetFinancialSettings(ctx)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			defaults := domain.DefaultFinancialSettings()
			created, createErr := s.store.CreateFinancialSettings(ctx, &defaults)
			if createErr != nil {
				s.logger.Warn("could not seed financial settings, serving defaults", zap.Error(createErr))
				return &defaults, nil
			}
			return created, nil
		}
		return nil, err
	}
	return settings, nil
}

// UpdateFinancial applies a partial settings update. Only the fields
// present in the input are written.
func (s *SettingsService) UpdateFinancial(ctx context.Context, in *domain.FinancialSettingsInput) (*domain.FinancialSettings, error) {
	ctx, span := settingsTracer.Start(ctx, "SettingsService.UpdateFinancial")
	defer span.End()

	old, err := s.GetFinancial(ctx)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.CashOnHand != nil {
		updates["cash_on_hand"] = *in.CashOnHand
	}
	if in.ShowroomBalance != nil {
		updates["showroom_balance"] = *in.ShowroomBalance
	}
	if in.PersonalLoan != nil {
		updates["personal_loan"] = *in.PersonalLoan
	}
	if in.Additional != nil {
		updates["additional"] = *in.Additional
	}
	if in.Expenses != nil {
		updates["expenses"] = *in.Expenses
	}
	if len(updates) == 0 {
		return old, nil
	}

	settings, err := s.store.UpdateFinancialSettings(ctx, updates)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(settingsCacheKey)

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditUpdate,
		EntityType:  domain.EntitySettings,
		EntityID:    domain.FinancialSettingsID,
		OldData:     mustJSON(old),
		NewData:     mustJSON(settings),
		Description: "Updated financial settings",
	})

	return settings, nil
}

// GetGlobal returns global settings, falling back to defaults.
func (s *SettingsService) GetGlobal(ctx context.Context) (*domain.GlobalSettings, error) {
	ctx, span := settingsTracer.Start(ctx, "SettingsService.GetGlobal")
	defer span.End()

	settings, err := s.store.GetGlobalSettings(ctx)
	if err != nil {
		var notFound *domain.ErrNotFound
		if errors.As(err, &notFound) {
			defaults := domain.DefaultGlobalSettings()
			return &defaults, nil
		}
		return nil, err
	}
	return settings, nil
}

// UpdateGlobal applies a partial global settings update. The currency
// is pinned to AED: all stored amounts are dirham figures, so letting
// it change would silently mislabel every number in the UI.
func (s *SettingsService) UpdateGlobal(ctx context.Context, in *domain.GlobalSettingsInput) (*domain.GlobalSettings, error) {
	ctx, span := settingsTracer.Start(ctx, "SettingsService.UpdateGlobal")
	defer span.End()

	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	updates := map[string]any{"currency": "AED"}
	if in.CompanyName != nil {
		updates["company_name"] = *in.CompanyName
	}
	if in.CompanyAddress != nil {
		updates["company_address"] = *in.CompanyAddress
	}
	if in.CompanyPhone != nil {
		updates["company_phone"] = *in.CompanyPhone
	}
	if in.CompanyEmail != nil {
		updates["company_email"] = *in.CompanyEmail
	}
	if in.ExchangeRate != nil {
		updates["exchange_rate"] = *in.ExchangeRate
	}
	if in.DateFormat != nil {
		updates["date_format"] = *in.DateFormat
	}
	if in.AutoLogoutMinutes != nil {
		updates["auto_logout_minutes"] = *in.AutoLogoutMinutes
	}

	settings, err := s.store.UpdateGlobalSettings(ctx, updates)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditUpdate,
		EntityType:  domain.EntityGlobalSettings,
		EntityID:    domain.GlobalSettingsID,
		NewData:     mustJSON(settings),
		Description: "Updated global settings",
	})

	return settings, nil
}
