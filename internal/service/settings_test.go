package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/infra/cache"
	"github.com/challengerucars/backoffice-go/internal/infra/observability"
	"github.com/challengerucars/backoffice-go/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type fakeSettingsStore struct {
	mu        sync.Mutex
	financial *domain.FinancialSettings
	global    *domain.GlobalSettings

	createdFinancial bool
	globalUpdates    map[string]any
}

func (f *fakeSettingsStore) GetFinancialSettings(ctx context.Context) (*domain.FinancialSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.financial == nil {
		return nil, &domain.ErrNotFound{Resource: "financial_settings", ID: domain.FinancialSettingsID}
	}
	s := *f.financial
	return &s, nil
}

func (f *fakeSettingsStore) CreateFinancialSettings(ctx context.Context, settings *domain.FinancialSettings) (*domain.FinancialSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := *settings
	f.financial = &s
	f.createdFinancial = true
	return &s, nil
}

func (f *fakeSettingsStore) UpdateFinancialSettings(ctx context.Context, updates map[string]any) (*domain.FinancialSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.financial == nil {
		return nil, &domain.ErrNotFound{Resource: "financial_settings", ID: domain.FinancialSettingsID}
	}
	if v, ok := updates["cash_on_hand"].(decimal.Decimal); ok {
		f.financial.CashOnHand = v
	}
	if v, ok := updates["expenses"].(decimal.Decimal); ok {
		f.financial.Expenses = v
	}
	s := *f.financial
	return &s, nil
}

func (f *fakeSettingsStore) GetGlobalSettings(ctx context.Context) (*domain.GlobalSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.global == nil {
		return nil, &domain.ErrNotFound{Resource: "global_settings", ID: domain.GlobalSettingsID}
	}
	s := *f.global
	return &s, nil
}

func (f *fakeSettingsStore) UpdateGlobalSettings(ctx context.Context, updates map[string]any) (*domain.GlobalSettings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.globalUpdates = updates
	if f.global == nil {
		defaults := domain.DefaultGlobalSettings()
		f.global = &defaults
	}
	if v, ok := updates["company_name"].(string); ok {
		f.global.CompanyName = v
	}
	if v, ok := updates["currency"].(string); ok {
		f.global.Currency = v
	}
	s := *f.global
	return &s, nil
}

func newSettingsService(store *fakeSettingsStore) (*service.SettingsService, *cache.InMemory[domain.FinancialSettings]) {
	c := cache.New[domain.FinancialSettings](time.Minute)
	audit := service.NewAuditRecorder(&fakeAuditSink{}, observability.NewMetrics(), zap.NewNop())
	return service.NewSettingsService(store, c, audit, validator.New(), zap.NewNop()), c
}

func TestGetFinancialSeedsDefaultsWhenMissing(t *testing.T) {
	store := &fakeSettingsStore{}
	svc, _ := newSettingsService(store)

	got, err := svc.GetFinancial(context.Background())
	if err != nil {
		t.Fatalf("GetFinancial: %v", err)
	}
	if !store.createdFinancial {
		t.Error("defaults were not persisted")
	}
	want := domain.DefaultFinancialSettings()
	if !got.CashOnHand.Equal(want.CashOnHand) || !got.Additional.Equal(want.Additional) {
		t.Errorf("seeded settings differ from defaults: %+v", got)
	}
}

func TestGetFinancialReturnsExistingRow(t *testing.T) {
	existing := domain.DefaultFinancialSettings()
	existing.CashOnHand = decimal.NewFromInt(99999)
	store := &fakeSettingsStore{financial: &existing}
	svc, _ := newSettingsService(store)

	got, err := svc.GetFinancial(context.Background())
	if err != nil {
		t.Fatalf("GetFinancial: %v", err)
	}
	if store.createdFinancial {
		t.Error("seeded defaults over an existing row")
	}
	if !got.CashOnHand.Equal(decimal.NewFromInt(99999)) {
		t.Errorf("cash_on_hand = %s, want 99999", got.CashOnHand)
	}
}

func TestUpdateFinancialInvalidatesCache(t *testing.T) {
	existing := domain.DefaultFinancialSettings()
	store := &fakeSettingsStore{financial: &existing}
	svc, c := newSettingsService(store)

	c.Set("financial_settings", existing)

	newCash := decimal.NewFromInt(50000)
	got, err := svc.UpdateFinancial(context.Background(), &domain.FinancialSettingsInput{
		CashOnHand: &newCash,
	})
	if err != nil {
		t.Fatalf("UpdateFinancial: %v", err)
	}
	if !got.CashOnHand.Equal(newCash) {
		t.Errorf("cash_on_hand = %s, want %s", got.CashOnHand, newCash)
	}
	if _, ok := c.Get("financial_settings"); ok {
		t.Error("settings cache not invalidated")
	}
}

func TestUpdateGlobalPinsCurrency(t *testing.T) {
	store := &fakeSettingsStore{}
	svc, _ := newSettingsService(store)

	name := "New Name Motors"
	got, err := svc.UpdateGlobal(context.Background(), &domain.GlobalSettingsInput{
		CompanyName: &name,
	})
	if err != nil {
		t.Fatalf("UpdateGlobal: %v", err)
	}
	if got.Currency != "AED" {
		t.Errorf("currency = %s, want AED", got.Currency)
	}
	if store.globalUpdates["currency"] != "AED" {
		t.Errorf("currency not pinned in update payload: %v", store.globalUpdates)
	}
	if got.CompanyName != name {
		t.Errorf("company_name = %s, want %s", got.CompanyName, name)
	}
}

func TestGetGlobalFallsBackToDefaults(t *testing.T) {
	store := &fakeSettingsStore{}
	svc, _ := newSettingsService(store)

	got, err := svc.GetGlobal(context.Background())
	if err != nil {
		t.Fatalf("GetGlobal: %v", err)
	}
	if got.Currency != "AED" || got.CompanyName == "" {
		t.Errorf("unexpected defaults: %+v", got)
	}
}
