package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/infra/observability"
	"github.com/challengerucars/backoffice-go/internal/service"

	"go.uber.org/zap"
)

type fakeBackupStore struct {
	mu       sync.Mutex
	tables   map[string][]json.RawMessage
	replaced []string
	failOn   string
}

func newFakeBackupStore() *fakeBackupStore {
	tables := map[string][]json.RawMessage{}
	for _, t := range []string{
		"vehicles", "vehicle_expenses", "profit_distributions",
		"transactions", "categories", "financial_settings", "global_settings",
	} {
		tables[t] = []json.RawMessage{}
	}
	return &fakeBackupStore{tables: tables}
}

func (f *fakeBackupStore) FetchTableRows(ctx context.Context, table string) ([]json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rows, ok := f.tables[table]
	if !ok {
		return nil, errors.New("unknown table: " + table)
	}
	return rows, nil
}

func (f *fakeBackupStore) ReplaceTableRows(ctx context.Context, table string, rows []json.RawMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if table == f.failOn {
		return errors.New("replace failed: " + table)
	}
	f.tables[table] = rows
	f.replaced = append(f.replaced, table)
	return nil
}

func newBackupService(store *fakeBackupStore) *service.BackupService {
	audit := service.NewAuditRecorder(&fakeAuditSink{}, observability.NewMetrics(), zap.NewNop())
	return service.NewBackupService(store, audit, observability.NewMetrics(), zap.NewNop())
}

func validEnvelope() *domain.BackupEnvelope {
	env := &domain.BackupEnvelope{
		BackupID:  "b-1",
		CreatedAt: "2024-06-01T00:00:00Z",
		Type:      "full",
	}
	env.Tables.Vehicles = []json.RawMessage{json.RawMessage(`{"id":"veh-1"}`)}
	env.Tables.VehicleExpenses = []json.RawMessage{}
	env.Tables.ProfitDistributions = []json.RawMessage{}
	env.Tables.Transactions = []json.RawMessage{json.RawMessage(`{"id":"tx-1"}`)}
	env.Tables.Categories = []json.RawMessage{}
	env.Tables.FinancialSettings = []json.RawMessage{}
	env.Tables.GlobalSettings = []json.RawMessage{}
	return env
}

func TestBackupCreateFillsAllTables(t *testing.T) {
	store := newFakeBackupStore()
	store.tables["vehicles"] = []json.RawMessage{json.RawMessage(`{"id":"veh-1"}`)}
	store.tables["transactions"] = []json.RawMessage{
		json.RawMessage(`{"id":"tx-1"}`),
		json.RawMessage(`{"id":"tx-2"}`),
	}
	svc := newBackupService(store)

	env, err := svc.Create(context.Background())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if env.BackupID == "" || env.CreatedAt == "" || env.Type != "full" {
		t.Errorf("envelope header incomplete: %+v", env)
	}
	if err := env.Validate(); err != nil {
		t.Errorf("freshly created envelope fails validation: %v", err)
	}
	if len(env.Tables.Vehicles) != 1 || len(env.Tables.Transactions) != 2 {
		t.Errorf("row counts: vehicles=%d transactions=%d",
			len(env.Tables.Vehicles), len(env.Tables.Transactions))
	}
}

func TestRestoreRejectsMissingTable(t *testing.T) {
	store := newFakeBackupStore()
	svc := newBackupService(store)

	env := validEnvelope()
	env.Tables.Categories = nil

	err := svc.Restore(context.Background(), env)
	var invalid *domain.ErrInvalidBackup
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidBackup, got %v", err)
	}
	if len(store.replaced) != 0 {
		t.Errorf("tables written before validation: %v", store.replaced)
	}
}

func TestRestoreAcceptsEmptyArrays(t *testing.T) {
	store := newFakeBackupStore()
	svc := newBackupService(store)

	env := validEnvelope()
	env.Tables.Vehicles = []json.RawMessage{}
	env.Tables.Transactions = []json.RawMessage{}

	if err := svc.Restore(context.Background(), env); err != nil {
		t.Fatalf("Restore: %v", err)
	}
}

func TestRestoreRunsParentFirst(t *testing.T) {
	store := newFakeBackupStore()
	svc := newBackupService(store)

	if err := svc.Restore(context.Background(), validEnvelope()); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	want := []string{
		"categories", "vehicles", "vehicle_expenses",
		"profit_distributions", "transactions",
		"financial_settings", "global_settings",
	}
	if len(store.replaced) != len(want) {
		t.Fatalf("replaced %d tables, want %d: %v", len(store.replaced), len(want), store.replaced)
	}
	for i, table := range want {
		if store.replaced[i] != table {
			t.Errorf("position %d: got %s, want %s", i, store.replaced[i], table)
		}
	}
}

func TestRestoreStopsAtFirstFailure(t *testing.T) {
	store := newFakeBackupStore()
	store.failOn = "vehicle_expenses"
	svc := newBackupService(store)

	err := svc.Restore(context.Background(), validEnvelope())
	if err == nil {
		t.Fatal("expected error")
	}

	// categories and vehicles land before the failure, nothing after
	want := []string{"categories", "vehicles"}
	if len(store.replaced) != len(want) {
		t.Fatalf("replaced tables: %v, want %v", store.replaced, want)
	}
}
