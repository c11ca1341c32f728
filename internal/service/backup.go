package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/infra/observability"
	"github.com/challengerucars/backoffice-go/internal/port"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var backupTracer = otel.Tracer("service/backup")

// restoreOrder lists the backed-up tables parent-first, so a restore
// never inserts a child row before the row it references exists.
// Wipes run in the reverse order.
var restoreOrder = []string{
	"categories",
	"vehicles",
	"vehicle_expenses",
	"profit_distributions",
	"transactions",
	"financial_settings",
	"global_settings",
}

// BackupService assembles and restores full-database snapshots.
type BackupService struct {
	store   port.BackupStore
	audit   *AuditRecorder
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewBackupService creates a backup service.
func NewBackupService(store port.BackupStore, audit *AuditRecorder, metrics *observability.Metrics, logger *zap.Logger) *BackupService {
	return &BackupService{store: store, audit: audit, metrics: metrics, logger: logger}
}

// Create reads all seven tables concurrently and wraps them in a
// backup envelope.
func (s *BackupService) Create(ctx context.Context) (*domain.BackupEnvelope, error) {
	ctx, span := backupTracer.Start(ctx, "BackupService.Create")
	defer span.End()

	envelope := &domain.BackupEnvelope{
		BackupID:  uuid.New().String(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Type:      "full",
	}

	g, gctx := errgroup.WithContext(ctx)
	for table, dest := range map[string]*[]json.RawMessage{
		"vehicles":             &envelope.Tables.Vehicles,
		"vehicle_expenses":     &envelope.Tables.VehicleExpenses,
		"profit_distributions": &envelope.Tables.ProfitDistributions,
		"transactions":         &envelope.Tables.Transactions,
		"categories":           &envelope.Tables.Categories,
		"financial_settings":   &envelope.Tables.FinancialSettings,
		"global_settings":      &envelope.Tables.GlobalSettings,
	} {
		table, dest := table, dest
		g.Go(func() error {
			rows, err := s.store.FetchTableRows(gctx, table)
			if err != nil {
				return err
			}
			*dest = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.metrics.IncrBackup("create")
	s.logger.Info("backup created",
		zap.String("backup_id", envelope.BackupID),
		zap.Int("vehicles", len(envelope.Tables.Vehicles)),
		zap.Int("transactions", len(envelope.Tables.Transactions)),
	)

	return envelope, nil
}

// Restore validates the envelope, then wipes and reloads every table.
// Nothing is written until validation passes. Tables are replaced
// sequentially in dependency order; a failure mid-restore leaves the
// remaining tables untouched and is recovered by re-running with the
// same envelope.
func (s *BackupService) Restore(ctx context.Context, envelope *domain.BackupEnvelope) error {
	ctx, span := backupTracer.Start(ctx, "BackupService.Restore")
	defer span.End()
	span.SetAttributes(attribute.String("backup.id", envelope.BackupID))

	if err := envelope.Validate(); err != nil {
		return err
	}

	tables := map[string][]json.RawMessage{
		"vehicles":             envelope.Tables.Vehicles,
		"vehicle_expenses":     envelope.Tables.VehicleExpenses,
		"profit_distributions": envelope.Tables.ProfitDistributions,
		"transactions":         envelope.Tables.Transactions,
		"categories":           envelope.Tables.Categories,
		"financial_settings":   envelope.Tables.FinancialSettings,
		"global_settings":      envelope.Tables.GlobalSettings,
	}

	for _, table := range restoreOrder {
		if err := s.store.ReplaceTableRows(ctx, table, tables[table]); err != nil {
			s.logger.Error("restore failed",
				zap.String("backup_id", envelope.BackupID),
				zap.String("table", table),
				zap.Error(err),
			)
			return err
		}
	}

	s.metrics.IncrBackup("restore")
	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditRestore,
		EntityType:  domain.EntityBackup,
		EntityID:    envelope.BackupID,
		Description: "Restored database from backup " + envelope.BackupID,
	})
	s.logger.Info("backup restored", zap.String("backup_id", envelope.BackupID))

	return nil
}
