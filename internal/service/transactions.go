// Package service provides the business logic layer (use cases) of
// the dealer back office: ledger, inventory, profit distribution,
// dashboards, settings, backups and auth.
package service

import (
	"context"
	"fmt"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/port"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var txTracer = otel.Tracer("service/transactions")

// TransactionService handles ledger CRUD.
type TransactionService struct {
	store    port.LedgerStore
	audit    *AuditRecorder
	validate *validator.Validate
	logger   *zap.Logger
}

// NewTransactionService creates a transaction service.
func NewTransactionService(store port.LedgerStore, audit *AuditRecorder, validate *validator.Validate, logger *zap.Logger) *TransactionService {
	return &TransactionService{store: store, audit: audit, validate: validate, logger: logger}
}

func (s *TransactionService) List(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.List")
	defer span.End()

	return s.store.ListTransactions(ctx, filter)
}

func (s *TransactionService) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.Get")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", id))

	return s.store.GetTransaction(ctx, id)
}

func (s *TransactionService) Create(ctx context.Context, in *domain.TransactionInput) (*domain.Transaction, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.Create")
	defer span.End()

	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if !in.Amount.IsPositive() {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}

	tx, err := s.store.CreateTransaction(ctx, in)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditCreate,
		EntityType:  domain.EntityTransaction,
		EntityID:    tx.ID,
		NewData:     mustJSON(tx),
		Description: fmt.Sprintf("Created %s transaction: %s", tx.Type, tx.Category),
	})

	return tx, nil
}

func (s *TransactionService) Update(ctx context.Context, id string, in *domain.TransactionInput) (*domain.Transaction, error) {
	ctx, span := txTracer.Start(ctx, "TransactionService.Update")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", id))

	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if !in.Amount.IsPositive() {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}

	old, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"amount":      in.Amount,
		"type":        in.Type,
		"category":    in.Category,
		"description": in.Description,
		"date":        in.Date,
	}
	tx, err := s.store.UpdateTransaction(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditUpdate,
		EntityType:  domain.EntityTransaction,
		EntityID:    id,
		OldData:     mustJSON(old),
		NewData:     mustJSON(tx),
		Description: fmt.Sprintf("Updated %s transaction: %s", tx.Type, tx.Category),
	})

	return tx, nil
}

func (s *TransactionService) Delete(ctx context.Context, id string) error {
	ctx, span := txTracer.Start(ctx, "TransactionService.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", id))

	old, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditDelete,
		EntityType:  domain.EntityTransaction,
		EntityID:    id,
		OldData:     mustJSON(old),
		Description: fmt.Sprintf("Deleted %s transaction: %s", old.Type, old.Category),
	})

	return nil
}

// validationError converts a validator error into a domain error the
// handler layer maps to 400.
func validationError(err error) error {
	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		first := verrs[0]
		return &domain.ErrValidation{
			Field:   first.Field(),
			Message: fmt.Sprintf("failed on '%s' rule", first.Tag()),
		}
	}
	return &domain.ErrValidation{Field: "input", Message: err.Error()}
}
