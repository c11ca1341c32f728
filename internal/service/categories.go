package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var catTracer = otel.Tracer("service/categories")

// CategoryService handles ledger categories. Per-category counts and
// totals are derived from the transaction set on every read.
type CategoryService struct {
	store  port.CategoryStore
	ledger port.LedgerStore
	audit  *AuditRecorder
	logger *zap.Logger
}

// NewCategoryService creates a category service.
func NewCategoryService(store port.CategoryStore, ledger port.LedgerStore, audit *AuditRecorder, logger *zap.Logger) *CategoryService {
	return &CategoryService{store: store, ledger: ledger, audit: audit, logger: logger}
}

// List returns all categories with their derived transaction stats.
func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	ctx, span := catTracer.Start(ctx, "CategoryService.List")
	defer span.End()

	var (
		categories   []domain.Category
		transactions []domain.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = s.store.ListCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		transactions, err = s.ledger.ListTransactions(gctx, domain.TransactionFilter{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i := range categories {
		for _, tx := range transactions {
			if tx.Category != categories[i].Name {
				continue
			}
			categories[i].TransactionCount++
			if tx.Type == domain.TransactionIncome {
				categories[i].TotalIncome = categories[i].TotalIncome.Add(tx.Amount)
			} else {
				categories[i].TotalExpenses = categories[i].TotalExpenses.Add(tx.Amount)
			}
		}
	}

	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, name string) (*domain.Category, error) {
	ctx, span := catTracer.Start(ctx, "CategoryService.Create")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}

	existing, err := s.store.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if strings.EqualFold(c.Name, name) {
			return nil, &domain.ErrConflict{Message: fmt.Sprintf("category %q already exists", name)}
		}
	}

	cat, err := s.store.CreateCategory(ctx, name)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditCreate,
		EntityType:  domain.EntityCategory,
		EntityID:    cat.ID,
		NewData:     mustJSON(cat),
		Description: fmt.Sprintf("Created category %q", name),
	})

	return cat, nil
}

func (s *CategoryService) Update(ctx context.Context, id, name string) (*domain.Category, error) {
	ctx, span := catTracer.Start(ctx, "CategoryService.Update")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}

	cat, err := s.store.UpdateCategory(ctx, id, name)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditUpdate,
		EntityType:  domain.EntityCategory,
		EntityID:    id,
		NewData:     mustJSON(cat),
		Description: fmt.Sprintf("Renamed category to %q", name),
	})

	return cat, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	ctx, span := catTracer.Start(ctx, "CategoryService.Delete")
	defer span.End()

	if err := s.store.DeleteCategory(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditDelete,
		EntityType:  domain.EntityCategory,
		EntityID:    id,
		Description: "Deleted category",
	})

	return nil
}
