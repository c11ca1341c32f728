package service

import (
	"context"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/finance"
	"github.com/challengerucars/backoffice-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var bizTracer = otel.Tracer("service/business")

// BusinessService rolls the ledger into monthly and yearly
// performance figures.
type BusinessService struct {
	ledger port.LedgerStore
	logger *zap.Logger
}

// NewBusinessService creates a business performance service.
func NewBusinessService(ledger port.LedgerStore, logger *zap.Logger) *BusinessService {
	return &BusinessService{ledger: ledger, logger: logger}
}

// MonthlyStats returns per-month performance, oldest month first.
func (s *BusinessService) MonthlyStats(ctx context.Context) ([]finance.MonthlyStats, error) {
	ctx, span := bizTracer.Start(ctx, "BusinessService.MonthlyStats")
	defer span.End()

	transactions, err := s.ledger.ListTransactions(ctx, domain.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	return finance.MonthlyBreakdown(transactions), nil
}

// YearlyStats returns per-year performance, newest year first.
func (s *BusinessService) YearlyStats(ctx context.Context) ([]finance.YearlyStats, error) {
	ctx, span := bizTracer.Start(ctx, "BusinessService.YearlyStats")
	defer span.End()

	transactions, err := s.ledger.ListTransactions(ctx, domain.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	return finance.YearlyBreakdown(transactions), nil
}
