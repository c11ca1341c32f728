package service

import (
	"context"
	"errors"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/finance"
	"github.com/challengerucars/backoffice-go/internal/infra/observability"
	"github.com/challengerucars/backoffice-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var dashTracer = otel.Tracer("service/dashboard")

const settingsCacheKey = "financial_settings"

// DashboardService assembles the dashboard aggregates. Transactions,
// settings and vehicles are fetched concurrently; settings come from
// the TTL cache when warm.
type DashboardService struct {
	ledger   port.LedgerStore
	vehicles port.VehicleStore
	settings port.SettingsStore
	cache    port.Cache[domain.FinancialSettings]
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewDashboardService creates a dashboard service.
func NewDashboardService(ledger port.LedgerStore, vehicles port.VehicleStore, settings port.SettingsStore, cache port.Cache[domain.FinancialSettings], metrics *observability.Metrics, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		ledger:   ledger,
		vehicles: vehicles,
		settings: settings,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
	}
}

// GetStats computes the dashboard totals. A missing or unreachable
// settings row degrades to the documented baseline instead of failing
// the whole dashboard.
func (s *DashboardService) GetStats(ctx context.Context) (*finance.DashboardStats, error) {
	ctx, span := dashTracer.Start(ctx, "DashboardService.GetStats")
	defer span.End()

	var (
		transactions []domain.Transaction
		vehicles     []domain.Vehicle
		settings     *domain.FinancialSettings
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		transactions, err = s.ledger.ListTransactions(gctx, domain.TransactionFilter{})
		return err
	})
	g.Go(func() error {
		var err error
		vehicles, err = s.vehicles.ListVehicles(gctx)
		return err
	})
	g.Go(func() error {
		settings = s.fetchSettings(gctx)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := finance.Aggregate(transactions, settings, vehicles)
	return &stats, nil
}

// fetchSettings returns the cached settings snapshot, reloading it on
// a miss. Load failures return nil so the aggregator falls back to
// the defaults.
func (s *DashboardService) fetchSettings(ctx context.Context) *domain.FinancialSettings {
	if cached, ok := s.cache.Get(settingsCacheKey); ok {
		s.metrics.IncrCacheHit("settings")
		return &cached
	}
	s.metrics.IncrCacheMiss("settings")

	settings, err := s.settings.GetFinancialSettings(ctx)
	if err != nil {
		var external *domain.ErrExternalService
		if errors.As(err, &external) {
			s.metrics.IncrExternalError("supabase/financial_settings")
		}
		s.logger.Warn("financial settings unavailable, using defaults", zap.Error(err))
		return nil
	}

	s.cache.Set(settingsCacheKey, *settings)
	return settings
}
