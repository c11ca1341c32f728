package handler

import (
	"net/http"

	"github.com/challengerucars/backoffice-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Dashboard & Business Performance Handlers
// ============================================================

func dashboardStatsHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /dashboard/stats")
		defer span.End()

		stats, err := svc.GetStats(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func monthlyStatsHandler(svc *service.BusinessService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /business/monthly")
		defer span.End()

		stats, err := svc.MonthlyStats(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func yearlyStatsHandler(svc *service.BusinessService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /business/yearly")
		defer span.End()

		stats, err := svc.YearlyStats(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}
