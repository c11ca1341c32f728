package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/report"
	"github.com/challengerucars/backoffice-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Report Handlers — CSV and XLSX downloads
// ============================================================

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func setDownloadHeaders(w http.ResponseWriter, contentType, basename, ext string) {
	filename := fmt.Sprintf("%s-%s.%s", basename, time.Now().Format("2006-01-02"), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
}

func transactionsCSVHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /reports/transactions.csv")
		defer span.End()

		q := r.URL.Query()
		transactions, err := svc.List(ctx, domain.TransactionFilter{
			StartDate: q.Get("start_date"),
			EndDate:   q.Get("end_date"),
		})
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		setDownloadHeaders(w, "text/csv", "transactions", "csv")
		if err := report.WriteTransactionsCSV(w, transactions); err != nil {
			logger.Error("write transactions csv", zap.Error(err))
		}
	}
}

func transactionsXLSXHandler(svc *service.TransactionService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /reports/transactions.xlsx")
		defer span.End()

		q := r.URL.Query()
		transactions, err := svc.List(ctx, domain.TransactionFilter{
			StartDate: q.Get("start_date"),
			EndDate:   q.Get("end_date"),
		})
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		setDownloadHeaders(w, xlsxContentType, "transactions", "xlsx")
		if err := report.WriteTransactionsXLSX(w, transactions); err != nil {
			logger.Error("write transactions xlsx", zap.Error(err))
		}
	}
}

func monthlyStatsCSVHandler(svc *service.BusinessService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /reports/monthly.csv")
		defer span.End()

		stats, err := svc.MonthlyStats(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		setDownloadHeaders(w, "text/csv", "monthly-performance", "csv")
		if err := report.WriteMonthlyStatsCSV(w, stats); err != nil {
			logger.Error("write monthly stats csv", zap.Error(err))
		}
	}
}

func dashboardXLSXHandler(svc *service.DashboardService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /reports/dashboard.xlsx")
		defer span.End()

		stats, err := svc.GetStats(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		setDownloadHeaders(w, xlsxContentType, "dashboard", "xlsx")
		if err := report.WriteDashboardXLSX(w, stats); err != nil {
			logger.Error("write dashboard xlsx", zap.Error(err))
		}
	}
}
