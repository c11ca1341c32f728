package handler

import (
	"net/http"

	"github.com/challengerucars/backoffice-go/internal/infra/observability"
	"github.com/challengerucars/backoffice-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// Services bundles everything the router wires up.
type Services struct {
	Transactions *service.TransactionService
	Vehicles     *service.VehicleService
	Dashboard    *service.DashboardService
	Business     *service.BusinessService
	Categories   *service.CategoryService
	Settings     *service.SettingsService
	Backup       *service.BackupService
	Auth         *service.AuthService
	Users        *service.UserService
	Audit        *service.AuditRecorder
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(svcs Services, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(observability.MetricsMiddleware(metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// Auth (public)
		r.Post("/auth/register", registerHandler(svcs.Auth, logger))
		r.Post("/auth/login", loginHandler(svcs.Auth, logger))
		r.Post("/auth/refresh", refreshHandler(svcs.Auth, logger))

		// Everything else requires a valid access token
		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(svcs.Auth, logger))

			r.Post("/auth/logout", logoutHandler(svcs.Auth, logger))
			r.Get("/users/me", getMeHandler(svcs.Users, logger))
			r.Put("/users/me", updateProfileHandler(svcs.Users, logger))
			r.Post("/users/me/avatar", uploadAvatarHandler(svcs.Users, logger))

			// Ledger
			r.Get("/transactions", listTransactionsHandler(svcs.Transactions, logger))
			r.Post("/transactions", createTransactionHandler(svcs.Transactions, logger))
			r.Get("/transactions/{transactionId}", getTransactionHandler(svcs.Transactions, logger))
			r.Put("/transactions/{transactionId}", updateTransactionHandler(svcs.Transactions, logger))
			r.Delete("/transactions/{transactionId}", deleteTransactionHandler(svcs.Transactions, logger))

			// Inventory
			r.Get("/vehicles", listVehiclesHandler(svcs.Vehicles, logger))
			r.Post("/vehicles", createVehicleHandler(svcs.Vehicles, logger))
			r.Get("/vehicles/financials", listVehicleFinancialsHandler(svcs.Vehicles, logger))
			r.Get("/vehicles/{vehicleId}", getVehicleHandler(svcs.Vehicles, logger))
			r.Put("/vehicles/{vehicleId}", updateVehicleHandler(svcs.Vehicles, logger))
			r.Delete("/vehicles/{vehicleId}", deleteVehicleHandler(svcs.Vehicles, logger))

			// Vehicle expenses
			r.Get("/vehicles/{vehicleId}/expenses", listVehicleExpensesHandler(svcs.Vehicles, logger))
			r.Post("/vehicles/{vehicleId}/expenses", addVehicleExpenseHandler(svcs.Vehicles, logger))
			r.Put("/vehicles/{vehicleId}/expenses/{expenseId}", updateVehicleExpenseHandler(svcs.Vehicles, logger))
			r.Delete("/vehicles/{vehicleId}/expenses/{expenseId}", deleteVehicleExpenseHandler(svcs.Vehicles, logger))

			// Profit distribution
			r.Get("/vehicles/{vehicleId}/distributions", listDistributionsHandler(svcs.Vehicles, logger))
			r.Post("/vehicles/{vehicleId}/distributions/auto", autoDistributeHandler(svcs.Vehicles, logger))

			// Dashboard & business performance
			r.Get("/dashboard/stats", dashboardStatsHandler(svcs.Dashboard, logger))
			r.Get("/business/monthly", monthlyStatsHandler(svcs.Business, logger))
			r.Get("/business/yearly", yearlyStatsHandler(svcs.Business, logger))

			// Categories
			r.Get("/categories", listCategoriesHandler(svcs.Categories, logger))
			r.Post("/categories", createCategoryHandler(svcs.Categories, logger))
			r.Put("/categories/{categoryId}", updateCategoryHandler(svcs.Categories, logger))
			r.Delete("/categories/{categoryId}", deleteCategoryHandler(svcs.Categories, logger))

			// Settings
			r.Get("/settings/financial", getFinancialSettingsHandler(svcs.Settings, logger))
			r.Put("/settings/financial", updateFinancialSettingsHandler(svcs.Settings, logger))
			r.Get("/settings/global", getGlobalSettingsHandler(svcs.Settings, logger))
			r.Put("/settings/global", updateGlobalSettingsHandler(svcs.Settings, logger))

			// Backup & restore
			r.Post("/backup", createBackupHandler(svcs.Backup, logger))
			r.Post("/backup/restore", restoreBackupHandler(svcs.Backup, logger))

			// Audit log
			r.Get("/audit", listAuditEntriesHandler(svcs.Audit, logger))

			// Reports
			r.Get("/reports/transactions.csv", transactionsCSVHandler(svcs.Transactions, logger))
			r.Get("/reports/transactions.xlsx", transactionsXLSXHandler(svcs.Transactions, logger))
			r.Get("/reports/monthly.csv", monthlyStatsCSVHandler(svcs.Business, logger))
			r.Get("/reports/dashboard.xlsx", dashboardXLSXHandler(svcs.Dashboard, logger))

			// Ops snapshot
			r.Get("/metrics/ops", opsMetricsHandler(metrics))
		})
	})

	return r
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func opsMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetOpsSnapshot())
	}
}
