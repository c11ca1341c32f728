package handler

import (
	"net/http"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Vehicle Handlers
// ============================================================

func listVehiclesHandler(svc *service.VehicleService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /vehicles")
		defer span.End()

		vehicles, err := svc.List(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, vehicles)
	}
}

func listVehicleFinancialsHandler(svc *service.VehicleService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /vehicles/financials")
		defer span.End()

		rows, err := svc.ListFinancials(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func getVehicleHandler(svc *service.VehicleService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /vehicles/{vehicleId}")
		defer span.End()

		vehicle, err := svc.Get(ctx, chi.URLParam(r, "vehicleId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, vehicle)
	}
}

func createVehicleHandler(svc *service.VehicleService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /vehicles")
		defer span.End()

		var in domain.VehicleInput
		if err := decodeJSON(r, &in); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		vehicle, err := svc.Create(ctx, &in)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, vehicle)
	}
}

func updateVehicleHandler(svc *service.VehicleService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /vehicles/{vehicleId}")
		defer span.End()

		var in domain.VehicleInput
		if err := decodeJSON(r, &in); err != nil {
			handleServiceError(w, err, logger)
			return
		}

		vehicle, err := svc.Update(ctx, chi.URLParam(r, "vehicleId"), &in)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, vehicle)
	}
}

func deleteVehicleHandler(svc *service.VehicleService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /vehicles/{vehicleId}")
		defer span.End()

		if err := svc.Delete(ctx, chi.URLParam(r, "vehicleId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// Vehicle Expense Handlers
// ============================================================

func listVehicleExpensesHandler(svc *service.VehicleService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /vehicles/{vehicleId}/expenses")
		defer span.End()

		expenses, err := svc.ListExpenses(ctx, chi.URLParam(r, "vehicleId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, expenses)
	}
}

func addVehicleExpenseHandler(svc *service.VehicleService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /vehicles/{vehicleId}/expenses")
		defer span.End()

		var in domain.VehicleExpenseInput
		if err := decodeJSON(r, &in); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		in.VehicleID = chi.URLParam(r, "vehicleId")

		expense, err := svc.AddExpense(ctx, &in)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, expense)
	}
}

func updateVehicleExpenseHandler(svc *service.VehicleService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /vehicles/{vehicleId}/expenses/{expenseId}")
		defer span.End()

		var in domain.VehicleExpenseInput
		if err := decodeJSON(r, &in); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		in.VehicleID = chi.URLParam(r, "vehicleId")

		expense, err := svc.UpdateExpense(ctx, chi.URLParam(r, "expenseId"), &in)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, expense)
	}
}

func deleteVehicleExpenseHandler(svc *service.VehicleService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /vehicles/{vehicleId}/expenses/{expenseId}")
		defer span.End()

		if err := svc.DeleteExpense(ctx, chi.URLParam(r, "expenseId")); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ============================================================
// Profit Distribution Handlers
// ============================================================

func listDistributionsHandler(svc *service.VehicleService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /vehicles/{vehicleId}/distributions")
		defer span.End()

		distributions, err := svc.ListDistributions(ctx, chi.URLParam(r, "vehicleId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, distributions)
	}
}

func autoDistributeHandler(svc *service.VehicleService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /vehicles/{vehicleId}/distributions/auto")
		defer span.End()

		distributions, err := svc.AutoDistribute(ctx, chi.URLParam(r, "vehicleId"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, distributions)
	}
}
