package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/challengerucars/backoffice-go/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// VehicleStore implementation — vehicles, vehicle_expenses and
// profit_distributions tables via PostgREST
// ============================================================

// --- Vehicles ---

func (c *Client) ListVehicles(ctx context.Context) ([]domain.Vehicle, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListVehicles")
	defer span.End()

	body, err := c.doResilientGet(ctx, "vehicles?order=created_at.desc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/vehicles", Err: err}
	}
	if body == nil {
		return []domain.Vehicle{}, nil
	}

	var rows []domain.Vehicle
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}
	return rows, nil
}

func (c *Client) GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetVehicle")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.id", id))

	path := fmt.Sprintf("vehicles?id=eq.%s&limit=1", id)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	if body == nil {
		return nil, &domain.ErrNotFound{Resource: "vehicle", ID: id}
	}

	var rows []domain.Vehicle
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode vehicle: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "vehicle", ID: id}
	}
	return &rows[0], nil
}

func (c *Client) CreateVehicle(ctx context.Context, in *domain.VehicleInput) (*domain.Vehicle, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateVehicle")
	defer span.End()

	row := map[string]any{
		"id":             uuid.New().String(),
		"vin":            in.VIN,
		"make":           in.Make,
		"model":          in.Model,
		"year":           in.Year,
		"color":          in.Color,
		"status":         in.Status,
		"purchase_price": in.PurchasePrice,
		"purchase_date":  in.PurchaseDate,
		"notes":          in.Notes,
	}
	if in.SalePrice != nil {
		row["sale_price"] = *in.SalePrice
	}
	if in.SaleDate != nil {
		row["sale_date"] = *in.SaleDate
	}
	if in.OwnerName != nil {
		row["owner_name"] = *in.OwnerName
	}
	if in.TCNumber != nil {
		row["tc_number"] = *in.TCNumber
	}
	if in.CertificateNumber != nil {
		row["certificate_number"] = *in.CertificateNumber
	}
	if in.RegistrationLocation != nil {
		row["registration_location"] = *in.RegistrationLocation
	}

	body, err := c.doPost(ctx, "vehicles", row)
	if err != nil {
		return nil, err
	}

	var results []domain.Vehicle
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode vehicle insert: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result returned from vehicles insert")
	}
	return &results[0], nil
}

func (c *Client) UpdateVehicle(ctx context.Context, id string, updates map[string]any) (*domain.Vehicle, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateVehicle")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.id", id))

	path := fmt.Sprintf("vehicles?id=eq.%s", id)
	body, err := c.doPatchReturning(ctx, path, updates)
	if err != nil {
		return nil, err
	}

	var results []domain.Vehicle
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode vehicle update: %w", err)
	}
	if len(results) == 0 {
		return nil, &domain.ErrNotFound{Resource: "vehicle", ID: id}
	}
	return &results[0], nil
}

func (c *Client) DeleteVehicle(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteVehicle")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.id", id))

	return c.doDelete(ctx, fmt.Sprintf("vehicles?id=eq.%s", id))
}

// ListVehicleFinancials reads the vehicle_financials view, which joins
// each vehicle with its expense and distribution totals.
func (c *Client) ListVehicleFinancials(ctx context.Context) ([]domain.VehicleFinancials, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListVehicleFinancials")
	defer span.End()

	body, err := c.doResilientGet(ctx, "vehicle_financials?order=created_at.desc")
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/vehicle_financials", Err: err}
	}
	if body == nil {
		return []domain.VehicleFinancials{}, nil
	}

	var rows []domain.VehicleFinancials
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode vehicle_financials: %w", err)
	}
	return rows, nil
}

// --- Vehicle expenses ---

func (c *Client) ListExpenses(ctx context.Context, vehicleID string) ([]domain.VehicleExpense, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListExpenses")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.id", vehicleID))

	path := fmt.Sprintf("vehicle_expenses?vehicle_id=eq.%s&order=date.desc", vehicleID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []domain.VehicleExpense{}, nil
	}

	var rows []domain.VehicleExpense
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode vehicle_expenses: %w", err)
	}
	return rows, nil
}

func (c *Client) GetExpense(ctx context.Context, id string) (*domain.VehicleExpense, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetExpense")
	defer span.End()
	span.SetAttributes(attribute.String("expense.id", id))

	path := fmt.Sprintf("vehicle_expenses?id=eq.%s&limit=1", id)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	if body == nil {
		return nil, &domain.ErrNotFound{Resource: "vehicle_expense", ID: id}
	}

	var rows []domain.VehicleExpense
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode vehicle_expense: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "vehicle_expense", ID: id}
	}
	return &rows[0], nil
}

func (c *Client) CreateExpense(ctx context.Context, in *domain.VehicleExpenseInput) (*domain.VehicleExpense, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateExpense")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.id", in.VehicleID))

	row := map[string]any{
		"id":         uuid.New().String(),
		"vehicle_id": in.VehicleID,
		"date":       in.Date,
		"type":       in.Type,
		"amount":     in.Amount,
	}
	if in.Recipient != nil {
		row["recipient"] = *in.Recipient
	}
	if in.Notes != nil {
		row["notes"] = *in.Notes
	}

	body, err := c.doPost(ctx, "vehicle_expenses", row)
	if err != nil {
		return nil, err
	}

	var results []domain.VehicleExpense
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode vehicle_expense insert: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result returned from vehicle_expenses insert")
	}
	return &results[0], nil
}

func (c *Client) UpdateExpense(ctx context.Context, id string, updates map[string]any) (*domain.VehicleExpense, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateExpense")
	defer span.End()
	span.SetAttributes(attribute.String("expense.id", id))

	path := fmt.Sprintf("vehicle_expenses?id=eq.%s", id)
	body, err := c.doPatchReturning(ctx, path, updates)
	if err != nil {
		return nil, err
	}

	var results []domain.VehicleExpense
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode vehicle_expense update: %w", err)
	}
	if len(results) == 0 {
		return nil, &domain.ErrNotFound{Resource: "vehicle_expense", ID: id}
	}
	return &results[0], nil
}

func (c *Client) DeleteExpense(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteExpense")
	defer span.End()
	span.SetAttributes(attribute.String("expense.id", id))

	return c.doDelete(ctx, fmt.Sprintf("vehicle_expenses?id=eq.%s", id))
}

// --- Profit distributions ---

func (c *Client) ListDistributions(ctx context.Context, vehicleID string) ([]domain.ProfitDistribution, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListDistributions")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.id", vehicleID))

	path := fmt.Sprintf("profit_distributions?vehicle_id=eq.%s&order=created_at.asc", vehicleID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []domain.ProfitDistribution{}, nil
	}

	var rows []domain.ProfitDistribution
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode profit_distributions: %w", err)
	}
	return rows, nil
}

func (c *Client) CreateDistribution(ctx context.Context, dist *domain.ProfitDistribution) (*domain.ProfitDistribution, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateDistribution")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.id", dist.VehicleID))

	row := map[string]any{
		"id":         uuid.New().String(),
		"vehicle_id": dist.VehicleID,
		"recipient":  dist.Recipient,
		"amount":     dist.Amount,
		"percentage": dist.Percentage,
		"date":       dist.Date,
	}
	if dist.Notes != nil {
		row["notes"] = *dist.Notes
	}

	body, err := c.doPost(ctx, "profit_distributions", row)
	if err != nil {
		return nil, err
	}

	var results []domain.ProfitDistribution
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode profit_distribution insert: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result returned from profit_distributions insert")
	}
	return &results[0], nil
}

func (c *Client) DeleteDistributionsByVehicle(ctx context.Context, vehicleID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteDistributionsByVehicle")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.id", vehicleID))

	return c.doDelete(ctx, fmt.Sprintf("profit_distributions?vehicle_id=eq.%s", vehicleID))
}
