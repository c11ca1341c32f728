package service

import (
	"context"
	"fmt"
	"time"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/finance"
	"github.com/challengerucars/backoffice-go/internal/infra/observability"
	"github.com/challengerucars/backoffice-go/internal/port"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var vehicleTracer = otel.Tracer("service/vehicles")

// VehicleService handles inventory, vehicle expenses and profit
// distribution. The cross-table side effects (mirrored Ahmed
// transactions, the SOLD to AVAILABLE cascade, auto-distribute) are
// explicit ordered steps here, never store triggers.
type VehicleService struct {
	store    port.VehicleStore
	ledger   port.LedgerStore
	audit    *AuditRecorder
	metrics  *observability.Metrics
	validate *validator.Validate
	logger   *zap.Logger
}

// NewVehicleService creates a vehicle service.
func NewVehicleService(store port.VehicleStore, ledger port.LedgerStore, audit *AuditRecorder, metrics *observability.Metrics, validate *validator.Validate, logger *zap.Logger) *VehicleService {
	return &VehicleService{
		store:    store,
		ledger:   ledger,
		audit:    audit,
		metrics:  metrics,
		validate: validate,
		logger:   logger,
	}
}

// ============================================================
// Vehicles
// ============================================================

func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	ctx, span := vehicleTracer.Start(ctx, "VehicleService.List")
	defer span.End()

	return s.store.ListVehicles(ctx)
}

func (s *VehicleService) Get(ctx context.Context, id string) (*domain.Vehicle, error) {
	ctx, span := vehicleTracer.Start(ctx, "VehicleService.Get")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.id", id))

	return s.store.GetVehicle(ctx, id)
}

// ListFinancials returns every vehicle with its expense and
// distribution totals from the pre-joined store view.
func (s *VehicleService) ListFinancials(ctx context.Context) ([]domain.VehicleFinancials, error) {
	ctx, span := vehicleTracer.Start(ctx, "VehicleService.ListFinancials")
	defer span.End()

	return s.store.ListVehicleFinancials(ctx)
}

func (s *VehicleService) Create(ctx context.Context, in *domain.VehicleInput) (*domain.Vehicle, error) {
	ctx, span := vehicleTracer.Start(ctx, "VehicleService.Create")
	defer span.End()

	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if err := checkPurchasePrice(in); err != nil {
		return nil, err
	}
	if err := checkSaleFields(in); err != nil {
		return nil, err
	}

	v, err := s.store.CreateVehicle(ctx, in)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditCreate,
		EntityType:  domain.EntityVehicle,
		EntityID:    v.ID,
		NewData:     mustJSON(v),
		Description: fmt.Sprintf("Added vehicle %s (%s)", v.Label(), v.VIN),
	})

	return v, nil
}

// Update applies a vehicle edit. Flipping status from SOLD back to
// AVAILABLE runs the cascade: sale fields are nulled and every profit
// distribution row for the vehicle is deleted, in that order.
func (s *VehicleService) Update(ctx context.Context, id string, in *domain.VehicleInput) (*domain.Vehicle, error) {
	ctx, span := vehicleTracer.Start(ctx, "VehicleService.Update")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.id", id))

	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if err := checkPurchasePrice(in); err != nil {
		return nil, err
	}

	old, err := s.store.GetVehicle(ctx, id)
	if err != nil {
		return nil, err
	}

	unselling := old.Status == domain.VehicleSold && in.Status == domain.VehicleAvailable
	if !unselling {
		if err := checkSaleFields(in); err != nil {
			return nil, err
		}
	}

	updates := map[string]any{
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
	if unselling {
		updates["sale_price"] = nil
		updates["sale_date"] = nil
	} else {
		if in.SalePrice != nil {
			updates["sale_price"] = *in.SalePrice
		}
		if in.SaleDate != nil {
			updates["sale_date"] = *in.SaleDate
		}
	}
	if in.OwnerName != nil {
		updates["owner_name"] = *in.OwnerName
	}
	if in.TCNumber != nil {
		updates["tc_number"] = *in.TCNumber
	}
	if in.CertificateNumber != nil {
		updates["certificate_number"] = *in.CertificateNumber
	}
	if in.RegistrationLocation != nil {
		updates["registration_location"] = *in.RegistrationLocation
	}

	v, err := s.store.UpdateVehicle(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	if unselling {
		if err := s.store.DeleteDistributionsByVehicle(ctx, id); err != nil {
			return nil, fmt.Errorf("clear distributions for %s: %w", id, err)
		}
		s.logger.Info("vehicle unsold, distributions cleared",
			zap.String("vehicle_id", id),
		)
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditUpdate,
		EntityType:  domain.EntityVehicle,
		EntityID:    id,
		OldData:     mustJSON(old),
		NewData:     mustJSON(v),
		Description: fmt.Sprintf("Updated vehicle %s (%s)", v.Label(), v.VIN),
	})

	return v, nil
}

func (s *VehicleService) Delete(ctx context.Context, id string) error {
	ctx, span := vehicleTracer.Start(ctx, "VehicleService.Delete")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.id", id))

	old, err := s.store.GetVehicle(ctx, id)
	if err != nil {
		return err
	}

	if err := s.store.DeleteVehicle(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditDelete,
		EntityType:  domain.EntityVehicle,
		EntityID:    id,
		OldData:     mustJSON(old),
		Description: fmt.Sprintf("Deleted vehicle %s (%s)", old.Label(), old.VIN),
	})

	return nil
}

// checkPurchasePrice enforces a positive acquisition cost. Decimal
// fields cannot carry a gt=0 validator tag, so the check is explicit.
func checkPurchasePrice(in *domain.VehicleInput) error {
	if !in.PurchasePrice.IsPositive() {
		return &domain.ErrValidation{Field: "purchase_price", Message: "must be positive"}
	}
	return nil
}

// checkSaleFields enforces that sale_price and sale_date are present
// iff the vehicle is SOLD.
func checkSaleFields(in *domain.VehicleInput) error {
	if in.Status == domain.VehicleSold {
		if in.SalePrice == nil {
			return &domain.ErrValidation{Field: "sale_price", Message: "required when status is SOLD"}
		}
		if !in.SalePrice.IsPositive() {
			return &domain.ErrValidation{Field: "sale_price", Message: "must be positive"}
		}
		if in.SaleDate == nil || *in.SaleDate == "" {
			return &domain.ErrValidation{Field: "sale_date", Message: "required when status is SOLD"}
		}
		return nil
	}
	if in.SalePrice != nil || in.SaleDate != nil {
		return &domain.ErrValidation{Field: "sale_price", Message: "must be empty unless status is SOLD"}
	}
	return nil
}

// ============================================================
// Vehicle expenses and the Ahmed mirror saga
// ============================================================

func (s *VehicleService) ListExpenses(ctx context.Context, vehicleID string) ([]domain.VehicleExpense, error) {
	ctx, span := vehicleTracer.Start(ctx, "VehicleService.ListExpenses")
	defer span.End()

	return s.store.ListExpenses(ctx, vehicleID)
}

// AddExpense records a vehicle expense. Expenses paid by Ahmed are
// mirrored into the ledger as an expense transaction carrying
// reference_id = expense.id, so his reimbursement shows up in the
// overall money flow.
func (s *VehicleService) AddExpense(ctx context.Context, in *domain.VehicleExpenseInput) (*domain.VehicleExpense, error) {
	ctx, span := vehicleTracer.Start(ctx, "VehicleService.AddExpense")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.id", in.VehicleID))

	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if !in.Amount.IsPositive() {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}

	vehicle, err := s.store.GetVehicle(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}

	exp, err := s.store.CreateExpense(ctx, in)
	if err != nil {
		return nil, err
	}

	if isAhmed(exp.Recipient) {
		if err := s.createMirrorTransaction(ctx, vehicle, exp); err != nil {
			return nil, err
		}
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditCreate,
		EntityType:  domain.EntityVehicleExpense,
		EntityID:    exp.ID,
		NewData:     mustJSON(exp),
		Description: fmt.Sprintf("Added %s expense for %s", exp.Type, vehicle.Label()),
	})

	return exp, nil
}

// UpdateExpense edits a vehicle expense and reconciles the mirrored
// ledger entry: create it when the recipient becomes Ahmed, refresh it
// while he stays the recipient, delete it when he stops being one.
func (s *VehicleService) UpdateExpense(ctx context.Context, id string, in *domain.VehicleExpenseInput) (*domain.VehicleExpense, error) {
	ctx, span := vehicleTracer.Start(ctx, "VehicleService.UpdateExpense")
	defer span.End()
	span.SetAttributes(attribute.String("expense.id", id))

	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}
	if !in.Amount.IsPositive() {
		return nil, &domain.ErrValidation{Field: "amount", Message: "must be positive"}
	}

	old, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, err
	}
	vehicle, err := s.store.GetVehicle(ctx, old.VehicleID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"date":   in.Date,
		"type":   in.Type,
		"amount": in.Amount,
	}
	if in.Recipient != nil {
		updates["recipient"] = *in.Recipient
	} else {
		updates["recipient"] = nil
	}
	if in.Notes != nil {
		updates["notes"] = *in.Notes
	} else {
		updates["notes"] = nil
	}

	exp, err := s.store.UpdateExpense(ctx, id, updates)
	if err != nil {
		return nil, err
	}

	if err := s.syncMirrorTransaction(ctx, vehicle, exp); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditUpdate,
		EntityType:  domain.EntityVehicleExpense,
		EntityID:    id,
		OldData:     mustJSON(old),
		NewData:     mustJSON(exp),
		Description: fmt.Sprintf("Updated %s expense for %s", exp.Type, vehicle.Label()),
	})

	return exp, nil
}

// DeleteExpense removes a vehicle expense and, if one exists, its
// mirrored ledger entry. The mirror goes first so a crash between the
// two steps cannot leave a dangling back-reference.
func (s *VehicleService) DeleteExpense(ctx context.Context, id string) error {
	ctx, span := vehicleTracer.Start(ctx, "VehicleService.DeleteExpense")
	defer span.End()
	span.SetAttributes(attribute.String("expense.id", id))

	old, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return err
	}

	if err := s.ledger.DeleteTransactionsByReference(ctx, id); err != nil {
		return err
	}
	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return err
	}

	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditDelete,
		EntityType:  domain.EntityVehicleExpense,
		EntityID:    id,
		OldData:     mustJSON(old),
		Description: fmt.Sprintf("Deleted %s expense", old.Type),
	})

	return nil
}

func (s *VehicleService) createMirrorTransaction(ctx context.Context, vehicle *domain.Vehicle, exp *domain.VehicleExpense) error {
	_, err := s.ledger.CreateTransaction(ctx, &domain.TransactionInput{
		Amount:      exp.Amount,
		Type:        domain.TransactionExpense,
		Category:    domain.CategoryVehicleExpense,
		Description: fmt.Sprintf("%s - %s", exp.Type, vehicle.Label()),
		Date:        exp.Date,
		ReferenceID: exp.ID,
	})
	if err != nil {
		return fmt.Errorf("mirror transaction for expense %s: %w", exp.ID, err)
	}
	return nil
}

// syncMirrorTransaction reconciles the at-most-one linked ledger entry
// with the expense's current recipient. Duplicate mirrors (possible
// after a crashed earlier run) are collapsed by deleting all linked
// rows before re-creating the single current one.
func (s *VehicleService) syncMirrorTransaction(ctx context.Context, vehicle *domain.Vehicle, exp *domain.VehicleExpense) error {
	linked, err := s.ledger.ListTransactionsByReference(ctx, exp.ID)
	if err != nil {
		return err
	}

	if !isAhmed(exp.Recipient) {
		if len(linked) == 0 {
			return nil
		}
		return s.ledger.DeleteTransactionsByReference(ctx, exp.ID)
	}

	if len(linked) == 1 {
		_, err := s.ledger.UpdateTransaction(ctx, linked[0].ID, map[string]any{
			"amount":      exp.Amount,
			"date":        exp.Date,
			"description": fmt.Sprintf("%s - %s", exp.Type, vehicle.Label()),
		})
		return err
	}

	if len(linked) > 1 {
		if err := s.ledger.DeleteTransactionsByReference(ctx, exp.ID); err != nil {
			return err
		}
	}
	return s.createMirrorTransaction(ctx, vehicle, exp)
}

func isAhmed(recipient *string) bool {
	return recipient != nil && *recipient == finance.RecipientAhmed
}

// ============================================================
// Auto-distribute
// ============================================================

func (s *VehicleService) ListDistributions(ctx context.Context, vehicleID string) ([]domain.ProfitDistribution, error) {
	ctx, span := vehicleTracer.Start(ctx, "VehicleService.ListDistributions")
	defer span.End()

	return s.store.ListDistributions(ctx, vehicleID)
}

// AutoDistribute recomputes and replaces a sold vehicle's profit
// distribution rows and posts the three ledger transactions. Steps,
// in order:
//
//  1. reject unless the vehicle is SOLD (before any write)
//  2. delete all existing distribution rows for the vehicle
//  3. insert the three recomputed rows
//  4. delete the ledger transactions from any previous run
//  5. post Vehicle Sale (purchase price), Profit-NADA (payable) and
//     Profit-AHMED (profit-only, purchase price excluded)
//
// The sequence is not atomic. A crash mid-run can leave the vehicle
// with zero distributions until the next run; re-running with
// unchanged inputs produces the identical final state.
func (s *VehicleService) AutoDistribute(ctx context.Context, vehicleID string) ([]domain.ProfitDistribution, error) {
	ctx, span := vehicleTracer.Start(ctx, "VehicleService.AutoDistribute")
	defer span.End()
	span.SetAttributes(attribute.String("vehicle.id", vehicleID))

	vehicle, err := s.store.GetVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.Status != domain.VehicleSold {
		return nil, &domain.ErrUsage{
			Operation: "auto-distribute",
			Message:   fmt.Sprintf("vehicle %s is not sold", vehicle.Label()),
		}
	}

	expenses, err := s.store.ListExpenses(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	shares, err := finance.SplitProfit(*vehicle, expenses)
	if err != nil {
		return nil, err
	}

	date := time.Now().Format("2006-01-02")
	if vehicle.SaleDate != nil {
		date = *vehicle.SaleDate
	}

	if err := s.store.DeleteDistributionsByVehicle(ctx, vehicleID); err != nil {
		return nil, err
	}

	created := make([]domain.ProfitDistribution, 0, len(shares))
	for _, share := range shares {
		note := share.Note
		dist, err := s.store.CreateDistribution(ctx, &domain.ProfitDistribution{
			VehicleID:  vehicleID,
			Recipient:  share.Recipient,
			Amount:     share.Payable,
			Percentage: share.Percentage,
			Date:       date,
			Notes:      &note,
		})
		if err != nil {
			return nil, err
		}
		created = append(created, *dist)
	}

	if err := s.postDistributionTransactions(ctx, vehicle, shares, date); err != nil {
		return nil, err
	}

	s.metrics.IncrDistributionRun()
	s.audit.Record(ctx, &domain.AuditEntry{
		ActionType:  domain.AuditAutoDistribute,
		EntityType:  domain.EntityProfitDistribution,
		EntityID:    vehicleID,
		NewData:     mustJSON(created),
		Description: fmt.Sprintf("Auto-distributed profit for %s", vehicle.Label()),
	})

	return created, nil
}

// postDistributionTransactions replaces the three ledger entries from
// any earlier run, then posts the fresh set. The entries carry
// reference_id = vehicle.id so a re-run can find and remove them.
func (s *VehicleService) postDistributionTransactions(ctx context.Context, vehicle *domain.Vehicle, shares []finance.Share, date string) error {
	if err := s.ledger.DeleteTransactionsByReference(ctx, vehicle.ID); err != nil {
		return err
	}

	entries := []domain.TransactionInput{
		{
			Amount:      vehicle.PurchasePrice,
			Type:        domain.TransactionIncome,
			Category:    domain.CategoryVehicleSale,
			Description: fmt.Sprintf("Sale of %s", vehicle.Label()),
			Date:        date,
			ReferenceID: vehicle.ID,
		},
	}
	for _, share := range shares {
		switch share.Recipient {
		case finance.RecipientNada:
			entries = append(entries, domain.TransactionInput{
				Amount:      share.Payable,
				Type:        domain.TransactionIncome,
				Category:    domain.CategoryProfitNada,
				Description: fmt.Sprintf("Nada's profit share - %s", vehicle.Label()),
				Date:        date,
				ReferenceID: vehicle.ID,
			})
		case finance.RecipientAhmed:
			// profit-only: the purchase price repayment is already
			// counted by the Vehicle Sale entry
			entries = append(entries, domain.TransactionInput{
				Amount:      share.ProfitOnly,
				Type:        domain.TransactionIncome,
				Category:    domain.CategoryProfitAhmed,
				Description: fmt.Sprintf("Ahmed's profit share - %s", vehicle.Label()),
				Date:        date,
				ReferenceID: vehicle.ID,
			})
		}
	}

	for i := range entries {
		if _, err := s.ledger.CreateTransaction(ctx, &entries[i]); err != nil {
			return fmt.Errorf("post %s transaction: %w", entries[i].Category, err)
		}
	}
	return nil
}
