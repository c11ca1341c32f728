// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from the hosted backend that owns all rows.
package port

import (
	"context"
	"encoding/json"
	"time"

	"github.com/challengerucars/backoffice-go/internal/domain"
)

// LedgerStore handles the transactions collection.
type LedgerStore interface {
	ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, id string) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, in *domain.TransactionInput) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, updates map[string]any) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error

	// Reference linkage: transactions mirrored from vehicle expenses
	// carry reference_id = expense.id. At most one per expense.
	ListTransactionsByReference(ctx context.Context, referenceID string) ([]domain.Transaction, error)
	DeleteTransactionsByReference(ctx context.Context, referenceID string) error
}

// VehicleStore handles vehicles, their expenses and profit distributions.
type VehicleStore interface {
	ListVehicles(ctx context.Context) ([]domain.Vehicle, error)
	GetVehicle(ctx context.Context, id string) (*domain.Vehicle, error)
	CreateVehicle(ctx context.Context, in *domain.VehicleInput) (*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, updates map[string]any) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id string) error

	// vehicle_financials is the store's pre-joined view of a vehicle
	// with its aggregate expense/profit totals.
	ListVehicleFinancials(ctx context.Context) ([]domain.VehicleFinancials, error)

	ListExpenses(ctx context.Context, vehicleID string) ([]domain.VehicleExpense, error)
	GetExpense(ctx context.Context, id string) (*domain.VehicleExpense, error)
	CreateExpense(ctx context.Context, in *domain.VehicleExpenseInput) (*domain.VehicleExpense, error)
	UpdateExpense(ctx context.Context, id string, updates map[string]any) (*domain.VehicleExpense, error)
	DeleteExpense(ctx context.Context, id string) error

	ListDistributions(ctx context.Context, vehicleID string) ([]domain.ProfitDistribution, error)
	CreateDistribution(ctx context.Context, dist *domain.ProfitDistribution) (*domain.ProfitDistribution, error)
	DeleteDistributionsByVehicle(ctx context.Context, vehicleID string) error
}

// SettingsStore handles the two settings singletons.
type SettingsStore interface {
	GetFinancialSettings(ctx context.Context) (*domain.FinancialSettings, error)
	CreateFinancialSettings(ctx context.Context, settings *domain.FinancialSettings) (*domain.FinancialSettings, error)
	UpdateFinancialSettings(ctx context.Context, updates map[string]any) (*domain.FinancialSettings, error)

	GetGlobalSettings(ctx context.Context) (*domain.GlobalSettings, error)
	UpdateGlobalSettings(ctx context.Context, updates map[string]any) (*domain.GlobalSettings, error)
}

// CategoryStore handles the categories collection.
type CategoryStore interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// AuditSink appends audit entries. Append errors are the caller's to
// swallow: audit failures never propagate to the primary operation.
type AuditSink interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	ListEntries(ctx context.Context) ([]domain.AuditEntry, error)
}

// AuthStore handles users, credentials and refresh tokens.
type AuthStore interface {
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, req *domain.RegisterRequest, passwordHash string) (*domain.User, error)
	UpdateUserProfile(ctx context.Context, id string, updates map[string]any) (*domain.User, error)

	GetCredentials(ctx context.Context, userID string) (*domain.AuthCredential, error)
	UpdateCredentials(ctx context.Context, userID string, passwordHash string) error

	StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*domain.AuthRefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
}

// BlobStore uploads user avatars to the storage bucket.
type BlobStore interface {
	UploadAvatar(ctx context.Context, userID, filename, contentType string, data []byte) (string, error)
}

// BackupStore reads and replaces whole collections for backup/restore.
type BackupStore interface {
	FetchTableRows(ctx context.Context, table string) ([]json.RawMessage, error)
	ReplaceTableRows(ctx context.Context, table string, rows []json.RawMessage) error
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
