package domain

import (
	"encoding/json"
	"time"
)

// Audit action and entity types.
const (
	AuditCreate         = "CREATE"
	AuditUpdate         = "UPDATE"
	AuditDelete         = "DELETE"
	AuditAutoDistribute = "AUTO_DISTRIBUTE"
	AuditRestore        = "RESTORE"

	EntityTransaction        = "TRANSACTION"
	EntityVehicle            = "VEHICLE"
	EntityVehicleExpense     = "VEHICLE_EXPENSE"
	EntityProfitDistribution = "PROFIT_DISTRIBUTION"
	EntityCategory           = "CATEGORY"
	EntitySettings           = "SETTINGS"
	EntityGlobalSettings     = "GLOBAL_SETTINGS"
	EntityBackup             = "BACKUP"
)

// AuditEntry is appended to the audit sink after every mutation.
// Writes are fire-and-forget: a failed append is logged and dropped,
// never allowed to fail the originating operation.
type AuditEntry struct {
	ID          string          `json:"id,omitempty"`
	UserID      string          `json:"user_id,omitempty"`
	ActionType  string          `json:"action_type"`
	EntityType  string          `json:"entity_type"`
	EntityID    string          `json:"entity_id"`
	OldData     json.RawMessage `json:"old_data,omitempty"`
	NewData     json.RawMessage `json:"new_data,omitempty"`
	Description string          `json:"description"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
	UserAgent   string          `json:"user_agent,omitempty"`
	CreatedAt   time.Time       `json:"created_at,omitempty"`
}
