package domain

import "encoding/json"

// BackupEnvelope is the backup/restore JSON format. Restore validates
// that all seven table arrays are present before applying anything.
type BackupEnvelope struct {
	BackupID  string       `json:"backup_id"`
	CreatedAt string       `json:"created_at"`
	Type      string       `json:"type"`
	Tables    BackupTables `json:"tables"`
}

// BackupTables holds the raw rows of each backed-up collection.
// Rows stay as raw JSON so a restore round-trips columns this service
// does not model.
type BackupTables struct {
	Vehicles            []json.RawMessage `json:"vehicles"`
	VehicleExpenses     []json.RawMessage `json:"vehicle_expenses"`
	ProfitDistributions []json.RawMessage `json:"profit_distributions"`
	Transactions        []json.RawMessage `json:"transactions"`
	Categories          []json.RawMessage `json:"categories"`
	FinancialSettings   []json.RawMessage `json:"financial_settings"`
	GlobalSettings      []json.RawMessage `json:"global_settings"`
}

// Validate checks the envelope shape. A nil slice means the field was
// absent from the JSON, which fails validation; an empty array passes.
func (b *BackupEnvelope) Validate() error {
	if b.BackupID == "" {
		return &ErrInvalidBackup{Reason: "missing backup_id"}
	}
	if b.CreatedAt == "" {
		return &ErrInvalidBackup{Reason: "missing created_at"}
	}
	if b.Type == "" {
		return &ErrInvalidBackup{Reason: "missing type"}
	}
	for _, f := range []struct {
		name string
		rows []json.RawMessage
	}{
		{"vehicles", b.Tables.Vehicles},
		{"vehicle_expenses", b.Tables.VehicleExpenses},
		{"profit_distributions", b.Tables.ProfitDistributions},
		{"transactions", b.Tables.Transactions},
		{"categories", b.Tables.Categories},
		{"financial_settings", b.Tables.FinancialSettings},
		{"global_settings", b.Tables.GlobalSettings},
	} {
		if f.rows == nil {
			return &ErrInvalidBackup{Reason: "missing table: " + f.name}
		}
	}
	return nil
}
