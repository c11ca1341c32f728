package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/challengerucars/backoffice-go/internal/domain"

	"github.com/google/uuid"
)

// ============================================================
// AuditSink implementation — audit_logs table via PostgREST
// ============================================================

func (c *Client) Append(ctx context.Context, entry *domain.AuditEntry) error {
	ctx, span := tracer.Start(ctx, "Supabase.AppendAudit")
	defer span.End()

	row := map[string]any{
		"id":          uuid.New().String(),
		"action_type": entry.ActionType,
		"entity_type": entry.EntityType,
		"entity_id":   entry.EntityID,
		"description": entry.Description,
	}
	if entry.UserID != "" {
		row["user_id"] = entry.UserID
	}
	if entry.OldData != nil {
		row["old_data"] = json.RawMessage(entry.OldData)
	}
	if entry.NewData != nil {
		row["new_data"] = json.RawMessage(entry.NewData)
	}
	if entry.Metadata != nil {
		row["metadata"] = json.RawMessage(entry.Metadata)
	}
	if entry.UserAgent != "" {
		row["user_agent"] = entry.UserAgent
	}

	_, err := c.doPost(ctx, "audit_logs", row)
	return err
}

func (c *Client) ListEntries(ctx context.Context) ([]domain.AuditEntry, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListAuditEntries")
	defer span.End()

	body, err := c.doRequest(ctx, http.MethodGet, "audit_logs?order=created_at.desc&limit=500")
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []domain.AuditEntry{}, nil
	}

	var rows []domain.AuditEntry
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode audit_logs: %w", err)
	}
	return rows, nil
}
