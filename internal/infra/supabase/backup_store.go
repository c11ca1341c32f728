package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// BackupStore implementation — whole-table reads and replaces
// ============================================================

// FetchTableRows reads every row of a table as raw JSON. Rows are kept
// opaque so a backup round-trips columns this service does not model.
func (c *Client) FetchTableRows(ctx context.Context, table string) ([]json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "Supabase.FetchTableRows")
	defer span.End()
	span.SetAttributes(attribute.String("table", table))

	body, err := c.doRequest(ctx, http.MethodGet, table+"?order=created_at.asc")
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []json.RawMessage{}, nil
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode %s rows: %w", table, err)
	}
	return rows, nil
}

// ReplaceTableRows deletes all rows of a table and inserts the given
// ones. The two steps are separate PostgREST calls, so a failed insert
// leaves the table empty until the restore is re-run.
func (c *Client) ReplaceTableRows(ctx context.Context, table string, rows []json.RawMessage) error {
	ctx, span := tracer.Start(ctx, "Supabase.ReplaceTableRows")
	defer span.End()
	span.SetAttributes(
		attribute.String("table", table),
		attribute.Int("rows", len(rows)),
	)

	// not=is.null matches every row with a non-null id, i.e. all of them
	if err := c.doDelete(ctx, table+"?id=not.is.null"); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	if len(rows) == 0 {
		return nil
	}

	if _, err := c.doPost(ctx, table, rows); err != nil {
		return fmt.Errorf("insert %s rows: %w", table, err)
	}
	return nil
}
