package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/challengerucars/backoffice-go/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// LedgerStore implementation — transactions table via PostgREST
// ============================================================

func (c *Client) ListTransactions(ctx context.Context, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListTransactions")
	defer span.End()

	path := "transactions?order=date.desc,created_at.desc"
	if filter.StartDate != "" {
		path += fmt.Sprintf("&date=gte.%s", filter.StartDate)
	}
	if filter.EndDate != "" {
		path += fmt.Sprintf("&date=lte.%s", filter.EndDate)
	}
	if filter.Type != "" {
		path += fmt.Sprintf("&type=eq.%s", filter.Type)
	}
	if filter.Category != "" {
		path += fmt.Sprintf("&category=eq.%s", url.QueryEscape(filter.Category))
	}

	body, err := c.doResilientGet(ctx, path)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "supabase/transactions", Err: err}
	}
	if body == nil {
		return []domain.Transaction{}, nil
	}

	var rows []domain.Transaction
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return rows, nil
}

func (c *Client) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetTransaction")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", id))

	path := fmt.Sprintf("transactions?id=eq.%s&limit=1", id)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	if body == nil {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
	}

	var rows []domain.Transaction
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode transaction: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
	}
	return &rows[0], nil
}

func (c *Client) CreateTransaction(ctx context.Context, in *domain.TransactionInput) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateTransaction")
	defer span.End()

	row := map[string]any{
		"id":          uuid.New().String(),
		"amount":      in.Amount,
		"type":        in.Type,
		"category":    in.Category,
		"description": in.Description,
		"date":        in.Date,
	}
	if in.ReferenceID != "" {
		row["reference_id"] = in.ReferenceID
	}

	body, err := c.doPost(ctx, "transactions", row)
	if err != nil {
		return nil, err
	}

	var results []domain.Transaction
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode transaction insert: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result returned from transactions insert")
	}
	return &results[0], nil
}

func (c *Client) UpdateTransaction(ctx context.Context, id string, updates map[string]any) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateTransaction")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", id))

	path := fmt.Sprintf("transactions?id=eq.%s", id)
	body, err := c.doPatchReturning(ctx, path, updates)
	if err != nil {
		return nil, err
	}

	var results []domain.Transaction
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode transaction update: %w", err)
	}
	if len(results) == 0 {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: id}
	}
	return &results[0], nil
}

func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteTransaction")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", id))

	return c.doDelete(ctx, fmt.Sprintf("transactions?id=eq.%s", id))
}

func (c *Client) ListTransactionsByReference(ctx context.Context, referenceID string) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListTransactionsByReference")
	defer span.End()

	path := fmt.Sprintf("transactions?reference_id=eq.%s", referenceID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []domain.Transaction{}, nil
	}

	var rows []domain.Transaction
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode transactions by reference: %w", err)
	}
	return rows, nil
}

func (c *Client) DeleteTransactionsByReference(ctx context.Context, referenceID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteTransactionsByReference")
	defer span.End()

	return c.doDelete(ctx, fmt.Sprintf("transactions?reference_id=eq.%s", referenceID))
}
