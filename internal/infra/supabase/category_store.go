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
// CategoryStore implementation — categories table via PostgREST
// ============================================================

func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListCategories")
	defer span.End()

	body, err := c.doRequest(ctx, http.MethodGet, "categories?order=name.asc")
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []domain.Category{}, nil
	}

	var rows []domain.Category
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return rows, nil
}

func (c *Client) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category.name", name))

	row := map[string]any{
		"id":   uuid.New().String(),
		"name": name,
	}

	body, err := c.doPost(ctx, "categories", row)
	if err != nil {
		return nil, err
	}

	var results []domain.Category
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode category insert: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result returned from categories insert")
	}
	return &results[0], nil
}

func (c *Client) UpdateCategory(ctx context.Context, id, name string) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category.id", id))

	path := fmt.Sprintf("categories?id=eq.%s", id)
	body, err := c.doPatchReturning(ctx, path, map[string]any{"name": name})
	if err != nil {
		return nil, err
	}

	var results []domain.Category
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode category update: %w", err)
	}
	if len(results) == 0 {
		return nil, &domain.ErrNotFound{Resource: "category", ID: id}
	}
	return &results[0], nil
}

func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteCategory")
	defer span.End()
	span.SetAttributes(attribute.String("category.id", id))

	return c.doDelete(ctx, fmt.Sprintf("categories?id=eq.%s", id))
}
