package supabase

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/challengerucars/backoffice-go/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// AuthStore implementation — profiles, auth_credentials and
// auth_refresh_tokens tables via PostgREST
// ============================================================

func (c *Client) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetUserByID")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id))

	path := fmt.Sprintf("profiles?id=eq.%s&limit=1", id)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}

	if body == nil {
		return nil, &domain.ErrNotFound{Resource: "user", ID: id}
	}

	var rows []domain.User
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "user", ID: id}
	}
	return &rows[0], nil
}

func (c *Client) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetUserByEmail")
	defer span.End()

	path := fmt.Sprintf("profiles?email=eq.%s&limit=1", url.QueryEscape(email))
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return nil, &domain.ErrNotFound{Resource: "user", ID: email}
	}

	var rows []domain.User
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "user", ID: email}
	}
	return &rows[0], nil
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListUsers")
	defer span.End()

	body, err := c.doRequest(ctx, http.MethodGet, "profiles?order=created_at.asc")
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []domain.User{}, nil
	}

	var rows []domain.User
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode profiles: %w", err)
	}
	return rows, nil
}

// CreateUser inserts the profile row then its credentials. There is no
// transaction across PostgREST calls, so a failed credentials insert
// leaves an orphan profile that a retried sign-up will reuse.
func (c *Client) CreateUser(ctx context.Context, req *domain.RegisterRequest, passwordHash string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateUser")
	defer span.End()

	userID := uuid.New().String()

	profileRow := map[string]any{
		"id":         userID,
		"email":      req.Email,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
	}
	body, err := c.doPost(ctx, "profiles", profileRow)
	if err != nil {
		return nil, fmt.Errorf("create profile: %w", err)
	}

	credRow := map[string]any{
		"user_id":       userID,
		"password_hash": passwordHash,
	}
	if _, err := c.doPost(ctx, "auth_credentials", credRow); err != nil {
		return nil, fmt.Errorf("create auth credentials: %w", err)
	}

	var results []domain.User
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode profile insert: %w", err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no result returned from profiles insert")
	}
	return &results[0], nil
}

func (c *Client) UpdateUserProfile(ctx context.Context, id string, updates map[string]any) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateUserProfile")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id))

	path := fmt.Sprintf("profiles?id=eq.%s", id)
	body, err := c.doPatchReturning(ctx, path, updates)
	if err != nil {
		return nil, err
	}

	var results []domain.User
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode profile update: %w", err)
	}
	if len(results) == 0 {
		return nil, &domain.ErrNotFound{Resource: "user", ID: id}
	}
	return &results[0], nil
}

func (c *Client) GetCredentials(ctx context.Context, userID string) (*domain.AuthCredential, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetCredentials")
	defer span.End()

	path := fmt.Sprintf("auth_credentials?user_id=eq.%s&limit=1", userID)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return nil, &domain.ErrNotFound{Resource: "credentials", ID: userID}
	}

	var rows []domain.AuthCredential
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode auth_credentials: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "credentials", ID: userID}
	}
	return &rows[0], nil
}

func (c *Client) UpdateCredentials(ctx context.Context, userID string, passwordHash string) error {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateCredentials")
	defer span.End()

	path := fmt.Sprintf("auth_credentials?user_id=eq.%s", userID)
	return c.doPatch(ctx, path, map[string]any{"password_hash": passwordHash})
}

func (c *Client) StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	ctx, span := tracer.Start(ctx, "Supabase.StoreRefreshToken")
	defer span.End()

	row := map[string]any{
		"id":         uuid.New().String(),
		"user_id":    userID,
		"token_hash": tokenHash,
		"expires_at": expiresAt.UTC().Format(time.RFC3339),
		"revoked":    false,
	}
	_, err := c.doPost(ctx, "auth_refresh_tokens", row)
	return err
}

func (c *Client) GetRefreshToken(ctx context.Context, tokenHash string) (*domain.AuthRefreshToken, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetRefreshToken")
	defer span.End()

	path := fmt.Sprintf("auth_refresh_tokens?token_hash=eq.%s&revoked=eq.false&limit=1", tokenHash)
	body, err := c.doRequest(ctx, http.MethodGet, path)
	if err != nil {
		return nil, err
	}
	if body == nil || string(body) == "[]" {
		return nil, &domain.ErrNotFound{Resource: "refresh_token", ID: tokenHash}
	}

	var rows []domain.AuthRefreshToken
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode auth_refresh_tokens: %w", err)
	}
	if len(rows) == 0 {
		return nil, &domain.ErrNotFound{Resource: "refresh_token", ID: tokenHash}
	}
	return &rows[0], nil
}

func (c *Client) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	ctx, span := tracer.Start(ctx, "Supabase.RevokeRefreshToken")
	defer span.End()

	path := fmt.Sprintf("auth_refresh_tokens?token_hash=eq.%s", tokenHash)
	return c.doPatch(ctx, path, map[string]any{"revoked": true})
}

func (c *Client) RevokeAllRefreshTokens(ctx context.Context, userID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.RevokeAllRefreshTokens")
	defer span.End()

	path := fmt.Sprintf("auth_refresh_tokens?user_id=eq.%s&revoked=eq.false", userID)
	return c.doPatch(ctx, path, map[string]any{"revoked": true})
}
