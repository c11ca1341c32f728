package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/service"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type fakeAuthStore struct {
	mu          sync.Mutex
	users       map[string]domain.User
	credentials map[string]domain.AuthCredential
	refresh     map[string]domain.AuthRefreshToken
	nextID      int
}

func newFakeAuthStore() *fakeAuthStore {
	return &fakeAuthStore{
		users:       map[string]domain.User{},
		credentials: map[string]domain.AuthCredential{},
		refresh:     map[string]domain.AuthRefreshToken{},
	}
}

func (f *fakeAuthStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "user", ID: id}
	}
	return &u, nil
}

func (f *fakeAuthStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			copied := u
			return &copied, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "user", ID: email}
}

func (f *fakeAuthStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeAuthStore) CreateUser(ctx context.Context, req *domain.RegisterRequest, passwordHash string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	u := domain.User{
		ID:        fmt.Sprintf("user-%d", f.nextID),
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	f.users[u.ID] = u
	f.credentials[u.ID] = domain.AuthCredential{UserID: u.ID, PasswordHash: passwordHash}
	return &u, nil
}

func (f *fakeAuthStore) UpdateUserProfile(ctx context.Context, id string, updates map[string]any) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "user", ID: id}
	}
	if v, ok := updates["first_name"].(string); ok {
		u.FirstName = v
	}
	if v, ok := updates["last_name"].(string); ok {
		u.LastName = v
	}
	if v, ok := updates["avatar_url"].(string); ok {
		u.AvatarURL = v
	}
	f.users[id] = u
	return &u, nil
}

func (f *fakeAuthStore) GetCredentials(ctx context.Context, userID string) (*domain.AuthCredential, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.credentials[userID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "credentials", ID: userID}
	}
	return &c, nil
}

func (f *fakeAuthStore) UpdateCredentials(ctx context.Context, userID string, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credentials[userID] = domain.AuthCredential{UserID: userID, PasswordHash: passwordHash}
	return nil
}

func (f *fakeAuthStore) StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.refresh[tokenHash] = domain.AuthRefreshToken{
		UserID:    userID,
		TokenHash: tokenHash,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (f *fakeAuthStore) GetRefreshToken(ctx context.Context, tokenHash string) (*domain.AuthRefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.refresh[tokenHash]
	if !ok || t.Revoked {
		return nil, &domain.ErrNotFound{Resource: "refresh_token", ID: tokenHash}
	}
	return &t, nil
}

func (f *fakeAuthStore) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.refresh[tokenHash]; ok {
		t.Revoked = true
		f.refresh[tokenHash] = t
	}
	return nil
}

func (f *fakeAuthStore) RevokeAllRefreshTokens(ctx context.Context, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for hash, t := range f.refresh {
		if t.UserID == userID {
			t.Revoked = true
			f.refresh[hash] = t
		}
	}
	return nil
}

func newAuthService(store *fakeAuthStore) *service.AuthService {
	return service.NewAuthService(store, "test-secret", 15*time.Minute, 7*24*time.Hour, validator.New(), zap.NewNop())
}

func register(t *testing.T, svc *service.AuthService) *domain.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email:     "owner@challengerucars.com",
		Password:  "hunter22",
		FirstName: "Ahmed",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newAuthService(newFakeAuthStore())
	register(t, svc)

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{
		Email:    "owner@challengerucars.com",
		Password: "different1",
	})
	var conflict *domain.ErrConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestLoginIssuesValidAccessToken(t *testing.T) {
	svc := newAuthService(newFakeAuthStore())
	user := register(t, svc)

	resp, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "owner@challengerucars.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("empty token pair")
	}

	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.Sub != user.ID {
		t.Errorf("sub = %s, want %s", claims.Sub, user.ID)
	}
	if claims.Type != "access" {
		t.Errorf("type = %s, want access", claims.Type)
	}
}

func TestLoginWrongPasswordIsUniformError(t *testing.T) {
	svc := newAuthService(newFakeAuthStore())
	register(t, svc)

	_, wrongPass := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "owner@challengerucars.com",
		Password: "not-the-password",
	})
	_, unknownUser := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "nobody@challengerucars.com",
		Password: "whatever1",
	})

	var a, b *domain.ErrUnauthorized
	if !errors.As(wrongPass, &a) || !errors.As(unknownUser, &b) {
		t.Fatalf("expected ErrUnauthorized for both, got %v / %v", wrongPass, unknownUser)
	}
	if a.Message != b.Message {
		t.Errorf("error messages leak account existence: %q vs %q", a.Message, b.Message)
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	store := newFakeAuthStore()
	svc := newAuthService(store)
	register(t, svc)

	login, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "owner@challengerucars.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	refreshed, err := svc.Refresh(context.Background(), &domain.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("refresh token was not rotated")
	}

	// the presented token is revoked; replaying it must fail
	_, err = svc.Refresh(context.Background(), &domain.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized on replay, got %v", err)
	}
}

func TestLogoutRevokesAllRefreshTokens(t *testing.T) {
	store := newFakeAuthStore()
	svc := newAuthService(store)
	user := register(t, svc)

	login, err := svc.Login(context.Background(), &domain.LoginRequest{
		Email:    "owner@challengerucars.com",
		Password: "hunter22",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if err := svc.Logout(context.Background(), user.ID); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	_, err = svc.Refresh(context.Background(), &domain.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	var unauthorized *domain.ErrUnauthorized
	if !errors.As(err, &unauthorized) {
		t.Fatalf("expected ErrUnauthorized after logout, got %v", err)
	}
}

func TestValidateAccessTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(newFakeAuthStore())

	if _, err := svc.ValidateAccessToken("not.a.jwt"); err == nil {
		t.Error("garbage token accepted")
	}
	if _, err := svc.ValidateAccessToken(""); err == nil {
		t.Error("empty token accepted")
	}
}
