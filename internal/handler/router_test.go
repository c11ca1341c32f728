package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/challengerucars/backoffice-go/internal/handler"
	"github.com/challengerucars/backoffice-go/internal/infra/observability"

	"go.uber.org/zap"
)

func newTestRouter() http.Handler {
	return handler.NewRouter(handler.Services{}, observability.NewMetrics(), zap.NewNop())
}

func TestHealthz(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("healthz returned %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestReadyz(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("readyz returned %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("metrics returned %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestPing(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("ping returned %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestProtectedRouteWithoutToken(t *testing.T) {
	router := newTestRouter()

	for _, path := range []string{
		"/v1/transactions",
		"/v1/vehicles",
		"/v1/dashboard/stats",
		"/v1/settings/financial",
		"/v1/categories",
		"/v1/audit",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s without token returned %d, want %d", path, rec.Code, http.StatusUnauthorized)
		}
	}
}

func TestProtectedRouteWithMalformedToken(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/v1/transactions", nil)
	req.Header.Set("Authorization", "Token abc123")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("malformed scheme returned %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
