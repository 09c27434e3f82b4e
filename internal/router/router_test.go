package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"user-service/internal/cache"
	"user-service/internal/config"
	"user-service/internal/database"
	"user-service/internal/model"
	"user-service/internal/service"
	"user-service/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "secret",
		TokenTTL:       time.Hour,
		UserCacheTTL:   time.Minute,
		WriteRateLimit: 100,
		WriteRateBurst: 100,
	}
}

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	wp := worker.NewPool(1)
	t.Cleanup(wp.Stop)
	e := echo.New()
	Setup(e, &database.FakeDB{}, &cache.FakeCache{}, wp, testConfig())
	return e
}

func TestSetupRoutes(t *testing.T) {
	e := newServer(t)

	got := map[string]struct{}{}
	for _, r := range e.Routes() {
		got[r.Method+" "+r.Path] = struct{}{}
	}

	expected := []string{
		http.MethodGet + " /metrics",
		http.MethodGet + " /swagger/*",
		http.MethodGet + " /api/ping",
		http.MethodPost + " /api/auth/login",
		http.MethodGet + " /api/users/:id",
		http.MethodPatch + " /api/users/:id",
		http.MethodDelete + " /api/users/:id",
	}

	for _, k := range expected {
		_, ok := got[k]
		require.True(t, ok, "missing route %s", k)
	}
}

func TestUserRoutesRequireAuth(t *testing.T) {
	e := newServer(t)

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete} {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(method, "/api/users/1", nil))
		require.Equal(t, http.StatusUnauthorized, rec.Code, method)
	}
}

func TestDeleteRequiresAdmin(t *testing.T) {
	e := newServer(t)
	tok, err := service.IssueAccessToken("secret", model.User{ID: 1, Role: "user"}, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/1", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPatchValidationCounted(t *testing.T) {
	e := newServer(t)
	tok, err := service.IssueAccessToken("secret", model.User{ID: 1, Role: "user"}, time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/api/users/1", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+tok)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "At least one field must be provided to update")

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `user_service_validation_failures_total{field="name",kind="cross_field_invalid"}`)
}
