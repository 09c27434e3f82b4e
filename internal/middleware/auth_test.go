package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"user-service/internal/model"
	"user-service/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "testsecret"

func newContext(auth string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func issue(t *testing.T, user model.User) string {
	t.Helper()
	tok, err := service.IssueAccessToken(testSecret, user, time.Minute)
	require.NoError(t, err)
	return tok
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected *echo.HTTPError, got %v", err)
	return he.Code
}

func TestExtractClaims(t *testing.T) {
	// missing header
	ctx, _ := newContext("")
	_, err := extractClaims(ctx, testSecret)
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	// bad format
	ctx, _ = newContext("BadHeader")
	_, err = extractClaims(ctx, testSecret)
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	// invalid token
	ctx, _ = newContext("Bearer invalid")
	_, err = extractClaims(ctx, testSecret)
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))

	// wrong secret
	tok, err := service.IssueAccessToken("other", model.User{ID: 1, Role: "user"}, time.Minute)
	require.NoError(t, err)
	ctx, _ = newContext("Bearer " + tok)
	_, err = extractClaims(ctx, testSecret)
	require.Error(t, err)

	// valid token, scheme is case-insensitive
	ctx, _ = newContext("bearer " + issue(t, model.User{ID: 1, Role: "admin"}))
	claims, err := extractClaims(ctx, testSecret)
	require.NoError(t, err)
	require.Equal(t, int64(1), claims.UserID)
	require.True(t, claims.IsAdmin())
}

func TestRequireAuth(t *testing.T) {
	tok := issue(t, model.User{ID: 2, Role: "user"})

	// success path
	ctx, rec := newContext("Bearer " + tok)
	called := false
	handler := RequireAuth(testSecret)(func(c echo.Context) error {
		called = true
		cl := ClaimsFrom(c)
		require.NotNil(t, cl)
		require.Equal(t, int64(2), cl.UserID)
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(ctx))
	require.True(t, called)
	require.Equal(t, http.StatusOK, rec.Code)

	// missing token
	ctx, _ = newContext("")
	called = false
	err := RequireAuth(testSecret)(func(echo.Context) error { called = true; return nil })(ctx)
	require.Error(t, err)
	require.False(t, called)
}

func TestRequireAuthUsesVerifier(t *testing.T) {
	orig := verifyAccessToken
	t.Cleanup(func() { verifyAccessToken = orig })

	verifyAccessToken = func(secret, token string) (*service.Claims, error) {
		require.Equal(t, testSecret, secret)
		require.Equal(t, "abc", token)
		return &service.Claims{UserID: 9, Role: "user"}, nil
	}

	ctx, _ := newContext("Bearer abc")
	err := RequireAuth(testSecret)(func(c echo.Context) error {
		require.Equal(t, int64(9), ClaimsFrom(c).UserID)
		return nil
	})(ctx)
	require.NoError(t, err)
}

func TestRequireAdmin(t *testing.T) {
	adminTok := issue(t, model.User{ID: 3, Role: "admin"})
	userTok := issue(t, model.User{ID: 4, Role: "user"})

	ctx, rec := newContext("Bearer " + adminTok)
	handler := RequireAdmin(testSecret)(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	require.NoError(t, handler(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	ctx, _ = newContext("Bearer " + userTok)
	err := handler(ctx)
	require.Equal(t, http.StatusForbidden, statusOf(t, err))

	ctx, _ = newContext("")
	err = handler(ctx)
	require.Equal(t, http.StatusUnauthorized, statusOf(t, err))
}

func TestClaimsFromEmpty(t *testing.T) {
	ctx, _ := newContext("")
	require.Nil(t, ClaimsFrom(ctx))
}
