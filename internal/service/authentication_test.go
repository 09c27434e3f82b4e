package service

import (
	"errors"
	"testing"
	"time"

	"user-service/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func restoreGlobals() {
	bcryptGenerateFromPassword = bcrypt.GenerateFromPassword
	bcryptCompareHashAndPassword = bcrypt.CompareHashAndPassword
	timeNow = time.Now
	parseWithClaims = jwt.ParseWithClaims
}

func TestHashPassword(t *testing.T) {
	t.Cleanup(restoreGlobals)
	pwd := "secret"
	hash, err := HashPassword(pwd)
	require.NoError(t, err)
	require.NotEqual(t, pwd, hash)
	require.NoError(t, ComparePassword(hash, pwd))

	bcryptGenerateFromPassword = func(_ []byte, _ int) ([]byte, error) {
		return nil, errors.New("gen")
	}
	_, err = HashPassword(pwd)
	require.Error(t, err)
}

func TestAuthenticateUser(t *testing.T) {
	t.Cleanup(restoreGlobals)
	hash, _ := HashPassword("pw")
	u := model.User{PasswordHash: hash}
	require.NoError(t, AuthenticateUser(u, "pw"))
	require.ErrorIs(t, AuthenticateUser(u, "bad"), ErrInvalidCredentials)
	require.ErrorIs(t, AuthenticateUser(model.User{}, ""), ErrInvalidCredentials)
}

func TestIssueAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	_, err := IssueAccessToken("", model.User{}, time.Minute)
	require.ErrorIs(t, err, ErrMissingSecret)

	tok, err := IssueAccessToken("s", model.User{ID: 5, Role: "admin"}, time.Minute)
	require.NoError(t, err)
	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (any, error) { return []byte("s"), nil })
	require.NoError(t, err)
	require.Equal(t, int64(5), claims.UserID)
	require.Equal(t, "5", claims.Subject)
	require.True(t, claims.IsAdmin())
}

func TestVerifyAccessToken(t *testing.T) {
	t.Cleanup(restoreGlobals)
	_, err := VerifyAccessToken("", "abc")
	require.ErrorIs(t, err, ErrMissingSecret)

	_, err = VerifyAccessToken("s", "invalid")
	require.Error(t, err)

	tokNone, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"uid": 1}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = VerifyAccessToken("s", tokNone)
	require.Error(t, err)

	other, _ := IssueAccessToken("other", model.User{ID: 3}, time.Minute)
	_, err = VerifyAccessToken("s", other)
	require.Error(t, err)

	timeNow = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _ := IssueAccessToken("s", model.User{ID: 3}, time.Minute)
	timeNow = time.Now
	_, err = VerifyAccessToken("s", expired)
	require.Error(t, err)

	noUser, _ := IssueAccessToken("s", model.User{}, time.Minute)
	_, err = VerifyAccessToken("s", noUser)
	require.Error(t, err)

	parseWithClaims = func(s string, c jwt.Claims, k jwt.Keyfunc, opts ...jwt.ParserOption) (*jwt.Token, error) {
		return &jwt.Token{Claims: jwt.MapClaims{}, Valid: false}, nil
	}
	_, err = VerifyAccessToken("s", "whatever")
	require.Error(t, err)

	parseWithClaims = jwt.ParseWithClaims
	tok, _ := IssueAccessToken("s", model.User{ID: 3, Role: "user"}, time.Minute)
	claims, err := VerifyAccessToken("s", tok)
	require.NoError(t, err)
	require.Equal(t, int64(3), claims.UserID)
	require.False(t, claims.IsAdmin())
}
