package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"user-service/internal/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	t.Run("generates id", func(t *testing.T) {
		ctx, rec := newContext("")
		var seen string
		err := RequestID()(func(c echo.Context) error {
			seen, _ = c.Get(logger.ContextKeyRequestID).(string)
			return nil
		})(ctx)
		require.NoError(t, err)
		_, err = uuid.Parse(seen)
		require.NoError(t, err)
		require.Equal(t, seen, rec.Header().Get(HeaderRequestID))
	})

	t.Run("keeps caller id", func(t *testing.T) {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "abc-123")
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		err := RequestID()(func(c echo.Context) error {
			require.Equal(t, "abc-123", c.Get(logger.ContextKeyRequestID))
			return nil
		})(ctx)
		require.NoError(t, err)
		require.Equal(t, "abc-123", rec.Header().Get(HeaderRequestID))
	})
}
