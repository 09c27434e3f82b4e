package middleware

import (
	"time"

	"user-service/internal/logger"

	"github.com/labstack/echo/v4"
)

// AccessLog writes one structured line per request.
func AccessLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// let echo's error handler write the response so the status is final
				c.Error(err)
			}

			ev := logger.FromEcho(c).Info()
			if c.Response().Status >= 500 {
				ev = logger.FromEcho(c).Error().Err(err)
			}
			ev.Str("method", c.Request().Method).
				Str("path", c.Path()).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Msg("request")

			return nil
		}
	}
}
