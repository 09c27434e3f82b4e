package handler

import (
	"net/http"

	"user-service/internal/api"
	"user-service/internal/logger"
	"user-service/internal/metrics"
	"user-service/internal/validation"

	"github.com/labstack/echo/v4"
)

// Fail writes an api.ErrorResponse.
func Fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, api.ErrorResponse{Message: msg})
}

// ValidationFailed writes a 400 listing every rejected field and counts them. Errors that are not
// a *validation.ValidationError are reported with their message only.
func ValidationFailed(c echo.Context, err error) error {
	ve, ok := validation.AsValidationError(err)
	if !ok {
		return Fail(c, http.StatusBadRequest, err.Error())
	}
	metrics.RecordValidationFailure(ve)
	logger.FromEcho(c).Debug().Str("path", c.Path()).Interface("errors", ve.Errors).Msg("validation failed")
	return c.JSON(http.StatusBadRequest, api.ValidationErrorResponse{
		Message: "validation failed",
		Errors:  ve.Errors,
	})
}

// Internal logs err and hides it from the client.
func Internal(c echo.Context, err error) error {
	logger.FromEcho(c).Error().Err(err).Str("path", c.Path()).Msg("request failed")
	return Fail(c, http.StatusInternalServerError, "internal server error")
}
