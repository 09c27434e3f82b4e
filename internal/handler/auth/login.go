package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"user-service/internal/api"
	"user-service/internal/database"
	"user-service/internal/handler"
	"user-service/internal/logger"
	"user-service/internal/service"
	"user-service/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	getUserByEmail   = store.GetUserByEmail
	authenticateUser = service.AuthenticateUser
	issueAccessToken = service.IssueAccessToken
	timeNow          = time.Now
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳存取令牌與到期時間
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       email    formData string true "使用者 Email"
// @Param       password formData string true "使用者密碼"
// @Success     200      {object} api.LoginResponse
// @Failure     400      {object} api.ValidationErrorResponse
// @Failure     401      {object} api.ErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB, secret string, ttl time.Duration) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		// 先 Bind
		if err := c.Bind(&req); err != nil {
			return handler.Fail(c, http.StatusBadRequest, "invalid form data")
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		// 再驗證結構化參數 (go-playground/validator)
		if err := c.Validate(&req); err != nil {
			return handler.ValidationFailed(c, err)
		}

		// 撈使用者資料
		user, err := getUserByEmail(c.Request().Context(), db, req.Email)
		if errors.Is(err, store.ErrUserNotFound) {
			return handler.Fail(c, http.StatusUnauthorized, "invalid credentials")
		}
		if err != nil {
			return handler.Internal(c, err)
		}

		// 驗證密碼
		if err := authenticateUser(*user, req.Password); err != nil {
			logger.FromEcho(c).Info().Int64("user_id", user.ID).Msg("login rejected")
			return handler.Fail(c, http.StatusUnauthorized, "invalid credentials")
		}

		// 發行存取令牌
		issuedAt := timeNow()
		token, err := issueAccessToken(secret, *user, ttl)
		if err != nil {
			return handler.Internal(c, err)
		}

		return c.JSON(http.StatusOK, api.LoginResponse{AccessToken: token, ExpiresAt: issuedAt.Add(ttl).UTC()})
	}
}
