package users

import (
	"context"
	"errors"
	"io"
	"net/http"

	"user-service/internal/api"
	"user-service/internal/cache"
	"user-service/internal/database"
	"user-service/internal/handler"
	"user-service/internal/logger"
	"user-service/internal/middleware"
	"user-service/internal/model"
	"user-service/internal/service"
	"user-service/internal/store"
	"user-service/internal/validation"
	"user-service/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	getUserByID     = store.GetUserByID
	updateUser      = store.UpdateUser
	deleteUser      = store.DeleteUser
	authorizeRead   = service.AuthorizeUserRead
	authorizeUpdate = service.AuthorizeUserUpdate
)

// maxBodyBytes bounds the PATCH body.
const maxBodyBytes = 1 << 20

// pathParams 將 echo 的路徑參數轉成 map 交給驗證器
func pathParams(c echo.Context) map[string]string {
	names := c.ParamNames()
	values := c.ParamValues()
	out := make(map[string]string, len(names))
	for i, n := range names {
		if i < len(values) {
			out[n] = values[i]
		}
	}
	return out
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料 (一般使用者只能查詢自己)
// @Tags        users
// @Produce     json
// @Param       id   path      int  true  "使用者 ID"
// @Success     200  {object}  api.UserResponse
// @Failure     400  {object}  api.ValidationErrorResponse  "參數錯誤"
// @Failure     403  {object}  api.ErrorResponse  "權限不足"
// @Failure     404  {object}  api.ErrorResponse  "使用者不存在"
// @Failure     500  {object}  api.ErrorResponse  "伺服器錯誤"
// @Security    BearerAuth
// @Router      /users/{id} [get]
func GetUserHandler(db database.DB, uc *cache.UserCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := validation.ValidateIDParam(pathParams(c))
		if err != nil {
			return handler.ValidationFailed(c, err)
		}
		if err := authorizeRead(middleware.ClaimsFrom(c), p.ID); err != nil {
			return handler.Fail(c, http.StatusForbidden, err.Error())
		}

		ctx := c.Request().Context()
		user, err := uc.Get(ctx, p.ID)
		if err == nil {
			return c.JSON(http.StatusOK, api.NewUserResponse(user))
		}
		if !errors.Is(err, cache.ErrMiss) {
			logger.FromEcho(c).Warn().Err(err).Int64("user_id", p.ID).Msg("user cache read failed")
		}

		user, err = getUserByID(ctx, db, p.ID)
		if errors.Is(err, store.ErrUserNotFound) {
			return handler.Fail(c, http.StatusNotFound, "user not found")
		}
		if err != nil {
			return handler.Internal(c, err)
		}
		if err := uc.Put(ctx, user); err != nil {
			logger.FromEcho(c).Warn().Err(err).Int64("user_id", p.ID).Msg("user cache write failed")
		}
		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// @Summary     Update a user by ID
// @Description 部分更新使用者姓名、Email 或角色；至少需提供一個欄位。只有管理員可以變更角色
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id    path  int                    true  "使用者 ID"
// @Param       body  body  api.UpdateUserRequest  true  "更新欄位"
// @Success     200   {object} api.UserResponse
// @Failure     400   {object} api.ValidationErrorResponse
// @Failure     403   {object} api.ErrorResponse
// @Failure     404   {object} api.ErrorResponse
// @Failure     409   {object} api.ErrorResponse
// @Failure     500   {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/{id} [patch]
func UpdateUserHandler(db database.DB, uc *cache.UserCache, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := validation.ValidateIDParam(pathParams(c))
		if err != nil {
			return handler.ValidationFailed(c, err)
		}

		body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodyBytes))
		if err != nil {
			return handler.Fail(c, http.StatusBadRequest, "invalid request body")
		}
		upd, err := validation.DecodeUserUpdate(body)
		if err != nil {
			return handler.ValidationFailed(c, err)
		}

		if err := authorizeUpdate(middleware.ClaimsFrom(c), p.ID, upd); err != nil {
			return handler.Fail(c, http.StatusForbidden, err.Error())
		}

		ctx := c.Request().Context()
		user, err := updateUser(ctx, db, p.ID, upd)
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			return handler.Fail(c, http.StatusNotFound, "user not found")
		case errors.Is(err, store.ErrEmailTaken):
			return handler.Fail(c, http.StatusConflict, "email already in use")
		case err != nil:
			return handler.Internal(c, err)
		}

		if err := uc.Invalidate(ctx, user.ID); err != nil {
			logger.FromEcho(c).Warn().Err(err).Int64("user_id", user.ID).Msg("user cache invalidate failed")
		}
		refreshCache(c, uc, wp, user)

		return c.JSON(http.StatusOK, api.NewUserResponse(user))
	}
}

// refreshCache 於背景寫回最新資料，佇列滿時略過
func refreshCache(c echo.Context, uc *cache.UserCache, wp worker.Pool, user *model.User) {
	log := logger.FromEcho(c)
	snapshot := *user
	err := wp.TrySubmit(func(ctx context.Context) {
		if err := uc.Put(ctx, &snapshot); err != nil {
			log.Warn().Err(err).Int64("user_id", snapshot.ID).Msg("user cache refresh failed")
		}
	})
	if err != nil {
		log.Debug().Err(err).Int64("user_id", user.ID).Msg("user cache refresh skipped")
	}
}

// @Summary     Delete a user by ID
// @Description 根據使用者 ID 刪除使用者 (僅限管理員)
// @Tags        users
// @Param       id  path  int  true  "使用者 ID"
// @Success     204  "No Content"
// @Failure     400  {object} api.ValidationErrorResponse
// @Failure     403  {object} api.ErrorResponse
// @Failure     404  {object} api.ErrorResponse
// @Failure     500  {object} api.ErrorResponse
// @Security    BearerAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB, uc *cache.UserCache) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := validation.ValidateIDParam(pathParams(c))
		if err != nil {
			return handler.ValidationFailed(c, err)
		}

		ctx := c.Request().Context()
		err = deleteUser(ctx, db, p.ID)
		if errors.Is(err, store.ErrUserNotFound) {
			return handler.Fail(c, http.StatusNotFound, "user not found")
		}
		if err != nil {
			return handler.Internal(c, err)
		}

		if err := uc.Invalidate(ctx, p.ID); err != nil {
			logger.FromEcho(c).Warn().Err(err).Int64("user_id", p.ID).Msg("user cache invalidate failed")
		}
		return c.NoContent(http.StatusNoContent)
	}
}
