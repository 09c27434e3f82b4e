package router

import (
	"user-service/internal/cache"
	"user-service/internal/config"
	"user-service/internal/database"
	"user-service/internal/handler"
	"user-service/internal/handler/auth"
	"user-service/internal/handler/users"
	"user-service/internal/metrics"
	"user-service/internal/middleware"
	"user-service/internal/worker"

	_ "user-service/docs"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, c cache.Cache, wp worker.Pool, cfg *config.Config) {
	uc := cache.NewUserCache(c, cfg.UserCacheTTL)

	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", middleware.WriteRateLimit(cfg.WriteRateLimit, cfg.WriteRateBurst))

	// 健康檢查
	api.GET("/ping", handler.PingHandler(db, c))

	// 使用者登入
	api.POST("/auth/login", auth.LoginHandler(db, cfg.JWTSecret, cfg.TokenTTL))

	// 本人或管理員可讀取與更新，刪除僅限管理員
	apiUsers := api.Group("/users")
	apiUsers.GET("/:id", users.GetUserHandler(db, uc), middleware.RequireAuth(cfg.JWTSecret))
	apiUsers.PATCH("/:id", users.UpdateUserHandler(db, uc, wp), middleware.RequireAuth(cfg.JWTSecret))
	apiUsers.DELETE("/:id", users.DeleteUserHandler(db, uc), middleware.RequireAdmin(cfg.JWTSecret))
}
