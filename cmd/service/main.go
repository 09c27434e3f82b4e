// @title        User Service API
// @version      1.0
// @description  使用者資料查詢、部分更新與刪除，含輸入驗證與 JWT 授權
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user-service/internal/cache"
	"user-service/internal/config"
	"user-service/internal/database"
	"user-service/internal/logger"
	"user-service/internal/middleware"
	"user-service/internal/router"
	"user-service/internal/validation"
	"user-service/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const serviceName = "user-service"

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator and reports failures per field.
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validator.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return &validation.ValidationError{Errors: validation.FromValidatorErrors(verrs)}
	}
	return err
}

var (
	loadConfig      = config.Load
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = os.Exit
)

const shutdownTimeout = 10 * time.Second

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger.Init(serviceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 執行遷移
	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migration: %w", err)
	}

	// 建立資料庫連線池
	pool, err := newPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()

	// 建立 Redis 客戶端
	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			logger.Logger.Warn().Err(err).Msg("關閉 Redis 連線失敗")
		}
	}()

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	// Echo 實例及中介層
	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validation.Validator()}
	e.Use(middleware.RequestID())
	e.Use(middleware.AccessLog())
	e.Use(echomw.Recover())

	// 註冊路由並注入依賴
	router.Setup(e, pool, rdb, wp, cfg)

	errCh := make(chan error, 1)
	go func() {
		logger.Logger.Info().Str("addr", cfg.HTTPAddr).Msg("server starting")
		errCh <- startServer(e, cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		logger.Logger.Error().Err(err).Msg("service exited")
		exitFunc(1)
	}
}
