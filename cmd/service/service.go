// File: cmd/service/service.go
// @title        PM-MABP File Portal API
// @version      1.0
// @description  維保檔案入口的後端 API 文件
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Viswanath-varre/PM-MABP/internal/cache"
	"github.com/Viswanath-varre/PM-MABP/internal/database"
	"github.com/Viswanath-varre/PM-MABP/internal/router"
	"github.com/Viswanath-varre/PM-MABP/internal/service"
	"github.com/Viswanath-varre/PM-MABP/internal/storage"
	"github.com/Viswanath-varre/PM-MABP/internal/worker"

	_ "github.com/Viswanath-varre/PM-MABP/docs" // 引入 swag 產出的 docs
)

// CustomValidator wraps go-playground/validator for Echo
// swagger:ignore
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

var (
	newPgxPool         = database.NewPgxPool
	newRedisClient     = cache.NewRedisClient
	runMigrationsFn    = database.RunMigrations
	newLocalStore      = func(dir string) (storage.Store, error) { return storage.NewLocalStore(dir) }
	ensureDefaultAdmin = service.EnsureDefaultAdmin
	newWorkerPool      = worker.NewPool
	startServer        = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc           = os.Exit
)

func run() error {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return fmt.Errorf("環境變數 DATABASE_URL 未設定")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		return fmt.Errorf("環境變數 REDIS_ADDR 未設定")
	}

	redisDBStr := os.Getenv("REDIS_DB")
	if redisDBStr == "" {
		return fmt.Errorf("環境變數 REDIS_DB 未設定")
	}
	redisIndex, err := strconv.Atoi(redisDBStr)
	if err != nil {
		return fmt.Errorf("無效的 REDIS_DB: %v", err)
	}

	redisPassword := os.Getenv("REDIS_PASSWORD")
	if redisPassword == "" {
		return fmt.Errorf("環境變數 REDIS_PASSWORD 未設定")
	}

	if os.Getenv("SESSION_SECRET") == "" {
		return fmt.Errorf("環境變數 SESSION_SECRET 未設定")
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	workerCount := 1
	if v := os.Getenv("WORKER_COUNT"); v != "" {
		c, err := strconv.Atoi(v)
		if err != nil || c <= 0 {
			return fmt.Errorf("無效的 WORKER_COUNT: %v", err)
		}
		workerCount = c
	}

	db, err := newPgxPool(context.Background(), dbURL)
	if err != nil {
		return fmt.Errorf("DB 連線失敗: %v", err)
	}
	defer db.Close()

	redis, err := newRedisClient(redisAddr, redisPassword, redisIndex)
	if err != nil {
		return fmt.Errorf("Redis 連線失敗: %v", err)
	}
	defer redis.Close()

	if err := runMigrationsFn(dbURL); err != nil {
		return fmt.Errorf("Migration 執行失敗: %v", err)
	}

	// 首次啟動種入預設管理員帳號
	if err := ensureDefaultAdmin(context.Background(), db); err != nil {
		return fmt.Errorf("預設管理員初始化失敗: %v", err)
	}

	blobs, err := newLocalStore(uploadDir)
	if err != nil {
		return fmt.Errorf("上傳目錄初始化失敗: %v", err)
	}

	wp := newWorkerPool(workerCount)
	defer wp.Stop()

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit("128M"))

	router.Setup(e, db, redis, blobs, wp)

	return startServer(e, ":8080")
}

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
