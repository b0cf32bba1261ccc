// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/Viswanath-varre/PM-MABP/internal/cache"
	"github.com/Viswanath-varre/PM-MABP/internal/database"
	"github.com/Viswanath-varre/PM-MABP/internal/handler"
	"github.com/Viswanath-varre/PM-MABP/internal/handler/auth"
	"github.com/Viswanath-varre/PM-MABP/internal/handler/files"
	"github.com/Viswanath-varre/PM-MABP/internal/handler/users"
	"github.com/Viswanath-varre/PM-MABP/internal/middleware"
	"github.com/Viswanath-varre/PM-MABP/internal/storage"
	"github.com/Viswanath-varre/PM-MABP/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, blobs storage.Store, wp worker.Pool) {
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, rdb), middleware.RequireAuth(rdb))

	// 登入與登出
	api.POST("/auth/login", auth.LoginHandler(db, rdb))
	api.POST("/auth/logout", auth.LogoutHandler(rdb), middleware.RequireAuth(rdb))

	// 儀表板
	api.GET("/dashboard", handler.DashboardHandler(db), middleware.RequireAuth(rdb))

	// 當前使用者
	api.GET("/users/me", users.GetMeHandler(db), middleware.RequireAuth(rdb))

	// 管理員專屬 Users CRUD
	apiUsers := api.Group("/users", middleware.RequireAdmin(rdb))
	apiUsers.POST("", users.CreateUserHandler(db))
	apiUsers.GET("", users.ListUsersHandler(db))
	apiUsers.GET("/:user_id", users.GetUserHandler(db))
	apiUsers.PUT("/:user_id", users.UpdateUserHandler(db))
	apiUsers.DELETE("/:user_id", users.DeleteUserHandler(db))

	// 分類檔案上傳、清單與預覽
	apiFiles := api.Group("/files", middleware.RequireAuth(rdb))
	apiFiles.POST("/:category", files.UploadHandler(db, rdb, blobs, wp))
	apiFiles.GET("/:category", files.ListFilesHandler(db))
	apiFiles.GET("/:category/preview", files.PreviewHandler(db, rdb, blobs))

	// 下載已儲存的檔案
	api.GET("/downloads/:name", files.DownloadHandler(blobs), middleware.RequireAuth(rdb))
}
