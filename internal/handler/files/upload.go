package files

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Viswanath-varre/PM-MABP/internal/api"
	"github.com/Viswanath-varre/PM-MABP/internal/cache"
	"github.com/Viswanath-varre/PM-MABP/internal/database"
	"github.com/Viswanath-varre/PM-MABP/internal/middleware"
	"github.com/Viswanath-varre/PM-MABP/internal/model"
	"github.com/Viswanath-varre/PM-MABP/internal/service"
	"github.com/Viswanath-varre/PM-MABP/internal/storage"
	"github.com/Viswanath-varre/PM-MABP/internal/store"
	"github.com/Viswanath-varre/PM-MABP/internal/worker"
)

var (
	submitUpload     = service.SubmitUpload
	cachedPreview    = service.CachedPreview
	cachedPreviewOf  = service.CachedPreviewOf
	latestFileUpload = store.LatestFileUpload
	listFileUploads  = store.ListFileUploads
)

// UploadHandler 上傳分類檔案
// @Summary     Upload a file into a category
// @Description 接收 multipart 檔案並存入指定分類，僅接受 csv/xlsx/xls
// @Tags        files
// @Accept      multipart/form-data
// @Produce     json
// @Param       category path     string true "檔案分類"
// @Param       file     formData file   true "上傳檔案"
// @Success     201 {object} api.UploadResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     413 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /files/{category} [post]
func UploadHandler(db database.DB, rdb cache.Cache, blobs storage.Store, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		category, err := model.ParseCategory(c.Param("category"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "unknown category"})
		}

		sess, ok := c.Get(middleware.ContextSessionKey).(*service.Session)
		if !ok || sess == nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing session"})
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "no file provided"})
		}
		src, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "could not read uploaded file"})
		}
		defer src.Close()

		// uploaded_by 記電話而不是顯示名稱，電話不會改
		result, err := submitUpload(c.Request().Context(), db, blobs, category, sess.Phone, fh.Filename, src, fh.Size)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrNoFile):
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "no file provided"})
			case errors.Is(err, service.ErrUnsupportedType):
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "only csv, xlsx and xls files are accepted"})
			case errors.Is(err, service.ErrTooLarge):
				return c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Message: "file exceeds the upload size limit"})
			default:
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to store file"})
			}
		}

		// 背景預熱預覽快取，失敗不影響上傳結果
		// 請求結束後 request context 會被取消，背景任務用獨立 context
		if wp != nil && result.Warning == "" {
			wp.Submit(func() {
				cachedPreview(context.Background(), db, rdb, blobs, category)
			})
		}

		return c.JSON(http.StatusCreated, api.UploadResponse{
			Upload:  api.NewFileUploadResponse(result.Record),
			Warning: result.Warning,
		})
	}
}
