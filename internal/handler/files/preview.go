package files

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Viswanath-varre/PM-MABP/internal/api"
	"github.com/Viswanath-varre/PM-MABP/internal/cache"
	"github.com/Viswanath-varre/PM-MABP/internal/database"
	"github.com/Viswanath-varre/PM-MABP/internal/model"
	"github.com/Viswanath-varre/PM-MABP/internal/storage"
)

// PreviewHandler 預覽分類最新上傳的表格內容
// @Summary     Preview the latest upload in a category
// @Description 回傳最新上傳的前 20 列、前 12 欄；檔案無法解析時以 error 欄位說明
// @Tags        files
// @Produce     json
// @Param       category path string true "檔案分類"
// @Success     200 {object} api.PreviewResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /files/{category}/preview [get]
func PreviewHandler(db database.DB, rdb cache.Cache, blobs storage.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		category, err := model.ParseCategory(c.Param("category"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "unknown category"})
		}

		latest, err := latestFileUpload(c.Request().Context(), db, category)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load upload history"})
		}

		resp := api.PreviewResponse{Headers: []string{}, Rows: [][]string{}}
		if latest != nil {
			fr := api.NewFileUploadResponse(latest)
			resp.Latest = &fr
			p := cachedPreviewOf(c.Request().Context(), rdb, blobs, latest)
			resp.Headers = p.Headers
			resp.Rows = p.Rows
			resp.Error = p.Error
		}
		return c.JSON(http.StatusOK, resp)
	}
}
