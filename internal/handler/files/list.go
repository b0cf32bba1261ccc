package files

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Viswanath-varre/PM-MABP/internal/api"
	"github.com/Viswanath-varre/PM-MABP/internal/database"
	"github.com/Viswanath-varre/PM-MABP/internal/model"
)

// 每個分類的歷史清單固定回最近十筆
const listLimit = 10

// ListFilesHandler 列出分類最近的上傳
// @Summary     List recent uploads in a category
// @Description 回傳分類最近十筆上傳，新到舊排序
// @Tags        files
// @Produce     json
// @Param       category path string true "檔案分類"
// @Success     200 {array}  api.FileUploadResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /files/{category} [get]
func ListFilesHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		category, err := model.ParseCategory(c.Param("category"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "unknown category"})
		}
		uploads, err := listFileUploads(c.Request().Context(), db, category, listLimit)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to list uploads"})
		}
		resp := make([]api.FileUploadResponse, 0, len(uploads))
		for i := range uploads {
			resp = append(resp, api.NewFileUploadResponse(&uploads[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}
