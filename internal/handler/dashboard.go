package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Viswanath-varre/PM-MABP/internal/api"
	"github.com/Viswanath-varre/PM-MABP/internal/database"
	"github.com/Viswanath-varre/PM-MABP/internal/model"
	"github.com/Viswanath-varre/PM-MABP/internal/store"
)

var (
	latestFileUpload           = store.LatestFileUpload
	countUsers                 = store.CountUsers
	countFileUploads           = store.CountFileUploads
	countFileUploadsByCategory = store.CountFileUploadsByCategory
)

// DashboardHandler 彙整整體與每個分類的上傳概況
// @Summary     Dashboard summary
// @Description 回傳使用者與上傳總數，以及每個檔案分類的上傳數量與最新一筆上傳
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} api.DashboardResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /dashboard [get]
func DashboardHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		resp := api.DashboardResponse{Categories: make([]api.DashboardCategory, 0, len(model.Categories))}

		var err error
		if resp.UserCount, err = countUsers(ctx, db); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load dashboard"})
		}
		if resp.UploadCount, err = countFileUploads(ctx, db); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load dashboard"})
		}
		for _, cat := range model.Categories {
			count, err := countFileUploadsByCategory(ctx, db, cat)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load dashboard"})
			}
			entry := api.DashboardCategory{Category: string(cat), Count: count}
			latest, err := latestFileUpload(ctx, db, cat)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load dashboard"})
			}
			if latest != nil {
				fr := api.NewFileUploadResponse(latest)
				entry.Latest = &fr
			}
			resp.Categories = append(resp.Categories, entry)
		}
		return c.JSON(http.StatusOK, resp)
	}
}
