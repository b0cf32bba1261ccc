package files

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Viswanath-varre/PM-MABP/internal/api"
	"github.com/Viswanath-varre/PM-MABP/internal/storage"
)

// DownloadHandler 下載已儲存的上傳檔
// @Summary     Download a stored upload
// @Description 以儲存檔名下載對應的檔案內容
// @Tags        files
// @Produce     application/octet-stream
// @Param       name path string true "儲存檔名"
// @Success     200 {file}   file
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /downloads/{name} [get]
func DownloadHandler(blobs storage.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param("name")
		path, err := blobs.Path(name)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid file name"})
		}
		// Path 只驗證檔名格式，檔案不存在要在這裡攔下
		f, err := blobs.Open(name)
		if err != nil {
			return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "file not found"})
		}
		f.Close()
		return c.Attachment(path, name)
	}
}
