// File: internal/handler/auth/logout.go
package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Viswanath-varre/PM-MABP/internal/api"
	"github.com/Viswanath-varre/PM-MABP/internal/cache"
	"github.com/Viswanath-varre/PM-MABP/internal/middleware"
	"github.com/Viswanath-varre/PM-MABP/internal/service"
)

var revokeSession = service.RevokeSession

// LogoutHandler 撤銷當前工作階段
// @Summary     登出使用者
// @Description 撤銷當前工作階段令牌，之後同一令牌不再有效
// @Tags        auth
// @Produce     json
// @Success     204 "No Content"
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /auth/logout [post]
func LogoutHandler(rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, ok := c.Get(middleware.ContextSessionKey).(*service.Session)
		if !ok || sess == nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid or missing session"})
		}
		if err := revokeSession(c.Request().Context(), rdb, sess); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to revoke session"})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
