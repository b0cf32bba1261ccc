// File: internal/handler/auth/login.go
package auth

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"

	"github.com/Viswanath-varre/PM-MABP/internal/api"
	"github.com/Viswanath-varre/PM-MABP/internal/cache"
	"github.com/Viswanath-varre/PM-MABP/internal/database"
	"github.com/Viswanath-varre/PM-MABP/internal/service"
	"github.com/Viswanath-varre/PM-MABP/internal/store"
)

var (
	getUserByPhone   = store.GetUserByPhone
	authenticateUser = service.AuthenticateUser
	issueSession     = service.IssueSession
)

// LoginHandler 使用 Phone/Password 驗證並回傳工作階段令牌
// @Summary     登入使用者
// @Description 使用 Phone 與 Password 進行驗證，回傳存取令牌與使用者資訊
// @Tags        auth
// @Accept      application/x-www-form-urlencoded
// @Produce     json
// @Param       phone    formData string true "電話號碼"
// @Param       password formData string true "使用者密碼"
// @Success     200      {object} api.LoginResponse
// @Failure     400      {object} api.ErrorResponse
// @Failure     401      {object} api.ErrorResponse
// @Failure     500      {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid form data"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		// 不透露帳號是否存在，查無使用者與密碼錯誤回同一訊息；
		// 資料庫壞掉是另一回事，不能偽裝成帳密錯誤
		user, err := getUserByPhone(c.Request().Context(), db, req.Phone)
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to load user"})
		}
		authUser, err := authenticateUser(c.Request().Context(), *user, req.Password)
		if err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}

		token, err := issueSession(c.Request().Context(), rdb, *authUser, service.SessionTTL)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue session"})
		}

		return c.JSON(http.StatusOK, api.LoginResponse{
			Token: token,
			User:  api.NewUserResponse(authUser),
		})
	}
}
