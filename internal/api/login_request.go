package api

// swagger:model api.LoginRequest
type LoginRequest struct {
	Phone    string `form:"phone" validate:"required" example:"9000000001"`
	Password string `form:"password" validate:"required" example:"Secret123!"`
}
