package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Phone       string `form:"phone" validate:"required" example:"9000000001"`
	Name        string `form:"name" validate:"required" example:"Alice"`
	Designation string `form:"designation" example:"Site Engineer"`
	Password    string `form:"password" validate:"required,min=4" example:"Secret123!"`
	Role        string `form:"role" validate:"required,oneof=admin user" example:"user"`
}
