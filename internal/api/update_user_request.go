package api

// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name        string `form:"name" validate:"required" example:"Alice"`
	Designation string `form:"designation" example:"Site Engineer"`
	Role        string `form:"role" validate:"required,oneof=admin user" example:"user"`
	Password    string `form:"password" validate:"omitempty,min=4" example:"NewSecret123!"`
}
