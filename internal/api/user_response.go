package api

import (
	"time"

	"github.com/Viswanath-varre/PM-MABP/internal/model"
)

// swagger:model api.UserResponse
type UserResponse struct {
	ID          int       `json:"id" example:"42"`
	Phone       string    `json:"phone" example:"9000000001"`
	Name        string    `json:"name" example:"Alice"`
	Designation string    `json:"designation,omitempty" example:"Site Engineer"`
	Role        string    `json:"role" example:"user"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewUserResponse 將使用者模型轉為回應格式
func NewUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Phone:     u.Phone,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
	if u.Designation != nil {
		resp.Designation = *u.Designation
	}
	return resp
}
