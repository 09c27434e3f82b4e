package api

import (
	"time"

	"user-service/internal/model"
)

// UpdateUserRequest documents the PATCH body. Every field is optional but at least one is required.
// swagger:model api.UpdateUserRequest
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" example:"Alice"`
	Email *string `json:"email,omitempty" example:"alice@example.com"`
	Role  *string `json:"role,omitempty" enums:"user,admin" example:"user"`
}

// swagger:model api.UserResponse
type UserResponse struct {
	ID        int64     `json:"id" example:"1"`
	Name      string    `json:"name" example:"Alice"`
	Email     string    `json:"email" example:"alice@example.com"`
	Role      string    `json:"role" example:"user"`
	CreatedAt time.Time `json:"created_at" example:"2025-05-01T15:04:05Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2025-05-01T15:04:05Z"`
}

// NewUserResponse drops the password hash.
func NewUserResponse(u *model.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
