package dto

import (
	"github.com/fitiavana-dev/treasury_app/internal/core/domain"
)

// LoginRequest is the payload for authenticating a user.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the signed JWT for an authenticated user.
type LoginResponse struct {
	Token string `json:"token"`
}

// CreateUserRequest is the payload for registering an operator.
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"required,oneof=ECONOME DIRECTOR ADMIN"`
}

// UserResponse is the API representation of a user. The password hash never
// leaves the service layer.
type UserResponse struct {
	UserID   string `json:"userID"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// ToUserResponse converts a domain User to its API shape.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Name:     u.Name,
		Username: u.Username,
		Role:     string(u.Role),
	}
}
