package dto

import (
	"time"

	"github.com/spec-kit/project-dashboard/internal/domain"
)

// SignupRequest payload for new accounts.
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role,omitempty"`
}

// LoginRequest payload for login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserPayload is the client-facing user shape. It never carries the
// password hash.
type UserPayload struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse is the signup/login envelope.
type AuthResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *UserPayload `json:"user,omitempty"`
	Token   string       `json:"token,omitempty"`
}

// VerifyResponse echoes the authenticated user.
type VerifyResponse struct {
	Success bool         `json:"success"`
	User    *UserPayload `json:"user,omitempty"`
}

// UsersResponse wraps a role-filtered listing.
type UsersResponse struct {
	Success bool          `json:"success"`
	Users   []UserPayload `json:"users"`
}

// NewUserPayload maps the domain user to its API shape.
func NewUserPayload(user *domain.User) *UserPayload {
	if user == nil {
		return nil
	}
	return &UserPayload{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
