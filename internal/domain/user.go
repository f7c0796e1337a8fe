package domain

import "time"

// UserRole classifies an account for authorization purposes. Only project
// managers may create projects.
type UserRole string

const (
	RoleEmployee       UserRole = "employee"
	RoleProjectManager UserRole = "project_manager"
)

// ValidRole reports whether role is one of the declared values.
func ValidRole(role UserRole) bool {
	return role == RoleEmployee || role == RoleProjectManager
}

// User is the domain model for a dashboard account. PasswordHash is
// server-only and must never be serialized to clients.
type User struct {
	ID           string
	Email        string
	Name         string
	Role         UserRole
	PasswordHash string
	CreatedAt    time.Time
}
