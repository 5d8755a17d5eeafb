package models

import "time"

// Roles allowed to read privileged analytics.
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
	RoleViewer     = "viewer"
)

type AdminUser struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email,omitempty"`
	PasswordHash string    `json:"-"` // don’t expose hash
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsAdmin reports whether the role may access admin endpoints.
func IsAdmin(role string) bool {
	return role == RoleAdmin || role == RoleSuperAdmin
}

// ValidRole reports whether role is one of the known roles.
func ValidRole(role string) bool {
	return IsAdmin(role) || role == RoleViewer
}
