package models

import "strings"

// Roles a User may hold.
const (
	RoleAdmin        = "admin"
	RoleUser         = "user"
	RoleOrganization = "organization"
)

// IsValidRole reports whether role is one of the known roles (case-insensitive).
func IsValidRole(role string) bool {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleAdmin, RoleUser, RoleOrganization:
		return true
	}
	return false
}
