package models

import "strings"

// Role is the access level of an AdminUser.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStaff Role = "STAFF"
)

// DefaultUserRole is assigned to users created without a role.
const DefaultUserRole = "USER"

// ParseRole upper-cases s and reports whether it names a known admin role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleStaff:
		return r, true
	}
	return r, false
}
