package domain

import "time"

// Role defines the permission level of a registered user
type Role string

const (
	RoleUnknown Role = "unknown"
	RoleAdmin   Role = "admin"
	RoleBigBoss Role = "big_boss"
)

// CanAccessGroup reports whether the role grants access to any group
// without an explicit membership record.
func (r Role) CanAccessGroup() bool {
	return r == RoleBigBoss
}

// Admin represents a registered warehouse employee
type Admin struct {
	ChatID       int64
	FullName     string
	Position     string
	Role         Role
	Groups       []string
	RegisteredAt time.Time
}
