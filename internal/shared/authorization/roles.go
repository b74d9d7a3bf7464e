// Package authorization holds the role model shared by the domain, the use
// cases and the HTTP middleware.
package authorization

import "strings"

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAgent UserRole = "AGENT"
	RoleAdmin UserRole = "ADMIN"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// IsStaff reports whether the role works tickets (AGENT or ADMIN).
func (r UserRole) IsStaff() bool {
	return r == RoleAgent || r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// ParseUserRole is case-insensitive and falls back to RoleUser.
func ParseUserRole(s string) UserRole {
	role := UserRole(strings.ToUpper(strings.TrimSpace(s)))
	if role.IsValid() {
		return role
	}
	return RoleUser
}

// Actor is the authenticated caller as seen by use cases.
type Actor struct {
	UserID uint
	Role   UserRole
}

func (a Actor) IsStaff() bool {
	return a.Role.IsStaff()
}

func (a Actor) IsAdmin() bool {
	return a.Role.IsAdmin()
}

// CanAccessOwned allows admins and the owner.
func (a Actor) CanAccessOwned(ownerID uint) bool {
	return a.Role.IsAdmin() || a.UserID == ownerID
}
