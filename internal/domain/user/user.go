package user

import (
	"fmt"
	"time"

	vo "github.com/helpdeskhq/helpdesk/internal/domain/user/valueobjects"
	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/biztime"
)

// User is an account of any role. The password hash never leaves the
// domain and application layers.
type User struct {
	id           uint
	email        *vo.Email
	name         *vo.Name
	passwordHash string
	role         authorization.UserRole
	isActive     bool
	lastLoginAt  *time.Time
	createdAt    time.Time
	updatedAt    time.Time
}

func NewUser(email *vo.Email, name *vo.Name, passwordHash string, role authorization.UserRole) (*User, error) {
	if email == nil {
		return nil, fmt.Errorf("email is required")
	}
	if name == nil {
		return nil, fmt.Errorf("name is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	now := biztime.NowUTC()
	return &User{
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructUser(
	id uint,
	email *vo.Email,
	name *vo.Name,
	passwordHash string,
	role authorization.UserRole,
	isActive bool,
	lastLoginAt *time.Time,
	createdAt, updatedAt time.Time,
) (*User, error) {
	if id == 0 {
		return nil, fmt.Errorf("user ID cannot be zero")
	}
	if email == nil || name == nil {
		return nil, fmt.Errorf("email and name are required")
	}
	return &User{
		id:           id,
		email:        email,
		name:         name,
		passwordHash: passwordHash,
		role:         role,
		isActive:     isActive,
		lastLoginAt:  lastLoginAt,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *User) ID() uint                     { return u.id }
func (u *User) Email() *vo.Email             { return u.email }
func (u *User) Name() *vo.Name               { return u.name }
func (u *User) PasswordHash() string         { return u.passwordHash }
func (u *User) Role() authorization.UserRole { return u.role }
func (u *User) IsActive() bool               { return u.isActive }
func (u *User) LastLoginAt() *time.Time      { return u.lastLoginAt }
func (u *User) CreatedAt() time.Time         { return u.createdAt }
func (u *User) UpdatedAt() time.Time         { return u.updatedAt }

func (u *User) SetID(id uint) error {
	if u.id != 0 {
		return fmt.Errorf("user ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("user ID cannot be zero")
	}
	u.id = id
	return nil
}

func (u *User) Actor() authorization.Actor {
	return authorization.Actor{UserID: u.id, Role: u.role}
}

// IsAssignable is true for active AGENT and ADMIN accounts.
func (u *User) IsAssignable() bool {
	return u.isActive && u.role.IsStaff()
}

func (u *User) UpdateName(name *vo.Name) error {
	if name == nil {
		return fmt.Errorf("name is required")
	}
	u.name = name
	u.updatedAt = biztime.NowUTC()
	return nil
}

func (u *User) ChangePasswordHash(hash string) error {
	if hash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = hash
	u.updatedAt = biztime.NowUTC()
	return nil
}

// ChangeRole returns false when the role is unchanged.
func (u *User) ChangeRole(role authorization.UserRole) (bool, error) {
	if !role.IsValid() {
		return false, fmt.Errorf("invalid role: %s", role)
	}
	if u.role == role {
		return false, nil
	}
	u.role = role
	u.updatedAt = biztime.NowUTC()
	return true, nil
}

// SetActive returns false when the flag is unchanged.
func (u *User) SetActive(active bool) bool {
	if u.isActive == active {
		return false
	}
	u.isActive = active
	u.updatedAt = biztime.NowUTC()
	return true
}

func (u *User) RecordLogin() {
	now := biztime.NowUTC()
	u.lastLoginAt = &now
}
