package user

import (
	"context"

	"github.com/helpdeskhq/helpdesk/internal/shared/authorization"
	"github.com/helpdeskhq/helpdesk/internal/shared/query"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context, filter ListFilter) ([]*User, int64, error)
	// ListActiveStaff returns active AGENT and ADMIN accounts ordered by name.
	ListActiveStaff(ctx context.Context) ([]*User, error)
	CountByRole(ctx context.Context, role authorization.UserRole) (int64, error)
}

type ListFilter struct {
	query.BaseFilter
	Role     *authorization.UserRole
	IsActive *bool
	Search   string
}
