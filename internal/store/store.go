package store

import (
	"context"

	"github.com/prideworks/marquee/internal/model"
)

// RoleStore defines the persistence interface for volunteer roles and
// applications. Events are deliberately not here; they live in the
// git-backed document store.
type RoleStore interface {
	// Role CRUD
	CreateRole(ctx context.Context, role *model.Role) error
	GetRole(ctx context.Context, id string) (*model.Role, error)
	ListRoles(ctx context.Context, filter model.RoleFilter) ([]*model.Role, error)
	UpdateRole(ctx context.Context, role *model.Role) error
	DeleteRole(ctx context.Context, id string) error

	// Applications
	CreateApplication(ctx context.Context, app *model.Application) error
	ListApplications(ctx context.Context, roleID string) ([]*model.Application, error)
	SetApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) (*model.Application, error)

	// Lifecycle
	Close() error
}
