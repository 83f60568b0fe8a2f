package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
)

// UserRepository defines the interface for staff account operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// GetWithRoles loads the user with roles and permissions
	GetWithRoles(ctx context.Context, id uuid.UUID) (*entity.User, error)
	// ListByPermission returns active users holding the named permission,
	// optionally filtered to a specific manager name; the step-up PIN
	// check iterates these candidates
	ListByPermission(ctx context.Context, permission string, managerName string) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

// RoleRepository defines the interface for role lookups
type RoleRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Role, error)
}
