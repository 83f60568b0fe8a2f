package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/pkg/pagination"
)

// DishRepository defines the interface for menu item operations
type DishRepository interface {
	Create(ctx context.Context, dish *entity.Dish) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Dish, error)
	// GetByIDs loads dishes with their options in a single query
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Dish, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Dish, error)
	List(ctx context.Context, category string) ([]entity.Dish, error)
	Update(ctx context.Context, dish *entity.Dish) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuditLogRepository defines the interface for the audit trail
type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	List(ctx context.Context, action string, params *pagination.PaginationParams) ([]entity.AuditLog, int64, error)
}

// SettingsRepository defines the interface for system configuration
type SettingsRepository interface {
	Get(ctx context.Context, key string) (*entity.SystemSetting, error)
	Set(ctx context.Context, key, value string) error
}

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context) error
}
