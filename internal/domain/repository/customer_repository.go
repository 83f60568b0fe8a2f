package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
)

// CustomerRepository defines the interface for loyalty customer operations
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context, search string) ([]entity.Customer, error)
}

// PointHistoryRepository defines the interface for loyalty point history
type PointHistoryRepository interface {
	Create(ctx context.Context, history *entity.PointHistory) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.PointHistory, error)
}
