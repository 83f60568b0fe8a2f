package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/pkg/pagination"
)

// OrderFilterParams holds filtering options for listing orders
type OrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.OrderStatus
	TableID    *uuid.UUID
}

// OrderRepository defines the interface for order operations
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetWithLines loads the order with its lines, line options and invoice
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	// GetActiveByTable returns the table's non-terminal order, if any
	GetActiveByTable(ctx context.Context, tableID uuid.UUID) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *OrderFilterParams) ([]entity.Order, int64, error)
}

// OrderLineRepository defines the interface for order line operations
type OrderLineRepository interface {
	CreateBatch(ctx context.Context, lines []entity.OrderLine) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.OrderLine, error)
	GetByOrderID(ctx context.Context, orderID uuid.UUID) ([]entity.OrderLine, error)
	Update(ctx context.Context, line *entity.OrderLine) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.LineStatus) error
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
	// MoveToOrder reparents the given lines onto another order
	MoveToOrder(ctx context.Context, lineIDs []uuid.UUID, orderID uuid.UUID) error
}
