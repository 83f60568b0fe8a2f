package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
)

// MaterialRepository defines the interface for material stock operations
type MaterialRepository interface {
	Create(ctx context.Context, material *entity.Material) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Material, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Material, error)
	List(ctx context.Context) ([]entity.Material, error)
	Update(ctx context.Context, material *entity.Material) error
	// Decrement subtracts qty from the material's on-hand quantity.
	// Stock MAY go negative here; admission-time sufficiency checking is
	// the ledger's responsibility, not the row update's.
	Decrement(ctx context.Context, id uuid.UUID, qty float64) error
	// AddStock is the receiving entry point (seeds and tests)
	AddStock(ctx context.Context, id uuid.UUID, qty float64) error
	ListLowStock(ctx context.Context) ([]entity.Material, error)
}

// RecipeRepository defines the interface for recipe reference data
type RecipeRepository interface {
	Create(ctx context.Context, line *entity.RecipeLine) error
	GetByDishIDs(ctx context.Context, dishIDs []uuid.UUID) ([]entity.RecipeLine, error)
}

// StockMovementRepository defines the interface for the consumption ledger
type StockMovementRepository interface {
	CreateBatch(ctx context.Context, movements []entity.StockMovement) error
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.StockMovement, error)
}
