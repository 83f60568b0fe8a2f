package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
)

// VoidRequestRepository defines the interface for void request operations
type VoidRequestRepository interface {
	Create(ctx context.Context, request *entity.VoidRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.VoidRequest, error)
	// GetPendingByLine returns the line's PENDING request, if any
	GetPendingByLine(ctx context.Context, lineID uuid.UUID) (*entity.VoidRequest, error)
	Update(ctx context.Context, request *entity.VoidRequest) error
	ListByStatus(ctx context.Context, status *enum.VoidStatus) ([]entity.VoidRequest, error)
	// DeleteByLineIDs removes requests targeting the given lines; called
	// before merge deletes source lines to satisfy referential constraints
	DeleteByLineIDs(ctx context.Context, lineIDs []uuid.UUID) error
}
