package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/pkg/pagination"
)

// ShiftRepository defines the interface for cash-register sessions
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error)
	// GetActiveByCashier returns the cashier's ACTIVE shift, if any.
	// Inside a transaction the row is locked so two concurrent opens or
	// closes for the same cashier serialize.
	GetActiveByCashier(ctx context.Context, cashierID uuid.UUID) (*entity.Shift, error)
	Update(ctx context.Context, shift *entity.Shift) error
	List(ctx context.Context, cashierID *uuid.UUID, params *pagination.PaginationParams) ([]entity.Shift, int64, error)
}

// ZReportRepository defines the interface for shift audit snapshots
type ZReportRepository interface {
	Create(ctx context.Context, report *entity.ZReport) error
	GetByShiftID(ctx context.Context, shiftID uuid.UUID) (*entity.ZReport, error)
}
