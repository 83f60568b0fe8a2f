package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
)

// TableRepository defines the interface for dining table operations
type TableRepository interface {
	Create(ctx context.Context, table *entity.Table) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error)
	// GetByIDForUpdate row-locks the table inside the current transaction
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Table, error)
	GetByNumber(ctx context.Context, number int) (*entity.Table, error)
	List(ctx context.Context) ([]entity.Table, error)
	Update(ctx context.Context, table *entity.Table) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TableStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReservationRepository defines the interface for reservation operations
type ReservationRepository interface {
	Create(ctx context.Context, reservation *entity.Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)
	// FindConflicting returns active reservations for the table whose
	// slot falls inside [start, end]
	FindConflicting(ctx context.Context, tableID uuid.UUID, start, end time.Time) ([]entity.Reservation, error)
	List(ctx context.Context, tableID *uuid.UUID) ([]entity.Reservation, error)
	Update(ctx context.Context, reservation *entity.Reservation) error
}
