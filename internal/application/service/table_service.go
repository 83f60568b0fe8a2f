package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/internal/realtime"
	"github.com/sangkips/dinehub-api/pkg/apperror"
)

// TableService manages the floor plan
type TableService struct {
	tableRepo repository.TableRepository
	orderRepo repository.OrderRepository
	publisher realtime.Publisher
}

// NewTableService creates a new table service
func NewTableService(tableRepo repository.TableRepository, orderRepo repository.OrderRepository, publisher realtime.Publisher) *TableService {
	return &TableService{
		tableRepo: tableRepo,
		orderRepo: orderRepo,
		publisher: publisher,
	}
}

// Create registers a new table with a unique floor number
func (s *TableService) Create(ctx context.Context, number, capacity int) (*entity.Table, error) {
	if number <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "number", Message: "must be greater than zero"},
		})
	}

	existing, err := s.tableRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Table number already in use", existing)
	}

	table := &entity.Table{Number: number, Capacity: capacity, Status: enum.TableStatusEmpty}
	if err := s.tableRepo.Create(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// Get returns one table
func (s *TableService) Get(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	table, err := s.tableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	return table, nil
}

// List returns all tables
func (s *TableService) List(ctx context.Context) ([]entity.Table, error) {
	return s.tableRepo.List(ctx)
}

// Update changes a table's number and capacity
func (s *TableService) Update(ctx context.Context, id uuid.UUID, number, capacity int) (*entity.Table, error) {
	table, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if number != table.Number {
		existing, err := s.tableRepo.GetByNumber(ctx, number)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Table number already in use", existing)
		}
		table.Number = number
	}
	table.Capacity = capacity

	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, err
	}
	return table, nil
}

// UpdateStatus moves the table through the floor flow and notifies
// the board. AWAITING_PAYMENT and NEEDS_CLEANING are set here by
// waitstaff; EMPTY/OCCUPIED transitions normally come from order and
// payment flows.
func (s *TableService) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TableStatus) (*entity.Table, error) {
	table, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if status == enum.TableStatusEmpty {
		active, err := s.orderRepo.GetActiveByTable(ctx, id)
		if err != nil {
			return nil, err
		}
		if active != nil {
			return nil, apperror.NewInvalidStateError("Table still has an open order")
		}
	}

	table.Status = status
	if err := s.tableRepo.Update(ctx, table); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, realtime.ChannelTables,
		realtime.NewEvent(realtime.EventTableChanged, map[string]interface{}{
			"table_id": id,
			"status":   status.String(),
		}))
	return table, nil
}

// Delete removes a table without an active order
func (s *TableService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	active, err := s.orderRepo.GetActiveByTable(ctx, id)
	if err != nil {
		return err
	}
	if active != nil {
		return apperror.NewInvalidStateError("Table still has an open order")
	}

	return s.tableRepo.Delete(ctx, id)
}
