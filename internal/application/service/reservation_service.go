package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/config"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/pkg/apperror"
)

// CreateReservationInput carries a booking request
type CreateReservationInput struct {
	TableID    uuid.UUID
	GuestName  string
	GuestPhone string
	PartySize  int
	ReservedAt time.Time
}

// ReservationService books tables and keeps slots from overlapping
// inside the configured window
type ReservationService struct {
	reservationRepo repository.ReservationRepository
	tableRepo       repository.TableRepository
	pos             config.POSConfig
}

// NewReservationService creates a new reservation service
func NewReservationService(reservationRepo repository.ReservationRepository, tableRepo repository.TableRepository, pos config.POSConfig) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		pos:             pos,
	}
}

// Create books a table. Slots closer than the reservation window to an
// existing booking on the same table are rejected with the conflicting
// reservation attached.
func (s *ReservationService) Create(ctx context.Context, input CreateReservationInput) (*entity.Reservation, error) {
	if input.GuestName == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "guest_name", Message: "is required"},
		})
	}
	if input.ReservedAt.Before(time.Now()) {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "reserved_at", Message: "must be in the future"},
		})
	}

	table, err := s.tableRepo.GetByID(ctx, input.TableID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, apperror.NewNotFoundError("Table")
	}
	if input.PartySize > table.Capacity {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "party_size", Message: "exceeds table capacity"},
		})
	}

	conflicts, err := s.reservationRepo.FindConflicting(ctx, table.ID,
		input.ReservedAt.Add(-s.pos.ReservationWindow), input.ReservedAt.Add(s.pos.ReservationWindow))
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return nil, apperror.NewConflictError("Table is already booked around that time", conflicts[0])
	}

	reservation := &entity.Reservation{
		TableID:    table.ID,
		GuestName:  input.GuestName,
		GuestPhone: input.GuestPhone,
		PartySize:  input.PartySize,
		ReservedAt: input.ReservedAt,
	}
	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, err
	}

	// A booking inside the window flags the table on the floor board
	// right away.
	if table.Status == enum.TableStatusEmpty &&
		time.Until(input.ReservedAt) <= s.pos.ReservationWindow {
		if err := s.tableRepo.UpdateStatus(ctx, table.ID, enum.TableStatusReserved); err != nil {
			return nil, err
		}
	}

	return reservation, nil
}

// Cancel cancels a booking and releases the table if it was only held
// for this reservation
func (s *ReservationService) Cancel(ctx context.Context, id uuid.UUID) error {
	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if reservation == nil {
		return apperror.NewNotFoundError("Reservation")
	}
	if reservation.Cancelled {
		return apperror.NewInvalidStateError("Reservation is already cancelled")
	}

	reservation.Cancelled = true
	if err := s.reservationRepo.Update(ctx, reservation); err != nil {
		return err
	}

	table, err := s.tableRepo.GetByID(ctx, reservation.TableID)
	if err != nil {
		return err
	}
	if table != nil && table.Status == enum.TableStatusReserved {
		now := time.Now()
		remaining, err := s.reservationRepo.FindConflicting(ctx, table.ID,
			now.Add(-s.pos.ReservationWindow), now.Add(s.pos.ReservationWindow))
		if err != nil {
			return err
		}
		if len(remaining) == 0 {
			return s.tableRepo.UpdateStatus(ctx, table.ID, enum.TableStatusEmpty)
		}
	}
	return nil
}

// List returns bookings, optionally filtered to one table
func (s *ReservationService) List(ctx context.Context, tableID *uuid.UUID) ([]entity.Reservation, error) {
	return s.reservationRepo.List(ctx, tableID)
}
