package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	domainRepo "github.com/sangkips/dinehub-api/internal/domain/repository"
	"gorm.io/gorm"
)

type tableRepository struct {
	db *gorm.DB
}

// NewTableRepository creates a new table repository
func NewTableRepository(db *gorm.DB) domainRepo.TableRepository {
	return &tableRepository{db: db}
}

func (r *tableRepository) Create(ctx context.Context, table *entity.Table) error {
	return conn(ctx, r.db).Create(table).Error
}

func (r *tableRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	var table entity.Table
	err := conn(ctx, r.db).First(&table, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Table, error) {
	var table entity.Table
	err := forUpdate(conn(ctx, r.db)).First(&table, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) GetByNumber(ctx context.Context, number int) (*entity.Table, error) {
	var table entity.Table
	err := conn(ctx, r.db).First(&table, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &table, err
}

func (r *tableRepository) List(ctx context.Context) ([]entity.Table, error) {
	var tables []entity.Table
	err := conn(ctx, r.db).Order("number ASC").Find(&tables).Error
	return tables, err
}

func (r *tableRepository) Update(ctx context.Context, table *entity.Table) error {
	return conn(ctx, r.db).Save(table).Error
}

func (r *tableRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.TableStatus) error {
	return conn(ctx, r.db).Model(&entity.Table{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *tableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Table{}, "id = ?", id).Error
}

type reservationRepository struct {
	db *gorm.DB
}

// NewReservationRepository creates a new reservation repository
func NewReservationRepository(db *gorm.DB) domainRepo.ReservationRepository {
	return &reservationRepository{db: db}
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	return conn(ctx, r.db).Create(reservation).Error
}

func (r *reservationRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	var reservation entity.Reservation
	err := conn(ctx, r.db).First(&reservation, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &reservation, err
}

func (r *reservationRepository) FindConflicting(ctx context.Context, tableID uuid.UUID, start, end time.Time) ([]entity.Reservation, error) {
	var reservations []entity.Reservation
	err := conn(ctx, r.db).
		Where("table_id = ? AND cancelled = ? AND reserved_at BETWEEN ? AND ?",
			tableID, false, start, end).
		Order("reserved_at ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) List(ctx context.Context, tableID *uuid.UUID) ([]entity.Reservation, error) {
	var reservations []entity.Reservation
	query := conn(ctx, r.db).Where("cancelled = ?", false)
	if tableID != nil {
		query = query.Where("table_id = ?", *tableID)
	}
	err := query.Order("reserved_at ASC").Find(&reservations).Error
	return reservations, err
}

func (r *reservationRepository) Update(ctx context.Context, reservation *entity.Reservation) error {
	return conn(ctx, r.db).Save(reservation).Error
}
