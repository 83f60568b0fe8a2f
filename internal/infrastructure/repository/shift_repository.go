package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	domainRepo "github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/pkg/pagination"
	"gorm.io/gorm"
)

type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift repository
func NewShiftRepository(db *gorm.DB) domainRepo.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) Create(ctx context.Context, shift *entity.Shift) error {
	return conn(ctx, r.db).Create(shift).Error
}

func (r *shiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := conn(ctx, r.db).Preload("ZReport").First(&shift, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) GetActiveByCashier(ctx context.Context, cashierID uuid.UUID) (*entity.Shift, error) {
	var shift entity.Shift
	err := forUpdate(conn(ctx, r.db)).
		Where("cashier_id = ? AND status = ?", cashierID, enum.ShiftStatusActive).
		First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &shift, err
}

func (r *shiftRepository) Update(ctx context.Context, shift *entity.Shift) error {
	return conn(ctx, r.db).Save(shift).Error
}

func (r *shiftRepository) List(ctx context.Context, cashierID *uuid.UUID, params *pagination.PaginationParams) ([]entity.Shift, int64, error) {
	var shifts []entity.Shift
	var total int64

	query := conn(ctx, r.db).Model(&entity.Shift{})
	if cashierID != nil {
		query = query.Where("cashier_id = ?", *cashierID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("ZReport").
		Order("opened_at DESC").
		Find(&shifts).Error

	return shifts, total, err
}

type zReportRepository struct {
	db *gorm.DB
}

// NewZReportRepository creates a new Z-report repository
func NewZReportRepository(db *gorm.DB) domainRepo.ZReportRepository {
	return &zReportRepository{db: db}
}

func (r *zReportRepository) Create(ctx context.Context, report *entity.ZReport) error {
	return conn(ctx, r.db).Create(report).Error
}

func (r *zReportRepository) GetByShiftID(ctx context.Context, shiftID uuid.UUID) (*entity.ZReport, error) {
	var report entity.ZReport
	err := conn(ctx, r.db).
		Preload("Lines").
		First(&report, "shift_id = ?", shiftID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &report, err
}
