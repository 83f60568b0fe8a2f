package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	domainRepo "github.com/sangkips/dinehub-api/internal/domain/repository"
	"gorm.io/gorm"
)

type voidRequestRepository struct {
	db *gorm.DB
}

// NewVoidRequestRepository creates a new void request repository
func NewVoidRequestRepository(db *gorm.DB) domainRepo.VoidRequestRepository {
	return &voidRequestRepository{db: db}
}

func (r *voidRequestRepository) Create(ctx context.Context, request *entity.VoidRequest) error {
	return conn(ctx, r.db).Create(request).Error
}

func (r *voidRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.VoidRequest, error) {
	var request entity.VoidRequest
	err := conn(ctx, r.db).
		Preload("OrderLine").
		First(&request, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &request, err
}

func (r *voidRequestRepository) GetPendingByLine(ctx context.Context, lineID uuid.UUID) (*entity.VoidRequest, error) {
	var request entity.VoidRequest
	err := conn(ctx, r.db).
		Where("order_line_id = ? AND status = ?", lineID, enum.VoidStatusPending).
		First(&request).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &request, err
}

func (r *voidRequestRepository) Update(ctx context.Context, request *entity.VoidRequest) error {
	return conn(ctx, r.db).Save(request).Error
}

func (r *voidRequestRepository) ListByStatus(ctx context.Context, status *enum.VoidStatus) ([]entity.VoidRequest, error) {
	var requests []entity.VoidRequest
	query := conn(ctx, r.db).Preload("OrderLine").Preload("OrderLine.Dish")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *voidRequestRepository) DeleteByLineIDs(ctx context.Context, lineIDs []uuid.UUID) error {
	if len(lineIDs) == 0 {
		return nil
	}
	return conn(ctx, r.db).Delete(&entity.VoidRequest{}, "order_line_id IN ?", lineIDs).Error
}
