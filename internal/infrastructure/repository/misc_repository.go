package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type dishRepository struct {
	db *gorm.DB
}

// NewDishRepository creates a new dish repository
func NewDishRepository(db *gorm.DB) domainRepo.DishRepository {
	return &dishRepository{db: db}
}

func (r *dishRepository) Create(ctx context.Context, dish *entity.Dish) error {
	return conn(ctx, r.db).Create(dish).Error
}

func (r *dishRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Dish, error) {
	var dish entity.Dish
	err := conn(ctx, r.db).
		Preload("Options").
		Preload("Recipe").
		First(&dish, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &dish, err
}

func (r *dishRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Dish, error) {
	var dishes []entity.Dish
	err := conn(ctx, r.db).
		Preload("Options").
		Where("id IN ?", ids).
		Find(&dishes).Error
	return dishes, err
}

func (r *dishRepository) GetBySlug(ctx context.Context, slug string) (*entity.Dish, error) {
	var dish entity.Dish
	err := conn(ctx, r.db).
		Preload("Options").
		First(&dish, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &dish, err
}

func (r *dishRepository) List(ctx context.Context, category string) ([]entity.Dish, error) {
	var dishes []entity.Dish
	query := conn(ctx, r.db).Preload("Options").Order("category, name")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	err := query.Find(&dishes).Error
	return dishes, err
}

func (r *dishRepository) Update(ctx context.Context, dish *entity.Dish) error {
	return conn(ctx, r.db).Save(dish).Error
}

func (r *dishRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return conn(ctx, r.db).Delete(&entity.Dish{}, "id = ?", id).Error
}

type auditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new audit log repository
func NewAuditLogRepository(db *gorm.DB) domainRepo.AuditLogRepository {
	return &auditLogRepository{db: db}
}

func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	return conn(ctx, r.db).Create(log).Error
}

func (r *auditLogRepository) List(ctx context.Context, action string, params *pagination.PaginationParams) ([]entity.AuditLog, int64, error) {
	var logs []entity.AuditLog
	var total int64

	query := conn(ctx, r.db).Model(&entity.AuditLog{})
	if action != "" {
		query = query.Where("action = ?", action)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&logs).Error
	return logs, total, err
}

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) domainRepo.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, key string) (*entity.SystemSetting, error) {
	var setting entity.SystemSetting
	err := conn(ctx, r.db).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &setting, err
}

func (r *settingsRepository) Set(ctx context.Context, key, value string) error {
	setting := entity.SystemSetting{Key: key, Value: value}
	return conn(ctx, r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&setting).Error
}
