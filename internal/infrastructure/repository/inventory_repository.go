package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	domainRepo "github.com/sangkips/dinehub-api/internal/domain/repository"
	"gorm.io/gorm"
)

type materialRepository struct {
	db *gorm.DB
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db *gorm.DB) domainRepo.MaterialRepository {
	return &materialRepository{db: db}
}

func (r *materialRepository) Create(ctx context.Context, material *entity.Material) error {
	return conn(ctx, r.db).Create(material).Error
}

func (r *materialRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Material, error) {
	var material entity.Material
	err := conn(ctx, r.db).First(&material, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &material, err
}

func (r *materialRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Material, error) {
	if len(ids) == 0 {
		return []entity.Material{}, nil
	}
	var materials []entity.Material
	err := conn(ctx, r.db).Where("id IN ?", ids).Find(&materials).Error
	return materials, err
}

func (r *materialRepository) List(ctx context.Context) ([]entity.Material, error) {
	var materials []entity.Material
	err := conn(ctx, r.db).Order("name ASC").Find(&materials).Error
	return materials, err
}

func (r *materialRepository) Update(ctx context.Context, material *entity.Material) error {
	return conn(ctx, r.db).Save(material).Error
}

func (r *materialRepository) Decrement(ctx context.Context, id uuid.UUID, qty float64) error {
	return conn(ctx, r.db).Model(&entity.Material{}).
		Where("id = ?", id).
		Update("on_hand", gorm.Expr("on_hand - ?", qty)).Error
}

func (r *materialRepository) AddStock(ctx context.Context, id uuid.UUID, qty float64) error {
	return conn(ctx, r.db).Model(&entity.Material{}).
		Where("id = ?", id).
		Update("on_hand", gorm.Expr("on_hand + ?", qty)).Error
}

func (r *materialRepository) ListLowStock(ctx context.Context) ([]entity.Material, error) {
	var materials []entity.Material
	err := conn(ctx, r.db).
		Where("on_hand <= min_threshold").
		Order("name ASC").
		Find(&materials).Error
	return materials, err
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) domainRepo.RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, line *entity.RecipeLine) error {
	return conn(ctx, r.db).Create(line).Error
}

func (r *recipeRepository) GetByDishIDs(ctx context.Context, dishIDs []uuid.UUID) ([]entity.RecipeLine, error) {
	if len(dishIDs) == 0 {
		return []entity.RecipeLine{}, nil
	}
	var lines []entity.RecipeLine
	err := conn(ctx, r.db).
		Preload("Material").
		Where("dish_id IN ?", dishIDs).
		Find(&lines).Error
	return lines, err
}

type stockMovementRepository struct {
	db *gorm.DB
}

// NewStockMovementRepository creates a new stock movement repository
func NewStockMovementRepository(db *gorm.DB) domainRepo.StockMovementRepository {
	return &stockMovementRepository{db: db}
}

func (r *stockMovementRepository) CreateBatch(ctx context.Context, movements []entity.StockMovement) error {
	if len(movements) == 0 {
		return nil
	}
	return conn(ctx, r.db).Create(&movements).Error
}

func (r *stockMovementRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entity.StockMovement, error) {
	var movements []entity.StockMovement
	err := conn(ctx, r.db).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&movements).Error
	return movements, err
}
