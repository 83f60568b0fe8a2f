package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/pkg/apperror"
	"github.com/sangkips/dinehub-api/pkg/utils"
)

// DishOptionInput is one selectable add-on on a new dish
type DishOptionInput struct {
	Name      string
	Surcharge int64
}

// RecipeLineInput maps one material consumption on a new dish
type RecipeLineInput struct {
	MaterialID uuid.UUID
	QtyPerUnit float64
}

// CreateDishInput carries a new menu item
type CreateDishInput struct {
	Name        string
	Category    string
	BasePrice   int64
	Description string
	Options     []DishOptionInput
	Recipe      []RecipeLineInput
}

// DishService manages the menu and its recipes
type DishService struct {
	dishRepo   repository.DishRepository
	recipeRepo repository.RecipeRepository
}

// NewDishService creates a new dish service
func NewDishService(dishRepo repository.DishRepository, recipeRepo repository.RecipeRepository) *DishService {
	return &DishService{
		dishRepo:   dishRepo,
		recipeRepo: recipeRepo,
	}
}

// Create adds a menu item with its options and recipe
func (s *DishService) Create(ctx context.Context, input CreateDishInput) (*entity.Dish, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "is required"},
		})
	}
	if input.BasePrice <= 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "base_price", Message: "must be greater than zero"},
		})
	}

	slug := utils.Slugify(input.Name)
	existing, err := s.dishRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A dish with this name already exists", existing)
	}

	dish := &entity.Dish{
		Name:        input.Name,
		Slug:        slug,
		Category:    input.Category,
		BasePrice:   input.BasePrice,
		Description: input.Description,
		Available:   true,
	}
	for _, option := range input.Options {
		dish.Options = append(dish.Options, entity.DishOption{
			Name:      option.Name,
			Surcharge: option.Surcharge,
		})
	}
	for _, line := range input.Recipe {
		dish.Recipe = append(dish.Recipe, entity.RecipeLine{
			MaterialID: line.MaterialID,
			QtyPerUnit: line.QtyPerUnit,
		})
	}

	if err := s.dishRepo.Create(ctx, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

// Get returns one dish with options and recipe
func (s *DishService) Get(ctx context.Context, id uuid.UUID) (*entity.Dish, error) {
	dish, err := s.dishRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if dish == nil {
		return nil, apperror.NewNotFoundError("Dish")
	}
	return dish, nil
}

// List returns the menu, optionally filtered by category
func (s *DishService) List(ctx context.Context, category string) ([]entity.Dish, error) {
	return s.dishRepo.List(ctx, category)
}

// Update changes a dish's price, category, description or availability.
// Existing order lines keep their captured prices.
func (s *DishService) Update(ctx context.Context, id uuid.UUID, basePrice int64, category, description string, available bool) (*entity.Dish, error) {
	dish, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if basePrice > 0 {
		dish.BasePrice = basePrice
	}
	if category != "" {
		dish.Category = category
	}
	if description != "" {
		dish.Description = description
	}
	dish.Available = available

	if err := s.dishRepo.Update(ctx, dish); err != nil {
		return nil, err
	}
	return dish, nil
}

// Delete removes a dish from the menu
func (s *DishService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.dishRepo.Delete(ctx, id)
}

// AddRecipeLine appends one material consumption to a dish's recipe
func (s *DishService) AddRecipeLine(ctx context.Context, dishID uuid.UUID, input RecipeLineInput) error {
	if input.QtyPerUnit <= 0 {
		return apperror.NewValidationError([]apperror.FieldError{
			{Field: "qty_per_unit", Message: "must be greater than zero"},
		})
	}
	if _, err := s.Get(ctx, dishID); err != nil {
		return err
	}
	return s.recipeRepo.Create(ctx, &entity.RecipeLine{
		DishID:     dishID,
		MaterialID: input.MaterialID,
		QtyPerUnit: input.QtyPerUnit,
	})
}
