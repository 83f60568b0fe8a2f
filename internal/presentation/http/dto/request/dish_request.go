package request

import "github.com/google/uuid"

// DishOptionRequest represents one configurable option on a dish
type DishOptionRequest struct {
	Name      string `json:"name" binding:"required"`
	Surcharge int64  `json:"surcharge" binding:"min=0"`
}

// RecipeLineRequest represents one material consumption on a dish
type RecipeLineRequest struct {
	MaterialID uuid.UUID `json:"material_id" binding:"required"`
	QtyPerUnit float64   `json:"qty_per_unit" binding:"required,gt=0"`
}

// CreateDishRequest represents a menu item creation request
type CreateDishRequest struct {
	Name        string              `json:"name" binding:"required"`
	Category    string              `json:"category"`
	BasePrice   int64               `json:"base_price" binding:"required,min=1"`
	Description string              `json:"description"`
	Options     []DishOptionRequest `json:"options" binding:"dive"`
	Recipe      []RecipeLineRequest `json:"recipe" binding:"dive"`
}

// UpdateDishRequest represents a menu item update request
type UpdateDishRequest struct {
	BasePrice   int64  `json:"base_price" binding:"required,min=1"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}
