package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/application/service"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/response"
)

// DishHandler handles menu item HTTP requests
type DishHandler struct {
	dishService *service.DishService
}

// NewDishHandler creates a new dish handler
func NewDishHandler(dishService *service.DishService) *DishHandler {
	return &DishHandler{dishService: dishService}
}

// List handles listing the menu, optionally filtered by category
func (h *DishHandler) List(c *gin.Context) {
	dishes, err := h.dishService.List(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dishes retrieved successfully", dishes)
}

// Create handles creating a menu item with its options and recipe
func (h *DishHandler) Create(c *gin.Context) {
	var req request.CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	options := make([]service.DishOptionInput, len(req.Options))
	for i, opt := range req.Options {
		options[i] = service.DishOptionInput{
			Name:      opt.Name,
			Surcharge: opt.Surcharge,
		}
	}

	recipe := make([]service.RecipeLineInput, len(req.Recipe))
	for i, line := range req.Recipe {
		recipe[i] = service.RecipeLineInput{
			MaterialID: line.MaterialID,
			QtyPerUnit: line.QtyPerUnit,
		}
	}

	dish, err := h.dishService.Create(c.Request.Context(), service.CreateDishInput{
		Name:        req.Name,
		Category:    req.Category,
		BasePrice:   req.BasePrice,
		Description: req.Description,
		Options:     options,
		Recipe:      recipe,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Dish created successfully", dish)
}

// Get handles getting a single dish with options and recipe
func (h *DishHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid dish ID")
		return
	}

	dish, err := h.dishService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dish retrieved successfully", dish)
}

// Update handles updating a dish
func (h *DishHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid dish ID")
		return
	}

	var req request.UpdateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	dish, err := h.dishService.Update(c.Request.Context(), id, req.BasePrice, req.Category, req.Description, req.Available)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dish updated successfully", dish)
}

// Delete handles removing a dish from the menu
func (h *DishHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid dish ID")
		return
	}

	if err := h.dishService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Dish deleted successfully", nil)
}

// AddRecipeLine handles adding one material consumption to a dish
func (h *DishHandler) AddRecipeLine(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid dish ID")
		return
	}

	var req request.RecipeLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.dishService.AddRecipeLine(c.Request.Context(), id, service.RecipeLineInput{
		MaterialID: req.MaterialID,
		QtyPerUnit: req.QtyPerUnit,
	}); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Recipe line added successfully", nil)
}
