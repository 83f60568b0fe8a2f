package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/application/service"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/response"
)

// InventoryHandler handles raw material and stock HTTP requests
type InventoryHandler struct {
	inventoryService *service.InventoryService
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// ListMaterials handles listing all raw materials
func (h *InventoryHandler) ListMaterials(c *gin.Context) {
	materials, err := h.inventoryService.ListMaterials(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Materials retrieved successfully", materials)
}

// CreateMaterial handles creating a raw material
func (h *InventoryHandler) CreateMaterial(c *gin.Context) {
	var req request.CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	material := &entity.Material{
		Name:              req.Name,
		Unit:              req.Unit,
		OnHand:            req.OnHand,
		MinThreshold:      req.MinThreshold,
		LastPurchasePrice: req.LastPurchasePrice,
	}
	if err := h.inventoryService.CreateMaterial(c.Request.Context(), material); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Material created successfully", material)
}

// UpdateMaterial handles updating a raw material
func (h *InventoryHandler) UpdateMaterial(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	var req request.UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	material := &entity.Material{
		ID:                id,
		Name:              req.Name,
		Unit:              req.Unit,
		MinThreshold:      req.MinThreshold,
		LastPurchasePrice: req.LastPurchasePrice,
	}
	if err := h.inventoryService.UpdateMaterial(c.Request.Context(), material); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Material updated successfully", material)
}

// AddStock handles recording a stock intake against a material
func (h *InventoryHandler) AddStock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid material ID")
		return
	}

	var req request.AddStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.inventoryService.AddStock(c.Request.Context(), id, req.Quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock added successfully", nil)
}

// ListMovements handles listing the stock movements recorded for an order
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	movements, err := h.inventoryService.ListMovements(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stock movements retrieved successfully", movements)
}
