package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/application/service"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/response"
	"github.com/sangkips/dinehub-api/pkg/pagination"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService *service.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles listing orders
func (h *OrderHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.OrderFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(statusInt)
			params.Status = &status
		}
	}

	if tableIDStr := c.Query("table_id"); tableIDStr != "" {
		if tableID, err := uuid.Parse(tableIDStr); err == nil {
			params.TableID = &tableID
		}
	}

	orders, pg, err := h.orderService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", pagination.NewPaginatedResult(orders, pg))
}

// Create handles opening a tab or extending an existing one
func (h *OrderHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	items := make([]service.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = service.OrderItemInput{
			DishID:    item.DishID,
			Quantity:  item.Quantity,
			Note:      item.Note,
			OptionIDs: item.OptionIDs,
		}
	}

	order, err := h.orderService.Create(c.Request.Context(), service.CreateOrderInput{
		TableID:       req.TableID,
		Items:         items,
		Note:          req.Note,
		Discount:      req.Discount,
		ApproverPIN:   req.ApproverPIN,
		ReservationID: req.ReservationID,
		CreatedBy:     *userID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order with its lines and invoice
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Update handles adding and removing lines on an open order
func (h *OrderHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	var req request.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	addItems := make([]service.OrderItemInput, len(req.AddItems))
	for i, item := range req.AddItems {
		addItems[i] = service.OrderItemInput{
			DishID:    item.DishID,
			Quantity:  item.Quantity,
			Note:      item.Note,
			OptionIDs: item.OptionIDs,
		}
	}

	order, err := h.orderService.Update(c.Request.Context(), id, service.UpdateOrderInput{
		AddItems:      addItems,
		RemoveLineIDs: req.RemoveLineIDs,
		Note:          req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order updated successfully", order)
}

// VoidItem handles voiding a single line with manager approval
func (h *OrderHandler) VoidItem(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	var req request.VoidItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.orderService.VoidItem(c.Request.Context(), orderID, lineID, req.Reason, req.ManagerPIN, *userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line voided successfully", nil)
}

// UpdateLineStatus handles moving a line through the kitchen pipeline
func (h *OrderHandler) UpdateLineStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	lineID, err := uuid.Parse(c.Param("line_id"))
	if err != nil {
		response.BadRequest(c, "Invalid line ID")
		return
	}

	var req request.UpdateLineStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.orderService.UpdateLineStatus(c.Request.Context(), orderID, lineID, req.Status); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Line status updated successfully", nil)
}

// Cancel handles cancelling an unpaid order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Cancel(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", nil)
}
