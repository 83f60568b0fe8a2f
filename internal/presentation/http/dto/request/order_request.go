package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
)

// OrderItemRequest represents one dish on an order request
type OrderItemRequest struct {
	DishID    uuid.UUID   `json:"dish_id" binding:"required"`
	Quantity  int         `json:"quantity" binding:"required,min=1"`
	Note      string      `json:"note"`
	OptionIDs []uuid.UUID `json:"option_ids"`
}

// CreateOrderRequest represents an order creation request
type CreateOrderRequest struct {
	TableID       uuid.UUID          `json:"table_id" binding:"required"`
	Items         []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	Note          string             `json:"note"`
	Discount      int64              `json:"discount" binding:"min=0"`
	ApproverPIN   string             `json:"approver_pin"`
	ReservationID *uuid.UUID         `json:"reservation_id"`
}

// UpdateOrderRequest represents an order modification request
type UpdateOrderRequest struct {
	AddItems      []OrderItemRequest `json:"add_items" binding:"dive"`
	RemoveLineIDs []uuid.UUID        `json:"remove_line_ids"`
	Note          *string            `json:"note"`
}

// VoidItemRequest represents a direct line void with manager approval
type VoidItemRequest struct {
	Reason     string `json:"reason" binding:"required"`
	ManagerPIN string `json:"manager_pin" binding:"required"`
}

// UpdateLineStatusRequest represents a kitchen line status change
type UpdateLineStatusRequest struct {
	Status enum.LineStatus `json:"status"`
}
