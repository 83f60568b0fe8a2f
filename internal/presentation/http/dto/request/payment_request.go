package request

import (
	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
)

// PaymentEntryRequest represents one tendered amount in a settlement
type PaymentEntryRequest struct {
	Method enum.PaymentMethod `json:"method"`
	Amount int64              `json:"amount" binding:"required,min=1"`
}

// PayInvoiceRequest represents an invoice settlement request
type PayInvoiceRequest struct {
	Payments   []PaymentEntryRequest `json:"payments" binding:"dive"`
	UsePoints  int64                 `json:"use_points" binding:"min=0"`
	CustomerID *uuid.UUID            `json:"customer_id"`
	Note       string                `json:"note"`
}
