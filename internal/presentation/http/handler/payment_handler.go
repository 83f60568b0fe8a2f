package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/application/service"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/response"
)

// PaymentHandler handles settlement-related HTTP requests
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Pay handles settling an invoice with one or more payment methods
func (h *PaymentHandler) Pay(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.PayInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	payments := make([]service.PaymentEntry, len(req.Payments))
	for i, entry := range req.Payments {
		payments[i] = service.PaymentEntry{
			Method: entry.Method,
			Amount: entry.Amount,
		}
	}

	result, err := h.paymentService.Pay(c.Request.Context(), service.PayInput{
		InvoiceID:  invoiceID,
		Payments:   payments,
		UsePoints:  req.UsePoints,
		CustomerID: req.CustomerID,
		CashierID:  *userID,
		Note:       req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice paid successfully", result)
}

// ListByInvoice handles listing the payments recorded against an invoice
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	payments, err := h.paymentService.ListByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}
