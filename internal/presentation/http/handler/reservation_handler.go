package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/application/service"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/response"
)

// ReservationHandler handles table booking HTTP requests
type ReservationHandler struct {
	reservationService *service.ReservationService
}

// NewReservationHandler creates a new reservation handler
func NewReservationHandler(reservationService *service.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// Create handles booking a table
func (h *ReservationHandler) Create(c *gin.Context) {
	tableID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid table ID")
		return
	}

	var req request.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	reservation, err := h.reservationService.Create(c.Request.Context(), service.CreateReservationInput{
		TableID:    tableID,
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		PartySize:  req.PartySize,
		ReservedAt: req.ReservedAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Reservation created successfully", reservation)
}

// Cancel handles cancelling a reservation
func (h *ReservationHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid reservation ID")
		return
	}

	if err := h.reservationService.Cancel(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservation cancelled successfully", nil)
}

// List handles listing reservations, optionally filtered by table
func (h *ReservationHandler) List(c *gin.Context) {
	var tableID *uuid.UUID
	if tableIDStr := c.Query("table_id"); tableIDStr != "" {
		if id, err := uuid.Parse(tableIDStr); err == nil {
			tableID = &id
		}
	}

	reservations, err := h.reservationService.List(c.Request.Context(), tableID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Reservations retrieved successfully", reservations)
}
