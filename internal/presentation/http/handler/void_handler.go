package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/application/service"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/response"
)

// VoidHandler handles void request HTTP endpoints
type VoidHandler struct {
	voidService *service.VoidService
}

// NewVoidHandler creates a new void handler
func NewVoidHandler(voidService *service.VoidService) *VoidHandler {
	return &VoidHandler{voidService: voidService}
}

// Create handles submitting a void request for manager review
func (h *VoidHandler) Create(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateVoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	voidReq, err := h.voidService.CreateRequest(c.Request.Context(), req.OrderID, req.LineID, req.Reason, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Void request submitted successfully", voidReq)
}

// Approve handles approving a pending void request
func (h *VoidHandler) Approve(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid void request ID")
		return
	}

	var req request.ApproveVoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	voidReq, err := h.voidService.Approve(c.Request.Context(), id, req.ManagerPIN, req.Note)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Void request approved successfully", voidReq)
}

// Reject handles rejecting a pending void request
func (h *VoidHandler) Reject(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid void request ID")
		return
	}

	var req request.RejectVoidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	voidReq, err := h.voidService.Reject(c.Request.Context(), id, req.Note, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Void request rejected successfully", voidReq)
}

// List handles listing void requests, optionally filtered by status
func (h *VoidHandler) List(c *gin.Context) {
	var status *enum.VoidStatus
	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			s := enum.VoidStatus(statusInt)
			status = &s
		}
	}

	requests, err := h.voidService.List(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Void requests retrieved successfully", requests)
}
