package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/application/service"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/response"
	"github.com/sangkips/dinehub-api/pkg/pagination"
)

// ShiftHandler handles cashier shift HTTP requests
type ShiftHandler struct {
	shiftService *service.ShiftService
}

// NewShiftHandler creates a new shift handler
func NewShiftHandler(shiftService *service.ShiftService) *ShiftHandler {
	return &ShiftHandler{shiftService: shiftService}
}

// Open handles opening a shift for the current cashier
func (h *ShiftHandler) Open(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.OpenShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	shift, err := h.shiftService.Open(c.Request.Context(), *userID, req.OpeningCash)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Shift opened successfully", shift)
}

// Close handles closing a shift and generating its Z-report
func (h *ShiftHandler) Close(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	var req request.CloseShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	report, err := h.shiftService.Close(c.Request.Context(), id, *userID, req.ActualCash)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Shift closed successfully", report)
}

// GetActive handles getting the current cashier's active shift
func (h *ShiftHandler) GetActive(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	shift, err := h.shiftService.GetActive(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active shift retrieved successfully", shift)
}

// List handles listing shifts
func (h *ShiftHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	var cashierID *uuid.UUID
	if cashierIDStr := c.Query("cashier_id"); cashierIDStr != "" {
		if id, err := uuid.Parse(cashierIDStr); err == nil {
			cashierID = &id
		}
	}

	shifts, pg, err := h.shiftService.List(c.Request.Context(), cashierID, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Shifts retrieved successfully", pagination.NewPaginatedResult(shifts, pg))
}

// GetZReport handles getting the Z-report of a closed shift
func (h *ShiftHandler) GetZReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	report, err := h.shiftService.GetZReport(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Z-report retrieved successfully", report)
}

// ExportZReport handles downloading a Z-report as CSV
func (h *ShiftHandler) ExportZReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid shift ID")
		return
	}

	data, err := h.shiftService.ExportZReportCSV(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "zreport_" + time.Now().Format("20060102") + ".csv"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "text/csv", data)
}
