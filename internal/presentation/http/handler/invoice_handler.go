package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/application/service"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/request"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/response"
	"github.com/sangkips/dinehub-api/pkg/pagination"
)

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.InvoiceFilterParams{
		Pagination: &pagination.PaginationParams{
			Page:    page,
			PerPage: perPage,
		},
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if statusInt, err := strconv.Atoi(statusStr); err == nil {
			status := enum.InvoiceStatus(statusInt)
			params.Status = &status
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			params.EndDate = &endDate
		}
	}

	invoices, pg, err := h.invoiceService.List(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Invoices retrieved successfully", pagination.NewPaginatedResult(invoices, pg))
}

// Get handles getting a single invoice with lines and payments
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetDetails(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Print handles building the receipt projection for an invoice
func (h *InvoiceHandler) Print(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	data, err := h.invoiceService.GetPrintData(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt data retrieved successfully", data)
}

// SplitByItems handles moving selected lines onto a new bill
func (h *InvoiceHandler) SplitByItems(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.SplitByItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.SplitByItems(c.Request.Context(), id, req.LineIDs, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice split successfully", invoice)
}

// SplitByPeople handles splitting a bill into equal shares
func (h *InvoiceHandler) SplitByPeople(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req request.SplitByPeopleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoices, err := h.invoiceService.SplitByPeople(c.Request.Context(), id, req.People, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice split successfully", invoices)
}

// Merge handles merging open invoices on the same table into one bill
func (h *InvoiceHandler) Merge(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.MergeInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoiceService.MergeInvoices(c.Request.Context(), req.InvoiceIDs, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoices merged successfully", invoice)
}

// ExportCSV handles exporting invoices as a CSV download
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	start, end := parseDateRange(c)

	data, err := h.invoiceService.ExportCSV(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "invoices_" + time.Now().Format("20060102") + ".csv"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "text/csv", data)
}

// ExportXLSX handles exporting invoices as an Excel download
func (h *InvoiceHandler) ExportXLSX(c *gin.Context) {
	start, end := parseDateRange(c)

	data, err := h.invoiceService.ExportXLSX(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := "invoices_" + time.Now().Format("20060102") + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func parseDateRange(c *gin.Context) (*time.Time, *time.Time) {
	var start, end *time.Time
	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			start = &startDate
		}
	}
	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			end = &endDate
		}
	}
	return start, end
}
