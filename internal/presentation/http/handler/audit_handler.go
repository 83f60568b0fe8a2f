package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/dinehub-api/internal/application/service"
	"github.com/sangkips/dinehub-api/internal/presentation/http/dto/response"
	"github.com/sangkips/dinehub-api/pkg/pagination"
)

// AuditHandler handles approval audit trail HTTP requests
type AuditHandler struct {
	approvalService *service.ApprovalService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(approvalService *service.ApprovalService) *AuditHandler {
	return &AuditHandler{approvalService: approvalService}
}

// List handles listing audit entries, optionally filtered by action
func (h *AuditHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &pagination.PaginationParams{
		Page:    page,
		PerPage: perPage,
	}

	logs, pg, err := h.approvalService.ListAudit(c.Request.Context(), c.Query("action"), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Audit entries retrieved successfully", pagination.NewPaginatedResult(logs, pg))
}
