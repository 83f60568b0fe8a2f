package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/pkg/apperror"
	"github.com/sangkips/dinehub-api/pkg/pagination"
	"golang.org/x/crypto/bcrypt"
)

// Permissions gating step-up authorized actions
const (
	PermissionVoidItems      = "void-items"
	PermissionApproveVoids   = "approve-voids"
	PermissionApplyDiscounts = "apply-discounts"
)

// ApprovalService implements the step-up "manager PIN" check layered
// on top of route-level permissions. The PIN is verified against the
// password hashes of accounts holding the required permission; the
// first matching account is the approver of record.
type ApprovalService struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
}

// NewApprovalService creates a new approval service
func NewApprovalService(userRepo repository.UserRepository, auditRepo repository.AuditLogRepository) *ApprovalService {
	return &ApprovalService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

// VerifyPIN returns the approver of record for the given PIN, or an
// unauthorized error if no permission-holding account matches.
// managerName optionally scopes the check to one named manager.
func (s *ApprovalService) VerifyPIN(ctx context.Context, pin, permission, managerName string) (*entity.User, error) {
	if pin == "" {
		return nil, apperror.NewUnauthorizedError("Approval PIN is required")
	}

	candidates, err := s.userRepo.ListByPermission(ctx, permission, managerName)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		if bcrypt.CompareHashAndPassword([]byte(candidates[i].Password), []byte(pin)) == nil {
			return &candidates[i], nil
		}
	}

	return nil, apperror.NewUnauthorizedError("Approval PIN does not match any authorized approver")
}

// RecordApproval writes the audit entry for a step-up authorized
// action, capturing both the original requester and the approver
func (s *ApprovalService) RecordApproval(ctx context.Context, action string, requestedBy uuid.UUID, approver *entity.User, targetID *uuid.UUID, detail string) error {
	approvedBy := approver.ID
	return s.auditRepo.Create(ctx, &entity.AuditLog{
		Action:      action,
		RequestedBy: requestedBy,
		ApprovedBy:  &approvedBy,
		TargetID:    targetID,
		Detail:      detail,
	})
}

// ListAudit returns audit entries, optionally filtered by action
func (s *ApprovalService) ListAudit(ctx context.Context, action string, params *pagination.PaginationParams) ([]entity.AuditLog, *pagination.Pagination, error) {
	params.Validate()
	logs, total, err := s.auditRepo.List(ctx, action, params)
	if err != nil {
		return nil, nil, err
	}
	return logs, pagination.NewPagination(params.Page, params.PerPage, total), nil
}
