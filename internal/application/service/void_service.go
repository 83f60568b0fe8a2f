package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/internal/realtime"
	"github.com/sangkips/dinehub-api/pkg/apperror"
)

// VoidService runs the request/approve/reject void workflow for staff
// without the immediate void permission. Requests are PENDING until a
// manager decides; both outcomes are terminal.
type VoidService struct {
	txManager repository.TxManager
	voidRepo  repository.VoidRequestRepository
	orderRepo repository.OrderRepository
	lineRepo  repository.OrderLineRepository
	invoices  *InvoiceService
	approval  *ApprovalService
	publisher realtime.Publisher
}

// NewVoidService creates a new void service
func NewVoidService(
	txManager repository.TxManager,
	voidRepo repository.VoidRequestRepository,
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	invoices *InvoiceService,
	approval *ApprovalService,
	publisher realtime.Publisher,
) *VoidService {
	return &VoidService{
		txManager: txManager,
		voidRepo:  voidRepo,
		orderRepo: orderRepo,
		lineRepo:  lineRepo,
		invoices:  invoices,
		approval:  approval,
		publisher: publisher,
	}
}

// CreateRequest opens a void request for a line. The line must still
// be voidable and must not already have a pending request.
func (s *VoidService) CreateRequest(ctx context.Context, orderID, lineID uuid.UUID, reason string, requestedBy uuid.UUID) (*entity.VoidRequest, error) {
	if reason == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "reason", Message: "is required"},
		})
	}

	var request *entity.VoidRequest

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		line, err := s.lineRepo.GetByID(ctx, lineID)
		if err != nil {
			return err
		}
		if line == nil || line.OrderID != orderID {
			return apperror.NewNotFoundError("Order line")
		}
		if line.Status == enum.LineStatusVoided {
			return apperror.NewInvalidStateError("Line is already voided")
		}
		if !line.Status.Voidable() {
			return apperror.NewInvalidStateError(
				"Line in status " + line.Status.String() + " cannot be voided")
		}

		pending, err := s.voidRepo.GetPendingByLine(ctx, lineID)
		if err != nil {
			return err
		}
		if pending != nil {
			return apperror.NewInvalidStateError("A pending void request already exists for this line")
		}

		request = &entity.VoidRequest{
			OrderID:     orderID,
			OrderLineID: lineID,
			Reason:      reason,
			RequestedBy: requestedBy,
			Status:      enum.VoidStatusPending,
		}
		return s.voidRepo.Create(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, realtime.ChannelEvents,
		realtime.NewEvent(realtime.EventVoidRequested, request))
	return request, nil
}

// Approve step-up-authorizes the request, voids the line and resyncs
// the invoice
func (s *VoidService) Approve(ctx context.Context, requestID uuid.UUID, pin, note string) (*entity.VoidRequest, error) {
	approver, err := s.approval.VerifyPIN(ctx, pin, PermissionApproveVoids, "")
	if err != nil {
		return nil, err
	}

	var request *entity.VoidRequest

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		request, err = s.voidRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return apperror.NewNotFoundError("Void request")
		}
		if request.Status != enum.VoidStatusPending {
			return apperror.NewInvalidStateError("Void request is already decided")
		}

		line, err := s.lineRepo.GetByID(ctx, request.OrderLineID)
		if err != nil {
			return err
		}
		if line == nil {
			return apperror.NewNotFoundError("Order line")
		}
		if !line.Status.Voidable() {
			return apperror.NewInvalidStateError(
				"Line in status " + line.Status.String() + " can no longer be voided")
		}

		if err := s.lineRepo.UpdateStatus(ctx, request.OrderLineID, enum.LineStatusVoided); err != nil {
			return err
		}

		now := time.Now()
		request.Status = enum.VoidStatusApproved
		request.ApprovedBy = &approver.ID
		request.ApprovalNote = note
		request.DecidedAt = &now
		if err := s.voidRepo.Update(ctx, request); err != nil {
			return err
		}

		if err := s.approval.RecordApproval(ctx, entity.AuditActionVoidApproved,
			request.RequestedBy, approver, &request.OrderLineID, note); err != nil {
			return err
		}
		return s.invoices.SyncWithOrder(ctx, request.OrderID)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, realtime.ChannelEvents,
		realtime.NewEvent(realtime.EventVoidDecided, request))
	s.publisher.Publish(ctx, realtime.ChannelKitchen,
		realtime.NewEvent(realtime.EventLineVoided, map[string]interface{}{
			"order_id": request.OrderID,
			"line_id":  request.OrderLineID,
		}))
	return request, nil
}

// Reject closes the request with a note and leaves the line untouched
func (s *VoidService) Reject(ctx context.Context, requestID uuid.UUID, note string, decidedBy uuid.UUID) (*entity.VoidRequest, error) {
	var request *entity.VoidRequest

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		request, err = s.voidRepo.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return apperror.NewNotFoundError("Void request")
		}
		if request.Status != enum.VoidStatusPending {
			return apperror.NewInvalidStateError("Void request is already decided")
		}

		now := time.Now()
		request.Status = enum.VoidStatusRejected
		request.ApprovedBy = &decidedBy
		request.ApprovalNote = note
		request.DecidedAt = &now
		return s.voidRepo.Update(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, realtime.ChannelEvents,
		realtime.NewEvent(realtime.EventVoidDecided, request))
	return request, nil
}

// List returns void requests, optionally filtered by status
func (s *VoidService) List(ctx context.Context, status *enum.VoidStatus) ([]entity.VoidRequest, error) {
	return s.voidRepo.ListByStatus(ctx, status)
}
