package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/config"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/internal/realtime"
	"github.com/sangkips/dinehub-api/pkg/apperror"
)

// PaymentEntry is one tendered payment in the order supplied by the
// cashier
type PaymentEntry struct {
	Method enum.PaymentMethod
	Amount int64
}

// PayInput carries one settlement request
type PayInput struct {
	InvoiceID  uuid.UUID
	Payments   []PaymentEntry
	UsePoints  int64
	CustomerID *uuid.UUID
	CashierID  uuid.UUID
	Note       string
}

// PayResult reports the settlement outcome to the caller
type PayResult struct {
	InvoiceID    uuid.UUID `json:"invoice_id"`
	GrandTotal   int64     `json:"grand_total"`
	TotalPaid    int64     `json:"total_paid"`
	ChangeDue    int64     `json:"change_due"`
	PointsUsed   int64     `json:"points_used"`
	PointsEarned int64     `json:"points_earned"`
	PointBalance int64     `json:"point_balance,omitempty"`
	Tier         string    `json:"tier,omitempty"`
}

// PaymentService settles invoices: applies tendered payments, computes
// change, deducts stock, closes the order and frees the table, all in
// one transaction. Point awarding and the low-stock check run after
// commit, best-effort.
type PaymentService struct {
	txManager    repository.TxManager
	invoiceRepo  repository.InvoiceRepository
	paymentRepo  repository.PaymentRepository
	orderRepo    repository.OrderRepository
	tableRepo    repository.TableRepository
	shiftRepo    repository.ShiftRepository
	customerRepo repository.CustomerRepository
	historyRepo  repository.PointHistoryRepository
	inventory    *InventoryService
	publisher    realtime.Publisher
	pos          config.POSConfig
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	txManager repository.TxManager,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	tableRepo repository.TableRepository,
	shiftRepo repository.ShiftRepository,
	customerRepo repository.CustomerRepository,
	historyRepo repository.PointHistoryRepository,
	inventory *InventoryService,
	publisher realtime.Publisher,
	pos config.POSConfig,
) *PaymentService {
	return &PaymentService{
		txManager:    txManager,
		invoiceRepo:  invoiceRepo,
		paymentRepo:  paymentRepo,
		orderRepo:    orderRepo,
		tableRepo:    tableRepo,
		shiftRepo:    shiftRepo,
		customerRepo: customerRepo,
		historyRepo:  historyRepo,
		inventory:    inventory,
		publisher:    publisher,
		pos:          pos,
	}
}

// Pay settles the invoice. Payment entries apply in the order given:
// non-cash methods must not exceed the remaining balance, cash overage
// becomes change, and the balance must reach exactly zero.
func (s *PaymentService) Pay(ctx context.Context, input PayInput) (*PayResult, error) {
	if len(input.Payments) == 0 && input.UsePoints == 0 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "payments", Message: "at least one payment is required"},
		})
	}

	result := &PayResult{InvoiceID: input.InvoiceID}
	var tableID *uuid.UUID
	var customer *entity.Customer

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		if invoice.Status == enum.InvoiceStatusPaid {
			return apperror.NewInvalidStateError("Invoice is already paid")
		}

		shift, err := s.shiftRepo.GetActiveByCashier(ctx, input.CashierID)
		if err != nil {
			return err
		}
		var shiftID *uuid.UUID
		if shift != nil {
			shiftID = &shift.ID
		}

		result.GrandTotal = invoice.GrandTotal
		remaining := invoice.GrandTotal

		// Points redemption applies before the payment lines.
		if input.UsePoints > 0 {
			if input.CustomerID == nil {
				return apperror.NewValidationError([]apperror.FieldError{
					{Field: "customer_id", Message: "required when redeeming points"},
				})
			}
			customer, err = s.customerRepo.GetByID(ctx, *input.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return apperror.NewNotFoundError("Customer")
			}
			if customer.Points < input.UsePoints {
				return apperror.NewInsufficientError("Insufficient loyalty points",
					map[string]int64{"requested": input.UsePoints, "available": customer.Points})
			}

			redeemed := input.UsePoints * s.pos.PointValue
			if redeemed > remaining {
				return apperror.NewValidationError([]apperror.FieldError{
					{Field: "use_points", Message: "points value exceeds invoice total"},
				})
			}
			remaining -= redeemed
			result.PointsUsed = input.UsePoints
			result.TotalPaid += redeemed

			if err := s.recordPayment(ctx, invoice.ID, enum.PaymentMethodPoints, redeemed, redeemed, 0,
				shiftID, input, input.UsePoints); err != nil {
				return err
			}
		}

		for _, entry := range input.Payments {
			if entry.Amount <= 0 {
				return apperror.NewValidationError([]apperror.FieldError{
					{Field: "amount", Message: "must be greater than zero"},
				})
			}

			applied := entry.Amount
			var change int64
			if entry.Method == enum.PaymentMethodCash {
				if entry.Amount > remaining {
					applied = remaining
					change = entry.Amount - remaining
				}
			} else if entry.Amount > remaining {
				return apperror.NewBadRequestError(
					entry.Method.String() + " payment exceeds the remaining balance")
			}

			remaining -= applied
			result.TotalPaid += entry.Amount
			result.ChangeDue += change

			if err := s.recordPayment(ctx, invoice.ID, entry.Method, entry.Amount, applied, change,
				shiftID, input, 0); err != nil {
				return err
			}
		}

		if remaining != 0 {
			return apperror.NewInsufficientError("Payment does not cover the invoice total",
				map[string]int64{"remaining": remaining})
		}

		if result.PointsUsed > 0 {
			customer.Points -= result.PointsUsed
			if err := s.customerRepo.Update(ctx, customer); err != nil {
				return err
			}
			if err := s.historyRepo.Create(ctx, &entity.PointHistory{
				CustomerID: customer.ID,
				InvoiceID:  &invoice.ID,
				Delta:      -result.PointsUsed,
				Note:       "redeemed at settlement",
			}); err != nil {
				return err
			}
		}

		if err := s.inventory.Deduct(ctx, invoice.OrderID); err != nil {
			return err
		}

		now := time.Now()
		invoice.Status = enum.InvoiceStatusPaid
		invoice.PaidAt = &now
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			return err
		}
		if err := s.orderRepo.UpdateStatus(ctx, invoice.OrderID, enum.OrderStatusClosed); err != nil {
			return err
		}

		order, err := s.orderRepo.GetByID(ctx, invoice.OrderID)
		if err != nil {
			return err
		}
		tableID = order.TableID
		if tableID != nil {
			return s.tableRepo.UpdateStatus(ctx, *tableID, enum.TableStatusEmpty)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if input.CustomerID != nil {
		result.PointsEarned = result.GrandTotal * int64(s.pos.EarnRatePercent) / 100 / s.pos.PointValue
	}
	if customer != nil {
		result.PointBalance = customer.Points + result.PointsEarned
		result.Tier = customer.Tier()
	}

	s.publisher.Publish(ctx, realtime.ChannelEvents,
		realtime.NewEvent(realtime.EventInvoicePaid, result))
	if tableID != nil {
		s.publisher.Publish(ctx, realtime.ChannelTables,
			realtime.NewEvent(realtime.EventTableChanged, map[string]interface{}{"table_id": *tableID}))
	}

	// Post-commit effects: point award and low-stock alerting must
	// never fail the settled payment.
	go s.afterPayment(input.CustomerID, input.InvoiceID, result.PointsEarned)

	return result, nil
}

// ListByInvoice returns the payments recorded against an invoice
func (s *PaymentService) ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	return s.paymentRepo.ListByInvoice(ctx, invoiceID)
}

func (s *PaymentService) recordPayment(ctx context.Context, invoiceID uuid.UUID, method enum.PaymentMethod,
	amount, applied, change int64, shiftID *uuid.UUID, input PayInput, pointsUsed int64) error {
	payment := &entity.Payment{
		InvoiceID: invoiceID,
		Method:    method,
		Amount:    amount,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return err
	}
	return s.paymentRepo.CreateDetail(ctx, &entity.PaymentDetail{
		PaymentID:      payment.ID,
		AppliedAmount:  applied,
		ChangeReturned: change,
		ShiftID:        shiftID,
		CashierID:      input.CashierID,
		CustomerID:     input.CustomerID,
		PointsUsed:     pointsUsed,
		Note:           input.Note,
	})
}

// afterPayment awards loyalty points and runs the low-stock check.
// Runs detached from the request; failures are logged only.
func (s *PaymentService) afterPayment(customerID *uuid.UUID, invoiceID uuid.UUID, earned int64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if customerID != nil && earned > 0 {
		err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
			customer, err := s.customerRepo.GetByID(ctx, *customerID)
			if err != nil || customer == nil {
				return err
			}
			customer.Points += earned
			customer.LifetimePoints += earned
			if err := s.customerRepo.Update(ctx, customer); err != nil {
				return err
			}
			return s.historyRepo.Create(ctx, &entity.PointHistory{
				CustomerID: customer.ID,
				InvoiceID:  &invoiceID,
				Delta:      earned,
				Note:       "earned on settlement",
			})
		})
		if err != nil {
			log.Printf("payment: failed to award points for invoice %s: %v", invoiceID, err)
		}
	}

	s.inventory.LowStockCheck(ctx)
}
