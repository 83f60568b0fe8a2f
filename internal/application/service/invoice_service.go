package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/config"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/internal/domain/repository"
	"github.com/sangkips/dinehub-api/pkg/apperror"
	"github.com/sangkips/dinehub-api/pkg/pagination"
	"github.com/xuri/excelize/v2"
)

// InvoiceService derives invoice monetary fields from order lines,
// discount and the configured VAT rate, and keeps them synchronized
// while the invoice is OPEN. It also owns bill split and merge.
type InvoiceService struct {
	txManager   repository.TxManager
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	orderRepo   repository.OrderRepository
	lineRepo    repository.OrderLineRepository
	voidRepo    repository.VoidRequestRepository
	settingRepo repository.SettingsRepository
	approval    *ApprovalService
	pos         config.POSConfig
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	txManager repository.TxManager,
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
	lineRepo repository.OrderLineRepository,
	voidRepo repository.VoidRequestRepository,
	settingRepo repository.SettingsRepository,
	approval *ApprovalService,
	pos config.POSConfig,
) *InvoiceService {
	return &InvoiceService{
		txManager:   txManager,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		lineRepo:    lineRepo,
		voidRepo:    voidRepo,
		settingRepo: settingRepo,
		approval:    approval,
		pos:         pos,
	}
}

// VATRate reads the live VAT percent from system settings, falling
// back to the configured default. Never cached on invoices.
func (s *InvoiceService) VATRate(ctx context.Context) int {
	setting, err := s.settingRepo.Get(ctx, entity.SettingVATRate)
	if err != nil || setting == nil {
		return s.pos.DefaultVATPercent
	}
	rate, err := strconv.Atoi(setting.Value)
	if err != nil || rate < 0 {
		return s.pos.DefaultVATPercent
	}
	return rate
}

// ComputeTotals derives subtotal, VAT and grand total from the given
// non-voided lines. Pure integer arithmetic on whole currency units.
func ComputeTotals(lines []entity.OrderLine, discount int64, vatPercent int) (subtotal, vat, grandTotal int64) {
	for _, line := range lines {
		if line.Status == enum.LineStatusVoided {
			continue
		}
		subtotal += line.Total()
	}
	vat = (subtotal - discount) * int64(vatPercent) / 100
	grandTotal = subtotal - discount + vat
	return subtotal, vat, grandTotal
}

// CreateFromOrder creates the order's invoice. A non-zero discount
// requires step-up authorization by a holder of the discount
// permission and writes an audit entry naming requester and approver.
func (s *InvoiceService) CreateFromOrder(ctx context.Context, orderID uuid.UUID, discount int64, approverPIN string, requestedBy uuid.UUID) (*entity.Invoice, error) {
	var invoice *entity.Invoice

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		order, err := s.orderRepo.GetWithLines(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		existing, err := s.invoiceRepo.GetByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewInvalidStateError("Order already has an invoice")
		}

		subtotal, _, _ := ComputeTotals(order.Lines, 0, 0)
		if discount < 0 || discount > subtotal {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "discount", Message: "must be between 0 and the order subtotal"},
			})
		}

		if discount > 0 {
			approver, err := s.approval.VerifyPIN(ctx, approverPIN, PermissionApplyDiscounts, "")
			if err != nil {
				return err
			}
			detail := fmt.Sprintf("discount of %d applied to order %s", discount, orderID)
			if err := s.approval.RecordApproval(ctx, entity.AuditActionDiscountApplied, requestedBy, approver, &orderID, detail); err != nil {
				return err
			}
		}

		subtotal, vat, grandTotal := ComputeTotals(order.Lines, discount, s.VATRate(ctx))
		invoice = &entity.Invoice{
			OrderID:    orderID,
			Subtotal:   subtotal,
			Discount:   discount,
			VAT:        vat,
			GrandTotal: grandTotal,
			Status:     enum.InvoiceStatusOpen,
		}
		return s.invoiceRepo.Create(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return invoice, nil
}

// SyncWithOrder recomputes the order's OPEN invoice from its current
// non-voided lines, preserving the existing discount. No-op if the
// order has no OPEN invoice. Called after any line addition, removal
// or void; idempotent.
func (s *InvoiceService) SyncWithOrder(ctx context.Context, orderID uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetOpenByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return nil
	}

	lines, err := s.lineRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return err
	}

	subtotal, vat, grandTotal := ComputeTotals(lines, invoice.Discount, s.VATRate(ctx))
	invoice.Subtotal = subtotal
	invoice.VAT = vat
	invoice.GrandTotal = grandTotal
	return s.invoiceRepo.Update(ctx, invoice)
}

// SplitByItems moves the selected non-voided lines onto a new order
// with its own invoice and recomputes both invoices. Lines are moved,
// never copied.
func (s *InvoiceService) SplitByItems(ctx context.Context, invoiceID uuid.UUID, lineIDs []uuid.UUID, actorID uuid.UUID) (*entity.Invoice, error) {
	var newInvoice *entity.Invoice

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		if invoice.Status == enum.InvoiceStatusPaid {
			return apperror.NewInvalidStateError("Cannot split a paid invoice")
		}

		order, err := s.orderRepo.GetWithLines(ctx, invoice.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		requested := make(map[uuid.UUID]bool, len(lineIDs))
		for _, id := range lineIDs {
			requested[id] = true
		}

		var moved []entity.OrderLine
		movedIDs := make([]uuid.UUID, 0, len(lineIDs))
		for _, line := range order.Lines {
			if requested[line.ID] && line.Status != enum.LineStatusVoided {
				moved = append(moved, line)
				movedIDs = append(movedIDs, line.ID)
			}
		}
		if len(moved) == 0 {
			return apperror.NewValidationError([]apperror.FieldError{
				{Field: "line_ids", Message: "no valid lines selected"},
			})
		}

		newOrder := &entity.Order{
			TableID:   order.TableID,
			CreatedBy: actorID,
			Note:      "split from order " + order.ID.String(),
			Status:    order.Status,
		}
		if err := s.orderRepo.Create(ctx, newOrder); err != nil {
			return err
		}
		if err := s.lineRepo.MoveToOrder(ctx, movedIDs, newOrder.ID); err != nil {
			return err
		}

		vatRate := s.VATRate(ctx)

		subtotal, vat, grandTotal := ComputeTotals(moved, 0, vatRate)
		newInvoice = &entity.Invoice{
			OrderID:    newOrder.ID,
			Subtotal:   subtotal,
			VAT:        vat,
			GrandTotal: grandTotal,
			Status:     enum.InvoiceStatusOpen,
		}
		if err := s.invoiceRepo.Create(ctx, newInvoice); err != nil {
			return err
		}

		remaining := make([]entity.OrderLine, 0, len(order.Lines))
		for _, line := range order.Lines {
			if !requested[line.ID] || line.Status == enum.LineStatusVoided {
				remaining = append(remaining, line)
			}
		}
		subtotal, vat, grandTotal = ComputeTotals(remaining, invoice.Discount, vatRate)
		invoice.Subtotal = subtotal
		invoice.VAT = vat
		invoice.GrandTotal = grandTotal
		return s.invoiceRepo.Update(ctx, invoice)
	})
	if err != nil {
		return nil, err
	}
	return newInvoice, nil
}

// SplitByPeople divides the invoice total into n even shares by floor
// division. The remainder always stays on the original invoice, so the
// shares sum to the original total exactly. Share invoices carry the
// VAT-inclusive amount with zero discount and VAT of their own.
func (s *InvoiceService) SplitByPeople(ctx context.Context, invoiceID uuid.UUID, people int, actorID uuid.UUID) ([]entity.Invoice, error) {
	if people < 2 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "people", Message: "must be at least 2"},
		})
	}

	var result []entity.Invoice

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
		if err != nil {
			return err
		}
		if invoice == nil {
			return apperror.NewNotFoundError("Invoice")
		}
		if invoice.Status == enum.InvoiceStatusPaid {
			return apperror.NewInvalidStateError("Cannot split a paid invoice")
		}

		order, err := s.orderRepo.GetByID(ctx, invoice.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return apperror.NewNotFoundError("Order")
		}

		total := invoice.GrandTotal
		perPerson := total / int64(people)
		remainder := total - perPerson*int64(people)

		invoice.Subtotal = perPerson + remainder
		invoice.Discount = 0
		invoice.VAT = 0
		invoice.GrandTotal = perPerson + remainder
		if err := s.invoiceRepo.Update(ctx, invoice); err != nil {
			return err
		}
		result = append(result, *invoice)

		for i := 1; i < people; i++ {
			shareOrder := &entity.Order{
				TableID:   order.TableID,
				CreatedBy: actorID,
				Note:      fmt.Sprintf("bill share %d of %d for order %s", i+1, people, order.ID),
				Status:    order.Status,
			}
			if err := s.orderRepo.Create(ctx, shareOrder); err != nil {
				return err
			}
			share := &entity.Invoice{
				OrderID:    shareOrder.ID,
				Subtotal:   perPerson,
				GrandTotal: perPerson,
				Status:     enum.InvoiceStatusOpen,
			}
			if err := s.invoiceRepo.Create(ctx, share); err != nil {
				return err
			}
			result = append(result, *share)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// MergeInvoices combines two or more OPEN invoices from the same table
// into one. All lines move to a new order, pending void requests on
// moved lines are dropped, and the source invoices and orders are
// deleted as a unit.
func (s *InvoiceService) MergeInvoices(ctx context.Context, invoiceIDs []uuid.UUID, actorID uuid.UUID) (*entity.Invoice, error) {
	if len(invoiceIDs) < 2 {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "invoice_ids", Message: "at least 2 invoices required"},
		})
	}

	var merged *entity.Invoice

	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		var sources []entity.Invoice
		var orders []entity.Order
		var tableID *uuid.UUID
		var discount int64

		for _, id := range invoiceIDs {
			invoice, err := s.invoiceRepo.GetByID(ctx, id)
			if err != nil {
				return err
			}
			if invoice == nil {
				return apperror.NewNotFoundError("Invoice")
			}
			if invoice.Status != enum.InvoiceStatusOpen {
				return apperror.NewInvalidStateError("Only open invoices can be merged")
			}

			order, err := s.orderRepo.GetByID(ctx, invoice.OrderID)
			if err != nil {
				return err
			}
			if order == nil {
				return apperror.NewNotFoundError("Order")
			}
			if order.TableID == nil {
				return apperror.NewInvalidStateError("Cannot merge invoices of detached orders")
			}
			if tableID == nil {
				tableID = order.TableID
			} else if *tableID != *order.TableID {
				return apperror.NewInvalidStateError("Invoices must belong to the same table")
			}

			discount += invoice.Discount
			sources = append(sources, *invoice)
			orders = append(orders, *order)
		}

		newOrder := &entity.Order{
			TableID:   tableID,
			CreatedBy: actorID,
			Note:      "merged bill",
			Status:    enum.OrderStatusSent,
		}
		if err := s.orderRepo.Create(ctx, newOrder); err != nil {
			return err
		}

		var allLines []entity.OrderLine
		var lineIDs []uuid.UUID
		for _, order := range orders {
			lines, err := s.lineRepo.GetByOrderID(ctx, order.ID)
			if err != nil {
				return err
			}
			for _, line := range lines {
				allLines = append(allLines, line)
				lineIDs = append(lineIDs, line.ID)
			}
		}

		if err := s.voidRepo.DeleteByLineIDs(ctx, lineIDs); err != nil {
			return err
		}
		if err := s.lineRepo.MoveToOrder(ctx, lineIDs, newOrder.ID); err != nil {
			return err
		}

		for i := range sources {
			if err := s.invoiceRepo.Delete(ctx, sources[i].ID); err != nil {
				return err
			}
			if err := s.orderRepo.Delete(ctx, orders[i].ID); err != nil {
				return err
			}
		}

		subtotal, vat, grandTotal := ComputeTotals(allLines, discount, s.VATRate(ctx))
		merged = &entity.Invoice{
			OrderID:    newOrder.ID,
			Subtotal:   subtotal,
			Discount:   discount,
			VAT:        vat,
			GrandTotal: grandTotal,
			Status:     enum.InvoiceStatusOpen,
		}
		return s.invoiceRepo.Create(ctx, merged)
	})
	if err != nil {
		return nil, err
	}
	return merged, nil
}

// RemoveForOrder deletes the order's invoice when the order is
// cancelled. Refuses once the invoice is PAID or carries payments.
func (s *InvoiceService) RemoveForOrder(ctx context.Context, orderID uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByOrder(ctx, orderID)
	if err != nil {
		return err
	}
	if invoice == nil {
		return nil
	}
	if invoice.Status == enum.InvoiceStatusPaid {
		return apperror.NewInvalidStateError("Cannot cancel a paid order")
	}
	payments, err := s.paymentRepo.ListByInvoice(ctx, invoice.ID)
	if err != nil {
		return err
	}
	if len(payments) > 0 {
		return apperror.NewInvalidStateError("Cannot cancel an order with recorded payments")
	}
	return s.invoiceRepo.Delete(ctx, invoice.ID)
}

// GetDetails returns the invoice with its order, lines and payments
func (s *InvoiceService) GetDetails(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetFull(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// List returns invoices matching the filter
func (s *InvoiceService) List(ctx context.Context, params *repository.InvoiceFilterParams) ([]entity.Invoice, *pagination.Pagination, error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	return invoices, pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total), nil
}

// PrintLine is one priced line on a printable receipt
type PrintLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	Total     int64  `json:"total"`
}

// PrintPayment is one settlement entry on a printable receipt
type PrintPayment struct {
	Method string `json:"method"`
	Amount int64  `json:"amount"`
	Change int64  `json:"change"`
}

// InvoicePrintData is the receipt projection. Monetary fields are
// carried verbatim from the invoice.
type InvoicePrintData struct {
	InvoiceID   uuid.UUID      `json:"invoice_id"`
	Date        time.Time      `json:"date"`
	TableNumber int            `json:"table_number,omitempty"`
	Lines       []PrintLine    `json:"lines"`
	Subtotal    int64          `json:"subtotal"`
	Discount    int64          `json:"discount"`
	VAT         int64          `json:"vat"`
	GrandTotal  int64          `json:"grand_total"`
	Status      string         `json:"status"`
	Payments    []PrintPayment `json:"payments"`
}

// GetPrintData builds the receipt projection for one invoice
func (s *InvoiceService) GetPrintData(ctx context.Context, id uuid.UUID) (*InvoicePrintData, error) {
	invoice, err := s.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	data := &InvoicePrintData{
		InvoiceID:  invoice.ID,
		Date:       invoice.CreatedAt,
		Subtotal:   invoice.Subtotal,
		Discount:   invoice.Discount,
		VAT:        invoice.VAT,
		GrandTotal: invoice.GrandTotal,
		Status:     invoice.Status.String(),
		Lines:      make([]PrintLine, 0),
		Payments:   make([]PrintPayment, 0),
	}
	if invoice.Order.Table != nil {
		data.TableNumber = invoice.Order.Table.Number
	}
	for _, line := range invoice.Order.ActiveLines() {
		data.Lines = append(data.Lines, PrintLine{
			Name:      line.Dish.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Total:     line.Total(),
		})
	}
	for _, payment := range invoice.Payments {
		p := PrintPayment{Method: payment.Method.String(), Amount: payment.Amount}
		if payment.Detail != nil {
			p.Change = payment.Detail.ChangeReturned
		}
		data.Payments = append(data.Payments, p)
	}
	return data, nil
}

func exportRow(invoice *entity.Invoice) []string {
	table := ""
	if invoice.Order.Table != nil {
		table = strconv.Itoa(invoice.Order.Table.Number)
	}

	methods := make([]string, 0, len(invoice.Payments))
	seen := make(map[string]bool)
	for _, payment := range invoice.Payments {
		name := payment.Method.String()
		if !seen[name] {
			seen[name] = true
			methods = append(methods, name)
		}
	}

	return []string{
		invoice.ID.String(),
		invoice.CreatedAt.Format("2006-01-02 15:04:05"),
		table,
		strconv.FormatInt(invoice.Subtotal, 10),
		strconv.FormatInt(invoice.Discount, 10),
		strconv.FormatInt(invoice.VAT, 10),
		strconv.FormatInt(invoice.GrandTotal, 10),
		invoice.Status.String(),
		strings.Join(methods, "+"),
	}
}

var exportHeader = []string{"Invoice ID", "Date", "Table", "Subtotal", "Discount", "VAT", "Total", "Status", "Payment Methods"}

// ExportCSV writes the invoice export projection as CSV
func (s *InvoiceService) ExportCSV(ctx context.Context, start, end *time.Time) ([]byte, error) {
	invoices, err := s.invoiceRepo.ListForExport(ctx, start, end)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for i := range invoices {
		if err := w.Write(exportRow(&invoices[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportXLSX writes the same projection as an xlsx workbook
func (s *InvoiceService) ExportXLSX(ctx context.Context, start, end *time.Time) ([]byte, error) {
	invoices, err := s.invoiceRepo.ListForExport(ctx, start, end)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Invoices"
	f.SetSheetName("Sheet1", sheet)

	for col, title := range exportHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, title)
	}
	for i := range invoices {
		for col, value := range exportRow(&invoices[i]) {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
