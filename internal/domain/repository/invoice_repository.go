package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/entity"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"github.com/sangkips/dinehub-api/pkg/pagination"
)

// InvoiceFilterParams holds filtering options for listing invoices
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Status     *enum.InvoiceStatus
	StartDate  *time.Time
	EndDate    *time.Time
}

// InvoiceRepository defines the interface for invoice operations
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *entity.Invoice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// GetFull loads the invoice with its order, lines, payments and details
	GetFull(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	// GetOpenByOrder returns the order's OPEN invoice, if any
	GetOpenByOrder(ctx context.Context, orderID uuid.UUID) (*entity.Invoice, error)
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	// ListForExport loads invoices with orders, tables and payments for
	// the CSV/XLSX projections
	ListForExport(ctx context.Context, start, end *time.Time) ([]entity.Invoice, error)
}

// PaymentRepository defines the interface for payment operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	CreateDetail(ctx context.Context, detail *entity.PaymentDetail) error
	ListByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
	// ListByShift returns payments whose detail references the shift
	ListByShift(ctx context.Context, shiftID uuid.UUID) ([]entity.Payment, error)
	// ListDetachedInWindow returns payments without a shift reference
	// created inside [start, end], the reconciliation fallback
	ListDetachedInWindow(ctx context.Context, cashierID uuid.UUID, start, end time.Time) ([]entity.Payment, error)
}
