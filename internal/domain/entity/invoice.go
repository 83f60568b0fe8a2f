package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Invoice is the billable document derived from an order.
// GrandTotal = Subtotal - Discount + VAT while OPEN; the monetary
// fields freeze once the invoice is PAID.
type Invoice struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Subtotal   int64              `gorm:"default:0" json:"subtotal"`
	Discount   int64              `gorm:"default:0" json:"discount"`
	VAT        int64              `gorm:"default:0" json:"vat"`
	GrandTotal int64              `gorm:"default:0" json:"grand_total"`
	Status     enum.InvoiceStatus `gorm:"default:0;index" json:"status"`
	PaidAt     *time.Time         `json:"paid_at,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relationships
	Order    Order     `gorm:"foreignKey:OrderID" json:"-"`
	Payments []Payment `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// Payment represents one settlement entry against an invoice
type Payment struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	InvoiceID uuid.UUID          `gorm:"type:uuid;not null;index" json:"invoice_id"`
	Method    enum.PaymentMethod `gorm:"not null;index" json:"method"`
	Amount    int64              `gorm:"not null" json:"amount"`
	CreatedAt time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`

	// Relationships
	Invoice Invoice        `gorm:"foreignKey:InvoiceID" json:"-"`
	Detail  *PaymentDetail `gorm:"foreignKey:PaymentID" json:"detail,omitempty"`
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// PaymentDetail carries the settlement bookkeeping for one payment:
// how much of the tendered amount was applied, the change handed back,
// and the shift/cashier/customer linkage used by reconciliation.
type PaymentDetail struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"payment_id"`
	AppliedAmount  int64      `gorm:"not null" json:"applied_amount"`
	ChangeReturned int64      `gorm:"default:0" json:"change_returned"`
	ShiftID        *uuid.UUID `gorm:"type:uuid;index" json:"shift_id,omitempty"`
	CashierID      uuid.UUID  `gorm:"type:uuid;not null" json:"cashier_id"`
	CustomerID     *uuid.UUID `gorm:"type:uuid" json:"customer_id,omitempty"`
	PointsUsed     int64      `gorm:"default:0" json:"points_used"`
	Note           string     `gorm:"type:text" json:"note,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`

	Payment Payment `gorm:"foreignKey:PaymentID" json:"-"`
	Shift   *Shift  `gorm:"foreignKey:ShiftID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment detail
func (d *PaymentDetail) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentDetail model
func (PaymentDetail) TableName() string {
	return "payment_details"
}
