package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Shift represents one cashier's cash-register session. A cashier has
// at most one ACTIVE shift, enforced by a partial unique index.
type Shift struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CashierID   uuid.UUID        `gorm:"type:uuid;not null;index" json:"cashier_id"`
	OpeningCash int64            `gorm:"not null" json:"opening_cash"`
	ActualCash  *int64           `json:"actual_cash,omitempty"`
	Status      enum.ShiftStatus `gorm:"default:0;index" json:"status"`
	OpenedAt    time.Time        `gorm:"not null" json:"opened_at"`
	ClosedAt    *time.Time       `json:"closed_at,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	// Relationships
	Cashier User     `gorm:"foreignKey:CashierID" json:"-"`
	ZReport *ZReport `gorm:"foreignKey:ShiftID" json:"z_report,omitempty"`
}

// BeforeCreate generates a UUID before creating a new shift
func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Shift model
func (Shift) TableName() string {
	return "shifts"
}

// ZReport is the immutable audit snapshot written once when a shift
// closes. Variance = ActualCash - ExpectedCash.
type ZReport struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ShiftID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"shift_id"`
	ClosedAt     time.Time `gorm:"not null" json:"closed_at"`
	ExpectedCash int64     `gorm:"not null" json:"expected_cash"`
	ActualCash   int64     `gorm:"not null" json:"actual_cash"`
	Variance     int64     `gorm:"not null" json:"variance"`
	CreatedAt    time.Time `json:"created_at"`

	// Relationships
	Shift Shift         `gorm:"foreignKey:ShiftID" json:"-"`
	Lines []ZReportLine `gorm:"foreignKey:ZReportID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new Z-report
func (z *ZReport) BeforeCreate(tx *gorm.DB) error {
	if z.ID == uuid.Nil {
		z.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ZReport model
func (ZReport) TableName() string {
	return "z_reports"
}

// ZReportLine is the per-method payment summary of one Z-report
type ZReportLine struct {
	ID        uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ZReportID uuid.UUID          `gorm:"type:uuid;not null;index" json:"z_report_id"`
	Method    enum.PaymentMethod `gorm:"not null" json:"method"`
	Total     int64              `gorm:"not null" json:"total"`
	Count     int                `gorm:"not null" json:"count"`
	CreatedAt time.Time          `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new Z-report line
func (l *ZReportLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ZReportLine model
func (ZReportLine) TableName() string {
	return "z_report_lines"
}
