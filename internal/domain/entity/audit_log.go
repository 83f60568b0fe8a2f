package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit actions recorded for step-up authorized operations
const (
	AuditActionVoidItem        = "order.void_item"
	AuditActionVoidApproved    = "void_request.approved"
	AuditActionVoidRejected    = "void_request.rejected"
	AuditActionDiscountApplied = "invoice.discount_applied"
)

// AuditLog captures sensitive actions with both the original requester
// and the step-up approver of record.
type AuditLog struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Action      string     `gorm:"size:100;not null;index" json:"action"`
	RequestedBy uuid.UUID  `gorm:"type:uuid;not null" json:"requested_by"`
	ApprovedBy  *uuid.UUID `gorm:"type:uuid" json:"approved_by,omitempty"`
	TargetID    *uuid.UUID `gorm:"type:uuid;index" json:"target_id,omitempty"`
	Detail      string     `gorm:"type:text" json:"detail"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`

	Requester User  `gorm:"foreignKey:RequestedBy" json:"-"`
	Approver  *User `gorm:"foreignKey:ApprovedBy" json:"-"`
}

// BeforeCreate generates a UUID before creating a new audit entry
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AuditLog model
func (AuditLog) TableName() string {
	return "audit_logs"
}
