package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// VoidRequest is a staff-submitted request to cancel an ordered line,
// pending a manager's decision. At most one PENDING request exists per
// line at a time.
type VoidRequest struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	OrderLineID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_line_id"`
	Reason       string          `gorm:"type:text;not null" json:"reason"`
	RequestedBy  uuid.UUID       `gorm:"type:uuid;not null" json:"requested_by"`
	Status       enum.VoidStatus `gorm:"default:0;index" json:"status"`
	ApprovedBy   *uuid.UUID      `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovalNote string          `gorm:"type:text" json:"approval_note,omitempty"`
	DecidedAt    *time.Time      `json:"decided_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relationships
	Order     Order     `gorm:"foreignKey:OrderID" json:"-"`
	OrderLine OrderLine `gorm:"foreignKey:OrderLineID" json:"line,omitempty"`
	Requester User      `gorm:"foreignKey:RequestedBy" json:"-"`
	Approver  *User     `gorm:"foreignKey:ApprovedBy" json:"-"`
}

// BeforeCreate generates a UUID before creating a new void request
func (v *VoidRequest) BeforeCreate(tx *gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the VoidRequest model
func (VoidRequest) TableName() string {
	return "void_requests"
}
