package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Well-known system setting keys
const (
	SettingVATRate = "vat_rate"
)

// SystemSetting is a key-value configuration row. The VAT rate lives
// here and is read at computation time, never cached on invoices.
type SystemSetting struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Key       string    `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value     string    `gorm:"size:255;not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new setting
func (s *SystemSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SystemSetting model
func (SystemSetting) TableName() string {
	return "system_settings"
}
