package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Loyalty tiers by lifetime earned points
const (
	TierBronze = "BRONZE"
	TierSilver = "SILVER"
	TierGold   = "GOLD"
)

// Customer represents a loyalty-program member
type Customer struct {
	ID             uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name           string         `gorm:"size:255;not null" json:"name"`
	Phone          string         `gorm:"size:50;unique" json:"phone"`
	Email          *string        `gorm:"size:255" json:"email,omitempty"`
	Points         int64          `gorm:"default:0" json:"points"`
	LifetimePoints int64          `gorm:"default:0" json:"lifetime_points"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	History []PointHistory `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// Tier returns the customer's loyalty tier from lifetime points
func (c *Customer) Tier() string {
	switch {
	case c.LifetimePoints >= 1000:
		return TierGold
	case c.LifetimePoints >= 200:
		return TierSilver
	default:
		return TierBronze
	}
}

// PointHistory records one loyalty point mutation (positive = earned,
// negative = redeemed)
type PointHistory struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID  `gorm:"type:uuid;not null;index" json:"customer_id"`
	InvoiceID  *uuid.UUID `gorm:"type:uuid" json:"invoice_id,omitempty"`
	Delta      int64      `gorm:"not null" json:"delta"`
	Note       string     `gorm:"size:255" json:"note"`
	CreatedAt  time.Time  `json:"created_at"`

	Customer Customer `gorm:"foreignKey:CustomerID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new history entry
func (h *PointHistory) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PointHistory model
func (PointHistory) TableName() string {
	return "point_histories"
}
