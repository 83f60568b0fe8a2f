package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Dish represents a menu item
type Dish struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Slug        string         `gorm:"size:255;unique;not null" json:"slug"`
	Category    string         `gorm:"size:100;index" json:"category"`
	BasePrice   int64          `gorm:"not null" json:"base_price"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	Available   bool           `gorm:"default:true" json:"available"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Options []DishOption `gorm:"foreignKey:DishID" json:"options,omitempty"`
	Recipe  []RecipeLine `gorm:"foreignKey:DishID" json:"recipe,omitempty"`
}

// BeforeCreate generates a UUID before creating a new dish
func (d *Dish) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Dish model
func (Dish) TableName() string {
	return "dishes"
}

// DishOption represents a selectable add-on with a price surcharge
type DishOption struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	DishID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"dish_id"`
	Name      string         `gorm:"size:255;not null" json:"name"`
	Surcharge int64          `gorm:"default:0" json:"surcharge"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new dish option
func (o *DishOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the DishOption model
func (DishOption) TableName() string {
	return "dish_options"
}
