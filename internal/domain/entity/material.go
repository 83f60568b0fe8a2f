package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Material represents a raw stock item consumed by dishes.
// OnHand is mutated only by settlement deduction and receiving.
type Material struct {
	ID                uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name              string         `gorm:"size:255;not null" json:"name"`
	Unit              string         `gorm:"size:50;not null" json:"unit"`
	OnHand            float64        `gorm:"default:0" json:"on_hand"`
	MinThreshold      float64        `gorm:"default:0" json:"min_threshold"`
	LastPurchasePrice int64          `gorm:"default:0" json:"last_purchase_price"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new material
func (m *Material) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Material model
func (Material) TableName() string {
	return "materials"
}

// LowStock reports whether the material is at or below its threshold
func (m *Material) LowStock() bool {
	return m.OnHand <= m.MinThreshold
}

// RecipeLine maps the material quantity consumed per unit of a dish
type RecipeLine struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	DishID      uuid.UUID `gorm:"type:uuid;not null;index:idx_recipe_dish_material,unique" json:"dish_id"`
	MaterialID  uuid.UUID `gorm:"type:uuid;not null;index:idx_recipe_dish_material,unique" json:"material_id"`
	QtyPerUnit  float64   `gorm:"not null" json:"qty_per_unit"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Dish     Dish     `gorm:"foreignKey:DishID" json:"-"`
	Material Material `gorm:"foreignKey:MaterialID" json:"material,omitempty"`
}

// BeforeCreate generates a UUID before creating a new recipe line
func (r *RecipeLine) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the RecipeLine model
func (RecipeLine) TableName() string {
	return "recipe_lines"
}

// StockMovement is one immutable ledger entry: the quantity of a
// material consumed by one order at settlement. Movements are never
// updated or deleted.
type StockMovement struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	MaterialID uuid.UUID `gorm:"type:uuid;not null;index" json:"material_id"`
	Quantity   float64   `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `json:"created_at"`

	Material Material `gorm:"foreignKey:MaterialID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new stock movement
func (s *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockMovement model
func (StockMovement) TableName() string {
	return "stock_movements"
}
