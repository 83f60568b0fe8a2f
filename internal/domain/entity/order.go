package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Order represents a table's running tab from creation to closure.
// A table has at most one non-terminal order at a time.
type Order struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	TableID   *uuid.UUID       `gorm:"type:uuid;index" json:"table_id,omitempty"`
	CreatedBy uuid.UUID        `gorm:"type:uuid;not null;index" json:"created_by"`
	Note      string           `gorm:"type:text" json:"note"`
	Status    enum.OrderStatus `gorm:"default:0;index" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`

	// Relationships
	Table   *Table      `gorm:"foreignKey:TableID" json:"table,omitempty"`
	Creator User        `gorm:"foreignKey:CreatedBy" json:"-"`
	Lines   []OrderLine `gorm:"foreignKey:OrderID" json:"lines,omitempty"`
	Invoice *Invoice    `gorm:"foreignKey:OrderID" json:"invoice,omitempty"`
}

// BeforeCreate generates a UUID before creating a new order
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// ActiveLines returns the order's non-voided lines
func (o *Order) ActiveLines() []OrderLine {
	lines := make([]OrderLine, 0, len(o.Lines))
	for _, line := range o.Lines {
		if line.Status != enum.LineStatusVoided {
			lines = append(lines, line)
		}
	}
	return lines
}

// OrderLine represents one ordered dish on an order. UnitPrice is the
// dish base price plus selected option surcharges captured at creation
// time; it never changes afterwards even if the menu price does.
type OrderLine struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	DishID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"dish_id"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	UnitPrice int64           `gorm:"not null" json:"-"`
	Status    enum.LineStatus `gorm:"default:0;index" json:"status"`
	Note      string          `gorm:"type:text" json:"note"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Order   Order             `gorm:"foreignKey:OrderID" json:"-"`
	Dish    Dish              `gorm:"foreignKey:DishID" json:"dish,omitempty"`
	Options []OrderLineOption `gorm:"foreignKey:OrderLineID" json:"options,omitempty"`
}

// MarshalJSON exposes the price snapshot and line total as plain numbers
func (l OrderLine) MarshalJSON() ([]byte, error) {
	type Alias OrderLine
	return json.Marshal(&struct {
		Alias
		UnitPrice int64 `json:"unit_price"`
		Total     int64 `json:"total"`
	}{
		Alias:     Alias(l),
		UnitPrice: l.UnitPrice,
		Total:     l.Total(),
	})
}

// Total is the line's contribution to the invoice subtotal
func (l *OrderLine) Total() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// BeforeCreate generates a UUID before creating a new order line
func (l *OrderLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLine model
func (OrderLine) TableName() string {
	return "order_lines"
}

// OrderLineOption records one dish option selected on a line. The
// surcharge snapshot mirrors the line's unit-price snapshot.
type OrderLineOption struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	OrderLineID  uuid.UUID `gorm:"type:uuid;not null;index" json:"order_line_id"`
	DishOptionID uuid.UUID `gorm:"type:uuid;not null" json:"dish_option_id"`
	Surcharge    int64     `gorm:"not null" json:"surcharge"`
	CreatedAt    time.Time `json:"created_at"`

	DishOption DishOption `gorm:"foreignKey:DishOptionID" json:"dish_option,omitempty"`
}

// BeforeCreate generates a UUID before creating a new line option
func (o *OrderLineOption) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the OrderLineOption model
func (OrderLineOption) TableName() string {
	return "order_line_options"
}
