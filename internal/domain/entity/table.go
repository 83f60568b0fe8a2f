package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/dinehub-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Table represents a physical dining table on the floor
type Table struct {
	ID        uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	Number    int              `gorm:"unique;not null" json:"number"`
	Capacity  int              `gorm:"default:4" json:"capacity"`
	Status    enum.TableStatus `gorm:"default:0;index" json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new table
func (t *Table) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Table model
func (Table) TableName() string {
	return "tables"
}

// Reservation represents a booking that blocks a table around its slot
type Reservation struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TableID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"table_id"`
	GuestName  string         `gorm:"size:255;not null" json:"guest_name"`
	GuestPhone string         `gorm:"size:50" json:"guest_phone"`
	PartySize  int            `gorm:"default:2" json:"party_size"`
	ReservedAt time.Time      `gorm:"not null;index" json:"reserved_at"`
	Cancelled  bool           `gorm:"default:false" json:"cancelled"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Table Table `gorm:"foreignKey:TableID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new reservation
func (r *Reservation) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Reservation model
func (Reservation) TableName() string {
	return "reservations"
}
