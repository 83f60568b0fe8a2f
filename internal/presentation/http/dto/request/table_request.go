package request

import (
	"time"

	"github.com/sangkips/dinehub-api/internal/domain/enum"
)

// CreateTableRequest represents a table creation request
type CreateTableRequest struct {
	Number   int `json:"number" binding:"required,min=1"`
	Capacity int `json:"capacity" binding:"required,min=1"`
}

// UpdateTableRequest represents a table update request
type UpdateTableRequest struct {
	Number   int `json:"number" binding:"required,min=1"`
	Capacity int `json:"capacity" binding:"required,min=1"`
}

// UpdateTableStatusRequest represents a manual table status change
type UpdateTableStatusRequest struct {
	Status enum.TableStatus `json:"status"`
}

// CreateReservationRequest represents a table booking request
type CreateReservationRequest struct {
	GuestName  string    `json:"guest_name" binding:"required"`
	GuestPhone string    `json:"guest_phone"`
	PartySize  int       `json:"party_size" binding:"required,min=1"`
	ReservedAt time.Time `json:"reserved_at" binding:"required"`
}
