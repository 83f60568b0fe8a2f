package request

import "github.com/google/uuid"

// CreateVoidRequest represents a staff void request awaiting approval
type CreateVoidRequest struct {
	OrderID uuid.UUID `json:"order_id" binding:"required"`
	LineID  uuid.UUID `json:"line_id" binding:"required"`
	Reason  string    `json:"reason" binding:"required"`
}

// ApproveVoidRequest represents a manager approval of a void request
type ApproveVoidRequest struct {
	ManagerPIN string `json:"manager_pin" binding:"required"`
	Note       string `json:"note"`
}

// RejectVoidRequest represents a manager rejection of a void request
type RejectVoidRequest struct {
	Note string `json:"note"`
}
