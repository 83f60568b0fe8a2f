package request

import "github.com/google/uuid"

// SplitByItemsRequest represents a request to move lines onto a new bill
type SplitByItemsRequest struct {
	LineIDs []uuid.UUID `json:"line_ids" binding:"required,min=1"`
}

// SplitByPeopleRequest represents an even bill split request
type SplitByPeopleRequest struct {
	People int `json:"people" binding:"required,min=2"`
}

// MergeInvoicesRequest represents a request to merge open bills on one table
type MergeInvoicesRequest struct {
	InvoiceIDs []uuid.UUID `json:"invoice_ids" binding:"required,min=2"`
}
