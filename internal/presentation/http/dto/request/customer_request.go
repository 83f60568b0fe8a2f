package request

// CreateCustomerRequest represents a loyalty member enrollment request
type CreateCustomerRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone string  `json:"phone" binding:"required"`
	Email *string `json:"email" binding:"omitempty,email"`
}

// UpdateCustomerRequest represents a loyalty member update request
type UpdateCustomerRequest struct {
	Name  string  `json:"name" binding:"required"`
	Email *string `json:"email" binding:"omitempty,email"`
}
