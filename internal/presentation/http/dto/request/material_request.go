package request

// CreateMaterialRequest represents a raw material creation request
type CreateMaterialRequest struct {
	Name              string  `json:"name" binding:"required"`
	Unit              string  `json:"unit" binding:"required"`
	OnHand            float64 `json:"on_hand" binding:"min=0"`
	MinThreshold      float64 `json:"min_threshold" binding:"min=0"`
	LastPurchasePrice int64   `json:"last_purchase_price" binding:"min=0"`
}

// UpdateMaterialRequest represents a raw material update request
type UpdateMaterialRequest struct {
	Name              string  `json:"name" binding:"required"`
	Unit              string  `json:"unit" binding:"required"`
	MinThreshold      float64 `json:"min_threshold" binding:"min=0"`
	LastPurchasePrice int64   `json:"last_purchase_price" binding:"min=0"`
}

// AddStockRequest represents a stock intake against a material
type AddStockRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}
