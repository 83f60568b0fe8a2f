package request

// OpenShiftRequest represents a shift opening request
type OpenShiftRequest struct {
	OpeningCash int64 `json:"opening_cash" binding:"min=0"`
}

// CloseShiftRequest represents a shift close with the counted drawer
type CloseShiftRequest struct {
	ActualCash int64 `json:"actual_cash" binding:"min=0"`
}
