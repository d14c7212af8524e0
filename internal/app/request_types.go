package app

import "github.com/shopspring/decimal"

// UpdateStockRequest is the input for UpdateStock.
type UpdateStockRequest struct {
	IngredientID string          `json:"ingredientId"`
	CurrentStock decimal.Decimal `json:"currentStock"`
}

// Options holds tunables of the application service.
type Options struct {
	// TopN is the dashboard ranking size used when the caller passes none.
	TopN int
}
