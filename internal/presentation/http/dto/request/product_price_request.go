package request

import "github.com/shopspring/decimal"

// CreateProductPriceRequest adds a price-list entry
type CreateProductPriceRequest struct {
	ProductName string          `json:"product_name" binding:"required,max=255"`
	ProductType string          `json:"product_type" binding:"required"`
	Brand       *string         `json:"brand" binding:"omitempty,max=100"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit" binding:"omitempty,max=50"`
	IsActive    *bool           `json:"is_active"`
}

// UpdateProductPriceRequest represents a partial price-list update
type UpdateProductPriceRequest struct {
	ProductName *string          `json:"product_name" binding:"omitempty,min=1,max=255"`
	ProductType *string          `json:"product_type"`
	Brand       *string          `json:"brand" binding:"omitempty,max=100"`
	Price       *decimal.Decimal `json:"price"`
	Unit        *string          `json:"unit" binding:"omitempty,max=50"`
	IsActive    *bool            `json:"is_active"`
}
