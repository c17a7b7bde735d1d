package request

import "github.com/shopspring/decimal"

// CreateStockRequest records a received batch
type CreateStockRequest struct {
	ProductName       string          `json:"product_name"`
	BatchNo           string          `json:"batch_no"`
	QuantityIn        int             `json:"quantity_in"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	Supplier          string          `json:"supplier"`
	PurchaseDate      *string         `json:"purchase_date"`
	IsDefective       bool            `json:"is_defective"`
	LowStockThreshold *int            `json:"low_stock_threshold" binding:"omitempty,min=0"`
}

// UpdateStockRequest corrects a batch. quantity_used is not accepted; it
// only changes through consumption.
type UpdateStockRequest struct {
	ProductName       *string          `json:"product_name" binding:"omitempty,min=1,max=255"`
	BatchNo           *string          `json:"batch_no" binding:"omitempty,min=1,max=100"`
	QuantityIn        *int             `json:"quantity_in" binding:"omitempty,min=0"`
	UnitPrice         *decimal.Decimal `json:"unit_price"`
	Supplier          *string          `json:"supplier" binding:"omitempty,max=255"`
	PurchaseDate      *string          `json:"purchase_date"`
	IsDefective       *bool            `json:"is_defective"`
	LowStockThreshold *int             `json:"low_stock_threshold" binding:"omitempty,min=0"`
}
