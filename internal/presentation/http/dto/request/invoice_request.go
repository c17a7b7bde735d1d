package request

import "github.com/shopspring/decimal"

// CreateInvoiceRequest raises the invoice for a service visit
type CreateInvoiceRequest struct {
	ServiceID      string           `json:"service_id" binding:"required,uuid"`
	DiscountAmount decimal.Decimal  `json:"discount_amount"`
	GSTRate        *decimal.Decimal `json:"gst_rate"`
	IsInterstate   bool             `json:"is_interstate"`
}
