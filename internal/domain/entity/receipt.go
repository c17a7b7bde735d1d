package entity

import "github.com/shopspring/decimal"

// ReceiptHeader is the shop block printed at the top of a receipt
type ReceiptHeader struct {
	ShopName string `json:"shop_name"`
	Address  string `json:"address,omitempty"`
	Phone    string `json:"phone,omitempty"`
	GSTIN    string `json:"gstin,omitempty"`
}

// Receipt is the counter copy of an invoice. It is built at print time
// and never stored.
type Receipt struct {
	Header       ReceiptHeader   `json:"header"`
	InvoiceNo    string          `json:"invoice_no"`
	Date         string          `json:"date"`
	Customer     string          `json:"customer"`
	VehicleNo    string          `json:"vehicle_no"`
	ServiceTypes []string        `json:"service_types"`
	Labour       decimal.Decimal `json:"labour"`
	Parts        decimal.Decimal `json:"parts"`
	Discount     decimal.Decimal `json:"discount"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	CGST         decimal.Decimal `json:"cgst"`
	SGST         decimal.Decimal `json:"sgst"`
	IGST         decimal.Decimal `json:"igst"`
	Total        decimal.Decimal `json:"total"`
	Paid         bool            `json:"paid"`
}
