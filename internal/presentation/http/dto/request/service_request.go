package request

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// StringList accepts either a JSON array of strings or a single
// comma-separated string
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*l = strings.Split(single, ",")
	return nil
}

// ProductUsedRequest is one stock batch drawn during a visit. Its fields
// are kept raw so a malformed pair fails on its own when it is applied
// rather than failing the whole visit at binding.
type ProductUsedRequest struct {
	StockID      json.RawMessage `json:"stock_id"`
	QuantityUsed json.RawMessage `json:"quantity_used"`
}

// UnmarshalJSON accepts any JSON value; anything but an object leaves
// both fields empty.
func (p *ProductUsedRequest) UnmarshalJSON(data []byte) error {
	var fields struct {
		StockID      json.RawMessage `json:"stock_id"`
		QuantityUsed json.RawMessage `json:"quantity_used"`
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		*p = ProductUsedRequest{}
		return nil
	}
	p.StockID, p.QuantityUsed = fields.StockID, fields.QuantityUsed
	return nil
}

// BatchRef returns the stock reference as sent. A string is unquoted;
// any other value keeps its JSON text so it is reported as given.
func (p ProductUsedRequest) BatchRef() string {
	var ref string
	if err := json.Unmarshal(p.StockID, &ref); err == nil {
		return ref
	}
	return string(bytes.TrimSpace(p.StockID))
}

// Quantity returns the whole-number quantity, or 0 when it is missing,
// fractional or not a number
func (p ProductUsedRequest) Quantity() int {
	var n int
	if err := json.Unmarshal(p.QuantityUsed, &n); err != nil {
		return 0
	}
	return n
}

// CreateServiceRequest records a service visit. Required fields are checked
// by the service so that all missing fields are reported together.
type CreateServiceRequest struct {
	CustomerID   string               `json:"user_id"`
	ServiceDate  string               `json:"service_date"`
	ServiceTypes StringList           `json:"service_type"`
	LabourCharge decimal.Decimal      `json:"labour_charge"`
	PartsCharge  decimal.Decimal      `json:"parts_charge"`
	AmountPaid   *decimal.Decimal     `json:"amount_paid"`
	NextDueDate  *string              `json:"next_due_date"`
	ProductsUsed []ProductUsedRequest `json:"products_used" binding:"omitempty,max=50"`
}

// UpdateServiceRequest represents a partial update of a visit
type UpdateServiceRequest struct {
	ServiceDate          *string          `json:"service_date"`
	ServiceTypes         StringList       `json:"service_type"`
	LabourCharge         *decimal.Decimal `json:"labour_charge"`
	PartsCharge          *decimal.Decimal `json:"parts_charge"`
	AmountPaid           *decimal.Decimal `json:"amount_paid"`
	NextDueDate          *string          `json:"next_due_date"`
	FeedbackText         *string          `json:"feedback_text" binding:"omitempty,max=2000"`
	FeedbackRating       *int             `json:"feedback_rating" binding:"omitempty,min=1,max=5"`
	ComplaintFlag        *bool            `json:"complaint_flag"`
	ComplaintDescription *string          `json:"complaint_description" binding:"omitempty,max=2000"`
}
