// Package gst computes Indian goods-and-services tax splits.
//
// Intrastate supplies are taxed half as CGST and half as SGST; interstate
// supplies carry the whole amount as IGST.
package gst

import "github.com/shopspring/decimal"

// DefaultRate is the GST percentage applied when the caller gives none
var DefaultRate = decimal.NewFromInt(18)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.RequireFromString("0.5")
)

// Breakdown is the tax split for one taxable amount
type Breakdown struct {
	CGST  decimal.Decimal `json:"cgst"`
	SGST  decimal.Decimal `json:"sgst"`
	IGST  decimal.Decimal `json:"igst"`
	GST   decimal.Decimal `json:"gst"`
	Total decimal.Decimal `json:"total"`
}

// Calculate splits the tax on base at rate percent. Negative amounts are not
// rejected and yield negative tax.
func Calculate(base, rate decimal.Decimal, interstate bool) Breakdown {
	amount := base.Mul(rate).Div(hundred)

	b := Breakdown{
		CGST:  decimal.Zero,
		SGST:  decimal.Zero,
		IGST:  decimal.Zero,
		GST:   amount,
		Total: base.Add(amount),
	}
	if interstate {
		b.IGST = amount
		return b
	}

	// multiplying by 0.5 is exact, so CGST + SGST always equals GST
	b.CGST = amount.Mul(half)
	b.SGST = b.CGST
	return b
}

// CalculateDefault applies DefaultRate to an intrastate supply
func CalculateDefault(base decimal.Decimal) Breakdown {
	return Calculate(base, DefaultRate, false)
}
