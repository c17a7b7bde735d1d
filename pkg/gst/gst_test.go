package gst

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		base       string
		rate       string
		interstate bool
		cgst       string
		sgst       string
		igst       string
		total      string
	}{
		{"intrastate 18%", "1000", "18", false, "90", "90", "0", "1180"},
		{"interstate 18%", "1000", "18", true, "0", "0", "180", "1180"},
		{"zero base", "0", "18", false, "0", "0", "0", "0"},
		{"zero rate", "2500", "0", false, "0", "0", "0", "2500"},
		{"odd paise split", "100.01", "5", false, "2.50025", "2.50025", "0", "105.0105"},
		{"28% interstate", "3499.50", "28", true, "0", "0", "979.86", "4479.36"},
		{"negative base is not rejected", "-100", "18", false, "-9", "-9", "0", "-118"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(d(tt.base), d(tt.rate), tt.interstate)

			assert.True(t, d(tt.cgst).Equal(got.CGST), "cgst: got %s", got.CGST)
			assert.True(t, d(tt.sgst).Equal(got.SGST), "sgst: got %s", got.SGST)
			assert.True(t, d(tt.igst).Equal(got.IGST), "igst: got %s", got.IGST)
			assert.True(t, d(tt.total).Equal(got.Total), "total: got %s", got.Total)
		})
	}
}

func TestCalculateSplitProperties(t *testing.T) {
	bases := []string{"0", "1", "99.99", "1000", "123456.78", "0.01"}
	rates := []string{"0", "5", "12", "18", "28", "0.25"}

	for _, b := range bases {
		for _, r := range rates {
			base, rate := d(b), d(r)
			expected := base.Mul(rate).Div(decimal.NewFromInt(100))

			intra := Calculate(base, rate, false)
			assert.True(t, intra.CGST.Equal(intra.SGST), "base=%s rate=%s", b, r)
			assert.True(t, intra.IGST.IsZero())
			assert.True(t, intra.CGST.Add(intra.SGST).Equal(expected), "base=%s rate=%s", b, r)
			assert.True(t, intra.Total.Equal(base.Add(intra.CGST).Add(intra.SGST)))

			inter := Calculate(base, rate, true)
			assert.True(t, inter.CGST.IsZero())
			assert.True(t, inter.SGST.IsZero())
			assert.True(t, inter.IGST.Equal(expected), "base=%s rate=%s", b, r)
			assert.True(t, inter.Total.Equal(base.Add(inter.IGST)))
		}
	}
}

func TestCalculateDefault(t *testing.T) {
	got := CalculateDefault(d("1000"))
	assert.True(t, d("180").Equal(got.GST))
	assert.True(t, d("1180").Equal(got.Total))
}
