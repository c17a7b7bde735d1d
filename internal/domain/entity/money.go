package entity

import "github.com/shopspring/decimal"

func init() {
	// Amounts are rendered as JSON numbers, which is what the dashboard reads.
	decimal.MarshalJSONWithoutQuotes = true
}

// MoneyFromFloat converts a request amount to a decimal rounded to paise
func MoneyFromFloat(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
