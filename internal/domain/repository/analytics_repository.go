package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RevenuePoint is the amount paid for one visit with its raw service types
type RevenuePoint struct {
	ServiceDate  time.Time
	AmountPaid   decimal.Decimal
	ServiceTypes []byte
}

// InvoiceTotals aggregates the invoice ledger
type InvoiceTotals struct {
	Count       int64
	UnpaidCount int64
	Billed      decimal.Decimal
	Collected   decimal.Decimal
}

// AnalyticsRepository defines the read-only queries behind the dashboard
type AnalyticsRepository interface {
	// ServiceRevenue sums amount paid over visits dated in [from, to)
	ServiceRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error)
	TotalServiceRevenue(ctx context.Context) (decimal.Decimal, int64, error)
	InvoiceTotals(ctx context.Context) (*InvoiceTotals, error)
	CountCustomers(ctx context.Context) (int64, error)
	// CountActiveCustomers counts customers with a visit on or after since
	CountActiveCustomers(ctx context.Context, since time.Time) (int64, error)
	CountComplaints(ctx context.Context) (int64, error)
	// RevenuePoints returns visits dated on or after since, oldest first
	RevenuePoints(ctx context.Context, since time.Time) ([]RevenuePoint, error)
}
