package repository

import (
	"context"
	"time"

	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	domainRepo "github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

type sumCountRow struct {
	Total decimal.Decimal
	Count int64
}

func (r *analyticsRepository) ServiceRevenue(ctx context.Context, from, to time.Time) (decimal.Decimal, int64, error) {
	var row sumCountRow
	err := r.db.WithContext(ctx).Model(&entity.ServiceRecord{}).
		Select("COALESCE(SUM(amount_paid), 0) AS total, COUNT(*) AS count").
		Where("service_date >= ? AND service_date < ?", from, to).
		Scan(&row).Error
	return row.Total, row.Count, err
}

func (r *analyticsRepository) TotalServiceRevenue(ctx context.Context) (decimal.Decimal, int64, error) {
	var row sumCountRow
	err := r.db.WithContext(ctx).Model(&entity.ServiceRecord{}).
		Select("COALESCE(SUM(amount_paid), 0) AS total, COUNT(*) AS count").
		Scan(&row).Error
	return row.Total, row.Count, err
}

func (r *analyticsRepository) InvoiceTotals(ctx context.Context) (*domainRepo.InvoiceTotals, error) {
	var row struct {
		Count       int64
		UnpaidCount int64
		Billed      decimal.Decimal
		Collected   decimal.Decimal
	}
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Select(`COUNT(*) AS count,
			COALESCE(SUM(CASE WHEN payment_received THEN 0 ELSE 1 END), 0) AS unpaid_count,
			COALESCE(SUM(final_amount), 0) AS billed,
			COALESCE(SUM(CASE WHEN payment_received THEN final_amount ELSE 0 END), 0) AS collected`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &domainRepo.InvoiceTotals{
		Count:       row.Count,
		UnpaidCount: row.UnpaidCount,
		Billed:      row.Billed,
		Collected:   row.Collected,
	}, nil
}

func (r *analyticsRepository) CountCustomers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Customer{}).Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountActiveCustomers(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ServiceRecord{}).
		Where("service_date >= ?", since).
		Distinct("customer_id").
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountComplaints(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.ServiceRecord{}).
		Where("complaint_flag = ?", true).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) RevenuePoints(ctx context.Context, since time.Time) ([]domainRepo.RevenuePoint, error) {
	var points []domainRepo.RevenuePoint
	err := r.db.WithContext(ctx).Model(&entity.ServiceRecord{}).
		Select("service_date, amount_paid, service_types").
		Where("service_date >= ?", since).
		Order("service_date ASC").
		Scan(&points).Error
	return points, err
}
