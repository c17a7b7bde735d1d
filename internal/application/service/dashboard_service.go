package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

const (
	trendMonths        = 6
	lowStockPreviewMax = 10
)

// DashboardService provides dashboard statistics
type DashboardService struct {
	analyticsRepo repository.AnalyticsRepository
	stockRepo     repository.StockRepository
	now           func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(analyticsRepo repository.AnalyticsRepository, stockRepo repository.StockRepository) *DashboardService {
	return &DashboardService{
		analyticsRepo: analyticsRepo,
		stockRepo:     stockRepo,
		now:           time.Now,
	}
}

// DashboardStats represents dashboard statistics
type DashboardStats struct {
	TotalRevenue     decimal.Decimal     `json:"total_revenue"`
	PeriodRevenue    decimal.Decimal     `json:"period_revenue"`
	PeriodServices   int64               `json:"period_services"`
	InvoiceRevenue   decimal.Decimal     `json:"invoice_revenue"`
	CollectedRevenue decimal.Decimal     `json:"collected_revenue"`
	TotalServices    int64               `json:"total_services"`
	TotalInvoices    int64               `json:"total_invoices"`
	UnpaidInvoices   int64               `json:"unpaid_invoices"`
	TotalCustomers   int64               `json:"total_customers"`
	ActiveCustomers  int64               `json:"active_customers"`
	Complaints       int64               `json:"complaints"`
	LowStockCount    int64               `json:"low_stock_count"`
	DefectiveCount   int64               `json:"defective_count"`
	ServiceTypes     []ServiceTypePoint  `json:"service_types"`
	MonthlyRevenue   []MonthlyPoint      `json:"monthly_revenue"`
	LowStockItems    []entity.StockBatch `json:"low_stock_items"`
}

// ServiceTypePoint is the number of visits and revenue for one service type
type ServiceTypePoint struct {
	ServiceType string          `json:"service_type"`
	Count       int64           `json:"count"`
	Revenue     decimal.Decimal `json:"revenue"`
}

// MonthlyPoint is the revenue of one calendar month
type MonthlyPoint struct {
	Month   string          `json:"month"`
	Count   int64           `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// GetDashboardStats returns dashboard statistics. The period defaults to the
// current calendar month; to is exclusive.
func (s *DashboardService) GetDashboardStats(ctx context.Context, from, to *time.Time) (*DashboardStats, error) {
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	periodFrom, periodTo := monthStart, monthStart.AddDate(0, 1, 0)
	if from != nil {
		periodFrom = from.UTC()
	}
	if to != nil {
		periodTo = to.UTC()
	}
	if !periodTo.After(periodFrom) {
		return nil, apperror.NewBadRequestError("end_date must be after start_date")
	}

	stats := &DashboardStats{}
	var err error

	if stats.TotalRevenue, stats.TotalServices, err = s.analyticsRepo.TotalServiceRevenue(ctx); err != nil {
		return nil, apperror.NewUpstreamError("Failed to load revenue", err)
	}
	if stats.PeriodRevenue, stats.PeriodServices, err = s.analyticsRepo.ServiceRevenue(ctx, periodFrom, periodTo); err != nil {
		return nil, apperror.NewUpstreamError("Failed to load revenue", err)
	}

	totals, err := s.analyticsRepo.InvoiceTotals(ctx)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load invoice totals", err)
	}
	stats.InvoiceRevenue = totals.Billed
	stats.CollectedRevenue = totals.Collected
	stats.TotalInvoices = totals.Count
	stats.UnpaidInvoices = totals.UnpaidCount

	if stats.TotalCustomers, err = s.analyticsRepo.CountCustomers(ctx); err != nil {
		return nil, apperror.NewUpstreamError("Failed to count customers", err)
	}
	if stats.ActiveCustomers, err = s.analyticsRepo.CountActiveCustomers(ctx, periodFrom); err != nil {
		return nil, apperror.NewUpstreamError("Failed to count customers", err)
	}
	if stats.Complaints, err = s.analyticsRepo.CountComplaints(ctx); err != nil {
		return nil, apperror.NewUpstreamError("Failed to count complaints", err)
	}
	if stats.LowStockCount, err = s.stockRepo.CountLowStock(ctx); err != nil {
		return nil, apperror.NewUpstreamError("Failed to count stock", err)
	}
	if stats.DefectiveCount, err = s.stockRepo.CountDefective(ctx); err != nil {
		return nil, apperror.NewUpstreamError("Failed to count stock", err)
	}

	preview := &pagination.PaginationParams{Page: 1, PerPage: lowStockPreviewMax}
	stats.LowStockItems, _, err = s.stockRepo.List(ctx, preview, repository.StockFilterParams{LowStock: true})
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to list stock", err)
	}

	trendStart := monthStart.AddDate(0, -(trendMonths - 1), 0)
	since := trendStart
	if periodFrom.Before(since) {
		since = periodFrom
	}
	points, err := s.analyticsRepo.RevenuePoints(ctx, since)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load revenue trend", err)
	}
	stats.MonthlyRevenue = monthlyRevenue(points, trendStart, trendMonths)
	stats.ServiceTypes = serviceTypeBreakdown(points, periodFrom, periodTo)

	return stats, nil
}

// monthlyRevenue buckets points into months starting at start. Months with
// no visits are reported with zero revenue.
func monthlyRevenue(points []repository.RevenuePoint, start time.Time, months int) []MonthlyPoint {
	out := make([]MonthlyPoint, months)
	for i := range out {
		out[i].Month = start.AddDate(0, i, 0).Format("2006-01")
	}
	for _, p := range points {
		d := p.ServiceDate.UTC()
		i := (d.Year()-start.Year())*12 + int(d.Month()) - int(start.Month())
		if i < 0 || i >= months {
			continue
		}
		out[i].Count++
		out[i].Revenue = out[i].Revenue.Add(p.AmountPaid)
	}
	return out
}

// serviceTypeBreakdown credits each visit in [from, to) to every tag it
// carries, highest revenue first
func serviceTypeBreakdown(points []repository.RevenuePoint, from, to time.Time) []ServiceTypePoint {
	byType := map[string]*ServiceTypePoint{}
	for _, p := range points {
		if p.ServiceDate.Before(from) || !p.ServiceDate.Before(to) {
			continue
		}
		var tags []string
		if err := json.Unmarshal(p.ServiceTypes, &tags); err != nil {
			continue
		}
		for _, tag := range tags {
			point, ok := byType[tag]
			if !ok {
				point = &ServiceTypePoint{ServiceType: tag}
				byType[tag] = point
			}
			point.Count++
			point.Revenue = point.Revenue.Add(p.AmountPaid)
		}
	}

	out := make([]ServiceTypePoint, 0, len(byType))
	for _, point := range byType {
		out = append(out, *point)
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Revenue.Cmp(out[j].Revenue); c != 0 {
			return c > 0
		}
		return out[i].ServiceType < out[j].ServiceType
	})
	return out
}
