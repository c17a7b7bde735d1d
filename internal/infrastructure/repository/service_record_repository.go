package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	domainRepo "github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"gorm.io/gorm"
)

type serviceRecordRepository struct {
	db *gorm.DB
}

// NewServiceRecordRepository creates a new service record repository
func NewServiceRecordRepository(db *gorm.DB) domainRepo.ServiceRecordRepository {
	return &serviceRecordRepository{db: db}
}

func (r *serviceRecordRepository) Create(ctx context.Context, record *entity.ServiceRecord) error {
	return r.db.WithContext(ctx).Omit("Customer", "CreatedBy", "Consumptions").Create(record).Error
}

func (r *serviceRecordRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceRecord, error) {
	var record entity.ServiceRecord
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("CreatedBy").
		Preload("Consumptions").
		Preload("Consumptions.StockBatch", func(db *gorm.DB) *gorm.DB {
			return db.Unscoped()
		}).
		First(&record, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &record, err
}

func (r *serviceRecordRepository) Update(ctx context.Context, record *entity.ServiceRecord) error {
	return r.db.WithContext(ctx).
		Model(record).
		Select("service_date", "service_types", "labour_charge", "parts_charge", "amount_paid",
			"next_due_date", "feedback_text", "feedback_rating", "complaint_flag",
			"complaint_description", "reminder_sent_at", "updated_at").
		Updates(record).Error
}

func (r *serviceRecordRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.ServiceRecordFilterParams) ([]entity.ServiceRecord, int64, error) {
	var records []entity.ServiceRecord
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ServiceRecord{})

	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if serviceType := strings.TrimSpace(filter.ServiceType); serviceType != "" {
		// matches the quoted tag inside the JSON array text on both drivers
		query = query.Where(`CAST(service_types AS TEXT) LIKE ? ESCAPE '\'`, `%"`+escapeLike(serviceType)+`"%`)
	}
	if filter.StartDate != nil {
		query = query.Where("service_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("service_date < ?", *filter.EndDate)
	}
	if filter.ComplaintsOnly {
		query = query.Where("complaint_flag = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Preload("Customer").
		Preload("CreatedBy").
		Order("service_date DESC, created_at DESC").
		Find(&records).Error

	return records, total, err
}

func (r *serviceRecordRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]entity.ServiceRecord, error) {
	var records []entity.ServiceRecord
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("next_due_date >= ? AND next_due_date < ?", from, to).
		Where("reminder_sent_at IS NULL").
		Order("next_due_date ASC").
		Find(&records).Error
	return records, err
}

func (r *serviceRecordRepository) MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.ServiceRecord{}).
		Where("id = ?", id).
		Update("reminder_sent_at", at).Error
}
