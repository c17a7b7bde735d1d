package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	domainRepo "github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(db *gorm.DB) domainRepo.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (r *invoiceRepository) CreateNumbered(ctx context.Context, invoice *entity.Invoice, sequence string, number domainRepo.InvoiceNumberFunc) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		seq, err := nextSequenceValue(tx, sequence)
		if err != nil {
			return fmt.Errorf("next %s number: %w", sequence, err)
		}
		invoice.InvoiceNo = number(seq)
		// only the invoice insert can report an existing invoice; a
		// counter failure must not read as one
		return translateError(tx.Omit("Service").Create(invoice).Error)
	})
}

// nextSequenceValue increments the named counter and returns its new value.
// A missing counter row is created first with ON CONFLICT DO NOTHING, so
// two first-time callers never collide on its key. The UPDATE takes the
// row lock, so concurrent transactions are serialised until commit.
func nextSequenceValue(tx *gorm.DB, name string) (int64, error) {
	err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&entity.InvoiceSequence{Name: name, UpdatedAt: time.Now()}).Error
	if err != nil {
		return 0, err
	}

	err = tx.Model(&entity.InvoiceSequence{}).
		Where("name = ?", name).
		Updates(map[string]interface{}{
			"last_value": gorm.Expr("last_value + 1"),
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return 0, err
	}

	var seq entity.InvoiceSequence
	if err := tx.First(&seq, "name = ?", name).Error; err != nil {
		return 0, err
	}
	return seq.LastValue, nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Service.Customer").
		First(&invoice, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) GetByServiceID(ctx context.Context, serviceID uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Service.Customer").
		First(&invoice, "service_id = ?", serviceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &invoice, err
}

func (r *invoiceRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.InvoiceFilterParams) ([]entity.Invoice, int64, error) {
	var invoices []entity.Invoice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Invoice{})

	if filter.ServiceID != nil {
		query = query.Where("service_id = ?", *filter.ServiceID)
	}
	if filter.Sent != nil {
		query = query.Where("sent_on_whatsapp = ?", *filter.Sent)
	}
	if filter.Paid != nil {
		query = query.Where("payment_received = ?", *filter.Paid)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Preload("Service").
		Preload("Service.Customer").
		Order("created_at DESC").
		Find(&invoices).Error

	return invoices, total, err
}

func (r *invoiceRepository) CountByServiceID(ctx context.Context, serviceID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("service_id = ?", serviceID).
		Count(&count).Error
	return count, err
}

func (r *invoiceRepository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sent_on_whatsapp": true,
			"sent_at":          at,
		}).Error
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Where("id = ? AND payment_received = ?", id, false).
		Updates(map[string]interface{}{
			"payment_received": true,
			"payment_date":     at,
		}).Error
}
