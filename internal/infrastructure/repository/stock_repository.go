package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	domainRepo "github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"gorm.io/gorm"
)

const lowStockCondition = "(quantity_in - quantity_used) <= low_stock_threshold"

type stockRepository struct {
	db *gorm.DB
}

// NewStockRepository creates a new stock batch repository
func NewStockRepository(db *gorm.DB) domainRepo.StockRepository {
	return &stockRepository{db: db}
}

func (r *stockRepository) Create(ctx context.Context, batch *entity.StockBatch) error {
	return r.db.WithContext(ctx).Create(batch).Error
}

func (r *stockRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error) {
	var batch entity.StockBatch
	err := r.db.WithContext(ctx).First(&batch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &batch, err
}

func (r *stockRepository) GetWithConsumptions(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error) {
	var batch entity.StockBatch
	err := r.db.WithContext(ctx).
		Preload("Consumptions", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		First(&batch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &batch, err
}

func (r *stockRepository) Update(ctx context.Context, batch *entity.StockBatch) error {
	return r.db.WithContext(ctx).
		Model(batch).
		Select("product_name", "batch_no", "quantity_in", "unit_price", "supplier",
			"purchase_date", "is_defective", "low_stock_threshold", "updated_at").
		Updates(batch).Error
}

func (r *stockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.StockBatch{}, "id = ?", id).Error
}

func (r *stockRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.StockFilterParams) ([]entity.StockBatch, int64, error) {
	var batches []entity.StockBatch
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.StockBatch{}).
		Scopes(Search(filter.Search, "product_name", "batch_no", "supplier"))

	if filter.LowStock {
		query = query.Where(lowStockCondition)
	}
	if filter.Defective {
		query = query.Where("is_defective = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("created_at DESC").
		Find(&batches).Error

	return batches, total, err
}

func (r *stockRepository) Consume(ctx context.Context, consumption *entity.StockConsumption) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The increment goes first so a missing batch never leaves a
		// dangling consumption row behind.
		res := tx.Model(&entity.StockBatch{}).
			Where("id = ?", consumption.StockBatchID).
			UpdateColumn("quantity_used", gorm.Expr("quantity_used + ?", consumption.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainRepo.ErrNotFound
		}
		return tx.Create(consumption).Error
	})
}

func (r *stockRepository) SumConsumed(ctx context.Context, batchID uuid.UUID) (int64, error) {
	var row struct {
		Total int64
	}
	err := r.db.WithContext(ctx).Model(&entity.StockConsumption{}).
		Select("COALESCE(SUM(quantity), 0) AS total").
		Where("stock_batch_id = ?", batchID).
		Scan(&row).Error
	return row.Total, err
}

func (r *stockRepository) CountLowStock(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.StockBatch{}).
		Where(lowStockCondition).
		Count(&count).Error
	return count, err
}

func (r *stockRepository) CountDefective(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.StockBatch{}).
		Where("is_defective = ?", true).
		Count(&count).Error
	return count, err
}
