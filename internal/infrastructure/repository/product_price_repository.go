package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	domainRepo "github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"gorm.io/gorm"
)

type productPriceRepository struct {
	db *gorm.DB
}

// NewProductPriceRepository creates a new price list repository
func NewProductPriceRepository(db *gorm.DB) domainRepo.ProductPriceRepository {
	return &productPriceRepository{db: db}
}

func (r *productPriceRepository) Create(ctx context.Context, price *entity.ProductPrice) error {
	return r.db.WithContext(ctx).Create(price).Error
}

func (r *productPriceRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductPrice, error) {
	var price entity.ProductPrice
	err := r.db.WithContext(ctx).First(&price, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &price, err
}

func (r *productPriceRepository) Update(ctx context.Context, price *entity.ProductPrice) error {
	return r.db.WithContext(ctx).Save(price).Error
}

func (r *productPriceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.ProductPrice{}, "id = ?", id).Error
}

func (r *productPriceRepository) List(ctx context.Context, params *pagination.PaginationParams, filter domainRepo.ProductPriceFilterParams) ([]entity.ProductPrice, int64, error) {
	var prices []entity.ProductPrice
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ProductPrice{}).
		Scopes(Search(filter.Search, "product_name", "brand"))

	if filter.ProductType != "" {
		query = query.Where("product_type = ?", filter.ProductType)
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("product_type ASC, product_name ASC").
		Find(&prices).Error

	return prices, total, err
}

func (r *productPriceRepository) FindDuplicate(ctx context.Context, name string, productType enum.ProductType, brand *string, exclude uuid.UUID) (*entity.ProductPrice, error) {
	query := r.db.WithContext(ctx).
		Where("LOWER(product_name) = ? AND product_type = ?", strings.ToLower(strings.TrimSpace(name)), productType)

	if brand == nil || strings.TrimSpace(*brand) == "" {
		query = query.Where("(brand IS NULL OR brand = '')")
	} else {
		query = query.Where("LOWER(brand) = ?", strings.ToLower(strings.TrimSpace(*brand)))
	}
	if exclude != uuid.Nil {
		query = query.Where("id <> ?", exclude)
	}

	var price entity.ProductPrice
	err := query.First(&price).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &price, err
}
