package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
)

// ProductPriceFilterParams holds filtering options for the price list
type ProductPriceFilterParams struct {
	ProductType enum.ProductType
	Search      string
	IsActive    *bool
}

// ProductPriceRepository defines the interface for price list operations
type ProductPriceRepository interface {
	Create(ctx context.Context, price *entity.ProductPrice) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductPrice, error)
	Update(ctx context.Context, price *entity.ProductPrice) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, filter ProductPriceFilterParams) ([]entity.ProductPrice, int64, error)
	// FindDuplicate looks for another entry with the same name, type and
	// brand, ignoring the entry with id exclude
	FindDuplicate(ctx context.Context, name string, productType enum.ProductType, brand *string, exclude uuid.UUID) (*entity.ProductPrice, error)
}
