package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

const duplicatePriceMessage = "Product with same name, type, and brand already exists"

// ProductPriceService maintains the price list used when billing parts
type ProductPriceService struct {
	priceRepo repository.ProductPriceRepository
}

// NewProductPriceService creates a new product price service
func NewProductPriceService(priceRepo repository.ProductPriceRepository) *ProductPriceService {
	return &ProductPriceService{priceRepo: priceRepo}
}

// ProductPriceInput represents a price-list entry to create
type ProductPriceInput struct {
	ProductName string
	ProductType string
	Brand       *string
	Price       decimal.Decimal
	Unit        string
	IsActive    *bool
}

// CreateProductPrice adds a price-list entry. Name, type and brand together
// must be unique.
func (s *ProductPriceService) CreateProductPrice(ctx context.Context, input *ProductPriceInput) (*entity.ProductPrice, error) {
	name := strings.TrimSpace(input.ProductName)
	if name == "" || input.ProductType == "" {
		return nil, apperror.NewBadRequestError("Missing required fields (product_name, product_type, price)")
	}
	productType, err := enum.ParseProductType(input.ProductType)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid product type")
	}
	if input.Price.IsNegative() {
		return nil, apperror.NewBadRequestError("Price cannot be negative")
	}

	price := &entity.ProductPrice{
		ProductName: name,
		ProductType: productType,
		Brand:       cleanOptional(input.Brand),
		Price:       input.Price,
		Unit:        strings.TrimSpace(input.Unit),
		IsActive:    input.IsActive == nil || *input.IsActive,
	}
	if err := s.ensureUnique(ctx, price); err != nil {
		return nil, err
	}

	if err := s.priceRepo.Create(ctx, price); err != nil {
		return nil, apperror.NewUpstreamError("Failed to create product price", err)
	}
	return price, nil
}

// UpdateProductPriceInput represents a partial price-list update
type UpdateProductPriceInput struct {
	ProductName *string
	ProductType *string
	Brand       *string
	Price       *decimal.Decimal
	Unit        *string
	IsActive    *bool
}

// UpdateProductPrice updates a price-list entry
func (s *ProductPriceService) UpdateProductPrice(ctx context.Context, id uuid.UUID, input *UpdateProductPriceInput) (*entity.ProductPrice, error) {
	price, err := s.GetProductPrice(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.ProductName != nil {
		name := strings.TrimSpace(*input.ProductName)
		if name == "" {
			return nil, apperror.NewBadRequestError("Product name cannot be empty")
		}
		price.ProductName = name
	}
	if input.ProductType != nil {
		productType, err := enum.ParseProductType(*input.ProductType)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid product type")
		}
		price.ProductType = productType
	}
	if input.Brand != nil {
		price.Brand = cleanOptional(input.Brand)
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, apperror.NewBadRequestError("Price cannot be negative")
		}
		price.Price = *input.Price
	}
	if input.Unit != nil {
		price.Unit = strings.TrimSpace(*input.Unit)
		if price.Unit == "" {
			price.Unit = entity.DefaultPriceUnit
		}
	}
	if input.IsActive != nil {
		price.IsActive = *input.IsActive
	}

	if err := s.ensureUnique(ctx, price); err != nil {
		return nil, err
	}
	if err := s.priceRepo.Update(ctx, price); err != nil {
		return nil, apperror.NewUpstreamError("Failed to update product price", err)
	}
	return price, nil
}

func (s *ProductPriceService) ensureUnique(ctx context.Context, price *entity.ProductPrice) error {
	existing, err := s.priceRepo.FindDuplicate(ctx, price.ProductName, price.ProductType, price.Brand, price.ID)
	if err != nil {
		return apperror.NewUpstreamError("Failed to check product price", err)
	}
	if existing != nil {
		return apperror.NewDuplicateError(duplicatePriceMessage)
	}
	return nil
}

// DeleteProductPrice removes a price-list entry
func (s *ProductPriceService) DeleteProductPrice(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetProductPrice(ctx, id); err != nil {
		return err
	}
	if err := s.priceRepo.Delete(ctx, id); err != nil {
		return apperror.NewUpstreamError("Failed to delete product price", err)
	}
	return nil
}

// GetProductPrice retrieves a price-list entry by ID
func (s *ProductPriceService) GetProductPrice(ctx context.Context, id uuid.UUID) (*entity.ProductPrice, error) {
	price, err := s.priceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load product price", err)
	}
	if price == nil {
		return nil, apperror.NewNotFoundError("Product price")
	}
	return price, nil
}

// ListProductPrices lists price-list entries
func (s *ProductPriceService) ListProductPrices(ctx context.Context, params *pagination.PaginationParams, filter repository.ProductPriceFilterParams) (*pagination.PaginatedResult[entity.ProductPrice], error) {
	params.Validate()
	prices, total, err := s.priceRepo.List(ctx, params, filter)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to list product prices", err)
	}
	return pagination.NewPaginatedResult(prices, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

func cleanOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
