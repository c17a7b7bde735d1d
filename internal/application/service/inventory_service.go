package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"github.com/shopspring/decimal"
)

// InventoryService manages stock batches and the consumption ledger
type InventoryService struct {
	stockRepo repository.StockRepository
}

// NewInventoryService creates a new inventory service
func NewInventoryService(stockRepo repository.StockRepository) *InventoryService {
	return &InventoryService{stockRepo: stockRepo}
}

// CreateStockInput represents a stock intake
type CreateStockInput struct {
	ProductName       string
	BatchNo           string
	QuantityIn        int
	UnitPrice         decimal.Decimal
	Supplier          string
	PurchaseDate      *time.Time
	IsDefective       bool
	LowStockThreshold *int
}

// CreateStock records a newly received batch
func (s *InventoryService) CreateStock(ctx context.Context, input *CreateStockInput) (*entity.StockBatch, error) {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(input.ProductName) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "product_name", Message: "Product name is required"})
	}
	if strings.TrimSpace(input.BatchNo) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "batch_no", Message: "Batch number is required"})
	}
	if input.QuantityIn <= 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "quantity_in", Message: "Quantity must be a positive number"})
	}
	if input.UnitPrice.IsNegative() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "unit_price", Message: "Unit price cannot be negative"})
	}
	if input.LowStockThreshold != nil && *input.LowStockThreshold < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "low_stock_threshold", Message: "Threshold cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	batch := &entity.StockBatch{
		ProductName:       strings.TrimSpace(input.ProductName),
		BatchNo:           strings.TrimSpace(input.BatchNo),
		QuantityIn:        input.QuantityIn,
		UnitPrice:         input.UnitPrice,
		Supplier:          strings.TrimSpace(input.Supplier),
		PurchaseDate:      time.Now().UTC(),
		IsDefective:       input.IsDefective,
		LowStockThreshold: entity.DefaultLowStockThreshold,
	}
	if input.PurchaseDate != nil {
		batch.PurchaseDate = input.PurchaseDate.UTC()
	}
	if input.LowStockThreshold != nil {
		batch.LowStockThreshold = *input.LowStockThreshold
	}

	if err := s.stockRepo.Create(ctx, batch); err != nil {
		return nil, apperror.NewUpstreamError("Failed to create stock", err)
	}
	return batch, nil
}

// UpdateStockInput carries an administrative correction. QuantityUsed is
// not editable; it only moves through consumption.
type UpdateStockInput struct {
	ProductName       *string
	BatchNo           *string
	QuantityIn        *int
	UnitPrice         *decimal.Decimal
	Supplier          *string
	PurchaseDate      *time.Time
	IsDefective       *bool
	LowStockThreshold *int
}

// UpdateStock applies a correction to a batch
func (s *InventoryService) UpdateStock(ctx context.Context, id uuid.UUID, input *UpdateStockInput) (*entity.StockBatch, error) {
	batch, err := s.stockRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load stock", err)
	}
	if batch == nil {
		return nil, apperror.NewNotFoundError("Stock")
	}

	if input.ProductName != nil {
		if strings.TrimSpace(*input.ProductName) == "" {
			return nil, apperror.NewBadRequestError("Product name cannot be empty")
		}
		batch.ProductName = strings.TrimSpace(*input.ProductName)
	}
	if input.BatchNo != nil {
		batch.BatchNo = strings.TrimSpace(*input.BatchNo)
	}
	if input.QuantityIn != nil {
		if *input.QuantityIn < batch.QuantityUsed {
			return nil, apperror.NewBadRequestError("Quantity received cannot be less than the quantity already used")
		}
		batch.QuantityIn = *input.QuantityIn
	}
	if input.UnitPrice != nil {
		if input.UnitPrice.IsNegative() {
			return nil, apperror.NewBadRequestError("Unit price cannot be negative")
		}
		batch.UnitPrice = *input.UnitPrice
	}
	if input.Supplier != nil {
		batch.Supplier = strings.TrimSpace(*input.Supplier)
	}
	if input.PurchaseDate != nil {
		batch.PurchaseDate = input.PurchaseDate.UTC()
	}
	if input.IsDefective != nil {
		batch.IsDefective = *input.IsDefective
	}
	if input.LowStockThreshold != nil {
		if *input.LowStockThreshold < 0 {
			return nil, apperror.NewBadRequestError("Threshold cannot be negative")
		}
		batch.LowStockThreshold = *input.LowStockThreshold
	}

	if err := s.stockRepo.Update(ctx, batch); err != nil {
		return nil, apperror.NewUpstreamError("Failed to update stock", err)
	}

	// re-read so quantity_used reflects consumptions that landed meanwhile
	return s.GetStock(ctx, id)
}

// DeleteStock removes a batch from the listings. Its consumption history
// is kept.
func (s *InventoryService) DeleteStock(ctx context.Context, id uuid.UUID) error {
	batch, err := s.stockRepo.GetByID(ctx, id)
	if err != nil {
		return apperror.NewUpstreamError("Failed to load stock", err)
	}
	if batch == nil {
		return apperror.NewNotFoundError("Stock")
	}
	if err := s.stockRepo.Delete(ctx, id); err != nil {
		return apperror.NewUpstreamError("Failed to delete stock", err)
	}
	return nil
}

// GetStock returns a batch with its consumption history
func (s *InventoryService) GetStock(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error) {
	batch, err := s.stockRepo.GetWithConsumptions(ctx, id)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load stock", err)
	}
	if batch == nil {
		return nil, apperror.NewNotFoundError("Stock")
	}
	return batch, nil
}

// ListStock lists batches. Low-stock filtering happens in the query, before
// pagination.
func (s *InventoryService) ListStock(ctx context.Context, params *pagination.PaginationParams, filter repository.StockFilterParams) (*pagination.PaginatedResult[entity.StockBatch], error) {
	params.Validate()
	batches, total, err := s.stockRepo.List(ctx, params, filter)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to list stock", err)
	}
	return pagination.NewPaginatedResult(batches, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// ConsumeStockInput draws units of a batch for a service visit
type ConsumeStockInput struct {
	ServiceID uuid.UUID
	BatchID   uuid.UUID
	Quantity  int
}

// ConsumeStock increments the batch's used quantity and records the
// consumption against the visit. The increment is unconditional: remaining
// stock is not checked and may go negative. Each call commits on its own.
func (s *InventoryService) ConsumeStock(ctx context.Context, input *ConsumeStockInput) (*entity.StockConsumption, error) {
	if input.Quantity <= 0 {
		return nil, apperror.NewBadRequestError("Quantity must be a positive number")
	}
	if input.BatchID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Stock ID is required")
	}
	if input.ServiceID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Service ID is required")
	}

	consumption := &entity.StockConsumption{
		ServiceRecordID: input.ServiceID,
		StockBatchID:    input.BatchID,
		Quantity:        input.Quantity,
	}
	if err := s.stockRepo.Consume(ctx, consumption); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperror.NewNotFoundError("Stock")
		}
		return nil, apperror.NewUpstreamError("Failed to consume stock", err)
	}
	return consumption, nil
}
