package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
)

// StockFilterParams holds filtering options for listing batches
type StockFilterParams struct {
	Search    string
	LowStock  bool
	Defective bool
}

// StockRepository defines the inventory ledger's persistence operations
type StockRepository interface {
	Create(ctx context.Context, batch *entity.StockBatch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error)
	// GetWithConsumptions loads a batch with every consumption drawn from it
	GetWithConsumptions(ctx context.Context, id uuid.UUID) (*entity.StockBatch, error)
	// Update writes the descriptive fields. QuantityUsed is never written here.
	Update(ctx context.Context, batch *entity.StockBatch) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, filter StockFilterParams) ([]entity.StockBatch, int64, error)

	// Consume inserts the consumption row and increments the batch's used
	// quantity by the same amount in one transaction. ErrNotFound is
	// returned, and nothing is written, when the batch does not exist.
	Consume(ctx context.Context, consumption *entity.StockConsumption) error
	// SumConsumed totals the consumption rows recorded against a batch
	SumConsumed(ctx context.Context, batchID uuid.UUID) (int64, error)

	CountLowStock(ctx context.Context) (int64, error)
	CountDefective(ctx context.Context) (int64, error)
}
