package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	domainRepo "github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockRepository_ConsumeKeepsLedgerInStep(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewStockRepository(db)

	record := seedService(t, db, seedCustomer(t, db, "9876543210"), seedStaff(t, db))
	batch := seedBatch(t, db, 20, 10)

	for _, qty := range []int{3, 4, 1, 6} {
		require.NoError(t, repo.Consume(ctx, &entity.StockConsumption{
			ServiceRecordID: record.ID,
			StockBatchID:    batch.ID,
			Quantity:        qty,
		}))
	}

	reloaded, err := repo.GetByID(ctx, batch.ID)
	require.NoError(t, err)
	sum, err := repo.SumConsumed(ctx, batch.ID)
	require.NoError(t, err)

	assert.Equal(t, 14, reloaded.QuantityUsed)
	assert.Equal(t, int64(reloaded.QuantityUsed), sum)
	assert.Equal(t, 6, reloaded.RemainingQuantity())
}

func TestStockRepository_ConcurrentConsumeAllApply(t *testing.T) {
	db := newFileTestDB(t)
	ctx := context.Background()
	repo := NewStockRepository(db)

	record := seedService(t, db, seedCustomer(t, db, "9876543210"), seedStaff(t, db))
	batch := seedBatch(t, db, 100, 10)

	const workers, qty = 20, 3
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.Consume(ctx, &entity.StockConsumption{
				ServiceRecordID: record.ID,
				StockBatchID:    batch.ID,
				Quantity:        qty,
			})
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	reloaded, err := repo.GetByID(ctx, batch.ID)
	require.NoError(t, err)
	sum, err := repo.SumConsumed(ctx, batch.ID)
	require.NoError(t, err)

	assert.Equal(t, workers*qty, reloaded.QuantityUsed)
	assert.Equal(t, int64(workers*qty), sum)
}

func TestStockRepository_ConsumeUnknownBatch(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewStockRepository(db)
	record := seedService(t, db, seedCustomer(t, db, "9876543210"), seedStaff(t, db))

	err := repo.Consume(ctx, &entity.StockConsumption{
		ServiceRecordID: record.ID,
		StockBatchID:    uuid.New(),
		Quantity:        2,
	})
	assert.ErrorIs(t, err, domainRepo.ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&entity.StockConsumption{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestStockRepository_ConsumeMayOverdraw(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewStockRepository(db)
	record := seedService(t, db, seedCustomer(t, db, "9876543210"), seedStaff(t, db))
	batch := seedBatch(t, db, 2, 1)

	require.NoError(t, repo.Consume(ctx, &entity.StockConsumption{
		ServiceRecordID: record.ID,
		StockBatchID:    batch.ID,
		Quantity:        5,
	}))

	reloaded, err := repo.GetByID(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, -3, reloaded.RemainingQuantity())
}

func TestStockRepository_LowStockFilter(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewStockRepository(db)
	record := seedService(t, db, seedCustomer(t, db, "9876543210"), seedStaff(t, db))

	low := seedBatch(t, db, 20, 10)
	seedBatch(t, db, 20, 10)
	require.NoError(t, repo.Consume(ctx, &entity.StockConsumption{
		ServiceRecordID: record.ID,
		StockBatchID:    low.ID,
		Quantity:        10,
	}))

	batches, total, err := repo.List(ctx, pagination.DefaultPagination(), domainRepo.StockFilterParams{LowStock: true})
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, low.ID, batches[0].ID)

	count, err := repo.CountLowStock(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestStockRepository_UpdateLeavesUsedQuantity(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewStockRepository(db)
	record := seedService(t, db, seedCustomer(t, db, "9876543210"), seedStaff(t, db))
	batch := seedBatch(t, db, 20, 10)

	require.NoError(t, repo.Consume(ctx, &entity.StockConsumption{
		ServiceRecordID: record.ID,
		StockBatchID:    batch.ID,
		Quantity:        4,
	}))

	// batch still carries the stale used quantity of zero
	batch.Supplier = "Shell"
	require.NoError(t, repo.Update(ctx, batch))

	reloaded, err := repo.GetByID(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shell", reloaded.Supplier)
	assert.Equal(t, 4, reloaded.QuantityUsed)
}
