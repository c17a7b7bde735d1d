package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	infra "github.com/sangkips/servicecenter-api/internal/infrastructure/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateStock(t *testing.T) {
	svc := NewInventoryService(infra.NewStockRepository(newTestDB(t)))
	ctx := context.Background()

	batch, err := svc.CreateStock(ctx, &CreateStockInput{
		ProductName: " Air filter ",
		BatchNo:     "AF-22",
		QuantityIn:  12,
		UnitPrice:   decimal.RequireFromString("249.50"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Air filter", batch.ProductName)
	assert.Equal(t, entity.DefaultLowStockThreshold, batch.LowStockThreshold)
	assert.Zero(t, batch.QuantityUsed)

	_, err = svc.CreateStock(ctx, &CreateStockInput{QuantityIn: 0, UnitPrice: decimal.NewFromInt(-1)})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
	assert.Len(t, appErr.Errors, 4)
}

func TestConsumeStock(t *testing.T) {
	db := newTestDB(t)
	repo := infra.NewStockRepository(db)
	svc := NewInventoryService(repo)
	ctx := context.Background()
	batch := seedBatch(t, db, "BP-9", 5)
	serviceID := uuid.New()

	for _, qty := range []int{2, 1, 4} {
		_, err := svc.ConsumeStock(ctx, &ConsumeStockInput{ServiceID: serviceID, BatchID: batch.ID, Quantity: qty})
		require.NoError(t, err)
	}

	stored, err := svc.GetStock(ctx, batch.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, stored.QuantityUsed)
	assert.Len(t, stored.Consumptions, 3)
	sum, err := repo.SumConsumed(ctx, batch.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 7, sum)

	_, err = svc.ConsumeStock(ctx, &ConsumeStockInput{ServiceID: serviceID, BatchID: uuid.New(), Quantity: 1})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	_, err = svc.ConsumeStock(ctx, &ConsumeStockInput{ServiceID: serviceID, BatchID: batch.ID, Quantity: -2})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpdateStock_KeepsUsedQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := NewInventoryService(infra.NewStockRepository(db))
	ctx := context.Background()
	batch := seedBatch(t, db, "OIL-1", 10)
	_, err := svc.ConsumeStock(ctx, &ConsumeStockInput{ServiceID: uuid.New(), BatchID: batch.ID, Quantity: 6})
	require.NoError(t, err)

	_, err = svc.UpdateStock(ctx, batch.ID, &UpdateStockInput{QuantityIn: ptr(5)})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	updated, err := svc.UpdateStock(ctx, batch.ID, &UpdateStockInput{QuantityIn: ptr(20), IsDefective: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.QuantityIn)
	assert.Equal(t, 6, updated.QuantityUsed)
	assert.True(t, updated.IsDefective)

	require.NoError(t, svc.DeleteStock(ctx, batch.ID))
	_, err = svc.GetStock(ctx, batch.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
