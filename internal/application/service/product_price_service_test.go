package service

import (
	"context"
	"testing"

	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	infra "github.com/sangkips/servicecenter-api/internal/infrastructure/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductPrice_UniqueNameTypeBrand(t *testing.T) {
	svc := NewProductPriceService(infra.NewProductPriceRepository(newTestDB(t)))
	ctx := context.Background()

	oil, err := svc.CreateProductPrice(ctx, &ProductPriceInput{
		ProductName: "Engine oil 5W-30", ProductType: "oil", Brand: ptr("Castrol"), Price: decimal.NewFromInt(450),
	})
	require.NoError(t, err)
	assert.True(t, oil.IsActive)

	_, err = svc.CreateProductPrice(ctx, &ProductPriceInput{
		ProductName: "Engine oil 5W-30", ProductType: "oil", Brand: ptr("Castrol"), Price: decimal.NewFromInt(480),
	})
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.KindConflict, appErr.Kind)
	assert.Equal(t, "Product with same name, type, and brand already exists", appErr.Message)

	other, err := svc.CreateProductPrice(ctx, &ProductPriceInput{
		ProductName: "Engine oil 5W-30", ProductType: "oil", Brand: ptr("Shell"), Price: decimal.NewFromInt(430),
	})
	require.NoError(t, err)

	_, err = svc.UpdateProductPrice(ctx, other.ID, &UpdateProductPriceInput{Brand: ptr("Castrol")})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	// saving an entry unchanged must not collide with itself
	_, err = svc.UpdateProductPrice(ctx, oil.ID, &UpdateProductPriceInput{Price: ptr(decimal.NewFromInt(460))})
	require.NoError(t, err)

	_, err = svc.CreateProductPrice(ctx, &ProductPriceInput{ProductName: "Tube", ProductType: "spare", Price: decimal.NewFromInt(1)})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestProductPrice_ListAndDelete(t *testing.T) {
	svc := NewProductPriceService(infra.NewProductPriceRepository(newTestDB(t)))
	ctx := context.Background()
	tyre, err := svc.CreateProductPrice(ctx, &ProductPriceInput{ProductName: "Radial 185/65", ProductType: "tyre", Price: decimal.NewFromInt(4200)})
	require.NoError(t, err)
	_, err = svc.CreateProductPrice(ctx, &ProductPriceInput{ProductName: "Battery 35Ah", ProductType: "battery", Price: decimal.NewFromInt(3800), IsActive: ptr(false)})
	require.NoError(t, err)

	active := true
	page, err := svc.ListProductPrices(ctx, pagination.DefaultPagination(), repository.ProductPriceFilterParams{IsActive: &active})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, enum.ProductTypeTyre, page.Items[0].ProductType)

	require.NoError(t, svc.DeleteProductPrice(ctx, tyre.ID))
	err = svc.DeleteProductPrice(ctx, tyre.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
