package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	infra "github.com/sangkips/servicecenter-api/internal/infrastructure/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCustomer_Normalises(t *testing.T) {
	svc := NewCustomerService(infra.NewCustomerRepository(newTestDB(t)))
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, &CreateCustomerInput{
		Name:      "  Asha Rao ",
		Mobile:    "98765 43210",
		VehicleNo: "ka 05 mn 4321",
		Email:     ptr(" Asha@Example.com "),
		Source:    enum.CustomerSourceAdmin,
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", customer.Name)
	assert.Equal(t, "9876543210", customer.Mobile)
	assert.Equal(t, "KA05MN4321", customer.VehicleNo)
	require.NotNil(t, customer.Email)
	assert.Equal(t, "asha@example.com", *customer.Email)

	_, err = svc.CreateCustomer(ctx, &CreateCustomerInput{Name: "Other", Mobile: "98765-43210", VehicleNo: "KA01"})
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.KindConflict, appErr.Kind)
	assert.Equal(t, 400, appErr.Code)

	_, err = svc.CreateCustomer(ctx, &CreateCustomerInput{Name: " ", Mobile: "1", VehicleNo: "X"})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpdateCustomer(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(infra.NewCustomerRepository(db))
	ctx := context.Background()
	first := seedCustomer(t, db, "9000000001")
	seedCustomer(t, db, "9000000002")

	updated, err := svc.UpdateCustomer(ctx, &UpdateCustomerInput{ID: first.ID, Name: ptr("Ravi K")})
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", updated.Name)

	_, err = svc.UpdateCustomer(ctx, &UpdateCustomerInput{ID: first.ID, Mobile: ptr("9000000002")})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = svc.UpdateCustomer(ctx, &UpdateCustomerInput{ID: first.ID, VehicleNo: ptr("  ")})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.UpdateCustomer(ctx, &UpdateCustomerInput{ID: uuid.New(), Name: ptr("x")})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestImportCustomers(t *testing.T) {
	db := newTestDB(t)
	svc := NewCustomerService(infra.NewCustomerRepository(db))
	ctx := context.Background()
	seedCustomer(t, db, "9111111111")

	result, err := svc.ImportCustomers(ctx, []CustomerImportRow{
		{Row: 2, Name: "Kiran", Mobile: "9222222222", VehicleNo: "mh12 ab 1111", Email: "kiran@example.com"},
		{Row: 3, Name: "", Mobile: "9333333333", VehicleNo: "MH12AB2222"},
		{Row: 4, Name: "Dup", Mobile: "91111 11111", VehicleNo: "MH12AB3333"},
		{Row: 5, Name: "Same file", Mobile: "9222222222", VehicleNo: "MH12AB4444"},
		{Row: 6, Name: "Meera", Mobile: "9444444444", VehicleNo: "MH12AB5555"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 3, result.Skipped)
	require.Len(t, result.Errors, 3)
	assert.Equal(t, ImportRowError{Row: 3, Message: "Row 3: Missing required fields (name, mobile, vehicle_no)"}, result.Errors[0])
	assert.Equal(t, "Row 4: User with mobile 9111111111 already exists", result.Errors[1].Message)
	assert.Equal(t, 5, result.Errors[2].Row)
	require.Len(t, result.Customers, 2)
	assert.Equal(t, "MH12AB1111", result.Customers[0].VehicleNo)
	assert.Equal(t, enum.CustomerSourceExcel, result.Customers[0].Source)

	page, err := svc.ListCustomers(ctx, pagination.DefaultPagination(), "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.Pagination.Total)
}
