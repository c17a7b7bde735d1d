package repository

import (
	"context"
	"testing"

	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	domainRepo "github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerRepository_DuplicateMobile(t *testing.T) {
	db := newTestDB(t)
	repo := NewCustomerRepository(db)
	seedCustomer(t, db, "9876543210")

	err := repo.Create(context.Background(), &entity.Customer{Name: "Asha", Mobile: "9876543210", VehicleNo: "KA02CD5678"})
	assert.ErrorIs(t, err, domainRepo.ErrDuplicate)
}

func TestCustomerRepository_Search(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewCustomerRepository(db)
	seedCustomer(t, db, "9876543210")
	require.NoError(t, repo.Create(ctx, &entity.Customer{Name: "Asha Rao", Mobile: "9123456780", VehicleNo: "MH12XY0001"}))

	tests := []struct {
		search string
		want   int
	}{
		{"asha", 1},
		{"mh12", 1},
		{"98765", 1},
		{"", 2},
		{"nobody", 0},
		{"%", 0},
		{"asha_rao", 0},
	}
	for _, tt := range tests {
		t.Run(tt.search, func(t *testing.T) {
			customers, total, err := repo.List(ctx, pagination.DefaultPagination(), tt.search)
			require.NoError(t, err)
			assert.Len(t, customers, tt.want)
			assert.Equal(t, int64(tt.want), total)
		})
	}
}
