package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/infrastructure/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// newFileTestDB opens a WAL-mode database file so several connections can
// write at once
func newFileTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(filepath.Join(t.TempDir(), "servicecenter.db"), false)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	var mode string
	require.NoError(t, db.Raw("PRAGMA journal_mode").Scan(&mode).Error)
	require.Equal(t, "wal", mode)
	return db
}

func seedCustomer(t *testing.T, db *gorm.DB, mobile string) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{Name: "Ravi", Mobile: mobile, VehicleNo: "KA01AB1234"}
	require.NoError(t, NewCustomerRepository(db).Create(context.Background(), customer))
	return customer
}

func seedStaff(t *testing.T, db *gorm.DB) *entity.Staff {
	t.Helper()
	staff := &entity.Staff{Name: "Owner", Email: "owner@example.com", Password: "x", Role: "owner", IsActive: true}
	require.NoError(t, NewStaffRepository(db).Create(context.Background(), staff))
	return staff
}

func seedService(t *testing.T, db *gorm.DB, customer *entity.Customer, staff *entity.Staff) *entity.ServiceRecord {
	t.Helper()
	record := &entity.ServiceRecord{
		CustomerID:   customer.ID,
		ServiceDate:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		LabourCharge: decimal.NewFromInt(500),
		PartsCharge:  decimal.NewFromInt(500),
		AmountPaid:   decimal.NewFromInt(1000),
		CreatedByID:  staff.ID,
	}
	require.NoError(t, record.SetTypes([]string{"oil_change"}))
	require.NoError(t, NewServiceRecordRepository(db).Create(context.Background(), record))
	return record
}

func seedBatch(t *testing.T, db *gorm.DB, quantityIn, threshold int) *entity.StockBatch {
	t.Helper()
	batch := &entity.StockBatch{
		ProductName:       "Engine oil 5W-30",
		BatchNo:           "B-" + time.Now().Format("150405.000000000"),
		QuantityIn:        quantityIn,
		UnitPrice:         decimal.NewFromInt(350),
		Supplier:          "Castrol",
		PurchaseDate:      time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC),
		LowStockThreshold: threshold,
	}
	require.NoError(t, NewStockRepository(db).Create(context.Background(), batch))
	return batch
}
