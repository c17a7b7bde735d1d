package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/infrastructure/database"
	infra "github.com/sangkips/servicecenter-api/internal/infrastructure/repository"
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

// recordingSender captures outgoing messages and fails when err is set
type recordingSender struct {
	mu       sync.Mutex
	err      error
	messages []sentMessage
}

type sentMessage struct {
	To   string
	Body string
}

func (r *recordingSender) Send(_ context.Context, to, message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.messages = append(r.messages, sentMessage{To: to, Body: message})
	return nil
}

func seedCustomer(t *testing.T, db *gorm.DB, mobile string) *entity.Customer {
	t.Helper()
	customer := &entity.Customer{Name: "Ravi Kumar", Mobile: mobile, VehicleNo: "KA01AB1234"}
	require.NoError(t, infra.NewCustomerRepository(db).Create(context.Background(), customer))
	return customer
}

func seedStaff(t *testing.T, db *gorm.DB) *entity.Staff {
	t.Helper()
	staff := &entity.Staff{Name: "Biller", Email: "biller@example.com", Password: "x", Role: "invoice_biller", IsActive: true}
	require.NoError(t, infra.NewStaffRepository(db).Create(context.Background(), staff))
	return staff
}

func seedBatch(t *testing.T, db *gorm.DB, batchNo string, quantityIn int) *entity.StockBatch {
	t.Helper()
	batch := &entity.StockBatch{
		ProductName:       "Brake pads",
		BatchNo:           batchNo,
		QuantityIn:        quantityIn,
		UnitPrice:         decimal.NewFromInt(900),
		Supplier:          "Bosch",
		PurchaseDate:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		LowStockThreshold: 2,
	}
	require.NoError(t, infra.NewStockRepository(db).Create(context.Background(), batch))
	return batch
}

func ptr[T any](v T) *T { return &v }
