package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	domainRepo "github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func numbered(seq int64) string {
	return fmt.Sprintf("INV-2026-%06d", seq)
}

func newInvoice(record *entity.ServiceRecord) *entity.Invoice {
	return &entity.Invoice{
		ServiceID:   record.ID,
		TotalAmount: decimal.NewFromInt(1000),
		GSTRate:     decimal.NewFromInt(18),
		GSTAmount:   decimal.NewFromInt(180),
		CGST:        decimal.NewFromInt(90),
		SGST:        decimal.NewFromInt(90),
		FinalAmount: decimal.NewFromInt(1180),
	}
}

func TestInvoiceRepository_OnePerService(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(db)
	record := seedService(t, db, seedCustomer(t, db, "9876543210"), seedStaff(t, db))

	first := newInvoice(record)
	require.NoError(t, repo.CreateNumbered(ctx, first, entity.DefaultInvoiceSequence, numbered))
	assert.Equal(t, "INV-2026-000001", first.InvoiceNo)

	err := repo.CreateNumbered(ctx, newInvoice(record), entity.DefaultInvoiceSequence, numbered)
	assert.ErrorIs(t, err, domainRepo.ErrDuplicate)

	count, err := repo.CountByServiceID(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestInvoiceRepository_SequenceIsMonotonicAndGapless(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(db)
	customer := seedCustomer(t, db, "9876543210")
	staff := seedStaff(t, db)

	first := seedService(t, db, customer, staff)
	second := seedService(t, db, customer, staff)

	require.NoError(t, repo.CreateNumbered(ctx, newInvoice(first), entity.DefaultInvoiceSequence, numbered))
	// rejected duplicate rolls its increment back
	require.Error(t, repo.CreateNumbered(ctx, newInvoice(first), entity.DefaultInvoiceSequence, numbered))

	inv := newInvoice(second)
	require.NoError(t, repo.CreateNumbered(ctx, inv, entity.DefaultInvoiceSequence, numbered))
	assert.Equal(t, "INV-2026-000002", inv.InvoiceNo)
}

func TestInvoiceRepository_ConcurrentFirstInvoices(t *testing.T) {
	db := newFileTestDB(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(db)
	customer := seedCustomer(t, db, "9876543210")
	staff := seedStaff(t, db)

	// no counter row exists yet, so every caller races to create it
	const workers = 8
	invoices := make([]*entity.Invoice, workers)
	for i := range invoices {
		invoices[i] = newInvoice(seedService(t, db, customer, staff))
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := range invoices {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateNumbered(ctx, invoices[i], entity.DefaultInvoiceSequence, numbered)
		}(i)
	}
	wg.Wait()

	numbers := map[string]bool{}
	for i, err := range errs {
		require.NoError(t, err)
		numbers[invoices[i].InvoiceNo] = true
	}
	assert.Len(t, numbers, workers)
	assert.True(t, numbers[numbered(1)])
	assert.True(t, numbers[numbered(workers)])
}

func TestInvoiceRepository_MarkPaidKeepsFirstDate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(db)
	record := seedService(t, db, seedCustomer(t, db, "9876543210"), seedStaff(t, db))

	inv := newInvoice(record)
	require.NoError(t, repo.CreateNumbered(ctx, inv, entity.DefaultInvoiceSequence, numbered))

	paidAt := record.ServiceDate.AddDate(0, 0, 1)
	require.NoError(t, repo.MarkPaid(ctx, inv.ID, paidAt))
	require.NoError(t, repo.MarkPaid(ctx, inv.ID, paidAt.AddDate(0, 0, 5)))

	reloaded, err := repo.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.PaymentDate)
	assert.True(t, reloaded.PaymentReceived)
	assert.True(t, reloaded.PaymentDate.Equal(paidAt))
	require.NotNil(t, reloaded.Service)
	require.NotNil(t, reloaded.Service.Customer)
	assert.Equal(t, "9876543210", reloaded.Service.Customer.Mobile)
}
