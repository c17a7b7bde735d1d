package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	infra "github.com/sangkips/servicecenter-api/internal/infrastructure/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type invoiceFixture struct {
	db      *gorm.DB
	svc     *InvoiceService
	sender  *recordingSender
	service *entity.ServiceRecord
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	db := newTestDB(t)
	sender := &recordingSender{}
	svc := NewInvoiceService(
		infra.NewInvoiceRepository(db),
		infra.NewServiceRecordRepository(db),
		sender,
		InvoiceSettings{Prefix: "INV"},
	)
	svc.now = func() time.Time { return time.Date(2026, 5, 20, 10, 0, 0, 0, time.UTC) }

	visits := NewServiceRecordService(
		infra.NewServiceRecordRepository(db),
		infra.NewCustomerRepository(db),
		NewInventoryService(infra.NewStockRepository(db)),
	)
	result, err := visits.RecordVisit(context.Background(), &RecordVisitInput{
		CreatedBy:    seedStaff(t, db).ID,
		CustomerID:   seedCustomer(t, db, "9876543210").ID,
		ServiceDate:  ptr(time.Date(2026, 5, 19, 0, 0, 0, 0, time.UTC)),
		ServiceTypes: []string{"brake_service"},
		LabourCharge: decimal.NewFromInt(600),
		PartsCharge:  decimal.NewFromInt(400),
		AmountPaid:   ptr(decimal.NewFromInt(1000)),
	})
	require.NoError(t, err)

	return &invoiceFixture{db: db, svc: svc, sender: sender, service: result.Service}
}

func TestCreateInvoice_Intrastate(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		ServiceID:      f.service.ID,
		DiscountAmount: decimal.NewFromInt(100),
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-2026-000001", invoice.InvoiceNo)
	assert.True(t, invoice.TotalAmount.Equal(decimal.NewFromInt(1000)))
	assert.True(t, invoice.GSTRate.Equal(decimal.NewFromInt(18)))
	assert.True(t, invoice.GSTAmount.Equal(decimal.NewFromInt(162)), invoice.GSTAmount.String())
	assert.True(t, invoice.CGST.Equal(decimal.NewFromInt(81)))
	assert.True(t, invoice.SGST.Equal(decimal.NewFromInt(81)))
	assert.True(t, invoice.IGST.IsZero())
	assert.True(t, invoice.FinalAmount.Equal(decimal.NewFromInt(1062)))
	assert.False(t, invoice.SentOnWhatsApp)
	assert.False(t, invoice.PaymentReceived)
	require.NotNil(t, invoice.Service)
	require.NotNil(t, invoice.Service.Customer)
}

func TestCreateInvoice_InterstateCustomRate(t *testing.T) {
	f := newInvoiceFixture(t)
	rate := decimal.NewFromInt(12)

	invoice, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		ServiceID:    f.service.ID,
		GSTRate:      &rate,
		IsInterstate: true,
	})

	require.NoError(t, err)
	assert.True(t, invoice.IGST.Equal(decimal.NewFromInt(120)))
	assert.True(t, invoice.CGST.IsZero())
	assert.True(t, invoice.SGST.IsZero())
	assert.True(t, invoice.FinalAmount.Equal(decimal.NewFromInt(1120)))
}

func TestCreateInvoice_OnePerService(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateInvoice(ctx, &CreateInvoiceInput{ServiceID: f.service.ID})
	require.NoError(t, err)

	_, err = f.svc.CreateInvoice(ctx, &CreateInvoiceInput{ServiceID: f.service.ID})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, apperror.KindConflict, appErr.Kind)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "Invoice already exists for this service", appErr.Message)

	count, err := infra.NewInvoiceRepository(f.db).CountByServiceID(ctx, f.service.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestCreateInvoice_Rejections(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		input *CreateInvoiceInput
		kind  apperror.Kind
	}{
		{"no service", &CreateInvoiceInput{}, apperror.KindValidation},
		{"unknown service", &CreateInvoiceInput{ServiceID: uuid.New()}, apperror.KindNotFound},
		{"negative discount", &CreateInvoiceInput{ServiceID: f.service.ID, DiscountAmount: decimal.NewFromInt(-5)}, apperror.KindValidation},
		{"discount above total", &CreateInvoiceInput{ServiceID: f.service.ID, DiscountAmount: decimal.NewFromInt(1001)}, apperror.KindValidation},
		{"negative rate", &CreateInvoiceInput{ServiceID: f.service.ID, GSTRate: ptr(decimal.NewFromInt(-1))}, apperror.KindValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateInvoice(ctx, tt.input)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}
}

func TestSendInvoice(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	invoice, err := f.svc.CreateInvoice(ctx, &CreateInvoiceInput{ServiceID: f.service.ID})
	require.NoError(t, err)

	result, err := f.svc.SendInvoice(ctx, invoice.ID)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.True(t, result.Invoice.SentOnWhatsApp)
	require.Len(t, f.sender.messages, 1)
	msg := f.sender.messages[0]
	assert.Equal(t, "9876543210", msg.To)
	assert.True(t, strings.Contains(msg.Body, "Dear Ravi Kumar"))
	assert.True(t, strings.Contains(msg.Body, invoice.InvoiceNo))
	assert.True(t, strings.Contains(msg.Body, "₹1180.00"))

	stored, err := f.svc.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.True(t, stored.SentOnWhatsApp)
	require.NotNil(t, stored.SentAt)
}

func TestSendInvoice_SenderFailure(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	invoice, err := f.svc.CreateInvoice(ctx, &CreateInvoiceInput{ServiceID: f.service.ID})
	require.NoError(t, err)
	f.sender.err = errors.New("gateway unavailable")

	result, err := f.svc.SendInvoice(ctx, invoice.ID)

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "Failed to send invoice", result.Message)

	stored, err := f.svc.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.False(t, stored.SentOnWhatsApp)
	assert.Nil(t, stored.SentAt)
}

func TestMarkPaymentReceived_KeepsFirstDate(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	invoice, err := f.svc.CreateInvoice(ctx, &CreateInvoiceInput{ServiceID: f.service.ID})
	require.NoError(t, err)

	paid, err := f.svc.MarkPaymentReceived(ctx, invoice.ID)
	require.NoError(t, err)
	require.True(t, paid.PaymentReceived)
	first := *paid.PaymentDate

	f.svc.now = func() time.Time { return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC) }
	again, err := f.svc.MarkPaymentReceived(ctx, invoice.ID)
	require.NoError(t, err)
	assert.True(t, again.PaymentDate.Equal(first))

	paidOnly := true
	page, err := f.svc.ListInvoices(ctx, pagination.DefaultPagination(), repository.InvoiceFilterParams{Paid: &paidOnly})
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Pagination.Total)

	_, err = f.svc.MarkPaymentReceived(ctx, uuid.New())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
