package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	infra "github.com/sangkips/servicecenter-api/internal/infrastructure/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/printer"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePrinter struct {
	err  error
	jobs [][]byte
}

func (p *capturePrinter) Print(_ context.Context, data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, data)
	return nil
}

func (p *capturePrinter) Kind() string { return "network" }

func TestReceiptService_PrintReceipt(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	invoice, err := f.svc.CreateInvoice(ctx, &CreateInvoiceInput{ServiceID: f.service.ID})
	require.NoError(t, err)

	p := &capturePrinter{}
	svc := NewReceiptService(infra.NewInvoiceRepository(f.db), p, entity.ReceiptHeader{ShopName: "Sri Auto Care", GSTIN: "29ABCDE1234F1Z5"}, 0)
	assert.Equal(t, &PrinterStatus{Configured: true, Type: "network", Width: printer.Width58mm}, svc.Status())

	receipt, err := svc.PrintReceipt(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ravi Kumar", receipt.Customer)
	assert.True(t, receipt.Total.Equal(decimal.NewFromInt(1180)))
	require.Len(t, p.jobs, 1)

	out := string(p.jobs[0])
	assert.Contains(t, out, "Sri Auto Care")
	assert.Contains(t, out, "GSTIN 29ABCDE1234F1Z5")
	assert.Contains(t, out, "CGST @9%")
	assert.Contains(t, out, "Rs.1180.00")
	assert.NotContains(t, out, "IGST")

	p.err = errors.New("connection refused")
	_, err = svc.PrintReceipt(ctx, invoice.ID)
	assert.Equal(t, apperror.KindUpstream, apperror.KindOf(err))

	_, err = svc.PrintReceipt(ctx, uuid.New())
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestReceiptService_NoPrinter(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	invoice, err := f.svc.CreateInvoice(ctx, &CreateInvoiceInput{ServiceID: f.service.ID})
	require.NoError(t, err)

	none, err := printer.New("none", "", "", 0)
	require.NoError(t, err)
	svc := NewReceiptService(infra.NewInvoiceRepository(f.db), none, entity.ReceiptHeader{ShopName: "Sri Auto Care"}, printer.Width80mm)
	assert.False(t, svc.Status().Configured)

	_, err = svc.PrintReceipt(ctx, invoice.ID)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, data, err := svc.BuildReceipt(ctx, invoice.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestFormatReceipt_Interstate(t *testing.T) {
	r := &entity.Receipt{
		Header:       entity.ReceiptHeader{ShopName: "Sri Auto Care"},
		InvoiceNo:    "INV-2026-000007",
		Customer:     "Meena Raghavan",
		ServiceTypes: []string{"oil_change"},
		Labour:       decimal.NewFromInt(1000),
		Discount:     decimal.NewFromInt(50),
		GSTRate:      decimal.NewFromInt(12),
		IGST:         decimal.NewFromInt(114),
		Total:        decimal.NewFromInt(1064),
		Paid:         true,
	}
	out := string(FormatReceipt(r, printer.Width58mm))

	assert.Contains(t, out, "IGST @12%")
	assert.Contains(t, out, "-Rs.50.00")
	assert.Contains(t, out, "* oil_change")
	assert.Contains(t, out, "PAID")
	assert.NotContains(t, out, "CGST")

	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "Invoice") {
			assert.Len(t, []rune(line), printer.Width58mm)
		}
	}
}
