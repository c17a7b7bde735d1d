package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/printer"
	"github.com/shopspring/decimal"
)

// ReceiptService prints the counter copy of invoices
type ReceiptService struct {
	invoiceRepo repository.InvoiceRepository
	printer     printer.Printer
	header      entity.ReceiptHeader
	width       int
}

// NewReceiptService creates a receipt service. width is the paper width in
// characters.
func NewReceiptService(invoiceRepo repository.InvoiceRepository, p printer.Printer, header entity.ReceiptHeader, width int) *ReceiptService {
	if width <= 0 {
		width = printer.Width58mm
	}
	return &ReceiptService{invoiceRepo: invoiceRepo, printer: p, header: header, width: width}
}

// PrinterStatus describes the configured printer
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

func (s *ReceiptService) Status() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Kind() != "none",
		Type:       s.printer.Kind(),
		Width:      s.width,
	}
}

// BuildReceipt assembles the receipt of an invoice and its ESC/POS stream
func (s *ReceiptService) BuildReceipt(ctx context.Context, invoiceID uuid.UUID) (*entity.Receipt, []byte, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, nil, apperror.NewUpstreamError("Failed to load invoice", err)
	}
	if invoice == nil {
		return nil, nil, apperror.NewNotFoundError("Invoice")
	}

	receipt := &entity.Receipt{
		Header:    s.header,
		InvoiceNo: invoice.InvoiceNo,
		Date:      invoice.CreatedAt.Format("02 Jan 2006 15:04"),
		Discount:  invoice.DiscountAmount,
		GSTRate:   invoice.GSTRate,
		CGST:      invoice.CGST,
		SGST:      invoice.SGST,
		IGST:      invoice.IGST,
		Total:     invoice.FinalAmount,
		Paid:      invoice.PaymentReceived,
	}
	if svc := invoice.Service; svc != nil {
		receipt.ServiceTypes = svc.Types()
		receipt.Labour = svc.LabourCharge
		receipt.Parts = svc.PartsCharge
		if svc.Customer != nil {
			receipt.Customer = svc.Customer.Name
			receipt.VehicleNo = svc.Customer.VehicleNo
		}
	}
	return receipt, FormatReceipt(receipt, s.width), nil
}

// PrintReceipt sends the invoice's receipt to the counter printer
func (s *ReceiptService) PrintReceipt(ctx context.Context, invoiceID uuid.UUID) (*entity.Receipt, error) {
	receipt, data, err := s.BuildReceipt(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := s.printer.Print(ctx, data); err != nil {
		if errors.Is(err, printer.ErrNotConfigured) {
			return nil, apperror.NewBadRequestError("No receipt printer is configured")
		}
		log.Printf("[receipts] printing %s failed: %v", receipt.InvoiceNo, err)
		return nil, apperror.NewUpstreamError("Failed to print receipt", err)
	}
	return receipt, nil
}

// FormatReceipt lays a receipt out for a thermal printer of the given width
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.Align(printer.AlignCenter).Bold(true).Size(printer.SizeDouble).
		Line(r.Header.ShopName).
		Size(printer.SizeNormal).Bold(false)
	for _, line := range []string{r.Header.Address, r.Header.Phone} {
		if line != "" {
			doc.Line(line)
		}
	}
	if r.Header.GSTIN != "" {
		doc.Line("GSTIN " + r.Header.GSTIN)
	}

	doc.Align(printer.AlignLeft).Rule('-').
		Pair("Invoice", r.InvoiceNo).
		Pair("Date", r.Date).
		Pair("Customer", r.Customer).
		Pair("Vehicle", r.VehicleNo).
		Rule('-')

	for _, t := range r.ServiceTypes {
		doc.Line("* " + t)
	}
	doc.Pair("Labour", money(r.Labour)).
		Pair("Parts", money(r.Parts))
	if r.Discount.IsPositive() {
		doc.Pair("Discount", "-"+money(r.Discount))
	}
	doc.Rule('-')

	rate := r.GSTRate.String()
	if r.IGST.IsZero() {
		half := r.GSTRate.Div(decimal.NewFromInt(2)).String()
		doc.Pair("CGST @"+half+"%", money(r.CGST)).
			Pair("SGST @"+half+"%", money(r.SGST))
	} else {
		doc.Pair("IGST @"+rate+"%", money(r.IGST))
	}
	doc.Bold(true).Pair("TOTAL", money(r.Total)).Bold(false)
	if r.Paid {
		doc.Pair("Status", "PAID")
	}

	doc.Rule('-').
		Align(printer.AlignCenter).
		Line("Thank you for your visit!").
		Align(printer.AlignLeft).
		Feed(3).
		Cut()
	return doc.Bytes()
}

// money renders an amount for the printer's ASCII code page
func money(d decimal.Decimal) string {
	return "Rs." + d.StringFixed(2)
}
