package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/gst"
	"github.com/sangkips/servicecenter-api/pkg/notify"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"github.com/sangkips/servicecenter-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// InvoiceSettings configures invoice numbering, tax defaults and the
// notification message
type InvoiceSettings struct {
	Prefix          string
	DefaultGSTRate  decimal.Decimal
	MessageTemplate string
}

// InvoiceService raises invoices for service visits and sends them to
// customers
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	serviceRepo repository.ServiceRecordRepository
	sender      notify.Sender
	settings    InvoiceSettings
	now         func() time.Time
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	serviceRepo repository.ServiceRecordRepository,
	sender notify.Sender,
	settings InvoiceSettings,
) *InvoiceService {
	if settings.DefaultGSTRate.IsZero() {
		settings.DefaultGSTRate = gst.DefaultRate
	}
	if settings.MessageTemplate == "" {
		settings.MessageTemplate = notify.DefaultInvoiceTemplate
	}
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		serviceRepo: serviceRepo,
		sender:      sender,
		settings:    settings,
		now:         time.Now,
	}
}

// CreateInvoiceInput represents the create invoice input
type CreateInvoiceInput struct {
	ServiceID      uuid.UUID
	DiscountAmount decimal.Decimal
	GSTRate        *decimal.Decimal
	IsInterstate   bool
}

// CreateInvoice raises the invoice for a service visit. The amount billed is
// the visit's labour plus parts charges less the discount; tax is added on
// top. A second invoice for the same visit is rejected by the store's unique
// index and reported as a conflict.
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	if input.ServiceID == uuid.Nil {
		return nil, apperror.NewBadRequestError("Service ID is required")
	}
	if input.DiscountAmount.IsNegative() {
		return nil, apperror.NewBadRequestError("Discount cannot be negative")
	}
	rate := s.settings.DefaultGSTRate
	if input.GSTRate != nil {
		if input.GSTRate.IsNegative() {
			return nil, apperror.NewBadRequestError("GST rate cannot be negative")
		}
		rate = *input.GSTRate
	}

	record, err := s.serviceRepo.GetByID(ctx, input.ServiceID)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load service", err)
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Service")
	}

	total := record.ChargesTotal()
	if input.DiscountAmount.GreaterThan(total) {
		return nil, apperror.NewBadRequestError("Discount cannot exceed the service total")
	}
	taxable := total.Sub(input.DiscountAmount)
	tax := gst.Calculate(taxable, rate, input.IsInterstate)

	invoice := &entity.Invoice{
		ServiceID:      record.ID,
		TotalAmount:    total,
		DiscountAmount: input.DiscountAmount,
		GSTRate:        rate,
		GSTAmount:      tax.GST,
		CGST:           tax.CGST,
		SGST:           tax.SGST,
		IGST:           tax.IGST,
		FinalAmount:    tax.Total,
		IsInterstate:   input.IsInterstate,
	}

	year := s.now().Year()
	err = s.invoiceRepo.CreateNumbered(ctx, invoice, entity.DefaultInvoiceSequence, func(seq int64) string {
		return utils.FormatInvoiceNo(s.settings.Prefix, year, seq)
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, apperror.NewDuplicateError("Invoice already exists for this service")
	}
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to create invoice", err)
	}

	log.Printf("[invoices] %s raised for service %s: final %s", invoice.InvoiceNo, record.ID, invoice.FinalAmount.StringFixed(2))
	return s.GetInvoice(ctx, invoice.ID)
}

// SendResult is the outcome of sending an invoice notification
type SendResult struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Invoice *entity.Invoice `json:"invoice"`
}

// SendInvoice renders the invoice message and hands it to the notification
// sender. The invoice is marked sent only when the sender accepts the
// message; a refused message is reported as an unsuccessful result, not an
// error.
func (s *InvoiceService) SendInvoice(ctx context.Context, id uuid.UUID) (*SendResult, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.Service == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	customer := invoice.Service.Customer
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	message := notify.FormatTemplate(s.settings.MessageTemplate, map[string]string{
		"name":         customer.Name,
		"invoice_no":   invoice.InvoiceNo,
		"vehicle_no":   customer.VehicleNo,
		"final_amount": invoice.FinalAmount.StringFixed(2),
	})

	if err := s.sender.Send(ctx, customer.Mobile, message); err != nil {
		log.Printf("[invoices] sending %s to %s failed: %v", invoice.InvoiceNo, customer.Mobile, err)
		return &SendResult{Success: false, Message: "Failed to send invoice", Invoice: invoice}, nil
	}

	sentAt := s.now().UTC()
	if err := s.invoiceRepo.MarkSent(ctx, invoice.ID, sentAt); err != nil {
		return nil, apperror.NewUpstreamError("Invoice sent but could not be marked", err)
	}
	invoice.SentOnWhatsApp = true
	invoice.SentAt = &sentAt

	return &SendResult{Success: true, Message: "Invoice sent successfully", Invoice: invoice}, nil
}

// MarkPaymentReceived records payment for an invoice. Marking a paid
// invoice again keeps the original payment date.
func (s *InvoiceService) MarkPaymentReceived(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.GetInvoice(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice.PaymentReceived {
		return invoice, nil
	}
	if err := s.invoiceRepo.MarkPaid(ctx, id, s.now().UTC()); err != nil {
		return nil, apperror.NewUpstreamError("Failed to record payment", err)
	}
	return s.GetInvoice(ctx, id)
}

// GetInvoice returns an invoice with its service and customer
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load invoice", err)
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoices lists invoices, newest first
func (s *InvoiceService) ListInvoices(ctx context.Context, params *pagination.PaginationParams, filter repository.InvoiceFilterParams) (*pagination.PaginatedResult[entity.Invoice], error) {
	params.Validate()
	invoices, total, err := s.invoiceRepo.List(ctx, params, filter)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to list invoices", err)
	}
	return pagination.NewPaginatedResult(invoices, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
