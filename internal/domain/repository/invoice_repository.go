package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
)

// InvoiceFilterParams holds filtering options for listing invoices
type InvoiceFilterParams struct {
	ServiceID *uuid.UUID
	Sent      *bool
	Paid      *bool
}

// InvoiceNumberFunc renders the invoice number for a sequence value
type InvoiceNumberFunc func(seq int64) string

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// CreateNumbered draws the next value of the named sequence, sets
	// InvoiceNo from it and inserts the invoice, all in one transaction.
	// ErrDuplicate is returned when the service already has an invoice; the
	// drawn number is released with the rollback.
	CreateNumbered(ctx context.Context, invoice *entity.Invoice, sequence string, number InvoiceNumberFunc) error
	// GetByID preloads the service and its customer
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetByServiceID(ctx context.Context, serviceID uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, params *pagination.PaginationParams, filter InvoiceFilterParams) ([]entity.Invoice, int64, error)
	CountByServiceID(ctx context.Context, serviceID uuid.UUID) (int64, error)

	MarkSent(ctx context.Context, id uuid.UUID, at time.Time) error
	MarkPaid(ctx context.Context, id uuid.UUID, at time.Time) error
}
