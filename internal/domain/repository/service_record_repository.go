package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
)

// ServiceRecordFilterParams holds filtering options for listing visits
type ServiceRecordFilterParams struct {
	CustomerID     *uuid.UUID
	ServiceType    string
	StartDate      *time.Time
	EndDate        *time.Time
	ComplaintsOnly bool
}

// ServiceRecordRepository defines the interface for service visit operations
type ServiceRecordRepository interface {
	Create(ctx context.Context, record *entity.ServiceRecord) error
	// GetByID preloads the customer, the creator and the consumed batches
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceRecord, error)
	Update(ctx context.Context, record *entity.ServiceRecord) error
	List(ctx context.Context, params *pagination.PaginationParams, filter ServiceRecordFilterParams) ([]entity.ServiceRecord, int64, error)

	// ListDueBetween returns visits whose next due date is in [from, to) and
	// whose reminder has not been sent yet
	ListDueBetween(ctx context.Context, from, to time.Time) ([]entity.ServiceRecord, error)
	MarkReminderSent(ctx context.Context, id uuid.UUID, at time.Time) error
}
