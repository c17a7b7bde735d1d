package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
)

// CustomerRepository defines the interface for customer data operations
type CustomerRepository interface {
	// Create returns ErrDuplicate when the mobile number is taken
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetWithHistory loads the customer with its visits, newest first
	GetWithHistory(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetByMobile(ctx context.Context, mobile string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	// List searches name, mobile and vehicle number
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Customer, int64, error)
}
