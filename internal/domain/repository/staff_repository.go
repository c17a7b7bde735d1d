package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
)

// StaffRepository defines the interface for staff account operations
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	GetByEmail(ctx context.Context, email string) (*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	List(ctx context.Context) ([]entity.Staff, error)
	Count(ctx context.Context) (int64, error)
}
