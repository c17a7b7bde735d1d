package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves a stored response by key for one staff member
	GetByKey(ctx context.Context, key string, staffID uuid.UUID) (*entity.IdempotencyKey, error)
	// Reserve stores a pending key before the request runs. It returns
	// ErrDuplicate when a live key with the same value already exists.
	Reserve(ctx context.Context, ikey *entity.IdempotencyKey) error
	// Complete stores the response of a reserved key
	Complete(ctx context.Context, id uuid.UUID, code int, body string) error
	// Release drops a reserved key so the request can be retried
	Release(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) error
}
