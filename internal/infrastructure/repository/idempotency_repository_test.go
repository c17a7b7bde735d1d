package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	domainRepo "github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdempotencyRepository_ReserveCompleteRelease(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewIdempotencyRepository(db)
	staffID := uuid.New()

	newKey := func() *entity.IdempotencyKey {
		return &entity.IdempotencyKey{
			Key:       "visit-1",
			StaffID:   staffID,
			Endpoint:  "POST /api/v1/services",
			ExpiresAt: time.Now().Add(time.Hour),
		}
	}

	first := newKey()
	require.NoError(t, repo.Reserve(ctx, first))
	assert.ErrorIs(t, repo.Reserve(ctx, newKey()), domainRepo.ErrDuplicate)

	pending, err := repo.GetByKey(ctx, "visit-1", staffID)
	require.NoError(t, err)
	assert.True(t, pending.IsPending())

	require.NoError(t, repo.Complete(ctx, first.ID, 201, `{"success":true}`))
	done, err := repo.GetByKey(ctx, "visit-1", staffID)
	require.NoError(t, err)
	assert.False(t, done.IsPending())
	assert.Equal(t, `{"success":true}`, done.ResponseBody)

	// another staff member may use the same key
	other := newKey()
	other.StaffID = uuid.New()
	require.NoError(t, repo.Reserve(ctx, other))

	require.NoError(t, repo.Release(ctx, first.ID))
	require.NoError(t, repo.Reserve(ctx, newKey()))
}

func TestIdempotencyRepository_ReserveReplacesExpired(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewIdempotencyRepository(db)
	staffID := uuid.New()

	stale := &entity.IdempotencyKey{Key: "inv-1", StaffID: staffID, Endpoint: "POST /api/v1/invoices", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, repo.Reserve(ctx, stale))

	fresh := &entity.IdempotencyKey{Key: "inv-1", StaffID: staffID, Endpoint: "POST /api/v1/invoices", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Reserve(ctx, fresh))

	got, err := repo.GetByKey(ctx, "inv-1", staffID)
	require.NoError(t, err)
	assert.Equal(t, fresh.ID, got.ID)
}
