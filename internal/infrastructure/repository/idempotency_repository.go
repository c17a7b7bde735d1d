package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	domainRepo "github.com/sangkips/servicecenter-api/internal/domain/repository"
	"gorm.io/gorm"
)

type idempotencyRepository struct {
	db *gorm.DB
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key string, staffID uuid.UUID) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Where("key = ? AND staff_id = ?", key, staffID).
		First(&ikey).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &ikey, err
}

// Reserve inserts a pending key. An expired key with the same value is
// replaced; a live one makes the unique index reject the insert.
func (r *idempotencyRepository) Reserve(ctx context.Context, ikey *entity.IdempotencyKey) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("key = ? AND staff_id = ? AND expires_at < ?", ikey.Key, ikey.StaffID, time.Now()).
			Delete(&entity.IdempotencyKey{}).Error; err != nil {
			return err
		}
		return translateError(tx.Create(ikey).Error)
	})
}

func (r *idempotencyRepository) Complete(ctx context.Context, id uuid.UUID, code int, body string) error {
	return r.db.WithContext(ctx).
		Model(&entity.IdempotencyKey{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"response_code": code, "response_body": body}).Error
}

func (r *idempotencyRepository) Release(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.IdempotencyKey{}, "id = ?", id).Error
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("expires_at < ?", time.Now()).
		Delete(&entity.IdempotencyKey{}).Error
}
