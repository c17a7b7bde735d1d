package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyKey stores the response of a processed mutating request so a
// retried request with the same key is answered without running again
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_staff_key"`
	StaffID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_staff_key"`
	Endpoint     string    `gorm:"size:255;not null"` // e.g. "POST /api/v1/services"
	ResponseCode int       `gorm:"not null"` // 0 while the request is still running
	ResponseBody string    `gorm:"type:text"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	ExpiresAt    time.Time `gorm:"not null;index"`
}

// BeforeCreate generates a UUID before storing the key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// IsExpired checks if the idempotency key has expired
func (i *IdempotencyKey) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// IsPending reports whether the request holding the key has not finished
func (i *IdempotencyKey) IsPending() bool {
	return i.ResponseCode == 0
}
