package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Staff is an account that signs in to the dashboard
type Staff struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Email       string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string         `gorm:"size:255;not null" json:"-"`
	Role        enum.StaffRole `gorm:"size:20;not null;index" json:"role"`
	Mobile      *string        `gorm:"size:20" json:"mobile,omitempty"`
	IsActive    bool           `gorm:"not null" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new staff member
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}
