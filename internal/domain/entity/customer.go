package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	"gorm.io/gorm"
)

// Customer is a vehicle owner served by the center
type Customer struct {
	ID        uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string              `gorm:"size:255;not null" json:"name"`
	Mobile    string              `gorm:"size:20;not null;uniqueIndex" json:"mobile"`
	VehicleNo string              `gorm:"size:30;not null;index" json:"vehicle_no"`
	Email     *string             `gorm:"size:255" json:"email,omitempty"`
	Source    enum.CustomerSource `gorm:"size:20;not null" json:"source"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`

	// Relationships
	Services []ServiceRecord `gorm:"foreignKey:CustomerID" json:"services,omitempty"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Source == "" {
		c.Source = enum.CustomerSourceAdmin
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}
