package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultPriceUnit is used when a price entry is created without a unit
const DefaultPriceUnit = "per piece"

// ProductPrice is a price-list entry used to fill visit line items. It does
// not track quantities.
type ProductPrice struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	ProductName string           `gorm:"size:255;not null;index" json:"product_name"`
	ProductType enum.ProductType `gorm:"size:20;not null;index" json:"product_type"`
	Brand       *string          `gorm:"size:100" json:"brand,omitempty"`
	Price       decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"price"`
	Unit        string           `gorm:"size:50;not null" json:"unit"`
	IsActive    bool             `gorm:"not null;index" json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
	DeletedAt   gorm.DeletedAt   `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new price entry
func (p *ProductPrice) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Unit == "" {
		p.Unit = DefaultPriceUnit
	}
	return nil
}

// TableName returns the table name for the ProductPrice model
func (ProductPrice) TableName() string {
	return "product_prices"
}
