package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultLowStockThreshold applies when a batch is received without one
const DefaultLowStockThreshold = 10

// StockBatch is one purchased lot of a product. QuantityUsed only grows
// through consumption or an administrative correction; the remaining
// quantity is never stored.
type StockBatch struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ProductName       string          `gorm:"size:255;not null;index" json:"product_name"`
	BatchNo           string          `gorm:"size:100;not null;index" json:"batch_no"`
	QuantityIn        int             `gorm:"not null" json:"quantity_in"`
	QuantityUsed      int             `gorm:"not null;default:0" json:"quantity_used"`
	UnitPrice         decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"unit_price"`
	Supplier          string          `gorm:"size:255" json:"supplier"`
	PurchaseDate      time.Time       `gorm:"not null" json:"purchase_date"`
	IsDefective       bool            `gorm:"not null;index" json:"is_defective"`
	LowStockThreshold int             `gorm:"not null" json:"low_stock_threshold"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Consumptions []StockConsumption `gorm:"foreignKey:StockBatchID" json:"consumptions,omitempty"`
}

// BeforeCreate generates a UUID before creating a new batch
func (s *StockBatch) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockBatch model
func (StockBatch) TableName() string {
	return "stock_batches"
}

// RemainingQuantity is QuantityIn minus QuantityUsed. It goes negative
// when a batch has been over-consumed.
func (s StockBatch) RemainingQuantity() int {
	return s.QuantityIn - s.QuantityUsed
}

// IsLowStock reports whether the remaining quantity is at or below the
// alert threshold
func (s StockBatch) IsLowStock() bool {
	return s.RemainingQuantity() <= s.LowStockThreshold
}

// StockValue is the purchase value of the units still on the shelf
func (s StockBatch) StockValue() decimal.Decimal {
	remaining := s.RemainingQuantity()
	if remaining <= 0 {
		return decimal.Zero
	}
	return s.UnitPrice.Mul(decimal.NewFromInt(int64(remaining)))
}

// MarshalJSON adds the derived stock fields to the stored ones
func (s StockBatch) MarshalJSON() ([]byte, error) {
	type batch StockBatch
	return json.Marshal(struct {
		batch
		RemainingQuantity int  `json:"remaining_quantity"`
		IsLowStock        bool `json:"is_low_stock"`
	}{
		batch:             batch(s),
		RemainingQuantity: s.RemainingQuantity(),
		IsLowStock:        s.IsLowStock(),
	})
}

// StockConsumption links a service visit to the units it took from a batch
type StockConsumption struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ServiceRecordID uuid.UUID `gorm:"type:uuid;not null;index" json:"service_id"`
	StockBatchID    uuid.UUID `gorm:"type:uuid;not null;index" json:"stock_id"`
	Quantity        int       `gorm:"not null" json:"quantity_used"`
	CreatedAt       time.Time `json:"created_at"`

	// Relationships
	StockBatch *StockBatch `gorm:"foreignKey:StockBatchID" json:"stock,omitempty"`
}

// BeforeCreate generates a UUID before creating a new consumption
func (c *StockConsumption) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the StockConsumption model
func (StockConsumption) TableName() string {
	return "stock_consumptions"
}
