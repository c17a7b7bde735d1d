package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Invoice is the tax invoice raised for a single service record. The
// unique index on service_id allows at most one per visit.
type Invoice struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceNo       string          `gorm:"size:50;not null;uniqueIndex" json:"invoice_no"`
	ServiceID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"service_id"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total_amount"`
	DiscountAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"discount_amount"`
	GSTRate         decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"gst_rate"`
	GSTAmount       decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"gst_amount"`
	CGST            decimal.Decimal `gorm:"column:cgst;type:decimal(18,4);not null;default:0" json:"cgst"`
	SGST            decimal.Decimal `gorm:"column:sgst;type:decimal(18,4);not null;default:0" json:"sgst"`
	IGST            decimal.Decimal `gorm:"column:igst;type:decimal(18,4);not null;default:0" json:"igst"`
	FinalAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"final_amount"`
	IsInterstate    bool            `gorm:"not null" json:"is_interstate"`
	SentOnWhatsApp  bool            `gorm:"column:sent_on_whatsapp;not null;index" json:"sent_on_whatsapp"`
	SentAt          *time.Time      `json:"sent_at,omitempty"`
	PaymentReceived bool            `gorm:"not null;index" json:"payment_received"`
	PaymentDate     *time.Time      `json:"payment_date,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`

	// Relationships
	Service *ServiceRecord `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

// BeforeCreate generates a UUID before creating a new invoice
func (i *Invoice) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// DefaultInvoiceSequence is the counter invoice numbers are drawn from
const DefaultInvoiceSequence = "invoice"

// InvoiceSequence is a named counter from which invoice numbers are drawn
type InvoiceSequence struct {
	Name      string    `gorm:"size:50;primaryKey" json:"name"`
	LastValue int64     `gorm:"not null;default:0" json:"last_value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the InvoiceSequence model
func (InvoiceSequence) TableName() string {
	return "invoice_sequences"
}
