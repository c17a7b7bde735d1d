package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ServiceRecord is one vehicle-service visit
type ServiceRecord struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	ServiceDate          time.Time       `gorm:"not null;index" json:"service_date"`
	ServiceTypes         datatypes.JSON  `gorm:"not null" json:"service_types"`
	LabourCharge         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"labour_charge"`
	PartsCharge          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"parts_charge"`
	AmountPaid           decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount_paid"`
	NextDueDate          *time.Time      `gorm:"index" json:"next_due_date,omitempty"`
	FeedbackText         *string         `gorm:"type:text" json:"feedback_text,omitempty"`
	FeedbackRating       *int            `json:"feedback_rating,omitempty"`
	ComplaintFlag        bool            `gorm:"not null;index" json:"complaint_flag"`
	ComplaintDescription *string         `gorm:"type:text" json:"complaint_description,omitempty"`
	CreatedByID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"created_by_id"`
	ReminderSentAt       *time.Time      `json:"reminder_sent_at,omitempty"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`

	// Relationships
	Customer     *Customer          `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	CreatedBy    *Staff             `gorm:"foreignKey:CreatedByID" json:"created_by,omitempty"`
	Consumptions []StockConsumption `gorm:"foreignKey:ServiceRecordID" json:"products_used,omitempty"`
}

// BeforeCreate generates a UUID before creating a new service record
func (s *ServiceRecord) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if len(s.ServiceTypes) == 0 {
		s.ServiceTypes = datatypes.JSON("[]")
	}
	return nil
}

// TableName returns the table name for the ServiceRecord model
func (ServiceRecord) TableName() string {
	return "service_records"
}

// Types decodes the service type tags
func (s *ServiceRecord) Types() []string {
	var types []string
	if len(s.ServiceTypes) == 0 {
		return types
	}
	_ = json.Unmarshal(s.ServiceTypes, &types)
	return types
}

// SetTypes stores the service type tags
func (s *ServiceRecord) SetTypes(types []string) error {
	if types == nil {
		types = []string{}
	}
	raw, err := json.Marshal(types)
	if err != nil {
		return err
	}
	s.ServiceTypes = datatypes.JSON(raw)
	return nil
}

// ChargesTotal is labour plus parts, the amount an invoice is raised on
func (s *ServiceRecord) ChargesTotal() decimal.Decimal {
	return s.LabourCharge.Add(s.PartsCharge)
}
