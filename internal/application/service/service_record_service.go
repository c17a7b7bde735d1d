package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/servicecenter-api/internal/domain/entity"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/pagination"
	"github.com/sangkips/servicecenter-api/pkg/utils"
	"github.com/shopspring/decimal"
)

// ServiceRecordService records service visits and the stock they consume
type ServiceRecordService struct {
	serviceRepo  repository.ServiceRecordRepository
	customerRepo repository.CustomerRepository
	inventory    *InventoryService
}

// NewServiceRecordService creates a new service record service
func NewServiceRecordService(
	serviceRepo repository.ServiceRecordRepository,
	customerRepo repository.CustomerRepository,
	inventory *InventoryService,
) *ServiceRecordService {
	return &ServiceRecordService{
		serviceRepo:  serviceRepo,
		customerRepo: customerRepo,
		inventory:    inventory,
	}
}

// ConsumedItemInput is one {stock, quantity} pair used during a visit. The
// stock id is kept raw so a malformed id fails only its own item.
type ConsumedItemInput struct {
	StockID  string
	Quantity int
}

// RecordVisitInput represents a new service visit
type RecordVisitInput struct {
	CreatedBy    uuid.UUID
	CustomerID   uuid.UUID
	ServiceDate  *time.Time
	ServiceTypes []string
	LabourCharge decimal.Decimal
	PartsCharge  decimal.Decimal
	AmountPaid   *decimal.Decimal
	NextDueDate  *time.Time
	ProductsUsed []ConsumedItemInput
}

// ProductError reports a consumption pair that could not be applied
type ProductError struct {
	Index   int    `json:"index"`
	StockID string `json:"stock_id"`
	Error   string `json:"error"`
}

// VisitResult is the recorded visit plus the consumption pairs that failed
type VisitResult struct {
	Service       *entity.ServiceRecord `json:"service"`
	ProductErrors []ProductError        `json:"product_errors,omitempty"`
}

// RecordVisit validates the request, creates the service record and then
// applies each consumption pair in order. Consumption is best effort: a
// failing pair is reported in ProductErrors and the loop moves on, and
// pairs already applied stay applied. The record is returned with its
// customer and creator loaded.
func (s *ServiceRecordService) RecordVisit(ctx context.Context, input *RecordVisitInput) (*VisitResult, error) {
	types := cleanServiceTypes(input.ServiceTypes)
	if err := validateVisit(input, types); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load customer", err)
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	record := &entity.ServiceRecord{
		CustomerID:   input.CustomerID,
		ServiceDate:  input.ServiceDate.UTC(),
		LabourCharge: input.LabourCharge,
		PartsCharge:  input.PartsCharge,
		AmountPaid:   *input.AmountPaid,
		CreatedByID:  input.CreatedBy,
	}
	if input.NextDueDate != nil {
		due := input.NextDueDate.UTC()
		record.NextDueDate = &due
	}
	if err := record.SetTypes(types); err != nil {
		return nil, apperror.NewBadRequestError("Invalid service types")
	}

	// amount_paid is taken as sent; the dashboard sums labour and line items
	if !record.AmountPaid.Equal(record.ChargesTotal()) {
		log.Printf("[services] amount paid %s differs from labour+parts %s for customer %s",
			record.AmountPaid, record.ChargesTotal(), customer.ID)
	}

	if err := s.serviceRepo.Create(ctx, record); err != nil {
		return nil, apperror.NewUpstreamError("Failed to create service", err)
	}

	productErrors := s.consumeProducts(ctx, record.ID, input.ProductsUsed)

	created, err := s.serviceRepo.GetByID(ctx, record.ID)
	if err != nil || created == nil {
		log.Printf("[services] reload of %s failed: %v", record.ID, err)
		record.Customer = customer
		created = record
	}

	return &VisitResult{Service: created, ProductErrors: productErrors}, nil
}

func (s *ServiceRecordService) consumeProducts(ctx context.Context, serviceID uuid.UUID, items []ConsumedItemInput) []ProductError {
	var productErrors []ProductError
	for i, item := range items {
		batchID, err := utils.ParseUUID(item.StockID)
		if err != nil {
			productErrors = append(productErrors, ProductError{Index: i, StockID: item.StockID, Error: "Invalid stock ID"})
			continue
		}

		_, err = s.inventory.ConsumeStock(ctx, &ConsumeStockInput{
			ServiceID: serviceID,
			BatchID:   batchID,
			Quantity:  item.Quantity,
		})
		if err != nil {
			log.Printf("[services] consumption %d for service %s failed: %v", i, serviceID, err)
			productErrors = append(productErrors, ProductError{Index: i, StockID: item.StockID, Error: err.Error()})
		}
	}
	return productErrors
}

func validateVisit(input *RecordVisitInput, types []string) error {
	var missing []apperror.FieldError
	if input.CustomerID == uuid.Nil {
		missing = append(missing, apperror.FieldError{Field: "user_id", Message: "Customer is required"})
	}
	if input.ServiceDate == nil || input.ServiceDate.IsZero() {
		missing = append(missing, apperror.FieldError{Field: "service_date", Message: "Service date is required"})
	}
	if len(types) == 0 {
		missing = append(missing, apperror.FieldError{Field: "service_type", Message: "At least one service type is required"})
	}
	if input.AmountPaid == nil {
		missing = append(missing, apperror.FieldError{Field: "amount_paid", Message: "Amount paid is required"})
	}
	if len(missing) > 0 {
		err := apperror.NewBadRequestError("Missing required fields")
		err.Errors = missing
		return err
	}

	if input.LabourCharge.IsNegative() || input.PartsCharge.IsNegative() || input.AmountPaid.IsNegative() {
		return apperror.NewBadRequestError("Charges cannot be negative")
	}
	if input.CreatedBy == uuid.Nil {
		return apperror.NewUnauthorizedError("User not authenticated")
	}
	return nil
}

// cleanServiceTypes trims the tags and drops blanks and repeats
func cleanServiceTypes(types []string) []string {
	seen := make(map[string]bool, len(types))
	out := make([]string, 0, len(types))
	for _, t := range types {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// UpdateServiceInput represents a partial update of a visit
type UpdateServiceInput struct {
	ServiceDate          *time.Time
	ServiceTypes         []string
	LabourCharge         *decimal.Decimal
	PartsCharge          *decimal.Decimal
	AmountPaid           *decimal.Decimal
	NextDueDate          *time.Time
	FeedbackText         *string
	FeedbackRating       *int
	ComplaintFlag        *bool
	ComplaintDescription *string
}

// UpdateService changes amounts, feedback or complaint details of a visit.
// Consumed stock is not touched.
func (s *ServiceRecordService) UpdateService(ctx context.Context, id uuid.UUID, input *UpdateServiceInput) (*entity.ServiceRecord, error) {
	record, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load service", err)
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Service")
	}

	if input.ServiceDate != nil {
		record.ServiceDate = input.ServiceDate.UTC()
	}
	if input.ServiceTypes != nil {
		types := cleanServiceTypes(input.ServiceTypes)
		if len(types) == 0 {
			return nil, apperror.NewBadRequestError("At least one service type is required")
		}
		if err := record.SetTypes(types); err != nil {
			return nil, apperror.NewBadRequestError("Invalid service types")
		}
	}
	for _, amount := range []*decimal.Decimal{input.LabourCharge, input.PartsCharge, input.AmountPaid} {
		if amount != nil && amount.IsNegative() {
			return nil, apperror.NewBadRequestError("Charges cannot be negative")
		}
	}
	if input.LabourCharge != nil {
		record.LabourCharge = *input.LabourCharge
	}
	if input.PartsCharge != nil {
		record.PartsCharge = *input.PartsCharge
	}
	if input.AmountPaid != nil {
		record.AmountPaid = *input.AmountPaid
	}
	if input.NextDueDate != nil {
		due := input.NextDueDate.UTC()
		if record.NextDueDate == nil || !record.NextDueDate.Equal(due) {
			record.ReminderSentAt = nil
		}
		record.NextDueDate = &due
	}
	if input.FeedbackText != nil {
		record.FeedbackText = input.FeedbackText
	}
	if input.FeedbackRating != nil {
		if *input.FeedbackRating < 1 || *input.FeedbackRating > 5 {
			return nil, apperror.NewBadRequestError("Feedback rating must be between 1 and 5")
		}
		record.FeedbackRating = input.FeedbackRating
	}
	if input.ComplaintFlag != nil {
		record.ComplaintFlag = *input.ComplaintFlag
	}
	if input.ComplaintDescription != nil {
		record.ComplaintDescription = input.ComplaintDescription
	}

	if err := s.serviceRepo.Update(ctx, record); err != nil {
		return nil, apperror.NewUpstreamError("Failed to update service", err)
	}
	return s.GetService(ctx, id)
}

// GetService returns a visit with its customer, creator and consumed stock
func (s *ServiceRecordService) GetService(ctx context.Context, id uuid.UUID) (*entity.ServiceRecord, error) {
	record, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to load service", err)
	}
	if record == nil {
		return nil, apperror.NewNotFoundError("Service")
	}
	return record, nil
}

// ListServices lists visits, newest first
func (s *ServiceRecordService) ListServices(ctx context.Context, params *pagination.PaginationParams, filter repository.ServiceRecordFilterParams) (*pagination.PaginatedResult[entity.ServiceRecord], error) {
	params.Validate()
	records, total, err := s.serviceRepo.List(ctx, params, filter)
	if err != nil {
		return nil, apperror.NewUpstreamError("Failed to list services", err)
	}
	return pagination.NewPaginatedResult(records, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}
