package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/servicecenter-api/internal/application/service"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/request"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/response"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
	"github.com/sangkips/servicecenter-api/pkg/utils"
)

// ServiceHandler handles service visit requests
type ServiceHandler struct {
	serviceRecords *service.ServiceRecordService
}

// NewServiceHandler creates a new service handler
func NewServiceHandler(serviceRecords *service.ServiceRecordService) *ServiceHandler {
	return &ServiceHandler{serviceRecords: serviceRecords}
}

// List handles listing visits. end_date is inclusive of the whole day.
func (h *ServiceHandler) List(c *gin.Context) {
	var fieldErrors []apperror.FieldError
	filter := repository.ServiceRecordFilterParams{
		ServiceType:    c.Query("service_type"),
		StartDate:      queryDate(c, "start_date", &fieldErrors),
		EndDate:        queryDate(c, "end_date", &fieldErrors),
		ComplaintsOnly: c.Query("complaints") == "true",
	}
	if raw := c.Query("user_id"); raw != "" {
		customerID, err := utils.ParseUUID(raw)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "user_id", Message: "must be a valid ID"})
		} else {
			filter.CustomerID = &customerID
		}
	}
	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}
	if filter.EndDate != nil {
		end := filter.EndDate.AddDate(0, 0, 1)
		filter.EndDate = &end
	}

	result, err := h.serviceRecords.ListServices(c.Request.Context(), pageParams(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Services retrieved successfully", result)
}

// Create records a visit and the stock it consumed. Stock lines that could
// not be applied are returned in product_errors; the visit itself is kept.
func (h *ServiceHandler) Create(c *gin.Context) {
	staffID := GetStaffID(c)
	if staffID == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}

	var req request.CreateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	var fieldErrors []apperror.FieldError
	input := &service.RecordVisitInput{
		CreatedBy:    *staffID,
		ServiceDate:  optionalDate("service_date", &req.ServiceDate, &fieldErrors),
		ServiceTypes: req.ServiceTypes,
		LabourCharge: req.LabourCharge,
		PartsCharge:  req.PartsCharge,
		AmountPaid:   req.AmountPaid,
		NextDueDate:  optionalDate("next_due_date", req.NextDueDate, &fieldErrors),
	}
	if req.CustomerID != "" {
		customerID, err := utils.ParseUUID(req.CustomerID)
		if err != nil {
			fieldErrors = append(fieldErrors, apperror.FieldError{Field: "user_id", Message: "must be a valid ID"})
		}
		input.CustomerID = customerID
	}
	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}
	for _, p := range req.ProductsUsed {
		input.ProductsUsed = append(input.ProductsUsed, service.ConsumedItemInput{
			StockID:  p.BatchRef(),
			Quantity: p.Quantity(),
		})
	}

	result, err := h.serviceRecords.RecordVisit(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Service recorded successfully"
	if len(result.ProductErrors) > 0 {
		message = "Service recorded; some products could not be applied"
	}
	response.Created(c, message, result)
}

// Get handles getting a single visit
func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "service")
	if !ok {
		return
	}

	record, err := h.serviceRecords.GetService(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service retrieved successfully", record)
}

// Update handles amount, feedback and complaint corrections
func (h *ServiceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "service")
	if !ok {
		return
	}

	var req request.UpdateServiceRequest
	if !bindJSON(c, &req) {
		return
	}

	var fieldErrors []apperror.FieldError
	input := &service.UpdateServiceInput{
		ServiceDate:          optionalDate("service_date", req.ServiceDate, &fieldErrors),
		ServiceTypes:         req.ServiceTypes,
		LabourCharge:         req.LabourCharge,
		PartsCharge:          req.PartsCharge,
		AmountPaid:           req.AmountPaid,
		NextDueDate:          optionalDate("next_due_date", req.NextDueDate, &fieldErrors),
		FeedbackText:         req.FeedbackText,
		FeedbackRating:       req.FeedbackRating,
		ComplaintFlag:        req.ComplaintFlag,
		ComplaintDescription: req.ComplaintDescription,
	}
	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}

	record, err := h.serviceRecords.UpdateService(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Service updated successfully", record)
}
