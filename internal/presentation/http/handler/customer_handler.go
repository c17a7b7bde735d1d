package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/servicecenter-api/internal/application/service"
	"github.com/sangkips/servicecenter-api/internal/infrastructure/spreadsheet"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/request"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/response"
)

// maxImportSize bounds uploaded workbooks
const maxImportSize = 10 << 20

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	result, err := h.customerService.ListCustomers(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		Name:      req.Name,
		Mobile:    req.Mobile,
		VehicleNo: req.VehicleNo,
		Email:     req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Get handles getting a single customer with their service history
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "customer")
	if !ok {
		return
	}

	var req request.UpdateCustomerRequest
	if !bindJSON(c, &req) {
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), &service.UpdateCustomerInput{
		ID:        id,
		Name:      req.Name,
		Mobile:    req.Mobile,
		VehicleNo: req.VehicleNo,
		Email:     req.Email,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Import handles an .xlsx upload in the "file" form field
func (h *CustomerHandler) Import(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file uploaded")
		return
	}
	if header.Size > maxImportSize {
		response.BadRequest(c, "File is too large")
		return
	}

	file, err := header.Open()
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	rows, err := spreadsheet.ReadCustomers(file)
	if errors.Is(err, spreadsheet.ErrNoRows) {
		response.BadRequest(c, "The spreadsheet has no customer rows")
		return
	}
	if err != nil {
		response.BadRequest(c, "Invalid spreadsheet: "+err.Error())
		return
	}

	importRows := make([]service.CustomerImportRow, 0, len(rows))
	for _, row := range rows {
		importRows = append(importRows, service.CustomerImportRow{
			Row:       row.Row,
			Name:      row.Name,
			Mobile:    row.Mobile,
			VehicleNo: row.VehicleNo,
			Email:     row.Email,
		})
	}

	result, err := h.customerService.ImportCustomers(c.Request.Context(), importRows)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers imported", result)
}
