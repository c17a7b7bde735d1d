package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/servicecenter-api/internal/application/service"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/request"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/response"
	"github.com/sangkips/servicecenter-api/pkg/apperror"
)

// StockHandler handles inventory batch requests
type StockHandler struct {
	inventory *service.InventoryService
}

// NewStockHandler creates a new stock handler
func NewStockHandler(inventory *service.InventoryService) *StockHandler {
	return &StockHandler{inventory: inventory}
}

// List handles listing batches with the low_stock and defective filters
func (h *StockHandler) List(c *gin.Context) {
	filter := repository.StockFilterParams{
		Search:    c.Query("search"),
		LowStock:  c.Query("low_stock") == "true",
		Defective: c.Query("defective") == "true",
	}

	result, err := h.inventory.ListStock(c.Request.Context(), pageParams(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Stock retrieved successfully", result)
}

// Create records a received batch
func (h *StockHandler) Create(c *gin.Context) {
	var req request.CreateStockRequest
	if !bindJSON(c, &req) {
		return
	}

	var fieldErrors []apperror.FieldError
	input := &service.CreateStockInput{
		ProductName:       req.ProductName,
		BatchNo:           req.BatchNo,
		QuantityIn:        req.QuantityIn,
		UnitPrice:         req.UnitPrice,
		Supplier:          req.Supplier,
		PurchaseDate:      optionalDate("purchase_date", req.PurchaseDate, &fieldErrors),
		IsDefective:       req.IsDefective,
		LowStockThreshold: req.LowStockThreshold,
	}
	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}

	batch, err := h.inventory.CreateStock(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Stock created successfully", batch)
}

// Get handles getting a batch with its consumption history
func (h *StockHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "stock")
	if !ok {
		return
	}

	batch, err := h.inventory.GetStock(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock retrieved successfully", batch)
}

// Update corrects a batch
func (h *StockHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "stock")
	if !ok {
		return
	}

	var req request.UpdateStockRequest
	if !bindJSON(c, &req) {
		return
	}

	var fieldErrors []apperror.FieldError
	input := &service.UpdateStockInput{
		ProductName:       req.ProductName,
		BatchNo:           req.BatchNo,
		QuantityIn:        req.QuantityIn,
		UnitPrice:         req.UnitPrice,
		Supplier:          req.Supplier,
		PurchaseDate:      optionalDate("purchase_date", req.PurchaseDate, &fieldErrors),
		IsDefective:       req.IsDefective,
		LowStockThreshold: req.LowStockThreshold,
	}
	if len(fieldErrors) > 0 {
		response.ValidationError(c, fieldErrors)
		return
	}

	batch, err := h.inventory.UpdateStock(c.Request.Context(), id, input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Stock updated successfully", batch)
}

// Delete removes a batch
func (h *StockHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "stock")
	if !ok {
		return
	}

	if err := h.inventory.DeleteStock(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
