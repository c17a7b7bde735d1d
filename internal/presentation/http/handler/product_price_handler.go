package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/servicecenter-api/internal/application/service"
	"github.com/sangkips/servicecenter-api/internal/domain/enum"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/request"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/response"
)

// ProductPriceHandler handles price list requests
type ProductPriceHandler struct {
	priceService *service.ProductPriceService
}

// NewProductPriceHandler creates a new product price handler
func NewProductPriceHandler(priceService *service.ProductPriceService) *ProductPriceHandler {
	return &ProductPriceHandler{priceService: priceService}
}

// List handles listing the price list. Only active entries are returned
// unless is_active=false is given.
func (h *ProductPriceHandler) List(c *gin.Context) {
	filter := repository.ProductPriceFilterParams{Search: c.Query("search")}
	if raw := c.Query("product_type"); raw != "" {
		productType, err := enum.ParseProductType(raw)
		if err != nil {
			response.BadRequest(c, "Invalid product type")
			return
		}
		filter.ProductType = productType
	}
	active := c.Query("is_active") != "false"
	filter.IsActive = &active

	result, err := h.priceService.ListProductPrices(c.Request.Context(), pageParams(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Product prices retrieved successfully", result)
}

// Create adds a price-list entry
func (h *ProductPriceHandler) Create(c *gin.Context) {
	var req request.CreateProductPriceRequest
	if !bindJSON(c, &req) {
		return
	}

	price, err := h.priceService.CreateProductPrice(c.Request.Context(), &service.ProductPriceInput{
		ProductName: req.ProductName,
		ProductType: req.ProductType,
		Brand:       req.Brand,
		Price:       req.Price,
		Unit:        req.Unit,
		IsActive:    req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Product price created successfully", price)
}

// Get handles getting a single entry
func (h *ProductPriceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "product price")
	if !ok {
		return
	}

	price, err := h.priceService.GetProductPrice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product price retrieved successfully", price)
}

// Update handles updating an entry
func (h *ProductPriceHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "product price")
	if !ok {
		return
	}

	var req request.UpdateProductPriceRequest
	if !bindJSON(c, &req) {
		return
	}

	price, err := h.priceService.UpdateProductPrice(c.Request.Context(), id, &service.UpdateProductPriceInput{
		ProductName: req.ProductName,
		ProductType: req.ProductType,
		Brand:       req.Brand,
		Price:       req.Price,
		Unit:        req.Unit,
		IsActive:    req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Product price updated successfully", price)
}

// Delete handles deleting an entry
func (h *ProductPriceHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "product price")
	if !ok {
		return
	}

	if err := h.priceService.DeleteProductPrice(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
