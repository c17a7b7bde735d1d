package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/servicecenter-api/internal/application/service"
	"github.com/sangkips/servicecenter-api/internal/domain/repository"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/request"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/response"
	"github.com/sangkips/servicecenter-api/pkg/utils"
)

// InvoiceHandler handles invoice requests
type InvoiceHandler struct {
	invoiceService *service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles listing invoices, optionally for one service
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter repository.InvoiceFilterParams
	if raw := c.Query("service_id"); raw != "" {
		serviceID, err := utils.ParseUUID(raw)
		if err != nil {
			response.BadRequest(c, "Invalid service ID")
			return
		}
		filter.ServiceID = &serviceID
	}
	filter.Sent = queryBool(c, "sent")
	filter.Paid = queryBool(c, "paid")

	result, err := h.invoiceService.ListInvoices(c.Request.Context(), pageParams(c), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPagination(c, http.StatusOK, "Invoices retrieved successfully", result)
}

// Create raises the invoice for a service
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req request.CreateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}
	serviceID, err := utils.ParseUUID(req.ServiceID)
	if err != nil {
		response.BadRequest(c, "Invalid service ID")
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		ServiceID:      serviceID,
		DiscountAmount: req.DiscountAmount,
		GSTRate:        req.GSTRate,
		IsInterstate:   req.IsInterstate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Invoice created successfully", invoice)
}

// Get handles getting a single invoice
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Invoice retrieved successfully", invoice)
}

// Send messages the invoice to the customer. A refused message is answered
// with 200 and success false in the data.
func (h *InvoiceHandler) Send(c *gin.Context) {
	id, ok := paramID(c, "invoice")
	if !ok {
		return
	}

	result, err := h.invoiceService.SendInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result.Message, result)
}

// MarkPaid records payment for an invoice
func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	id, ok := paramID(c, "invoice")
	if !ok {
		return
	}

	invoice, err := h.invoiceService.MarkPaymentReceived(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Payment recorded successfully", invoice)
}

func queryBool(c *gin.Context, key string) *bool {
	switch c.Query(key) {
	case "true", "1":
		v := true
		return &v
	case "false", "0":
		v := false
		return &v
	}
	return nil
}
