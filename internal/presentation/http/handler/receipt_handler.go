package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/servicecenter-api/internal/application/service"
	"github.com/sangkips/servicecenter-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles counter receipt requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// PrinterStatus reports which printer receipts go to
func (h *ReceiptHandler) PrinterStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.receiptService.Status())
}

// Get returns an invoice's receipt. With format=escpos the raw printer
// stream is returned instead, for printing from the browser.
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "invoice")
	if !ok {
		return
	}

	receipt, data, err := h.receiptService.BuildReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if c.Query("format") == "escpos" {
		response.Attachment(c, receipt.InvoiceNo+".bin", "application/octet-stream", data)
		return
	}
	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Print sends an invoice's receipt to the counter printer
func (h *ReceiptHandler) Print(c *gin.Context) {
	id, ok := paramID(c, "invoice")
	if !ok {
		return
	}

	receipt, err := h.receiptService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt sent to printer", receipt)
}
