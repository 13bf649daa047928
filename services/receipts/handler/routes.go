package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/swiftloan/disburser/services/receipts"
)

// ReceiptHandler handles HTTP requests for receipt operations
type ReceiptHandler struct {
	receiptUC receipts.ReceiptUseCase
	renderer  receipts.ReceiptRenderer
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptUC receipts.ReceiptUseCase, renderer receipts.ReceiptRenderer) *ReceiptHandler {
	return &ReceiptHandler{
		receiptUC: receiptUC,
		renderer:  renderer,
	}
}

// RegisterRoutes registers the receipt routes
func (h *ReceiptHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/pay", h.InitiatePayment)
	e.POST("/callback", h.PaymentCallback)
	e.GET("/receipt/:reference", h.GetReceipt)
	e.GET("/receipt/:reference/pdf", h.DownloadReceiptPDF)
}
