package handler

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/swiftloan/disburser/internal/pkg/logger"
	"github.com/swiftloan/disburser/internal/pkg/models"
	"github.com/swiftloan/disburser/internal/utils"
)

// InitiatePayment handles POST /pay
func (h *ReceiptHandler) InitiatePayment(c echo.Context) error {
	var req models.PayRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	receipt, err := h.receiptUC.InitiatePayment(c.Request().Context(), &req)
	switch {
	case err == nil:
		return c.JSON(http.StatusOK, models.PayResponse{
			Success:   true,
			Message:   "STK push sent, check your phone",
			Reference: receipt.Reference,
			Receipt:   receipt,
		})
	case errors.Is(err, models.ErrInvalidPhone):
		return utils.BadRequestResponse(c, "Invalid phone format")
	case errors.Is(err, models.ErrInvalidAmount):
		return utils.BadRequestResponse(c, "Amount must be >= 1")
	default:
		return c.JSON(http.StatusInternalServerError, models.PayErrorResponse{
			Success: false,
			Error:   err.Error(),
			Receipt: receipt,
		})
	}
}

// PaymentCallback handles POST /callback. The provider treats any non-OK
// acknowledgment as a delivery failure and retries indefinitely, so this
// endpoint acknowledges unconditionally.
func (h *ReceiptHandler) PaymentCallback(c echo.Context) error {
	ack := models.CallbackAck{ResultCode: 0, ResultDesc: "OK"}

	var cb models.CallbackRequest
	if err := c.Bind(&cb); err != nil {
		logger.Warn("Discarding malformed callback payload", logger.Err(err))
		return c.JSON(http.StatusOK, ack)
	}

	if _, err := h.receiptUC.HandleCallback(c.Request().Context(), &cb); err != nil {
		logger.Error("Failed to process callback",
			logger.String("reference", cb.ExternalReference),
			logger.Err(err))
	}

	return c.JSON(http.StatusOK, ack)
}

// GetReceipt handles GET /receipt/:reference
func (h *ReceiptHandler) GetReceipt(c echo.Context) error {
	reference := c.Param("reference")

	receipt, err := h.receiptUC.GetReceipt(c.Request().Context(), reference)
	if err != nil {
		if errors.Is(err, models.ErrReceiptNotFound) {
			return utils.NotFoundResponse(c, "Receipt not found")
		}
		return utils.InternalServerErrorResponse(c, err.Error())
	}

	return c.JSON(http.StatusOK, models.ReceiptResponse{
		Success: true,
		Receipt: receipt,
	})
}

// DownloadReceiptPDF handles GET /receipt/:reference/pdf
func (h *ReceiptHandler) DownloadReceiptPDF(c echo.Context) error {
	reference := c.Param("reference")

	receipt, err := h.receiptUC.GetReceipt(c.Request().Context(), reference)
	if err != nil {
		if errors.Is(err, models.ErrReceiptNotFound) {
			return utils.NotFoundResponse(c, "Receipt not found")
		}
		return utils.InternalServerErrorResponse(c, err.Error())
	}

	var buf bytes.Buffer
	if err := h.renderer.Render(receipt, &buf); err != nil {
		logger.Error("Failed to render receipt PDF",
			logger.String("reference", reference),
			logger.Err(err))
		return utils.InternalServerErrorResponse(c, "Failed to render receipt")
	}

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=receipt-%s.pdf", receipt.Reference))

	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}
