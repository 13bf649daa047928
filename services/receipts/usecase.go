package receipts

import (
	"context"

	"github.com/swiftloan/disburser/internal/pkg/models"
)

// ReceiptUseCase defines the receipt lifecycle operations.
type ReceiptUseCase interface {
	// InitiatePayment normalizes and validates the request, asks the provider
	// for an STK push and persists the resulting receipt. On a provider
	// failure the returned receipt is the persisted error record and the error
	// wraps models.ErrPaymentInitiation.
	InitiatePayment(ctx context.Context, req *models.PayRequest) (*models.Receipt, error)

	// HandleCallback applies a provider notification to the referenced
	// receipt, synthesizing a new record when none exists.
	HandleCallback(ctx context.Context, cb *models.CallbackRequest) (*models.Receipt, error)

	// GetReceipt returns the receipt for reference or models.ErrReceiptNotFound.
	GetReceipt(ctx context.Context, reference string) (*models.Receipt, error)
}
