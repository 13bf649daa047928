package receipts

import (
	"context"
	"io"

	"github.com/swiftloan/disburser/internal/pkg/models"
)

// PaymentGW is the outbound contract with the payment provider.
type PaymentGW interface {
	InitializePayment(ctx context.Context, req *models.PaymentInitRequest) (*models.PaymentInitResponse, error)
}

// EventsGW publishes receipt lifecycle events. Implementations may be absent;
// callers treat publishing as fire-and-forget.
type EventsGW interface {
	PublishStatusChanged(ctx context.Context, receipt *models.Receipt) error
}

// ReceiptRenderer produces a binary document view of a receipt snapshot.
type ReceiptRenderer interface {
	Render(receipt *models.Receipt, w io.Writer) error
}
