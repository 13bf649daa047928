package receipts

import (
	"context"

	"github.com/swiftloan/disburser/internal/pkg/models"
)

// ReceiptRepo is the receipt store. Lookups miss with
// models.ErrReceiptNotFound.
//
// Update is an atomic read-modify-write: fn receives the current record (nil
// when absent) and returns its replacement. Returning (nil, nil) leaves the
// store untouched. Every implementation serializes or transacts Update, so
// two concurrent writers cannot clobber each other's changes.
type ReceiptRepo interface {
	Get(ctx context.Context, reference string) (*models.Receipt, error)
	Put(ctx context.Context, receipt *models.Receipt) error
	All(ctx context.Context) (map[string]*models.Receipt, error)
	Update(ctx context.Context, reference string, fn func(existing *models.Receipt) (*models.Receipt, error)) (*models.Receipt, error)
}
