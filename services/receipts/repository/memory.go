package repository

import (
	"context"
	"sync"

	"github.com/swiftloan/disburser/internal/pkg/models"
	"github.com/swiftloan/disburser/services/receipts"
)

// MemoryReceiptRepo is an in-process receipt store used by tests and by the
// "memory" driver. Values are copied on the way in and out so callers cannot
// mutate stored state behind the lock.
type MemoryReceiptRepo struct {
	mu    sync.RWMutex
	store map[string]models.Receipt
}

// NewMemoryReceiptRepo creates an empty in-memory receipt store
func NewMemoryReceiptRepo() receipts.ReceiptRepo {
	return &MemoryReceiptRepo{
		store: make(map[string]models.Receipt),
	}
}

// Get retrieves a receipt by reference
func (r *MemoryReceiptRepo) Get(ctx context.Context, reference string) (*models.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	receipt, ok := r.store[reference]
	if !ok {
		return nil, models.ErrReceiptNotFound
	}
	return &receipt, nil
}

// Put stores a receipt under its reference
func (r *MemoryReceiptRepo) Put(ctx context.Context, receipt *models.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[receipt.Reference] = *receipt
	return nil
}

// All returns a copy of the full reference-to-receipt mapping
func (r *MemoryReceiptRepo) All(ctx context.Context) (map[string]*models.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*models.Receipt, len(r.store))
	for ref, receipt := range r.store {
		copied := receipt
		out[ref] = &copied
	}
	return out, nil
}

// Update applies fn to the current record under the store lock
func (r *MemoryReceiptRepo) Update(ctx context.Context, reference string, fn func(existing *models.Receipt) (*models.Receipt, error)) (*models.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var existing *models.Receipt
	if receipt, ok := r.store[reference]; ok {
		existing = &receipt
	}

	updated, err := fn(existing)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return existing, nil
	}

	r.store[reference] = *updated
	return updated, nil
}
