package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/swiftloan/disburser/internal/pkg/models"
	"github.com/swiftloan/disburser/services/receipts"
)

// FileReceiptRepo persists the whole receipt map as one pretty-printed JSON
// object keyed by reference. The file is read and rewritten in full on every
// mutation; a mutex serializes all access so overlapping read-modify-write
// cycles cannot lose updates. Writes go through a temp file and rename so a
// crash mid-write never leaves a torn snapshot.
type FileReceiptRepo struct {
	path string
	mu   sync.Mutex
}

// NewFileReceiptRepo creates a file-backed receipt store at path, creating
// the parent directory if needed.
func NewFileReceiptRepo(path string) (receipts.ReceiptRepo, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}
	return &FileReceiptRepo{path: path}, nil
}

// load reads the entire snapshot; a missing file is an empty store.
func (r *FileReceiptRepo) load() (map[string]*models.Receipt, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*models.Receipt{}, nil
		}
		return nil, fmt.Errorf("failed to read receipt store: %w", err)
	}
	if len(data) == 0 {
		return map[string]*models.Receipt{}, nil
	}

	store := map[string]*models.Receipt{}
	if err := json.Unmarshal(data, &store); err != nil {
		return nil, fmt.Errorf("failed to decode receipt store: %w", err)
	}
	return store, nil
}

// flush rewrites the entire snapshot atomically.
func (r *FileReceiptRepo) flush(store map[string]*models.Receipt) error {
	data, err := json.MarshalIndent(store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode receipt store: %w", err)
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write receipt store: %w", err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("failed to replace receipt store: %w", err)
	}
	return nil
}

// Get retrieves a receipt by reference
func (r *FileReceiptRepo) Get(ctx context.Context, reference string) (*models.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, err := r.load()
	if err != nil {
		return nil, err
	}

	receipt, ok := store[reference]
	if !ok {
		return nil, models.ErrReceiptNotFound
	}
	return receipt, nil
}

// Put stores a receipt under its reference
func (r *FileReceiptRepo) Put(ctx context.Context, receipt *models.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, err := r.load()
	if err != nil {
		return err
	}

	store[receipt.Reference] = receipt
	return r.flush(store)
}

// All returns the full reference-to-receipt mapping
func (r *FileReceiptRepo) All(ctx context.Context) (map[string]*models.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load()
}

// Update applies fn to the current record under the store lock
func (r *FileReceiptRepo) Update(ctx context.Context, reference string, fn func(existing *models.Receipt) (*models.Receipt, error)) (*models.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	store, err := r.load()
	if err != nil {
		return nil, err
	}

	existing := store[reference]
	updated, err := fn(existing)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return existing, nil
	}

	store[reference] = updated
	if err := r.flush(store); err != nil {
		return nil, err
	}
	return updated, nil
}
