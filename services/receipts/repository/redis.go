package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/go-redis/redis/v8"
	"github.com/swiftloan/disburser/internal/pkg/database"
	"github.com/swiftloan/disburser/internal/pkg/models"
	"github.com/swiftloan/disburser/services/receipts"
)

// receiptsHashKey is the single hash holding all receipts, field = reference.
const receiptsHashKey = "receipts"

// RedisReceiptRepo keeps receipts as JSON values in one Redis hash. Update is
// serialized by a process-local mutex; the service runs as a single process,
// so this is enough to prevent lost updates.
type RedisReceiptRepo struct {
	client *database.RedisClient
	mu     sync.Mutex
}

// NewRedisReceiptRepo creates a Redis-backed receipt store
func NewRedisReceiptRepo(client *database.RedisClient) receipts.ReceiptRepo {
	return &RedisReceiptRepo{client: client}
}

func (r *RedisReceiptRepo) get(ctx context.Context, reference string) (*models.Receipt, error) {
	data, err := r.client.HGet(ctx, receiptsHashKey, reference)
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	var receipt models.Receipt
	if err := json.Unmarshal([]byte(data), &receipt); err != nil {
		return nil, fmt.Errorf("failed to decode receipt: %w", err)
	}
	return &receipt, nil
}

func (r *RedisReceiptRepo) put(ctx context.Context, receipt *models.Receipt) error {
	data, err := json.Marshal(receipt)
	if err != nil {
		return fmt.Errorf("failed to encode receipt: %w", err)
	}
	if err := r.client.HSet(ctx, receiptsHashKey, receipt.Reference, data); err != nil {
		return fmt.Errorf("failed to store receipt: %w", err)
	}
	return nil
}

// Get retrieves a receipt by reference
func (r *RedisReceiptRepo) Get(ctx context.Context, reference string) (*models.Receipt, error) {
	return r.get(ctx, reference)
}

// Put stores a receipt under its reference
func (r *RedisReceiptRepo) Put(ctx context.Context, receipt *models.Receipt) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.put(ctx, receipt)
}

// All returns the full reference-to-receipt mapping
func (r *RedisReceiptRepo) All(ctx context.Context) (map[string]*models.Receipt, error) {
	fields, err := r.client.HGetAll(ctx, receiptsHashKey)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	out := make(map[string]*models.Receipt, len(fields))
	for ref, data := range fields {
		var receipt models.Receipt
		if err := json.Unmarshal([]byte(data), &receipt); err != nil {
			return nil, fmt.Errorf("failed to decode receipt %s: %w", ref, err)
		}
		out[ref] = &receipt
	}
	return out, nil
}

// Update applies fn to the current record under the store lock
func (r *RedisReceiptRepo) Update(ctx context.Context, reference string, fn func(existing *models.Receipt) (*models.Receipt, error)) (*models.Receipt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.get(ctx, reference)
	if err != nil && !errors.Is(err, models.ErrReceiptNotFound) {
		return nil, err
	}

	updated, err := fn(existing)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return existing, nil
	}

	if err := r.put(ctx, updated); err != nil {
		return nil, err
	}
	return updated, nil
}
