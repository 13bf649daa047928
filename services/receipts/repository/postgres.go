package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/swiftloan/disburser/internal/pkg/models"
	"github.com/swiftloan/disburser/services/receipts"
)

const upsertReceiptQuery = `
	INSERT INTO receipts (
		reference, transaction_id, transaction_code, amount, loan_amount,
		phone, customer_name, status, status_note, timestamp
	) VALUES (
		:reference, :transaction_id, :transaction_code, :amount, :loan_amount,
		:phone, :customer_name, :status, :status_note, :timestamp
	)
	ON CONFLICT (reference) DO UPDATE SET
		transaction_id = EXCLUDED.transaction_id,
		transaction_code = EXCLUDED.transaction_code,
		amount = EXCLUDED.amount,
		loan_amount = EXCLUDED.loan_amount,
		phone = EXCLUDED.phone,
		customer_name = EXCLUDED.customer_name,
		status = EXCLUDED.status,
		status_note = EXCLUDED.status_note,
		timestamp = EXCLUDED.timestamp
`

// PostgresReceiptRepo is a transactional receipt store. Update runs inside a
// transaction with a row lock, so concurrent writers queue instead of
// clobbering each other.
type PostgresReceiptRepo struct {
	db *sqlx.DB
}

// NewPostgresReceiptRepo creates a PostgreSQL-backed receipt store
func NewPostgresReceiptRepo(db *sqlx.DB) receipts.ReceiptRepo {
	return &PostgresReceiptRepo{db: db}
}

// Get retrieves a receipt by reference
func (r *PostgresReceiptRepo) Get(ctx context.Context, reference string) (*models.Receipt, error) {
	var receipt models.Receipt
	err := r.db.GetContext(ctx, &receipt, `
		SELECT reference, transaction_id, transaction_code, amount, loan_amount,
		       phone, customer_name, status, status_note, timestamp
		FROM receipts
		WHERE reference = $1
	`, reference)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrReceiptNotFound
		}
		return nil, fmt.Errorf("failed to get receipt: %w", err)
	}

	return &receipt, nil
}

// Put stores a receipt under its reference
func (r *PostgresReceiptRepo) Put(ctx context.Context, receipt *models.Receipt) error {
	if _, err := r.db.NamedExecContext(ctx, upsertReceiptQuery, receipt); err != nil {
		return fmt.Errorf("failed to store receipt: %w", err)
	}
	return nil
}

// All returns the full reference-to-receipt mapping
func (r *PostgresReceiptRepo) All(ctx context.Context) (map[string]*models.Receipt, error) {
	var rows []models.Receipt
	err := r.db.SelectContext(ctx, &rows, `
		SELECT reference, transaction_id, transaction_code, amount, loan_amount,
		       phone, customer_name, status, status_note, timestamp
		FROM receipts
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list receipts: %w", err)
	}

	out := make(map[string]*models.Receipt, len(rows))
	for i := range rows {
		out[rows[i].Reference] = &rows[i]
	}
	return out, nil
}

// Update applies fn to the current record inside a transaction holding a row
// lock on the reference.
func (r *PostgresReceiptRepo) Update(ctx context.Context, reference string, fn func(existing *models.Receipt) (*models.Receipt, error)) (*models.Receipt, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing *models.Receipt
	var current models.Receipt
	err = tx.GetContext(ctx, &current, `
		SELECT reference, transaction_id, transaction_code, amount, loan_amount,
		       phone, customer_name, status, status_note, timestamp
		FROM receipts
		WHERE reference = $1
		FOR UPDATE
	`, reference)
	switch {
	case err == nil:
		existing = &current
	case errors.Is(err, sql.ErrNoRows):
		// fn decides what to do with an absent record
	default:
		return nil, fmt.Errorf("failed to lock receipt: %w", err)
	}

	updated, err := fn(existing)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return existing, nil
	}

	if _, err := tx.NamedExecContext(ctx, upsertReceiptQuery, updated); err != nil {
		return nil, fmt.Errorf("failed to store receipt: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit receipt update: %w", err)
	}

	return updated, nil
}
