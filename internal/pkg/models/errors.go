package models

import "errors"

var (
	// ErrInvalidPhone indicates the caller-supplied phone number has no
	// canonical international form.
	ErrInvalidPhone = errors.New("invalid phone format")

	// ErrInvalidAmount indicates a missing or sub-minimum payment amount.
	ErrInvalidAmount = errors.New("amount must be >= 1")

	// ErrReceiptNotFound indicates a lookup miss in the receipt store.
	ErrReceiptNotFound = errors.New("receipt not found")

	// ErrInvalidTransition indicates a status change that is not an edge of
	// the receipt state machine.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrPaymentInitiation indicates the provider call failed or returned a
	// non-success response; a best-effort error receipt is persisted on this
	// path.
	ErrPaymentInitiation = errors.New("payment initiation failed")
)
