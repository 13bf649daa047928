package models

import (
	"time"
)

// Status represents the lifecycle state of a receipt.
type Status string

const (
	StatusPending      Status = "pending"
	StatusProcessing   Status = "processing"
	StatusLoanReleased Status = "loan_released"
	StatusCancelled    Status = "cancelled"
	StatusError        Status = "error"
)

// transitions is the complete forward edge set of the receipt state machine.
// Statuses with no outgoing edges are terminal.
var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusLoanReleased},
}

// CanTransitionTo reports whether moving from s to next is a valid forward
// transition. The zero status is the base of a freshly synthesized record and
// may move anywhere.
func (s Status) CanTransitionTo(next Status) bool {
	if s == "" {
		return true
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether s has no outgoing transitions.
func (s Status) IsTerminal() bool {
	if s == "" {
		return false
	}
	return len(transitions[s]) == 0
}

// Receipt is the record of one loan-disbursement payment. The reference is
// unique and immutable once created; timestamp always holds the time of the
// last status transition.
type Receipt struct {
	Reference       string    `json:"reference" db:"reference"`
	TransactionID   string    `json:"transaction_id" db:"transaction_id"`
	TransactionCode string    `json:"transaction_code" db:"transaction_code"`
	Amount          int       `json:"amount" db:"amount"`
	LoanAmount      string    `json:"loan_amount" db:"loan_amount"`
	Phone           string    `json:"phone" db:"phone"`
	CustomerName    string    `json:"customer_name" db:"customer_name"`
	Status          Status    `json:"status" db:"status"`
	StatusNote      string    `json:"status_note" db:"status_note"`
	Timestamp       time.Time `json:"timestamp" db:"timestamp"`
}

// Transition moves the receipt to next, updating the note and timestamp.
// Invalid transitions leave the receipt untouched and return
// ErrInvalidTransition.
func (r *Receipt) Transition(next Status, note string, at time.Time) error {
	if !r.Status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	r.Status = next
	r.StatusNote = note
	r.Timestamp = at
	return nil
}

// ReceiptEvent is published on the message bus whenever a receipt changes
// status.
type ReceiptEvent struct {
	Reference string    `json:"reference"`
	Status    Status    `json:"status"`
	Amount    int       `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}
