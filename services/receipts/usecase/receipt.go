package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/swiftloan/disburser/internal/pkg/logger"
	"github.com/swiftloan/disburser/internal/pkg/models"
	"github.com/swiftloan/disburser/internal/utils"
	"github.com/swiftloan/disburser/services/receipts"
)

const (
	noteFundsReserved  = "Payment received and verified. Funds reserved for disbursement."
	noteDefaultFailure = "Payment failed or was cancelled."
	noteSystemError    = "System error occurred. Please try again later."
)

// ReceiptUC implements the receipts.ReceiptUseCase interface
type ReceiptUC struct {
	cfg       *models.Config
	repo      receipts.ReceiptRepo
	paymentGW receipts.PaymentGW
	eventsGW  receipts.EventsGW
}

// NewReceiptUC creates a new receipt use case. eventsGW may be nil when
// event publishing is disabled.
func NewReceiptUC(cfg *models.Config, repo receipts.ReceiptRepo, paymentGW receipts.PaymentGW, eventsGW receipts.EventsGW) receipts.ReceiptUseCase {
	return &ReceiptUC{
		cfg:       cfg,
		repo:      repo,
		paymentGW: paymentGW,
		eventsGW:  eventsGW,
	}
}

// InitiatePayment validates the request, asks PayNecta for an STK push and
// persists the resulting receipt. Validation failures return before any side
// effect; provider failures persist a best-effort error receipt so the
// client keeps a traceable record.
func (uc *ReceiptUC) InitiatePayment(ctx context.Context, req *models.PayRequest) (*models.Receipt, error) {
	phone, err := utils.FormatPhone(req.Phone)
	if err != nil {
		return nil, models.ErrInvalidPhone
	}
	if req.Amount < 1 {
		return nil, models.ErrInvalidAmount
	}

	amount := int(math.Round(req.Amount))
	loanAmount := string(req.LoanAmount)
	if loanAmount == "" {
		loanAmount = uc.cfg.PayNecta.DefaultLoanAmount
	}

	reference := fmt.Sprintf("ORDER-%d", time.Now().UnixMilli())

	initReq := &models.PaymentInitRequest{
		Amount:            amount,
		PhoneNumber:       phone,
		ExternalReference: reference,
		CustomerName:      uc.cfg.PayNecta.CustomerName,
		CallbackURL:       uc.cfg.PayNecta.CallbackURL,
		ChannelID:         uc.cfg.PayNecta.ChannelID,
	}

	resp, err := uc.paymentGW.InitializePayment(ctx, initReq)
	if err != nil {
		return uc.failInitiation(ctx, reference, amount, loanAmount, phone, err)
	}
	if !resp.Success {
		cause := resp.Message
		if cause == "" {
			cause = "provider rejected payment initialization"
		}
		return uc.failInitiation(ctx, reference, amount, loanAmount, phone, fmt.Errorf("%s", cause))
	}

	receipt := &models.Receipt{
		Reference:     reference,
		TransactionID: resp.TransactionID,
		Amount:        amount,
		LoanAmount:    loanAmount,
		Phone:         phone,
		CustomerName:  "N/A",
		Status:        models.StatusPending,
		StatusNote:    fmt.Sprintf("STK push sent to %s. Please enter your M-Pesa PIN to complete the payment.", phone),
		Timestamp:     time.Now().UTC(),
	}

	if err := uc.repo.Put(ctx, receipt); err != nil {
		return receipt, fmt.Errorf("%w: persisting receipt: %v", models.ErrPaymentInitiation, err)
	}

	uc.publishStatusChanged(ctx, receipt)

	return receipt, nil
}

// failInitiation persists a best-effort error receipt and wraps the cause.
// The persist itself is best-effort too; a failing store must not mask the
// original provider error.
func (uc *ReceiptUC) failInitiation(ctx context.Context, reference string, amount int, loanAmount, phone string, cause error) (*models.Receipt, error) {
	receipt := &models.Receipt{
		Reference:  reference,
		Amount:     amount,
		LoanAmount: loanAmount,
		Phone:      phone,
		Status:     models.StatusError,
		StatusNote: noteSystemError,
		Timestamp:  time.Now().UTC(),
	}

	if err := uc.repo.Put(ctx, receipt); err != nil {
		logger.Error("Failed to persist error receipt",
			logger.String("reference", reference),
			logger.Err(err))
	} else {
		uc.publishStatusChanged(ctx, receipt)
	}

	logger.Error("Payment initiation failed",
		logger.String("reference", reference),
		logger.String("phone", phone),
		logger.Err(cause))

	return receipt, fmt.Errorf("%w: %v", models.ErrPaymentInitiation, cause)
}

// HandleCallback applies a provider notification to the referenced receipt.
// An unknown reference synthesizes a new record carrying only the
// callback-supplied fields. A notification arriving for a receipt that can
// no longer accept it is logged and ignored; the record stays untouched.
func (uc *ReceiptUC) HandleCallback(ctx context.Context, cb *models.CallbackRequest) (*models.Receipt, error) {
	now := time.Now().UTC()

	target := models.StatusCancelled
	if cb.Succeeded() {
		target = models.StatusProcessing
	}

	applied := false
	updated, err := uc.repo.Update(ctx, cb.ExternalReference, func(existing *models.Receipt) (*models.Receipt, error) {
		receipt := existing
		if receipt == nil {
			receipt = &models.Receipt{Reference: cb.ExternalReference}
		}

		if !receipt.Status.CanTransitionTo(target) {
			logger.Warn("Ignoring callback for receipt in terminal status",
				logger.String("reference", cb.ExternalReference),
				logger.String("status", string(receipt.Status)),
				logger.String("target", string(target)))
			return nil, nil
		}

		if target == models.StatusProcessing {
			receipt.TransactionID = cb.TransactionID
			receipt.TransactionCode = cb.TransactionCode
			receipt.CustomerName = cb.CustomerName
			if receipt.CustomerName == "" {
				receipt.CustomerName = "N/A"
			}
			receipt.Status = target
			receipt.StatusNote = noteFundsReserved
		} else {
			receipt.Status = target
			receipt.StatusNote = cb.Message
			if receipt.StatusNote == "" {
				receipt.StatusNote = noteDefaultFailure
			}
		}
		receipt.Timestamp = now

		applied = true
		return receipt, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to apply callback: %w", err)
	}

	if applied {
		uc.publishStatusChanged(ctx, updated)
	}

	return updated, nil
}

// GetReceipt returns the receipt for reference
func (uc *ReceiptUC) GetReceipt(ctx context.Context, reference string) (*models.Receipt, error) {
	return uc.repo.Get(ctx, reference)
}

// publishStatusChanged is fire-and-forget; publish failures are logged, never
// surfaced.
func (uc *ReceiptUC) publishStatusChanged(ctx context.Context, receipt *models.Receipt) {
	if uc.eventsGW == nil {
		return
	}
	if err := uc.eventsGW.PublishStatusChanged(ctx, receipt); err != nil {
		logger.Warn("Failed to publish receipt event",
			logger.String("reference", receipt.Reference),
			logger.String("status", string(receipt.Status)),
			logger.Err(err))
	}
}
