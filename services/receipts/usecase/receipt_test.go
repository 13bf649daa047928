package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftloan/disburser/internal/pkg/models"
	"github.com/swiftloan/disburser/services/receipts/mocks"
	"github.com/swiftloan/disburser/services/receipts/repository"
)

func testConfig() *models.Config {
	return &models.Config{
		PayNecta: models.PayNectaConfig{
			BaseURL:           "https://paynecta.co.ke/api/v1",
			ChannelID:         "000174",
			CallbackURL:       "https://paynecta.onrender.com/callback",
			CustomerName:      "Swift Applicant",
			DefaultLoanAmount: "50000",
		},
	}
}

func TestInitiatePayment_Success(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryReceiptRepo()
	mockPayment := mocks.NewMockPaymentGW(ctrl)
	mockEvents := mocks.NewMockEventsGW(ctrl)

	uc := NewReceiptUC(testConfig(), repo, mockPayment, mockEvents)

	var captured *models.PaymentInitRequest
	mockPayment.EXPECT().InitializePayment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, req *models.PaymentInitRequest) (*models.PaymentInitResponse, error) {
			captured = req
			return &models.PaymentInitResponse{Success: true, TransactionID: "TX-123"}, nil
		})
	mockEvents.EXPECT().PublishStatusChanged(gomock.Any(), gomock.Any()).Return(nil)

	// Act
	receipt, err := uc.InitiatePayment(context.Background(), &models.PayRequest{
		Phone:  "0712345678",
		Amount: 99.6,
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(receipt.Reference, "ORDER-"))
	assert.Equal(t, 100, receipt.Amount)
	assert.Equal(t, "50000", receipt.LoanAmount)
	assert.Equal(t, "254712345678", receipt.Phone)
	assert.Equal(t, "N/A", receipt.CustomerName)
	assert.Equal(t, "TX-123", receipt.TransactionID)
	assert.Equal(t, models.StatusPending, receipt.Status)
	assert.Contains(t, receipt.StatusNote, "STK push sent to 254712345678")

	require.NotNil(t, captured)
	assert.Equal(t, 100, captured.Amount)
	assert.Equal(t, "254712345678", captured.PhoneNumber)
	assert.Equal(t, "Swift Applicant", captured.CustomerName)
	assert.Equal(t, "000174", captured.ChannelID)
	assert.Equal(t, "https://paynecta.onrender.com/callback", captured.CallbackURL)

	stored, err := repo.Get(context.Background(), receipt.Reference)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, stored.Status)
}

func TestInitiatePayment_ExplicitLoanAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryReceiptRepo()
	mockPayment := mocks.NewMockPaymentGW(ctrl)

	uc := NewReceiptUC(testConfig(), repo, mockPayment, nil)

	mockPayment.EXPECT().InitializePayment(gomock.Any(), gomock.Any()).
		Return(&models.PaymentInitResponse{Success: true, TransactionID: "TX-9"}, nil)

	receipt, err := uc.InitiatePayment(context.Background(), &models.PayRequest{
		Phone:      "712345678",
		Amount:     1,
		LoanAmount: "25000",
	})
	require.NoError(t, err)
	assert.Equal(t, "25000", receipt.LoanAmount)
	assert.Equal(t, "254712345678", receipt.Phone)
}

func TestInitiatePayment_InvalidPhone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryReceiptRepo()
	mockPayment := mocks.NewMockPaymentGW(ctrl)

	uc := NewReceiptUC(testConfig(), repo, mockPayment, nil)

	receipt, err := uc.InitiatePayment(context.Background(), &models.PayRequest{
		Phone:  "12345",
		Amount: 100,
	})
	assert.ErrorIs(t, err, models.ErrInvalidPhone)
	assert.Nil(t, receipt)

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestInitiatePayment_InvalidAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryReceiptRepo()
	mockPayment := mocks.NewMockPaymentGW(ctrl)

	uc := NewReceiptUC(testConfig(), repo, mockPayment, nil)

	receipt, err := uc.InitiatePayment(context.Background(), &models.PayRequest{
		Phone:  "0712345678",
		Amount: 0.4,
	})
	assert.ErrorIs(t, err, models.ErrInvalidAmount)
	assert.Nil(t, receipt)
}

func TestInitiatePayment_ProviderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryReceiptRepo()
	mockPayment := mocks.NewMockPaymentGW(ctrl)

	uc := NewReceiptUC(testConfig(), repo, mockPayment, nil)

	mockPayment.EXPECT().InitializePayment(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	receipt, err := uc.InitiatePayment(context.Background(), &models.PayRequest{
		Phone:  "0712345678",
		Amount: 100,
	})

	assert.ErrorIs(t, err, models.ErrPaymentInitiation)
	require.NotNil(t, receipt)
	assert.Equal(t, models.StatusError, receipt.Status)
	assert.Equal(t, "System error occurred. Please try again later.", receipt.StatusNote)

	// The error receipt is persisted for later lookup
	stored, getErr := repo.Get(context.Background(), receipt.Reference)
	require.NoError(t, getErr)
	assert.Equal(t, models.StatusError, stored.Status)
}

func TestInitiatePayment_ProviderRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryReceiptRepo()
	mockPayment := mocks.NewMockPaymentGW(ctrl)

	uc := NewReceiptUC(testConfig(), repo, mockPayment, nil)

	mockPayment.EXPECT().InitializePayment(gomock.Any(), gomock.Any()).
		Return(&models.PaymentInitResponse{Success: false, Message: "insufficient channel balance"}, nil)

	receipt, err := uc.InitiatePayment(context.Background(), &models.PayRequest{
		Phone:  "0712345678",
		Amount: 100,
	})

	assert.ErrorIs(t, err, models.ErrPaymentInitiation)
	assert.Contains(t, err.Error(), "insufficient channel balance")
	require.NotNil(t, receipt)
	assert.Equal(t, models.StatusError, receipt.Status)
}

func TestHandleCallback_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryReceiptRepo()
	mockEvents := mocks.NewMockEventsGW(ctrl)

	uc := NewReceiptUC(testConfig(), repo, mocks.NewMockPaymentGW(ctrl), mockEvents)

	require.NoError(t, repo.Put(context.Background(), &models.Receipt{
		Reference: "ORDER-1",
		Amount:    100,
		Status:    models.StatusPending,
	}))

	mockEvents.EXPECT().PublishStatusChanged(gomock.Any(), gomock.Any()).Return(nil)

	zero := 0
	receipt, err := uc.HandleCallback(context.Background(), &models.CallbackRequest{
		ExternalReference: "ORDER-1",
		ResultCode:        &zero,
		TransactionID:     "TX-1",
		TransactionCode:   "QGH7S1KL2P",
		CustomerName:      "Jane Wanjiku",
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, receipt.Status)
	assert.Equal(t, "TX-1", receipt.TransactionID)
	assert.Equal(t, "QGH7S1KL2P", receipt.TransactionCode)
	assert.Equal(t, "Jane Wanjiku", receipt.CustomerName)
	assert.Equal(t, "Payment received and verified. Funds reserved for disbursement.", receipt.StatusNote)
}

func TestHandleCallback_Failure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryReceiptRepo()
	mockEvents := mocks.NewMockEventsGW(ctrl)

	uc := NewReceiptUC(testConfig(), repo, mocks.NewMockPaymentGW(ctrl), mockEvents)

	require.NoError(t, repo.Put(context.Background(), &models.Receipt{
		Reference: "ORDER-1",
		Status:    models.StatusPending,
	}))

	mockEvents.EXPECT().PublishStatusChanged(gomock.Any(), gomock.Any()).Return(nil)

	receipt, err := uc.HandleCallback(context.Background(), &models.CallbackRequest{
		ExternalReference: "ORDER-1",
		Status:            "failed",
		Message:           "Request cancelled by user",
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, receipt.Status)
	assert.Equal(t, "Request cancelled by user", receipt.StatusNote)
}

func TestHandleCallback_FailureDefaultNote(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryReceiptRepo()

	uc := NewReceiptUC(testConfig(), repo, mocks.NewMockPaymentGW(ctrl), nil)

	require.NoError(t, repo.Put(context.Background(), &models.Receipt{
		Reference: "ORDER-1",
		Status:    models.StatusPending,
	}))

	receipt, err := uc.HandleCallback(context.Background(), &models.CallbackRequest{
		ExternalReference: "ORDER-1",
		Status:            "failed",
	})

	require.NoError(t, err)
	assert.Equal(t, "Payment failed or was cancelled.", receipt.StatusNote)
}

func TestHandleCallback_UnknownReferenceSynthesizesRecord(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryReceiptRepo()
	mockEvents := mocks.NewMockEventsGW(ctrl)

	uc := NewReceiptUC(testConfig(), repo, mocks.NewMockPaymentGW(ctrl), mockEvents)

	mockEvents.EXPECT().PublishStatusChanged(gomock.Any(), gomock.Any()).Return(nil)

	zero := 0
	receipt, err := uc.HandleCallback(context.Background(), &models.CallbackRequest{
		ExternalReference: "ORDER-unseen",
		ResultCode:        &zero,
		TransactionID:     "TX-5",
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, receipt.Status)
	assert.Equal(t, "N/A", receipt.CustomerName)

	stored, getErr := repo.Get(context.Background(), "ORDER-unseen")
	require.NoError(t, getErr)
	assert.Equal(t, models.StatusProcessing, stored.Status)
}

func TestHandleCallback_TerminalReceiptIgnored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryReceiptRepo()
	mockEvents := mocks.NewMockEventsGW(ctrl)

	uc := NewReceiptUC(testConfig(), repo, mocks.NewMockPaymentGW(ctrl), mockEvents)

	require.NoError(t, repo.Put(context.Background(), &models.Receipt{
		Reference:  "ORDER-1",
		Status:     models.StatusCancelled,
		StatusNote: "cancelled by user",
	}))

	// No event must be published for an ignored callback

	zero := 0
	receipt, err := uc.HandleCallback(context.Background(), &models.CallbackRequest{
		ExternalReference: "ORDER-1",
		ResultCode:        &zero,
		TransactionID:     "TX-late",
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, receipt.Status)
	assert.Equal(t, "cancelled by user", receipt.StatusNote)
	assert.Empty(t, receipt.TransactionID)
}

func TestGetReceipt_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := NewReceiptUC(testConfig(), repository.NewMemoryReceiptRepo(), mocks.NewMockPaymentGW(ctrl), nil)

	_, err := uc.GetReceipt(context.Background(), "ORDER-missing")
	assert.ErrorIs(t, err, models.ErrReceiptNotFound)
}

func TestInitiatePayment_EventPublishFailureDoesNotFailRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryReceiptRepo()
	mockPayment := mocks.NewMockPaymentGW(ctrl)
	mockEvents := mocks.NewMockEventsGW(ctrl)

	uc := NewReceiptUC(testConfig(), repo, mockPayment, mockEvents)

	mockPayment.EXPECT().InitializePayment(gomock.Any(), gomock.Any()).
		Return(&models.PaymentInitResponse{Success: true, TransactionID: "TX-1"}, nil)
	mockEvents.EXPECT().PublishStatusChanged(gomock.Any(), gomock.Any()).
		Return(errors.New("nats: connection closed"))

	receipt, err := uc.InitiatePayment(context.Background(), &models.PayRequest{
		Phone:  "0712345678",
		Amount: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, receipt.Status)
}
