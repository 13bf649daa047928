package pdf

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftloan/disburser/internal/pkg/models"
)

func TestRender_ProducesPDF(t *testing.T) {
	renderer := NewRenderer()

	receipt := &models.Receipt{
		Reference:       "ORDER-1700000000000",
		TransactionID:   "TX-1",
		TransactionCode: "QGH7S1KL2P",
		Amount:          100,
		LoanAmount:      "50000",
		Phone:           "254712345678",
		CustomerName:    "Jane Wanjiku",
		Status:          models.StatusProcessing,
		StatusNote:      "Payment received and verified. Funds reserved for disbursement.",
		Timestamp:       time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}

	var buf bytes.Buffer
	require.NoError(t, renderer.Render(receipt, &buf))

	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
	assert.Greater(t, buf.Len(), 500)
}

func TestRender_EveryStatus(t *testing.T) {
	renderer := NewRenderer()

	statuses := []models.Status{
		models.StatusPending,
		models.StatusProcessing,
		models.StatusLoanReleased,
		models.StatusCancelled,
		models.StatusError,
	}

	for _, status := range statuses {
		t.Run(string(status), func(t *testing.T) {
			var buf bytes.Buffer
			err := renderer.Render(&models.Receipt{
				Reference: "ORDER-1",
				Status:    status,
				Timestamp: time.Now().UTC(),
			}, &buf)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
		})
	}
}

func TestWatermarkFor(t *testing.T) {
	tests := []struct {
		status models.Status
		text   string
	}{
		{models.StatusPending, "PENDING"},
		{models.StatusProcessing, "PROCESSING"},
		{models.StatusLoanReleased, "RELEASED"},
		{models.StatusCancelled, "FAILED"},
		{models.StatusError, "PENDING"},
		{models.Status("unknown"), "PENDING"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.text, watermarkFor(tt.status).text)
		})
	}
}

func TestWatermarkColors(t *testing.T) {
	released := watermarkFor(models.StatusLoanReleased)
	assert.Equal(t, 0, released.r)
	assert.Equal(t, 128, released.g)
	assert.Equal(t, 0, released.b)

	failed := watermarkFor(models.StatusCancelled)
	assert.Equal(t, 255, failed.r)
	assert.Equal(t, 0, failed.g)
	assert.Equal(t, 0, failed.b)
}
