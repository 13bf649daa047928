package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftloan/disburser/internal/pkg/models"
	"github.com/swiftloan/disburser/services/receipts/mocks"
	"github.com/swiftloan/disburser/services/receipts/repository"
)

func TestReleaseDue_ReleasesExpiredProcessing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := repository.NewMemoryReceiptRepo()
	mockEvents := mocks.NewMockEventsGW(ctrl)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	holding := 24 * time.Hour

	require.NoError(t, repo.Put(context.Background(), &models.Receipt{
		Reference: "ORDER-due",
		Status:    models.StatusProcessing,
		Timestamp: now.Add(-holding - time.Minute),
	}))
	require.NoError(t, repo.Put(context.Background(), &models.Receipt{
		Reference: "ORDER-young",
		Status:    models.StatusProcessing,
		Timestamp: now.Add(-holding + time.Minute),
	}))
	require.NoError(t, repo.Put(context.Background(), &models.Receipt{
		Reference: "ORDER-pending",
		Status:    models.StatusPending,
		Timestamp: now.Add(-48 * time.Hour),
	}))

	mockEvents.EXPECT().PublishStatusChanged(gomock.Any(), gomock.Any()).Return(nil)

	sweeper := NewReleaseSweeper(repo, mockEvents, 5*time.Minute, holding)

	released, err := sweeper.ReleaseDue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, released)

	due, err := repo.Get(context.Background(), "ORDER-due")
	require.NoError(t, err)
	assert.Equal(t, models.StatusLoanReleased, due.Status)
	assert.Equal(t, "Loan has been released to your account.", due.StatusNote)
	assert.True(t, now.Equal(due.Timestamp))

	young, err := repo.Get(context.Background(), "ORDER-young")
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, young.Status)

	pending, err := repo.Get(context.Background(), "ORDER-pending")
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, pending.Status)
}

func TestReleaseDue_ExactDeadlineReleases(t *testing.T) {
	repo := repository.NewMemoryReceiptRepo()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	holding := 24 * time.Hour

	require.NoError(t, repo.Put(context.Background(), &models.Receipt{
		Reference: "ORDER-exact",
		Status:    models.StatusProcessing,
		Timestamp: now.Add(-holding),
	}))

	sweeper := NewReleaseSweeper(repo, nil, 5*time.Minute, holding)

	released, err := sweeper.ReleaseDue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, released)
}

func TestReleaseDue_Idempotent(t *testing.T) {
	repo := repository.NewMemoryReceiptRepo()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	holding := 24 * time.Hour

	require.NoError(t, repo.Put(context.Background(), &models.Receipt{
		Reference: "ORDER-due",
		Status:    models.StatusProcessing,
		Timestamp: now.Add(-25 * time.Hour),
	}))

	sweeper := NewReleaseSweeper(repo, nil, 5*time.Minute, holding)

	released, err := sweeper.ReleaseDue(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, released)

	// A second sweep finds nothing to do
	released, err = sweeper.ReleaseDue(context.Background(), now.Add(5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 0, released)
}

func TestReleaseDue_EmptyStore(t *testing.T) {
	sweeper := NewReleaseSweeper(repository.NewMemoryReceiptRepo(), nil, 5*time.Minute, 24*time.Hour)

	released, err := sweeper.ReleaseDue(context.Background(), time.Now().UTC())
	require.NoError(t, err)
	assert.Equal(t, 0, released)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	sweeper := NewReleaseSweeper(repository.NewMemoryReceiptRepo(), nil, time.Hour, 24*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
