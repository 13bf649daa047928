package gateway_nats

import (
	"context"
	"encoding/json"
	"fmt"

	natspkg "github.com/swiftloan/disburser/internal/pkg/nats"
	"github.com/swiftloan/disburser/internal/pkg/models"
	"github.com/swiftloan/disburser/services/receipts"
)

// SubjectStatusChanged carries one event per applied receipt transition.
const SubjectStatusChanged = "receipts.status.changed"

// EventsGW publishes receipt lifecycle events to NATS.
type EventsGW struct {
	client *natspkg.Client
}

// NewEventsGW creates a NATS-backed events gateway
func NewEventsGW(client *natspkg.Client) receipts.EventsGW {
	return &EventsGW{client: client}
}

// PublishStatusChanged publishes the receipt's new status
func (g *EventsGW) PublishStatusChanged(ctx context.Context, receipt *models.Receipt) error {
	event := models.ReceiptEvent{
		Reference: receipt.Reference,
		Status:    receipt.Status,
		Amount:    receipt.Amount,
		Timestamp: receipt.Timestamp,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal receipt event: %w", err)
	}

	if err := g.client.Publish(SubjectStatusChanged, data); err != nil {
		return fmt.Errorf("failed to publish receipt event: %w", err)
	}
	return nil
}
