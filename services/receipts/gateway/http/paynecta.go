package gateway_http

import (
	"context"
	"fmt"
	"time"

	httpclient "github.com/swiftloan/disburser/internal/pkg/http"
	"github.com/swiftloan/disburser/internal/pkg/models"
	"github.com/swiftloan/disburser/services/receipts"
)

// PayNectaClient is the HTTP client for the PayNecta payment API.
type PayNectaClient struct {
	client *httpclient.APIKeyClient
}

// NewPayNectaClient creates a PayNecta client from provider configuration.
func NewPayNectaClient(cfg models.PayNectaConfig) receipts.PaymentGW {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	return &PayNectaClient{
		client: httpclient.NewAPIKeyClient(cfg.BaseURL, cfg.APIKey, cfg.UserEmail, timeout),
	}
}

// InitializePayment asks PayNecta to send an STK push for the given request.
// Transport failures, non-2xx responses and timeouts all surface as errors;
// a 2xx response with success=false is returned to the caller to decide.
func (c *PayNectaClient) InitializePayment(ctx context.Context, req *models.PaymentInitRequest) (*models.PaymentInitResponse, error) {
	var resp models.PaymentInitResponse
	if err := c.client.PostJSON(ctx, "/payment/initialize", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to initialize payment: %w", err)
	}
	return &resp, nil
}
