package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"time"

	"github.com/swiftloan/disburser/internal/pkg/logger"
)

const (
	// DefaultTimeout bounds every outbound request
	DefaultTimeout = 30 * time.Second
	// APIKeyHeader is the header name for the API key
	APIKeyHeader = "X-API-Key"
	// UserEmailHeader identifies the registered account on each request
	UserEmailHeader = "X-User-Email"
)

// APIKeyClient is an HTTP client authenticating with an API key and a
// registered account email, the scheme PayNecta uses.
type APIKeyClient struct {
	client    *nethttp.Client
	apiKey    string
	userEmail string
	baseURL   string
}

// NewAPIKeyClient creates a new API-key authenticated HTTP client.
// A zero timeout falls back to DefaultTimeout.
func NewAPIKeyClient(baseURL, apiKey, userEmail string, timeout time.Duration) *APIKeyClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &APIKeyClient{
		client: &nethttp.Client{
			Timeout: timeout,
		},
		apiKey:    apiKey,
		userEmail: userEmail,
		baseURL:   baseURL,
	}
}

// Post performs a POST request with API key authentication
func (c *APIKeyClient) Post(ctx context.Context, endpoint string, body interface{}) (*nethttp.Response, error) {
	return c.doRequest(ctx, nethttp.MethodPost, endpoint, body)
}

// PostJSON performs a POST request and decodes the JSON response into result.
// Responses with status >= 400 are returned as errors.
func (c *APIKeyClient) PostJSON(ctx context.Context, endpoint string, body interface{}, result interface{}) error {
	resp, err := c.Post(ctx, endpoint, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}

	return nil
}

// doRequest performs the actual HTTP request with authentication headers
func (c *APIKeyClient) doRequest(ctx context.Context, method, endpoint string, body interface{}) (*nethttp.Response, error) {
	url := c.baseURL + endpoint

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := nethttp.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}
	if c.userEmail != "" {
		req.Header.Set(UserEmailHeader, c.userEmail)
	}

	logger.Debug("Making HTTP request",
		logger.String("method", method),
		logger.String("url", url))

	resp, err := c.client.Do(req)
	if err != nil {
		logger.Error("HTTP request failed",
			logger.String("method", method),
			logger.String("url", url),
			logger.Err(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}

	logger.Debug("HTTP request completed",
		logger.String("method", method),
		logger.String("url", url),
		logger.Int("status_code", resp.StatusCode))

	return resp, nil
}
