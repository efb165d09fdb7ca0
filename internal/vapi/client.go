// Package vapi provides the HTTP client for the Vapi outbound calling API.
package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"leadverify/platform/config"
	"leadverify/platform/logger"
)

const defaultHTTPTimeout = 30 * time.Second

// Client handles Vapi API requests.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *logger.Logger
}

// NewClient creates a Vapi client from configuration.
func NewClient(cfg config.VapiConfig, log *logger.Logger) *Client {
	return &Client{
		baseURL:    cfg.GetVapiBaseURL(),
		apiKey:     cfg.GetVapiAPIKey(),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		log:        log,
	}
}

// ListPhoneNumbers fetches the account's phone numbers.
func (c *Client) ListPhoneNumbers(ctx context.Context) ([]PhoneNumber, error) {
	var numbers []PhoneNumber
	if err := c.do(ctx, http.MethodGet, "/phone-number", nil, &numbers); err != nil {
		return nil, fmt.Errorf("listing phone numbers: %w", err)
	}
	return numbers, nil
}

// CreateCall starts an outbound call and returns the provider's call record.
func (c *Client) CreateCall(ctx context.Context, req CreateCallRequest) (*Call, error) {
	var call Call
	if err := c.do(ctx, http.MethodPost, "/call", req, &call); err != nil {
		return nil, fmt.Errorf("creating call: %w", err)
	}
	return &call, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Error("vapi request failed",
			"method", method, "path", path,
			"status", resp.StatusCode, "body", string(snippet))
		return fmt.Errorf("vapi returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
