// Package gateway talks to the external wallet payment provider. Checkout
// sessions are created there and their outcome is reported back either by
// webhook or by polling.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"food-ordering-system/internal/domain"

	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	OrderID     int             `json:"order_id"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// Intent is a checkout session held by the provider. TransactionID is the
// provider's identifier and doubles as our payment_intent_id.
type Intent struct {
	TransactionID   string          `json:"transaction_id"`
	ReferenceNumber string          `json:"reference_number"`
	Amount          decimal.Decimal `json:"amount"`
	CheckoutURL     string          `json:"checkout_url"`
	ExpiresAt       time.Time       `json:"expires_at"`
}

type Client interface {
	CreatePayment(ctx context.Context, req CreatePaymentRequest) (Intent, error)
	// CheckStatus returns the provider-side status: "pending", "paid" or "failed".
	CheckStatus(ctx context.Context, transactionID string) (domain.PaymentStatus, error)
}

type HTTPClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewHTTPClient(baseURL, apiKey string) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode gateway request: %w", err)
		}
		buf = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("build gateway request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("call payment gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("gateway transaction: %w", domain.ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway returned %d: %s: %w", resp.StatusCode, msg, domain.ErrInternal)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode gateway response: %w", err)
		}
	}
	return nil
}

func (c *HTTPClient) CreatePayment(ctx context.Context, req CreatePaymentRequest) (Intent, error) {
	var intent Intent
	if err := c.do(ctx, http.MethodPost, "/payments", req, &intent); err != nil {
		return Intent{}, err
	}
	return intent, nil
}

func (c *HTTPClient) CheckStatus(ctx context.Context, transactionID string) (domain.PaymentStatus, error) {
	var out struct {
		Status domain.PaymentStatus `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/payments/"+transactionID, nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}
