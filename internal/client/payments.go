package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// CheckoutRequest asks the payment provider for a hosted payment link the
// customer can follow to settle a booking.
type CheckoutRequest struct {
	Reference   string  `json:"reference"`
	Amount      float64 `json:"amount"`
	Currency    string  `json:"currency"`
	Description string  `json:"description"`
	Email       string  `json:"email"`
}

// CheckoutResponse carries the provider's hosted link and its identifier.
type CheckoutResponse struct {
	CheckoutID string `json:"checkout_id"`
	URL        string `json:"url"`
}

// CheckoutLinker is the payment-provider surface handlers depend on, so
// tests can substitute a stub for the live provider.
type CheckoutLinker interface {
	CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (CheckoutResponse, error)
}

// PaymentClient talks to the hosted-checkout provider.
type PaymentClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewPaymentClient returns a client for the payment-link provider.  With an
// empty baseURL every call returns ErrDisabled.
func NewPaymentClient(baseURL, apiKey string) *PaymentClient {
	return &PaymentClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// CreateCheckoutLink requests a hosted payment link for a booking balance.
func (c *PaymentClient) CreateCheckoutLink(ctx context.Context, req CheckoutRequest) (CheckoutResponse, error) {
	if c.baseURL == "" {
		return CheckoutResponse{}, ErrDisabled
	}

	body, err := json.Marshal(req)
	if err != nil {
		return CheckoutResponse{}, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/checkout-links", bytes.NewBuffer(body))
	if err != nil {
		return CheckoutResponse{}, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return CheckoutResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return CheckoutResponse{}, errors.New("payment API returned non-OK status: " + resp.Status)
	}

	var out CheckoutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return CheckoutResponse{}, err
	}
	return out, nil
}
