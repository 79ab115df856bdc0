package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"
)

// EmailMessage is a single transactional email handed to the provider.
type EmailMessage struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EmailSender is the provider surface the notification consumer depends on.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailClient posts messages to the transactional email provider's HTTP API.
type EmailClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewEmailClient returns a client for the email provider.  With an empty
// baseURL Send returns ErrDisabled; the consumer treats that as "log only".
func NewEmailClient(baseURL, apiKey string) *EmailClient {
	return &EmailClient{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Send delivers one message.
func (c *EmailClient) Send(ctx context.Context, msg EmailMessage) error {
	if c.baseURL == "" {
		return ErrDisabled
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return errors.New("email API returned non-OK status: " + resp.Status)
	}
	return nil
}
