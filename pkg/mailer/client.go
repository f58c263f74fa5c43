// Package mailer sends transactional email through the Resend HTTP API.
// Uses raw HTTP calls (no SDK), like the rest of the outbound clients.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// DefaultBaseURL is the Resend API root.
const DefaultBaseURL = "https://api.resend.com"

// Email is one outbound message.
type Email struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// Sender sends an email and returns the provider's message id.
type Sender interface {
	Send(ctx context.Context, email Email) (string, error)
}

// ErrNotConfigured is returned when no API key has been set.
var ErrNotConfigured = errors.New("mailer: not configured")

// ResendClient is the Resend implementation of Sender.
type ResendClient struct {
	APIKey     string
	BaseURL    string
	httpClient *http.Client
}

// NewResendClient creates a ResendClient with a 15 second timeout.
func NewResendClient(apiKey string) *ResendClient {
	return &ResendClient{
		APIKey:     apiKey,
		BaseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

var _ Sender = (*ResendClient)(nil)

// Send posts the email to /emails.
func (c *ResendClient) Send(ctx context.Context, email Email) (string, error) {
	if c.APIKey == "" {
		return "", ErrNotConfigured
	}
	if len(email.To) == 0 {
		return "", errors.New("mailer: no recipients")
	}

	body, err := json.Marshal(email)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mailer: send: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("mailer: decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("mailer: resend error %d: %s", resp.StatusCode, result.Message)
	}
	return result.ID, nil
}
