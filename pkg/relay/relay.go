// Package relay carries contact notifications from the intake pipeline to the
// notification relay endpoint. The payload is only a reference to the stored
// contact request; the relay re-reads the record itself.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Notification is the relay payload.
type Notification struct {
	RequestID string `json:"requestId"`
}

// Notifier delivers a notification for a stored contact request.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Client posts notifications to a relay URL, authenticating with a
// short-lived service token signed by the shared secret.
type Client struct {
	url        string
	secret     []byte
	httpClient *http.Client
}

// NewClient creates a relay Client with a 10 second timeout.
func NewClient(url string, secret []byte) *Client {
	return &Client{
		url:        url,
		secret:     secret,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

var _ Notifier = (*Client)(nil)

// Notify sends n to the relay. Any non-2xx response is an error.
func (c *Client) Notify(ctx context.Context, n Notification) error {
	token, err := IssueToken(c.secret, TokenTTL)
	if err != nil {
		return fmt.Errorf("relay: issue token: %w", err)
	}

	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("relay: post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var result struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&result)
		return fmt.Errorf("relay: status %d: %s", resp.StatusCode, result.Error)
	}
	return nil
}
