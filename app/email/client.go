package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Message is one transactional email.
type Message struct {
	To      []string
	Subject string
	HTML    string
}

// Client sends transactional email through the provider's HTTP API. An empty
// API key disables sending: Send logs a warning and reports success, so a
// missing key never fails the operation that triggered the notification.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	from       string
	userAgent  string
}

func NewClient(baseURL, apiKey, from, userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		from:       from,
		userAgent:  userAgent,
	}
}

func (c *Client) Send(ctx context.Context, msg Message) error {
	if c.apiKey == "" {
		slog.Warn("Email API key not configured, skipping notification", "subject", msg.Subject)
		return nil
	}

	payload, err := json.Marshal(map[string]interface{}{
		"from":    c.from,
		"to":      msg.To,
		"subject": msg.Subject,
		"html":    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("failed to encode email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/emails", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email provider error: %d %s", resp.StatusCode, resp.Status)
	}

	return nil
}
