// Package notifier delivers the weekly finance summary to an outbound webhook.
package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"herdbook/internal/config"
	"herdbook/internal/services"
)

// WeeklySummary is the payload posted for one farm.
type WeeklySummary struct {
	UserID   string                  `json:"user_id"`
	Email    string                  `json:"email"`
	FarmName string                  `json:"farm_name,omitempty"`
	From     time.Time               `json:"from"`
	To       time.Time               `json:"to"`
	Summary  *services.LedgerSummary `json:"summary"`
}

// Notifier sends finance summaries.
type Notifier interface {
	SendWeeklySummary(ctx context.Context, summary WeeklySummary) error
}

// WebhookClient is a resty-backed implementation of Notifier.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewWebhookClient builds a client posting to the configured webhook URL.
func NewWebhookClient(cfg config.NotifierConfig) *WebhookClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(timeout)
	if cfg.Token != "" {
		restyClient.SetAuthToken(cfg.Token)
	}

	return &WebhookClient{httpClient: restyClient, url: cfg.WebhookURL}
}

type webhookError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// SendWeeklySummary posts one farm's summary.
func (c *WebhookClient) SendWeeklySummary(ctx context.Context, summary WeeklySummary) error {
	apiErr := new(webhookError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(summary).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("post weekly summary: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("webhook error: status=%d, message=%s", resp.StatusCode(), message)
	}
	return nil
}
