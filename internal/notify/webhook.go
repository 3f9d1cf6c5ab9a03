package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jonesrussell/goharvest/internal/logger"
)

// defaultSendTimeout bounds a single webhook delivery.
const defaultSendTimeout = 10 * time.Second

// webhookPayload is the JSON body posted to the chat webhook.
type webhookPayload struct {
	Text string `json:"text"`
}

// WebhookSink posts text messages to a chat webhook URL. An empty URL turns
// the sink into a logged no-op rather than an error.
type WebhookSink struct {
	url    string
	client *http.Client
	logger logger.Interface
}

// NewWebhookSink creates a webhook sink for the given destination URL.
func NewWebhookSink(url string, log logger.Interface) *WebhookSink {
	return &WebhookSink{
		url:    url,
		client: &http.Client{Timeout: defaultSendTimeout},
		logger: log.WithComponent("notify"),
	}
}

// Send posts the text to the webhook destination.
func (s *WebhookSink) Send(ctx context.Context, text string) error {
	if s.url == "" {
		s.logger.Warn("Notification webhook not configured, dropping message")
		return nil
	}

	body, err := json.Marshal(webhookPayload{Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("notification webhook returned status %d", resp.StatusCode)
	}

	return nil
}
