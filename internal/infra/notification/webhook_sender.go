package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"medcare/internal/domain/service"

	"github.com/pkg/errors"
)

// webhookSender implements Notifier by sending HTTP POST requests to a
// configured endpoint, for environments where a relay service (or a dev
// inbox) receives mail as JSON.
type webhookSender struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

// webhookPayload is the JSON body pushed to the endpoint.
type webhookPayload struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Text     string `json:"text,omitempty"`
	HTML     string `json:"html,omitempty"`
	QueuedAt string `json:"queuedAt"`
}

// NewWebhookSender creates a new webhook-backed notifier
func NewWebhookSender(endpoint string, logger *slog.Logger) service.Notifier {
	return &webhookSender{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// Send pushes the message to the webhook endpoint.
func (s *webhookSender) Send(ctx context.Context, msg service.Message) error {
	if msg.To == "" {
		return errors.New("message recipient is required")
	}

	body, err := json.Marshal(webhookPayload{
		To:       msg.To,
		Subject:  msg.Subject,
		Text:     msg.Text,
		HTML:     msg.HTML,
		QueuedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	s.logger.InfoContext(ctx, "[WebhookNotifier] Sending mail",
		slog.String("endpoint", s.endpoint),
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("mail webhook returned non-success status: %d", resp.StatusCode)
	}

	return nil
}
