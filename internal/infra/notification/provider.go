// Package notification implements the domain Notifier for patient-facing
// email, selected by configuration.
package notification

import (
	"context"
	"log/slog"

	"medcare/config"
	"medcare/internal/domain/constants"
	"medcare/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopNotifier is a no-op implementation when mail delivery is disabled
type noopNotifier struct {
	logger *slog.Logger
}

func (n *noopNotifier) Send(ctx context.Context, msg service.Message) error {
	n.logger.DebugContext(ctx, "[NoopNotifier] Mail delivery disabled, skipping",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
	)

	return nil
}

// NotifierParams holds dependencies for Notifier, injected by Fx
type NotifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewNotifier creates a Notifier based on configuration
func NewNotifier(params NotifierParams) (service.Notifier, error) {
	cfg := params.Config.Mail
	logger := params.Logger

	// If mail is not configured, return a no-op notifier
	if cfg == nil || cfg.Provider == "" {
		logger.Info("Mail not configured, using no-op notifier")

		return &noopNotifier{logger: logger}, nil
	}

	switch cfg.Provider {
	case constants.NotifierProviderSMTP:
		if cfg.SMTPHost == "" || cfg.SMTPPort == 0 {
			return nil, errors.New("smtp host and port are required for smtp provider")
		}
		logger.Info("Using SMTP notifier",
			slog.String("host", cfg.SMTPHost),
			slog.Int("port", cfg.SMTPPort),
		)

		return NewSMTPSender(cfg, logger), nil

	case constants.NotifierProviderWebhook:
		if cfg.WebhookEndpoint == "" {
			return nil, errors.New("webhook endpoint is required for webhook provider")
		}
		logger.Info("Using webhook notifier",
			slog.String("endpoint", cfg.WebhookEndpoint),
		)

		return NewWebhookSender(cfg.WebhookEndpoint, logger), nil

	default:
		return nil, errors.Errorf("unknown mail provider: %s", cfg.Provider)
	}
}

// Module provides the notification FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewNotifier),
)
