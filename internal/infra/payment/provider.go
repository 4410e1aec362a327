// Package payment implements the domain PaymentProcessor, selected by
// configuration.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"medcare/config"
	"medcare/internal/domain/constants"
	"medcare/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// simulatedProcessor approves every charge without calling out. It keeps
// development and test environments free of payment credentials.
type simulatedProcessor struct {
	logger *slog.Logger
}

func (p *simulatedProcessor) CreateIntent(ctx context.Context, input service.CreateIntentInput) (*service.PaymentIntent, error) {
	intent := &service.PaymentIntent{
		ID:     fmt.Sprintf("sim_%s", uuid.NewString()),
		Status: "succeeded",
	}

	p.logger.InfoContext(ctx, "[SimulatedPayment] Charge approved",
		slog.String("intent_id", intent.ID),
		slog.Int64("amount_cents", input.AmountCents),
		slog.String("currency", input.Currency),
	)

	return intent, nil
}

// ProcessorParams holds dependencies for PaymentProcessor, injected by Fx
type ProcessorParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewPaymentProcessor creates a PaymentProcessor based on configuration
func NewPaymentProcessor(params ProcessorParams) (service.PaymentProcessor, error) {
	cfg := params.Config.Payment
	logger := params.Logger

	// Without a provider, charges are simulated and always succeed.
	if cfg == nil || cfg.Provider == "" {
		logger.Info("Payment not configured, using simulated processor")

		return &simulatedProcessor{logger: logger}, nil
	}

	switch cfg.Provider {
	case constants.PaymentProviderStripe:
		if cfg.SecretKey == "" {
			return nil, errors.New("secret key is required for stripe provider")
		}
		logger.Info("Using Stripe payment processor")

		return NewStripeClient(cfg, logger), nil

	default:
		return nil, errors.Errorf("unknown payment provider: %s", cfg.Provider)
	}
}

// Module provides the payment FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewPaymentProcessor),
)
