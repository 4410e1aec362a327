package payment

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"medcare/config"
	"medcare/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultStripeBaseURL = "https://api.stripe.com"

// stripeClient implements PaymentProcessor against the Stripe REST API.
// Stripe takes form-encoded requests and answers JSON.
type stripeClient struct {
	baseURL    string
	secretKey  string
	currency   string
	httpClient *http.Client
	logger     *slog.Logger
}

// stripeIntentResponse is the subset of the PaymentIntent resource we read.
type stripeIntentResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Error  *struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewStripeClient creates a new Stripe-backed payment processor
func NewStripeClient(cfg *config.PaymentConfig, logger *slog.Logger) service.PaymentProcessor {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultStripeBaseURL
	}

	return &stripeClient{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		secretKey: cfg.SecretKey,
		currency:  cfg.Currency,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// CreateIntent creates and confirms a PaymentIntent for the given amount.
func (c *stripeClient) CreateIntent(ctx context.Context, input service.CreateIntentInput) (*service.PaymentIntent, error) {
	currency := input.Currency
	if currency == "" {
		currency = c.currency
	}

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(input.AmountCents, 10))
	form.Set("currency", currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	form.Set("automatic_payment_methods[allow_redirects]", "never")
	if input.Description != "" {
		form.Set("description", input.Description)
	}
	if input.PaymentMethod != "" {
		form.Set("payment_method", input.PaymentMethod)
		form.Set("confirm", "true")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	c.logger.InfoContext(ctx, "[Stripe] Creating payment intent",
		slog.Int64("amount_cents", input.AmountCents),
		slog.String("currency", currency),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "stripe request failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read stripe response")
	}

	var intentResp stripeIntentResponse
	if err := json.Unmarshal(body, &intentResp); err != nil {
		return nil, errors.Wrap(err, "failed to decode stripe response")
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		if intentResp.Error != nil {
			return nil, errors.Errorf("stripe rejected payment: %s (%s)", intentResp.Error.Message, intentResp.Error.Code)
		}

		return nil, errors.Errorf("stripe returned non-success status: %d", resp.StatusCode)
	}

	return &service.PaymentIntent{
		ID:     intentResp.ID,
		Status: intentResp.Status,
	}, nil
}
