package payment

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"medcare/config"
	"medcare/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeClient_CreateIntent(t *testing.T) {
	var gotAuth, gotAmount, gotCurrency, gotConfirm string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.NoError(t, r.ParseForm())

		gotAuth = r.Header.Get("Authorization")
		gotAmount = r.PostForm.Get("amount")
		gotCurrency = r.PostForm.Get("currency")
		gotConfirm = r.PostForm.Get("confirm")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","status":"succeeded"}`))
	}))
	defer server.Close()

	client := NewStripeClient(&config.PaymentConfig{
		SecretKey: "sk_test_abc",
		BaseURL:   server.URL,
		Currency:  "usd",
	}, slog.Default())

	intent, err := client.CreateIntent(context.Background(), service.CreateIntentInput{
		AmountCents:   10000,
		PaymentMethod: "pm_card_visa",
		Description:   "Consultation fee",
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "succeeded", intent.Status)
	assert.Equal(t, "Bearer sk_test_abc", gotAuth)
	assert.Equal(t, "10000", gotAmount)
	assert.Equal(t, "usd", gotCurrency)
	assert.Equal(t, "true", gotConfirm)
}

func TestStripeClient_CreateIntentRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
	}))
	defer server.Close()

	client := NewStripeClient(&config.PaymentConfig{
		SecretKey: "sk_test_abc",
		BaseURL:   server.URL,
	}, slog.Default())

	intent, err := client.CreateIntent(context.Background(), service.CreateIntentInput{AmountCents: 500, Currency: "usd"})
	assert.Nil(t, intent)
	assert.ErrorContains(t, err, "card_declined")
}
