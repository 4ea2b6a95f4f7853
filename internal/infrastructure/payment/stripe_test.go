package payment

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"

	"github.com/bistroboss/ordering-system/internal/core/ports"
)

func newTestBackend(t *testing.T, handler http.HandlerFunc) stripe.Backend {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(srv.URL),
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     &stripe.LeveledLogger{Level: stripe.LevelNull},
	})
}

func TestStripeGateway_CreateIntent(t *testing.T) {
	var form map[string]string
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = map[string]string{
			"amount":   r.PostForm.Get("amount"),
			"currency": r.PostForm.Get("currency"),
			"method":   r.PostForm.Get("payment_method_types[0]"),
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"pi_123","object":"payment_intent","amount":1999,"currency":"usd","client_secret":"pi_123_secret_abc"}`))
	})

	gw := NewStripeGateway("sk_test_x", backend, zerolog.Nop())
	intent, err := gw.CreateIntent(context.Background(), ports.IntentRequest{
		AmountMinor:       1999,
		Currency:          "usd",
		PaymentMethodType: "card",
	})
	require.NoError(t, err)

	assert.Equal(t, "pi_123", intent.ID)
	assert.Equal(t, "pi_123_secret_abc", intent.ClientSecret)
	assert.Equal(t, map[string]string{"amount": "1999", "currency": "usd", "method": "card"}, form)
}

func TestStripeGateway_CreateIntent_Error(t *testing.T) {
	backend := newTestBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error":{"type":"card_error","code":"card_declined","message":"Your card was declined."}}`))
	})

	gw := NewStripeGateway("sk_test_x", backend, zerolog.Nop())
	_, err := gw.CreateIntent(context.Background(), ports.IntentRequest{AmountMinor: 100, Currency: "usd", PaymentMethodType: "card"})
	require.Error(t, err)

	var serr *stripe.Error
	require.True(t, errors.As(err, &serr))
	assert.Equal(t, stripe.ErrorCodeCardDeclined, serr.Code)
}
