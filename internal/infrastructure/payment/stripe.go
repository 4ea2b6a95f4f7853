package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/paymentintent"

	"github.com/bistroboss/ordering-system/internal/core/ports"
)

// StripeGateway creates payment intents through the Stripe API.
type StripeGateway struct {
	client paymentintent.Client
	log    zerolog.Logger
}

// NewStripeGateway builds a gateway for the given secret key. A nil backend
// selects the default Stripe API backend.
func NewStripeGateway(secretKey string, backend stripe.Backend, log zerolog.Logger) *StripeGateway {
	if backend == nil {
		backend = stripe.GetBackend(stripe.APIBackend)
	}
	return &StripeGateway{
		client: paymentintent.Client{B: backend, Key: secretKey},
		log:    log,
	}
}

func (g *StripeGateway) CreateIntent(ctx context.Context, req ports.IntentRequest) (*ports.Intent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.AmountMinor),
		Currency:           stripe.String(req.Currency),
		PaymentMethodTypes: []*string{stripe.String(req.PaymentMethodType)},
	}
	params.Context = ctx

	pi, err := g.client.New(params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) {
			g.log.Warn().
				Str("code", string(serr.Code)).
				Str("type", string(serr.Type)).
				Int("status", serr.HTTPStatusCode).
				Str("request_id", serr.RequestID).
				Msg("stripe rejected payment intent")
		}
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}

	return &ports.Intent{ID: pi.ID, ClientSecret: pi.ClientSecret}, nil
}
