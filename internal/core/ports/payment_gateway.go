package ports

import "context"

// IntentRequest asks the payment processor for a new payment intent.
type IntentRequest struct {
	AmountMinor int64
	Currency    string
	// PaymentMethodType is the single payment method family the intent accepts.
	PaymentMethodType string
}

// Intent is the processor-side payment intent.
type Intent struct {
	ID           string
	ClientSecret string
}

// PaymentGateway is the outbound port to the payment processor.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
}
