package ports

import "context"

// CreateIntentInput carries the caller's identity and the price to charge.
// CartItemIDs optionally restricts the server-side total to part of the cart.
type CreateIntentInput struct {
	Email       string
	Price       float64
	CartItemIDs []string
}

// IntentResult is returned to the client, which confirms the charge directly
// with the processor.
type IntentResult struct {
	IntentID     string
	ClientSecret string
	AmountMinor  int64
}

// PaymentService creates processor payment intents.
type PaymentService interface {
	CreateIntent(ctx context.Context, in CreateIntentInput) (*IntentResult, error)
}

// FinalizeInput carries a confirmed payment and the cart items it covers.
// Email is the caller's token email.
type FinalizeInput struct {
	Email          string
	Price          float64
	TransactionID  string
	CartItemIDs    []string
	MenuItemIDs    []string
	ItemNames      []string
	IdempotencyKey string
}

// FinalizeResult reports the payment insert and the cart cleanup.
// CleanupPending is true when the cleanup failed and was handed to the
// background workers.
type FinalizeResult struct {
	InsertedID     string
	DeletedCount   int64
	CleanupPending bool
}

// CheckoutService finalizes a checkout.
type CheckoutService interface {
	Finalize(ctx context.Context, in FinalizeInput) (*FinalizeResult, error)
}
