package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
	"github.com/bistroboss/ordering-system/internal/pkg/metrics"
)

// PaymentOptions configures intent creation.
type PaymentOptions struct {
	Currency string
	// PaymentMethodType is the one payment method family intents accept.
	PaymentMethodType string
	// PriceCheck recomputes the total from the caller's cart instead of
	// trusting the submitted price.
	PriceCheck bool
}

// PaymentService creates processor payment intents.
type PaymentService struct {
	gateway ports.PaymentGateway
	carts   ports.CartRepository
	opts    PaymentOptions
	log     zerolog.Logger
}

func NewPaymentService(gateway ports.PaymentGateway, carts ports.CartRepository, opts PaymentOptions, log zerolog.Logger) *PaymentService {
	if opts.Currency == "" {
		opts.Currency = "usd"
	}
	if opts.PaymentMethodType == "" {
		opts.PaymentMethodType = "card"
	}
	return &PaymentService{gateway: gateway, carts: carts, opts: opts, log: log}
}

// CreateIntent converts the price to minor units and asks the processor for a
// payment intent. Nothing is persisted.
func (s *PaymentService) CreateIntent(ctx context.Context, in ports.CreateIntentInput) (*ports.IntentResult, error) {
	ctx, span := tracer.Start(ctx, "payment.create_intent")
	defer span.End()

	amount := domain.MinorUnits(in.Price)
	if in.Price <= 0 || amount <= 0 {
		metrics.PaymentIntentsTotal.WithLabelValues("invalid_price").Inc()
		return nil, domain.ErrInvalidPrice
	}

	if s.opts.PriceCheck {
		if err := s.checkTotal(ctx, in, amount); err != nil {
			metrics.PaymentIntentsTotal.WithLabelValues(rejectionOutcome(err)).Inc()
			return nil, err
		}
	}
	span.SetAttributes(
		attribute.Int64("payment.amount_minor", amount),
		attribute.String("payment.currency", s.opts.Currency),
	)

	start := time.Now()
	intent, err := s.gateway.CreateIntent(ctx, ports.IntentRequest{
		AmountMinor:       amount,
		Currency:          s.opts.Currency,
		PaymentMethodType: s.opts.PaymentMethodType,
	})
	metrics.PaymentIntentDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.PaymentIntentsTotal.WithLabelValues("processor_error").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "processor call failed")
		s.log.Error().Err(err).Str("email", in.Email).Int64("amount_minor", amount).Msg("payment intent creation failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrPaymentProcessor, err)
	}

	metrics.PaymentIntentsTotal.WithLabelValues("created").Inc()
	s.log.Info().Str("email", in.Email).Str("intent_id", intent.ID).Int64("amount_minor", amount).Msg("payment intent created")
	return &ports.IntentResult{
		IntentID:     intent.ID,
		ClientSecret: intent.ClientSecret,
		AmountMinor:  amount,
	}, nil
}

func (s *PaymentService) checkTotal(ctx context.Context, in ports.CreateIntentInput, amount int64) error {
	var (
		items []*domain.CartItem
		err   error
	)
	if len(in.CartItemIDs) > 0 {
		items, err = s.carts.FindOwned(ctx, in.Email, in.CartItemIDs)
	} else {
		items, err = s.carts.ListByEmail(ctx, in.Email)
	}
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return domain.ErrEmptyCart
	}
	if total := domain.CartTotal(items); total != amount {
		s.log.Warn().Str("email", in.Email).Int64("submitted", amount).Int64("cart_total", total).Msg("submitted price does not match cart")
		return domain.ErrPriceMismatch
	}
	return nil
}

func rejectionOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrPriceMismatch):
		return "price_mismatch"
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	default:
		return "error"
	}
}
