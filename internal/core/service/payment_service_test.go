package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
)

func TestPaymentService_CreateIntent_MinorUnits(t *testing.T) {
	gw := &stubGateway{}
	svc := NewPaymentService(gw, newStubCartRepo(), PaymentOptions{}, zerolog.Nop())

	cases := map[float64]int64{12.5: 1250, 19.99: 1999, 0.01: 1, 100: 10000}
	for price, want := range cases {
		res, err := svc.CreateIntent(context.Background(), ports.CreateIntentInput{Email: "a@x.io", Price: price})
		if err != nil {
			t.Fatalf("price %v: unexpected error %v", price, err)
		}
		if res.AmountMinor != want {
			t.Fatalf("price %v: expected %d, got %d", price, want, res.AmountMinor)
		}
		if res.ClientSecret != "pi_1_secret_x" {
			t.Fatalf("unexpected client secret: %q", res.ClientSecret)
		}
	}

	last := gw.requests[len(gw.requests)-1]
	if last.Currency != "usd" || last.PaymentMethodType != "card" {
		t.Fatalf("unexpected request defaults: %+v", last)
	}
}

func TestPaymentService_CreateIntent_InvalidPrice(t *testing.T) {
	gw := &stubGateway{}
	svc := NewPaymentService(gw, newStubCartRepo(), PaymentOptions{}, zerolog.Nop())

	for _, price := range []float64{0, -5, 0.001} {
		if _, err := svc.CreateIntent(context.Background(), ports.CreateIntentInput{Price: price}); err != domain.ErrInvalidPrice {
			t.Fatalf("price %v: expected ErrInvalidPrice, got %v", price, err)
		}
	}
	if len(gw.requests) != 0 {
		t.Fatalf("processor must not be called for invalid prices")
	}
}

func TestPaymentService_CreateIntent_ProcessorError(t *testing.T) {
	gw := &stubGateway{err: errors.New("card network down")}
	svc := NewPaymentService(gw, newStubCartRepo(), PaymentOptions{}, zerolog.Nop())

	_, err := svc.CreateIntent(context.Background(), ports.CreateIntentInput{Email: "a@x.io", Price: 10})
	if !errors.Is(err, domain.ErrPaymentProcessor) {
		t.Fatalf("expected ErrPaymentProcessor, got %v", err)
	}
}

func TestPaymentService_CreateIntent_PriceCheck(t *testing.T) {
	carts := newStubCartRepo(
		&domain.CartItem{ID: "c1", Email: "a@x.io", Price: 10.10},
		&domain.CartItem{ID: "c2", Email: "a@x.io", Price: 9.89},
		&domain.CartItem{ID: "c3", Email: "b@x.io", Price: 50},
	)
	gw := &stubGateway{}
	svc := NewPaymentService(gw, carts, PaymentOptions{PriceCheck: true}, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.CreateIntent(ctx, ports.CreateIntentInput{Email: "a@x.io", Price: 19.99}); err != nil {
		t.Fatalf("matching total rejected: %v", err)
	}
	if _, err := svc.CreateIntent(ctx, ports.CreateIntentInput{Email: "a@x.io", Price: 1}); err != domain.ErrPriceMismatch {
		t.Fatalf("expected ErrPriceMismatch, got %v", err)
	}
	if _, err := svc.CreateIntent(ctx, ports.CreateIntentInput{Email: "a@x.io", Price: 10.10, CartItemIDs: []string{"c1"}}); err != nil {
		t.Fatalf("subset total rejected: %v", err)
	}
	if _, err := svc.CreateIntent(ctx, ports.CreateIntentInput{Email: "a@x.io", Price: 50, CartItemIDs: []string{"c3"}}); err != domain.ErrEmptyCart {
		t.Fatalf("foreign items must not count, got %v", err)
	}
	if _, err := svc.CreateIntent(ctx, ports.CreateIntentInput{Email: "nobody@x.io", Price: 5}); err != domain.ErrEmptyCart {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
	if len(gw.requests) != 2 {
		t.Fatalf("expected 2 processor calls, got %d", len(gw.requests))
	}
}
