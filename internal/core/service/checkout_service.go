package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
	"github.com/bistroboss/ordering-system/internal/pkg/metrics"
)

// Checkout modes.
const (
	// CheckoutSaga inserts the payment first and retries a failed cart
	// cleanup in the background.
	CheckoutSaga = "saga"
	// CheckoutTransaction commits the insert and the cleanup together.
	CheckoutTransaction = "transaction"
)

// CheckoutDeps groups the collaborators of CheckoutService. Store is only
// used in transaction mode; Guard is optional.
type CheckoutDeps struct {
	Payments ports.PaymentRepository
	Carts    ports.CartRepository
	Store    ports.CheckoutStore
	Guard    ports.IdempotencyGuard
	Journal  ports.CleanupJournal
	Cleanup  ports.CleanupScheduler
}

// CheckoutService records completed payments and clears the carts they cover.
type CheckoutService struct {
	deps CheckoutDeps
	mode string
	now  func() time.Time
	log  zerolog.Logger
}

func NewCheckoutService(deps CheckoutDeps, mode string, log zerolog.Logger) *CheckoutService {
	if mode != CheckoutTransaction || deps.Store == nil {
		mode = CheckoutSaga
	}
	return &CheckoutService{deps: deps, mode: mode, now: time.Now, log: log}
}

// Mode reports the effective checkout mode.
func (s *CheckoutService) Mode() string { return s.mode }

// Finalize persists a payment record for the caller and removes the caller's
// cart items it covers. Only ids found in the caller's cart are recorded.
func (s *CheckoutService) Finalize(ctx context.Context, in ports.FinalizeInput) (*ports.FinalizeResult, error) {
	ctx, span := tracer.Start(ctx, "checkout.finalize")
	defer span.End()
	span.SetAttributes(attribute.String("checkout.mode", s.mode))

	email := in.Email
	if domain.BlankEmail(email) {
		return nil, domain.ErrUnauthorized
	}

	if in.IdempotencyKey != "" && s.deps.Guard != nil {
		ok, err := s.deps.Guard.Reserve(ctx, email, in.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("reserve idempotency key: %w", err)
		}
		if !ok {
			metrics.CheckoutsTotal.WithLabelValues(s.mode, "duplicate").Inc()
			s.log.Info().Str("email", email).Str("idempotency_key", in.IdempotencyKey).Msg("duplicate checkout rejected")
			return nil, domain.ErrDuplicateCheckout
		}
	}

	res, err := s.finalize(ctx, email, in)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues(s.mode, "failed").Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "checkout failed")
		if in.IdempotencyKey != "" && s.deps.Guard != nil {
			if relErr := s.deps.Guard.Release(context.WithoutCancel(ctx), email, in.IdempotencyKey); relErr != nil {
				s.log.Warn().Err(relErr).Str("idempotency_key", in.IdempotencyKey).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	outcome := "completed"
	if res.CleanupPending {
		outcome = "cleanup_pending"
	}
	metrics.CheckoutsTotal.WithLabelValues(s.mode, outcome).Inc()
	metrics.CartItemsClearedTotal.Add(float64(res.DeletedCount))
	span.SetAttributes(
		attribute.String("payment.id", res.InsertedID),
		attribute.Int64("checkout.deleted", res.DeletedCount),
		attribute.Bool("checkout.cleanup_pending", res.CleanupPending),
	)

	s.log.Info().
		Str("email", email).
		Str("payment_id", res.InsertedID).
		Str("transaction_id", in.TransactionID).
		Int64("deleted", res.DeletedCount).
		Bool("cleanup_pending", res.CleanupPending).
		Msg("checkout finalized")
	return res, nil
}

func (s *CheckoutService) finalize(ctx context.Context, email string, in ports.FinalizeInput) (*ports.FinalizeResult, error) {
	ids, err := s.ownedIDs(ctx, email, in.CartItemIDs)
	if err != nil {
		return nil, err
	}

	rec := &domain.PaymentRecord{
		Email:         email,
		Price:         in.Price,
		TransactionID: in.TransactionID,
		CartItemIDs:   ids,
		MenuItemIDs:   in.MenuItemIDs,
		ItemNames:     in.ItemNames,
		CreatedAt:     s.now().UTC(),
	}

	if s.mode == CheckoutTransaction {
		id, deleted, err := s.deps.Store.FinalizeAtomic(ctx, rec, email, ids)
		if err != nil {
			return nil, fmt.Errorf("finalize checkout: %w", err)
		}
		return &ports.FinalizeResult{InsertedID: id, DeletedCount: deleted}, nil
	}

	id, err := s.deps.Payments.Insert(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	if len(ids) == 0 {
		return &ports.FinalizeResult{InsertedID: id}, nil
	}

	deleted, err := s.deps.Carts.DeleteOwned(ctx, email, ids)
	if err != nil {
		s.log.Warn().Err(err).Str("payment_id", id).Msg("cart cleanup failed, deferring")
		s.deferCleanup(ctx, id, email, ids)
		return &ports.FinalizeResult{InsertedID: id, CleanupPending: true}, nil
	}
	return &ports.FinalizeResult{InsertedID: id, DeletedCount: deleted}, nil
}

func (s *CheckoutService) ownedIDs(ctx context.Context, email string, ids []string) ([]string, error) {
	out := []string{}
	if len(ids) == 0 {
		return out, nil
	}

	items, err := s.deps.Carts.FindOwned(ctx, email, ids)
	if err != nil {
		return nil, err
	}
	owned := make(map[string]bool, len(items))
	for _, it := range items {
		owned[it.ID] = true
	}
	// keep the submitted order and drop repeats
	for _, id := range ids {
		if owned[id] {
			out = append(out, id)
			delete(owned, id)
		}
	}
	return out, nil
}

func (s *CheckoutService) deferCleanup(ctx context.Context, paymentID, email string, ids []string) {
	task := domain.CleanupTask{
		ID:          uuid.NewString(),
		PaymentID:   paymentID,
		Email:       email,
		CartItemIDs: ids,
		CreatedAt:   s.now().UTC(),
	}

	if s.deps.Journal != nil {
		if err := s.deps.Journal.Save(context.WithoutCancel(ctx), task); err != nil {
			s.log.Error().Err(err).Str("payment_id", paymentID).Msg("failed to journal cart cleanup")
		}
	}
	if s.deps.Cleanup == nil || !s.deps.Cleanup.Schedule(task) {
		s.log.Warn().Str("payment_id", paymentID).Msg("cleanup queue unavailable, task left for reconcile")
	}
}
