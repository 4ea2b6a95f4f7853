package ports

import (
	"context"

	"github.com/bistroboss/ordering-system/internal/core/domain"
)

// PaymentRepository appends payment records. Records are never updated or removed.
type PaymentRepository interface {
	Insert(ctx context.Context, rec *domain.PaymentRecord) (string, error)
}

// CheckoutStore runs the payment insert and the cart cleanup inside one
// transaction: either both writes are committed or neither is.
type CheckoutStore interface {
	FinalizeAtomic(ctx context.Context, rec *domain.PaymentRecord, email string, cartItemIDs []string) (insertedID string, deleted int64, err error)
}

// IdempotencyGuard reserves checkout idempotency keys.
type IdempotencyGuard interface {
	// Reserve returns false when the key was already reserved for this email.
	Reserve(ctx context.Context, email, key string) (bool, error)
	Release(ctx context.Context, email, key string) error
}

// CleanupJournal durably records cart cleanups that have not succeeded yet.
type CleanupJournal interface {
	Save(ctx context.Context, task domain.CleanupTask) error
	Delete(ctx context.Context, paymentID string) error
	Pending(ctx context.Context) ([]domain.CleanupTask, error)
}

// CleanupScheduler hands a cleanup task to the background retry workers.
type CleanupScheduler interface {
	Schedule(task domain.CleanupTask) bool
}
