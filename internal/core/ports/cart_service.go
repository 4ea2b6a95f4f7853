package ports

import (
	"context"

	"github.com/bistroboss/ordering-system/internal/core/domain"
)

// CartService defines cart and menu use cases.
type CartService interface {
	ListMenu(ctx context.Context) ([]*domain.MenuItem, error)
	// ListCart returns an empty list for an empty email and domain.ErrForbidden
	// when email differs from the caller's token email.
	ListCart(ctx context.Context, callerEmail, email string) ([]*domain.CartItem, error)
	// GetItem returns nil, nil when the item does not exist.
	GetItem(ctx context.Context, id string) (*domain.CartItem, error)
	AddItem(ctx context.Context, item *domain.CartItem) (string, error)
	RemoveItem(ctx context.Context, id string) (int64, error)
}
