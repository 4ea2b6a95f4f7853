package ports

import (
	"context"

	"github.com/bistroboss/ordering-system/internal/core/domain"
)

// CartRepository defines persistence for cart items. Every method that takes an
// id returns domain.ErrInvalidID when the id is malformed.
type CartRepository interface {
	ListByEmail(ctx context.Context, email string) ([]*domain.CartItem, error)
	// FindByID returns domain.ErrCartItemNotFound when the item does not exist.
	FindByID(ctx context.Context, id string) (*domain.CartItem, error)
	Create(ctx context.Context, item *domain.CartItem) (string, error)
	// Delete removes one item and reports how many were removed (0 or 1).
	Delete(ctx context.Context, id string) (int64, error)
	// FindOwned returns the items among ids that belong to email.
	FindOwned(ctx context.Context, email string, ids []string) ([]*domain.CartItem, error)
	// DeleteOwned removes the items among ids that belong to email. Deleting an
	// id that is already gone is not an error.
	DeleteOwned(ctx context.Context, email string, ids []string) (int64, error)
}

// MenuRepository lists the restaurant menu.
type MenuRepository interface {
	List(ctx context.Context) ([]*domain.MenuItem, error)
}
