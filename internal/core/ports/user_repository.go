package ports

import (
	"context"

	"github.com/bistroboss/ordering-system/internal/core/domain"
)

// UpdateResult reports how many documents an update matched and changed.
type UpdateResult struct {
	MatchedCount  int64
	ModifiedCount int64
}

// UserRepository defines persistence for registered users. Email is the natural key.
type UserRepository interface {
	List(ctx context.Context) ([]*domain.User, error)
	// FindByEmail returns domain.ErrUserNotFound when no user has that email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create inserts the user and returns the generated id.
	Create(ctx context.Context, user *domain.User) (string, error)
	// SetRole returns domain.ErrInvalidID for a malformed id.
	SetRole(ctx context.Context, id, role string) (UpdateResult, error)
}
