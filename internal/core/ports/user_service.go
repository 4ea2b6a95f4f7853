package ports

import (
	"context"

	"github.com/bistroboss/ordering-system/internal/core/domain"
)

// RegisterUserInput carries a new user's profile.
type RegisterUserInput struct {
	Name     string
	Email    string
	Photo    string
	Password string
}

// RegisterUserResult is returned by Register. Existing is true when the email
// was already registered and nothing was inserted.
type RegisterUserResult struct {
	Existing   bool
	InsertedID string
}

// AdminChecker answers whether an email belongs to an admin user.
type AdminChecker interface {
	// CheckAdmin returns false, never an error, when the user does not exist.
	CheckAdmin(ctx context.Context, email string) (bool, error)
}

// UserService defines the user directory use cases.
type UserService interface {
	AdminChecker
	ListUsers(ctx context.Context) ([]*domain.User, error)
	Register(ctx context.Context, in RegisterUserInput) (*RegisterUserResult, error)
	// IsAdmin answers for email only when it equals the caller's token email.
	IsAdmin(ctx context.Context, callerEmail, email string) (bool, error)
	PromoteToAdmin(ctx context.Context, id string) (UpdateResult, error)
}
