package ports

import (
	"context"

	"github.com/bistroboss/ordering-system/internal/core/domain"
)

// IssueTokenInput carries the claimed identity and, in verified mode, the proof for it.
type IssueTokenInput struct {
	Email    string
	Password string
}

// TokenVerifier decodes and validates a bearer token.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// TokenService mints and verifies bearer tokens.
type TokenService interface {
	TokenVerifier
	Issue(ctx context.Context, in IssueTokenInput) (string, error)
}
