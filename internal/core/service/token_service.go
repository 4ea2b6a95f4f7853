package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
	"github.com/bistroboss/ordering-system/internal/pkg/metrics"
)

// TokenTTL is the credential lifetime. It is not configurable.
const TokenTTL = time.Hour

// Token issuance modes.
const (
	// IssuanceOpen signs whatever email the caller claims.
	IssuanceOpen = "open"
	// IssuanceVerified requires a stored user whose password matches.
	IssuanceVerified = "verified"
)

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService implements token issuance and verification.
type TokenService struct {
	users     ports.UserRepository
	jwtSecret []byte
	mode      string
	now       func() time.Time
	log       zerolog.Logger
}

func NewTokenService(users ports.UserRepository, jwtSecret string, mode string, log zerolog.Logger) *TokenService {
	if mode != IssuanceVerified {
		mode = IssuanceOpen
	}
	return &TokenService{
		users:     users,
		jwtSecret: []byte(jwtSecret),
		mode:      mode,
		now:       time.Now,
		log:       log,
	}
}

// Issue signs a token for the claimed email. The expiry is fixed at issuance.
func (s *TokenService) Issue(ctx context.Context, in ports.IssueTokenInput) (string, error) {
	email := in.Email
	if domain.BlankEmail(email) {
		return "", domain.ErrInvalidCredentials
	}

	if s.mode == IssuanceVerified {
		if err := s.verifyProof(ctx, email, in.Password); err != nil {
			return "", err
		}
	}

	token, err := s.sign(email)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	metrics.TokensIssuedTotal.WithLabelValues(s.mode).Inc()
	s.log.Debug().Str("email", email).Str("mode", s.mode).Msg("token issued")
	return token, nil
}

// Verify checks signature, algorithm and expiry and returns the embedded identity.
func (s *TokenService) Verify(token string) (*domain.Identity, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthorized
	}
	if claims.Email == "" {
		return nil, domain.ErrUnauthorized
	}
	return &domain.Identity{Email: claims.Email}, nil
}

func (s *TokenService) verifyProof(ctx context.Context, email, password string) error {
	if password == "" {
		return domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidCredentials
		}
		return err
	}
	if user.PasswordHash == "" {
		return domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.ErrInvalidCredentials
	}
	return nil
}

func (s *TokenService) sign(email string) (string, error) {
	issuedAt := s.now()
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(TokenTTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.jwtSecret)
}
