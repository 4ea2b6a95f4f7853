package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
)

// UserService implements the user directory.
type UserService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, log: log}
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// Register inserts a new user unless the email is already known. An existing
// email is reported through the result, not as an error.
func (s *UserService) Register(ctx context.Context, in ports.RegisterUserInput) (*ports.RegisterUserResult, error) {
	email := in.Email
	if domain.BlankEmail(email) {
		return nil, domain.ErrInvalidCredentials
	}

	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return &ports.RegisterUserResult{Existing: true}, nil
	case !errors.Is(err, domain.ErrUserNotFound):
		return nil, err
	}

	user := &domain.User{Name: in.Name, Email: email, Photo: in.Photo}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	id, err := s.repo.Create(ctx, user)
	if errors.Is(err, domain.ErrUserExists) {
		// lost a race with a concurrent registration
		return &ports.RegisterUserResult{Existing: true}, nil
	}
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", email).Str("user_id", id).Msg("user registered")
	return &ports.RegisterUserResult{InsertedID: id}, nil
}

// CheckAdmin answers for any email. A missing user is not an admin.
func (s *UserService) CheckAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

// IsAdmin only answers for the caller's own email. Other emails get false
// without touching the store.
func (s *UserService) IsAdmin(ctx context.Context, callerEmail, email string) (bool, error) {
	if email != callerEmail {
		return false, nil
	}
	return s.CheckAdmin(ctx, email)
}

func (s *UserService) PromoteToAdmin(ctx context.Context, id string) (ports.UpdateResult, error) {
	res, err := s.repo.SetRole(ctx, id, domain.RoleAdmin)
	if err != nil {
		return ports.UpdateResult{}, err
	}
	s.log.Info().Str("user_id", id).Int64("modified", res.ModifiedCount).Msg("user promoted to admin")
	return res, nil
}
