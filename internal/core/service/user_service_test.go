package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
)

func TestUserService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, zerolog.Nop())

	res, err := svc.Register(context.Background(), ports.RegisterUserInput{Name: "Alice", Email: "alice@x.io", Password: "pass123"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.Existing || res.InsertedID == "" {
		t.Fatalf("unexpected result: %+v", res)
	}

	stored := repo.users["alice@x.io"]
	if stored.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if stored.Role != "" {
		t.Fatalf("new users must not get a role, got %q", stored.Role)
	}
}

func TestUserService_Register_Existing(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "1", Email: "bob@x.io", Name: "Bob"})
	svc := NewUserService(repo, zerolog.Nop())

	res, err := svc.Register(context.Background(), ports.RegisterUserInput{Name: "Other", Email: "bob@x.io"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if !res.Existing || res.InsertedID != "" {
		t.Fatalf("expected existing result, got %+v", res)
	}
	if repo.users["bob@x.io"].Name != "Bob" {
		t.Fatalf("existing user must not be overwritten")
	}
}

func TestUserService_Register_EmptyEmail(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterUserInput{Name: "x"}); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestUserService_IsAdmin(t *testing.T) {
	repo := newStubUserRepo(
		&domain.User{ID: "1", Email: "admin@x.io", Role: domain.RoleAdmin},
		&domain.User{ID: "2", Email: "user@x.io"},
	)
	svc := NewUserService(repo, zerolog.Nop())
	ctx := context.Background()

	if ok, err := svc.IsAdmin(ctx, "admin@x.io", "admin@x.io"); err != nil || !ok {
		t.Fatalf("expected admin=true, got %v, %v", ok, err)
	}
	if ok, err := svc.IsAdmin(ctx, "user@x.io", "user@x.io"); err != nil || ok {
		t.Fatalf("expected admin=false, got %v, %v", ok, err)
	}
	if ok, err := svc.IsAdmin(ctx, "ghost@x.io", "ghost@x.io"); err != nil || ok {
		t.Fatalf("expected admin=false for missing user, got %v, %v", ok, err)
	}

	before := repo.lookups
	if ok, err := svc.IsAdmin(ctx, "user@x.io", "admin@x.io"); err != nil || ok {
		t.Fatalf("expected admin=false for foreign email, got %v, %v", ok, err)
	}
	if repo.lookups != before {
		t.Fatalf("foreign email must not reach the store")
	}
}

func TestUserService_CheckAdmin_StoreError(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("boom")
	svc := NewUserService(repo, zerolog.Nop())

	if _, err := svc.CheckAdmin(context.Background(), "a@x.io"); err == nil {
		t.Fatalf("expected store error to propagate")
	}
}

func TestUserService_PromoteToAdmin(t *testing.T) {
	repo := newStubUserRepo(&domain.User{ID: "u1", Email: "user@x.io"})
	svc := NewUserService(repo, zerolog.Nop())

	res, err := svc.PromoteToAdmin(context.Background(), "u1")
	if err != nil {
		t.Fatalf("PromoteToAdmin returned error: %v", err)
	}
	if res.MatchedCount != 1 || res.ModifiedCount != 1 {
		t.Fatalf("unexpected result: %+v", res)
	}
	if !repo.users["user@x.io"].IsAdmin() {
		t.Fatalf("expected user to be admin")
	}

	res, _ = svc.PromoteToAdmin(context.Background(), "u1")
	if res.ModifiedCount != 0 {
		t.Fatalf("second promotion must not modify, got %+v", res)
	}

	if _, err := svc.PromoteToAdmin(context.Background(), "bad"); err != domain.ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}
