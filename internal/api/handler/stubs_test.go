package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/bistroboss/ordering-system/internal/api/middleware"
	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
)

func newTestContext(method, target, body, callerEmail string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if callerEmail != "" {
		c.Set(middleware.EmailKey, callerEmail)
	}
	return c, rec
}

func statusOf(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}

type stubTokenService struct {
	issueFn func(ctx context.Context, in ports.IssueTokenInput) (string, error)
}

func (s *stubTokenService) Issue(ctx context.Context, in ports.IssueTokenInput) (string, error) {
	return s.issueFn(ctx, in)
}

func (s *stubTokenService) Verify(string) (*domain.Identity, error) {
	return nil, domain.ErrUnauthorized
}

type stubUserService struct {
	listFn     func(ctx context.Context) ([]*domain.User, error)
	registerFn func(ctx context.Context, in ports.RegisterUserInput) (*ports.RegisterUserResult, error)
	isAdminFn  func(ctx context.Context, callerEmail, email string) (bool, error)
	promoteFn  func(ctx context.Context, id string) (ports.UpdateResult, error)
}

func (s *stubUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Register(ctx context.Context, in ports.RegisterUserInput) (*ports.RegisterUserResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubUserService) CheckAdmin(ctx context.Context, email string) (bool, error) {
	return s.isAdminFn(ctx, email, email)
}

func (s *stubUserService) IsAdmin(ctx context.Context, callerEmail, email string) (bool, error) {
	return s.isAdminFn(ctx, callerEmail, email)
}

func (s *stubUserService) PromoteToAdmin(ctx context.Context, id string) (ports.UpdateResult, error) {
	return s.promoteFn(ctx, id)
}

type stubCartService struct {
	menuFn   func(ctx context.Context) ([]*domain.MenuItem, error)
	listFn   func(ctx context.Context, callerEmail, email string) ([]*domain.CartItem, error)
	getFn    func(ctx context.Context, id string) (*domain.CartItem, error)
	addFn    func(ctx context.Context, item *domain.CartItem) (string, error)
	removeFn func(ctx context.Context, id string) (int64, error)
}

func (s *stubCartService) ListMenu(ctx context.Context) ([]*domain.MenuItem, error) {
	return s.menuFn(ctx)
}

func (s *stubCartService) ListCart(ctx context.Context, callerEmail, email string) ([]*domain.CartItem, error) {
	return s.listFn(ctx, callerEmail, email)
}

func (s *stubCartService) GetItem(ctx context.Context, id string) (*domain.CartItem, error) {
	return s.getFn(ctx, id)
}

func (s *stubCartService) AddItem(ctx context.Context, item *domain.CartItem) (string, error) {
	return s.addFn(ctx, item)
}

func (s *stubCartService) RemoveItem(ctx context.Context, id string) (int64, error) {
	return s.removeFn(ctx, id)
}

type stubPaymentService struct {
	createFn func(ctx context.Context, in ports.CreateIntentInput) (*ports.IntentResult, error)
}

func (s *stubPaymentService) CreateIntent(ctx context.Context, in ports.CreateIntentInput) (*ports.IntentResult, error) {
	return s.createFn(ctx, in)
}

type stubCheckoutService struct {
	finalizeFn func(ctx context.Context, in ports.FinalizeInput) (*ports.FinalizeResult, error)
}

func (s *stubCheckoutService) Finalize(ctx context.Context, in ports.FinalizeInput) (*ports.FinalizeResult, error) {
	return s.finalizeFn(ctx, in)
}
