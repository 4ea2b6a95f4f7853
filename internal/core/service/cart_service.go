package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
)

// CartService implements menu and cart use cases.
type CartService struct {
	carts ports.CartRepository
	menu  ports.MenuRepository
	log   zerolog.Logger
}

func NewCartService(carts ports.CartRepository, menu ports.MenuRepository, log zerolog.Logger) *CartService {
	return &CartService{carts: carts, menu: menu, log: log}
}

func (s *CartService) ListMenu(ctx context.Context) ([]*domain.MenuItem, error) {
	items, err := s.menu.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.MenuItem{}
	}
	return items, nil
}

func (s *CartService) ListCart(ctx context.Context, callerEmail, email string) ([]*domain.CartItem, error) {
	if email == "" {
		return []*domain.CartItem{}, nil
	}
	if email != callerEmail {
		return nil, domain.ErrForbidden
	}

	items, err := s.carts.ListByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*domain.CartItem{}
	}
	return items, nil
}

func (s *CartService) GetItem(ctx context.Context, id string) (*domain.CartItem, error) {
	item, err := s.carts.FindByID(ctx, id)
	if errors.Is(err, domain.ErrCartItemNotFound) {
		return nil, nil
	}
	return item, err
}

func (s *CartService) AddItem(ctx context.Context, item *domain.CartItem) (string, error) {
	id, err := s.carts.Create(ctx, item)
	if err != nil {
		return "", err
	}
	s.log.Debug().Str("email", item.Email).Str("cart_item_id", id).Msg("cart item added")
	return id, nil
}

func (s *CartService) RemoveItem(ctx context.Context, id string) (int64, error) {
	return s.carts.Delete(ctx, id)
}
