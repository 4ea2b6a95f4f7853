package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/bistroboss/ordering-system/internal/core/domain"
)

func newCartFixture() (*CartService, *stubCartRepo) {
	carts := newStubCartRepo(
		&domain.CartItem{ID: "c1", Email: "a@x.io", MenuItemID: "m1", Price: 10},
		&domain.CartItem{ID: "c2", Email: "b@x.io", MenuItemID: "m2", Price: 5},
	)
	menu := &stubMenuRepo{items: []*domain.MenuItem{{ID: "m1", Name: "Soup", Price: 10}}}
	return NewCartService(carts, menu, zerolog.Nop()), carts
}

func TestCartService_ListCart(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	items, err := svc.ListCart(ctx, "a@x.io", "a@x.io")
	if err != nil {
		t.Fatalf("ListCart returned error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "c1" {
		t.Fatalf("unexpected items: %+v", items)
	}

	items, err = svc.ListCart(ctx, "a@x.io", "")
	if err != nil || items == nil || len(items) != 0 {
		t.Fatalf("expected empty non-nil list, got %v, %v", items, err)
	}

	if _, err := svc.ListCart(ctx, "a@x.io", "b@x.io"); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCartService_GetItem(t *testing.T) {
	svc, _ := newCartFixture()
	ctx := context.Background()

	item, err := svc.GetItem(ctx, "c1")
	if err != nil || item == nil || item.ID != "c1" {
		t.Fatalf("unexpected result: %+v, %v", item, err)
	}

	item, err = svc.GetItem(ctx, "missing")
	if err != nil || item != nil {
		t.Fatalf("expected nil, nil for missing item, got %+v, %v", item, err)
	}

	if _, err := svc.GetItem(ctx, "bad"); err != domain.ErrInvalidID {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestCartService_AddAndRemove(t *testing.T) {
	svc, carts := newCartFixture()
	ctx := context.Background()

	id, err := svc.AddItem(ctx, &domain.CartItem{Email: "a@x.io", MenuItemID: "m1", Price: 10})
	if err != nil || id == "" {
		t.Fatalf("AddItem failed: %q, %v", id, err)
	}
	if !carts.has(id) {
		t.Fatalf("expected item %s to be stored", id)
	}

	n, err := svc.RemoveItem(ctx, id)
	if err != nil || n != 1 {
		t.Fatalf("expected one deletion, got %d, %v", n, err)
	}
	n, err = svc.RemoveItem(ctx, id)
	if err != nil || n != 0 {
		t.Fatalf("expected zero deletions for absent item, got %d, %v", n, err)
	}
}

func TestCartService_ListMenu(t *testing.T) {
	svc, _ := newCartFixture()

	items, err := svc.ListMenu(context.Background())
	if err != nil || len(items) != 1 {
		t.Fatalf("unexpected menu: %+v, %v", items, err)
	}

	empty := NewCartService(newStubCartRepo(), &stubMenuRepo{}, zerolog.Nop())
	items, err = empty.ListMenu(context.Background())
	if err != nil || items == nil {
		t.Fatalf("expected empty non-nil menu, got %v, %v", items, err)
	}
}
