package service

import (
	"context"
	"sync"

	"github.com/bistroboss/ordering-system/internal/core/domain"
	"github.com/bistroboss/ordering-system/internal/core/ports"
)

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

type stubUserRepo struct {
	mu      sync.Mutex
	users   map[string]*domain.User
	findErr error
	lookups int
}

func newStubUserRepo(users ...*domain.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*domain.User)}
	for _, u := range users {
		r.users[u.Email] = cloneUser(u)
	}
	return r
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return "", domain.ErrUserExists
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = "id-" + user.Email
	}
	r.users[copy.Email] = copy
	return copy.ID, nil
}

func (r *stubUserRepo) SetRole(_ context.Context, id, role string) (ports.UpdateResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == "bad" {
		return ports.UpdateResult{}, domain.ErrInvalidID
	}
	for _, u := range r.users {
		if u.ID == id {
			res := ports.UpdateResult{MatchedCount: 1}
			if u.Role != role {
				u.Role = role
				res.ModifiedCount = 1
			}
			return res, nil
		}
	}
	return ports.UpdateResult{}, nil
}

type stubCartRepo struct {
	mu        sync.Mutex
	items     map[string]*domain.CartItem
	nextID    int
	deleteErr error
	deletes   int
}

func newStubCartRepo(items ...*domain.CartItem) *stubCartRepo {
	r := &stubCartRepo{items: make(map[string]*domain.CartItem)}
	for _, it := range items {
		clone := *it
		r.items[it.ID] = &clone
	}
	return r
}

func (r *stubCartRepo) ListByEmail(_ context.Context, email string) ([]*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.CartItem
	for _, it := range r.items {
		if it.Email == email {
			clone := *it
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCartRepo) FindByID(_ context.Context, id string) (*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == "bad" {
		return nil, domain.ErrInvalidID
	}
	it, ok := r.items[id]
	if !ok {
		return nil, domain.ErrCartItemNotFound
	}
	clone := *it
	return &clone, nil
}

func (r *stubCartRepo) Create(_ context.Context, item *domain.CartItem) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *item
	clone.ID = "cart-" + string(rune('0'+r.nextID))
	r.items[clone.ID] = &clone
	return clone.ID, nil
}

func (r *stubCartRepo) Delete(_ context.Context, id string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id == "bad" {
		return 0, domain.ErrInvalidID
	}
	if _, ok := r.items[id]; !ok {
		return 0, nil
	}
	delete(r.items, id)
	return 1, nil
}

func (r *stubCartRepo) FindOwned(_ context.Context, email string, ids []string) ([]*domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.CartItem
	for _, id := range ids {
		if id == "bad" {
			return nil, domain.ErrInvalidID
		}
		if it, ok := r.items[id]; ok && it.Email == email {
			clone := *it
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *stubCartRepo) DeleteOwned(_ context.Context, email string, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var n int64
	for _, id := range ids {
		if it, ok := r.items[id]; ok && it.Email == email {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *stubCartRepo) has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[id]
	return ok
}

type stubMenuRepo struct {
	items []*domain.MenuItem
}

func (r *stubMenuRepo) List(_ context.Context) ([]*domain.MenuItem, error) {
	return r.items, nil
}

type stubGateway struct {
	requests []ports.IntentRequest
	err      error
}

func (g *stubGateway) CreateIntent(_ context.Context, req ports.IntentRequest) (*ports.Intent, error) {
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return &ports.Intent{ID: "pi_1", ClientSecret: "pi_1_secret_x"}, nil
}

type stubPaymentRepo struct {
	mu      sync.Mutex
	records []*domain.PaymentRecord
	err     error
}

func (r *stubPaymentRepo) Insert(_ context.Context, rec *domain.PaymentRecord) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return "", r.err
	}
	clone := *rec
	clone.ID = "pay-" + string(rune('0'+len(r.records)+1))
	r.records = append(r.records, &clone)
	return clone.ID, nil
}

type stubCheckoutStore struct {
	payments *stubPaymentRepo
	carts    *stubCartRepo
	err      error
}

func (s *stubCheckoutStore) FinalizeAtomic(ctx context.Context, rec *domain.PaymentRecord, email string, ids []string) (string, int64, error) {
	if s.err != nil {
		return "", 0, s.err
	}
	id, err := s.payments.Insert(ctx, rec)
	if err != nil {
		return "", 0, err
	}
	n, err := s.carts.DeleteOwned(ctx, email, ids)
	return id, n, err
}

type stubGuard struct {
	mu       sync.Mutex
	keys     map[string]bool
	released []string
}

func newStubGuard() *stubGuard {
	return &stubGuard{keys: make(map[string]bool)}
}

func (g *stubGuard) Reserve(_ context.Context, email, key string) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	k := email + ":" + key
	if g.keys[k] {
		return false, nil
	}
	g.keys[k] = true
	return true, nil
}

func (g *stubGuard) Release(_ context.Context, email, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	k := email + ":" + key
	delete(g.keys, k)
	g.released = append(g.released, k)
	return nil
}

type stubJournal struct {
	mu    sync.Mutex
	tasks map[string]domain.CleanupTask
}

func newStubJournal() *stubJournal {
	return &stubJournal{tasks: make(map[string]domain.CleanupTask)}
}

func (j *stubJournal) Save(_ context.Context, task domain.CleanupTask) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.tasks[task.PaymentID] = task
	return nil
}

func (j *stubJournal) Delete(_ context.Context, paymentID string) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	delete(j.tasks, paymentID)
	return nil
}

func (j *stubJournal) Pending(_ context.Context) ([]domain.CleanupTask, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]domain.CleanupTask, 0, len(j.tasks))
	for _, t := range j.tasks {
		out = append(out, t)
	}
	return out, nil
}

type stubScheduler struct {
	tasks []domain.CleanupTask
}

func (s *stubScheduler) Schedule(task domain.CleanupTask) bool {
	s.tasks = append(s.tasks, task)
	return true
}
