package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/estateview/realty-api/internal/core/domain"
	"github.com/estateview/realty-api/internal/core/ports"
)

type stubUserRepo struct {
	users   map[string]*domain.User
	nextID  int
	deleted []string
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) seed(u *domain.User) {
	r.users[u.ID] = cloneUser(u)
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id string, update ports.ProfileUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Username, u.Email, u.Phone = update.Username, update.Email, update.Phone
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateAvatar(_ context.Context, id, avatar string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u.Avatar = avatar
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	r.deleted = append(r.deleted, id)
	return nil
}

type stubCache struct {
	users       map[string]*domain.User
	invalidated []string
	getErr      error
}

func newStubCache() *stubCache {
	return &stubCache{users: make(map[string]*domain.User)}
}

func (c *stubCache) Get(_ context.Context, id string) (*domain.User, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	u, ok := c.users[id]
	return cloneUser(u), ok, nil
}

func (c *stubCache) Set(_ context.Context, u *domain.User) error {
	c.users[u.ID] = cloneUser(u)
	return nil
}

func (c *stubCache) Invalidate(_ context.Context, id string) error {
	delete(c.users, id)
	c.invalidated = append(c.invalidated, id)
	return nil
}

type stubQueue struct {
	mu   sync.Mutex
	jobs []string
}

func (q *stubQueue) Enqueue(ownerID string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, ownerID)
}

type stubListingRepo struct {
	listings   map[string]*domain.Listing
	deleted    []string
	ownerErr   error
	purgedFrom []string
}

func (r *stubListingRepo) FindByID(_ context.Context, id string) (*domain.Listing, error) {
	l, ok := r.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *stubListingRepo) Delete(_ context.Context, id string) error {
	delete(r.listings, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubListingRepo) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	r.purgedFrom = append(r.purgedFrom, ownerID)
	if r.ownerErr != nil {
		return 0, r.ownerErr
	}
	var n int64
	for id, l := range r.listings {
		if l.UserRef == ownerID {
			delete(r.listings, id)
			n++
		}
	}
	return n, nil
}

type stubBuyingRepo struct {
	buyings    []*domain.Buying
	purgedFrom []string
	deleteErr  error
}

func (r *stubBuyingRepo) ListByBuyer(_ context.Context, buyerID string) ([]*domain.Buying, error) {
	var out []*domain.Buying
	for _, b := range r.buyings {
		if b.BuyerID == buyerID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *stubBuyingRepo) DeleteByBuyer(_ context.Context, buyerID string) (int64, error) {
	r.purgedFrom = append(r.purgedFrom, buyerID)
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	return 0, nil
}

var errStore = errors.New("store unavailable")
