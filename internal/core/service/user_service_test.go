package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/estateview/realty-api/internal/core/domain"
	"github.com/estateview/realty-api/internal/core/ports"
)

func buyer(id string) *domain.Identity {
	return &domain.Identity{SubjectID: id, Role: domain.RoleBuyer}
}

func admin(id string) *domain.Identity {
	return &domain.Identity{SubjectID: id, Role: domain.RoleAdmin}
}

func newUserFixture() (*UserService, *stubUserRepo, *stubCache, *stubQueue) {
	repo := newStubUserRepo()
	repo.seed(&domain.User{ID: "u1", Username: "alice", Email: "alice@example.com", Role: domain.RoleBuyer})
	repo.seed(&domain.User{ID: "u2", Username: "bob", Email: "bob@example.com", Role: domain.RoleSeller})
	cache := newStubCache()
	queue := &stubQueue{}
	return NewUserService(repo, cache, queue, zerolog.Nop()), repo, cache, queue
}

func TestUserService_GetProfile_ReadThrough(t *testing.T) {
	svc, repo, cache, _ := newUserFixture()

	user, err := svc.GetProfile(context.Background(), "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.Username != "alice" {
		t.Fatalf("unexpected user %+v", user)
	}
	if _, ok := cache.users["u1"]; !ok {
		t.Fatalf("expected profile to be cached")
	}

	// served from cache even when the store fails
	repo.findErr = errStore
	if _, err := svc.GetProfile(context.Background(), "u1"); err != nil {
		t.Fatalf("expected cache hit, got %v", err)
	}
}

func TestUserService_GetProfile_CacheFailureFallsBack(t *testing.T) {
	svc, _, cache, _ := newUserFixture()
	cache.getErr = errStore

	if _, err := svc.GetProfile(context.Background(), "u2"); err != nil {
		t.Fatalf("expected store fallback, got %v", err)
	}
}

func TestUserService_UpdateProfile_SelfOnly(t *testing.T) {
	svc, _, cache, _ := newUserFixture()
	update := ports.ProfileUpdate{Username: "alice2", Email: "ALICE2@example.com", Phone: "555"}

	user, err := svc.UpdateProfile(context.Background(), buyer("u1"), "u1", update)
	if err != nil {
		t.Fatalf("self update: %v", err)
	}
	if user.Username != "alice2" || user.Email != "alice2@example.com" {
		t.Fatalf("unexpected user %+v", user)
	}
	if len(cache.invalidated) != 1 || cache.invalidated[0] != "u1" {
		t.Fatalf("expected cache invalidation, got %v", cache.invalidated)
	}

	if _, err := svc.UpdateProfile(context.Background(), buyer("u2"), "u1", update); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for other user, got %v", err)
	}
	if _, err := svc.UpdateProfile(context.Background(), admin("a1"), "u1", update); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for admin, got %v", err)
	}
}

func TestUserService_UploadAvatar(t *testing.T) {
	svc, _, _, _ := newUserFixture()

	if _, err := svc.UploadAvatar(context.Background(), buyer("u1"), "u1", "https://example.com/a.png"); !errors.Is(err, domain.ErrInvalidAvatar) {
		t.Fatalf("expected ErrInvalidAvatar, got %v", err)
	}
	if _, err := svc.UploadAvatar(context.Background(), buyer("u2"), "u1", "data:image/png;base64,AAAA"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	user, err := svc.UploadAvatar(context.Background(), buyer("u1"), "u1", "data:image/png;base64,AAAA")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if user.Avatar != "data:image/png;base64,AAAA" {
		t.Fatalf("avatar not updated")
	}
}

func TestUserService_DeleteAccount_Self(t *testing.T) {
	svc, repo, cache, queue := newUserFixture()

	if err := svc.DeleteAccount(context.Background(), buyer("u1"), "u1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "u1" {
		t.Fatalf("expected u1 deleted, got %v", repo.deleted)
	}
	if len(queue.jobs) != 1 || queue.jobs[0] != "u1" {
		t.Fatalf("expected cleanup job for u1, got %v", queue.jobs)
	}
	if len(cache.invalidated) != 1 {
		t.Fatalf("expected cache invalidation")
	}
}

func TestUserService_DeleteAccount_OtherBuyerForbidden(t *testing.T) {
	svc, repo, _, queue := newUserFixture()

	err := svc.DeleteAccount(context.Background(), buyer("u1"), "u2")
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if len(repo.deleted) != 0 || len(queue.jobs) != 0 {
		t.Fatalf("nothing must be deleted on forbidden")
	}
}

func TestUserService_DeleteAccount_Admin(t *testing.T) {
	svc, repo, _, _ := newUserFixture()

	if err := svc.DeleteAccount(context.Background(), admin("a1"), "u2"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "u2" {
		t.Fatalf("expected u2 deleted")
	}
}

func TestUserService_DeleteAccount_NotFound(t *testing.T) {
	svc, _, _, queue := newUserFixture()

	if err := svc.DeleteAccount(context.Background(), admin("a1"), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if len(queue.jobs) != 0 {
		t.Fatalf("no cleanup expected for missing account")
	}
}

func TestUserService_DeleteAccount_NoIdentity(t *testing.T) {
	svc, _, _, _ := newUserFixture()

	if err := svc.DeleteAccount(context.Background(), nil, "u1"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestListingService_DeleteListing(t *testing.T) {
	listings := &stubListingRepo{listings: map[string]*domain.Listing{
		"l1": {ID: "l1", UserRef: "u1"},
		"l2": {ID: "l2", UserRef: "u2"},
	}}
	svc := NewListingService(listings, &stubBuyingRepo{}, zerolog.Nop())

	if err := svc.DeleteListing(context.Background(), buyer("u1"), "l2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.DeleteListing(context.Background(), buyer("u1"), "l1"); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := svc.DeleteListing(context.Background(), admin("a1"), "l2"); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if err := svc.DeleteListing(context.Background(), admin("a1"), "missing"); !errors.Is(err, domain.ErrListingNotFound) {
		t.Fatalf("expected ErrListingNotFound, got %v", err)
	}
	if len(listings.deleted) != 2 {
		t.Fatalf("expected two deletions, got %v", listings.deleted)
	}
}

func TestListingService_ListBuyings(t *testing.T) {
	buyings := &stubBuyingRepo{buyings: []*domain.Buying{
		{ID: "b1", BuyerID: "u1"},
		{ID: "b2", BuyerID: "u2"},
	}}
	svc := NewListingService(&stubListingRepo{}, buyings, zerolog.Nop())

	out, err := svc.ListBuyings(context.Background(), buyer("u1"), "u1")
	if err != nil || len(out) != 1 || out[0].ID != "b1" {
		t.Fatalf("unexpected result %v %v", out, err)
	}
	if _, err := svc.ListBuyings(context.Background(), buyer("u1"), "u2"); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.ListBuyings(context.Background(), admin("a1"), "u2"); err != nil {
		t.Fatalf("admin list: %v", err)
	}
}

func TestCleanupService_Purge_ContinuesAfterFailure(t *testing.T) {
	listings := &stubListingRepo{listings: map[string]*domain.Listing{}, ownerErr: errStore}
	buyings := &stubBuyingRepo{}
	svc := NewCleanupService(listings, buyings, zerolog.Nop())

	err := svc.Purge(context.Background(), "u1")
	if !errors.Is(err, errStore) {
		t.Fatalf("expected joined store error, got %v", err)
	}
	if len(buyings.purgedFrom) != 1 || buyings.purgedFrom[0] != "u1" {
		t.Fatalf("offers cleanup must still run after listing failure")
	}
}

func TestCleanupService_Purge_Success(t *testing.T) {
	listings := &stubListingRepo{listings: map[string]*domain.Listing{
		"l1": {ID: "l1", UserRef: "u1"},
		"l2": {ID: "l2", UserRef: "u2"},
	}}
	svc := NewCleanupService(listings, &stubBuyingRepo{}, zerolog.Nop())

	if err := svc.Purge(context.Background(), "u1"); err != nil {
		t.Fatalf("purge: %v", err)
	}
	if _, ok := listings.listings["l1"]; ok {
		t.Fatalf("owned listing should be gone")
	}
	if _, ok := listings.listings["l2"]; !ok {
		t.Fatalf("other listings must be kept")
	}
}
