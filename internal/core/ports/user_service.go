package ports

import (
	"context"

	"github.com/estateview/realty-api/internal/core/domain"
)

// ProfileCache is a best-effort read-through cache of user profiles.
type ProfileCache interface {
	Get(ctx context.Context, id string) (*domain.User, bool, error)
	Set(ctx context.Context, user *domain.User) error
	Invalidate(ctx context.Context, id string) error
}

// CleanupQueue schedules best-effort removal of records owned by a deleted account.
type CleanupQueue interface {
	Enqueue(ownerID string)
}

// UserService holds the owner-scoped account operations. Every mutating call
// takes the caller identity explicitly.
type UserService interface {
	GetProfile(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, caller *domain.Identity, id string, update ProfileUpdate) (*domain.User, error)
	UploadAvatar(ctx context.Context, caller *domain.Identity, id, avatar string) (*domain.User, error)
	DeleteAccount(ctx context.Context, caller *domain.Identity, id string) error
}

// ListingService holds the owner-scoped listing and offer operations.
type ListingService interface {
	DeleteListing(ctx context.Context, caller *domain.Identity, id string) error
	ListBuyings(ctx context.Context, caller *domain.Identity, buyerID string) ([]*domain.Buying, error)
}

// CleanupService removes records that belong to a deleted account.
type CleanupService interface {
	Purge(ctx context.Context, ownerID string) error
}
