package ports

import (
	"context"

	"github.com/estateview/realty-api/internal/core/domain"
)

// ListingRepository covers the listing operations that depend on ownership.
type ListingRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Listing, error)
	Delete(ctx context.Context, id string) error
	// DeleteByOwner removes every listing whose userRef is ownerID and
	// returns how many were removed.
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}

// BuyingRepository covers buyer-scoped offer operations.
type BuyingRepository interface {
	ListByBuyer(ctx context.Context, buyerID string) ([]*domain.Buying, error)
	DeleteByBuyer(ctx context.Context, buyerID string) (int64, error)
}
