package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/estateview/realty-api/internal/core/domain"
	"github.com/estateview/realty-api/internal/core/ports"
	"github.com/estateview/realty-api/internal/core/session"
)

type ListingService struct {
	listings ports.ListingRepository
	buyings  ports.BuyingRepository
	logger   zerolog.Logger
}

func NewListingService(listings ports.ListingRepository, buyings ports.BuyingRepository, logger zerolog.Logger) *ListingService {
	return &ListingService{listings: listings, buyings: buyings, logger: logger}
}

// DeleteListing removes a listing.
// Policy: the listing's owner (userRef) or an admin.
func (s *ListingService) DeleteListing(ctx context.Context, caller *domain.Identity, id string) error {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := session.Authorize(caller, listing.UserRef, session.SelfOrAdmin); err != nil {
		return err
	}
	if err := s.listings.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("listing_id", id).Str("deleted_by", caller.SubjectID).Msg("listing deleted")
	return nil
}

// ListBuyings returns the offers made by buyerID.
// Policy: the buyer themself or an admin.
func (s *ListingService) ListBuyings(ctx context.Context, caller *domain.Identity, buyerID string) ([]*domain.Buying, error) {
	if err := session.Authorize(caller, buyerID, session.SelfOrAdmin); err != nil {
		return nil, err
	}
	return s.buyings.ListByBuyer(ctx, buyerID)
}
