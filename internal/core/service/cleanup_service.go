package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/estateview/realty-api/internal/core/ports"
)

type cleanupService struct {
	listings ports.ListingRepository
	buyings  ports.BuyingRepository
	log      zerolog.Logger
}

// NewCleanupService returns a CleanupService that purges the listings and
// offers left behind by a deleted account.
func NewCleanupService(listings ports.ListingRepository, buyings ports.BuyingRepository, log zerolog.Logger) ports.CleanupService {
	return &cleanupService{listings: listings, buyings: buyings, log: log}
}

// Purge attempts every cleanup step even when an earlier one fails; the
// returned error joins all failures.
func (s *cleanupService) Purge(ctx context.Context, ownerID string) error {
	var errs []error

	n, err := s.listings.DeleteByOwner(ctx, ownerID)
	if err != nil {
		s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("failed deleting owned listings")
		errs = append(errs, err)
	} else {
		s.log.Debug().Str("owner_id", ownerID).Int64("count", n).Msg("owned listings deleted")
	}

	n, err = s.buyings.DeleteByBuyer(ctx, ownerID)
	if err != nil {
		s.log.Warn().Err(err).Str("owner_id", ownerID).Msg("failed deleting offers")
		errs = append(errs, err)
	} else {
		s.log.Debug().Str("owner_id", ownerID).Int64("count", n).Msg("offers deleted")
	}

	return errors.Join(errs...)
}
