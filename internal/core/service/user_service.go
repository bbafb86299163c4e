package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/estateview/realty-api/internal/core/domain"
	"github.com/estateview/realty-api/internal/core/ports"
	"github.com/estateview/realty-api/internal/core/session"
)

type UserService struct {
	repo    ports.UserRepository
	cache   ports.ProfileCache
	cleanup ports.CleanupQueue
	logger  zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache ports.ProfileCache, cleanup ports.CleanupQueue, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, cleanup: cleanup, logger: logger}
}

// GetProfile returns the account id, served from the profile cache when possible.
func (s *UserService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, id)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", id).Msg("profile cache read failed")
		} else if ok {
			return cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, user); err != nil {
			s.logger.Warn().Err(err).Str("user_id", id).Msg("profile cache write failed")
		}
	}
	return user, nil
}

// UpdateProfile edits username, email and phone.
// Policy: self only. Admins cannot rewrite another user's contact details.
func (s *UserService) UpdateProfile(ctx context.Context, caller *domain.Identity, id string, update ports.ProfileUpdate) (*domain.User, error) {
	if err := session.Authorize(caller, id, session.SelfOnly); err != nil {
		return nil, err
	}

	update.Email = normalizeEmail(update.Email)
	user, err := s.repo.UpdateProfile(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return user, nil
}

// UploadAvatar replaces the profile picture with a data:image URL.
// Policy: self only.
func (s *UserService) UploadAvatar(ctx context.Context, caller *domain.Identity, id, avatar string) (*domain.User, error) {
	if err := session.Authorize(caller, id, session.SelfOnly); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(avatar, "data:image") {
		return nil, domain.ErrInvalidAvatar
	}

	user, err := s.repo.UpdateAvatar(ctx, id, avatar)
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, id)
	return user, nil
}

// DeleteAccount removes the account and schedules cleanup of everything it owns.
// Policy: self or admin.
func (s *UserService) DeleteAccount(ctx context.Context, caller *domain.Identity, id string) error {
	if err := session.Authorize(caller, id, session.SelfOrAdmin); err != nil {
		return err
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	s.invalidate(ctx, id)
	if s.cleanup != nil {
		s.cleanup.Enqueue(id)
	}

	s.logger.Info().
		Str("user_id", id).
		Str("deleted_by", caller.SubjectID).
		Msg("account deleted")
	return nil
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("user_id", id).Msg("profile cache invalidation failed")
	}
}
