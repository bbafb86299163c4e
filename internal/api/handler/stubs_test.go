package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estateview/realty-api/internal/core/domain"
	"github.com/estateview/realty-api/internal/core/ports"
	"github.com/estateview/realty-api/internal/core/session"
)

const (
	aliceID = "64b7f0c2a1b2c3d4e5f60718"
	bobID   = "64b7f0c2a1b2c3d4e5f60719"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestCodec() *session.Codec {
	return session.NewCodec("secret", session.WithClock(func() time.Time { return testNow }))
}

func newTestIssuer(production bool) *SessionIssuer {
	s := NewSessionIssuer(newTestCodec(), CookiePolicyFor(production))
	s.now = func() time.Time { return testNow }
	return s
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

type stubAuthService struct {
	signupFn func(ctx context.Context, in ports.SignupInput) (*domain.User, error)
	signinFn func(ctx context.Context, email, password string) (*domain.User, error)
	googleFn func(ctx context.Context, in ports.GoogleInput) (*domain.User, bool, error)
}

func (s *stubAuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAuthService) Signin(ctx context.Context, email, password string) (*domain.User, error) {
	return s.signinFn(ctx, email, password)
}

func (s *stubAuthService) Google(ctx context.Context, in ports.GoogleInput) (*domain.User, bool, error) {
	return s.googleFn(ctx, in)
}

type stubUserService struct {
	getFn    func(ctx context.Context, id string) (*domain.User, error)
	updateFn func(ctx context.Context, caller *domain.Identity, id string, update ports.ProfileUpdate) (*domain.User, error)
	avatarFn func(ctx context.Context, caller *domain.Identity, id, avatar string) (*domain.User, error)
	deleteFn func(ctx context.Context, caller *domain.Identity, id string) error
}

func (s *stubUserService) GetProfile(ctx context.Context, id string) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, caller *domain.Identity, id string, update ports.ProfileUpdate) (*domain.User, error) {
	return s.updateFn(ctx, caller, id, update)
}

func (s *stubUserService) UploadAvatar(ctx context.Context, caller *domain.Identity, id, avatar string) (*domain.User, error) {
	return s.avatarFn(ctx, caller, id, avatar)
}

func (s *stubUserService) DeleteAccount(ctx context.Context, caller *domain.Identity, id string) error {
	return s.deleteFn(ctx, caller, id)
}

type stubListingService struct {
	deleteFn func(ctx context.Context, caller *domain.Identity, id string) error
	listFn   func(ctx context.Context, caller *domain.Identity, buyerID string) ([]*domain.Buying, error)
}

func (s *stubListingService) DeleteListing(ctx context.Context, caller *domain.Identity, id string) error {
	return s.deleteFn(ctx, caller, id)
}

func (s *stubListingService) ListBuyings(ctx context.Context, caller *domain.Identity, buyerID string) ([]*domain.Buying, error) {
	return s.listFn(ctx, caller, buyerID)
}
