package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/estateview/realty-api/internal/core/domain"
	"github.com/estateview/realty-api/internal/core/ports"
)

// AuthService implements signup, signin and Google sign-in.
type AuthService struct {
	repo   ports.UserRepository
	cost   int
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, cost: bcrypt.DefaultCost, logger: logger}
}

// Signup creates a buyer or seller account. Admin accounts are never
// self-registered.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if in.Role != domain.RoleBuyer && in.Role != domain.RoleSeller {
		return nil, domain.ErrInvalidCredentials
	}

	email := normalizeEmail(in.Email)
	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("signup: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     in.Username,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       domain.DefaultAvatar,
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("account created")
	return created, nil
}

// Signin checks email and password and returns the matching account.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Google signs in the account registered under in.Email, creating it with a
// random password when it does not exist yet.
func (s *AuthService) Google(ctx context.Context, in ports.GoogleInput) (*domain.User, bool, error) {
	if in.Email == "" {
		return nil, false, domain.ErrInvalidCredentials
	}
	email := normalizeEmail(in.Email)

	existing, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, false, fmt.Errorf("google signin: %w", err)
	}

	password, err := randomHex(8)
	if err != nil {
		return nil, false, fmt.Errorf("google signin: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, false, fmt.Errorf("google signin: hash password: %w", err)
	}

	suffix, err := randomHex(2)
	if err != nil {
		return nil, false, fmt.Errorf("google signin: %w", err)
	}

	role := domain.RoleBuyer
	if in.Role == domain.RoleSeller {
		role = domain.RoleSeller
	}
	avatar := in.Photo
	if avatar == "" {
		avatar = domain.DefaultAvatar
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     googleUsername(in.Username) + suffix,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       avatar,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, false, err
	}

	s.logger.Info().Str("user_id", created.ID).Msg("account created via google")
	return created, true, nil
}

func googleUsername(name string) string {
	name = strings.ToLower(strings.Join(strings.Fields(name), ""))
	if name == "" {
		return "user"
	}
	return name
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
