package ports

import (
	"context"

	"github.com/estateview/realty-api/internal/core/domain"
)

// ProfileUpdate carries the user-editable profile fields.
type ProfileUpdate struct {
	Username string
	Email    string
	Phone    string
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, update ProfileUpdate) (*domain.User, error)
	UpdateAvatar(ctx context.Context, id, avatar string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
