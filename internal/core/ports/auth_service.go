package ports

import (
	"context"

	"github.com/estateview/realty-api/internal/core/domain"
)

// SignupInput carries a new account's credentials.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// GoogleInput carries the profile returned by the Google sign-in popup.
type GoogleInput struct {
	Username string
	Email    string
	Photo    string
	Role     domain.Role
}

// AuthService authenticates account holders. Session issuance is the
// transport's concern; the service only returns the account.
type AuthService interface {
	Signup(ctx context.Context, in SignupInput) (*domain.User, error)
	Signin(ctx context.Context, email, password string) (*domain.User, error)
	Google(ctx context.Context, in GoogleInput) (user *domain.User, created bool, err error)
}
