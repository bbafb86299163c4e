package domain

import "errors"

var (
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("access forbidden")
	ErrServerMisconfigured = errors.New("server misconfigured")
	ErrOriginRejected      = errors.New("origin not allowed")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidID          = errors.New("invalid id")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrListingNotFound    = errors.New("listing not found")
	ErrInvalidAvatar      = errors.New("invalid image format")
)

// UnauthorizedReason says why a request carried no usable credential.
type UnauthorizedReason string

const (
	ReasonTokenMissing UnauthorizedReason = "token_missing"
	ReasonTokenInvalid UnauthorizedReason = "token_invalid"
	ReasonTokenExpired UnauthorizedReason = "token_expired"
)

// UnauthorizedError is returned when the caller is not authenticated.
// errors.Is(err, ErrUnauthorized) holds for every reason.
type UnauthorizedError struct {
	Reason UnauthorizedReason
}

// NewUnauthorized returns an UnauthorizedError for the given reason.
func NewUnauthorized(reason UnauthorizedReason) *UnauthorizedError {
	return &UnauthorizedError{Reason: reason}
}

func (e *UnauthorizedError) Error() string {
	return "unauthorized: " + string(e.Reason)
}

func (e *UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}

// Message is the short client-facing text for the reason.
func (e *UnauthorizedError) Message() string {
	switch e.Reason {
	case ReasonTokenMissing:
		return "Unauthorized: token missing"
	case ReasonTokenExpired:
		return "Unauthorized: token expired"
	default:
		return "Unauthorized: token invalid"
	}
}
