// Package session holds the stateless session primitives: the signed token
// codec, the identity context helpers and the ownership decider.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/estateview/realty-api/internal/core/domain"
)

// TokenTTL is the fixed lifetime of every issued session token.
const TokenTTL = 7 * 24 * time.Hour

var (
	ErrTokenExpired   = errors.New("session token expired")
	ErrTokenMalformed = errors.New("session token malformed")
	ErrMissingSecret  = errors.New("session signing secret not configured")
)

// claims is the token payload. Tokens minted by older clients carry the
// subject under "id", "_id" or "sub"; all three are accepted on the way in.
type claims struct {
	ID       string      `json:"id,omitempty"`
	LegacyID string      `json:"_id,omitempty"`
	Role     domain.Role `json:"role"`
	jwt.RegisteredClaims
}

func (c *claims) subjectID() string {
	switch {
	case c.ID != "":
		return c.ID
	case c.LegacyID != "":
		return c.LegacyID
	default:
		return c.Subject
	}
}

// Codec signs and verifies HS256 session tokens with a single process-wide
// secret. It holds no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option customises a Codec.
type Option func(*Codec)

// WithClock overrides the time source used for issuing and expiry checks.
func WithClock(now func() time.Time) Option {
	return func(c *Codec) { c.now = now }
}

// NewCodec returns a Codec for secret. An empty secret is accepted here so the
// failure surfaces as ErrMissingSecret on use rather than as a panic.
func NewCodec(secret string, opts ...Option) *Codec {
	c := &Codec{secret: []byte(secret), ttl: TokenTTL, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue signs a token for subjectID with the given role, valid for TokenTTL.
func (c *Codec) Issue(subjectID string, role domain.Role) (string, error) {
	if len(c.secret) == 0 {
		return "", ErrMissingSecret
	}
	if subjectID == "" || !role.Valid() {
		return "", fmt.Errorf("issue token: %w", domain.ErrInvalidCredentials)
	}

	now := c.now().UTC().Truncate(time.Second)
	tc := &claims{
		ID:   subjectID,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tc).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of token and returns the identity it
// carries.
func (c *Codec) Verify(token string) (*domain.Identity, error) {
	if len(c.secret) == 0 {
		return nil, ErrMissingSecret
	}

	tc := &claims{}
	parsed, err := jwt.ParseWithClaims(token, tc, func(*jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if !parsed.Valid {
		return nil, ErrTokenMalformed
	}

	subject := tc.subjectID()
	if subject == "" || !tc.Role.Valid() {
		return nil, fmt.Errorf("%w: missing subject or role", ErrTokenMalformed)
	}

	id := &domain.Identity{
		SubjectID: subject,
		Role:      tc.Role,
		ExpiresAt: tc.ExpiresAt.Time.UTC(),
	}
	if tc.IssuedAt != nil {
		id.IssuedAt = tc.IssuedAt.Time.UTC()
	}
	return id, nil
}
