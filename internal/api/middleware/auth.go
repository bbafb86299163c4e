package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/estateview/realty-api/internal/api/metrics"
	"github.com/estateview/realty-api/internal/core/domain"
	"github.com/estateview/realty-api/internal/core/session"
)

const identityKey = "identity"

// TokenVerifier is the part of the session codec the verifier needs.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// Verifier authenticates requests from whichever credential location the
// Extractor finds first.
type Verifier struct {
	codec     TokenVerifier
	extractor *Extractor
	log       zerolog.Logger
}

func NewVerifier(codec TokenVerifier, extractor *Extractor, log zerolog.Logger) *Verifier {
	return &Verifier{codec: codec, extractor: extractor, log: log}
}

// VerifySession returns the identity carried by r, an *domain.UnauthorizedError,
// or domain.ErrServerMisconfigured when no signing secret is configured.
func (v *Verifier) VerifySession(r *http.Request) (*domain.Identity, error) {
	token, loc, ok := v.extractor.Extract(r)
	if !ok {
		return nil, domain.NewUnauthorized(domain.ReasonTokenMissing)
	}

	id, err := v.codec.Verify(token)
	if err == nil {
		metrics.CredentialLocationsTotal.WithLabelValues(string(loc)).Inc()
		return id, nil
	}

	switch {
	case errors.Is(err, session.ErrMissingSecret):
		return nil, fmt.Errorf("%w: %v", domain.ErrServerMisconfigured, err)
	case errors.Is(err, session.ErrTokenExpired):
		return nil, domain.NewUnauthorized(domain.ReasonTokenExpired)
	default:
		v.log.Debug().Err(err).Str("location", string(loc)).Msg("token rejected")
		return nil, domain.NewUnauthorized(domain.ReasonTokenInvalid)
	}
}

// Middleware enforces authentication on the routes it wraps and makes the
// identity available through IdentityFrom and session.FromContext.
// Preflight requests pass through untouched.
func (v *Verifier) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Method == http.MethodOptions {
				return next(c)
			}

			id, err := v.VerifySession(req)
			if err != nil {
				reason := "misconfigured"
				var ue *domain.UnauthorizedError
				if errors.As(err, &ue) {
					reason = string(ue.Reason)
				}
				metrics.AuthFailuresTotal.WithLabelValues(reason).Inc()
				v.log.Warn().
					Str("reason", reason).
					Str("method", req.Method).
					Str("path", c.Path()).
					Str("origin", req.Header.Get(echo.HeaderOrigin)).
					Msg("session verification failed")
				return err
			}

			SetIdentity(c, id)
			return next(c)
		}
	}
}

// SetIdentity attaches id to both the echo context and the request context.
func SetIdentity(c echo.Context, id *domain.Identity) {
	c.Set(identityKey, id)
	req := c.Request()
	c.SetRequest(req.WithContext(session.WithIdentity(req.Context(), id)))
}

// IdentityFrom returns the identity attached by the Verifier middleware.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	id, ok := c.Get(identityKey).(*domain.Identity)
	return id, ok && id != nil
}
