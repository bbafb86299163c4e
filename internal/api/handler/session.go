package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estateview/realty-api/internal/api/metrics"
	"github.com/estateview/realty-api/internal/api/middleware"
	"github.com/estateview/realty-api/internal/core/domain"
	"github.com/estateview/realty-api/internal/core/session"
)

// TokenIssuer is the part of the session codec the issuer needs.
type TokenIssuer interface {
	Issue(subjectID string, role domain.Role) (string, error)
}

// CookiePolicy holds the cookie attributes that depend on the deployment.
// Secure and SameSite=None are only ever set together.
type CookiePolicy struct {
	Secure   bool
	SameSite http.SameSite
}

// CookiePolicyFor returns the cross-site policy for production and a
// same-site, non-secure policy for local development.
func CookiePolicyFor(production bool) CookiePolicy {
	if production {
		return CookiePolicy{Secure: true, SameSite: http.SameSiteNoneMode}
	}
	return CookiePolicy{Secure: false, SameSite: http.SameSiteLaxMode}
}

// SessionIssuer mints session tokens and writes them as the session cookie.
type SessionIssuer struct {
	tokens TokenIssuer
	policy CookiePolicy
	now    func() time.Time
}

func NewSessionIssuer(tokens TokenIssuer, policy CookiePolicy) *SessionIssuer {
	// A cross-site cookie without Secure is dropped by browsers.
	if policy.SameSite == http.SameSiteNoneMode && !policy.Secure {
		policy.SameSite = http.SameSiteLaxMode
	}
	return &SessionIssuer{tokens: tokens, policy: policy, now: time.Now}
}

// IssueSession sets the session cookie on the response and returns the token
// so bearer-only clients can read it from the body.
func (s *SessionIssuer) IssueSession(c echo.Context, subjectID string, role domain.Role) (string, error) {
	token, err := s.tokens.Issue(subjectID, role)
	if err != nil {
		if errors.Is(err, session.ErrMissingSecret) {
			return "", fmt.Errorf("%w: %v", domain.ErrServerMisconfigured, err)
		}
		return "", err
	}

	c.SetCookie(s.cookie(token, s.now().Add(session.TokenTTL), int(session.TokenTTL/time.Second)))
	metrics.SessionsIssuedTotal.WithLabelValues(string(role)).Inc()
	return token, nil
}

// ClearSession expires the session cookie using the same attributes it was
// issued with.
func (s *SessionIssuer) ClearSession(c echo.Context) {
	c.SetCookie(s.cookie("", time.Unix(0, 0), -1))
}

func (s *SessionIssuer) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.policy.Secure,
		SameSite: s.policy.SameSite,
	}
}
