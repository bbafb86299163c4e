package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Location names where a session token was found.
type Location string

const (
	LocationCookie Location = "cookie"
	LocationBearer Location = "bearer"
	LocationHeader Location = "header"
	LocationQuery  Location = "query"
)

const (
	// SessionCookie is the cookie the session issuer writes.
	SessionCookie = "access_token"
	// AccessTokenHeader is the fallback header for clients that cannot send Authorization.
	AccessTokenHeader = "X-Access-Token"
	// TokenQueryParam is the debug-only query location.
	TokenQueryParam = "token"

	maxTokenLen = 8192
)

// legacyCookieNames are accepted after SessionCookie, in this order.
var legacyCookieNames = []string{"token", "jwt", "session"}

// Extractor finds a candidate session token on a request. Precedence is
// fixed: cookie, then Authorization bearer, then X-Access-Token, then the
// token query parameter.
type Extractor struct {
	cookieNames []string
	allowQuery  bool
}

// NewExtractor returns an Extractor. allowQuery enables the query location.
func NewExtractor(allowQuery bool) *Extractor {
	names := make([]string, 0, 1+len(legacyCookieNames))
	names = append(names, SessionCookie)
	names = append(names, legacyCookieNames...)
	return &Extractor{cookieNames: names, allowQuery: allowQuery}
}

// Extract returns the first well-formed token found and where it came from.
// Preflight requests never yield a token.
func (e *Extractor) Extract(r *http.Request) (string, Location, bool) {
	if r.Method == http.MethodOptions {
		return "", "", false
	}

	for _, name := range e.cookieNames {
		if ck, err := r.Cookie(name); err == nil {
			if tok, ok := wellFormed(ck.Value); ok {
				return tok, LocationCookie, true
			}
		}
	}

	if tok, ok := bearerToken(r.Header.Get(echo.HeaderAuthorization)); ok {
		return tok, LocationBearer, true
	}

	if tok, ok := wellFormed(r.Header.Get(AccessTokenHeader)); ok {
		return tok, LocationHeader, true
	}

	if e.allowQuery {
		if tok, ok := wellFormed(r.URL.Query().Get(TokenQueryParam)); ok {
			return tok, LocationQuery, true
		}
	}

	return "", "", false
}

// bearerToken strips a case-insensitive "Bearer " scheme.
func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return wellFormed(parts[1])
}

// wellFormed accepts values shaped like a compact JWS: three non-empty
// dot-separated segments and no whitespace. Placeholders such as
// "undefined" or "null" left behind by browser clients fail this check.
func wellFormed(v string) (string, bool) {
	v = strings.TrimSpace(v)
	if v == "" || len(v) > maxTokenLen || strings.ContainsAny(v, " \t\r\n") {
		return "", false
	}
	parts := strings.Split(v, ".")
	if len(parts) != 3 {
		return "", false
	}
	for _, p := range parts {
		if p == "" {
			return "", false
		}
	}
	return v, true
}
