package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/estateview/realty-api/internal/api/metrics"
	"github.com/estateview/realty-api/internal/core/domain"
)

var (
	DefaultAllowMethods = []string{
		http.MethodGet, http.MethodPost, http.MethodPut,
		http.MethodPatch, http.MethodDelete, http.MethodOptions,
	}
	DefaultAllowHeaders = []string{
		echo.HeaderContentType, echo.HeaderAuthorization, AccessTokenHeader, echo.HeaderXRequestedWith,
	}
)

// OriginConfig lists the recognised cross-origin options.
type OriginConfig struct {
	AllowedOrigins     []string
	CredentialsEnabled bool
	AllowMethods       []string
	AllowHeaders       []string
	// MaxAge is the preflight cache lifetime in seconds; 0 omits the header.
	MaxAge int
}

// OriginDecision is the outcome of evaluating one request's Origin header.
type OriginDecision struct {
	Allowed bool
	// Origin is the value echoed in Access-Control-Allow-Origin, empty when
	// the header must not be sent.
	Origin string
	Header http.Header
}

// OriginPolicy admits or rejects requests by their declared origin. It is
// immutable after construction and evaluated afresh on every request.
type OriginPolicy struct {
	allowed     map[string]struct{}
	wildcard    bool
	credentials bool
	methods     string
	headers     string
	maxAge      string
	log         zerolog.Logger
}

// NewOriginPolicy validates cfg and builds a policy. A "*" entry is only
// accepted when credentials are disabled.
func NewOriginPolicy(cfg OriginConfig, log zerolog.Logger) (*OriginPolicy, error) {
	p := &OriginPolicy{
		allowed:     make(map[string]struct{}, len(cfg.AllowedOrigins)),
		credentials: cfg.CredentialsEnabled,
		log:         log,
	}
	for _, o := range cfg.AllowedOrigins {
		if o == "*" {
			if cfg.CredentialsEnabled {
				return nil, errors.New("origin policy: wildcard origin cannot be combined with credentials")
			}
			p.wildcard = true
			continue
		}
		p.allowed[o] = struct{}{}
	}

	methods := cfg.AllowMethods
	if len(methods) == 0 {
		methods = DefaultAllowMethods
	}
	headers := cfg.AllowHeaders
	if len(headers) == 0 {
		headers = DefaultAllowHeaders
	}
	p.methods = strings.Join(methods, ",")
	p.headers = strings.Join(headers, ",")
	if cfg.MaxAge > 0 {
		p.maxAge = strconv.Itoa(cfg.MaxAge)
	}
	return p, nil
}

// Decide evaluates origin. A request without an Origin header is admitted
// with no credential headers; a listed origin is admitted and echoed back
// verbatim; anything else is rejected.
func (p *OriginPolicy) Decide(origin string, preflight bool) OriginDecision {
	h := http.Header{}

	if preflight {
		h.Add(echo.HeaderVary, echo.HeaderAccessControlRequestMethod)
		h.Add(echo.HeaderVary, echo.HeaderAccessControlRequestHeaders)
	}

	if origin == "" {
		if preflight {
			p.advertise(h)
		}
		return OriginDecision{Allowed: true, Header: h}
	}

	h.Add(echo.HeaderVary, echo.HeaderOrigin)

	echoed, ok := p.match(origin)
	if !ok {
		return OriginDecision{Allowed: false, Header: h}
	}

	h.Set(echo.HeaderAccessControlAllowOrigin, echoed)
	if p.credentials {
		h.Set(echo.HeaderAccessControlAllowCredentials, "true")
	}
	if preflight {
		p.advertise(h)
	}
	return OriginDecision{Allowed: true, Origin: echoed, Header: h}
}

func (p *OriginPolicy) match(origin string) (string, bool) {
	if _, ok := p.allowed[origin]; ok {
		return origin, true
	}
	if p.wildcard {
		return "*", true
	}
	return "", false
}

func (p *OriginPolicy) advertise(h http.Header) {
	h.Set(echo.HeaderAccessControlAllowMethods, p.methods)
	h.Set(echo.HeaderAccessControlAllowHeaders, p.headers)
	if p.maxAge != "" {
		h.Set(echo.HeaderAccessControlMaxAge, p.maxAge)
	}
}

// Middleware gates every request on its origin. Register it with Echo#Pre so
// it runs ahead of routing, body parsing and authentication. Preflight
// requests are answered here with 204 and never reach a route.
func (p *OriginPolicy) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			origin := req.Header.Get(echo.HeaderOrigin)
			preflight := req.Method == http.MethodOptions

			d := p.Decide(origin, preflight)
			res := c.Response().Header()
			for k, vs := range d.Header {
				for _, v := range vs {
					res.Add(k, v)
				}
			}

			metrics.OriginDecisionsTotal.WithLabelValues(originResult(origin, d), strconv.FormatBool(preflight)).Inc()

			if !d.Allowed {
				p.log.Warn().
					Str("origin", origin).
					Str("method", req.Method).
					Str("uri", req.RequestURI).
					Msg("origin rejected")
				return domain.ErrOriginRejected
			}
			if preflight {
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}

func originResult(origin string, d OriginDecision) string {
	switch {
	case origin == "":
		return "no_origin"
	case d.Allowed:
		return "allowed"
	default:
		return "rejected"
	}
}
