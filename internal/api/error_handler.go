package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/estateview/realty-api/internal/api/metrics"
	"github.com/estateview/realty-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs operator and unexpected errors without leaking details to the client.
//   - Renders a consistent JSON envelope: {"success": false, "status": <code>, "message": "<text>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Success: false, Status: code, Message: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, validation, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var ue *domain.UnauthorizedError
	if errors.As(err, &ue) {
		return http.StatusUnauthorized, ue.Message()
	}

	switch {
	case errors.Is(err, domain.ErrOriginRejected):
		return http.StatusForbidden, "Not allowed by CORS"
	case errors.Is(err, domain.ErrForbidden):
		metrics.ForbiddenTotal.Inc()
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, domain.ErrServerMisconfigured):
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("server misconfigured")
		return http.StatusInternalServerError, "Server misconfigured"
	case errors.Is(err, domain.ErrInvalidID):
		return http.StatusBadRequest, "Invalid id"
	case errors.Is(err, domain.ErrInvalidAvatar):
		return http.StatusBadRequest, "Invalid image format"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, "Wrong credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrListingNotFound):
		return http.StatusNotFound, "Listing not found"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "User already exists"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Internal server error"
}
