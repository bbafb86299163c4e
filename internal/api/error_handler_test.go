package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/estateview/realty-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"token missing", domain.NewUnauthorized(domain.ReasonTokenMissing), http.StatusUnauthorized, "Unauthorized: token missing"},
		{"token invalid", domain.NewUnauthorized(domain.ReasonTokenInvalid), http.StatusUnauthorized, "Unauthorized: token invalid"},
		{"forbidden", fmt.Errorf("delete: %w", domain.ErrForbidden), http.StatusForbidden, "Forbidden"},
		{"origin", domain.ErrOriginRejected, http.StatusForbidden, "Not allowed by CORS"},
		{"misconfigured", fmt.Errorf("%w: secret unset", domain.ErrServerMisconfigured), http.StatusInternalServerError, "Server misconfigured"},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest, "Invalid id"},
		{"not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"exists", domain.ErrUserExists, http.StatusConflict, "User already exists"},
		{"wrong password", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Wrong credentials"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "email is required"), http.StatusBadRequest, "email is required"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "Internal server error"},
	}

	handler := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handler(tt.err, c)

			if rec.Code != tt.code {
				t.Fatalf("expected %d, got %d", tt.code, rec.Code)
			}
			body := decodeError(t, rec)
			if body.Success || body.Status != tt.code || body.Message != tt.message {
				t.Fatalf("unexpected envelope: %+v", body)
			}
		})
	}
}

func TestHTTPErrorHandler_Committed(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.NoContent(http.StatusAccepted)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrForbidden, c)

	if rec.Code != http.StatusAccepted || rec.Body.Len() != 0 {
		t.Fatalf("committed response must not be rewritten")
	}
}
