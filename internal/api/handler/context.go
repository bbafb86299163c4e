package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/estateview/realty-api/internal/api/middleware"
	"github.com/estateview/realty-api/internal/core/domain"
)

// callerIdentity returns the identity attached by the session verifier. Its
// absence means the route was registered without the verifier, which is
// treated as a missing credential rather than a panic.
func callerIdentity(c echo.Context) (*domain.Identity, error) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		return nil, domain.NewUnauthorized(domain.ReasonTokenMissing)
	}
	return id, nil
}
