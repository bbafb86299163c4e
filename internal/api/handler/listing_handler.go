package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estateview/realty-api/internal/core/domain"
	"github.com/estateview/realty-api/internal/core/ports"
)

type ListingHandler struct {
	listings ports.ListingService
}

func NewListingHandler(listings ports.ListingService) *ListingHandler {
	return &ListingHandler{listings: listings}
}

// DeleteListing removes a listing owned by the caller, or any listing for admins.
//
// @Summary      Delete a listing
// @Tags         listing
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Param        id   path      string  true  "Listing id"
// @Success      200  {object}  messageResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/listing/delete/{id} [delete]
func (h *ListingHandler) DeleteListing(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.listings.DeleteListing(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "Listing has been deleted"})
}

// ListBuyings returns the offers made by a buyer.
//
// @Summary      List a buyer's offers
// @Tags         buying
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Param        id   path      string  true  "Buyer id"
// @Success      200  {object}  buyingsResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /api/buying/user/{id} [get]
func (h *ListingHandler) ListBuyings(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	buyings, err := h.listings.ListBuyings(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	if buyings == nil {
		buyings = []*domain.Buying{}
	}
	return c.JSON(http.StatusOK, buyingsResponse{Success: true, Data: buyings})
}
