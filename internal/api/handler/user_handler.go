package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estateview/realty-api/internal/core/ports"
)

// UserHandler serves the account endpoints. Every route sits behind the
// session verifier; ownership is decided by the user service.
type UserHandler struct {
	users    ports.UserService
	sessions *SessionIssuer
}

func NewUserHandler(users ports.UserService, sessions *SessionIssuer) *UserHandler {
	return &UserHandler{users: users, sessions: sessions}
}

// GetUser returns a profile.
//
// @Summary      Get a user profile
// @Tags         user
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/user/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	if _, err := callerIdentity(c); err != nil {
		return err
	}

	user, err := h.users.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Data: user})
}

// UpdateUser edits the caller's own profile.
//
// @Summary      Update a user profile
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Param        id    path      string                true  "User id"
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/user/update/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.UpdateProfile(c.Request().Context(), caller, c.Param("id"), ports.ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Data: user})
}

// UploadAvatar replaces the caller's own profile picture.
//
// @Summary      Upload an avatar
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Param        id    path      string         true  "User id"
// @Param        body  body      avatarRequest  true  "data:image URL"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /api/user/upload/{id} [post]
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	var req avatarRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.users.UploadAvatar(c.Request().Context(), caller, c.Param("id"), req.Avatar)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Data: user})
}

// DeleteUser removes an account. The session cookie is cleared only when
// callers delete their own account.
//
// @Summary      Delete a user
// @Tags         user
// @Produce      json
// @Security     CookieAuth
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/user/delete/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	caller, err := callerIdentity(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	if err := h.users.DeleteAccount(c.Request().Context(), caller, id); err != nil {
		return err
	}

	if caller.SubjectID == id {
		h.sessions.ClearSession(c)
	}
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "User has been deleted"})
}
