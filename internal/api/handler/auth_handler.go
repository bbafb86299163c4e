package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estateview/realty-api/internal/core/domain"
	"github.com/estateview/realty-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	sessions    *SessionIssuer
}

func NewAuthHandler(authService ports.AuthService, sessions *SessionIssuer) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// SignupBuyer creates a buyer account and starts a session.
//
// @Summary      Register a buyer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/signup/buyer [post]
func (h *AuthHandler) SignupBuyer(c echo.Context) error {
	return h.signup(c, domain.RoleBuyer)
}

// SignupSeller creates a seller account and starts a session.
//
// @Summary      Register a seller
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /api/auth/signup/seller [post]
func (h *AuthHandler) SignupSeller(c echo.Context) error {
	return h.signup(c, domain.RoleSeller)
}

func (h *AuthHandler) signup(c echo.Context, role domain.Role) error {
	var req signupRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Signup(c.Request().Context(), ports.SignupInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     role,
	})
	if err != nil {
		return err
	}

	return h.respondWithSession(c, http.StatusCreated, user)
}

// Signin authenticates with email and password and starts a session.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return h.respondWithSession(c, http.StatusOK, user)
}

// Google signs in with a Google profile, creating the account on first use.
//
// @Summary      Google sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      googleRequest  true  "Google profile"
// @Success      200   {object}  userResponse
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/auth/google [post]
func (h *AuthHandler) Google(c echo.Context) error {
	var req googleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, created, err := h.authService.Google(c.Request().Context(), ports.GoogleInput{
		Username: req.Name,
		Email:    req.Email,
		Photo:    req.Photo,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return h.respondWithSession(c, status, user)
}

// Signout clears the session cookie.
//
// @Summary      Sign out
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /api/auth/signout [get]
func (h *AuthHandler) Signout(c echo.Context) error {
	h.sessions.ClearSession(c)
	return c.JSON(http.StatusOK, messageResponse{Success: true, Message: "User has been logged out"})
}

func (h *AuthHandler) respondWithSession(c echo.Context, status int, user *domain.User) error {
	token, err := h.sessions.IssueSession(c, user.ID, user.Role)
	if err != nil {
		return err
	}
	return c.JSON(status, userResponse{Success: true, Data: user, Token: token})
}
