package handler

import "github.com/estateview/realty-api/internal/core/domain"

type signupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type signinRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type googleRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Photo string `json:"photo" validate:"omitempty,url"`
	// Role may only request seller; anything else signs up as a buyer.
	Role string `json:"role" validate:"omitempty,oneof=buyer seller"`
}

type updateProfileRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Email    string `json:"email"    validate:"required,email"`
	Phone    string `json:"phone"    validate:"omitempty,max=32"`
}

type avatarRequest struct {
	Avatar string `json:"avatar" validate:"required,startswith=data:image"`
}

type userResponse struct {
	Success bool         `json:"success"`
	Data    *domain.User `json:"data"`
	Token   string       `json:"token,omitempty"`
}

type buyingsResponse struct {
	Success bool             `json:"success"`
	Data    []*domain.Buying `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// errorResponse documents the failure envelope written by the API error handler.
type errorResponse struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Message string `json:"message"`
}
