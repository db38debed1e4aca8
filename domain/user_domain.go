package domain

import "errors"

var (
	ErrMissingCredentials = errors.New("email and password required")
	ErrEmailExists        = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

type (
	SignupRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
		FullName string `json:"full_name"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	UpdateProfileRequest struct {
		FullName string   `json:"full_name"`
		Age      *int     `json:"age"`
		Height   *float64 `json:"height"`
		Weight   *float64 `json:"weight"`
		Gender   string   `json:"gender"`
	}

	UserResponse struct {
		Email    string   `json:"email"`
		FullName string   `json:"full_name"`
		Age      *int     `json:"age"`
		Height   *float64 `json:"height"`
		Weight   *float64 `json:"weight"`
		Gender   string   `json:"gender"`
	}
)
