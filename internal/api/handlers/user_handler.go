package handlers

import (
	"errors"
	"time"

	"nutrify-backend/domain"
	"nutrify-backend/internal/api/presenters"
	"nutrify-backend/pkg/user"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		Signup(c *fiber.Ctx) error
		Login(c *fiber.Ctx) error
		Logout(c *fiber.Ctx) error
		CheckAuth(c *fiber.Ctx) error
		UpdateProfile(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *userHandler) Signup(c *fiber.Ctx) error {
	req := new(domain.SignupRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.ErrInvalidBody)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.ErrMissingCredentials)
	}

	res, token, err := h.userService.Register(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrEmailExists) {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	setSessionCookie(c, token)
	return presenters.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"user": fiber.Map{
			"email":     res.Email,
			"full_name": res.FullName,
		},
	})
}

func (h *userHandler) Login(c *fiber.Ctx) error {
	req := new(domain.LoginRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.ErrInvalidBody)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.ErrMissingCredentials)
	}

	res, token, err := h.userService.Login(c.Context(), *req)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	setSessionCookie(c, token)
	return presenters.SuccessResponse(c, fiber.StatusOK, fiber.Map{"user": res})
}

func (h *userHandler) Logout(c *fiber.Ctx) error {
	clearSessionCookie(c)
	return presenters.SuccessResponse(c, fiber.StatusOK, nil)
}

// CheckAuth reports the current identity. It answers 200 either way;
// an expired or invalid cookie is simply "not authenticated".
func (h *userHandler) CheckAuth(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return c.JSON(fiber.Map{"authenticated": false})
	}

	res, err := h.userService.Profile(c.Context(), userID)
	if err != nil {
		return c.JSON(fiber.Map{"authenticated": false})
	}

	return c.JSON(fiber.Map{"authenticated": true, "user": res})
}

func (h *userHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	req := new(domain.UpdateProfileRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.ErrInvalidBody)
	}

	if err := h.userService.UpdateProfile(c.Context(), userID, *req); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.ErrUnauthorized)
		}
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, err)
	}

	return presenters.SuccessResponse(c, fiber.StatusOK, nil)
}

func setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     domain.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(7 * 24 * time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     domain.SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
