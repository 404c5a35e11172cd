package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/slicehub/pizza-service/internal/dto"
	"github.com/slicehub/pizza-service/internal/metrics"
	"github.com/slicehub/pizza-service/internal/middleware"
	"github.com/slicehub/pizza-service/internal/services"
	"github.com/slicehub/pizza-service/internal/store"
)

type AuthHandler struct {
	authService *services.AuthService
	collector   *metrics.Collector
}

func NewAuthHandler(authService *services.AuthService, collector *metrics.Collector) *AuthHandler {
	return &AuthHandler{authService: authService, collector: collector}
}

// Register handles POST /api/auth.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		h.collector.RecordAuthAttempt(false)
		if errors.Is(err, services.ErrMissingFields) || errors.Is(err, services.ErrEmailTaken) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return err
	}

	h.collector.RecordAuthAttempt(true)
	h.collector.SessionOpened()
	return c.JSON(dto.AuthResponse{User: user, Token: token})
}

// Login handles PUT /api/auth.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		h.collector.RecordAuthAttempt(false)
		if errors.Is(err, services.ErrMissingFields) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, services.ErrUnknownUser) {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return err
	}

	h.collector.RecordAuthAttempt(true)
	h.collector.SessionOpened()
	return c.JSON(dto.AuthResponse{User: user, Token: token})
}

// UpdateUser handles PUT /api/auth/:userId (self or admin).
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	targetID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.authService.UpdateUser(principal, targetID, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrUpdateUserDenied) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "unknown user")
		}
		return err
	}

	return c.JSON(user)
}

// Logout handles DELETE /api/auth.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(middleware.GetRawToken(c)); err != nil {
		return err
	}

	h.collector.SessionClosed()
	return c.JSON(dto.MessageResponse{Message: "logout successful"})
}
