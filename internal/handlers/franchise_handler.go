package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/slicehub/pizza-service/internal/dto"
	"github.com/slicehub/pizza-service/internal/middleware"
	"github.com/slicehub/pizza-service/internal/services"
	"github.com/slicehub/pizza-service/internal/store"
)

type FranchiseHandler struct {
	franchiseService *services.FranchiseService
}

func NewFranchiseHandler(franchiseService *services.FranchiseService) *FranchiseHandler {
	return &FranchiseHandler{franchiseService: franchiseService}
}

// List handles GET /api/franchise. Readable by any authenticated user.
func (h *FranchiseHandler) List(c *fiber.Ctx) error {
	franchises, err := h.franchiseService.List()
	if err != nil {
		return err
	}
	return c.JSON(franchises)
}

// ListForUser handles GET /api/franchise/:userId.
func (h *FranchiseHandler) ListForUser(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid user id")
	}

	franchises, err := h.franchiseService.ListForUser(principal, userID)
	if err != nil {
		return err
	}
	return c.JSON(franchises)
}

// Create handles POST /api/franchise (admin only).
func (h *FranchiseHandler) Create(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req dto.CreateFranchiseRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	adminEmails := make([]string, 0, len(req.Admins))
	for _, a := range req.Admins {
		adminEmails = append(adminEmails, a.Email)
	}

	franchise, err := h.franchiseService.Create(principal, req.Name, adminEmails)
	if err != nil {
		if errors.Is(err, services.ErrCreateFranchiseDenied) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		if errors.Is(err, services.ErrFranchiseNameRequired) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "unknown admin user")
		}
		return err
	}

	return c.JSON(franchise)
}

// Delete handles DELETE /api/franchise/:franchiseId (admin only).
func (h *FranchiseHandler) Delete(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	franchiseID, err := uuid.Parse(c.Params("franchiseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid franchise id")
	}

	if err := h.franchiseService.Delete(principal, franchiseID); err != nil {
		if errors.Is(err, services.ErrDeleteFranchiseDenied) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "unknown franchise")
		}
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "franchise deleted"})
}

// CreateStore handles POST /api/franchise/:franchiseId/store.
func (h *FranchiseHandler) CreateStore(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	franchiseID, err := uuid.Parse(c.Params("franchiseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid franchise id")
	}

	var req dto.CreateStoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	st, err := h.franchiseService.CreateStore(principal, franchiseID, req.Name)
	if err != nil {
		if errors.Is(err, services.ErrCreateStoreDenied) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "unknown franchise")
		}
		return err
	}

	return c.JSON(st)
}

// DeleteStore handles DELETE /api/franchise/:franchiseId/store/:storeId.
func (h *FranchiseHandler) DeleteStore(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	franchiseID, err := uuid.Parse(c.Params("franchiseId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid franchise id")
	}
	storeID, err := uuid.Parse(c.Params("storeId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid store id")
	}

	if err := h.franchiseService.DeleteStore(principal, franchiseID, storeID); err != nil {
		if errors.Is(err, services.ErrDeleteStoreDenied) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "unknown store")
		}
		return err
	}

	return c.JSON(dto.MessageResponse{Message: "store deleted"})
}
