package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/slicehub/pizza-service/internal/dto"
	"github.com/slicehub/pizza-service/internal/factory"
	"github.com/slicehub/pizza-service/internal/middleware"
	"github.com/slicehub/pizza-service/internal/models"
	"github.com/slicehub/pizza-service/internal/services"
	"github.com/slicehub/pizza-service/internal/store"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// AddMenuItem handles PUT /api/order/menu (admin only) and returns the
// full updated menu.
func (h *OrderHandler) AddMenuItem(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req dto.AddMenuItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Title == "" || req.Price < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "menu item requires a title and a non-negative price")
	}

	item := models.MenuItem{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Price:       req.Price,
	}
	menu, err := h.orderService.AddMenuItem(principal, &item)
	if err != nil {
		if errors.Is(err, services.ErrAddMenuItemDenied) {
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		}
		return err
	}

	return c.JSON(menu)
}

// GetMenu handles GET /api/order/menu. Unauthenticated read.
func (h *OrderHandler) GetMenu(c *fiber.Ctx) error {
	menu, err := h.orderService.Menu()
	if err != nil {
		return err
	}
	return c.JSON(menu)
}

// CreateOrder handles POST /api/order.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	items := make([]services.OrderItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, services.OrderItemRequest{MenuID: item.MenuID})
	}

	order, fulfillmentToken, err := h.orderService.CreateOrder(principal, req.FranchiseID, req.StoreID, items)
	if err != nil {
		var ferr *factory.FulfillmentError
		if errors.As(err, &ferr) {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.OrderFailureResponse{
				Message:   "Failed to fulfill order at factory",
				ReportURL: ferr.ReportURL,
			})
		}
		if errors.Is(err, services.ErrEmptyOrder) {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if errors.Is(err, store.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "unknown store or menu item")
		}
		return err
	}

	return c.JSON(dto.CreateOrderResponse{Order: order, JWT: fulfillmentToken})
}

// GetOrders handles GET /api/order and returns the diner's orders in
// creation order.
func (h *OrderHandler) GetOrders(c *fiber.Ctx) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	orders, err := h.orderService.OrdersForDiner(principal.ID)
	if err != nil {
		return err
	}

	return c.JSON(dto.OrdersResponse{DinerID: principal.ID, Orders: orders})
}
