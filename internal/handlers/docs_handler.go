package handlers

import "github.com/gofiber/fiber/v2"

type endpointDoc struct {
	Method       string `json:"method"`
	Path         string `json:"path"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
}

var endpoints = []endpointDoc{
	{"POST", "/api/auth", "Register a new user", false},
	{"PUT", "/api/auth", "Login existing user", false},
	{"PUT", "/api/auth/:userId", "Update user", true},
	{"DELETE", "/api/auth", "Logout a user", true},
	{"GET", "/api/franchise", "List all franchises", true},
	{"GET", "/api/franchise/:userId", "List a user's franchises", true},
	{"POST", "/api/franchise", "Create a new franchise", true},
	{"DELETE", "/api/franchise/:franchiseId", "Delete a franchise", true},
	{"POST", "/api/franchise/:franchiseId/store", "Create a new franchise store", true},
	{"DELETE", "/api/franchise/:franchiseId/store/:storeId", "Delete a store", true},
	{"PUT", "/api/order/menu", "Add an item to the menu", true},
	{"GET", "/api/order/menu", "Get the pizza menu", false},
	{"POST", "/api/order", "Create an order for the authenticated user", true},
	{"GET", "/api/order", "Get the orders for the authenticated user", true},
}

type DocsHandler struct {
	version string
}

func NewDocsHandler(version string) *DocsHandler {
	return &DocsHandler{version: version}
}

func (h *DocsHandler) Docs(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version":   h.version,
		"endpoints": endpoints,
	})
}
