package dto

import (
	"github.com/google/uuid"
	"github.com/slicehub/pizza-service/internal/models"
)

type AddMenuItemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

type OrderItemRef struct {
	MenuID uuid.UUID `json:"menuId"`
}

type CreateOrderRequest struct {
	FranchiseID uuid.UUID      `json:"franchiseId"`
	StoreID     uuid.UUID      `json:"storeId"`
	Items       []OrderItemRef `json:"items"`
}

type CreateOrderResponse struct {
	Order *models.Order `json:"order"`
	JWT   string        `json:"jwt"`
}

// OrderFailureResponse is the contract body for a failed factory
// fulfillment; the field name is part of the client contract.
type OrderFailureResponse struct {
	Message   string `json:"message"`
	ReportURL string `json:"reportPizzaCreationErrorToPizzaFactoryUrl"`
}

type OrdersResponse struct {
	DinerID uuid.UUID      `json:"dinerId"`
	Orders  []models.Order `json:"orders"`
}
