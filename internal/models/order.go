package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderState tracks an order through the fulfillment pipeline.
// Fulfillment failure is a terminal, recorded state, not a rollback.
type OrderState string

const (
	OrderSubmitted         OrderState = "submitted"
	OrderFulfilled         OrderState = "fulfilled"
	OrderFulfillmentFailed OrderState = "fulfillment_failed"
)

type Order struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	DinerID     uuid.UUID   `gorm:"type:uuid;not null;index" json:"dinerId"`
	FranchiseID uuid.UUID   `gorm:"type:uuid;not null" json:"franchiseId"`
	StoreID     uuid.UUID   `gorm:"type:uuid;not null" json:"storeId"`
	State       OrderState  `gorm:"size:20;not null;default:'submitted'" json:"state"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`

	// Exactly one of these is set once the pipeline completes.
	FulfillmentToken string `gorm:"type:text" json:"fulfillmentToken,omitempty"`
	FailureReportURL string `gorm:"size:512" json:"reportUrl,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
}

// OrderItem is a value snapshot of a menu item taken at order time.
// Later menu price changes never alter past orders.
type OrderItem struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	MenuID      uuid.UUID `gorm:"type:uuid;not null" json:"menuId"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
}
