package services

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/slicehub/pizza-service/internal/auth"
	"github.com/slicehub/pizza-service/internal/factory"
	"github.com/slicehub/pizza-service/internal/metrics"
	"github.com/slicehub/pizza-service/internal/models"
	"github.com/slicehub/pizza-service/internal/store"
)

var (
	ErrAddMenuItemDenied = errors.New("unable to add menu item")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
)

// OrderItemRequest references a menu item by id; description and price
// are snapshotted from the live menu, never taken from the client.
type OrderItemRequest struct {
	MenuID uuid.UUID `json:"menuId"`
}

type OrderService struct {
	store     store.Store
	factory   *factory.Client
	collector *metrics.Collector
}

func NewOrderService(st store.Store, fc *factory.Client, collector *metrics.Collector) *OrderService {
	return &OrderService{store: st, factory: fc, collector: collector}
}

func (s *OrderService) AddMenuItem(p *auth.Principal, item *models.MenuItem) ([]models.MenuItem, error) {
	if !auth.CanAddMenuItem(p) {
		return nil, ErrAddMenuItemDenied
	}
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := s.store.AddMenuItem(item); err != nil {
		return nil, err
	}
	return s.store.GetMenu()
}

func (s *OrderService) Menu() ([]models.MenuItem, error) {
	return s.store.GetMenu()
}

// CreateOrder runs the order-to-fulfillment transaction: persist the
// order, then one synchronous factory round trip. A factory failure is
// recorded on the order and surfaced to the caller; the persisted order
// is never rolled back.
func (s *OrderService) CreateOrder(p *auth.Principal, franchiseID, storeID uuid.UUID, items []OrderItemRequest) (*models.Order, string, error) {
	if len(items) == 0 {
		return nil, "", ErrEmptyOrder
	}
	if _, err := s.store.GetStore(franchiseID, storeID); err != nil {
		return nil, "", err
	}

	order := models.Order{
		ID:          uuid.New(),
		DinerID:     p.ID,
		FranchiseID: franchiseID,
		StoreID:     storeID,
		State:       models.OrderSubmitted,
	}
	var total float64
	for _, req := range items {
		menuItem, err := s.store.GetMenuItem(req.MenuID)
		if err != nil {
			return nil, "", err
		}
		order.Items = append(order.Items, models.OrderItem{
			ID:          uuid.New(),
			MenuID:      menuItem.ID,
			Description: menuItem.Description,
			Price:       menuItem.Price,
		})
		total += menuItem.Price
	}

	if err := s.store.CreateOrder(&order); err != nil {
		return nil, "", err
	}

	diner := factory.Diner{ID: p.ID.String(), Name: p.Name, Email: p.Email}
	start := time.Now()
	fulfillmentToken, err := s.factory.Fulfill(diner, &order)
	s.collector.ObserveFactoryLatency(time.Since(start))

	if err != nil {
		var ferr *factory.FulfillmentError
		if !errors.As(err, &ferr) {
			ferr = &factory.FulfillmentError{}
		}
		order.State = models.OrderFulfillmentFailed
		order.FailureReportURL = ferr.ReportURL
		if updateErr := s.store.UpdateOrder(&order); updateErr != nil {
			slog.Error("failed to record fulfillment failure", "order_id", order.ID, "error", updateErr)
		}
		s.collector.RecordOrderFailure()
		return nil, "", ferr
	}

	order.State = models.OrderFulfilled
	order.FulfillmentToken = fulfillmentToken
	if err := s.store.UpdateOrder(&order); err != nil {
		return nil, "", err
	}
	s.collector.RecordOrderSold(len(order.Items), total)

	return &order, fulfillmentToken, nil
}

func (s *OrderService) OrdersForDiner(dinerID uuid.UUID) ([]models.Order, error) {
	return s.store.ListOrdersForDiner(dinerID)
}
