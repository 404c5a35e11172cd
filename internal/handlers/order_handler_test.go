package handlers_test

import (
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// addMenuItem seeds a menu item as admin and returns its id.
func addMenuItem(t *testing.T, e *env, title, description string, price float64) string {
	t.Helper()

	_, adminToken := e.loginAdmin()
	status, menu := e.doList(http.MethodPut, "/api/order/menu", adminToken, map[string]any{
		"title": title, "description": description, "image": "pizza.png", "price": price,
	})
	require.Equal(t, http.StatusOK, status)

	for _, item := range menu {
		if item["title"] == title {
			return item["id"].(string)
		}
	}
	t.Fatalf("menu item %q not in returned menu", title)
	return ""
}

// orderDeps registers a franchisee, creates a franchise with one store
// and one menu item, and returns the pieces an order needs.
func orderDeps(t *testing.T, e *env) (franchiseID, storeID, menuID string) {
	t.Helper()

	e.register("pizza franchisee", "owner@test.com", "a")
	franchise := createFranchise(t, e, "pizzaPocket", "owner@test.com")
	franchiseID = franchise["id"].(string)

	_, ownerToken := e.login("owner@test.com", "a")
	status, created := e.do(http.MethodPost, "/api/franchise/"+franchiseID+"/store", ownerToken, map[string]string{
		"name": "SLC",
	})
	require.Equal(t, http.StatusOK, status)
	storeID = created["id"].(string)

	menuID = addMenuItem(t, e, "Veggie", "A garden of delight", 0.05)
	return franchiseID, storeID, menuID
}

func TestMenuIsPublic(t *testing.T) {
	e := newEnv(t, okFactory(t).URL)
	addMenuItem(t, e, "Veggie", "A garden of delight", 0.05)

	status, menu := e.doList(http.MethodGet, "/api/order/menu", "", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, menu, 1)
	assert.Equal(t, "Veggie", menu[0]["title"])
	assert.Equal(t, "A garden of delight", menu[0]["description"])
	assert.Equal(t, 0.05, menu[0]["price"])
}

func TestAddMenuItemRequiresAdmin(t *testing.T) {
	e := newEnv(t, okFactory(t).URL)
	_, dinerToken := e.register("pizza diner", "diner@test.com", "a")

	status, resp := e.do(http.MethodPut, "/api/order/menu", dinerToken, map[string]any{
		"title": "Student", "description": "No topping, no sauce", "price": 0.0001,
	})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "unable to add menu item", resp["message"])
}

func TestAddMenuItemReturnsFullMenu(t *testing.T) {
	e := newEnv(t, okFactory(t).URL)
	addMenuItem(t, e, "Veggie", "A garden of delight", 0.05)

	_, adminToken := e.loginAdmin()
	status, menu := e.doList(http.MethodPut, "/api/order/menu", adminToken, map[string]any{
		"title": "Pepperoni", "description": "Spicy treat", "price": 0.1,
	})
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, menu, 2)
}

func TestCreateOrderFulfilled(t *testing.T) {
	e := newEnv(t, okFactory(t).URL)
	franchiseID, storeID, menuID := orderDeps(t, e)
	_, dinerToken := e.register("pizza diner", "diner@test.com", "a")

	status, resp := e.do(http.MethodPost, "/api/order", dinerToken, map[string]any{
		"franchiseId": franchiseID,
		"storeId":     storeID,
		"items":       []map[string]string{{"menuId": menuID}},
	})
	require.Equal(t, http.StatusOK, status, "order failed: %v", resp)

	assert.Equal(t, "factory-proof", resp["jwt"])

	order, ok := resp["order"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "fulfilled", order["state"])
	assert.Equal(t, franchiseID, order["franchiseId"])
	assert.Equal(t, storeID, order["storeId"])

	items, ok := order["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, menuID, item["menuId"])
	assert.Equal(t, "A garden of delight", item["description"], "description comes from the menu, not the client")
	assert.Equal(t, 0.05, item["price"])

	assert.Equal(t, 1.0, testutil.ToFloat64(e.collector.PizzasSold))
	assert.InDelta(t, 0.05, testutil.ToFloat64(e.collector.PizzaRevenue), 1e-9)
}

func TestCreateOrderFactoryFailure(t *testing.T) {
	e := newEnv(t, failingFactory(t, "https://factory.test/report/7").URL)
	franchiseID, storeID, menuID := orderDeps(t, e)
	_, dinerToken := e.register("pizza diner", "diner@test.com", "a")

	status, resp := e.do(http.MethodPost, "/api/order", dinerToken, map[string]any{
		"franchiseId": franchiseID,
		"storeId":     storeID,
		"items":       []map[string]string{{"menuId": menuID}},
	})
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to fulfill order at factory", resp["message"])
	assert.Equal(t, "https://factory.test/report/7", resp["reportPizzaCreationErrorToPizzaFactoryUrl"])

	assert.Equal(t, 1.0, testutil.ToFloat64(e.collector.PizzaFailures))
	assert.Equal(t, 0.0, testutil.ToFloat64(e.collector.PizzasSold))

	// The order is kept in its failed state, report URL included.
	status, body := e.do(http.MethodGet, "/api/order", dinerToken, nil)
	require.Equal(t, http.StatusOK, status)
	orders, ok := body["orders"].([]any)
	require.True(t, ok)
	require.Len(t, orders, 1)
	failed := orders[0].(map[string]any)
	assert.Equal(t, "fulfillment_failed", failed["state"])
	assert.Equal(t, "https://factory.test/report/7", failed["reportUrl"])
}

func TestCreateOrderValidation(t *testing.T) {
	e := newEnv(t, okFactory(t).URL)
	franchiseID, storeID, menuID := orderDeps(t, e)
	_, dinerToken := e.register("pizza diner", "diner@test.com", "a")

	// No items.
	status, resp := e.do(http.MethodPost, "/api/order", dinerToken, map[string]any{
		"franchiseId": franchiseID,
		"storeId":     storeID,
		"items":       []map[string]string{},
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "order must contain at least one item", resp["message"])

	// Unknown menu item.
	status, resp = e.do(http.MethodPost, "/api/order", dinerToken, map[string]any{
		"franchiseId": franchiseID,
		"storeId":     storeID,
		"items":       []map[string]string{{"menuId": "60a1a6ea-44ed-4be5-a152-e9cfcbbd6845"}},
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "unknown store or menu item", resp["message"])

	// Store that belongs to no franchise of that id.
	status, resp = e.do(http.MethodPost, "/api/order", dinerToken, map[string]any{
		"franchiseId": franchiseID,
		"storeId":     "60a1a6ea-44ed-4be5-a152-e9cfcbbd6845",
		"items":       []map[string]string{{"menuId": menuID}},
	})
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "unknown store or menu item", resp["message"])
}

func TestGetOrdersReturnsOnlyOwnOrders(t *testing.T) {
	e := newEnv(t, okFactory(t).URL)
	franchiseID, storeID, menuID := orderDeps(t, e)

	orderBody := map[string]any{
		"franchiseId": franchiseID,
		"storeId":     storeID,
		"items":       []map[string]string{{"menuId": menuID}},
	}

	diner, dinerToken := e.register("pizza diner", "diner@test.com", "a")
	status, _ := e.do(http.MethodPost, "/api/order", dinerToken, orderBody)
	require.Equal(t, http.StatusOK, status)
	status, _ = e.do(http.MethodPost, "/api/order", dinerToken, orderBody)
	require.Equal(t, http.StatusOK, status)

	_, otherToken := e.register("other diner", "other@test.com", "a")
	status, _ = e.do(http.MethodPost, "/api/order", otherToken, orderBody)
	require.Equal(t, http.StatusOK, status)

	status, body := e.do(http.MethodGet, "/api/order", dinerToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, diner["id"], body["dinerId"])

	orders, ok := body["orders"].([]any)
	require.True(t, ok)
	require.Len(t, orders, 2)
	for _, o := range orders {
		order := o.(map[string]any)
		assert.Equal(t, diner["id"], order["dinerId"])
		assert.Equal(t, "fulfilled", order["state"])
		assert.NotEmpty(t, order["fulfillmentToken"])
	}
}
