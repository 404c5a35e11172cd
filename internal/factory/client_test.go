package factory

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/slicehub/pizza-service/internal/config"
	"github.com/slicehub/pizza-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() *models.Order {
	return &models.Order{
		ID: uuid.New(),
		Items: []models.OrderItem{
			{MenuID: uuid.New(), Description: "Veggie", Price: 0.05},
		},
	}
}

func testClient(url string, timeout time.Duration) *Client {
	return NewClient(&config.Config{
		FactoryURL:     url,
		FactoryAPIKey:  "test-api-key",
		FactoryTimeout: timeout,
	})
}

func TestFulfillSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload struct {
			Diner Diner        `json:"diner"`
			Order models.Order `json:"order"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "diner@test.com", payload.Diner.Email)
		assert.Len(t, payload.Order.Items, 1)

		json.NewEncoder(w).Encode(map[string]string{"jwt": "factory-proof"})
	}))
	defer srv.Close()

	jwt, err := testClient(srv.URL, time.Second).Fulfill(Diner{ID: uuid.NewString(), Name: "d", Email: "diner@test.com"}, testOrder())
	require.NoError(t, err)
	assert.Equal(t, "factory-proof", jwt)
}

func TestFulfillFailureCarriesReportURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"reportUrl": "https://factory.test/report/42"})
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, time.Second).Fulfill(Diner{}, testOrder())
	var ferr *FulfillmentError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, "https://factory.test/report/42", ferr.ReportURL)
	assert.Equal(t, "failed to fulfill order at factory", ferr.Error())
}

func TestFulfillTransportErrorIsFactoryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := testClient(srv.URL, time.Second).Fulfill(Diner{}, testOrder())
	var ferr *FulfillmentError
	require.ErrorAs(t, err, &ferr)
	assert.Empty(t, ferr.ReportURL)
}

func TestFulfillTimeoutIsFactoryFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL, 50*time.Millisecond).Fulfill(Diner{}, testOrder())
	var ferr *FulfillmentError
	require.ErrorAs(t, err, &ferr)
}
