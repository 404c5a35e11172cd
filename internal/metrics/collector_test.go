package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderCountersAccumulate(t *testing.T) {
	c := NewCollector(time.Minute)

	c.RecordOrderSold(2, 0.10)
	c.RecordOrderSold(3, 0.15)
	c.RecordOrderFailure()

	assert.Equal(t, 5.0, testutil.ToFloat64(c.PizzasSold))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.PizzaFailures))
	assert.InDelta(t, 0.25, testutil.ToFloat64(c.PizzaRevenue), 1e-9)
}

func TestAuthAttemptsSplitByOutcome(t *testing.T) {
	c := NewCollector(time.Minute)

	c.RecordAuthAttempt(true)
	c.RecordAuthAttempt(true)
	c.RecordAuthAttempt(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.AuthAttempts.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.AuthAttempts.WithLabelValues("failure")))
}

func TestActiveSessionsGauge(t *testing.T) {
	c := NewCollector(time.Minute)

	c.SessionOpened()
	c.SessionOpened()
	c.SessionClosed()
	assert.Equal(t, 1.0, testutil.ToFloat64(c.ActiveSessions))

	c.SessionClosed()
	assert.Equal(t, 0.0, testutil.ToFloat64(c.ActiveSessions))
}

func TestObserveRequestCountsByMethod(t *testing.T) {
	c := NewCollector(time.Minute)

	c.ObserveRequest("GET", "/api/order/menu", 200, 5*time.Millisecond)
	c.ObserveRequest("GET", "/api/order/menu", 200, 7*time.Millisecond)
	c.ObserveRequest("POST", "/api/auth", 401, 3*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.RequestsByMethod.WithLabelValues("GET")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.RequestsByMethod.WithLabelValues("POST")))
	// One latency series per distinct method/path/status combination.
	assert.Equal(t, 2, testutil.CollectAndCount(c.EndpointLatency))
}

func TestHandlerExposesRegisteredMetrics(t *testing.T) {
	c := NewCollector(time.Minute)
	c.RecordOrderSold(1, 0.05)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pizza_sold_total")
	assert.Contains(t, rec.Body.String(), "pizza_revenue_total")
}

func TestTwoCollectorsUseIsolatedRegistries(t *testing.T) {
	a := NewCollector(time.Minute)
	b := NewCollector(time.Minute)

	a.RecordOrderSold(4, 0.20)

	assert.Equal(t, 4.0, testutil.ToFloat64(a.PizzasSold))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.PizzasSold))
}

func TestStartStopSampler(t *testing.T) {
	c := NewCollector(10 * time.Millisecond)
	c.Start()
	time.Sleep(30 * time.Millisecond)
	c.Stop()
}
