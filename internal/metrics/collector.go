// Package metrics is the service's observability surface: an injectable
// prometheus collector constructed explicitly at startup, never mutated
// at import time. Tests can build one without side effects.
package metrics

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

type Collector struct {
	registry *prometheus.Registry
	interval time.Duration
	done     chan struct{}

	RequestsByMethod *prometheus.CounterVec
	AuthAttempts     *prometheus.CounterVec
	ActiveSessions   prometheus.Gauge
	PizzasSold       prometheus.Counter
	PizzaFailures    prometheus.Counter
	PizzaRevenue     prometheus.Counter
	EndpointLatency  *prometheus.HistogramVec
	FactoryLatency   prometheus.Histogram
	cpuUsage         prometheus.Gauge
	memoryUsage      prometheus.Gauge
}

func NewCollector(interval time.Duration) *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		interval: interval,
		done:     make(chan struct{}),

		RequestsByMethod: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pizza_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method"}),
		AuthAttempts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "pizza_auth_attempts_total",
			Help: "Total number of authentication attempts",
		}, []string{"result"}),
		ActiveSessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pizza_active_sessions",
			Help: "Number of currently active user sessions",
		}),
		PizzasSold: factory.NewCounter(prometheus.CounterOpts{
			Name: "pizza_sold_total",
			Help: "Total number of pizzas sold",
		}),
		PizzaFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "pizza_creation_failures_total",
			Help: "Total number of failed factory fulfillments",
		}),
		PizzaRevenue: factory.NewCounter(prometheus.CounterOpts{
			Name: "pizza_revenue_total",
			Help: "Cumulative revenue from fulfilled orders",
		}),
		EndpointLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pizza_endpoint_latency_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		FactoryLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "pizza_factory_latency_seconds",
			Help:    "Duration of factory fulfillment round trips in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		cpuUsage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pizza_cpu_usage_percent",
			Help: "Host CPU usage percentage",
		}),
		memoryUsage: factory.NewGauge(prometheus.GaugeOpts{
			Name: "pizza_memory_usage_percent",
			Help: "Host memory usage percentage",
		}),
	}
}

// Start begins the periodic system sampler. Sampler failures are logged
// and never affect request handling.
func (c *Collector) Start() {
	go func() {
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.sampleSystem()
			case <-c.done:
				return
			}
		}
	}()
}

func (c *Collector) Stop() {
	close(c.done)
}

func (c *Collector) sampleSystem() {
	if percentages, err := cpu.Percent(0, false); err == nil && len(percentages) > 0 {
		c.cpuUsage.Set(percentages[0])
	} else if err != nil {
		slog.Debug("cpu sample failed", "error", err)
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		c.memoryUsage.Set(vm.UsedPercent)
	} else {
		slog.Debug("memory sample failed", "error", err)
	}
}

// Handler serves the collector's registry in prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) ObserveRequest(method, path string, status int, duration time.Duration) {
	c.RequestsByMethod.WithLabelValues(method).Inc()
	c.EndpointLatency.WithLabelValues(method, path, statusLabel(status)).Observe(duration.Seconds())
}

func (c *Collector) RecordAuthAttempt(success bool) {
	if success {
		c.AuthAttempts.WithLabelValues("success").Inc()
	} else {
		c.AuthAttempts.WithLabelValues("failure").Inc()
	}
}

func (c *Collector) SessionOpened() {
	c.ActiveSessions.Inc()
}

func (c *Collector) SessionClosed() {
	c.ActiveSessions.Dec()
}

func (c *Collector) RecordOrderSold(pizzas int, revenue float64) {
	c.PizzasSold.Add(float64(pizzas))
	c.PizzaRevenue.Add(revenue)
}

func (c *Collector) RecordOrderFailure() {
	c.PizzaFailures.Inc()
}

func (c *Collector) ObserveFactoryLatency(duration time.Duration) {
	c.FactoryLatency.Observe(duration.Seconds())
}

func statusLabel(status int) string {
	return strconv.Itoa(status)
}
