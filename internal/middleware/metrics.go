package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/slicehub/pizza-service/internal/metrics"
)

// TrackRequests feeds the metrics collector with per-request counters
// and latency observations. When a handler returns an error the app's
// ErrorHandler has not written the response yet, so the status is
// derived from the error rather than the response.
func TrackRequests(collector *metrics.Collector) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				status = fiberErr.Code
			}
		}

		collector.ObserveRequest(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
