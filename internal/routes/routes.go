package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/slicehub/pizza-service/internal/auth"
	"github.com/slicehub/pizza-service/internal/config"
	"github.com/slicehub/pizza-service/internal/handlers"
	"github.com/slicehub/pizza-service/internal/metrics"
	"github.com/slicehub/pizza-service/internal/middleware"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	tokens *auth.TokenService,
	collector *metrics.Collector,
	authHandler *handlers.AuthHandler,
	franchiseHandler *handlers.FranchiseHandler,
	orderHandler *handlers.OrderHandler,
	healthHandler *handlers.HealthHandler,
	docsHandler *handlers.DocsHandler,
) {
	// Prometheus exposition outside the /api rate limits.
	app.Get("/metrics", adaptor.HTTPHandler(collector.Handler()))

	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	if cfg.RateLimit {
		api.Use(limiter.New(limiter.Config{
			Max:               60,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		}))
	}

	api.Get("/health", healthHandler.Check)
	api.Get("/docs", docsHandler.Docs)

	// Bearer-token chain: signature check, then revocation check and
	// principal resolution.
	protected := []fiber.Handler{middleware.JWTProtected(cfg), middleware.LoadPrincipal(tokens)}

	// Auth endpoints get a stricter limit: 10 req/min per IP
	authLimiter := func(c *fiber.Ctx) error { return c.Next() }
	if cfg.RateLimit {
		authLimiter = limiter.New(limiter.Config{
			Max:               10,
			Expiration:        1 * time.Minute,
			LimiterMiddleware: limiter.SlidingWindow{},
			KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
		})
	}
	api.Post("/auth", authLimiter, authHandler.Register)
	api.Put("/auth", authLimiter, authHandler.Login)
	api.Put("/auth/:userId", append(protected, authHandler.UpdateUser)...)
	api.Delete("/auth", append(protected, authHandler.Logout)...)

	api.Get("/franchise", append(protected, franchiseHandler.List)...)
	api.Get("/franchise/:userId", append(protected, franchiseHandler.ListForUser)...)
	api.Post("/franchise", append(protected, franchiseHandler.Create)...)
	api.Delete("/franchise/:franchiseId", append(protected, franchiseHandler.Delete)...)
	api.Post("/franchise/:franchiseId/store", append(protected, franchiseHandler.CreateStore)...)
	api.Delete("/franchise/:franchiseId/store/:storeId", append(protected, franchiseHandler.DeleteStore)...)

	api.Get("/order/menu", orderHandler.GetMenu)
	api.Put("/order/menu", append(protected, orderHandler.AddMenuItem)...)
	api.Post("/order", append(protected, orderHandler.CreateOrder)...)
	api.Get("/order", append(protected, orderHandler.GetOrders)...)
}
