package router

import (
	"time"

	"payexsync/config"
	"payexsync/handler"
	"payexsync/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/patrickmn/go-cache"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.elastic.co/apm/module/apmfiber"
)

// SetupRoutes setup router api
func SetupRoutes(app *fiber.App, h *handler.Handler) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api", logger.New())
	api.Use(apmfiber.Middleware())
	api.Use(middleware.TrackMetrics())
	api.Get("/health", handler.Health)

	limiter := cache.New(time.Minute, 5*time.Minute)
	payex := api.Group("/payex")
	payex.Post("/ssn",
		middleware.RateLimit(limiter, config.ConfigInt("SSN_RATE_LIMIT", 10), time.Minute),
		h.ProcessSSN)

	orders := api.Group("/orders", middleware.WebhookAuth())
	orders.Post("/:id/transition", h.OrderTransition)

	user := api.Group("/user")
	user.Post("/login", h.Login)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminOnly(false))
	admin.Get("/notices", h.GetNotices)
	admin.Get("/transactions/:orderId", h.GetTransaction)
	admin.Get("/reports/authorizations", h.AuthorizationReport)
}
