package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumafood/storefront-api/pkg/logger"
	"github.com/lumafood/storefront-api/pkg/metrics"
	"github.com/lumafood/storefront-api/pkg/redis"

	"github.com/lumafood/storefront-api/api/controllers"
	"github.com/lumafood/storefront-api/api/middleware"
	"github.com/lumafood/storefront-api/internal/checkout"
	"github.com/lumafood/storefront-api/internal/prices"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Logger         *logger.Logger
	Metrics        *metrics.HTTPMetrics
	Registry       *prometheus.Registry
	Cache          *redis.Client
	Prices         prices.Service
	Checkout       checkout.Service
	AllowedOrigins []string
}

// NewRouter wires the storefront API routes.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer(deps.Logger))
	r.Use(middleware.RequestID(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	r.Use(middleware.Metrics(deps.Metrics))
	r.Use(middleware.CORS(deps.AllowedOrigins))

	r.Get("/ping", controllers.Ping())
	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive())
		if deps.Cache != nil {
			r.Get("/ready", controllers.HealthReady(deps.Cache, deps.Logger))
		} else {
			r.Get("/ready", controllers.HealthReady(nil, deps.Logger))
		}
	})

	if deps.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Get("/prices", controllers.Prices(deps.Prices, deps.Logger))

	checkoutHandler := controllers.CreateCheckoutSession(deps.Checkout, deps.Logger)
	r.Post("/checkout", checkoutHandler)
	// Kept for storefront builds that still post to the legacy function path.
	r.Post("/api/create-checkout-session", checkoutHandler)

	return r
}
