package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront/api/controllers"
	"github.com/angelmondragon/storefront/api/middleware"
	"github.com/angelmondragon/storefront/pkg/config"
	"github.com/angelmondragon/storefront/pkg/logger"
)

// NewRouter wires the kiosk API. gatherer may be nil, in which case /metrics is not
// mounted. readiness lists the dependencies /health/ready probes.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	storefrontSvc controllers.StorefrontService,
	gatherer prometheus.Gatherer,
	readiness map[string]controllers.Pinger,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if cfg.Metrics.Enabled && gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/storefront", controllers.StorefrontView(storefrontSvc, logg))

		r.Route("/catalog", func(r chi.Router) {
			r.Post("/refresh", controllers.CatalogRefresh(storefrontSvc, logg))
			r.Put("/category", controllers.CatalogCategory(storefrontSvc, logg))
			r.Put("/search", controllers.CatalogSearch(storefrontSvc, logg))
		})

		r.Route("/cart/items", func(r chi.Router) {
			r.Post("/", controllers.CartAddItem(storefrontSvc, logg))
			r.Post("/{productId}/quantity", controllers.CartChangeQuantity(storefrontSvc, logg))
			r.Delete("/{productId}", controllers.CartRemoveItem(storefrontSvc, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", controllers.CheckoutOpen(storefrontSvc, logg))
			r.Put("/fields/{field}", controllers.CheckoutField(storefrontSvc, logg))
			r.Post("/shipping", controllers.CheckoutShipping(storefrontSvc, logg))
			r.Post("/back", controllers.CheckoutBack(storefrontSvc, logg))
			r.Post("/order", controllers.CheckoutPlaceOrder(storefrontSvc, logg))
			r.Post("/continue", controllers.CheckoutContinue(storefrontSvc, logg))
		})
	})

	return r
}
