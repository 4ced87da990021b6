package router

import (
	"net/http"

	"pantry/internal/handler"
	"pantry/internal/metrics"
	"pantry/internal/middleware"

	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers served by the router.
type Handlers struct {
	Index   *handler.IndexHandler
	Product *handler.ProductHandler
	Recipe  *handler.RecipeHandler
	Health  *handler.HealthHandler
}

// New creates a new HTTP router with all routes and middleware configured.
// limiter may be nil to disable rate limiting.
func New(h Handlers, limiter *middleware.RateLimiter, logger zerolog.Logger) http.Handler {
	mux := http.NewServeMux()

	// Catch-all: the landing page answers "/" and 404s everything else.
	mux.HandleFunc("/", h.Index.Index)

	mux.HandleFunc("/products", h.Product.List)
	mux.HandleFunc("/expired", h.Product.Expired)
	mux.HandleFunc("/expiring", h.Product.Expiring)
	mux.HandleFunc("/add-product", h.Product.Add)
	mux.HandleFunc("/delete-product", h.Product.Delete)

	mux.HandleFunc("/recipes", h.Recipe.List)
	mux.HandleFunc("/makeable", h.Recipe.Makeable)
	mux.HandleFunc("/add-recipe", h.Recipe.Add)
	mux.HandleFunc("/delete-recipe", h.Recipe.Delete)
	mux.HandleFunc("/make-recipe", h.Recipe.Cook)

	mux.HandleFunc("/health", h.Health.Check)
	mux.Handle("/metrics", metrics.Handler())

	// Apply middleware in order: RequestID -> Recovery -> Logging -> Metrics -> CORS -> RateLimit
	var handler http.Handler = mux
	if limiter != nil {
		handler = limiter.Handler(handler)
	}
	handler = middleware.CORS(handler)
	handler = metrics.InstrumentHandler(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	handler = middleware.RequestID(handler)

	return handler
}
