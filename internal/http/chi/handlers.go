package chi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/webhook-courier/delivery"
	"github.com/marcelsud/webhook-courier/metrics"
	"github.com/marcelsud/webhook-courier/queue"
	"github.com/marcelsud/webhook-courier/subscription"
)

// Deps carries everything the HTTP surface needs from the composition root
type Deps struct {
	Subscriptions subscription.UseCase
	// Resolver is the cache-aside lookup used on the ingest hot path
	Resolver subscription.Getter
	Producer queue.Producer
	Logs     delivery.LogReader
	// Metrics serves the Prometheus exposition; nil disables the route
	Metrics      http.Handler
	Instruments  *metrics.Instruments
	MaxBodyBytes int64
}

// Handlers sets up the API routes
func Handlers(deps Deps) *chi.Mux {
	logger := httplog.NewLogger("webhook-courier", httplog.Options{
		JSON: true,
	})

	r := chi.NewRouter()
	r.Use(httplog.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics)
	}

	// Ingestion: accept a payload and enqueue it for delivery
	r.Post("/ingest/{subscription_id}", postIngest(deps).ServeHTTP)

	// Subscription CRUD
	r.Route("/subscriptions", func(r chi.Router) {
		r.Get("/", listSubscriptions(deps.Subscriptions).ServeHTTP)
		r.Post("/", postSubscription(deps.Subscriptions).ServeHTTP)
		r.Get("/{id}", getSubscription(deps.Subscriptions).ServeHTTP)
		r.Patch("/{id}", patchSubscription(deps.Subscriptions).ServeHTTP)
		r.Delete("/{id}", deleteSubscription(deps.Subscriptions).ServeHTTP)
		r.Get("/{id}/attempts", listSubscriptionAttempts(deps.Logs).ServeHTTP)
	})

	// Status projection over delivery logs
	r.Get("/status/{webhook_id}", getWebhookStatus(deps.Logs).ServeHTTP)

	return r
}
