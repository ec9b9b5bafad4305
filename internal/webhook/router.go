package webhook

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-logr/logr"
	"sigs.k8s.io/controller-runtime/pkg/healthz"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"go.miloapis.com/email-provider-mailchimp/internal/observability"
)

// NewAckWebhook logs every delivery and acknowledges it.
func NewAckWebhook(secret string) *Webhook {
	return NewWebhook(HandlerFunc(func(ctx context.Context, req Request) Response {
		event := req.Event
		logf.FromContext(ctx).Info("Received event",
			"type", event.Type, "listID", event.Data.ListID, "email", event.Subscriber().Email)
		return OkResponse()
	}), DefaultEndpoint, secret)
}

// NewRouter serves wh at wh.Endpoint next to /healthz, /readyz and /metrics.
// ready is the readiness check; nil means always ready.
func NewRouter(log logr.Logger, wh *Webhook, ready healthz.Checker) http.Handler {
	if ready == nil {
		ready = healthz.Ping
	}
	endpoint := wh.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(withLogger(log))

	r.Handle(endpoint, wh)
	r.Handle("/healthz", &healthz.CheckHandler{Checker: healthz.Ping})
	r.Handle("/readyz", &healthz.CheckHandler{Checker: ready})
	r.Handle("/metrics", observability.MetricsHandler())
	return r
}

// withLogger puts log, tagged with the request ID, into each request context.
func withLogger(log logr.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			l := log.WithValues("requestID", middleware.GetReqID(r.Context()))
			next.ServeHTTP(w, r.WithContext(logf.IntoContext(r.Context(), l)))
		})
	}
}
