package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mailchimp_api_request_duration_seconds",
			Help:    "Latency of MailChimp API calls by method and HTTP status",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "code"},
	)
	APIRequestsInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "mailchimp_api_requests_in_flight",
		Help: "MailChimp API calls currently in flight",
	})
	WebhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailchimp_webhook_events_total",
			Help: "Webhook deliveries by event type and response status",
		}, []string{"type", "code"},
	)
	MembersReconciled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailchimp_sync_members_total",
			Help: "Members changed by the list reconciler",
		}, []string{"action"},
	)
)

func init() {
	prometheus.MustRegister(APIRequestDuration, APIRequestsInFlight, WebhookEventsTotal, MembersReconciled)
}

func MetricsHandler() http.Handler { return promhttp.Handler() }
