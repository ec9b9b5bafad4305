package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ybbus/httpretry"
)

// InstrumentedTransport records every MailChimp call in APIRequestDuration.
// The operation label is the remote method taken from the request path, e.g.
// "lists/subscribe".
type InstrumentedTransport struct {
	Next http.RoundTripper
}

func (t *InstrumentedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	next := t.Next
	if next == nil {
		next = http.DefaultTransport
	}

	start := time.Now()
	APIRequestsInFlight.Inc()
	defer APIRequestsInFlight.Dec()

	resp, err := next.RoundTrip(req)

	code := "error"
	if err == nil {
		code = strconv.Itoa(resp.StatusCode)
	}
	APIRequestDuration.WithLabelValues(Operation(req.URL.Path), code).Observe(time.Since(start).Seconds())
	return resp, err
}

// Operation turns "/2.0/lists/subscribe.json" into "lists/subscribe".
func Operation(path string) string {
	path = strings.TrimSuffix(path, ".json")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) >= 2 {
		return parts[len(parts)-2] + "/" + parts[len(parts)-1]
	}
	return path
}

// RetryableStatus reports whether a response status is worth retrying.
// MailChimp signals rate limiting with 429 and maintenance with 5xx gateway
// errors; everything else is a real answer.
func RetryableStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// NewHTTPClient builds the client the commands hand to mailchimp.WithHTTPClient:
// instrumented, bounded by timeout and, when retries > 0, retrying transport
// errors and RetryableStatus responses with exponential backoff.
func NewHTTPClient(timeout time.Duration, retries int) *http.Client {
	client := &http.Client{
		Timeout:   timeout,
		Transport: &InstrumentedTransport{Next: http.DefaultTransport},
	}
	if retries <= 0 {
		return client
	}

	return httpretry.NewCustomClient(client,
		httpretry.WithMaxRetryCount(retries),
		httpretry.WithRetryPolicy(func(statusCode int, err error) bool {
			return err != nil || RetryableStatus(statusCode)
		}),
		httpretry.WithBackoffPolicy(httpretry.ExponentialBackoff(250*time.Millisecond, 5*time.Second, 100*time.Millisecond)),
	)
}
