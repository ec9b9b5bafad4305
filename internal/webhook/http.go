package webhook

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"go.miloapis.com/email-provider-mailchimp/internal/observability"
	"go.miloapis.com/email-provider-mailchimp/pkg/mailchimp"
)

// maxBodyBytes bounds a delivery. Real ones are a few KiB.
const maxBodyBytes = 1 << 20

// Webhook receives MailChimp list webhook deliveries. MailChimp validates a
// webhook URL with a GET when it is registered, then POSTs one form encoded
// event per change. The shared secret is carried in the "key" query parameter
// of the registered URL.
type Webhook struct {
	Handler  Handler
	Endpoint string
	secret   string
}

type Request struct {
	Event *mailchimp.WebhookEvent
}

type Response struct {
	HttpStatus int `json:"HttpStatus"`
}

type HandlerFunc func(context.Context, Request) Response

func (f HandlerFunc) Handle(ctx context.Context, req Request) Response {
	return f(ctx, req)
}

type Handler interface {
	Handle(context.Context, Request) Response
}

func OkResponse() Response                  { return Response{HttpStatus: http.StatusOK} }
func BadRequestResponse() Response          { return Response{HttpStatus: http.StatusBadRequest} }
func UnauthorizedResponse() Response        { return Response{HttpStatus: http.StatusUnauthorized} }
func MethodNotAllowedResponse() Response    { return Response{HttpStatus: http.StatusMethodNotAllowed} }
func InternalServerErrorResponse() Response { return Response{HttpStatus: http.StatusInternalServerError} }

// NewWebhook returns a receiver serving handler at endpoint.
func NewWebhook(handler Handler, endpoint, secret string) *Webhook {
	return &Webhook{Handler: handler, Endpoint: endpoint, secret: secret}
}

// WebhookVerificationError represents errors that can occur during webhook verification
type WebhookVerificationError struct {
	Code    string
	Message string
	Err     error
}

func (e *WebhookVerificationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *WebhookVerificationError) Unwrap() error { return e.Err }

var (
	ErrMissingKey    = errors.New("missing webhook key")
	ErrMissingSecret = errors.New("webhook secret is not configured")
	ErrInvalidKey    = errors.New("invalid webhook key")
)

// verifyWebhook checks the key query parameter against the configured secret.
func verifyWebhook(r *http.Request, secret string) error {
	if secret == "" {
		return &WebhookVerificationError{
			Code:    "MISSING_SECRET",
			Message: "Webhook secret is not configured",
			Err:     ErrMissingSecret,
		}
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		return &WebhookVerificationError{
			Code:    "MISSING_KEY",
			Message: "Missing key query parameter",
			Err:     ErrMissingKey,
		}
	}

	if subtle.ConstantTimeCompare([]byte(key), []byte(secret)) != 1 {
		return &WebhookVerificationError{
			Code:    "INVALID_KEY",
			Message: "Invalid key",
			Err:     ErrInvalidKey,
		}
	}

	return nil
}

func knownEvent(t mailchimp.WebhookEventType) bool {
	switch t {
	case mailchimp.EventSubscribe, mailchimp.EventUnsubscribe, mailchimp.EventProfile,
		mailchimp.EventUpEmail, mailchimp.EventCleaned, mailchimp.EventCampaign:
		return true
	}
	return false
}

func (wh *Webhook) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logf.FromContext(r.Context()).WithName("mailchimp-http-webhook")
	log.V(1).Info("Handling request", "method", r.Method, "remoteAddr", r.RemoteAddr)

	eventType := "unknown"
	respond := func(response Response) {
		observability.WebhookEventsTotal.WithLabelValues(eventType, strconv.Itoa(response.HttpStatus)).Inc()
		wh.writeResponse(w, response)
	}

	// panic recovery
	defer func() {
		if rec := recover(); rec != nil {
			log.Error(nil, "Panic in webhook handler", "panic", rec)
			respond(InternalServerErrorResponse())
		}
	}()

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		// URL validation when the webhook is registered.
		wh.writeResponse(w, OkResponse())
		return
	case http.MethodPost:
	default:
		log.Info("Method not allowed", "method", r.Method)
		w.Header().Set("Allow", "GET, HEAD, POST")
		wh.writeResponse(w, MethodNotAllowedResponse())
		return
	}

	if err := verifyWebhook(r, wh.secret); err != nil {
		var verifyErr *WebhookVerificationError
		if errors.As(err, &verifyErr) {
			log.Error(err, "Webhook verification failed", "code", verifyErr.Code)
		} else {
			log.Error(err, "Webhook verification failed")
		}
		respond(UnauthorizedResponse())
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := r.ParseForm(); err != nil {
		log.Error(err, "Failed to parse webhook form")
		respond(BadRequestResponse())
		return
	}

	event, err := mailchimp.ParseWebhookEvent(r.PostForm)
	if err != nil {
		log.Error(err, "Failed to parse webhook event")
		respond(BadRequestResponse())
		return
	}

	if !knownEvent(event.Type) {
		log.Info("Unknown event type", "type", event.Type)
		respond(BadRequestResponse())
		return
	}
	eventType = string(event.Type)

	log.Info("Parsed event", "type", event.Type, "firedAt", event.FiredAt, "listID", event.Data.ListID)
	respond(wh.Handler.Handle(r.Context(), Request{Event: event}))
}

func (wh *Webhook) writeResponse(w http.ResponseWriter, response Response) {
	w.WriteHeader(response.HttpStatus)
}
