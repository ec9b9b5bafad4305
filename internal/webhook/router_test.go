package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/go-logr/logr"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"go.miloapis.com/email-provider-mailchimp/pkg/mailchimp"
)

var _ = Describe("Router", func() {
	const secret = "s3cret"

	get := func(h http.Handler, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	It("serves the webhook at its endpoint", func() {
		var got *mailchimp.WebhookEvent
		wh := NewWebhook(HandlerFunc(func(ctx context.Context, req Request) Response {
			got = req.Event
			return OkResponse()
		}), "/hooks/list", secret)
		router := NewRouter(logr.Discard(), wh, nil)

		form := url.Values{"type": {"unsubscribe"}, "data[email]": {"a@b.c"}, "data[list_id]": {"l1"}}
		Expect(deliver(router, secret, form)).To(Equal(http.StatusNotFound))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/hooks/list?key="+secret, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		router.ServeHTTP(rec, req)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(got).NotTo(BeNil())
		Expect(got.Type).To(Equal(mailchimp.EventUnsubscribe))
	})

	It("answers health and metrics", func() {
		router := NewRouter(logr.Discard(), NewAckWebhook(secret), nil)
		Expect(get(router, "/healthz").Code).To(Equal(http.StatusOK))
		Expect(get(router, "/readyz").Code).To(Equal(http.StatusOK))

		form := url.Values{"type": {"cleaned"}, "data[email]": {"a@b.c"}}
		Expect(deliver(router, secret, form)).To(Equal(http.StatusOK))

		rec := get(router, "/metrics")
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("mailchimp_webhook_events_total"))
	})

	It("reports not ready when the check fails", func() {
		router := NewRouter(logr.Discard(), NewAckWebhook(secret), func(*http.Request) error {
			return errors.New("ping failed")
		})
		Expect(get(router, "/readyz").Code).To(Equal(http.StatusInternalServerError))
		Expect(get(router, "/healthz").Code).To(Equal(http.StatusOK))
	})

	It("acknowledges deliveries without a mirror list", func() {
		router := NewRouter(logr.Discard(), NewAckWebhook(secret), nil)
		form := url.Values{"type": {"profile"}, "data[email]": {"a@b.c"}, "data[list_id]": {"l1"}}
		Expect(deliver(router, secret, form)).To(Equal(http.StatusOK))
		Expect(deliver(router, "wrong", form)).To(Equal(http.StatusUnauthorized))
	})
})
