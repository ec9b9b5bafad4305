package webhook

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"go.miloapis.com/email-provider-mailchimp/pkg/mailchimp"
)

var _ = Describe("Webhook", func() {
	const secret = "s3cret"

	var (
		received []*mailchimp.WebhookEvent
		wh       *Webhook
	)

	BeforeEach(func() {
		received = nil
		wh = NewWebhook(HandlerFunc(func(_ context.Context, req Request) Response {
			received = append(received, req.Event)
			return OkResponse()
		}), DefaultEndpoint, secret)
	})

	It("answers the URL validation GET", func() {
		rec := httptest.NewRecorder()
		wh.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, DefaultEndpoint, nil))
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(received).To(BeEmpty())
	})

	It("rejects other methods", func() {
		rec := httptest.NewRecorder()
		wh.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, DefaultEndpoint, nil))
		Expect(rec.Code).To(Equal(http.StatusMethodNotAllowed))
		Expect(rec.Header().Get("Allow")).To(ContainSubstring(http.MethodPost))
	})

	DescribeTable("verifies the key",
		func(key string, want int) {
			Expect(deliver(wh, key, url.Values{"type": {"subscribe"}, "data[email]": {"a@b.c"}})).To(Equal(want))
		},
		Entry("matching key", secret, http.StatusOK),
		Entry("missing key", "", http.StatusUnauthorized),
		Entry("wrong key", "guess", http.StatusUnauthorized),
	)

	It("refuses every delivery when no secret is configured", func() {
		open := NewWebhook(wh.Handler, DefaultEndpoint, "")
		Expect(deliver(open, "", url.Values{"type": {"subscribe"}})).To(Equal(http.StatusUnauthorized))
	})

	It("parses and dispatches the event", func() {
		code := deliver(wh, secret, url.Values{
			"type":                {"profile"},
			"fired_at":            {"2024-05-01 10:00:00"},
			"data[list_id]":       {"list-1"},
			"data[email]":         {"a@b.c"},
			"data[merges][FNAME]": {"Ada"},
		})
		Expect(code).To(Equal(http.StatusOK))
		Expect(received).To(HaveLen(1))
		Expect(received[0].Type).To(Equal(mailchimp.EventProfile))
		Expect(received[0].Data.ListID).To(Equal("list-1"))
		Expect(received[0].Data.Merges).To(HaveKeyWithValue("FNAME", "Ada"))
	})

	It("rejects unknown and malformed events", func() {
		Expect(deliver(wh, secret, url.Values{"type": {"bounce"}})).To(Equal(http.StatusBadRequest))
		Expect(deliver(wh, secret, url.Values{"data[email]": {"a@b.c"}})).To(Equal(http.StatusBadRequest))
		Expect(deliver(wh, secret, url.Values{"type": {"cleaned"}, "fired_at": {"soon"}})).To(Equal(http.StatusBadRequest))
		Expect(received).To(BeEmpty())
	})

	It("turns a handler panic into a 500", func() {
		wh.Handler = HandlerFunc(func(context.Context, Request) Response {
			panic("boom")
		})
		Expect(deliver(wh, secret, url.Values{"type": {"campaign"}})).To(Equal(http.StatusInternalServerError))
	})
})

var _ = Describe("verifyWebhook", func() {
	It("returns typed errors", func() {
		req := httptest.NewRequest(http.MethodPost, DefaultEndpoint+"?key=nope", nil)
		err := verifyWebhook(req, "s3cret")

		var verifyErr *WebhookVerificationError
		Expect(errors.As(err, &verifyErr)).To(BeTrue())
		Expect(verifyErr.Code).To(Equal("INVALID_KEY"))
		Expect(errors.Is(err, ErrInvalidKey)).To(BeTrue())
	})
})
