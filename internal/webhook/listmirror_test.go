package webhook

import (
	"errors"
	"net/http"
	"net/url"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"go.miloapis.com/email-provider-mailchimp/pkg/mailchimp"
)

var _ = Describe("ListMirrorWebhook", func() {
	const (
		secret   = "s3cret"
		sourceID = "source-list"
		mirrorID = "mirror-list"
	)

	var (
		api *fakeAPI
		wh  *Webhook
	)

	BeforeEach(func() {
		api = &fakeAPI{}
		wh = NewListMirrorWebhook(api, mirrorID, secret)
	})

	It("subscribes new members without confirmation", func() {
		code := deliver(wh, secret, url.Values{
			"type":                           {"subscribe"},
			"data[list_id]":                  {sourceID},
			"data[email]":                    {"a@b.c"},
			"data[email_type]":               {"text"},
			"data[merges][EMAIL]":            {"a@b.c"},
			"data[merges][FNAME]":            {"Ada"},
			"data[merges][GROUPINGS][0][id]": {"1"},
		})
		Expect(code).To(Equal(http.StatusOK))

		calls := api.Calls()
		Expect(calls).To(HaveLen(1))
		Expect(calls[0].Method).To(Equal("Subscribe"))
		Expect(calls[0].ListID).To(Equal(mirrorID))
		Expect(calls[0].Email.Email).To(Equal("a@b.c"))

		opts := calls[0].Subscribe
		Expect(*opts.DoubleOptIn).To(BeFalse())
		Expect(opts.UpdateExisting).To(BeTrue())
		Expect(opts.EmailType).To(Equal("text"))
		Expect(opts.MergeVars.Fields).To(Equal(map[string]any{"FNAME": "Ada"}))
	})

	It("mirrors interest group changes from a profile update", func() {
		code := deliver(wh, secret, url.Values{
			"type":                               {"profile"},
			"data[list_id]":                      {sourceID},
			"data[email]":                        {"a@b.c"},
			"data[merges][EMAIL]":                {"a@b.c"},
			"data[merges][GROUPINGS][0][id]":     {"1"},
			"data[merges][GROUPINGS][0][name]":   {"Interests"},
			"data[merges][GROUPINGS][0][groups]": {"News, Events"},
		})
		Expect(code).To(Equal(http.StatusOK))

		calls := api.Calls()
		Expect(calls).To(HaveLen(1))
		Expect(calls[0].Method).To(Equal("UpdateMember"))
		Expect(calls[0].MergeVars.Fields).To(BeNil())
		Expect(calls[0].MergeVars.Groupings).To(Equal([]mailchimp.Grouping{
			{Name: "Interests", Groups: []string{"News", "Events"}},
		}))
	})

	It("unsubscribes quietly and deletes when asked to", func() {
		code := deliver(wh, secret, url.Values{
			"type":          {"unsubscribe"},
			"data[list_id]": {sourceID},
			"data[email]":   {"a@b.c"},
			"data[action]":  {"delete"},
		})
		Expect(code).To(Equal(http.StatusOK))

		calls := api.Calls()
		Expect(calls).To(HaveLen(1))
		Expect(calls[0].Method).To(Equal("Unsubscribe"))
		Expect(calls[0].Unsub.DeleteMember).To(BeTrue())
		Expect(*calls[0].Unsub.SendGoodbye).To(BeFalse())
		Expect(*calls[0].Unsub.SendNotify).To(BeFalse())
	})

	It("moves changed addresses", func() {
		code := deliver(wh, secret, url.Values{
			"type":            {"upemail"},
			"data[list_id]":   {sourceID},
			"data[old_email]": {"old@b.c"},
			"data[new_email]": {"new@b.c"},
		})
		Expect(code).To(Equal(http.StatusOK))

		calls := api.Calls()
		Expect(calls).To(HaveLen(1))
		Expect(calls[0].Method).To(Equal("UpdateMember"))
		Expect(calls[0].Email.Email).To(Equal("old@b.c"))
		Expect(calls[0].MergeVars.NewEmail).To(Equal("new@b.c"))
	})

	It("treats members missing from the mirror as done", func() {
		api.err = &mailchimp.Error{StatusCode: http.StatusInternalServerError, Name: mailchimp.ErrorNameNotSubscribed}
		code := deliver(wh, secret, url.Values{
			"type":          {"cleaned"},
			"data[list_id]": {sourceID},
			"data[email]":   {"a@b.c"},
		})
		Expect(code).To(Equal(http.StatusOK))
	})

	It("asks for redelivery when the API fails", func() {
		api.err = errors.New("connection reset")
		code := deliver(wh, secret, url.Values{
			"type":          {"subscribe"},
			"data[list_id]": {sourceID},
			"data[email]":   {"a@b.c"},
		})
		Expect(code).To(Equal(http.StatusInternalServerError))
	})

	It("asks for redelivery when the mirror list is missing", func() {
		api.err = &mailchimp.Error{StatusCode: http.StatusInternalServerError, Name: mailchimp.ErrorNameListDoesNotExist}
		code := deliver(wh, secret, url.Values{
			"type":          {"unsubscribe"},
			"data[list_id]": {sourceID},
			"data[email]":   {"a@b.c"},
		})
		Expect(code).To(Equal(http.StatusInternalServerError))
	})

	It("ignores events about the mirror list and campaigns", func() {
		Expect(deliver(wh, secret, url.Values{
			"type":          {"subscribe"},
			"data[list_id]": {mirrorID},
			"data[email]":   {"a@b.c"},
		})).To(Equal(http.StatusOK))
		Expect(deliver(wh, secret, url.Values{
			"type":          {"campaign"},
			"data[list_id]": {sourceID},
			"data[id]":      {"c1"},
		})).To(Equal(http.StatusOK))
		Expect(api.Calls()).To(BeEmpty())
	})

	It("rejects member events without an email", func() {
		Expect(deliver(wh, secret, url.Values{
			"type":          {"subscribe"},
			"data[list_id]": {sourceID},
		})).To(Equal(http.StatusBadRequest))
	})
})

var _ = Describe("mergeVarsFromEvent", func() {
	It("skips EMAIL and groupings without groups", func() {
		mv := mergeVarsFromEvent(map[string]string{"EMAIL": "a@b.c", "LNAME": "L", "GROUPINGS.0.name": "x"})
		Expect(mv.Fields).To(Equal(map[string]any{"LNAME": "L"}))
		Expect(mv.Groupings).To(BeNil())
		Expect(mergeVarsFromEvent(map[string]string{"EMAIL": "a@b.c"})).To(BeNil())
	})

	It("rebuilds groupings by name in index order", func() {
		mv := mergeVarsFromEvent(map[string]string{
			"GROUPINGS.1.id":     "9",
			"GROUPINGS.1.name":   "Topics",
			"GROUPINGS.1.groups": "Go, Ops\\, SRE",
			"GROUPINGS.0.id":     "7",
			"GROUPINGS.0.name":   "Plan",
			"GROUPINGS.0.groups": "",
			"GROUPINGS.2.id":     "3",
			"GROUPINGS.2.groups": "Beta",
			"GROUPINGS.x.name":   "ignored",
		})
		Expect(mv.Fields).To(BeNil())
		Expect(mv.Groupings).To(Equal([]mailchimp.Grouping{
			{Name: "Plan", Groups: []string{}},
			{Name: "Topics", Groups: []string{"Go", "Ops, SRE"}},
			{ID: 3, Groups: []string{"Beta"}},
		}))
	})
})
