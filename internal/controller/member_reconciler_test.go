package controller

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"go.miloapis.com/email-provider-mailchimp/pkg/mailchimp"
)

var _ = Describe("MemberReconciler", func() {
	var (
		ctx  context.Context
		list *fakeList
		r    *MemberReconciler
	)

	BeforeEach(func() {
		ctx = context.Background()
		list = &fakeList{}
		r = &MemberReconciler{MailChimp: list, ListID: "list-1", PageSize: 2}
	})

	It("adds missing members and removes extra ones", func() {
		list.members = members("keep@b.c", "Extra@B.c", "also-keep@b.c")

		result, err := r.Reconcile(ctx, []DesiredMember{
			{Email: "KEEP@b.c"},
			{Email: "also-keep@b.c"},
			{Email: "new@b.c", MergeVars: map[string]any{"FNAME": "Ada"}},
		})
		Expect(err).NotTo(HaveOccurred())

		Expect(result.Existing).To(Equal(3))
		Expect(result.Added).To(Equal(1))
		Expect(result.Removed).To(Equal(1))
		Expect(result.Failed()).To(BeZero())

		Expect(list.subscribed).To(HaveLen(1))
		Expect(list.subscribed[0].Email.Email).To(Equal("new@b.c"))
		Expect(list.subscribed[0].MergeVars.Fields).To(HaveKeyWithValue("FNAME", "Ada"))
		Expect(*list.subOpts.DoubleOptIn).To(BeFalse())
		Expect(list.subOpts.UpdateExisting).To(BeTrue())

		Expect(list.unsubscribed).To(Equal([]mailchimp.EmailParameter{{Email: "Extra@B.c"}}))
		Expect(*list.unsubOpts.SendGoodbye).To(BeFalse())
		Expect(list.unsubOpts.DeleteMember).To(BeFalse())
	})

	It("pages through the current members", func() {
		list.members = members("a@b.c", "b@b.c", "c@b.c", "d@b.c", "e@b.c")

		_, err := r.Reconcile(ctx, nil)
		Expect(err).NotTo(HaveOccurred())

		Expect(list.pages).To(Equal([]mailchimp.Page{{Start: 0, Limit: 2}, {Start: 1, Limit: 2}, {Start: 2, Limit: 2}}))
		Expect(list.unsubscribed).To(HaveLen(5))
	})

	It("caps the page size at the API maximum", func() {
		r.PageSize = 500
		_, err := r.Reconcile(ctx, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(list.pages).To(Equal([]mailchimp.Page{{Start: 0, Limit: DefaultPageSize}}))
	})

	It("makes no calls when the list already matches", func() {
		list.members = members("a@b.c")

		result, err := r.Reconcile(ctx, []DesiredMember{{Email: " A@b.c "}, {Email: ""}})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Added + result.Removed).To(BeZero())
		Expect(list.subscribed).To(BeNil())
		Expect(list.unsubscribed).To(BeNil())
	})

	It("only reports the diff on a dry run", func() {
		r.DryRun = true
		list.members = members("old@b.c")

		result, err := r.Reconcile(ctx, []DesiredMember{{Email: "new@b.c"}})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Added).To(Equal(1))
		Expect(result.Removed).To(Equal(1))
		Expect(list.subscribed).To(BeNil())
		Expect(list.unsubscribed).To(BeNil())
	})

	It("deletes extra members when configured", func() {
		r.DeleteMember = true
		list.members = members("old@b.c")

		_, err := r.Reconcile(ctx, nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(list.unsubOpts.DeleteMember).To(BeTrue())
	})

	It("reports refused members without failing", func() {
		list.refused = []mailchimp.BatchError{{Email: mailchimp.EmailParameter{Email: "bad@b.c"}, Code: 502, Message: "Invalid Email Address"}}

		result, err := r.Reconcile(ctx, []DesiredMember{{Email: "bad@b.c"}, {Email: "good@b.c"}})
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Added).To(Equal(1))
		Expect(result.Failed()).To(Equal(1))
		Expect(result.Errors[0].Email.Email).To(Equal("bad@b.c"))
	})

	It("still removes members when subscribing fails", func() {
		list.members = members("old@b.c")
		list.subErr = errors.New("timeout")

		result, err := r.Reconcile(ctx, []DesiredMember{{Email: "new@b.c"}})
		Expect(err).To(MatchError(ContainSubstring("failed to subscribe 1 members")))
		Expect(result.Removed).To(Equal(1))
	})

	It("fails when the members cannot be listed", func() {
		list.listErr = fmt.Errorf("boom")

		_, err := r.Reconcile(ctx, []DesiredMember{{Email: "new@b.c"}})
		Expect(err).To(MatchError(ContainSubstring("failed to list members of list-1")))
		Expect(list.subscribed).To(BeNil())
	})
})
