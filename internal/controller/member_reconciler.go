package controller

import (
	"context"
	"fmt"
	"strings"

	utilerrors "k8s.io/apimachinery/pkg/util/errors"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/utils/ptr"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"go.miloapis.com/email-provider-mailchimp/internal/observability"
	"go.miloapis.com/email-provider-mailchimp/pkg/mailchimp"
)

// DefaultPageSize is the largest page GetAllMembersForList returns.
const DefaultPageSize = 100

// DesiredMember is one entry of the desired list membership.
type DesiredMember struct {
	Email     string         `json:"email"`
	EmailType string         `json:"emailType,omitempty"`
	MergeVars map[string]any `json:"mergeVars,omitempty"`
}

// ReconcileResult summarises one reconciliation pass.
type ReconcileResult struct {
	Existing int
	Added    int
	Updated  int
	Removed  int
	// Errors holds the members MailChimp refused, from both batch calls.
	Errors []mailchimp.BatchError
}

// Failed is the number of members that could not be changed.
func (r ReconcileResult) Failed() int {
	return len(r.Errors)
}

// MemberReconciler drives the subscribed members of a list toward a desired
// set. Members are matched by email, case-insensitively.
type MemberReconciler struct {
	MailChimp mailchimp.API
	ListID    string
	// PageSize is used when reading the current members; zero means
	// DefaultPageSize.
	PageSize int
	// DeleteMember removes extra members instead of unsubscribing them.
	DeleteMember bool
	// DryRun computes the diff without changing the list.
	DryRun bool
}

// Reconcile subscribes desired members missing from the list and removes
// subscribed members that are not desired. Refused members are reported in
// the result; an error is only returned when a whole call fails.
func (r *MemberReconciler) Reconcile(ctx context.Context, desired []DesiredMember) (ReconcileResult, error) {
	log := logf.FromContext(ctx).WithValues("controller", "MemberReconciler", "listID", r.ListID)
	log.Info("Starting reconciliation", "desired", len(desired), "dryRun", r.DryRun)

	var result ReconcileResult

	current, err := r.currentMembers(ctx)
	if err != nil {
		log.Error(err, "Failed to list current members")
		return result, fmt.Errorf("failed to list members of %s: %w", r.ListID, err)
	}
	result.Existing = len(current)

	want := make(map[string]DesiredMember, len(desired))
	for _, m := range desired {
		key := emailKey(m.Email)
		if key == "" {
			continue
		}
		want[key] = m
	}

	var toAdd []mailchimp.BatchEmailParameter
	for _, key := range sets.List(sets.KeySet(want)) {
		if _, ok := current[key]; ok {
			continue
		}
		m := want[key]
		item := mailchimp.BatchEmailParameter{
			Email:     mailchimp.EmailParameter{Email: m.Email},
			EmailType: m.EmailType,
		}
		if len(m.MergeVars) > 0 {
			item.MergeVars = &mailchimp.MergeVars{Fields: m.MergeVars}
		}
		toAdd = append(toAdd, item)
	}

	var toRemove []mailchimp.EmailParameter
	for _, key := range sets.List(sets.KeySet(current)) {
		if _, ok := want[key]; !ok {
			toRemove = append(toRemove, mailchimp.EmailParameter{Email: current[key].Email})
		}
	}

	log.Info("Computed membership diff", "add", len(toAdd), "remove", len(toRemove))
	if r.DryRun {
		result.Added = len(toAdd)
		result.Removed = len(toRemove)
		return result, nil
	}

	var errs []error
	if len(toAdd) > 0 {
		added, err := r.MailChimp.BatchSubscribe(ctx, r.ListID, toAdd, &mailchimp.BatchSubscribeOptions{
			DoubleOptIn:      ptr.To(false),
			UpdateExisting:   true,
			ReplaceInterests: ptr.To(false),
		})
		if err != nil {
			log.Error(err, "Failed to subscribe missing members")
			errs = append(errs, fmt.Errorf("failed to subscribe %d members: %w", len(toAdd), err))
		} else {
			result.Added = added.AddCount
			result.Updated = added.UpdateCount
			result.Errors = append(result.Errors, added.Errors...)
			observability.MembersReconciled.WithLabelValues("added").Add(float64(added.AddCount + added.UpdateCount))
		}
	}

	if len(toRemove) > 0 {
		removed, err := r.MailChimp.BatchUnsubscribe(ctx, r.ListID, toRemove, &mailchimp.BatchUnsubscribeOptions{
			DeleteMember: r.DeleteMember,
			SendGoodbye:  ptr.To(false),
		})
		if err != nil {
			log.Error(err, "Failed to remove extra members")
			errs = append(errs, fmt.Errorf("failed to remove %d members: %w", len(toRemove), err))
		} else {
			result.Removed = removed.SuccessCount
			result.Errors = append(result.Errors, removed.Errors...)
			observability.MembersReconciled.WithLabelValues("removed").Add(float64(removed.SuccessCount))
		}
	}

	if len(result.Errors) > 0 {
		observability.MembersReconciled.WithLabelValues("failed").Add(float64(len(result.Errors)))
		log.Info("Some members were refused", "failed", len(result.Errors))
	}

	log.Info("Finished reconciliation", "added", result.Added, "updated", result.Updated, "removed", result.Removed)
	return result, utilerrors.NewAggregate(errs)
}

// currentMembers pages through the subscribed members of the list.
func (r *MemberReconciler) currentMembers(ctx context.Context) (map[string]mailchimp.MemberInfo, error) {
	pageSize := r.PageSize
	if pageSize <= 0 || pageSize > DefaultPageSize {
		pageSize = DefaultPageSize
	}

	members := map[string]mailchimp.MemberInfo{}
	for page := 0; ; page++ {
		resp, err := r.MailChimp.GetAllMembersForList(ctx, r.ListID, &mailchimp.GetMembersOptions{
			Status: mailchimp.StatusSubscribed,
			Page:   mailchimp.Page{Start: page, Limit: pageSize},
		})
		if err != nil {
			return nil, err
		}
		for _, m := range resp.Data {
			members[emailKey(m.Email)] = m
		}
		if len(resp.Data) < pageSize || (page+1)*pageSize >= resp.Total {
			return members, nil
		}
	}
}

func emailKey(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
