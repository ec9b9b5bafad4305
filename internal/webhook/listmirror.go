package webhook

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"strings"

	"k8s.io/utils/ptr"
	logf "sigs.k8s.io/controller-runtime/pkg/log"

	"go.miloapis.com/email-provider-mailchimp/pkg/mailchimp"
)

// DefaultEndpoint is where the receiver is mounted unless configured otherwise.
const DefaultEndpoint = "/webhooks/mailchimp"

// NewListMirrorWebhook keeps mirrorListID in step with the list the webhook
// is registered on. Subscribes, profile changes, address changes and
// removals are replayed against the mirror without confirmation or goodbye
// mails. Deliveries about the mirror list itself are acknowledged and
// ignored.
//
// A failed API call answers 500 so MailChimp redelivers; answers that a retry
// cannot change (member missing, already unsubscribed, invalid address) are
// logged and acknowledged.
func NewListMirrorWebhook(api mailchimp.API, mirrorListID, secret string) *Webhook {
	return &Webhook{
		Handler: HandlerFunc(func(ctx context.Context, req Request) Response {
			log := logf.FromContext(ctx).WithName("mailchimp-list-mirror")

			event := req.Event
			if event == nil {
				log.Info("Request has no event")
				return BadRequestResponse()
			}
			if event.Data.ListID == mirrorListID {
				log.V(1).Info("Ignoring event for the mirror list", "type", event.Type)
				return OkResponse()
			}

			subscriber := event.Subscriber()
			if event.Type != mailchimp.EventCampaign && subscriber.Email == "" {
				log.Info("Event has no subscriber email", "type", event.Type)
				return BadRequestResponse()
			}
			log = log.WithValues("type", event.Type, "email", subscriber.Email, "mirrorListID", mirrorListID)

			var err error
			switch event.Type {
			case mailchimp.EventSubscribe:
				_, err = api.Subscribe(ctx, mirrorListID, subscriber, &mailchimp.SubscribeOptions{
					MergeVars:        mergeVarsFromEvent(event.Data.Merges),
					EmailType:        event.Data.EmailType,
					DoubleOptIn:      ptr.To(false),
					UpdateExisting:   true,
					ReplaceInterests: ptr.To(false),
				})
				if mailchimp.IsAlreadySubscribed(err) {
					err = nil
				}

			case mailchimp.EventProfile:
				mergeVars := mergeVarsFromEvent(event.Data.Merges)
				if mergeVars == nil {
					return OkResponse()
				}
				// A profile delivery carries the member's full groups.
				_, err = api.UpdateMember(ctx, mirrorListID, subscriber, *mergeVars, &mailchimp.UpdateMemberOptions{
					EmailType:        event.Data.EmailType,
					ReplaceInterests: ptr.To(true),
				})
				if memberGone(err) {
					log.Info("Member is not on the mirror list, skipping profile update")
					err = nil
				}

			case mailchimp.EventUpEmail:
				_, err = api.UpdateMember(ctx, mirrorListID, subscriber, mailchimp.MergeVars{NewEmail: event.Data.NewEmail}, nil)
				if memberGone(err) {
					log.Info("Member is not on the mirror list, skipping address change")
					err = nil
				}

			case mailchimp.EventUnsubscribe, mailchimp.EventCleaned:
				_, err = api.Unsubscribe(ctx, mirrorListID, subscriber, &mailchimp.UnsubscribeOptions{
					DeleteMember: event.Data.Action == "delete",
					SendGoodbye:  ptr.To(false),
					SendNotify:   ptr.To(false),
				})
				if memberGone(err) {
					log.Info("Member already gone from the mirror list")
					err = nil
				}

			default:
				log.V(1).Info("Nothing to mirror")
				return OkResponse()
			}

			if mailchimp.IsValidationError(err) {
				log.Error(err, "MailChimp rejected the member, not retrying")
				return OkResponse()
			}
			if err != nil {
				log.Error(err, "Failed to mirror event")
				return InternalServerErrorResponse()
			}

			log.Info("Mirrored event")
			return OkResponse()
		}),
		Endpoint: DefaultEndpoint,
		secret:   secret,
	}
}

// mergeVarsFromEvent copies the merge fields of a delivery, leaving out the
// EMAIL tag. Interest groupings are matched on the mirror list by name, since
// grouping ids are per list; a grouping only takes part when the delivery
// carries its groups.
func mergeVarsFromEvent(merges map[string]string) *mailchimp.MergeVars {
	fields := make(map[string]any, len(merges))
	groupings := map[int]*mailchimp.Grouping{}
	hasGroups := map[int]bool{}

	for tag, value := range merges {
		if tag == "EMAIL" {
			continue
		}
		if !strings.Contains(tag, ".") {
			fields[tag] = value
			continue
		}

		parts := strings.Split(tag, ".")
		if len(parts) != 3 || parts[0] != "GROUPINGS" {
			continue
		}
		i, err := strconv.Atoi(parts[1])
		if err != nil {
			continue
		}
		g := groupings[i]
		if g == nil {
			g = &mailchimp.Grouping{}
			groupings[i] = g
		}
		switch parts[2] {
		case "id":
			g.ID, _ = strconv.Atoi(value)
		case "name":
			g.Name = value
		case "groups":
			g.Groups = splitGroups(value)
			hasGroups[i] = true
		}
	}

	mv := &mailchimp.MergeVars{}
	if len(fields) > 0 {
		mv.Fields = fields
	}
	for _, i := range slices.Sorted(maps.Keys(groupings)) {
		g := groupings[i]
		if !hasGroups[i] || (g.Name == "" && g.ID == 0) {
			continue
		}
		if g.Name != "" {
			g.ID = 0
		}
		mv.Groupings = append(mv.Groupings, *g)
	}

	if mv.Fields == nil && mv.Groupings == nil {
		return nil
	}
	return mv
}

// splitGroups splits the comma separated group names of a delivery. Commas
// inside a name arrive escaped as "\,".
func splitGroups(value string) []string {
	groups := []string{}
	var cur strings.Builder
	flush := func() {
		if name := strings.TrimSpace(cur.String()); name != "" {
			groups = append(groups, name)
		}
		cur.Reset()
	}
	for i := 0; i < len(value); i++ {
		switch {
		case value[i] == '\\' && i+1 < len(value) && value[i+1] == ',':
			cur.WriteByte(',')
			i++
		case value[i] == ',':
			flush()
		default:
			cur.WriteByte(value[i])
		}
	}
	flush()
	return groups
}

// memberGone reports errors saying the member is not (or no longer) on the
// mirror list. A missing list is not one of them.
func memberGone(err error) bool {
	return mailchimp.IsErrorName(err, mailchimp.ErrorNameEmailNotExists) || mailchimp.IsNotSubscribed(err)
}
