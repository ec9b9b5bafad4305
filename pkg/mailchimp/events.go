package mailchimp

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// WebhookEventType is the "type" field of a list webhook delivery.
type WebhookEventType string

// Event types for list webhooks.
const (
	EventSubscribe   WebhookEventType = "subscribe"
	EventUnsubscribe WebhookEventType = "unsubscribe"
	EventProfile     WebhookEventType = "profile"
	EventUpEmail     WebhookEventType = "upemail"
	EventCleaned     WebhookEventType = "cleaned"
	EventCampaign    WebhookEventType = "campaign"
)

// ErrMissingEventType is returned by ParseWebhookEvent for a payload without
// a type.
var ErrMissingEventType = errors.New("webhook payload has no type")

// WebhookEvent represents a list webhook delivery. MailChimp posts these as
// form data, with the event details under data[...].
type WebhookEvent struct {
	Type    WebhookEventType
	FiredAt time.Time
	Data    WebhookEventData
}

// WebhookEventData holds the data[...] fields of a delivery. Which fields are
// set depends on the event type.
type WebhookEventData struct {
	ID        string
	ListID    string
	Email     string
	EmailType string
	IPOpt     string
	IPSignup  string
	// Merges is keyed by merge tag. Nested values such as groupings use dotted
	// paths, e.g. "GROUPINGS.0.name".
	Merges map[string]string

	// unsubscribe and cleaned
	Action     string
	Reason     string
	CampaignID string

	// upemail
	NewID    string
	NewEmail string
	OldEmail string

	// campaign
	Subject string
	Status  string
}

// Subscriber returns the address the event is about. For upemail that is the
// old address.
func (e *WebhookEvent) Subscriber() EmailParameter {
	if e.Type == EventUpEmail {
		return EmailParameter{Email: e.Data.OldEmail}
	}
	return EmailParameter{Email: e.Data.Email}
}

// ParseWebhookEvent decodes a form encoded webhook delivery.
func ParseWebhookEvent(form url.Values) (*WebhookEvent, error) {
	eventType := form.Get("type")
	if eventType == "" {
		return nil, ErrMissingEventType
	}

	event := &WebhookEvent{
		Type: WebhookEventType(eventType),
		Data: WebhookEventData{Merges: map[string]string{}},
	}

	if firedAt := form.Get("fired_at"); firedAt != "" {
		t, err := time.ParseInLocation(TimeLayout, firedAt, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid fired_at %q: %w", firedAt, err)
		}
		event.FiredAt = t
	}

	d := &event.Data
	fields := map[string]*string{
		"id":          &d.ID,
		"list_id":     &d.ListID,
		"email":       &d.Email,
		"email_type":  &d.EmailType,
		"ip_opt":      &d.IPOpt,
		"ip_signup":   &d.IPSignup,
		"action":      &d.Action,
		"reason":      &d.Reason,
		"campaign_id": &d.CampaignID,
		"new_id":      &d.NewID,
		"new_email":   &d.NewEmail,
		"old_email":   &d.OldEmail,
		"subject":     &d.Subject,
		"status":      &d.Status,
	}

	for key, values := range form {
		path, ok := bracketPath(key)
		if !ok || len(path) < 2 || path[0] != "data" || len(values) == 0 {
			continue
		}
		if path[1] == "merges" {
			if len(path) > 2 {
				d.Merges[strings.Join(path[2:], ".")] = values[0]
			}
			continue
		}
		if dst, known := fields[path[1]]; known && len(path) == 2 {
			*dst = values[0]
		}
	}

	return event, nil
}

// bracketPath splits "data[merges][FNAME]" into [data merges FNAME].
func bracketPath(key string) ([]string, bool) {
	open := strings.IndexByte(key, '[')
	if open < 0 {
		return []string{key}, true
	}
	path := []string{key[:open]}
	rest := key[open:]
	for rest != "" {
		if rest[0] != '[' {
			return nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end < 0 {
			return nil, false
		}
		path = append(path, rest[1:end])
		rest = rest[end+1:]
	}
	return path, true
}
