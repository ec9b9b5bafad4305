package mailchimp

import "context"

// WebhookActions selects the events a list webhook fires for.
type WebhookActions struct {
	Subscribe   bool `json:"subscribe"`
	Unsubscribe bool `json:"unsubscribe"`
	Profile     bool `json:"profile"`
	Cleaned     bool `json:"cleaned"`
	UpEmail     bool `json:"upemail"`
	Campaign    bool `json:"campaign"`
}

// WebhookSources selects which originators of a change fire a webhook.
type WebhookSources struct {
	User  bool `json:"user"`
	Admin bool `json:"admin"`
	API   bool `json:"api"`
}

// AllWebhookActions enables every action.
func AllWebhookActions() WebhookActions {
	return WebhookActions{Subscribe: true, Unsubscribe: true, Profile: true, Cleaned: true, UpEmail: true, Campaign: true}
}

// WebhookInfo is a webhook registered on a list.
type WebhookInfo struct {
	URL     string         `json:"url"`
	Actions WebhookActions `json:"actions"`
	Sources WebhookSources `json:"sources"`
}

// AddWebhookOptions are the optional parameters of AddWebhook. A nil field
// keeps the API default of everything enabled.
type AddWebhookOptions struct {
	Actions *WebhookActions
	Sources *WebhookSources
}

// GetWebhooks returns the webhooks registered on a list.
//
// API: POST /lists/webhooks.json
func (c *Client) GetWebhooks(ctx context.Context, listID string) ([]WebhookInfo, error) {
	var resp []WebhookInfo
	if err := c.call(ctx, "lists/webhooks", params{"id": listID}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AddWebhook registers a webhook URL on a list.
//
// API: POST /lists/webhook-add.json
//
// Errors:
//   - ValidationError: If the URL is already registered on the list.
func (c *Client) AddWebhook(ctx context.Context, listID, url string, opts *AddWebhookOptions) (*IDResult, error) {
	p := params{"id": listID, "url": url}
	if opts != nil {
		if opts.Actions != nil {
			p["actions"] = opts.Actions
		}
		if opts.Sources != nil {
			p["sources"] = opts.Sources
		}
	}

	var resp IDResult
	if err := c.call(ctx, "lists/webhook-add", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteWebhook removes a webhook from a list.
//
// API: POST /lists/webhook-del.json
func (c *Client) DeleteWebhook(ctx context.Context, listID, url string) (*CompleteResult, error) {
	var resp CompleteResult
	if err := c.call(ctx, "lists/webhook-del", params{"id": listID, "url": url}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
