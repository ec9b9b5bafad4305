package mailchimp

import (
	"context"
	"fmt"
)

// PingOK is the message a healthy API answers ping with.
const PingOK = "Everything's Chimpy!"

// Sections GetAccountDetails can exclude.
const (
	AccountModules            = "modules"
	AccountOrders             = "orders"
	AccountRewardsCredits     = "rewards-credits"
	AccountRewardsInspections = "rewards-inspections"
	AccountRewardsReferrals   = "rewards-referrals"
	AccountRewardsApplied     = "rewards-applied"
	AccountIntegrations       = "integrations"
)

// AccountDetails describes the account owning the API key.
type AccountDetails struct {
	Username       string          `json:"username"`
	UserID         string          `json:"user_id"`
	IsTrial        bool            `json:"is_trial"`
	IsApproved     bool            `json:"is_approved"`
	HasActivated   bool            `json:"has_activated"`
	Timezone       string          `json:"timezone"`
	PlanType       string          `json:"plan_type"`
	PlanLow        int             `json:"plan_low"`
	PlanHigh       int             `json:"plan_high"`
	PlanStartDate  string          `json:"plan_start_date"`
	EmailsLeft     int             `json:"emails_left"`
	PendingMonthly bool            `json:"pending_monthly"`
	FirstPayment   string          `json:"first_payment"`
	LastPayment    string          `json:"last_payment"`
	TimesLoggedIn  int             `json:"times_logged_in"`
	LastLogin      string          `json:"last_login"`
	AffiliateLink  string          `json:"affiliate_link"`
	Industry       string          `json:"industry"`
	Contact        AccountContact  `json:"contact"`
	Modules        []AccountModule `json:"modules"`
	Orders         []AccountOrder  `json:"orders"`
	Rewards        AnyMap          `json:"rewards"`
	Integrations   []AnyMap        `json:"integrations"`
}

// AccountContact is the account's postal contact.
type AccountContact struct {
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Email     string `json:"email"`
	Company   string `json:"company"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	URL       string `json:"url"`
	Phone     string `json:"phone"`
	Fax       string `json:"fax"`
}

// AccountModule is an add-on enabled on the account.
type AccountModule struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Added string `json:"added"`
	Data  AnyMap `json:"data"`
}

// AccountOrder is a payment made by the account.
type AccountOrder struct {
	OrderID     int     `json:"order_id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Date        string  `json:"date"`
	CreditsUsed float64 `json:"credits_used"`
}

// CampaignForEmail is a campaign a member was sent.
type CampaignForEmail struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subject  string `json:"subject"`
	SendTime string `json:"send_time"`
	Type     string `json:"type"`
}

// CampaignsForEmailOptions are the optional parameters of GetCampaignsForEmail.
type CampaignsForEmailOptions struct {
	// ListID restricts the result to campaigns sent to one list.
	ListID string
}

// ListForEmail is a list a member is subscribed to.
type ListForEmail struct {
	ID    string `json:"id"`
	WebID int    `json:"web_id"`
	Name  string `json:"name"`
}

// ChimpChatterMessage is one account activity message.
type ChimpChatterMessage struct {
	Message    string `json:"message"`
	Type       string `json:"type"`
	URL        string `json:"url"`
	ListID     string `json:"list_id"`
	CampaignID string `json:"campaign_id"`
	UpdateTime string `json:"update_time"`
}

// PingMessage is the answer to Ping.
type PingMessage struct {
	Msg string `json:"msg"`
}

// OK reports whether the API answered as healthy.
func (m PingMessage) OK() bool {
	return m.Msg == PingOK
}

// SearchMembersOptions are the optional parameters of SearchMembers.
type SearchMembersOptions struct {
	// ListID restricts the search to one list.
	ListID string
	// Offset pages through results, 100 at a time.
	Offset int
}

// SearchMembersResult holds the matches of SearchMembers.
type SearchMembersResult struct {
	ExactMatches MemberMatches `json:"exact_matches"`
	FullSearch   MemberMatches `json:"full_search"`
}

// MemberMatches is one set of search matches.
type MemberMatches struct {
	Total   int          `json:"total"`
	Members []MemberInfo `json:"members"`
}

// InlineCSSResult holds html with its CSS inlined.
type InlineCSSResult struct {
	HTML string `json:"html"`
}

// GetAccountDetails returns details about the account, minus the excluded sections.
//
// API: POST /helper/account-details.json
func (c *Client) GetAccountDetails(ctx context.Context, exclude []string) (*AccountDetails, error) {
	p := params{}
	if len(exclude) > 0 {
		p["exclude"] = exclude
	}

	var resp AccountDetails
	if err := c.call(ctx, "helper/account-details", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCampaignsForEmail returns the campaigns a member was sent.
//
// API: POST /helper/campaigns-for-email.json
func (c *Client) GetCampaignsForEmail(ctx context.Context, email EmailParameter, opts *CampaignsForEmailOptions) ([]CampaignForEmail, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}
	p := params{"email": email}
	if opts != nil && opts.ListID != "" {
		p["options"] = params{"list_id": opts.ListID}
	}

	var resp []CampaignForEmail
	if err := c.call(ctx, "helper/campaigns-for-email", p, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetListsForEmail returns the lists a member is subscribed to.
//
// API: POST /helper/lists-for-email.json
func (c *Client) GetListsForEmail(ctx context.Context, email EmailParameter) ([]ListForEmail, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}

	var resp []ListForEmail
	if err := c.call(ctx, "helper/lists-for-email", params{"email": email}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetChimpChatter returns the account's recent Chimp Chatter messages.
//
// API: POST /helper/chimp-chatter.json
func (c *Client) GetChimpChatter(ctx context.Context) ([]ChimpChatterMessage, error) {
	var resp []ChimpChatterMessage
	if err := c.call(ctx, "helper/chimp-chatter", params{}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Ping checks connectivity and the API key.
//
// API: POST /helper/ping.json
//
// Idempotency: Idempotent
//
// Errors:
//   - None. Failures are reported in the message and OK returns false.
func (c *Client) Ping(ctx context.Context) PingMessage {
	var resp PingMessage
	if err := c.call(ctx, "helper/ping", params{}, &resp); err != nil {
		return PingMessage{Msg: fmt.Sprintf("ping failed: %v", err)}
	}
	if resp.Msg == "" {
		return PingMessage{Msg: "ping failed: empty response"}
	}
	return resp
}

// SearchMembers searches members by email or name, across the account or in one list.
//
// API: POST /helper/search-members.json
func (c *Client) SearchMembers(ctx context.Context, query string, opts *SearchMembersOptions) (*SearchMembersResult, error) {
	p := params{"query": query}
	if opts != nil {
		if opts.ListID != "" {
			p["id"] = opts.ListID
		}
		if opts.Offset > 0 {
			p["offset"] = opts.Offset
		}
	}

	var resp SearchMembersResult
	if err := c.call(ctx, "helper/search-members", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// InlineCSS moves the CSS of an HTML document into style attributes.
//
// API: POST /helper/inline-css.json
func (c *Client) InlineCSS(ctx context.Context, html string, stripCSS bool) (*InlineCSSResult, error) {
	var resp InlineCSSResult
	if err := c.call(ctx, "helper/inline-css", params{"html": html, "strip_css": stripCSS}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
