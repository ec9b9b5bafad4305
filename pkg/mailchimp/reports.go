package mailchimp

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Report sort fields.
const (
	ClickSortClicked = "clicked"
	ClickSortClicks  = "clicks"
	OpenSortOpened   = "opened"
	OpenSortOpens    = "opens"
)

var (
	clickSortFields = sets.New(ClickSortClicked, ClickSortClicks)
	openSortFields  = sets.New(OpenSortOpened, OpenSortOpens)
)

// SentTo statuses.
const (
	SentStatusSent = "sent"
	SentStatusHard = "hard"
	SentStatusSoft = "soft"
)

// ReportSummary holds the aggregate stats of a sent campaign.
type ReportSummary struct {
	SyntaxErrors    int          `json:"syntax_errors"`
	HardBounces     int          `json:"hard_bounces"`
	SoftBounces     int          `json:"soft_bounces"`
	Unsubscribes    int          `json:"unsubscribes"`
	AbuseReports    int          `json:"abuse_reports"`
	Forwards        int          `json:"forwards"`
	ForwardsOpens   int          `json:"forwards_opens"`
	Opens           int          `json:"opens"`
	LastOpen        string       `json:"last_open"`
	UniqueOpens     int          `json:"unique_opens"`
	Clicks          int          `json:"clicks"`
	UniqueClicks    int          `json:"unique_clicks"`
	UsersWhoClicked int          `json:"users_who_clicked"`
	LastClick       string       `json:"last_click"`
	EmailsSent      int          `json:"emails_sent"`
	UniqueLikes     int          `json:"unique_likes"`
	RecipientLikes  int          `json:"recipient_likes"`
	FacebookLikes   int          `json:"facebook_likes"`
	Industry        AnyMap       `json:"industry"`
	ABSplit         AnyMap       `json:"absplit"`
	Timewarp        []AnyMap     `json:"timewarp"`
	Timeseries      []TimeSeries `json:"timeseries"`
}

// TimeSeries is one hour of campaign activity.
type TimeSeries struct {
	Timestamp       string `json:"timestamp"`
	EmailsSent      int    `json:"emails_sent"`
	UniqueOpens     int    `json:"unique_opens"`
	RecipientsClick int    `json:"recipients_click"`
}

// SentToMember is one recipient of a campaign.
type SentToMember struct {
	Member       MemberInfo `json:"member"`
	Status       string     `json:"status"`
	ABSplitGroup string     `json:"absplit_group"`
	TZGroup      string     `json:"tz_group"`
}

// SentToMembers is one page of campaign recipients.
type SentToMembers struct {
	Total int            `json:"total"`
	Data  []SentToMember `json:"data"`
}

// TrackedURL holds the click stats of one URL.
type TrackedURL struct {
	URL     string `json:"url"`
	Clicks  int    `json:"clicks"`
	ClicksA int    `json:"clicks_a"`
	ClicksB int    `json:"clicks_b"`
	Unique  int    `json:"unique"`
	UniqueA int    `json:"unique_a"`
	UniqueB int    `json:"unique_b"`
	TID     int    `json:"tid"`
}

// Clicks holds the tracked URLs of a campaign, overall and per A/B group.
type Clicks struct {
	Total []TrackedURL `json:"total"`
	A     []TrackedURL `json:"a"`
	B     []TrackedURL `json:"b"`
}

// ClickMember is a member who clicked a tracked URL.
type ClickMember struct {
	Member MemberInfo `json:"member"`
	Clicks int        `json:"clicks"`
}

// ClickDetail is one page of members who clicked a URL.
type ClickDetail struct {
	Total int           `json:"total"`
	Data  []ClickMember `json:"data"`
}

// NotOpened is one page of members who did not open a campaign.
type NotOpened struct {
	Total int          `json:"total"`
	Data  []MemberInfo `json:"data"`
}

// Unsubscribe is a member who left through a campaign.
type Unsubscribe struct {
	Member     MemberInfo `json:"member"`
	Reason     string     `json:"reason"`
	ReasonText string     `json:"reason_text"`
}

// Unsubscribes is one page of unsubscribes.
type Unsubscribes struct {
	Total int           `json:"total"`
	Data  []Unsubscribe `json:"data"`
}

// BounceMessage is a full bounce received for a campaign.
type BounceMessage struct {
	Date    string     `json:"date"`
	Member  MemberInfo `json:"member"`
	Message string     `json:"message"`
}

// BounceMessages is one page of bounce messages.
type BounceMessages struct {
	Total int             `json:"total"`
	Data  []BounceMessage `json:"data"`
}

// OpenedMember is a member who opened a campaign.
type OpenedMember struct {
	Member MemberInfo `json:"member"`
	Opens  int        `json:"opens"`
}

// Opened is one page of members who opened a campaign.
type Opened struct {
	Total int            `json:"total"`
	Data  []OpenedMember `json:"data"`
}

// ReportPageOptions pages GetReportNotOpened and GetReportUnsubscribes.
// Limit defaults to 25, max 100.
type ReportPageOptions struct {
	Page
}

// SentToOptions are the optional parameters of GetReportSentTo.
type SentToOptions struct {
	// Status limits the result to sent, hard or soft; empty returns all.
	Status string
	Page
}

// ClickDetailOptions are the optional parameters of GetReportClickDetail.
type ClickDetailOptions struct {
	Page
	// SortField is clicked (default) or clicks.
	SortField string
	SortDir   string
}

// OpenedOptions are the optional parameters of GetReportOpened.
type OpenedOptions struct {
	Page
	// SortField is opened (default) or opens.
	SortField string
	SortDir   string
}

// BounceMessagesOptions are the optional parameters of
// GetReportBounceMessages. Limit defaults to 25, max 50.
type BounceMessagesOptions struct {
	Page
	// Since only returns bounces received after this date.
	Since time.Time
}

func (p Page) reportOpts() params {
	return params{"start": p.start(), "limit": p.limit(25, 100)}
}

// GetReportSummary returns the aggregate statistics of a sent campaign.
//
// API: POST /reports/summary.json
func (c *Client) GetReportSummary(ctx context.Context, cid string) (*ReportSummary, error) {
	var resp ReportSummary
	if err := c.call(ctx, "reports/summary", params{"cid": cid}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetReportSentTo returns one page of the members a campaign was sent to.
//
// API: POST /reports/sent-to.json
func (c *Client) GetReportSentTo(ctx context.Context, cid string, opts *SentToOptions) (*SentToMembers, error) {
	if opts == nil {
		opts = &SentToOptions{}
	}
	o := opts.reportOpts()
	if opts.Status != "" {
		o["status"] = opts.Status
	}

	var resp SentToMembers
	if err := c.call(ctx, "reports/sent-to", params{"cid": cid, "opts": o}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetReportClicks returns the tracked URLs of a campaign with their click counts.
//
// API: POST /reports/clicks.json
func (c *Client) GetReportClicks(ctx context.Context, cid string) (*Clicks, error) {
	var resp Clicks
	if err := c.call(ctx, "reports/clicks", params{"cid": cid}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetReportClickDetail returns one page of the members who clicked a tracked URL.
//
// API: POST /reports/click-detail.json
func (c *Client) GetReportClickDetail(ctx context.Context, cid string, tid int, opts *ClickDetailOptions) (*ClickDetail, error) {
	if opts == nil {
		opts = &ClickDetailOptions{}
	}
	o := opts.reportOpts()
	o["sort_field"] = normalizeField(opts.SortField, ClickSortClicked, clickSortFields)
	o["sort_dir"] = normalizeDir(opts.SortDir, SortDesc)

	var resp ClickDetail
	if err := c.call(ctx, "reports/click-detail", params{"cid": cid, "tid": tid, "opts": o}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetReportNotOpened returns one page of the members who did not open a campaign.
//
// API: POST /reports/not-opened.json
func (c *Client) GetReportNotOpened(ctx context.Context, cid string, opts *ReportPageOptions) (*NotOpened, error) {
	if opts == nil {
		opts = &ReportPageOptions{}
	}

	var resp NotOpened
	if err := c.call(ctx, "reports/not-opened", params{"cid": cid, "opts": opts.reportOpts()}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetReportUnsubscribes returns one page of the members who unsubscribed from a campaign.
//
// API: POST /reports/unsubscribes.json
func (c *Client) GetReportUnsubscribes(ctx context.Context, cid string, opts *ReportPageOptions) (*Unsubscribes, error) {
	if opts == nil {
		opts = &ReportPageOptions{}
	}

	var resp Unsubscribes
	if err := c.call(ctx, "reports/unsubscribes", params{"cid": cid, "opts": opts.reportOpts()}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetReportBounceMessages returns one page of a campaign's bounce messages.
//
// API: POST /reports/bounce-messages.json
func (c *Client) GetReportBounceMessages(ctx context.Context, cid string, opts *BounceMessagesOptions) (*BounceMessages, error) {
	if opts == nil {
		opts = &BounceMessagesOptions{}
	}
	o := params{"start": opts.start(), "limit": opts.limit(25, 50)}
	if !opts.Since.IsZero() {
		o["since"] = opts.Since.UTC().Format(time.DateOnly)
	}

	var resp BounceMessages
	if err := c.call(ctx, "reports/bounce-messages", params{"cid": cid, "opts": o}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetReportOpened returns one page of the members who opened a campaign.
//
// API: POST /reports/opened.json
func (c *Client) GetReportOpened(ctx context.Context, cid string, opts *OpenedOptions) (*Opened, error) {
	if opts == nil {
		opts = &OpenedOptions{}
	}
	o := opts.reportOpts()
	o["sort_field"] = normalizeField(opts.SortField, OpenSortOpened, openSortFields)
	o["sort_dir"] = normalizeDir(opts.SortDir, SortDesc)

	var resp Opened
	if err := c.call(ctx, "reports/opened", params{"cid": cid, "opts": o}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
