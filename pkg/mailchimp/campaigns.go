package mailchimp

import (
	"context"
	"encoding/json"
	"reflect"
	"time"

	"k8s.io/apimachinery/pkg/util/sets"
)

// CampaignType is the kind of campaign.
type CampaignType string

const (
	CampaignRegular   CampaignType = "regular"
	CampaignPlaintext CampaignType = "plaintext"
	CampaignABSplit   CampaignType = "absplit"
	CampaignRSS       CampaignType = "rss"
	CampaignAuto      CampaignType = "auto"
)

// ContentView selects how GetCampaignContent renders a campaign.
type ContentView string

const (
	ViewArchive ContentView = "archive"
	ViewPreview ContentView = "preview"
	ViewRaw     ContentView = "raw"
)

// Campaign sort fields.
const (
	CampaignSortCreateTime = "create_time"
	CampaignSortSendTime   = "send_time"
	CampaignSortTitle      = "title"
	CampaignSortSubject    = "subject"
)

var campaignSortFields = sets.New(CampaignSortCreateTime, CampaignSortSendTime, CampaignSortTitle, CampaignSortSubject)

// Campaign describes a campaign as returned by the API.
type Campaign struct {
	ID                 string                  `json:"id"`
	WebID              int                     `json:"web_id"`
	ListID             string                  `json:"list_id"`
	FolderID           int                     `json:"folder_id"`
	TemplateID         int                     `json:"template_id"`
	ContentType        string                  `json:"content_type"`
	Title              string                  `json:"title"`
	Type               CampaignType            `json:"type"`
	CreateTime         string                  `json:"create_time"`
	SendTime           string                  `json:"send_time"`
	ContentUpdatedTime string                  `json:"content_updated_time"`
	Status             string                  `json:"status"`
	FromName           string                  `json:"from_name"`
	FromEmail          string                  `json:"from_email"`
	Subject            string                  `json:"subject"`
	ToName             string                  `json:"to_name"`
	ArchiveURL         string                  `json:"archive_url"`
	ArchiveURLLong     string                  `json:"archive_url_long"`
	EmailsSent         int                     `json:"emails_sent"`
	InlineCSS          bool                    `json:"inline_css"`
	AnalyticsTag       string                  `json:"analytics_tag"`
	Authenticate       bool                    `json:"authenticate"`
	Ecomm360           bool                    `json:"ecomm360"`
	AutoTweet          bool                    `json:"auto_tweet"`
	AutoFooter         bool                    `json:"auto_footer"`
	Timewarp           bool                    `json:"timewarp"`
	TimewarpSchedule   string                  `json:"timewarp_schedule"`
	ParentID           string                  `json:"parent_id"`
	IsChild            bool                    `json:"is_child"`
	TestsSent          int                     `json:"tests_sent"`
	TestsRemain        int                     `json:"tests_remain"`
	Tracking           CampaignTracking        `json:"tracking"`
	SegmentText        string                  `json:"segment_text"`
	SegmentOpts        *CampaignSegmentOptions `json:"segment_opts"`
	TypeOpts           AnyMap                  `json:"type_opts"`
	CommentsTotal      int                     `json:"comments_total"`
	CommentsUnread     int                     `json:"comments_unread"`
	Summary            AnyMap                  `json:"summary"`
}

// CampaignContent is the rendered content of a campaign.
type CampaignContent struct {
	HTML string `json:"html"`
	Text string `json:"text"`
}

// CampaignTracking controls open and click tracking.
type CampaignTracking struct {
	Opens      bool `json:"opens"`
	HTMLClicks bool `json:"html_clicks"`
	TextClicks bool `json:"text_clicks"`
}

// CampaignCreateOptions holds the standard options of a campaign.
type CampaignCreateOptions struct {
	ListID            string            `json:"list_id"`
	Subject           string            `json:"subject"`
	FromEmail         string            `json:"from_email"`
	FromName          string            `json:"from_name"`
	ToName            string            `json:"to_name,omitempty"`
	TemplateID        int               `json:"template_id,omitempty"`
	GalleryTemplateID int               `json:"gallery_template_id,omitempty"`
	BaseTemplateID    int               `json:"base_template_id,omitempty"`
	FolderID          int               `json:"folder_id,omitempty"`
	Tracking          *CampaignTracking `json:"tracking,omitempty"`
	Title             string            `json:"title,omitempty"`
	Authenticate      bool              `json:"authenticate,omitempty"`
	Analytics         map[string]string `json:"analytics,omitempty"`
	AutoFooter        bool              `json:"auto_footer,omitempty"`
	InlineCSS         bool              `json:"inline_css,omitempty"`
	GenerateText      bool              `json:"generate_text,omitempty"`
	AutoTweet         bool              `json:"auto_tweet,omitempty"`
	Timewarp          bool              `json:"timewarp,omitempty"`
	Ecomm360          bool              `json:"ecomm360,omitempty"`
}

// CampaignCreateContent is the content of a campaign. Use one of HTML,
// Sections (template sections), URL (content pulled from a page) or Archive.
type CampaignCreateContent struct {
	HTML        string            `json:"html,omitempty"`
	Sections    map[string]string `json:"sections,omitempty"`
	Text        string            `json:"text,omitempty"`
	URL         string            `json:"url,omitempty"`
	Archive     string            `json:"archive,omitempty"`
	ArchiveType string            `json:"archive_type,omitempty"`
}

// Segment match modes.
const (
	MatchAny = "any"
	MatchAll = "all"
)

// CampaignSegmentOptions selects a subset of a list.
type CampaignSegmentOptions struct {
	SavedSegmentID int                `json:"saved_segment_id,omitempty"`
	Match          string             `json:"match,omitempty"`
	Conditions     []SegmentCondition `json:"conditions,omitempty"`
}

func (o *CampaignSegmentOptions) UnmarshalJSON(b []byte) error {
	if isEmptyJSONArray(b) {
		*o = CampaignSegmentOptions{}
		return nil
	}
	type plain CampaignSegmentOptions
	return json.Unmarshal(b, (*plain)(o))
}

// SegmentCondition is one rule of a segment.
type SegmentCondition struct {
	Field string `json:"field"`
	Op    string `json:"op"`
	Value any    `json:"value"`
	Extra string `json:"extra,omitempty"`
}

// CampaignTypeOptions carries the options specific to rss, absplit and auto
// campaigns. Set the one matching the campaign type.
type CampaignTypeOptions struct {
	RSS     *RSSOptions     `json:"rss,omitempty"`
	ABSplit *ABSplitOptions `json:"absplit,omitempty"`
	Auto    *AutoOptions    `json:"auto,omitempty"`
}

// RSSOptions configures an RSS campaign.
type RSSOptions struct {
	URL              string          `json:"url"`
	Schedule         string          `json:"schedule,omitempty"`
	ScheduleHour     int             `json:"schedule_hour,omitempty"`
	ScheduleWeekday  int             `json:"schedule_weekday,omitempty"`
	ScheduleMonthday int             `json:"schedule_monthday,omitempty"`
	Days             map[string]bool `json:"days,omitempty"`
}

// ABSplitOptions configures an A/B split campaign.
type ABSplitOptions struct {
	SplitTest  string `json:"split_test"`
	PickWinner string `json:"pick_winner,omitempty"`
	WaitUnits  int    `json:"wait_units,omitempty"`
	WaitTime   int    `json:"wait_time,omitempty"`
	SplitSize  int    `json:"split_size,omitempty"`
	FromNameA  string `json:"from_name_a,omitempty"`
	FromNameB  string `json:"from_name_b,omitempty"`
	FromEmailA string `json:"from_email_a,omitempty"`
	FromEmailB string `json:"from_email_b,omitempty"`
	SubjectA   string `json:"subject_a,omitempty"`
	SubjectB   string `json:"subject_b,omitempty"`
}

// AutoOptions configures an AutoResponder campaign.
type AutoOptions struct {
	OffsetUnits    string `json:"offset-units,omitempty"`
	OffsetTime     string `json:"offset-time,omitempty"`
	OffsetDir      string `json:"offset-dir,omitempty"`
	Event          string `json:"event"`
	EventDateMerge string `json:"event-datemerge,omitempty"`
	CampaignID     string `json:"campaign_id,omitempty"`
	CampaignURL    string `json:"campaign_url,omitempty"`
	ScheduleHour   int    `json:"schedule_hour,omitempty"`
	UseImportTime  bool   `json:"use_import_time,omitempty"`
}

// CampaignFilter narrows GetCampaigns. All fields are optional.
type CampaignFilter struct {
	CampaignID    string `json:"campaign_id,omitempty"`
	ParentID      string `json:"parent_id,omitempty"`
	ListID        string `json:"list_id,omitempty"`
	FolderID      int    `json:"folder_id,omitempty"`
	TemplateID    int    `json:"template_id,omitempty"`
	Status        string `json:"status,omitempty"`
	Type          string `json:"type,omitempty"`
	FromName      string `json:"from_name,omitempty"`
	FromEmail     string `json:"from_email,omitempty"`
	Title         string `json:"title,omitempty"`
	Subject       string `json:"subject,omitempty"`
	SendTimeStart string `json:"sendtime_start,omitempty"`
	SendTimeEnd   string `json:"sendtime_end,omitempty"`
	UsesSegment   *bool  `json:"uses_segment,omitempty"`
	Exact         *bool  `json:"exact,omitempty"`
}

// CampaignListResult is one page of campaigns.
type CampaignListResult struct {
	Total  int                 `json:"total"`
	Data   []Campaign          `json:"data"`
	Errors []CampaignListError `json:"errors"`
}

// CampaignListError reports a filter the API could not apply.
type CampaignListError struct {
	Filter  string `json:"filter"`
	Value   any    `json:"value"`
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// CampaignActionResult acknowledges a campaign action.
type CampaignActionResult = CompleteResult

// CampaignSegmentTestResult is the number of members a segment matches.
type CampaignSegmentTestResult struct {
	Total int `json:"total"`
}

// CampaignUpdateResult holds the updated campaign and any field errors.
type CampaignUpdateResult struct {
	Data   Campaign              `json:"data"`
	Errors []CampaignUpdateError `json:"errors"`
}

// CampaignUpdateError reports one setting the API refused.
type CampaignUpdateError struct {
	Code    int    `json:"code"`
	Name    string `json:"name"`
	Message string `json:"error"`
}

// CampaignUpdate is one updatable campaign setting. It is implemented by
// UpdateOptions, UpdateContent, UpdateSegmentOptions, UpdateRSSOptions,
// UpdateABSplitOptions and UpdateAutoOptions.
type CampaignUpdate interface {
	campaignUpdate() (name string, value any)
}

// UpdateOptions replaces the standard options.
type UpdateOptions struct {
	Options CampaignCreateOptions
}

// UpdateContent replaces the content.
type UpdateContent struct {
	Content CampaignCreateContent
}

// UpdateSegmentOptions replaces the segmentation.
type UpdateSegmentOptions struct {
	SegmentOptions CampaignSegmentOptions
}

// UpdateRSSOptions replaces the options of an RSS campaign.
type UpdateRSSOptions struct {
	RSS RSSOptions
}

// UpdateABSplitOptions replaces the options of an A/B split campaign.
type UpdateABSplitOptions struct {
	ABSplit ABSplitOptions
}

// UpdateAutoOptions replaces the options of an AutoResponder.
type UpdateAutoOptions struct {
	Auto AutoOptions
}

func (u UpdateOptions) campaignUpdate() (string, any)        { return "options", u.Options }
func (u UpdateContent) campaignUpdate() (string, any)        { return "content", u.Content }
func (u UpdateSegmentOptions) campaignUpdate() (string, any) { return "segment_opts", u.SegmentOptions }
func (u UpdateRSSOptions) campaignUpdate() (string, any)     { return string(CampaignRSS), u.RSS }
func (u UpdateABSplitOptions) campaignUpdate() (string, any) { return string(CampaignABSplit), u.ABSplit }
func (u UpdateAutoOptions) campaignUpdate() (string, any)    { return string(CampaignAuto), u.Auto }

// isNilUpdate also catches typed nil pointers such as (*UpdateContent)(nil),
// which satisfy CampaignUpdate through the value receivers.
func isNilUpdate(update CampaignUpdate) bool {
	if update == nil {
		return true
	}
	v := reflect.ValueOf(update)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// CampaignContentOptions are the optional parameters of GetCampaignContent.
type CampaignContentOptions struct {
	// View defaults to archive.
	View ContentView
	// Email renders the content as that member would see it.
	Email *EmailParameter
}

// CreateCampaignRequest is the payload of CreateCampaign.
type CreateCampaignRequest struct {
	Type    CampaignType
	Options CampaignCreateOptions
	Content CampaignCreateContent
	// SegmentOptions is optional. Test it with CampaignSegmentTest first.
	SegmentOptions *CampaignSegmentOptions
	// TypeOptions is required for rss, absplit and auto campaigns.
	TypeOptions *CampaignTypeOptions
}

// GetCampaignsOptions are the optional parameters of GetCampaigns.
type GetCampaignsOptions struct {
	Filter *CampaignFilter
	Page
	SortField string
	SortDir   string
}

// ScheduleBatchOptions are the optional parameters of ScheduleBatchCampaign.
type ScheduleBatchOptions struct {
	NumBatches  int
	StaggerMins int
}

// ScheduleOptions are the optional parameters of ScheduleCampaign.
type ScheduleOptions struct {
	// ScheduleTimeB is Group B's time for A/B split "schedule" campaigns.
	ScheduleTimeB time.Time
}

// Test send types.
const (
	SendTypeHTML = "html"
	SendTypeText = "text"
)

// SendTestOptions are the optional parameters of SendCampaignTest.
type SendTestOptions struct {
	SendType string
}

// GetCampaignContent returns the rendered HTML and text of a campaign.
//
// API: POST /campaigns/content.json
func (c *Client) GetCampaignContent(ctx context.Context, cid string, opts *CampaignContentOptions) (*CampaignContent, error) {
	if opts == nil {
		opts = &CampaignContentOptions{}
	}
	options := params{"view": defaultString(string(opts.View), string(ViewArchive))}
	if opts.Email != nil {
		if err := opts.Email.Validate(); err != nil {
			return nil, err
		}
		options["email"] = opts.Email
	}

	var resp CampaignContent
	if err := c.call(ctx, "campaigns/content", params{"cid": cid, "options": options}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CreateCampaign creates a campaign of the given type.
//
// API: POST /campaigns/create.json
func (c *Client) CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*Campaign, error) {
	p := params{
		"type":    defaultString(string(req.Type), string(CampaignRegular)),
		"options": req.Options,
		"content": req.Content,
	}
	if req.SegmentOptions != nil {
		p["segment_opts"] = req.SegmentOptions
	}
	if req.TypeOptions != nil {
		p["type_opts"] = req.TypeOptions
	}

	var resp Campaign
	if err := c.call(ctx, "campaigns/create", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) campaignAction(ctx context.Context, method, cid string) (*CampaignActionResult, error) {
	var resp CampaignActionResult
	if err := c.call(ctx, method, params{"cid": cid}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteCampaign permanently deletes a campaign.
//
// API: POST /campaigns/delete.json
//
// Idempotency: Not idempotent
//
// Errors:
//   - Campaign_DoesNotExist (IsNotFound): If the campaign does not exist.
func (c *Client) DeleteCampaign(ctx context.Context, cid string) (*CampaignActionResult, error) {
	return c.campaignAction(ctx, "campaigns/delete", cid)
}

// GetCampaigns returns one page of campaigns matching the filter.
//
// API: POST /campaigns/list.json
func (c *Client) GetCampaigns(ctx context.Context, opts *GetCampaignsOptions) (*CampaignListResult, error) {
	if opts == nil {
		opts = &GetCampaignsOptions{}
	}
	p := params{
		"start":      opts.start(),
		"limit":      opts.limit(25, 1000),
		"sort_field": normalizeField(opts.SortField, CampaignSortCreateTime, campaignSortFields),
		"sort_dir":   normalizeDir(opts.SortDir, SortDesc),
	}
	if opts.Filter != nil {
		p["filters"] = opts.Filter
	}

	var resp CampaignListResult
	if err := c.call(ctx, "campaigns/list", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PauseCampaign pauses a running AutoResponder or RSS campaign.
//
// API: POST /campaigns/pause.json
func (c *Client) PauseCampaign(ctx context.Context, cid string) (*CampaignActionResult, error) {
	return c.campaignAction(ctx, "campaigns/pause", cid)
}

// ReplicateCampaign copies a campaign into a new draft.
//
// API: POST /campaigns/replicate.json
func (c *Client) ReplicateCampaign(ctx context.Context, cid string) (*Campaign, error) {
	var resp Campaign
	if err := c.call(ctx, "campaigns/replicate", params{"cid": cid}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResumeCampaign resumes a paused AutoResponder or RSS campaign, or a batch-scheduled regular campaign.
//
// API: POST /campaigns/resume.json
func (c *Client) ResumeCampaign(ctx context.Context, cid string) (*CampaignActionResult, error) {
	return c.campaignAction(ctx, "campaigns/resume", cid)
}

// ScheduleBatchCampaign schedules a regular campaign to go out in batches.
//
// API: POST /campaigns/schedule-batch.json
func (c *Client) ScheduleBatchCampaign(ctx context.Context, cid string, scheduleTime time.Time, opts *ScheduleBatchOptions) (*CampaignActionResult, error) {
	if opts == nil {
		opts = &ScheduleBatchOptions{}
	}
	numBatches := opts.NumBatches
	if numBatches <= 0 {
		numBatches = 2
	}
	staggerMins := opts.StaggerMins
	if staggerMins <= 0 {
		staggerMins = 5
	}

	var resp CampaignActionResult
	err := c.call(ctx, "campaigns/schedule-batch", params{
		"cid":           cid,
		"schedule_time": FormatTime(scheduleTime),
		"num_batches":   numBatches,
		"stagger_mins":  staggerMins,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ScheduleCampaign schedules a campaign for delivery. For an A/B split,
// opts.ScheduleTimeB is the B group's send time.
//
// API: POST /campaigns/schedule.json
func (c *Client) ScheduleCampaign(ctx context.Context, cid string, scheduleTime time.Time, opts *ScheduleOptions) (*CampaignActionResult, error) {
	p := params{"cid": cid, "schedule_time": FormatTime(scheduleTime)}
	if opts != nil && !opts.ScheduleTimeB.IsZero() {
		p["schedule_time_b"] = FormatTime(opts.ScheduleTimeB)
	}

	var resp CampaignActionResult
	if err := c.call(ctx, "campaigns/schedule", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CampaignSegmentTest returns how many list members a segment would match.
//
// API: POST /campaigns/segment-test.json
func (c *Client) CampaignSegmentTest(ctx context.Context, listID string, options CampaignSegmentOptions) (*CampaignSegmentTestResult, error) {
	var resp CampaignSegmentTestResult
	if err := c.call(ctx, "campaigns/segment-test", params{"list_id": listID, "options": options}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SendCampaign sends a campaign immediately.
//
// API: POST /campaigns/send.json
func (c *Client) SendCampaign(ctx context.Context, cid string) (*CampaignActionResult, error) {
	return c.campaignAction(ctx, "campaigns/send", cid)
}

// SendCampaignTest sends a test of a campaign to the given addresses.
//
// API: POST /campaigns/send-test.json
func (c *Client) SendCampaignTest(ctx context.Context, cid string, testEmails []string, opts *SendTestOptions) (*CampaignActionResult, error) {
	sendType := SendTypeHTML
	if opts != nil {
		sendType = defaultString(opts.SendType, SendTypeHTML)
	}
	if testEmails == nil {
		testEmails = []string{}
	}

	var resp CampaignActionResult
	err := c.call(ctx, "campaigns/send-test", params{
		"cid":         cid,
		"test_emails": testEmails,
		"send_type":   sendType,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UnscheduleCampaign returns a scheduled campaign to draft.
//
// API: POST /campaigns/unschedule.json
func (c *Client) UnscheduleCampaign(ctx context.Context, cid string) (*CampaignActionResult, error) {
	return c.campaignAction(ctx, "campaigns/unschedule", cid)
}

// UpdateCampaign changes one setting group of a draft campaign.
//
// API: POST /campaigns/update.json
//
// Idempotency: Idempotent
//
// Errors:
//   - ErrNilCampaignUpdate: If update is nil, before any request.
//   - ValidationError: If the campaign is not a draft. Settings the API refused are
//     listed in the result's Errors.
func (c *Client) UpdateCampaign(ctx context.Context, cid string, update CampaignUpdate) (*CampaignUpdateResult, error) {
	if isNilUpdate(update) {
		return nil, ErrNilCampaignUpdate
	}
	name, value := update.campaignUpdate()

	var resp CampaignUpdateResult
	if err := c.call(ctx, "campaigns/update", params{"cid": cid, "name": name, "value": value}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetCampaignTemplateContent returns the editable sections of the campaign's template, keyed by section name.
//
// API: POST /campaigns/template-content.json
func (c *Client) GetCampaignTemplateContent(ctx context.Context, cid string) (map[string]string, error) {
	var resp StringMap
	if err := c.call(ctx, "campaigns/template-content", params{"cid": cid}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

