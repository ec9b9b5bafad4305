package mailchimp

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/util/sets"
)

// List sort fields.
const (
	ListSortCreated = "created"
	ListSortWeb     = "web"
)

var listSortFields = sets.New(ListSortCreated, ListSortWeb)

// List is a mailing list.
type List struct {
	ID                string    `json:"id"`
	WebID             int       `json:"web_id"`
	Name              string    `json:"name"`
	DateCreated       string    `json:"date_created"`
	EmailTypeOption   bool      `json:"email_type_option"`
	UseAwesomebar     bool      `json:"use_awesomebar"`
	DefaultFromName   string    `json:"default_from_name"`
	DefaultFromEmail  string    `json:"default_from_email"`
	DefaultSubject    string    `json:"default_subject"`
	DefaultLanguage   string    `json:"default_language"`
	ListRating        float64   `json:"list_rating"`
	SubscribeURLShort string    `json:"subscribe_url_short"`
	SubscribeURLLong  string    `json:"subscribe_url_long"`
	BeamerAddress     string    `json:"beamer_address"`
	Visibility        string    `json:"visibility"`
	Stats             ListStats `json:"stats"`
	Modules           []string  `json:"modules"`
}

// ListStats are the aggregate counters of a list.
type ListStats struct {
	MemberCount               int     `json:"member_count"`
	UnsubscribeCount          int     `json:"unsubscribe_count"`
	CleanedCount              int     `json:"cleaned_count"`
	MemberCountSinceSend      int     `json:"member_count_since_send"`
	UnsubscribeCountSinceSend int     `json:"unsubscribe_count_since_send"`
	CleanedCountSinceSend     int     `json:"cleaned_count_since_send"`
	CampaignCount             int     `json:"campaign_count"`
	GroupingCount             int     `json:"grouping_count"`
	GroupCount                int     `json:"group_count"`
	MergeVarCount             int     `json:"merge_var_count"`
	AvgSubRate                float64 `json:"avg_sub_rate"`
	AvgUnsubRate              float64 `json:"avg_unsub_rate"`
	TargetSubRate             float64 `json:"target_sub_rate"`
	OpenRate                  float64 `json:"open_rate"`
	ClickRate                 float64 `json:"click_rate"`
}

// ListFilter narrows GetLists. All fields are optional.
type ListFilter struct {
	ListID        string `json:"list_id,omitempty"`
	ListName      string `json:"list_name,omitempty"`
	FromName      string `json:"from_name,omitempty"`
	FromEmail     string `json:"from_email,omitempty"`
	FromSubject   string `json:"from_subject,omitempty"`
	CreatedBefore string `json:"created_before,omitempty"`
	CreatedAfter  string `json:"created_after,omitempty"`
	Exact         *bool  `json:"exact,omitempty"`
}

// ListResult is one page of lists.
type ListResult struct {
	Total  int             `json:"total"`
	Data   []List          `json:"data"`
	Errors []ListListError `json:"errors"`
}

// ListListError reports a filter the API could not apply.
type ListListError struct {
	Param   string `json:"param"`
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// GetListsOptions are the optional parameters of GetLists.
type GetListsOptions struct {
	Filter *ListFilter
	Page
	SortField string
	SortDir   string
}

// ListActivity is one day of list activity.
type ListActivity struct {
	Day             string `json:"day"`
	EmailsSent      int    `json:"emails_sent"`
	UniqueOpens     int    `json:"unique_opens"`
	RecipientClicks int    `json:"recipient_clicks"`
	HardBounce      int    `json:"hard_bounce"`
	SoftBounce      int    `json:"soft_bounce"`
	Abuse           int    `json:"abuse_reports"`
	Subs            int    `json:"subs"`
	Unsubs          int    `json:"unsubs"`
	OtherAdds       int    `json:"other_adds"`
	OtherRemoves    int    `json:"other_removes"`
}

// SubscriberLocation is the share of a list's members in one country.
type SubscriberLocation struct {
	Country string  `json:"country"`
	CC      string  `json:"cc"`
	Percent float64 `json:"percent"`
	Total   float64 `json:"total"`
}

// AbuseReport is one complaint about a campaign.
type AbuseReport struct {
	Date       string `json:"date"`
	Email      string `json:"email"`
	CampaignID string `json:"campaign_id"`
	Type       string `json:"type"`
}

// AbuseResult is one page of abuse reports.
type AbuseResult struct {
	Total int           `json:"total"`
	Data  []AbuseReport `json:"data"`
}

// AbuseReportsOptions are the optional parameters of GetListAbuseReports.
type AbuseReportsOptions struct {
	Page
	// Since only returns complaints made after this time.
	Since time.Time
}

// GroupingType controls how interest groups are shown on signup forms.
type GroupingType string

const (
	GroupingCheckboxes GroupingType = "checkboxes"
	GroupingHidden     GroupingType = "hidden"
	GroupingDropdown   GroupingType = "dropdown"
	GroupingRadio      GroupingType = "radio"
)

// InterestGrouping is a set of interest groups on a list.
type InterestGrouping struct {
	ID           int             `json:"id"`
	Name         string          `json:"name"`
	FormField    GroupingType    `json:"form_field"`
	DisplayOrder string          `json:"display_order"`
	Groups       []InterestGroup `json:"groups"`
}

// InterestGroup is one group of an InterestGrouping.
type InterestGroup struct {
	Bit          string `json:"bit"`
	Name         string `json:"name"`
	DisplayOrder string `json:"display_order"`
	Subscribers  int    `json:"subscribers"`
}

// GroupingUpdate is a change to an interest grouping. Build one with
// RenameGrouping or ChangeGroupingType.
type GroupingUpdate struct {
	name  string
	value string
}

// RenameGrouping renames an interest grouping.
func RenameGrouping(name string) GroupingUpdate {
	return GroupingUpdate{name: "name", value: name}
}

// ChangeGroupingType changes how an interest grouping is displayed.
func ChangeGroupingType(t GroupingType) GroupingUpdate {
	return GroupingUpdate{name: "type", value: string(t)}
}

// GetListAbuseReports returns one page of abuse reports for a list.
//
// API: POST /lists/abuse-reports.json
func (c *Client) GetListAbuseReports(ctx context.Context, listID string, opts *AbuseReportsOptions) (*AbuseResult, error) {
	if opts == nil {
		opts = &AbuseReportsOptions{}
	}
	p := params{
		"id":    listID,
		"start": opts.start(),
		"limit": opts.limit(500, 1000),
	}
	if since := FormatTime(opts.Since); since != "" {
		p["since"] = since
	}

	var resp AbuseResult
	if err := c.call(ctx, "lists/abuse-reports", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetListActivity returns the daily activity of a list.
//
// API: POST /lists/activity.json
func (c *Client) GetListActivity(ctx context.Context, listID string) ([]ListActivity, error) {
	var resp []ListActivity
	if err := c.call(ctx, "lists/activity", params{"id": listID}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetLists returns one page of lists matching the filter.
//
// API: POST /lists/list.json
func (c *Client) GetLists(ctx context.Context, opts *GetListsOptions) (*ListResult, error) {
	if opts == nil {
		opts = &GetListsOptions{}
	}
	p := params{
		"start":      opts.start(),
		"limit":      opts.limit(25, 100),
		"sort_field": normalizeField(opts.SortField, ListSortCreated, listSortFields),
		"sort_dir":   normalizeDir(opts.SortDir, SortDesc),
	}
	if opts.Filter != nil {
		p["filters"] = opts.Filter
	}

	var resp ListResult
	if err := c.call(ctx, "lists/list", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddListInterestGroup adds a group to an interest grouping.
//
// API: POST /lists/interest-group-add.json
func (c *Client) AddListInterestGroup(ctx context.Context, listID, groupName string, groupingID int) (*CompleteResult, error) {
	var resp CompleteResult
	err := c.call(ctx, "lists/interest-group-add", params{
		"id":          listID,
		"group_name":  groupName,
		"grouping_id": groupingID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteListInterestGroup removes a group from an interest grouping.
//
// API: POST /lists/interest-group-del.json
func (c *Client) DeleteListInterestGroup(ctx context.Context, listID, groupName string, groupingID int) (*CompleteResult, error) {
	var resp CompleteResult
	err := c.call(ctx, "lists/interest-group-del", params{
		"id":          listID,
		"group_name":  groupName,
		"grouping_id": groupingID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateListInterestGroup renames a group.
//
// API: POST /lists/interest-group-update.json
func (c *Client) UpdateListInterestGroup(ctx context.Context, listID, oldName, newName string, groupingID int) (*CompleteResult, error) {
	var resp CompleteResult
	err := c.call(ctx, "lists/interest-group-update", params{
		"id":          listID,
		"old_name":    oldName,
		"new_name":    newName,
		"grouping_id": groupingID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddListInterestGrouping creates an interest grouping with its initial groups.
//
// API: POST /lists/interest-grouping-add.json
func (c *Client) AddListInterestGrouping(ctx context.Context, listID, name string, groupingType GroupingType, groups []string) (*IDResult, error) {
	if groups == nil {
		groups = []string{}
	}

	var resp IDResult
	err := c.call(ctx, "lists/interest-grouping-add", params{
		"id":     listID,
		"name":   name,
		"type":   defaultString(string(groupingType), string(GroupingCheckboxes)),
		"groups": groups,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteListInterestGrouping takes listID for symmetry with the other grouping
// calls; the remote method only needs the grouping id.
//
// API: POST /lists/interest-grouping-del.json
func (c *Client) DeleteListInterestGrouping(ctx context.Context, listID string, groupingID int) (*CompleteResult, error) {
	var resp CompleteResult
	if err := c.call(ctx, "lists/interest-grouping-del", params{"grouping_id": groupingID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateListInterestGrouping renames a grouping or changes its type.
//
// API: POST /lists/interest-grouping-update.json
//
// Errors:
//   - ErrEmptyGroupingUpdate: If update is the zero value, before any request.
func (c *Client) UpdateListInterestGrouping(ctx context.Context, listID string, groupingID int, update GroupingUpdate) (*CompleteResult, error) {
	if update.name == "" {
		return nil, ErrEmptyGroupingUpdate
	}

	var resp CompleteResult
	err := c.call(ctx, "lists/interest-grouping-update", params{
		"grouping_id": groupingID,
		"name":        update.name,
		"value":       update.value,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetListInterestGroupings returns the interest groupings of a list.
//
// API: POST /lists/interest-groupings.json
func (c *Client) GetListInterestGroupings(ctx context.Context, listID string, counts bool) ([]InterestGrouping, error) {
	var resp []InterestGrouping
	if err := c.call(ctx, "lists/interest-groupings", params{"id": listID, "counts": counts}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetLocationsForList returns the countries a list's members are in.
//
// API: POST /lists/locations.json
func (c *Client) GetLocationsForList(ctx context.Context, listID string) ([]SubscriberLocation, error) {
	var resp []SubscriberLocation
	if err := c.call(ctx, "lists/locations", params{"id": listID}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}
