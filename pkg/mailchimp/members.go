package mailchimp

import (
	"context"
	"strings"
)

// MemberStatus is the subscription state of a member.
type MemberStatus string

const (
	StatusSubscribed   MemberStatus = "subscribed"
	StatusUnsubscribed MemberStatus = "unsubscribed"
	StatusCleaned      MemberStatus = "cleaned"
)

// Email types.
const (
	EmailTypeHTML = "html"
	EmailTypeText = "text"
)

// MemberInfo describes one list member.
type MemberInfo struct {
	ID              string          `json:"id"`
	Email           string          `json:"email"`
	EUID            string          `json:"euid"`
	LEID            string          `json:"leid"`
	EmailType       string          `json:"email_type"`
	IPSignup        string          `json:"ip_signup"`
	TimestampSignup string          `json:"timestamp_signup"`
	IPOpt           string          `json:"ip_opt"`
	TimestampOpt    string          `json:"timestamp_opt"`
	MemberRating    int             `json:"member_rating"`
	InfoChanged     string          `json:"info_changed"`
	WebID           int             `json:"web_id"`
	ListID          string          `json:"list_id"`
	ListName        string          `json:"list_name"`
	Language        string          `json:"language"`
	IsGoldenMonkey  bool            `json:"is_gmonkey"`
	Status          MemberStatus    `json:"status"`
	Timestamp       string          `json:"timestamp"`
	Merges          AnyMap          `json:"merges"`
	Geo             AnyMap          `json:"geo"`
	Clients         AnyMap          `json:"clients"`
	StaticSegments  []MemberSegment `json:"static_segments"`
	Notes           []MemberNote    `json:"notes"`
}

// Identifier returns the EmailParameter that addresses this member.
func (m MemberInfo) Identifier() EmailParameter {
	switch {
	case m.Email != "":
		return EmailParameter{Email: m.Email}
	case m.EUID != "":
		return EmailParameter{EUID: m.EUID}
	default:
		return EmailParameter{LEID: m.LEID}
	}
}

// MemberSegment is a static segment a member belongs to.
type MemberSegment struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Added string `json:"added"`
}

// MemberNote is a note attached to a member.
type MemberNote struct {
	ID        int    `json:"id"`
	Note      string `json:"note"`
	Created   string `json:"created"`
	Updated   string `json:"updated"`
	CreatedBy string `json:"created_by_name"`
}

// MemberInfoResult is the outcome of GetMemberInfo.
type MemberInfoResult struct {
	SuccessCount int          `json:"success_count"`
	ErrorCount   int          `json:"error_count"`
	Errors       []BatchError `json:"errors"`
	Data         []MemberInfo `json:"data"`
}

// Err aggregates the per-item errors, or returns nil.
func (r *MemberInfoResult) Err() error { return batchErrors(r.Errors) }

// MembersResult is one page of list members.
type MembersResult struct {
	Total int          `json:"total"`
	Data  []MemberInfo `json:"data"`
}

// MemberActivity is the recent activity of one member.
type MemberActivity struct {
	Email    EmailParameter `json:"email"`
	Activity []ActivityItem `json:"activity"`
}

// ActivityItem is one action of a member.
type ActivityItem struct {
	Action       string `json:"action"`
	Timestamp    string `json:"timestamp"`
	URL          string `json:"url"`
	Type         string `json:"type"`
	CampaignID   string `json:"campaign_id"`
	CampaignData AnyMap `json:"campaign_data"`
}

// MemberActivityResult is the outcome of GetMemberActivity.
type MemberActivityResult struct {
	SuccessCount int              `json:"success_count"`
	ErrorCount   int              `json:"error_count"`
	Errors       []BatchError     `json:"errors"`
	Data         []MemberActivity `json:"data"`
}

// Err aggregates the per-item errors, or returns nil.
func (r *MemberActivityResult) Err() error { return batchErrors(r.Errors) }

// BatchSubscribeResult is the outcome of BatchSubscribe. AddCount,
// UpdateCount and ErrorCount sum to the number of records submitted.
type BatchSubscribeResult struct {
	AddCount    int              `json:"add_count"`
	Adds        []EmailParameter `json:"adds"`
	UpdateCount int              `json:"update_count"`
	Updates     []EmailParameter `json:"updates"`
	ErrorCount  int              `json:"error_count"`
	Errors      []BatchError     `json:"errors"`
}

// Err aggregates the per-item errors, or returns nil.
func (r *BatchSubscribeResult) Err() error { return batchErrors(r.Errors) }

// BatchUnsubscribeResult is the outcome of BatchUnsubscribe.
type BatchUnsubscribeResult struct {
	SuccessCount int          `json:"success_count"`
	ErrorCount   int          `json:"error_count"`
	Errors       []BatchError `json:"errors"`
}

// Err aggregates the per-item errors, or returns nil.
func (r *BatchUnsubscribeResult) Err() error { return batchErrors(r.Errors) }

// GetMembersOptions are the optional parameters of GetAllMembersForList.
type GetMembersOptions struct {
	// Status defaults to subscribed.
	Status MemberStatus
	Page
	// SortField is any member field or merge tag; the API ignores unknown
	// values.
	SortField string
	SortDir   string
	Segment   *CampaignSegmentOptions
}

// SubscribeOptions are the optional parameters of Subscribe.
type SubscribeOptions struct {
	MergeVars *MergeVars
	// EmailType defaults to html.
	EmailType string
	// DoubleOptIn defaults to true.
	DoubleOptIn    *bool
	UpdateExisting bool
	// ReplaceInterests defaults to true.
	ReplaceInterests *bool
	SendWelcome      bool
}

// UpdateMemberOptions are the optional parameters of UpdateMember.
type UpdateMemberOptions struct {
	// EmailType keeps the member's current type when empty.
	EmailType string
	// ReplaceInterests defaults to true.
	ReplaceInterests *bool
}

// UnsubscribeOptions are the optional parameters of Unsubscribe.
type UnsubscribeOptions struct {
	DeleteMember bool
	// SendGoodbye defaults to true.
	SendGoodbye *bool
	// SendNotify defaults to true.
	SendNotify *bool
}

// BatchSubscribeOptions are the optional parameters of BatchSubscribe.
type BatchSubscribeOptions struct {
	// DoubleOptIn defaults to true.
	DoubleOptIn    *bool
	UpdateExisting bool
	// ReplaceInterests defaults to true.
	ReplaceInterests *bool
}

// BatchUnsubscribeOptions are the optional parameters of BatchUnsubscribe.
type BatchUnsubscribeOptions struct {
	DeleteMember bool
	// SendGoodbye defaults to true.
	SendGoodbye *bool
	SendNotify  bool
}

// GetMemberActivity returns the recent activity of up to 50 members.
//
// API: POST /lists/member-activity.json
func (c *Client) GetMemberActivity(ctx context.Context, listID string, emails []EmailParameter) (*MemberActivityResult, error) {
	valid, rejects := partitionEmails(emails)

	var resp MemberActivityResult
	if len(valid) > 0 {
		if err := c.call(ctx, "lists/member-activity", params{"id": listID, "emails": valid}, &resp); err != nil {
			return nil, err
		}
	}
	resp.Errors = append(resp.Errors, rejects...)
	resp.ErrorCount += len(rejects)
	return &resp, nil
}

// BatchSubscribe subscribes or updates many members in one call.
//
// API: POST /lists/batch-subscribe.json
//
// Idempotency: Idempotent with UpdateExisting
//
// Errors:
//   - Per item: in the result. Items with an invalid identifier are not sent and
//     are reported with code -100. The result's Err aggregates them.
//   - Whole call: transport failures and list errors such as List_DoesNotExist.
func (c *Client) BatchSubscribe(ctx context.Context, listID string, batch []BatchEmailParameter, opts *BatchSubscribeOptions) (*BatchSubscribeResult, error) {
	if opts == nil {
		opts = &BatchSubscribeOptions{}
	}
	valid, rejects := partitionBatch(batch)

	var resp BatchSubscribeResult
	if len(valid) > 0 {
		err := c.call(ctx, "lists/batch-subscribe", params{
			"id":                listID,
			"batch":             valid,
			"double_optin":      boolOr(opts.DoubleOptIn, true),
			"update_existing":   opts.UpdateExisting,
			"replace_interests": boolOr(opts.ReplaceInterests, true),
		}, &resp)
		if err != nil {
			return nil, err
		}
	}
	resp.Errors = append(resp.Errors, rejects...)
	resp.ErrorCount += len(rejects)
	return &resp, nil
}

// BatchUnsubscribe unsubscribes or deletes many members in one call.
//
// API: POST /lists/batch-unsubscribe.json
//
// Idempotency: Idempotent
//
// Errors:
//   - Per item: in the result. Items with an invalid identifier are not sent and
//     are reported with code -100.
//   - Whole call: transport failures and list errors such as List_DoesNotExist.
func (c *Client) BatchUnsubscribe(ctx context.Context, listID string, emails []EmailParameter, opts *BatchUnsubscribeOptions) (*BatchUnsubscribeResult, error) {
	if opts == nil {
		opts = &BatchUnsubscribeOptions{}
	}
	valid, rejects := partitionEmails(emails)

	var resp BatchUnsubscribeResult
	if len(valid) > 0 {
		err := c.call(ctx, "lists/batch-unsubscribe", params{
			"id":            listID,
			"batch":         valid,
			"delete_member": opts.DeleteMember,
			"send_goodbye":  boolOr(opts.SendGoodbye, true),
			"send_notify":   opts.SendNotify,
		}, &resp)
		if err != nil {
			return nil, err
		}
	}
	resp.Errors = append(resp.Errors, rejects...)
	resp.ErrorCount += len(rejects)
	return &resp, nil
}

// GetMemberInfo returns details for up to 50 members.
//
// API: POST /lists/member-info.json
func (c *Client) GetMemberInfo(ctx context.Context, listID string, emails []EmailParameter) (*MemberInfoResult, error) {
	valid, rejects := partitionEmails(emails)

	var resp MemberInfoResult
	if len(valid) > 0 {
		if err := c.call(ctx, "lists/member-info", params{"id": listID, "emails": valid}, &resp); err != nil {
			return nil, err
		}
	}
	resp.Errors = append(resp.Errors, rejects...)
	resp.ErrorCount += len(rejects)
	return &resp, nil
}

// GetAllMembersForList returns one page of a list's members with the given status.
//
// API: POST /lists/members.json
func (c *Client) GetAllMembersForList(ctx context.Context, listID string, opts *GetMembersOptions) (*MembersResult, error) {
	if opts == nil {
		opts = &GetMembersOptions{}
	}
	o := params{
		"start":    opts.start(),
		"limit":    opts.limit(25, 100),
		"sort_dir": normalizeDir(opts.SortDir, SortAsc),
	}
	if field := strings.TrimSpace(opts.SortField); field != "" {
		o["sort_field"] = field
	}
	if opts.Segment != nil {
		o["segment"] = opts.Segment
	}

	var resp MembersResult
	err := c.call(ctx, "lists/members", params{
		"id":     listID,
		"status": defaultString(string(opts.Status), string(StatusSubscribed)),
		"opts":   o,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// Subscribe subscribes one address to a list.
//
// API: POST /lists/subscribe.json
//
// Idempotency: Not idempotent. With double opt-in every call sends a confirmation.
//
// Errors:
//   - ErrNoEmailIdentifier, ErrAmbiguousEmailIdentifier: Before any request.
//   - List_AlreadySubscribed (IsAlreadySubscribed): Unless UpdateExisting is set.
//   - List_DoesNotExist (IsNotFound): If the list does not exist.
func (c *Client) Subscribe(ctx context.Context, listID string, email EmailParameter, opts *SubscribeOptions) (*EmailParameter, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &SubscribeOptions{}
	}
	p := params{
		"id":                listID,
		"email":             email,
		"email_type":        defaultString(opts.EmailType, EmailTypeHTML),
		"double_optin":      boolOr(opts.DoubleOptIn, true),
		"update_existing":   opts.UpdateExisting,
		"replace_interests": boolOr(opts.ReplaceInterests, true),
		"send_welcome":      opts.SendWelcome,
	}
	if opts.MergeVars != nil {
		p["merge_vars"] = opts.MergeVars
	}

	var resp EmailParameter
	if err := c.call(ctx, "lists/subscribe", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateMember changes a member's merge fields, interests or email type.
//
// API: POST /lists/update-member.json
//
// Idempotency: Idempotent
//
// Errors:
//   - ErrNoEmailIdentifier, ErrAmbiguousEmailIdentifier: Before any request.
//   - Email_NotExists (IsNotFound): If the member is not on the list.
func (c *Client) UpdateMember(ctx context.Context, listID string, email EmailParameter, mergeVars MergeVars, opts *UpdateMemberOptions) (*EmailParameter, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &UpdateMemberOptions{}
	}
	p := params{
		"id":                listID,
		"email":             email,
		"merge_vars":        mergeVars,
		"replace_interests": boolOr(opts.ReplaceInterests, true),
	}
	if opts.EmailType != "" {
		p["email_type"] = opts.EmailType
	}

	var resp EmailParameter
	if err := c.call(ctx, "lists/update-member", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Unsubscribe unsubscribes or deletes one member.
//
// API: POST /lists/unsubscribe.json
//
// Idempotency: Not idempotent
//
// Errors:
//   - ErrNoEmailIdentifier, ErrAmbiguousEmailIdentifier: Before any request.
//   - List_NotSubscribed (IsNotSubscribed): If the member is already unsubscribed.
//   - Email_NotExists (IsNotFound): If the member is not on the list.
func (c *Client) Unsubscribe(ctx context.Context, listID string, email EmailParameter, opts *UnsubscribeOptions) (*CompleteResult, error) {
	if err := email.Validate(); err != nil {
		return nil, err
	}
	if opts == nil {
		opts = &UnsubscribeOptions{}
	}

	var resp CompleteResult
	err := c.call(ctx, "lists/unsubscribe", params{
		"id":            listID,
		"email":         email,
		"delete_member": opts.DeleteMember,
		"send_goodbye":  boolOr(opts.SendGoodbye, true),
		"send_notify":   boolOr(opts.SendNotify, true),
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
