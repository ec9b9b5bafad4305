package mailchimp

import (
	"context"
	"time"
)

// API defines the interface for the MailChimp SDK. Each method maps to one
// remote method of the 2.0 API and performs a single request.
//
// Optional parameters are grouped in per-method option structs; passing nil
// selects the documented defaults. Paging limits are clamped to the method's
// ceiling and unknown sort fields or directions fall back to the defaults.
type API interface {
	CampaignsAPI
	EcommAPI
	FoldersAPI
	GalleryAPI
	ListsAPI
	HelperAPI
	UsersAPI
	TemplatesAPI
	ReportsAPI
}

// CampaignsAPI covers the campaigns/* methods.
type CampaignsAPI interface {
	// GetCampaignContent returns the html and text content of a campaign, as it
	// appears in the archive (default), the preview, or raw.
	//
	// API: campaigns/content
	GetCampaignContent(ctx context.Context, cid string, opts *CampaignContentOptions) (*CampaignContent, error)

	// CreateCampaign creates a new draft campaign. An account can hold at most
	// 32,000 campaigns.
	//
	// API: campaigns/create
	CreateCampaign(ctx context.Context, req CreateCampaignRequest) (*Campaign, error)

	// DeleteCampaign deletes a campaign. This cannot be undone.
	//
	// API: campaigns/delete
	DeleteCampaign(ctx context.Context, cid string) (*CampaignActionResult, error)

	// GetCampaigns lists campaigns matching the filter. Sort field is one of
	// create_time (default), send_time, title, subject; direction DESC
	// (default) or ASC. Limit defaults to 25, max 1000.
	//
	// API: campaigns/list
	GetCampaigns(ctx context.Context, opts *GetCampaignsOptions) (*CampaignListResult, error)

	// PauseCampaign pauses an AutoResponder or RSS campaign.
	//
	// API: campaigns/pause
	PauseCampaign(ctx context.Context, cid string) (*CampaignActionResult, error)

	// ReplicateCampaign copies a campaign.
	//
	// API: campaigns/replicate
	ReplicateCampaign(ctx context.Context, cid string) (*Campaign, error)

	// ResumeCampaign resumes an AutoResponder or RSS campaign.
	//
	// API: campaigns/resume
	ResumeCampaign(ctx context.Context, cid string) (*CampaignActionResult, error)

	// ScheduleBatchCampaign schedules a regular campaign to be sent in batches.
	// Defaults to 2 batches (2-26) staggered by 5 minutes (5, 10, 15, 20, 25,
	// 30 or 60).
	//
	// API: campaigns/schedule-batch
	ScheduleBatchCampaign(ctx context.Context, cid string, scheduleTime time.Time, opts *ScheduleBatchOptions) (*CampaignActionResult, error)

	// ScheduleCampaign schedules a campaign. For A/B split campaigns
	// scheduleTime is Group A's time and opts may carry Group B's.
	//
	// API: campaigns/schedule
	ScheduleCampaign(ctx context.Context, cid string, scheduleTime time.Time, opts *ScheduleOptions) (*CampaignActionResult, error)

	// CampaignSegmentTest counts the members of a list matched by the
	// segmentation options.
	//
	// API: campaigns/segment-test
	CampaignSegmentTest(ctx context.Context, listID string, options CampaignSegmentOptions) (*CampaignSegmentTestResult, error)

	// SendCampaign sends a campaign immediately. RSS campaigns are started.
	//
	// API: campaigns/send
	SendCampaign(ctx context.Context, cid string) (*CampaignActionResult, error)

	// SendCampaignTest sends a test of the campaign to the given addresses,
	// as html (default) or text.
	//
	// API: campaigns/send-test
	SendCampaignTest(ctx context.Context, cid string, testEmails []string, opts *SendTestOptions) (*CampaignActionResult, error)

	// UnscheduleCampaign unschedules a scheduled campaign.
	//
	// API: campaigns/unschedule
	UnscheduleCampaign(ctx context.Context, cid string) (*CampaignActionResult, error)

	// UpdateCampaign changes one setting of an unsent campaign. The campaign
	// type cannot be changed.
	//
	// API: campaigns/update
	UpdateCampaign(ctx context.Context, cid string, update CampaignUpdate) (*CampaignUpdateResult, error)

	// GetCampaignTemplateContent returns the editable template sections of a
	// campaign. Section names depend on the template.
	//
	// API: campaigns/template-content
	GetCampaignTemplateContent(ctx context.Context, cid string) (map[string]string, error)
}

// EcommAPI covers the ecomm/* methods.
type EcommAPI interface {
	// AddOrder imports a completed order for segmentation.
	//
	// API: ecomm/order-add
	AddOrder(ctx context.Context, order Order) (*CompleteResult, error)

	// DeleteOrder removes an order.
	//
	// API: ecomm/order-del
	DeleteOrder(ctx context.Context, storeID, orderID string) (*CompleteResult, error)

	// GetOrders lists orders, optionally for one campaign. Limit defaults to
	// 100, max 500.
	//
	// API: ecomm/orders
	GetOrders(ctx context.Context, opts *GetOrdersOptions) (*OrderListResult, error)
}

// FoldersAPI covers the folders/* methods.
type FoldersAPI interface {
	// GetFolders lists folders of a type.
	//
	// API: folders/list
	GetFolders(ctx context.Context, folderType FolderType) ([]Folder, error)

	// AddFolder creates a folder. Names are unique, max 100 bytes.
	//
	// API: folders/add
	AddFolder(ctx context.Context, name string, folderType FolderType) (*FolderAddResult, error)

	// DeleteFolder deletes a folder. Its contents become unfiled.
	//
	// API: folders/del
	DeleteFolder(ctx context.Context, folderID int, folderType FolderType) (*CompleteResult, error)

	// UpdateFolder renames a folder.
	//
	// API: folders/update
	UpdateFolder(ctx context.Context, folderID int, name string, folderType FolderType) (*CompleteResult, error)
}

// GalleryAPI covers the gallery/* methods.
type GalleryAPI interface {
	// GalleryFolderAddFileTo files a gallery file in a folder.
	//
	// API: gallery/add-file-to-folder
	GalleryFolderAddFileTo(ctx context.Context, fileID, folderID int) (bool, error)

	// GalleryFolderAdd creates a gallery folder (255 characters max).
	//
	// API: gallery/add-folder
	GalleryFolderAdd(ctx context.Context, name string) (*GalleryFolder, error)

	// GetGalleries returns a page of the file gallery. Type defaults to
	// images; sort by size, time (default) or name; direction desc (default)
	// or asc. Limit defaults to 25, max 100.
	//
	// API: gallery/list
	GetGalleries(ctx context.Context, opts *GetGalleriesOptions) (*GalleryListResult, error)

	// GetGalleryFolders lists gallery folders. Limit defaults to 25, max 100.
	//
	// API: gallery/list-folders
	GetGalleryFolders(ctx context.Context, opts *GetGalleryFoldersOptions) (*GalleryFoldersResult, error)

	// GalleryFolderRemoveAllFilesFrom empties a folder. Files are not deleted.
	//
	// API: gallery/remove-all-files-from-folder
	GalleryFolderRemoveAllFilesFrom(ctx context.Context, folderID int) (bool, error)

	// GalleryFolderRemoveFileFrom takes one file out of a folder.
	//
	// API: gallery/remove-file-from-folder
	GalleryFolderRemoveFileFrom(ctx context.Context, fileID, folderID int) (bool, error)

	// GalleryFolderRemove deletes a gallery folder.
	//
	// API: gallery/remove-folder
	GalleryFolderRemove(ctx context.Context, folderID int) (bool, error)
}

// ListsAPI covers the lists/* methods.
type ListsAPI interface {
	// GetListAbuseReports returns addresses that complained about campaigns
	// sent to the list. Limit defaults to 500, max 1000.
	//
	// API: lists/abuse-reports
	GetListAbuseReports(ctx context.Context, listID string, opts *AbuseReportsOptions) (*AbuseResult, error)

	// GetListActivity returns up to 180 days of daily activity for a list.
	// AutoResponder activity is not included.
	//
	// API: lists/activity
	GetListActivity(ctx context.Context, listID string) ([]ListActivity, error)

	// GetMemberActivity returns the last 100 activities of up to 50 members.
	// Invalid identifiers are reported per item.
	//
	// API: lists/member-activity
	GetMemberActivity(ctx context.Context, listID string, emails []EmailParameter) (*MemberActivityResult, error)

	// BatchSubscribe subscribes many addresses at once. Keep batches to 5k-10k
	// records and allow for long calls. Each record succeeds or fails on its
	// own; the result reports which.
	//
	// API: lists/batch-subscribe
	BatchSubscribe(ctx context.Context, listID string, batch []BatchEmailParameter, opts *BatchSubscribeOptions) (*BatchSubscribeResult, error)

	// BatchUnsubscribe unsubscribes many addresses at once, reporting per item.
	//
	// API: lists/batch-unsubscribe
	BatchUnsubscribe(ctx context.Context, listID string, emails []EmailParameter, opts *BatchUnsubscribeOptions) (*BatchUnsubscribeResult, error)

	// GetLists lists the account's lists. Sort field created (default) or
	// web; direction DESC (default) or ASC. Limit defaults to 25, max 100.
	//
	// API: lists/list
	GetLists(ctx context.Context, opts *GetListsOptions) (*ListResult, error)

	// AddListInterestGroup adds a group to an interest grouping.
	//
	// API: lists/interest-group-add
	AddListInterestGroup(ctx context.Context, listID, groupName string, groupingID int) (*CompleteResult, error)

	// DeleteListInterestGroup deletes a group from an interest grouping.
	//
	// API: lists/interest-group-del
	DeleteListInterestGroup(ctx context.Context, listID, groupName string, groupingID int) (*CompleteResult, error)

	// UpdateListInterestGroup renames an interest group.
	//
	// API: lists/interest-group-update
	UpdateListInterestGroup(ctx context.Context, listID, oldName, newName string, groupingID int) (*CompleteResult, error)

	// AddListInterestGrouping adds an interest grouping. Adding the first
	// grouping enables interest groups on the list.
	//
	// API: lists/interest-grouping-add
	AddListInterestGrouping(ctx context.Context, listID, name string, groupingType GroupingType, groups []string) (*IDResult, error)

	// DeleteListInterestGrouping deletes a grouping, its groups and every
	// member's selections in it.
	//
	// API: lists/interest-grouping-del
	DeleteListInterestGrouping(ctx context.Context, listID string, groupingID int) (*CompleteResult, error)

	// UpdateListInterestGrouping changes the name or type of a grouping.
	//
	// API: lists/interest-grouping-update
	UpdateListInterestGrouping(ctx context.Context, listID string, groupingID int, update GroupingUpdate) (*CompleteResult, error)

	// GetListInterestGroupings returns the interest groupings of a list.
	// Subscriber counts are only computed when counts is true.
	//
	// API: lists/interest-groupings
	GetListInterestGroupings(ctx context.Context, listID string, counts bool) ([]InterestGrouping, error)

	// GetLocationsForList returns the countries of the list's subscribers.
	//
	// API: lists/locations
	GetLocationsForList(ctx context.Context, listID string) ([]SubscriberLocation, error)

	// GetMemberInfo returns details of up to 50 members. Invalid identifiers
	// are reported per item.
	//
	// API: lists/member-info
	GetMemberInfo(ctx context.Context, listID string, emails []EmailParameter) (*MemberInfoResult, error)

	// GetAllMembersForList returns one page of members with a status
	// (subscribed by default), optionally refined by a segment. Limit defaults
	// to 25, max 100. Direction ASC (default) or DESC.
	//
	// API: lists/members
	GetAllMembersForList(ctx context.Context, listID string, opts *GetMembersOptions) (*MembersResult, error)

	// Subscribe adds an address to a list. By default a confirmation email is
	// sent and the member only appears once it is confirmed.
	//
	// API: lists/subscribe
	Subscribe(ctx context.Context, listID string, email EmailParameter, opts *SubscribeOptions) (*EmailParameter, error)

	// UpdateMember updates a member's merge values, email type or interests.
	//
	// API: lists/update-member
	UpdateMember(ctx context.Context, listID string, email EmailParameter, mergeVars MergeVars, opts *UpdateMemberOptions) (*EmailParameter, error)

	// Unsubscribe removes an address from a list.
	//
	// API: lists/unsubscribe
	Unsubscribe(ctx context.Context, listID string, email EmailParameter, opts *UnsubscribeOptions) (*CompleteResult, error)

	// GetMergeVars returns the merge tags of up to 100 lists.
	//
	// API: lists/merge-vars
	GetMergeVars(ctx context.Context, listIDs []string) (*MergeVarResult, error)

	// AddMergeVar adds a merge tag (10 bytes max, A-Z 0-9 _) to a list.
	//
	// API: lists/merge-var-add
	AddMergeVar(ctx context.Context, listID, tag, name string, opts *MergeVarOptions) (*MergeVarItem, error)

	// UpdateMergeVar updates a merge tag. The field type cannot change.
	//
	// API: lists/merge-var-update
	UpdateMergeVar(ctx context.Context, listID, tag string, options MergeVarOptions) (*MergeVarItem, error)

	// DeleteMergeVar deletes a merge tag and its data from every member.
	//
	// API: lists/merge-var-del
	DeleteMergeVar(ctx context.Context, listID, tag string) (*CompleteResult, error)

	// ResetMergeVar clears a merge tag's data on every member.
	//
	// API: lists/merge-var-reset
	ResetMergeVar(ctx context.Context, listID, tag string) (*CompleteResult, error)

	// SetMergeVar sets a merge tag to value on every member. Only merge vars
	// 1-30 can be set this way.
	//
	// API: lists/merge-var-set
	SetMergeVar(ctx context.Context, listID, tag, value string) (*CompleteResult, error)

	// AddStaticSegment saves a static segment on a list.
	//
	// API: lists/static-segment-add
	AddStaticSegment(ctx context.Context, listID, name string) (*IDResult, error)

	// AddSegment saves a static or auto-updating segment on a list.
	//
	// API: lists/segment-add
	AddSegment(ctx context.Context, listID string, opts AddSegmentOptions) (*IDResult, error)

	// DeleteStaticSegment deletes a static segment and its memberships.
	//
	// API: lists/static-segment-del
	DeleteStaticSegment(ctx context.Context, listID string, segmentID int) (*CompleteResult, error)

	// AddStaticSegmentMembers adds existing list members to a static segment.
	// Keep batches under 10,000 addresses. Results are per item.
	//
	// API: lists/static-segment-members-add
	AddStaticSegmentMembers(ctx context.Context, listID string, segmentID int, emails []EmailParameter) (*StaticSegmentMembersResult, error)

	// DeleteStaticSegmentMembers removes members from a static segment. They
	// stay subscribed to the list. Results are per item.
	//
	// API: lists/static-segment-members-del
	DeleteStaticSegmentMembers(ctx context.Context, listID string, segmentID int, emails []EmailParameter) (*StaticSegmentMembersResult, error)

	// ResetStaticSegment removes every member from a static segment.
	//
	// API: lists/static-segment-reset
	ResetStaticSegment(ctx context.Context, listID string, segmentID int) (*CompleteResult, error)

	// GetStaticSegmentsForList returns the static segments of a list.
	//
	// API: lists/static-segments
	GetStaticSegmentsForList(ctx context.Context, listID string) ([]StaticSegment, error)

	// GetSegmentsForList returns the segments of a list, optionally only
	// static or saved ones.
	//
	// API: lists/segments
	GetSegmentsForList(ctx context.Context, listID string, segmentType SegmentType) (*SegmentResult, error)

	// GetWebhooks returns the webhooks registered on a list.
	//
	// API: lists/webhooks
	GetWebhooks(ctx context.Context, listID string) ([]WebhookInfo, error)

	// AddWebhook registers a webhook URL. A URL may only exist once per list.
	//
	// API: lists/webhook-add
	AddWebhook(ctx context.Context, listID, url string, opts *AddWebhookOptions) (*IDResult, error)

	// DeleteWebhook removes a webhook URL from a list.
	//
	// API: lists/webhook-del
	DeleteWebhook(ctx context.Context, listID, url string) (*CompleteResult, error)
}

// HelperAPI covers the helper/* methods.
type HelperAPI interface {
	// GetAccountDetails returns account information. exclude drops the
	// expensive sections: modules, orders, rewards-credits,
	// rewards-inspections, rewards-referrals, rewards-applied, integrations.
	//
	// API: helper/account-details
	GetAccountDetails(ctx context.Context, exclude []string) (*AccountDetails, error)

	// GetCampaignsForEmail returns the campaigns a member was sent.
	//
	// API: helper/campaigns-for-email
	GetCampaignsForEmail(ctx context.Context, email EmailParameter, opts *CampaignsForEmailOptions) ([]CampaignForEmail, error)

	// GetListsForEmail returns the lists a member is subscribed to.
	//
	// API: helper/lists-for-email
	GetListsForEmail(ctx context.Context, email EmailParameter) ([]ListForEmail, error)

	// GetChimpChatter returns the account's current chatter messages.
	//
	// API: helper/chimp-chatter
	GetChimpChatter(ctx context.Context) ([]ChimpChatterMessage, error)

	// Ping checks the API. It never fails: problems are described in the
	// returned message instead.
	//
	// API: helper/ping
	Ping(ctx context.Context) PingMessage

	// SearchMembers searches members account wide or on one list.
	//
	// API: helper/search-members
	SearchMembers(ctx context.Context, query string, opts *SearchMembersOptions) (*SearchMembersResult, error)

	// InlineCSS inlines the CSS of an html document, optionally stripping the
	// original style tags.
	//
	// API: helper/inline-css
	InlineCSS(ctx context.Context, html string, stripCSS bool) (*InlineCSSResult, error)
}

// UsersAPI covers the users/* methods.
type UsersAPI interface {
	// InviteUser invites a user to the account, as viewer by default.
	//
	// API: users/invite
	InviteUser(ctx context.Context, email string, opts *InviteUserOptions) (*UserActionResult, error)

	// InviteResend re-sends the most recent invite for an address.
	//
	// API: users/invite-resend
	InviteResend(ctx context.Context, email string) (*UserActionResult, error)

	// InviteRevoke revokes the most recent invite for an address.
	//
	// API: users/invite-revoke
	InviteRevoke(ctx context.Context, email string) (*UserActionResult, error)

	// GetInvites lists pending invitations.
	//
	// API: users/invites
	GetInvites(ctx context.Context) ([]UserInvite, error)

	// GetLogins lists the account's active logins.
	//
	// API: users/logins
	GetLogins(ctx context.Context) ([]UserLogin, error)

	// GetUserProfile returns the profile of the login owning the API key.
	//
	// API: users/profile
	GetUserProfile(ctx context.Context) (*UserProfile, error)
}

// TemplatesAPI covers the templates/* methods.
type TemplatesAPI interface {
	// AddTemplate creates a user template. Names are unique, max 50 bytes.
	// The html is template language source, not campaign content.
	//
	// API: templates/add
	AddTemplate(ctx context.Context, name, html string, opts *AddTemplateOptions) (*TemplateAddResult, error)

	// DeleteTemplate deactivates a user template.
	//
	// API: templates/del
	DeleteTemplate(ctx context.Context, templateID int) (*CompleteResult, error)

	// GetTemplateInformation returns a template's source, sections and
	// default content. Type is user (default), gallery or base.
	//
	// API: templates/info
	GetTemplateInformation(ctx context.Context, templateID int, opts *TemplateInfoOptions) (*TemplateInformation, error)

	// GetTemplates lists available templates.
	//
	// API: templates/list
	GetTemplates(ctx context.Context, opts *GetTemplatesOptions) (*TemplateListResult, error)

	// UndeleteTemplate reactivates a user template.
	//
	// API: templates/undel
	UndeleteTemplate(ctx context.Context, templateID int) (*CompleteResult, error)

	// UpdateTemplate replaces the name and/or html of a user template.
	//
	// API: templates/update
	UpdateTemplate(ctx context.Context, templateID int, value TemplateUpdateValue) (*CompleteResult, error)
}

// ReportsAPI covers the reports/* methods.
type ReportsAPI interface {
	// GetReportSummary returns a campaign's summary stats.
	//
	// API: reports/summary
	GetReportSummary(ctx context.Context, cid string) (*ReportSummary, error)

	// GetReportSentTo returns the addresses a campaign was sent to.
	//
	// API: reports/sent-to
	GetReportSentTo(ctx context.Context, cid string, opts *SentToOptions) (*SentToMembers, error)

	// GetReportClicks returns the click stats per tracked URL.
	//
	// API: reports/clicks
	GetReportClicks(ctx context.Context, cid string) (*Clicks, error)

	// GetReportClickDetail returns who clicked a tracked URL and how often.
	//
	// API: reports/click-detail
	GetReportClickDetail(ctx context.Context, cid string, tid int, opts *ClickDetailOptions) (*ClickDetail, error)

	// GetReportNotOpened returns the addresses that did not open a campaign.
	//
	// API: reports/not-opened
	GetReportNotOpened(ctx context.Context, cid string, opts *ReportPageOptions) (*NotOpened, error)

	// GetReportUnsubscribes returns the addresses that unsubscribed.
	//
	// API: reports/unsubscribes
	GetReportUnsubscribes(ctx context.Context, cid string, opts *ReportPageOptions) (*Unsubscribes, error)

	// GetReportBounceMessages returns full bounce messages. This can be a lot
	// of data; messages older than 30 days may be gone.
	//
	// API: reports/bounce-messages
	GetReportBounceMessages(ctx context.Context, cid string, opts *BounceMessagesOptions) (*BounceMessages, error)

	// GetReportOpened returns who opened a campaign and how often.
	//
	// API: reports/opened
	GetReportOpened(ctx context.Context, cid string, opts *OpenedOptions) (*Opened, error)
}
