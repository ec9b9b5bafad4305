package mailchimp

import "context"

// SegmentType is the kind of a saved segment.
type SegmentType string

const (
	// SegmentAny lists both kinds.
	SegmentAny    SegmentType = ""
	SegmentStatic SegmentType = "static"
	SegmentSaved  SegmentType = "saved"
)

// StaticSegment is a hand-maintained set of list members.
type StaticSegment struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"member_count"`
	CreatedDate string `json:"created_date"`
	LastUpdate  string `json:"last_update"`
	LastReset   string `json:"last_reset"`
}

// SavedSegment is an auto-updating segment defined by conditions.
type SavedSegment struct {
	ID          int                    `json:"id"`
	Name        string                 `json:"name"`
	SegmentOpts CampaignSegmentOptions `json:"segment_opts"`
	SegmentText string                 `json:"segment_text"`
}

// SegmentResult holds the segments of a list.
type SegmentResult struct {
	Static []StaticSegment `json:"static"`
	Saved  []SavedSegment  `json:"saved"`
}

// AddSegmentOptions describes a segment to create. SegmentOptions is only
// used for saved segments.
type AddSegmentOptions struct {
	Type           SegmentType             `json:"type"`
	Name           string                  `json:"name"`
	SegmentOptions *CampaignSegmentOptions `json:"segment_opts,omitempty"`
}

// StaticSegmentMembersResult is the outcome of adding or removing static
// segment members.
type StaticSegmentMembersResult struct {
	SuccessCount int          `json:"success_count"`
	ErrorCount   int          `json:"error_count"`
	Errors       []BatchError `json:"errors"`
}

// Err aggregates the per-item errors, or returns nil.
func (r *StaticSegmentMembersResult) Err() error { return batchErrors(r.Errors) }

// AddStaticSegment creates a static segment.
//
// API: POST /lists/static-segment-add.json
func (c *Client) AddStaticSegment(ctx context.Context, listID, name string) (*IDResult, error) {
	var resp IDResult
	if err := c.call(ctx, "lists/static-segment-add", params{"id": listID, "name": name}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddSegment creates a static or saved segment.
//
// API: POST /lists/segment-add.json
func (c *Client) AddSegment(ctx context.Context, listID string, opts AddSegmentOptions) (*IDResult, error) {
	if opts.Type == SegmentAny {
		opts.Type = SegmentStatic
	}

	var resp IDResult
	if err := c.call(ctx, "lists/segment-add", params{"id": listID, "opts": opts}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteStaticSegment deletes a static segment.
//
// API: POST /lists/static-segment-del.json
func (c *Client) DeleteStaticSegment(ctx context.Context, listID string, segmentID int) (*CompleteResult, error) {
	var resp CompleteResult
	if err := c.call(ctx, "lists/static-segment-del", params{"id": listID, "seg_id": segmentID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) staticSegmentMembers(ctx context.Context, method, listID string, segmentID int, emails []EmailParameter) (*StaticSegmentMembersResult, error) {
	valid, rejects := partitionEmails(emails)

	var resp StaticSegmentMembersResult
	if len(valid) > 0 {
		if err := c.call(ctx, method, params{"id": listID, "seg_id": segmentID, "batch": valid}, &resp); err != nil {
			return nil, err
		}
	}
	resp.ErrorCount = len(resp.Errors) + len(rejects)
	resp.Errors = append(resp.Errors, rejects...)
	return &resp, nil
}

// AddStaticSegmentMembers adds list members to a static segment.
//
// API: POST /lists/static-segment-members-add.json
//
// Errors:
//   - Per item: in the result, including identifiers rejected before the request.
func (c *Client) AddStaticSegmentMembers(ctx context.Context, listID string, segmentID int, emails []EmailParameter) (*StaticSegmentMembersResult, error) {
	return c.staticSegmentMembers(ctx, "lists/static-segment-members-add", listID, segmentID, emails)
}

// DeleteStaticSegmentMembers removes members from a static segment.
//
// API: POST /lists/static-segment-members-del.json
//
// Errors:
//   - Per item: in the result, including identifiers rejected before the request.
func (c *Client) DeleteStaticSegmentMembers(ctx context.Context, listID string, segmentID int, emails []EmailParameter) (*StaticSegmentMembersResult, error) {
	return c.staticSegmentMembers(ctx, "lists/static-segment-members-del", listID, segmentID, emails)
}

// ResetStaticSegment removes every member from a static segment.
//
// API: POST /lists/static-segment-reset.json
func (c *Client) ResetStaticSegment(ctx context.Context, listID string, segmentID int) (*CompleteResult, error) {
	var resp CompleteResult
	if err := c.call(ctx, "lists/static-segment-reset", params{"id": listID, "seg_id": segmentID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetStaticSegmentsForList returns the static segments of a list.
//
// API: POST /lists/static-segments.json
func (c *Client) GetStaticSegmentsForList(ctx context.Context, listID string) ([]StaticSegment, error) {
	var resp []StaticSegment
	if err := c.call(ctx, "lists/static-segments", params{"id": listID}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// GetSegmentsForList returns the static and saved segments of a list.
//
// API: POST /lists/segments.json
func (c *Client) GetSegmentsForList(ctx context.Context, listID string, segmentType SegmentType) (*SegmentResult, error) {
	p := params{"id": listID}
	if segmentType != SegmentAny {
		p["type"] = segmentType
	}

	var resp SegmentResult
	if err := c.call(ctx, "lists/segments", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
