package mailchimp

import "context"

// MergeVarResult is the outcome of GetMergeVars.
type MergeVarResult struct {
	SuccessCount int             `json:"success_count"`
	ErrorCount   int             `json:"error_count"`
	Data         []MergeVar      `json:"data"`
	Errors       []MergeVarError `json:"errors"`
}

// MergeVar holds the merge tags of one list.
type MergeVar struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	WebID int            `json:"web_id"`
	Vars  []MergeVarItem `json:"merge_vars"`
}

// MergeVarError reports a list id GetMergeVars could not read.
type MergeVarError struct {
	ID      string `json:"id"`
	Code    int    `json:"code"`
	Message string `json:"error"`
}

// MergeVarItem describes one merge tag.
type MergeVarItem struct {
	ID           int      `json:"id"`
	Tag          string   `json:"tag"`
	Name         string   `json:"name"`
	Required     bool     `json:"req"`
	FieldType    string   `json:"field_type"`
	Public       bool     `json:"public"`
	Show         bool     `json:"show"`
	Order        string   `json:"order"`
	DefaultValue string   `json:"default"`
	HelpText     string   `json:"helptext"`
	Size         string   `json:"size"`
	Choices      []string `json:"choices"`
}

// MergeVarOptions configures a merge tag. Unset fields keep the API's
// defaults (text, optional, public, shown).
type MergeVarOptions struct {
	FieldType      string   `json:"field_type,omitempty"`
	Required       *bool    `json:"req,omitempty"`
	Public         *bool    `json:"public,omitempty"`
	Show           *bool    `json:"show,omitempty"`
	Order          int      `json:"order,omitempty"`
	DefaultValue   string   `json:"default_value,omitempty"`
	HelpText       string   `json:"helptext,omitempty"`
	Choices        []string `json:"choices,omitempty"`
	DateFormat     string   `json:"dateformat,omitempty"`
	PhoneFormat    string   `json:"phoneformat,omitempty"`
	DefaultCountry string   `json:"defaultcountry,omitempty"`
}

// GetMergeVars returns the merge fields of each list.
//
// API: POST /lists/merge-vars.json
func (c *Client) GetMergeVars(ctx context.Context, listIDs []string) (*MergeVarResult, error) {
	if listIDs == nil {
		listIDs = []string{}
	}

	var resp MergeVarResult
	if err := c.call(ctx, "lists/merge-vars", params{"id": listIDs}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AddMergeVar adds a merge field to a list.
//
// API: POST /lists/merge-var-add.json
func (c *Client) AddMergeVar(ctx context.Context, listID, tag, name string, opts *MergeVarOptions) (*MergeVarItem, error) {
	p := params{"id": listID, "tag": tag, "name": name}
	if opts != nil {
		p["options"] = opts
	}

	var resp MergeVarItem
	if err := c.call(ctx, "lists/merge-var-add", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateMergeVar changes the options of a merge field.
//
// API: POST /lists/merge-var-update.json
func (c *Client) UpdateMergeVar(ctx context.Context, listID, tag string, options MergeVarOptions) (*MergeVarItem, error) {
	var resp MergeVarItem
	if err := c.call(ctx, "lists/merge-var-update", params{"id": listID, "tag": tag, "options": options}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteMergeVar deletes a merge field and its data.
//
// API: POST /lists/merge-var-del.json
func (c *Client) DeleteMergeVar(ctx context.Context, listID, tag string) (*CompleteResult, error) {
	var resp CompleteResult
	if err := c.call(ctx, "lists/merge-var-del", params{"id": listID, "tag": tag}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetMergeVar clears a merge field for every member.
//
// API: POST /lists/merge-var-reset.json
func (c *Client) ResetMergeVar(ctx context.Context, listID, tag string) (*CompleteResult, error) {
	var resp CompleteResult
	if err := c.call(ctx, "lists/merge-var-reset", params{"id": listID, "tag": tag}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SetMergeVar sets a merge field to one value for every member.
//
// API: POST /lists/merge-var-set.json
func (c *Client) SetMergeVar(ctx context.Context, listID, tag, value string) (*CompleteResult, error) {
	var resp CompleteResult
	if err := c.call(ctx, "lists/merge-var-set", params{"id": listID, "tag": tag, "value": value}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
