package mailchimp

import "context"

// TemplateType is the origin of a template.
type TemplateType string

const (
	TemplateUser    TemplateType = "user"
	TemplateGallery TemplateType = "gallery"
	TemplateBase    TemplateType = "base"
)

// Template is a template as listed by GetTemplates.
type Template struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Layout       string `json:"layout"`
	Category     string `json:"category"`
	PreviewImage string `json:"preview_image"`
	DateCreated  string `json:"date_created"`
	Active       bool   `json:"active"`
	EditSource   bool   `json:"edit_source"`
	FolderID     int    `json:"folder_id"`
}

// TemplateListResult groups templates by type.
type TemplateListResult struct {
	User    []Template `json:"user"`
	Gallery []Template `json:"gallery"`
	Base    []Template `json:"base"`
}

// TemplateInformation is a template's source and editable sections.
type TemplateInformation struct {
	DefaultContent StringMap `json:"default_content"`
	Sections       []string  `json:"sections"`
	Source         string    `json:"source"`
	Preview        string    `json:"preview"`
}

// TemplateAddResult holds the id of a new template.
type TemplateAddResult struct {
	TemplateID int `json:"template_id"`
}

// TemplateTypes selects which kinds GetTemplates returns.
type TemplateTypes struct {
	User    bool `json:"user"`
	Gallery bool `json:"gallery"`
	Base    bool `json:"base"`
}

// TemplateFilters narrows GetTemplates.
type TemplateFilters struct {
	Category           string `json:"category,omitempty"`
	FolderID           string `json:"folder_id,omitempty"`
	IncludeInactive    bool   `json:"include_inactive,omitempty"`
	InactiveOnly       bool   `json:"inactive_only,omitempty"`
	IncludeDragAndDrop bool   `json:"include_drag_and_drop,omitempty"`
}

// TemplateUpdateValue is the new name and/or html of a template. Empty fields
// are left unchanged.
type TemplateUpdateValue struct {
	Name string `json:"name,omitempty"`
	HTML string `json:"html,omitempty"`
}

// AddTemplateOptions are the optional parameters of AddTemplate.
type AddTemplateOptions struct {
	FolderID int
}

// TemplateInfoOptions are the optional parameters of GetTemplateInformation.
type TemplateInfoOptions struct {
	// Type defaults to user.
	Type TemplateType
}

// GetTemplatesOptions are the optional parameters of GetTemplates. Nil
// Types returns every kind.
type GetTemplatesOptions struct {
	Types   *TemplateTypes
	Filters *TemplateFilters
}

// AddTemplate creates a user template.
//
// API: POST /templates/add.json
func (c *Client) AddTemplate(ctx context.Context, name, html string, opts *AddTemplateOptions) (*TemplateAddResult, error) {
	p := params{"name": name, "html": html}
	if opts != nil && opts.FolderID > 0 {
		p["folder_id"] = opts.FolderID
	}

	var resp TemplateAddResult
	if err := c.call(ctx, "templates/add", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteTemplate deletes a user template. It can be restored with UndeleteTemplate.
//
// API: POST /templates/del.json
func (c *Client) DeleteTemplate(ctx context.Context, templateID int) (*CompleteResult, error) {
	var resp CompleteResult
	if err := c.call(ctx, "templates/del", params{"template_id": templateID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTemplateInformation returns a template's sections and default content.
//
// API: POST /templates/info.json
func (c *Client) GetTemplateInformation(ctx context.Context, templateID int, opts *TemplateInfoOptions) (*TemplateInformation, error) {
	t := TemplateUser
	if opts != nil && opts.Type != "" {
		t = opts.Type
	}

	var resp TemplateInformation
	if err := c.call(ctx, "templates/info", params{"template_id": templateID, "type": t}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetTemplates returns the templates of each requested type.
//
// API: POST /templates/list.json
func (c *Client) GetTemplates(ctx context.Context, opts *GetTemplatesOptions) (*TemplateListResult, error) {
	p := params{}
	if opts != nil {
		if opts.Types != nil {
			p["types"] = opts.Types
		}
		if opts.Filters != nil {
			p["filters"] = opts.Filters
		}
	}

	var resp TemplateListResult
	if err := c.call(ctx, "templates/list", p, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UndeleteTemplate restores a deleted user template.
//
// API: POST /templates/undel.json
func (c *Client) UndeleteTemplate(ctx context.Context, templateID int) (*CompleteResult, error) {
	var resp CompleteResult
	if err := c.call(ctx, "templates/undel", params{"template_id": templateID}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateTemplate changes a user template's name, HTML or folder.
//
// API: POST /templates/update.json
func (c *Client) UpdateTemplate(ctx context.Context, templateID int, value TemplateUpdateValue) (*CompleteResult, error) {
	var resp CompleteResult
	if err := c.call(ctx, "templates/update", params{"template_id": templateID, "values": value}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
