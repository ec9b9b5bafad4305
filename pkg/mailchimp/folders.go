package mailchimp

import "context"

// FolderType is the kind of object a folder holds.
type FolderType string

const (
	FolderCampaign FolderType = "campaign"
	FolderAutoresp FolderType = "autoresponder"
	FolderTemplate FolderType = "template"
)

// Folder is a campaign, autoresponder or template folder.
type Folder struct {
	FolderID    int        `json:"folder_id"`
	Name        string     `json:"name"`
	DateCreated string     `json:"date_created"`
	Type        FolderType `json:"type"`
	CntCamp     int        `json:"cnt_camp"`
	CntTmpl     int        `json:"cnt_tmpl"`
}

// FolderAddResult holds the id of a new folder.
type FolderAddResult struct {
	FolderID int `json:"folder_id"`
}

func folderType(t FolderType) string {
	return defaultString(string(t), string(FolderCampaign))
}

// GetFolders lists the folders of one type.
//
// API: POST /folders/list.json
func (c *Client) GetFolders(ctx context.Context, t FolderType) ([]Folder, error) {
	var resp []Folder
	if err := c.call(ctx, "folders/list", params{"type": folderType(t)}, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// AddFolder creates a folder.
//
// API: POST /folders/add.json
//
// Errors:
//   - ValidationError: If the name is longer than 100 bytes.
func (c *Client) AddFolder(ctx context.Context, name string, t FolderType) (*FolderAddResult, error) {
	var resp FolderAddResult
	if err := c.call(ctx, "folders/add", params{"name": name, "type": folderType(t)}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteFolder deletes a folder. Its contents move to the root.
//
// API: POST /folders/del.json
func (c *Client) DeleteFolder(ctx context.Context, folderID int, t FolderType) (*CompleteResult, error) {
	var resp CompleteResult
	if err := c.call(ctx, "folders/del", params{"fid": folderID, "type": folderType(t)}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateFolder renames a folder.
//
// API: POST /folders/update.json
func (c *Client) UpdateFolder(ctx context.Context, folderID int, name string, t FolderType) (*CompleteResult, error) {
	var resp CompleteResult
	err := c.call(ctx, "folders/update", params{"fid": folderID, "name": name, "type": folderType(t)}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
