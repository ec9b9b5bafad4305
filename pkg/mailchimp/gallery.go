package mailchimp

import (
	"context"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// GalleryType selects which files GetGalleries returns.
type GalleryType string

const (
	GalleryImages GalleryType = "images"
	GalleryFiles  GalleryType = "files"
)

// Gallery sort fields and directions. Unlike the other list calls the
// direction is lower case here.
const (
	GallerySortSize = "size"
	GallerySortTime = "time"
	GallerySortName = "name"

	galleryAsc  = "asc"
	galleryDesc = "desc"
)

var (
	gallerySortFields = sets.New(GallerySortSize, GallerySortTime, GallerySortName)
	galleryDirections = sets.New(galleryAsc, galleryDesc)
)

// GalleryItem is one file of the gallery.
type GalleryItem struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Time      string `json:"time"`
	Size      int    `json:"size"`
	FullURL   string `json:"full"`
	ThumbURL  string `json:"thumb"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	FolderID  int    `json:"folder_id"`
	Extension string `json:"extension"`
}

// GalleryListResult is one page of gallery files.
type GalleryListResult struct {
	Total int           `json:"total"`
	Data  []GalleryItem `json:"data"`
}

// GalleryFolder is a folder of the file gallery.
type GalleryFolder struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	FileCount int    `json:"file_count"`
}

// GalleryFoldersResult is one page of gallery folders.
type GalleryFoldersResult struct {
	Total int             `json:"total"`
	Data  []GalleryFolder `json:"data"`
}

// GetGalleriesOptions are the optional parameters of GetGalleries.
type GetGalleriesOptions struct {
	Type GalleryType
	Page
	SortBy     string
	SortDir    string
	SearchTerm string
	FolderID   int
}

// GetGalleryFoldersOptions are the optional parameters of GetGalleryFolders.
type GetGalleryFoldersOptions struct {
	Page
	SearchTerm string
}

// galleryResult accepts both acknowledgement shapes the gallery methods use.
type galleryResult struct {
	Complete bool `json:"complete"`
	Success  bool `json:"success"`
}

func (r galleryResult) ok() bool {
	return r.Complete || r.Success
}

func (c *Client) galleryAction(ctx context.Context, method string, p params) (bool, error) {
	var resp galleryResult
	if err := c.call(ctx, method, p, &resp); err != nil {
		return false, err
	}
	return resp.ok(), nil
}

// GalleryFolderAddFileTo moves a gallery file into a folder.
//
// API: POST /gallery/add-file-to-folder.json
func (c *Client) GalleryFolderAddFileTo(ctx context.Context, fileID, folderID int) (bool, error) {
	return c.galleryAction(ctx, "gallery/add-file-to-folder", params{"file_id": fileID, "folder_id": folderID})
}

// GalleryFolderAdd creates a gallery folder.
//
// API: POST /gallery/add-folder.json
func (c *Client) GalleryFolderAdd(ctx context.Context, name string) (*GalleryFolder, error) {
	var resp GalleryFolder
	if err := c.call(ctx, "gallery/add-folder", params{"name": name}, &resp); err != nil {
		return nil, err
	}
	if resp.Name == "" {
		resp.Name = name
	}
	return &resp, nil
}

// GetGalleries returns one page of files in the account's gallery.
//
// API: POST /gallery/list.json
func (c *Client) GetGalleries(ctx context.Context, opts *GetGalleriesOptions) (*GalleryListResult, error) {
	if opts == nil {
		opts = &GetGalleriesOptions{}
	}
	dir := strings.ToLower(strings.TrimSpace(opts.SortDir))
	if !galleryDirections.Has(dir) {
		dir = galleryDesc
	}
	o := params{
		"type":     defaultString(string(opts.Type), string(GalleryImages)),
		"start":    opts.start(),
		"limit":    opts.limit(25, 100),
		"sort_by":  normalizeField(opts.SortBy, GallerySortTime, gallerySortFields),
		"sort_dir": dir,
	}
	if opts.SearchTerm != "" {
		o["search_term"] = opts.SearchTerm
	}
	if opts.FolderID > 0 {
		o["folder_id"] = opts.FolderID
	}

	var resp GalleryListResult
	if err := c.call(ctx, "gallery/list", params{"opts": o}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetGalleryFolders returns one page of gallery folders.
//
// API: POST /gallery/list-folders.json
func (c *Client) GetGalleryFolders(ctx context.Context, opts *GetGalleryFoldersOptions) (*GalleryFoldersResult, error) {
	if opts == nil {
		opts = &GetGalleryFoldersOptions{}
	}
	o := params{
		"start": opts.start(),
		"limit": opts.limit(25, 100),
	}
	if opts.SearchTerm != "" {
		o["search_term"] = opts.SearchTerm
	}

	var resp GalleryFoldersResult
	if err := c.call(ctx, "gallery/list-folders", params{"opts": o}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GalleryFolderRemoveAllFilesFrom moves every file out of a gallery folder.
//
// API: POST /gallery/remove-all-files-from-folder.json
func (c *Client) GalleryFolderRemoveAllFilesFrom(ctx context.Context, folderID int) (bool, error) {
	return c.galleryAction(ctx, "gallery/remove-all-files-from-folder", params{"folder_id": folderID})
}

// GalleryFolderRemoveFileFrom moves one file out of a gallery folder.
//
// API: POST /gallery/remove-file-from-folder.json
func (c *Client) GalleryFolderRemoveFileFrom(ctx context.Context, fileID, folderID int) (bool, error) {
	return c.galleryAction(ctx, "gallery/remove-file-from-folder", params{"file_id": fileID, "folder_id": folderID})
}

// GalleryFolderRemove deletes a gallery folder. Its files are kept.
//
// API: POST /gallery/remove-folder.json
func (c *Client) GalleryFolderRemove(ctx context.Context, folderID int) (bool, error) {
	return c.galleryAction(ctx, "gallery/remove-folder", params{"folder_id": folderID})
}
