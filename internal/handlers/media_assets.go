package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pressdeck/pressdeck/internal/middleware"
	"github.com/pressdeck/pressdeck/internal/navigator"
	"github.com/pressdeck/pressdeck/internal/services"
	"github.com/pressdeck/pressdeck/pkg/errors"
	"github.com/pressdeck/pressdeck/pkg/response"
)

// MediaAssetHandler exposes HTTP endpoints for managing media assets. Deletes
// and downloads go through the file action coordinator so the object-required
// delete semantics and the rich-text export are shared with embedded clients.
type MediaAssetHandler struct {
	assets  *services.MediaAssetService
	folders *services.MediaFolderService
}

// NewMediaAssetHandler constructs an asset handler.
func NewMediaAssetHandler(assets *services.MediaAssetService, folders *services.MediaFolderService) *MediaAssetHandler {
	return &MediaAssetHandler{assets: assets, folders: folders}
}

// List returns the assets inside ?folder_id, or root-level assets when the
// parameter is absent.
func (h *MediaAssetHandler) List(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	folderQuery := strings.TrimSpace(c.Query("folder_id"))
	var folderID *string
	if folderQuery != "" {
		folderID = &folderQuery
	}

	assets, err := h.assets.ListByFolder(requestContext(c), orgID, folderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, assets)
}

// Create registers asset metadata. A non-empty content_html marks the asset as
// an internally authored document and stores its body.
func (h *MediaAssetHandler) Create(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	var payload assetPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	asset, err := h.assets.Upload(requestContext(c), orgID, payload.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, asset)
}

// Move reassigns an asset to another folder; a null folder_id moves it to the
// library root.
func (h *MediaAssetHandler) Move(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	var payload movePayload
	if !bindAndValidate(c, &payload) {
		return
	}

	asset, err := h.assets.Move(requestContext(c), orgID, c.Param("id"), payload.FolderID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, asset)
}

// Delete removes an asset through the file action coordinator: the asset is
// located in a re-fetched folder listing and deleted as a full object.
func (h *MediaAssetHandler) Delete(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	ctx := requestContext(c)
	asset, err := h.assets.Get(ctx, orgID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	actions, err := h.fileActions(orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := actions.ConfirmDeleteAsset(ctx, asset.ID, asset.FileName, asset.FolderID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// Download resolves an asset download. Internally authored documents are
// exported as rich text; external files redirect to their download URL.
func (h *MediaAssetHandler) Download(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	ctx := requestContext(c)
	asset, err := h.assets.Get(ctx, orgID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	actions, err := h.fileActions(orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := actions.DownloadDocument(ctx, *asset)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.URL != "" {
		c.Redirect(http.StatusFound, result.URL)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, "application/rtf", []byte(result.Content))
}

func (h *MediaAssetHandler) fileActions(orgID string) (*navigator.FileActions, error) {
	store, err := navigator.NewServiceStore(orgID, h.folders, h.assets)
	if err != nil {
		return nil, err
	}
	return navigator.NewFileActions(store)
}

type assetPayload struct {
	FileName    string  `json:"file_name" binding:"required"`
	FileType    string  `json:"file_type"`
	FolderID    *string `json:"folder_id"`
	DownloadURL string  `json:"download_url"`
	ContentHTML string  `json:"content_html"`
	SizeBytes   int64   `json:"size_bytes"`
}

func (p assetPayload) toInput() services.UploadInput {
	return services.UploadInput{
		FileName:    p.FileName,
		FileType:    p.FileType,
		FolderID:    p.FolderID,
		DownloadURL: p.DownloadURL,
		ContentHTML: p.ContentHTML,
		SizeBytes:   p.SizeBytes,
	}
}

type movePayload struct {
	FolderID *string `json:"folder_id"`
}
