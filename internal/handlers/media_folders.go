package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pressdeck/pressdeck/internal/middleware"
	"github.com/pressdeck/pressdeck/internal/services"
	"github.com/pressdeck/pressdeck/pkg/errors"
	"github.com/pressdeck/pressdeck/pkg/response"
)

// MediaFolderHandler exposes HTTP endpoints for managing media folders.
type MediaFolderHandler struct {
	svc *services.MediaFolderService
}

// NewMediaFolderHandler constructs a folder handler.
func NewMediaFolderHandler(svc *services.MediaFolderService) *MediaFolderHandler {
	return &MediaFolderHandler{svc: svc}
}

// List returns the direct children of ?parent_id, or the organization's root
// folders when the parameter is absent.
func (h *MediaFolderHandler) List(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	parentQuery := strings.TrimSpace(c.Query("parent_id"))
	var parentID *string
	if parentQuery != "" {
		parentID = &parentQuery
	}

	folders, err := h.svc.ListByParent(requestContext(c), orgID, parentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, folders)
}

// Tree returns the depth-annotated flat projection of the full folder tree.
func (h *MediaFolderHandler) Tree(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	tree, err := h.svc.ListTreeFlat(requestContext(c), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, tree)
}

// Create registers a new media folder.
func (h *MediaFolderHandler) Create(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	var payload folderPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	folder, err := h.svc.Create(requestContext(c), orgID, payload.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, folder)
}

// Update renames or moves a folder.
func (h *MediaFolderHandler) Update(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	var payload folderPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	folder, err := h.svc.Update(requestContext(c), orgID, c.Param("id"), payload.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, folder)
}

// Delete removes a folder; its children and assets are reassigned to the
// deleted folder's parent.
func (h *MediaFolderHandler) Delete(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	if err := h.svc.Delete(requestContext(c), orgID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

type folderPayload struct {
	Name     string         `json:"name" binding:"omitempty"`
	ParentID *string        `json:"parent_id"`
	Metadata map[string]any `json:"metadata"`
}

func (p folderPayload) toInput() services.FolderInput {
	return services.FolderInput{
		Name:     p.Name,
		ParentID: p.ParentID,
		Metadata: p.Metadata,
	}
}
