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

// BrandHandler exposes HTTP endpoints for brand identity documents.
type BrandHandler struct {
	svc *services.BrandService
}

// NewBrandHandler constructs a brand document handler.
func NewBrandHandler(svc *services.BrandService) *BrandHandler {
	return &BrandHandler{svc: svc}
}

// List returns brand documents, optionally filtered by ?kind.
func (h *BrandHandler) List(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	docs, err := h.svc.List(requestContext(c), orgID, strings.TrimSpace(c.Query("kind")))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, docs)
}

// Get returns one brand document.
func (h *BrandHandler) Get(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	doc, err := h.svc.Get(requestContext(c), orgID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, doc)
}

// Create stores a new brand document.
func (h *BrandHandler) Create(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	var payload brandPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	doc, err := h.svc.Create(requestContext(c), orgID, payload.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, doc)
}

// Update modifies a brand document; content changes bump its version.
func (h *BrandHandler) Update(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	var payload brandPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	doc, err := h.svc.Update(requestContext(c), orgID, c.Param("id"), payload.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, doc)
}

// Delete removes a brand document.
func (h *BrandHandler) Delete(c *gin.Context) {
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

type brandPayload struct {
	Kind        string `json:"kind" binding:"omitempty"`
	Title       string `json:"title"`
	ContentHTML string `json:"content_html"`
}

func (p brandPayload) toInput() services.BrandDocumentInput {
	return services.BrandDocumentInput{
		Kind:        p.Kind,
		Title:       p.Title,
		ContentHTML: p.ContentHTML,
	}
}
