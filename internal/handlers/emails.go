package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pressdeck/pressdeck/internal/middleware"
	"github.com/pressdeck/pressdeck/internal/services"
	"github.com/pressdeck/pressdeck/pkg/errors"
	"github.com/pressdeck/pressdeck/pkg/response"
)

// EmailHandler exposes HTTP endpoints for email drafts and scheduling.
type EmailHandler struct {
	svc *services.EmailService
}

// NewEmailHandler constructs an email handler.
func NewEmailHandler(svc *services.EmailService) *EmailHandler {
	return &EmailHandler{svc: svc}
}

// ListDrafts returns the organization's drafts, newest first.
func (h *EmailHandler) ListDrafts(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	drafts, err := h.svc.ListDrafts(requestContext(c), orgID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, drafts)
}

// CreateDraft stores a new email draft.
func (h *EmailHandler) CreateDraft(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	var payload draftPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	draft, err := h.svc.CreateDraft(requestContext(c), orgID, payload.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, draft)
}

// Render substitutes placeholder variables into the draft, with request
// variables overriding the stored ones.
func (h *EmailHandler) Render(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	var payload renderPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	rendered, err := h.svc.RenderDraft(requestContext(c), orgID, c.Param("id"), payload.Variables)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, rendered)
}

// Schedule queues one delivery per recipient at the requested send time.
func (h *EmailHandler) Schedule(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	var payload schedulePayload
	if !bindAndValidate(c, &payload) {
		return
	}

	sendAt := time.Now()
	if payload.SendAt != nil {
		sendAt = *payload.SendAt
	}

	queued, err := h.svc.Schedule(requestContext(c), orgID, c.Param("id"), payload.Recipients, sendAt)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, queued)
}

type draftPayload struct {
	CampaignID *string        `json:"campaign_id"`
	Subject    string         `json:"subject" binding:"required"`
	BodyHTML   string         `json:"body_html"`
	Variables  map[string]any `json:"variables"`
}

func (p draftPayload) toInput() services.DraftInput {
	return services.DraftInput{
		CampaignID: p.CampaignID,
		Subject:    p.Subject,
		BodyHTML:   p.BodyHTML,
		Variables:  p.Variables,
	}
}

type renderPayload struct {
	Variables map[string]any `json:"variables"`
}

type schedulePayload struct {
	Recipients []string   `json:"recipients" binding:"required"`
	SendAt     *time.Time `json:"send_at"`
}
