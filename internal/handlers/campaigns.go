package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pressdeck/pressdeck/internal/middleware"
	"github.com/pressdeck/pressdeck/internal/services"
	"github.com/pressdeck/pressdeck/pkg/errors"
	"github.com/pressdeck/pressdeck/pkg/response"
)

// CampaignHandler exposes HTTP endpoints for managing press campaigns.
type CampaignHandler struct {
	svc *services.CampaignService
}

// NewCampaignHandler constructs a campaign handler.
func NewCampaignHandler(svc *services.CampaignService) *CampaignHandler {
	return &CampaignHandler{svc: svc}
}

// List returns campaigns, optionally filtered by ?status.
func (h *CampaignHandler) List(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	opts := services.ListCampaignsOptions{Status: strings.TrimSpace(c.Query("status"))}
	campaigns, err := h.svc.List(requestContext(c), orgID, opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, campaigns)
}

// Get returns one campaign.
func (h *CampaignHandler) Get(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	campaign, err := h.svc.Get(requestContext(c), orgID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, campaign)
}

// Create registers a new campaign.
func (h *CampaignHandler) Create(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	var payload campaignPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	campaign, err := h.svc.Create(requestContext(c), orgID, payload.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, campaign)
}

// Update modifies campaign metadata.
func (h *CampaignHandler) Update(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	var payload campaignPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	campaign, err := h.svc.Update(requestContext(c), orgID, c.Param("id"), payload.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, campaign)
}

// MarkSent transitions a campaign into the sent state, stamping the send time.
func (h *CampaignHandler) MarkSent(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	campaign, err := h.svc.MarkSent(requestContext(c), orgID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, campaign)
}

// Delete removes a campaign.
func (h *CampaignHandler) Delete(c *gin.Context) {
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

type campaignPayload struct {
	Title              string         `json:"title" binding:"omitempty"`
	Status             string         `json:"status"`
	DistributionListID *string        `json:"distribution_list_id"`
	ScheduledAt        *time.Time     `json:"scheduled_at"`
	Metadata           map[string]any `json:"metadata"`
}

func (p campaignPayload) toInput() services.CampaignInput {
	return services.CampaignInput{
		Title:              p.Title,
		Status:             p.Status,
		DistributionListID: p.DistributionListID,
		ScheduledAt:        p.ScheduledAt,
		Metadata:           p.Metadata,
	}
}
