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

// MonitoringHandler exposes HTTP endpoints for press clippings and reports.
type MonitoringHandler struct {
	svc *services.MonitoringService
}

// NewMonitoringHandler constructs a monitoring handler.
func NewMonitoringHandler(svc *services.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{svc: svc}
}

// CreateClipping records a press mention.
func (h *MonitoringHandler) CreateClipping(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	var payload clippingPayload
	if !bindAndValidate(c, &payload) {
		return
	}

	clipping, err := h.svc.AddClipping(requestContext(c), orgID, payload.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, clipping)
}

// ListClippings returns clippings filtered by ?campaign_id, ?since and ?until.
func (h *MonitoringHandler) ListClippings(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	opts, err := clippingOptionsFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	clippings, err := h.svc.ListClippings(requestContext(c), orgID, opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, clippings)
}

// Report aggregates clippings into reach, AVE and sentiment figures.
func (h *MonitoringHandler) Report(c *gin.Context) {
	orgID := c.GetString(middleware.CtxOrgIDKey)
	if orgID == "" {
		response.Error(c, errors.ErrOrgRequired)
		return
	}

	opts, err := clippingOptionsFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	report, err := h.svc.Report(requestContext(c), orgID, opts)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}

func clippingOptionsFromQuery(c *gin.Context) (services.ListClippingsOptions, error) {
	opts := services.ListClippingsOptions{
		CampaignID: strings.TrimSpace(c.Query("campaign_id")),
	}

	for _, bound := range []struct {
		key  string
		dest **time.Time
	}{
		{"since", &opts.Since},
		{"until", &opts.Until},
	} {
		raw := strings.TrimSpace(c.Query(bound.key))
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return opts, errors.NewBadRequest(bound.key + " must be an RFC3339 timestamp")
		}
		*bound.dest = &parsed
	}

	return opts, nil
}

type clippingPayload struct {
	CampaignID  *string    `json:"campaign_id"`
	Outlet      string     `json:"outlet" binding:"required"`
	OutletType  string     `json:"outlet_type"`
	URL         string     `json:"url"`
	Reach       int64      `json:"reach"`
	Sentiment   string     `json:"sentiment"`
	PublishedAt *time.Time `json:"published_at"`
}

func (p clippingPayload) toInput() services.ClippingInput {
	return services.ClippingInput{
		CampaignID:  p.CampaignID,
		Outlet:      p.Outlet,
		OutletType:  p.OutletType,
		URL:         p.URL,
		Reach:       p.Reach,
		Sentiment:   p.Sentiment,
		PublishedAt: p.PublishedAt,
	}
}
