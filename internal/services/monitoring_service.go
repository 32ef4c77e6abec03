package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/pressdeck/pressdeck/internal/models"
	apperrors "github.com/pressdeck/pressdeck/pkg/errors"
)

// AVEWeights carries the advertising-value-equivalent weighting tables.
// Unknown outlet types and sentiments fall back to a factor of 1.
type AVEWeights struct {
	OutletFactors        map[string]float64
	SentimentMultipliers map[string]float64
}

// DefaultAVEWeights mirror the configuration defaults.
func DefaultAVEWeights() AVEWeights {
	return AVEWeights{
		OutletFactors: map[string]float64{
			models.OutletTypePrint:     3.0,
			models.OutletTypeOnline:    1.0,
			models.OutletTypeBroadcast: 4.0,
			models.OutletTypeBlog:      0.5,
		},
		SentimentMultipliers: map[string]float64{
			models.SentimentPositive: 1.2,
			models.SentimentNeutral:  1.0,
			models.SentimentNegative: 0.6,
		},
	}
}

// MonitoringService records press clippings and aggregates campaign reports.
type MonitoringService struct {
	db      *gorm.DB
	weights AVEWeights
}

// ClippingInput describes a monitored press mention.
type ClippingInput struct {
	CampaignID  *string
	Outlet      string
	OutletType  string
	URL         string
	Reach       int64
	Sentiment   string
	PublishedAt *time.Time
}

// ListClippingsOptions filters clipping listings.
type ListClippingsOptions struct {
	CampaignID string
	Since      *time.Time
	Until      *time.Time
}

// MonitoringReport aggregates clippings for an organization or campaign.
type MonitoringReport struct {
	ClippingCount int64   `json:"clipping_count"`
	TotalReach    int64   `json:"total_reach"`
	TotalAVE      float64 `json:"total_ave"`
	AverageAVE    float64 `json:"average_ave"`
	PositiveShare float64 `json:"positive_share"`
}

// NewMonitoringService constructs a monitoring service with the given weights.
func NewMonitoringService(db *gorm.DB, weights AVEWeights) (*MonitoringService, error) {
	if db == nil {
		return nil, errors.New("monitoring service: db is required")
	}
	if weights.OutletFactors == nil {
		weights.OutletFactors = DefaultAVEWeights().OutletFactors
	}
	if weights.SentimentMultipliers == nil {
		weights.SentimentMultipliers = DefaultAVEWeights().SentimentMultipliers
	}
	return &MonitoringService{db: db, weights: weights}, nil
}

// AddClipping records a press mention.
func (s *MonitoringService) AddClipping(ctx context.Context, orgID string, input ClippingInput) (*models.Clipping, error) {
	ctx = ensureContext(ctx)

	outlet := strings.TrimSpace(input.Outlet)
	if outlet == "" {
		return nil, apperrors.NewBadRequest("clipping outlet is required")
	}
	if input.Reach < 0 {
		return nil, apperrors.NewBadRequest("clipping reach must not be negative")
	}

	clipping := models.Clipping{
		OrganizationID: orgID,
		CampaignID:     input.CampaignID,
		Outlet:         outlet,
		OutletType:     strings.TrimSpace(strings.ToLower(input.OutletType)),
		URL:            strings.TrimSpace(input.URL),
		Reach:          input.Reach,
		Sentiment:      strings.TrimSpace(strings.ToLower(input.Sentiment)),
		PublishedAt:    input.PublishedAt,
	}

	if err := s.db.WithContext(ctx).Create(&clipping).Error; err != nil {
		return nil, fmt.Errorf("monitoring service: create clipping: %w", err)
	}
	return &clipping, nil
}

// ListClippings returns clippings newest first with optional filters.
func (s *MonitoringService) ListClippings(ctx context.Context, orgID string, opts ListClippingsOptions) ([]models.Clipping, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Model(&models.Clipping{}).
		Where("organization_id = ?", orgID).
		Order("created_at DESC")

	if campaignID := strings.TrimSpace(opts.CampaignID); campaignID != "" {
		query = query.Where("campaign_id = ?", campaignID)
	}
	if opts.Since != nil {
		query = query.Where("published_at >= ?", *opts.Since)
	}
	if opts.Until != nil {
		query = query.Where("published_at <= ?", *opts.Until)
	}

	var clippings []models.Clipping
	if err := query.Find(&clippings).Error; err != nil {
		return nil, fmt.Errorf("monitoring service: list clippings: %w", err)
	}
	return clippings, nil
}

// AVE computes the advertising value equivalent of one clipping:
// reach x outlet-type factor x sentiment multiplier.
func (s *MonitoringService) AVE(clipping models.Clipping) float64 {
	factor, ok := s.weights.OutletFactors[clipping.OutletType]
	if !ok {
		factor = 1.0
	}
	multiplier, ok := s.weights.SentimentMultipliers[clipping.Sentiment]
	if !ok {
		multiplier = 1.0
	}
	return float64(clipping.Reach) * factor * multiplier
}

// Report aggregates clippings into totals, averages, and the positive share.
func (s *MonitoringService) Report(ctx context.Context, orgID string, opts ListClippingsOptions) (*MonitoringReport, error) {
	clippings, err := s.ListClippings(ctx, orgID, opts)
	if err != nil {
		return nil, err
	}

	report := MonitoringReport{ClippingCount: int64(len(clippings))}
	if len(clippings) == 0 {
		return &report, nil
	}

	var positives int64
	for _, clipping := range clippings {
		report.TotalReach += clipping.Reach
		report.TotalAVE += s.AVE(clipping)
		if clipping.Sentiment == models.SentimentPositive {
			positives++
		}
	}
	report.AverageAVE = report.TotalAVE / float64(len(clippings))
	report.PositiveShare = float64(positives) / float64(len(clippings))

	return &report, nil
}
