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

// CampaignService manages press campaigns.
type CampaignService struct {
	db  *gorm.DB
	now func() time.Time
}

// CampaignInput describes campaign create/update payloads.
type CampaignInput struct {
	Title              string
	Status             string
	DistributionListID *string
	ScheduledAt        *time.Time
	Metadata           map[string]any
}

// ListCampaignsOptions filters campaign listings.
type ListCampaignsOptions struct {
	Status string
}

// NewCampaignService constructs a campaign service.
func NewCampaignService(db *gorm.DB) (*CampaignService, error) {
	if db == nil {
		return nil, errors.New("campaign service: db is required")
	}
	return &CampaignService{db: db, now: time.Now}, nil
}

// Create registers a new campaign in draft state unless a valid status is given.
func (s *CampaignService) Create(ctx context.Context, orgID string, input CampaignInput) (*models.Campaign, error) {
	ctx = ensureContext(ctx)

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, apperrors.NewBadRequest("campaign title is required")
	}

	status := strings.TrimSpace(input.Status)
	if status == "" {
		status = models.CampaignStatusDraft
	}
	if !models.ValidCampaignStatus(status) {
		return nil, apperrors.NewBadRequest(fmt.Sprintf("unknown campaign status %q", status))
	}

	campaign := models.Campaign{
		OrganizationID:     orgID,
		Title:              title,
		Status:             status,
		DistributionListID: input.DistributionListID,
		ScheduledAt:        input.ScheduledAt,
	}

	if input.Metadata != nil {
		data, err := encodeJSONMap(input.Metadata)
		if err != nil {
			return nil, apperrors.NewBadRequest("invalid metadata payload")
		}
		campaign.Metadata = data
	}

	if err := s.db.WithContext(ctx).Create(&campaign).Error; err != nil {
		return nil, fmt.Errorf("campaign service: create campaign: %w", err)
	}
	return &campaign, nil
}

// Get loads one campaign scoped to the organization.
func (s *CampaignService) Get(ctx context.Context, orgID, campaignID string) (*models.Campaign, error) {
	ctx = ensureContext(ctx)

	var campaign models.Campaign
	err := s.db.WithContext(ctx).
		First(&campaign, "id = ? AND organization_id = ?", campaignID, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("campaign service: load campaign: %w", err)
	}
	return &campaign, nil
}

// List returns campaigns newest first, optionally filtered by status.
func (s *CampaignService) List(ctx context.Context, orgID string, opts ListCampaignsOptions) ([]models.Campaign, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("organization_id = ?", orgID).
		Order("created_at DESC")

	if status := strings.TrimSpace(opts.Status); status != "" {
		if !models.ValidCampaignStatus(status) {
			return nil, apperrors.NewBadRequest(fmt.Sprintf("unknown campaign status %q", status))
		}
		query = query.Where("status = ?", status)
	}

	var campaigns []models.Campaign
	if err := query.Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("campaign service: list campaigns: %w", err)
	}
	return campaigns, nil
}

// Update modifies campaign fields.
func (s *CampaignService) Update(ctx context.Context, orgID, campaignID string, input CampaignInput) (*models.Campaign, error) {
	ctx = ensureContext(ctx)

	campaign, err := s.Get(ctx, orgID, campaignID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if title := strings.TrimSpace(input.Title); title != "" && title != campaign.Title {
		updates["title"] = title
	}
	if status := strings.TrimSpace(input.Status); status != "" && status != campaign.Status {
		if !models.ValidCampaignStatus(status) {
			return nil, apperrors.NewBadRequest(fmt.Sprintf("unknown campaign status %q", status))
		}
		updates["status"] = status
	}
	if input.DistributionListID != nil {
		updates["distribution_list_id"] = input.DistributionListID
	}
	if input.ScheduledAt != nil {
		updates["scheduled_at"] = input.ScheduledAt
	}
	if input.Metadata != nil {
		data, err := encodeJSONMap(input.Metadata)
		if err != nil {
			return nil, apperrors.NewBadRequest("invalid metadata payload")
		}
		updates["metadata"] = data
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(campaign).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("campaign service: update campaign: %w", err)
		}
		if err := s.db.WithContext(ctx).First(campaign, "id = ?", campaignID).Error; err != nil {
			return nil, fmt.Errorf("campaign service: reload campaign: %w", err)
		}
	}

	return campaign, nil
}

// MarkSent transitions a campaign into the sent state, stamping the send time.
func (s *CampaignService) MarkSent(ctx context.Context, orgID, campaignID string) (*models.Campaign, error) {
	ctx = ensureContext(ctx)

	campaign, err := s.Get(ctx, orgID, campaignID)
	if err != nil {
		return nil, err
	}

	sentAt := s.now()
	updates := map[string]any{
		"status":  models.CampaignStatusSent,
		"sent_at": sentAt,
	}
	if err := s.db.WithContext(ctx).Model(campaign).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("campaign service: mark sent: %w", err)
	}
	campaign.Status = models.CampaignStatusSent
	campaign.SentAt = &sentAt
	return campaign, nil
}

// Delete removes a campaign.
func (s *CampaignService) Delete(ctx context.Context, orgID, campaignID string) error {
	ctx = ensureContext(ctx)

	result := s.db.WithContext(ctx).
		Delete(&models.Campaign{}, "id = ? AND organization_id = ?", campaignID, orgID)
	if result.Error != nil {
		return fmt.Errorf("campaign service: delete campaign: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
