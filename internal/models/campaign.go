package models

import (
	"time"

	"gorm.io/datatypes"
)

// Campaign lifecycle states.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusScheduled = "scheduled"
	CampaignStatusSent      = "sent"
	CampaignStatusArchived  = "archived"
)

// Campaign represents a press campaign owned by an organization.
type Campaign struct {
	BaseModel

	OrganizationID     string         `gorm:"type:uuid;index;not null" json:"organization_id"`
	Title              string         `gorm:"not null" json:"title"`
	Status             string         `gorm:"index;default:draft" json:"status"`
	DistributionListID *string        `gorm:"type:uuid" json:"distribution_list_id"`
	ScheduledAt        *time.Time     `json:"scheduled_at"`
	SentAt             *time.Time     `json:"sent_at"`
	Metadata           datatypes.JSON `json:"metadata"`
}

// ValidCampaignStatus reports whether status is one of the known lifecycle states.
func ValidCampaignStatus(status string) bool {
	switch status {
	case CampaignStatusDraft, CampaignStatusScheduled, CampaignStatusSent, CampaignStatusArchived:
		return true
	}
	return false
}
