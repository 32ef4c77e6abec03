package models

import (
	"time"

	"gorm.io/datatypes"
)

// Scheduled email delivery states.
const (
	EmailStatusPending = "pending"
	EmailStatusSent    = "sent"
	EmailStatusFailed  = "failed"
)

// EmailDraft is a composed email whose body may contain {{placeholder}}
// variables substituted at render time.
type EmailDraft struct {
	BaseModel

	OrganizationID string         `gorm:"type:uuid;index;not null" json:"organization_id"`
	CampaignID     *string        `gorm:"type:uuid;index" json:"campaign_id"`
	Subject        string         `gorm:"not null" json:"subject"`
	BodyHTML       string         `gorm:"type:text" json:"body_html"`
	Variables      datatypes.JSON `json:"variables"`
}

// ScheduledEmail is one queued delivery of a draft to a single recipient.
type ScheduledEmail struct {
	BaseModel

	OrganizationID string    `gorm:"type:uuid;index;not null" json:"organization_id"`
	DraftID        string    `gorm:"type:uuid;index;not null" json:"draft_id"`
	Recipient      string    `gorm:"not null" json:"recipient"`
	SendAt         time.Time `gorm:"index" json:"send_at"`
	Status         string    `gorm:"index;default:pending" json:"status"`
	LastError      string    `json:"last_error"`
}
