package models

import "time"

// Clipping outlet types and sentiments used for AVE weighting.
const (
	OutletTypePrint     = "print"
	OutletTypeOnline    = "online"
	OutletTypeBroadcast = "broadcast"
	OutletTypeBlog      = "blog"

	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Clipping is a monitored press mention feeding campaign reporting.
type Clipping struct {
	BaseModel

	OrganizationID string     `gorm:"type:uuid;index;not null" json:"organization_id"`
	CampaignID     *string    `gorm:"type:uuid;index" json:"campaign_id"`
	Outlet         string     `gorm:"not null" json:"outlet"`
	OutletType     string     `gorm:"index" json:"outlet_type"`
	URL            string     `json:"url"`
	Reach          int64      `json:"reach"`
	Sentiment      string     `gorm:"index" json:"sentiment"`
	PublishedAt    *time.Time `json:"published_at"`
}
