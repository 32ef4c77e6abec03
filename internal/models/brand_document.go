package models

// Brand document kinds ("Marken-DNA" sections).
const (
	BrandKindMission  = "mission"
	BrandKindValues   = "values"
	BrandKindTonality = "tonality"
	BrandKindAudience = "audience"
	BrandKindStory    = "story"
)

// BrandDocument captures one section of an organization's brand identity.
// Version increments whenever the content changes.
type BrandDocument struct {
	BaseModel

	OrganizationID string `gorm:"type:uuid;index;not null" json:"organization_id"`
	Kind           string `gorm:"index;not null" json:"kind"`
	Title          string `json:"title"`
	ContentHTML    string `gorm:"type:text" json:"content_html"`
	Version        int    `gorm:"default:1" json:"version"`
}
