package models

// MediaDocument stores the HTML body of internally authored documents and
// spreadsheets. MediaAsset.ContentRef points at MediaDocument.ID.
type MediaDocument struct {
	BaseModel

	OrganizationID string `gorm:"type:uuid;index;not null" json:"organization_id"`
	Title          string `json:"title"`
	ContentHTML    string `gorm:"type:text" json:"content_html"`
}
