package models

// MediaAsset is a stored file associated with at most one folder. A nil
// FolderID places the asset at the library root. Assets with a non-empty
// ContentRef are internally authored documents whose body lives in
// MediaDocument; everything else is an externally stored file reachable via
// DownloadURL.
type MediaAsset struct {
	BaseModel

	FileName       string  `gorm:"not null" json:"file_name"`
	FileType       string  `gorm:"index" json:"file_type"`
	FolderID       *string `gorm:"type:uuid;index" json:"folder_id"`
	OrganizationID string  `gorm:"type:uuid;index;not null" json:"organization_id"`
	DownloadURL    string  `json:"download_url"`
	ContentRef     string  `gorm:"index" json:"content_ref"`
	SizeBytes      int64   `json:"size_bytes"`
}

// IsInternalDocument reports whether the asset body is authored in-app.
func (a MediaAsset) IsInternalDocument() bool {
	return a.ContentRef != ""
}
