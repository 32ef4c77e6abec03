package models

import "gorm.io/datatypes"

// MediaFolder organizes media assets into hierarchical groups. Root folders
// have a nil ParentID. Cycle freedom is guaranteed by the creation API which
// never accepts an existing folder as its own ancestor target; it is not
// re-validated on read.
type MediaFolder struct {
	BaseModel

	Name           string         `gorm:"not null" json:"name"`
	Slug           string         `gorm:"index" json:"slug"`
	ParentID       *string        `gorm:"type:uuid;index" json:"parent_id"`
	OrganizationID string         `gorm:"type:uuid;index;not null" json:"organization_id"`
	Metadata       datatypes.JSON `json:"metadata"`

	Children []MediaFolder `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Assets   []MediaAsset  `gorm:"foreignKey:FolderID" json:"assets,omitempty"`
}
