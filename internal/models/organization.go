package models

// Organization is the tenant boundary. Every domain record carries an
// OrganizationID and queries are always scoped to one.
type Organization struct {
	BaseModel

	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"uniqueIndex" json:"slug"`
}
