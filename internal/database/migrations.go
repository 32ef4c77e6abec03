package database

import (
	"gorm.io/gorm"

	"github.com/pressdeck/pressdeck/internal/models"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Organization{},
		&models.MediaFolder{},
		&models.MediaAsset{},
		&models.MediaDocument{},
		&models.Campaign{},
		&models.EmailDraft{},
		&models.ScheduledEmail{},
		&models.BrandDocument{},
		&models.Clipping{},
	)
}

// SeedData populates the default organization used by single-tenant installs.
func SeedData(db *gorm.DB) error {
	defaultOrg := models.Organization{
		BaseModel: models.BaseModel{ID: "default"},
		Name:      "Default Organization",
		Slug:      "default",
	}

	return db.
		Where(models.Organization{Slug: defaultOrg.Slug}).
		Attrs(defaultOrg).
		FirstOrCreate(&models.Organization{}).Error
}
