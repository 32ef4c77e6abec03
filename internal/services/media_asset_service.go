package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/pressdeck/pressdeck/internal/models"
	apperrors "github.com/pressdeck/pressdeck/pkg/errors"
)

// MediaAssetService manages media assets and the bodies of internally
// authored documents.
type MediaAssetService struct {
	db      *gorm.DB
	folders *MediaFolderService
}

// UploadInput describes an asset registration. ContentHTML, when non-empty,
// marks the asset as an internally authored document and stores its body.
type UploadInput struct {
	FileName    string
	FileType    string
	FolderID    *string
	DownloadURL string
	ContentHTML string
	SizeBytes   int64
}

// NewMediaAssetService constructs an asset service.
func NewMediaAssetService(db *gorm.DB, folders *MediaFolderService) (*MediaAssetService, error) {
	if db == nil {
		return nil, errors.New("media asset service: db is required")
	}
	if folders == nil {
		var err error
		folders, err = NewMediaFolderService(db)
		if err != nil {
			return nil, err
		}
	}
	return &MediaAssetService{db: db, folders: folders}, nil
}

// Upload registers asset metadata. Byte storage is delegated to the caller;
// only the download URL or the document body is persisted here.
func (s *MediaAssetService) Upload(ctx context.Context, orgID string, input UploadInput) (*models.MediaAsset, error) {
	ctx = ensureContext(ctx)

	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, apperrors.NewBadRequest("file name is required")
	}

	if input.FolderID != nil {
		if _, err := s.folders.Get(ctx, orgID, *input.FolderID); err != nil {
			return nil, err
		}
	}

	asset := models.MediaAsset{
		FileName:       fileName,
		FileType:       strings.ToLower(strings.TrimSpace(input.FileType)),
		FolderID:       input.FolderID,
		OrganizationID: orgID,
		DownloadURL:    strings.TrimSpace(input.DownloadURL),
		SizeBytes:      input.SizeBytes,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if input.ContentHTML != "" {
			doc := models.MediaDocument{
				OrganizationID: orgID,
				Title:          fileName,
				ContentHTML:    input.ContentHTML,
			}
			if err := tx.Create(&doc).Error; err != nil {
				return fmt.Errorf("media asset service: create document body: %w", err)
			}
			asset.ContentRef = doc.ID
		}
		if err := tx.Create(&asset).Error; err != nil {
			return fmt.Errorf("media asset service: create asset: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &asset, nil
}

// Get loads one asset scoped to the organization.
func (s *MediaAssetService) Get(ctx context.Context, orgID, assetID string) (*models.MediaAsset, error) {
	ctx = ensureContext(ctx)

	var asset models.MediaAsset
	err := s.db.WithContext(ctx).
		First(&asset, "id = ? AND organization_id = ?", assetID, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("media asset service: load asset: %w", err)
	}
	return &asset, nil
}

// ListByFolder returns the assets inside folderID ordered by file name. A nil
// folderID selects root-level assets.
func (s *MediaAssetService) ListByFolder(ctx context.Context, orgID string, folderID *string) ([]models.MediaAsset, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Model(&models.MediaAsset{}).
		Where("organization_id = ?", orgID).
		Order("file_name ASC")

	if folderID == nil {
		query = query.Where("folder_id IS NULL")
	} else {
		query = query.Where("folder_id = ?", *folderID)
	}

	var assets []models.MediaAsset
	if err := query.Find(&assets).Error; err != nil {
		return nil, fmt.Errorf("media asset service: list assets: %w", err)
	}
	return assets, nil
}

// Move reassigns an asset to a different folder. A nil target places the
// asset at the library root; otherwise the target folder must exist.
func (s *MediaAssetService) Move(ctx context.Context, orgID, assetID string, folderID *string) (*models.MediaAsset, error) {
	ctx = ensureContext(ctx)

	asset, err := s.Get(ctx, orgID, assetID)
	if err != nil {
		return nil, err
	}

	if folderID != nil {
		if _, err := s.folders.Get(ctx, orgID, *folderID); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Model(asset).Update("folder_id", folderID).Error; err != nil {
		return nil, fmt.Errorf("media asset service: move asset: %w", err)
	}
	asset.FolderID = folderID

	return asset, nil
}

// Delete removes an asset. The full object is required, mirroring the
// repository's delete primitive; callers locate it via ListByFolder or Get
// first. The linked document body, if any, is removed in the same transaction.
func (s *MediaAssetService) Delete(ctx context.Context, asset models.MediaAsset) error {
	ctx = ensureContext(ctx)

	if asset.ID == "" {
		return apperrors.NewBadRequest("asset id is required")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if asset.ContentRef != "" {
			if err := tx.Delete(&models.MediaDocument{}, "id = ?", asset.ContentRef).Error; err != nil {
				return fmt.Errorf("media asset service: delete document body: %w", err)
			}
		}
		if err := tx.Delete(&models.MediaAsset{}, "id = ?", asset.ID).Error; err != nil {
			return fmt.Errorf("media asset service: delete asset: %w", err)
		}
		return nil
	})
}

// LoadDocumentBody fetches the stored HTML body of an internal document.
func (s *MediaAssetService) LoadDocumentBody(ctx context.Context, orgID, contentRef string) (*models.MediaDocument, error) {
	ctx = ensureContext(ctx)

	var doc models.MediaDocument
	err := s.db.WithContext(ctx).
		First(&doc, "id = ? AND organization_id = ?", contentRef, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("document body not found")
		}
		return nil, fmt.Errorf("media asset service: load document body: %w", err)
	}
	return &doc, nil
}
