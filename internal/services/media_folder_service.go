package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pressdeck/pressdeck/internal/models"
	apperrors "github.com/pressdeck/pressdeck/pkg/errors"
	"github.com/pressdeck/pressdeck/pkg/logger"
)

// MediaFolderService manages hierarchical folders for organizing media assets.
type MediaFolderService struct {
	db  *gorm.DB
	log *zap.Logger
}

// FolderInput describes folder create/update payloads.
type FolderInput struct {
	Name     string
	ParentID *string
	Metadata map[string]any
}

// FlatFolder is a depth-annotated projection of one folder inside the full
// tree, used by destination pickers.
type FlatFolder struct {
	Folder models.MediaFolder `json:"folder"`
	Depth  int                `json:"depth"`
}

// NewMediaFolderService constructs a folder service.
func NewMediaFolderService(db *gorm.DB) (*MediaFolderService, error) {
	if db == nil {
		return nil, errors.New("media folder service: db is required")
	}
	return &MediaFolderService{
		db:  db,
		log: logger.WithModule("media.folders"),
	}, nil
}

// Create registers a new folder. The parent, when given, must exist within the
// same organization; a folder can never be created as its own ancestor because
// the id is generated after this check.
func (s *MediaFolderService) Create(ctx context.Context, orgID string, input FolderInput) (*models.MediaFolder, error) {
	ctx = ensureContext(ctx)

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, apperrors.NewBadRequest("folder name is required")
	}

	if input.ParentID != nil {
		if _, err := s.Get(ctx, orgID, *input.ParentID); err != nil {
			return nil, err
		}
	}

	folder := models.MediaFolder{
		Name:           name,
		Slug:           slugify(name),
		ParentID:       input.ParentID,
		OrganizationID: orgID,
	}

	if input.Metadata != nil {
		data, err := encodeJSONMap(input.Metadata)
		if err != nil {
			return nil, apperrors.NewBadRequest("invalid metadata payload")
		}
		folder.Metadata = data
	}

	if err := s.db.WithContext(ctx).Create(&folder).Error; err != nil {
		return nil, fmt.Errorf("media folder service: create folder: %w", err)
	}

	return &folder, nil
}

// Get loads one folder scoped to the organization.
func (s *MediaFolderService) Get(ctx context.Context, orgID, folderID string) (*models.MediaFolder, error) {
	ctx = ensureContext(ctx)

	var folder models.MediaFolder
	err := s.db.WithContext(ctx).
		First(&folder, "id = ? AND organization_id = ?", folderID, orgID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("media folder service: load folder: %w", err)
	}
	return &folder, nil
}

// ListByParent returns the direct children of parentID ordered by name. A nil
// parentID selects the organization's root folders.
func (s *MediaFolderService) ListByParent(ctx context.Context, orgID string, parentID *string) ([]models.MediaFolder, error) {
	ctx = ensureContext(ctx)

	query := s.db.WithContext(ctx).
		Model(&models.MediaFolder{}).
		Where("organization_id = ?", orgID).
		Order("name ASC")

	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var folders []models.MediaFolder
	if err := query.Find(&folders).Error; err != nil {
		return nil, fmt.Errorf("media folder service: list folders: %w", err)
	}
	return folders, nil
}

// Update renames a folder and/or moves it under a new parent.
func (s *MediaFolderService) Update(ctx context.Context, orgID, folderID string, input FolderInput) (*models.MediaFolder, error) {
	ctx = ensureContext(ctx)

	folder, err := s.Get(ctx, orgID, folderID)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if name := strings.TrimSpace(input.Name); name != "" && name != folder.Name {
		updates["name"] = name
		updates["slug"] = slugify(name)
	}
	if input.ParentID != nil {
		if *input.ParentID == folderID {
			return nil, apperrors.NewBadRequest("folder cannot be its own parent")
		}
		if _, err := s.Get(ctx, orgID, *input.ParentID); err != nil {
			return nil, err
		}
		updates["parent_id"] = input.ParentID
	}
	if input.Metadata != nil {
		data, err := encodeJSONMap(input.Metadata)
		if err != nil {
			return nil, apperrors.NewBadRequest("invalid metadata payload")
		}
		updates["metadata"] = data
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(folder).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("media folder service: update folder: %w", err)
		}
		if err := s.db.WithContext(ctx).First(folder, "id = ?", folderID).Error; err != nil {
			return nil, fmt.Errorf("media folder service: reload folder: %w", err)
		}
	}

	return folder, nil
}

// Delete removes a folder, reassigning child folders and contained assets to
// the deleted folder's parent.
func (s *MediaFolderService) Delete(ctx context.Context, orgID, folderID string) error {
	ctx = ensureContext(ctx)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var folder models.MediaFolder
		if err := tx.First(&folder, "id = ? AND organization_id = ?", folderID, orgID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("media folder service: load folder: %w", err)
		}

		// Reassign child folders to parent
		if err := tx.Model(&models.MediaFolder{}).
			Where("parent_id = ?", folder.ID).
			Update("parent_id", folder.ParentID).Error; err != nil {
			return fmt.Errorf("media folder service: reassign child folders: %w", err)
		}

		// Reassign assets to parent folder or library root
		if err := tx.Model(&models.MediaAsset{}).
			Where("folder_id = ?", folder.ID).
			Update("folder_id", folder.ParentID).Error; err != nil {
			return fmt.Errorf("media folder service: reassign assets: %w", err)
		}

		if err := tx.Delete(&folder).Error; err != nil {
			return fmt.Errorf("media folder service: delete folder: %w", err)
		}

		return nil
	})
}

// ListTreeFlat walks the whole folder tree depth-first, one child query per
// folder, and returns a depth-annotated flat list. A failed child fetch is
// logged and its subtree skipped; siblings are still visited, so the result
// may be incomplete on partial failure.
func (s *MediaFolderService) ListTreeFlat(ctx context.Context, orgID string) ([]FlatFolder, error) {
	ctx = ensureContext(ctx)

	roots, err := s.ListByParent(ctx, orgID, nil)
	if err != nil {
		return nil, err
	}

	var flat []FlatFolder
	for _, root := range roots {
		s.appendSubtree(ctx, orgID, root, 0, &flat)
	}
	return flat, nil
}

func (s *MediaFolderService) appendSubtree(ctx context.Context, orgID string, folder models.MediaFolder, depth int, out *[]FlatFolder) {
	*out = append(*out, FlatFolder{Folder: folder, Depth: depth})

	children, err := s.ListByParent(ctx, orgID, &folder.ID)
	if err != nil {
		s.log.Warn("folder subtree fetch failed",
			zap.String("folder_id", folder.ID),
			zap.Error(err),
		)
		return
	}

	for _, child := range children {
		s.appendSubtree(ctx, orgID, child, depth+1, out)
	}
}
