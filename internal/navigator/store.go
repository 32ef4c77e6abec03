package navigator

import (
	"context"
	"errors"

	"github.com/pressdeck/pressdeck/internal/models"
	"github.com/pressdeck/pressdeck/internal/services"
)

// Store is the repository surface the navigation state machine reads from.
// A nil parentID or folderID selects the organization's root level.
type Store interface {
	FoldersByParent(ctx context.Context, parentID *string) ([]models.MediaFolder, error)
	AssetsByFolder(ctx context.Context, folderID *string) ([]models.MediaAsset, error)
}

// ActionStore extends Store with the mutations and lookups the file action
// coordinator needs. DeleteAsset takes the full asset object, matching the
// repository's delete primitive.
type ActionStore interface {
	Store

	DeleteAsset(ctx context.Context, asset models.MediaAsset) error
	DocumentBody(ctx context.Context, contentRef string) (*models.MediaDocument, error)
}

// ServiceStore adapts the media services to the navigator interfaces,
// binding all calls to one organization.
type ServiceStore struct {
	orgID   string
	folders *services.MediaFolderService
	assets  *services.MediaAssetService
}

// NewServiceStore builds a store scoped to orgID.
func NewServiceStore(orgID string, folders *services.MediaFolderService, assets *services.MediaAssetService) (*ServiceStore, error) {
	if orgID == "" {
		return nil, errors.New("navigator store: organization id is required")
	}
	if folders == nil || assets == nil {
		return nil, errors.New("navigator store: folder and asset services are required")
	}
	return &ServiceStore{orgID: orgID, folders: folders, assets: assets}, nil
}

func (s *ServiceStore) FoldersByParent(ctx context.Context, parentID *string) ([]models.MediaFolder, error) {
	return s.folders.ListByParent(ctx, s.orgID, parentID)
}

func (s *ServiceStore) AssetsByFolder(ctx context.Context, folderID *string) ([]models.MediaAsset, error) {
	return s.assets.ListByFolder(ctx, s.orgID, folderID)
}

func (s *ServiceStore) DeleteAsset(ctx context.Context, asset models.MediaAsset) error {
	return s.assets.Delete(ctx, asset)
}

func (s *ServiceStore) DocumentBody(ctx context.Context, contentRef string) (*models.MediaDocument, error) {
	return s.assets.LoadDocumentBody(ctx, s.orgID, contentRef)
}
