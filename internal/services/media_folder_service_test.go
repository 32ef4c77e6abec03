package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pressdeck/pressdeck/internal/database/testutil"
	"github.com/pressdeck/pressdeck/internal/models"
	apperrors "github.com/pressdeck/pressdeck/pkg/errors"
)

const testOrg = "org-1"

func newFolderService(t *testing.T) (*MediaFolderService, *gorm.DB) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	require.NoError(t, db.Create(&models.Organization{
		BaseModel: models.BaseModel{ID: testOrg},
		Name:      "Acme PR",
		Slug:      "acme",
	}).Error)

	svc, err := NewMediaFolderService(db)
	require.NoError(t, err)
	return svc, db
}

func TestMediaFolderService_CreateAndList(t *testing.T) {
	svc, _ := newFolderService(t)
	ctx := context.Background()

	medien, err := svc.Create(ctx, testOrg, FolderInput{Name: "Medien"})
	require.NoError(t, err)
	require.NotEmpty(t, medien.ID)
	require.Equal(t, "medien", medien.Slug)
	require.Nil(t, medien.ParentID)

	_, err = svc.Create(ctx, testOrg, FolderInput{Name: "Pressebilder", ParentID: &medien.ID})
	require.NoError(t, err)

	roots, err := svc.ListByParent(ctx, testOrg, nil)
	require.NoError(t, err)
	require.Len(t, roots, 1)

	children, err := svc.ListByParent(ctx, testOrg, &medien.ID)
	require.NoError(t, err)
	require.Len(t, children, 1)
	require.Equal(t, "Pressebilder", children[0].Name)
}

func TestMediaFolderService_CreateRequiresName(t *testing.T) {
	svc, _ := newFolderService(t)

	_, err := svc.Create(context.Background(), testOrg, FolderInput{Name: "   "})
	require.Error(t, err)
}

func TestMediaFolderService_CreateRejectsUnknownParent(t *testing.T) {
	svc, _ := newFolderService(t)

	missing := "not-a-folder"
	_, err := svc.Create(context.Background(), testOrg, FolderInput{Name: "Dokumente", ParentID: &missing})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMediaFolderService_UpdateRejectsSelfParent(t *testing.T) {
	svc, _ := newFolderService(t)
	ctx := context.Background()

	folder, err := svc.Create(ctx, testOrg, FolderInput{Name: "Medien"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, testOrg, folder.ID, FolderInput{ParentID: &folder.ID})
	require.Error(t, err)
}

func TestMediaFolderService_DeleteReassignsChildrenAndAssets(t *testing.T) {
	svc, db := newFolderService(t)
	ctx := context.Background()

	root, err := svc.Create(ctx, testOrg, FolderInput{Name: "Medien"})
	require.NoError(t, err)
	mid, err := svc.Create(ctx, testOrg, FolderInput{Name: "Kampagne 2026", ParentID: &root.ID})
	require.NoError(t, err)
	leaf, err := svc.Create(ctx, testOrg, FolderInput{Name: "Bilder", ParentID: &mid.ID})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.MediaAsset{
		FileName:       "logo.png",
		FileType:       "png",
		FolderID:       &mid.ID,
		OrganizationID: testOrg,
	}).Error)

	require.NoError(t, svc.Delete(ctx, testOrg, mid.ID))

	reloaded, err := svc.Get(ctx, testOrg, leaf.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded.ParentID)
	require.Equal(t, root.ID, *reloaded.ParentID)

	var asset models.MediaAsset
	require.NoError(t, db.First(&asset, "file_name = ?", "logo.png").Error)
	require.NotNil(t, asset.FolderID)
	require.Equal(t, root.ID, *asset.FolderID)

	_, err = svc.Get(ctx, testOrg, mid.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMediaFolderService_DeleteUnknownFolder(t *testing.T) {
	svc, _ := newFolderService(t)
	require.ErrorIs(t, svc.Delete(context.Background(), testOrg, "missing"), apperrors.ErrNotFound)
}

func TestMediaFolderService_ListTreeFlatDepths(t *testing.T) {
	svc, _ := newFolderService(t)
	ctx := context.Background()

	medien, err := svc.Create(ctx, testOrg, FolderInput{Name: "Medien"})
	require.NoError(t, err)
	bilder, err := svc.Create(ctx, testOrg, FolderInput{Name: "Bilder", ParentID: &medien.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, testOrg, FolderInput{Name: "Archiv", ParentID: &bilder.ID})
	require.NoError(t, err)
	_, err = svc.Create(ctx, testOrg, FolderInput{Name: "Dokumente"})
	require.NoError(t, err)

	flat, err := svc.ListTreeFlat(ctx, testOrg)
	require.NoError(t, err)
	require.Len(t, flat, 4)

	depths := map[string]int{}
	for _, entry := range flat {
		depths[entry.Folder.Name] = entry.Depth
	}
	require.Equal(t, 0, depths["Medien"])
	require.Equal(t, 1, depths["Bilder"])
	require.Equal(t, 2, depths["Archiv"])
	require.Equal(t, 0, depths["Dokumente"])
}

func TestMediaFolderService_ScopedToOrganization(t *testing.T) {
	svc, db := newFolderService(t)
	ctx := context.Background()

	require.NoError(t, db.Create(&models.Organization{
		BaseModel: models.BaseModel{ID: "org-2"},
		Name:      "Other",
		Slug:      "other",
	}).Error)

	folder, err := svc.Create(ctx, testOrg, FolderInput{Name: "Medien"})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "org-2", folder.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
