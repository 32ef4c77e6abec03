package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pressdeck/pressdeck/internal/database/testutil"
	"github.com/pressdeck/pressdeck/internal/models"
	apperrors "github.com/pressdeck/pressdeck/pkg/errors"
)

func newAssetService(t *testing.T) (*MediaAssetService, *MediaFolderService) {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	require.NoError(t, db.Create(&models.Organization{
		BaseModel: models.BaseModel{ID: testOrg},
		Name:      "Acme PR",
		Slug:      "acme",
	}).Error)

	folders, err := NewMediaFolderService(db)
	require.NoError(t, err)
	assets, err := NewMediaAssetService(db, folders)
	require.NoError(t, err)
	return assets, folders
}

func TestMediaAssetService_UploadExternalFile(t *testing.T) {
	assets, folders := newAssetService(t)
	ctx := context.Background()

	folder, err := folders.Create(ctx, testOrg, FolderInput{Name: "Medien"})
	require.NoError(t, err)

	asset, err := assets.Upload(ctx, testOrg, UploadInput{
		FileName:    "pressefoto.jpg",
		FileType:    "JPG",
		FolderID:    &folder.ID,
		DownloadURL: "https://cdn.example.com/pressefoto.jpg",
		SizeBytes:   123456,
	})
	require.NoError(t, err)
	require.Equal(t, "jpg", asset.FileType)
	require.False(t, asset.IsInternalDocument())

	listed, err := assets.ListByFolder(ctx, testOrg, &folder.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestMediaAssetService_UploadInternalDocumentStoresBody(t *testing.T) {
	assets, _ := newAssetService(t)
	ctx := context.Background()

	asset, err := assets.Upload(ctx, testOrg, UploadInput{
		FileName:    "pitch.doc",
		FileType:    "doc",
		ContentHTML: "<h1>Pitch</h1><p>Hallo</p>",
	})
	require.NoError(t, err)
	require.True(t, asset.IsInternalDocument())

	doc, err := assets.LoadDocumentBody(ctx, testOrg, asset.ContentRef)
	require.NoError(t, err)
	require.Equal(t, "<h1>Pitch</h1><p>Hallo</p>", doc.ContentHTML)
}

func TestMediaAssetService_UploadRejectsUnknownFolder(t *testing.T) {
	assets, _ := newAssetService(t)

	missing := "missing-folder"
	_, err := assets.Upload(context.Background(), testOrg, UploadInput{
		FileName: "a.pdf",
		FolderID: &missing,
	})
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMediaAssetService_MoveBetweenFolders(t *testing.T) {
	assets, folders := newAssetService(t)
	ctx := context.Background()

	src, err := folders.Create(ctx, testOrg, FolderInput{Name: "Medien"})
	require.NoError(t, err)
	dst, err := folders.Create(ctx, testOrg, FolderInput{Name: "Dokumente"})
	require.NoError(t, err)

	asset, err := assets.Upload(ctx, testOrg, UploadInput{FileName: "brief.pdf", FolderID: &src.ID})
	require.NoError(t, err)

	moved, err := assets.Move(ctx, testOrg, asset.ID, &dst.ID)
	require.NoError(t, err)
	require.Equal(t, dst.ID, *moved.FolderID)

	remaining, err := assets.ListByFolder(ctx, testOrg, &src.ID)
	require.NoError(t, err)
	require.Empty(t, remaining)

	// moving to root clears the folder reference
	moved, err = assets.Move(ctx, testOrg, asset.ID, nil)
	require.NoError(t, err)
	require.Nil(t, moved.FolderID)
}

func TestMediaAssetService_MoveRejectsUnknownTarget(t *testing.T) {
	assets, _ := newAssetService(t)
	ctx := context.Background()

	asset, err := assets.Upload(ctx, testOrg, UploadInput{FileName: "brief.pdf"})
	require.NoError(t, err)

	missing := "missing-folder"
	_, err = assets.Move(ctx, testOrg, asset.ID, &missing)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestMediaAssetService_DeleteRemovesDocumentBody(t *testing.T) {
	assets, _ := newAssetService(t)
	ctx := context.Background()

	asset, err := assets.Upload(ctx, testOrg, UploadInput{
		FileName:    "pitch.doc",
		ContentHTML: "<p>body</p>",
	})
	require.NoError(t, err)

	require.NoError(t, assets.Delete(ctx, *asset))

	_, err = assets.Get(ctx, testOrg, asset.ID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = assets.LoadDocumentBody(ctx, testOrg, asset.ContentRef)
	require.Error(t, err)
}

func TestMediaAssetService_DeleteRequiresID(t *testing.T) {
	assets, _ := newAssetService(t)
	require.Error(t, assets.Delete(context.Background(), models.MediaAsset{}))
}
