package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pressdeck/pressdeck/internal/database/testutil"
	"github.com/pressdeck/pressdeck/internal/models"
	apperrors "github.com/pressdeck/pressdeck/pkg/errors"
)

func newBrandService(t *testing.T) *BrandService {
	t.Helper()

	db := testutil.MustOpenTestDB(t, testutil.WithAutoMigrate())
	svc, err := NewBrandService(db)
	require.NoError(t, err)
	return svc
}

func TestBrandService_CreateStartsAtVersionOne(t *testing.T) {
	svc := newBrandService(t)

	doc, err := svc.Create(context.Background(), testOrg, BrandDocumentInput{
		Kind:        models.BrandKindTonality,
		Title:       "Tone of Voice",
		ContentHTML: "<p>Klar und direkt.</p>",
	})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Version)
	require.Equal(t, models.BrandKindTonality, doc.Kind)
}

func TestBrandService_CreateRequiresKind(t *testing.T) {
	svc := newBrandService(t)

	_, err := svc.Create(context.Background(), testOrg, BrandDocumentInput{Title: "No kind"})
	require.Error(t, err)
}

func TestBrandService_UpdateContentBumpsVersion(t *testing.T) {
	svc := newBrandService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, testOrg, BrandDocumentInput{
		Kind:        models.BrandKindMission,
		Title:       "Mission",
		ContentHTML: "<p>v1</p>",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, testOrg, doc.ID, BrandDocumentInput{ContentHTML: "<p>v2</p>"})
	require.NoError(t, err)
	require.Equal(t, 2, updated.Version)
	require.Equal(t, "<p>v2</p>", updated.ContentHTML)
}

func TestBrandService_UpdateTitleOnlyKeepsVersion(t *testing.T) {
	svc := newBrandService(t)
	ctx := context.Background()

	doc, err := svc.Create(ctx, testOrg, BrandDocumentInput{
		Kind:        models.BrandKindMission,
		Title:       "Mission",
		ContentHTML: "<p>v1</p>",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, testOrg, doc.ID, BrandDocumentInput{Title: "Unsere Mission"})
	require.NoError(t, err)
	require.Equal(t, 1, updated.Version)
	require.Equal(t, "Unsere Mission", updated.Title)
}

func TestBrandService_ListFiltersByKind(t *testing.T) {
	svc := newBrandService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, testOrg, BrandDocumentInput{Kind: models.BrandKindTonality, Title: "Voice"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, testOrg, BrandDocumentInput{Kind: models.BrandKindMission, Title: "Mission"})
	require.NoError(t, err)

	voice, err := svc.List(ctx, testOrg, models.BrandKindTonality)
	require.NoError(t, err)
	require.Len(t, voice, 1)
	require.Equal(t, "Voice", voice[0].Title)

	all, err := svc.List(ctx, testOrg, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestBrandService_DeleteUnknown(t *testing.T) {
	svc := newBrandService(t)
	require.ErrorIs(t, svc.Delete(context.Background(), testOrg, "missing"), apperrors.ErrNotFound)
}
