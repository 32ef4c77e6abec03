package navigator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/pressdeck/pressdeck/internal/models"
	apperrors "github.com/pressdeck/pressdeck/pkg/errors"
	"github.com/pressdeck/pressdeck/pkg/logger"
)

// ConfirmDialog is the pending confirmation for a destructive action. At most
// one is active at a time.
type ConfirmDialog struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	AssetID  string `json:"asset_id"`
	FileName string `json:"file_name"`
}

// DownloadResult describes how a download request resolves: internally
// authored documents yield a rich-text payload, external files a URL to
// redirect to.
type DownloadResult struct {
	FileName string `json:"file_name,omitempty"`
	Content  string `json:"content,omitempty"`
	URL      string `json:"url,omitempty"`
}

// OpenTarget routes an asset click.
type OpenTarget string

const (
	OpenDocumentEditor    OpenTarget = "document_editor"
	OpenSpreadsheetEditor OpenTarget = "spreadsheet_editor"
	OpenExternal          OpenTarget = "external"
)

// File types marking internally editable documents.
const (
	FileTypeDocument    = "document"
	FileTypeSpreadsheet = "spreadsheet"
)

// FileActions turns user intents (delete, download, open) into repository
// calls, gating destructive actions behind a confirmation dialog. Outcomes are
// reported through the OnSuccess/OnError callbacks; errors are additionally
// returned for callers that want them.
type FileActions struct {
	store ActionStore
	log   *zap.Logger

	OnSuccess func(message string)
	OnError   func(message string)

	mu     sync.Mutex
	dialog *ConfirmDialog
}

// NewFileActions constructs a file action coordinator over store.
func NewFileActions(store ActionStore) (*FileActions, error) {
	if store == nil {
		return nil, errors.New("file actions: store is required")
	}
	return &FileActions{
		store: store,
		log:   logger.WithModule("navigator.actions"),
	}, nil
}

// RequestDeleteAsset does not delete anything; it arms the confirmation
// dialog for the named asset.
func (f *FileActions) RequestDeleteAsset(assetID, fileName string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.dialog = &ConfirmDialog{
		Title:    "Delete file",
		Message:  fmt.Sprintf("Delete %q? This cannot be undone.", fileName),
		AssetID:  assetID,
		FileName: fileName,
	}
}

// Dialog returns a copy of the pending confirmation, or nil.
func (f *FileActions) Dialog() *ConfirmDialog {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.dialog == nil {
		return nil
	}
	copied := *f.dialog
	return &copied
}

// CancelDelete clears the pending confirmation.
func (f *FileActions) CancelDelete() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dialog = nil
}

// ConfirmDeleteAsset clears the dialog, re-fetches the folder's asset list to
// locate the full asset object (the delete primitive requires the object, not
// just an id) and issues the delete. When the asset is no longer present the
// delete primitive is never called and a not-found error is reported.
func (f *FileActions) ConfirmDeleteAsset(ctx context.Context, assetID, fileName string, folderID *string) error {
	f.CancelDelete()

	assets, err := f.store.AssetsByFolder(ctx, folderID)
	if err != nil {
		f.log.Warn("asset list re-fetch failed", zap.Error(err))
		f.reportError(fmt.Sprintf("Could not delete %s.", fileName))
		return err
	}

	var target *models.MediaAsset
	for i := range assets {
		if assets[i].ID == assetID {
			target = &assets[i]
			break
		}
	}
	if target == nil {
		f.log.Warn("asset to delete not found",
			zap.String("asset_id", assetID),
			zap.String("file_name", fileName),
		)
		f.reportError(fmt.Sprintf("File %s no longer exists.", fileName))
		return apperrors.ErrNotFound
	}

	if err := f.store.DeleteAsset(ctx, *target); err != nil {
		f.log.Warn("asset delete failed", zap.String("asset_id", assetID), zap.Error(err))
		f.reportError(fmt.Sprintf("Could not delete %s.", fileName))
		return err
	}

	f.reportSuccess(fmt.Sprintf("%s deleted.", fileName))
	return nil
}

// DownloadDocument resolves a download request. Internal documents have their
// stored body converted to rich-text markup; external files resolve to their
// download URL.
func (f *FileActions) DownloadDocument(ctx context.Context, asset models.MediaAsset) (*DownloadResult, error) {
	if asset.IsInternalDocument() {
		doc, err := f.store.DocumentBody(ctx, asset.ContentRef)
		if err != nil {
			f.log.Warn("document body load failed",
				zap.String("asset_id", asset.ID),
				zap.Error(err),
			)
			return nil, err
		}
		return &DownloadResult{
			FileName: rtfFileName(asset.FileName),
			Content:  ConvertHTMLToRTF(doc.ContentHTML),
		}, nil
	}

	if asset.DownloadURL == "" {
		return nil, apperrors.NewBadRequest("asset has no downloadable content")
	}
	return &DownloadResult{URL: asset.DownloadURL}, nil
}

// ResolveAssetOpen routes an asset click to the matching editor or to an
// external open. Pure routing, no state.
func ResolveAssetOpen(asset models.MediaAsset) OpenTarget {
	if asset.IsInternalDocument() {
		if asset.FileType == FileTypeSpreadsheet {
			return OpenSpreadsheetEditor
		}
		return OpenDocumentEditor
	}
	return OpenExternal
}

func (f *FileActions) reportSuccess(message string) {
	if f.OnSuccess != nil {
		f.OnSuccess(message)
	}
}

func (f *FileActions) reportError(message string) {
	if f.OnError != nil {
		f.OnError(message)
	}
}

func rtfFileName(fileName string) string {
	base := fileName
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base + ".rtf"
}
