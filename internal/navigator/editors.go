package navigator

import (
	"sync"

	"github.com/pressdeck/pressdeck/internal/models"
)

// AssetRef is the lightweight handle an editor session holds while a document
// or spreadsheet is being edited.
type AssetRef struct {
	ID         string `json:"id"`
	FileName   string `json:"file_name"`
	ContentRef string `json:"content_ref"`
}

// EditorSession is the visibility/reference bookkeeping for one in-app editor.
// Document and spreadsheet editors are independent sessions of the same shape.
// There is no validation, conflict detection or autosave here.
type EditorSession struct {
	mu      sync.Mutex
	visible bool
	editing *AssetRef
	onSaved func(AssetRef)
}

// NewEditorSession constructs a session. onSaved, when non-nil, fires after a
// successful Save with the reference that was being edited.
func NewEditorSession(onSaved func(AssetRef)) *EditorSession {
	return &EditorSession{onSaved: onSaved}
}

// Create opens the editor on a fresh, unsaved document.
func (e *EditorSession) Create() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = nil
	e.visible = true
}

// Edit opens the editor on an existing asset.
func (e *EditorSession) Edit(asset models.MediaAsset) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = &AssetRef{
		ID:         asset.ID,
		FileName:   asset.FileName,
		ContentRef: asset.ContentRef,
	}
	e.visible = true
}

// Save hides the editor, clears the reference and fires the saved callback.
func (e *EditorSession) Save() {
	e.mu.Lock()
	edited := e.editing
	e.visible = false
	e.editing = nil
	onSaved := e.onSaved
	e.mu.Unlock()

	if onSaved != nil {
		ref := AssetRef{}
		if edited != nil {
			ref = *edited
		}
		onSaved(ref)
	}
}

// Close hides the editor and clears the reference without a callback.
func (e *EditorSession) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.visible = false
	e.editing = nil
}

// Visible reports whether the editor is currently shown.
func (e *EditorSession) Visible() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.visible
}

// Editing returns a copy of the reference being edited, nil for a fresh
// document.
func (e *EditorSession) Editing() *AssetRef {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.editing == nil {
		return nil
	}
	copied := *e.editing
	return &copied
}
