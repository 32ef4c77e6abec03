package navigator

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/pressdeck/pressdeck/internal/models"
	"github.com/pressdeck/pressdeck/pkg/logger"
	"github.com/pressdeck/pressdeck/pkg/metrics"
)

// Crumb is one breadcrumb segment on the path from root to the current folder.
type Crumb struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FlatFolder is one entry of the depth-annotated full-tree projection used by
// destination pickers.
type FlatFolder struct {
	Folder models.MediaFolder `json:"folder"`
	Depth  int                `json:"depth"`
}

// Navigator tracks where a client currently is in the folder hierarchy and
// fetches the contents for that location. It owns a single navigation stack;
// Breadcrumbs and NavigationStack are two views of the same sequence.
//
// Every content fetch is tagged with a generation taken under the mutex. A
// response whose generation is no longer current is discarded, so rapid
// sequential navigation cannot let an older fetch overwrite newer state.
type Navigator struct {
	store Store
	log   *zap.Logger

	mu             sync.Mutex
	rootFolders    []models.MediaFolder
	mainFolder     *models.MediaFolder
	selectedID     string
	currentFolders []models.MediaFolder
	currentAssets  []models.MediaAsset
	stack          []Crumb
	allFolders     []FlatFolder
	loading        bool
	generation     uint64
}

// NewNavigator constructs a navigator reading through store. One navigator
// serves one attached client; there is no shared singleton.
func NewNavigator(store Store) (*Navigator, error) {
	if store == nil {
		return nil, errors.New("navigator: store is required")
	}
	return &Navigator{
		store: store,
		log:   logger.WithModule("navigator"),
	}, nil
}

// Initialize installs the pre-supplied root folder snapshot. When
// initialFolderID is given it is selected immediately without a content fetch;
// otherwise the designated main folder, if any, becomes the selection. The
// full-tree preload is not triggered here; callers run LoadAllFolders when
// they want the picker projection.
func (n *Navigator) Initialize(rootFolders []models.MediaFolder, mainFolder *models.MediaFolder, initialFolderID string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.rootFolders = append([]models.MediaFolder(nil), rootFolders...)
	n.mainFolder = nil
	if mainFolder != nil {
		copied := *mainFolder
		n.mainFolder = &copied
	}

	n.currentFolders = append([]models.MediaFolder(nil), rootFolders...)
	n.currentAssets = nil
	n.stack = nil
	n.generation++

	switch {
	case initialFolderID != "":
		n.selectedID = initialFolderID
	case mainFolder != nil:
		n.selectedID = mainFolder.ID
	default:
		n.selectedID = ""
	}
}

// LoadAllFolders rebuilds the depth-annotated flat projection of the whole
// folder tree, one child query per folder. A failed subtree fetch is logged
// and skipped; siblings are still visited, so the projection may be
// incomplete after partial failure.
func (n *Navigator) LoadAllFolders(ctx context.Context) error {
	n.mu.Lock()
	roots := append([]models.MediaFolder(nil), n.rootFolders...)
	n.mu.Unlock()

	var flat []FlatFolder
	for _, root := range roots {
		n.appendSubtree(ctx, root, 0, &flat)
	}

	n.mu.Lock()
	n.allFolders = flat
	n.mu.Unlock()
	return nil
}

func (n *Navigator) appendSubtree(ctx context.Context, folder models.MediaFolder, depth int, out *[]FlatFolder) {
	*out = append(*out, FlatFolder{Folder: folder, Depth: depth})

	children, err := n.store.FoldersByParent(ctx, &folder.ID)
	if err != nil {
		metrics.FolderFetches.WithLabelValues("error").Inc()
		n.log.Warn("folder subtree fetch failed",
			zap.String("folder_id", folder.ID),
			zap.Error(err),
		)
		return
	}
	metrics.FolderFetches.WithLabelValues("ok").Inc()

	for _, child := range children {
		n.appendSubtree(ctx, child, depth+1, out)
	}
}

// HandleFolderClick navigates into folderID. The id must resolve against the
// currently displayed folders or the root snapshot; an unknown id is a no-op.
// On success exactly one crumb is pushed and the folder's content is fetched.
func (n *Navigator) HandleFolderClick(ctx context.Context, folderID string) error {
	n.mu.Lock()
	folder, ok := n.resolveFolderLocked(folderID)
	if !ok {
		n.mu.Unlock()
		n.log.Debug("folder click ignored, id not in view", zap.String("folder_id", folderID))
		return nil
	}
	n.stack = append(n.stack, Crumb{ID: folder.ID, Name: folder.Name})
	n.selectedID = folder.ID
	n.mu.Unlock()

	return n.loadContent(ctx, folder.ID)
}

// HandleGoToRoot returns to the main folder when one is designated, or to the
// top-level folder view otherwise. Either way the navigation stack is emptied.
func (n *Navigator) HandleGoToRoot(ctx context.Context) error {
	n.mu.Lock()
	if n.mainFolder == nil {
		n.resetToRootLocked()
		n.mu.Unlock()
		return nil
	}
	main := *n.mainFolder
	n.selectedID = main.ID
	n.stack = nil
	n.mu.Unlock()

	return n.loadContent(ctx, main.ID)
}

// HandleBreadcrumbClick truncates the stack to index+1 entries, selects the
// folder at that position and reloads its content. An out-of-range index is a
// no-op.
func (n *Navigator) HandleBreadcrumbClick(ctx context.Context, index int) error {
	n.mu.Lock()
	if index < 0 || index >= len(n.stack) {
		n.mu.Unlock()
		return nil
	}
	n.stack = n.stack[:index+1]
	target := n.stack[index]
	n.selectedID = target.ID
	n.mu.Unlock()

	return n.loadContent(ctx, target.ID)
}

// HandleBackClick pops one entry off the stack. If entries remain the new top
// is selected and loaded; on an emptied (or already empty) stack the view
// falls back to the root snapshot, so root is a fixed point under back
// navigation.
func (n *Navigator) HandleBackClick(ctx context.Context) error {
	n.mu.Lock()
	if len(n.stack) > 0 {
		n.stack = n.stack[:len(n.stack)-1]
	}
	if len(n.stack) == 0 {
		n.resetToRootLocked()
		n.mu.Unlock()
		return nil
	}
	top := n.stack[len(n.stack)-1]
	n.selectedID = top.ID
	n.mu.Unlock()

	return n.loadContent(ctx, top.ID)
}

// LoadFolderContent fetches the children of folderID, leaving the navigation
// stack as-is; the caller is expected to have updated the stack already. An
// empty folderID resets to the root snapshot with an empty stack.
func (n *Navigator) LoadFolderContent(ctx context.Context, folderID string) error {
	if folderID == "" {
		n.mu.Lock()
		n.resetToRootLocked()
		n.mu.Unlock()
		return nil
	}

	n.mu.Lock()
	n.selectedID = folderID
	n.mu.Unlock()

	return n.loadContent(ctx, folderID)
}

// Breadcrumbs returns the path from root to the current folder. It is derived
// from the navigation stack, never maintained separately.
func (n *Navigator) Breadcrumbs() []Crumb {
	return n.NavigationStack()
}

// NavigationStack returns a copy of the owned navigation stack.
func (n *Navigator) NavigationStack() []Crumb {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Crumb(nil), n.stack...)
}

// SelectedFolderID returns the currently selected folder id, empty at root.
func (n *Navigator) SelectedFolderID() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.selectedID
}

// CurrentFolders returns the folders displayed at the current location.
func (n *Navigator) CurrentFolders() []models.MediaFolder {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.MediaFolder(nil), n.currentFolders...)
}

// CurrentAssets returns the assets displayed at the current location.
func (n *Navigator) CurrentAssets() []models.MediaAsset {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.MediaAsset(nil), n.currentAssets...)
}

// AllFolders returns the flat full-tree projection built by LoadAllFolders.
func (n *Navigator) AllFolders() []FlatFolder {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]FlatFolder(nil), n.allFolders...)
}

// Loading reports whether a content fetch is in flight.
func (n *Navigator) Loading() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loading
}

func (n *Navigator) resolveFolderLocked(folderID string) (models.MediaFolder, bool) {
	for _, folder := range n.currentFolders {
		if folder.ID == folderID {
			return folder, true
		}
	}
	for _, folder := range n.rootFolders {
		if folder.ID == folderID {
			return folder, true
		}
	}
	return models.MediaFolder{}, false
}

// resetToRootLocked restores the root snapshot view. Bumping the generation
// invalidates any fetch still in flight.
func (n *Navigator) resetToRootLocked() {
	n.selectedID = ""
	n.stack = nil
	n.currentFolders = append([]models.MediaFolder(nil), n.rootFolders...)
	n.currentAssets = nil
	n.loading = false
	n.generation++
}

// loadContent fetches subfolders and assets for folderID and commits them if
// no newer navigation superseded this fetch. On fetch failure the displayed
// content stays stale and the error is returned.
func (n *Navigator) loadContent(ctx context.Context, folderID string) error {
	n.mu.Lock()
	n.generation++
	gen := n.generation
	n.loading = true
	n.mu.Unlock()

	folders, assets, err := n.fetchContent(ctx, folderID)

	n.mu.Lock()
	defer n.mu.Unlock()

	if gen != n.generation {
		metrics.FolderFetches.WithLabelValues("stale").Inc()
		return nil
	}
	n.loading = false

	if err != nil {
		metrics.FolderFetches.WithLabelValues("error").Inc()
		n.log.Warn("folder content fetch failed",
			zap.String("folder_id", folderID),
			zap.Error(err),
		)
		return err
	}

	metrics.FolderFetches.WithLabelValues("ok").Inc()
	n.currentFolders = folders
	n.currentAssets = assets
	return nil
}

func (n *Navigator) fetchContent(ctx context.Context, folderID string) ([]models.MediaFolder, []models.MediaAsset, error) {
	id := folderID
	folders, err := n.store.FoldersByParent(ctx, &id)
	if err != nil {
		return nil, nil, err
	}
	assets, err := n.store.AssetsByFolder(ctx, &id)
	if err != nil {
		return nil, nil, err
	}
	return folders, assets, nil
}
