package navigator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEditorSession_CreateShowsFreshDocument(t *testing.T) {
	session := NewEditorSession(nil)

	session.Create()
	require.True(t, session.Visible())
	require.Nil(t, session.Editing())
}

func TestEditorSession_EditWrapsAsset(t *testing.T) {
	session := NewEditorSession(nil)

	doc := asset("asset-1", "bericht.pdoc")
	doc.ContentRef = "doc-1"
	session.Edit(doc)

	require.True(t, session.Visible())
	editing := session.Editing()
	require.NotNil(t, editing)
	require.Equal(t, "asset-1", editing.ID)
	require.Equal(t, "doc-1", editing.ContentRef)
}

func TestEditorSession_SaveHidesClearsAndNotifies(t *testing.T) {
	var saved []AssetRef
	session := NewEditorSession(func(ref AssetRef) { saved = append(saved, ref) })

	session.Edit(asset("asset-1", "bericht.pdoc"))
	session.Save()

	require.False(t, session.Visible())
	require.Nil(t, session.Editing())
	require.Len(t, saved, 1)
	require.Equal(t, "asset-1", saved[0].ID)
}

func TestEditorSession_CloseIsSilent(t *testing.T) {
	var saved int
	session := NewEditorSession(func(AssetRef) { saved++ })

	session.Edit(asset("asset-1", "bericht.pdoc"))
	session.Close()

	require.False(t, session.Visible())
	require.Nil(t, session.Editing())
	require.Zero(t, saved)
}
