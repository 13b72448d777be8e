package project

import (
	"errors"
	"sync"
	"testing"

	"github.com/piwi3910/FabricCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkspaceAddKinds(t *testing.T) {
	w := NewWorkspace(model.NewDisposition())

	pieceID, err := w.Add(model.PieceRequest{Kind: model.KindPiece, Width: 100, Length: 50})
	require.NoError(t, err)
	zoneID, err := w.Add(model.PieceRequest{Kind: model.KindExcludedZone, Width: 10, Length: 10, TopLeft: &model.Vertex{X: 5, Y: 5}})
	require.NoError(t, err)
	_, err = w.Add(model.PieceRequest{Kind: model.KindFiller, Width: 20, Length: 20})
	require.NoError(t, err)
	fillerID, err := w.Add(model.PieceRequest{Kind: model.KindFiller, Width: 30, Length: 30})
	require.NoError(t, err)

	p, err := w.Piece(pieceID)
	require.NoError(t, err)
	assert.Equal(t, 100, p.Width)

	z, err := w.ExcludedZone(zoneID)
	require.NoError(t, err)
	assert.Equal(t, model.Vertex{X: 5, Y: 5}, z.TopLeft)

	f := w.Filler()
	require.NotNil(t, f)
	assert.Equal(t, fillerID, f.ID, "a new filler replaces the previous one")
	assert.Equal(t, 30, f.Width)
}

func TestWorkspaceRejectsInvalid(t *testing.T) {
	w := NewWorkspace(model.NewDisposition())

	_, err := w.Add(model.PieceRequest{Kind: model.KindPiece, Width: 0, Length: 5})
	var verr *model.ValidationError
	assert.True(t, errors.As(err, &verr))

	_, err = w.SetConfig(model.LayoutConfig{MaxLength: 100, DefinedWidth: 0})
	assert.True(t, errors.As(err, &verr))
	assert.Equal(t, model.DefaultLayoutConfig().DefinedWidth, w.Config().DefinedWidth, "invalid config must not be stored")

	_, err = w.AddPieces([]model.Rectangle{{Width: 5, Length: 5}, {Width: -1, Length: 5}})
	require.Error(t, err)
	assert.Empty(t, w.State().Pieces, "AddPieces is all or nothing")
}

func TestWorkspaceEditAndRemove(t *testing.T) {
	w := NewWorkspace(model.NewDisposition())
	id, _ := w.Add(model.PieceRequest{Kind: model.KindPiece, Width: 10, Length: 10})
	zoneID, _ := w.Add(model.PieceRequest{Kind: model.KindExcludedZone, Width: 10, Length: 10, TopLeft: &model.Vertex{}})

	edited, err := w.EditPiece(id, 40, 30)
	require.NoError(t, err)
	assert.Equal(t, id, edited.ID)

	z, err := w.EditExcludedZone(zoneID, model.PieceRequest{Width: 20, Length: 5, TopLeft: &model.Vertex{X: 3, Y: 4}})
	require.NoError(t, err)
	assert.Equal(t, 20, z.Width)

	require.NoError(t, w.RemovePiece(id))
	assert.ErrorIs(t, w.RemovePiece(id), ErrNotFound)
	_, err = w.EditPiece("missing", 1, 1)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, w.RemoveExcludedZone(zoneID))
	_, err = w.ExcludedZone(zoneID)
	assert.ErrorIs(t, err, ErrNotFound)

	w.RemoveFiller()
	assert.Nil(t, w.Filler())
}

func TestWorkspaceSnapshotIsIsolated(t *testing.T) {
	w := NewWorkspace(model.NewDisposition())
	_, _ = w.Add(model.PieceRequest{Kind: model.KindPiece, Width: 10, Length: 10})

	snap := w.Snapshot()
	snap.Pieces[0].Width = 999
	_, _ = w.Add(model.PieceRequest{Kind: model.KindPiece, Width: 20, Length: 20})

	assert.Len(t, snap.Pieces, 1)
	assert.Equal(t, 10, w.State().Pieces[0].Width)
}

func TestWorkspaceReplace(t *testing.T) {
	w := NewWorkspace(model.NewDisposition())
	require.NoError(t, w.Replace(testDisposition()))
	assert.Len(t, w.State().Pieces, 2)

	bad := testDisposition()
	bad.Config.MaxLength = 0
	require.Error(t, w.Replace(bad))
	assert.Equal(t, 3000, w.Config().MaxLength)

	w.Clear()
	assert.Empty(t, w.State().Pieces)
	assert.Nil(t, w.Filler())
	assert.Equal(t, 3000, w.Config().MaxLength)
}

func TestWorkspaceConcurrentMutations(t *testing.T) {
	w := NewWorkspace(model.NewDisposition())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = w.Add(model.PieceRequest{Kind: model.KindPiece, Width: 10, Length: 10})
			_ = w.Snapshot()
		}()
	}
	wg.Wait()

	assert.Len(t, w.State().Pieces, 50)
}
