package export

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FabricCut/internal/model"
)

func TestCollectLabelInfos(t *testing.T) {
	out := model.LayoutOutput{
		PositionedPieces: []model.PositionedRectangle{
			{ID: "a", Width: 100, Length: 50, TopLeft: model.Vertex{X: 0, Y: 0}},
			{ID: "b", Width: 40, Length: 30, TopLeft: model.Vertex{X: 100, Y: 0}},
		},
		PositionedFillers: []model.PositionedRectangle{
			{ID: "f", Width: 10, Length: 10, TopLeft: model.Vertex{X: 140, Y: 0}},
		},
	}

	labels := CollectLabelInfos(out, false)
	require.Len(t, labels, 2)
	assert.Equal(t, LabelInfo{ID: "b", Kind: model.KindPiece, Width: 40, Length: 30, X: 100, Y: 0, Index: 2}, labels[1])

	labels = CollectLabelInfos(out, true)
	require.Len(t, labels, 3)
	assert.Equal(t, model.KindFiller, labels[2].Kind)
	assert.Equal(t, 3, labels[2].Index)
}

func TestLabelInfo_JSON(t *testing.T) {
	data, err := json.Marshal(LabelInfo{ID: "a", Kind: model.KindPiece, Width: 10, Length: 20, X: 1, Y: 2, Index: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"a","kind":"piece","width_mm":10,"length_mm":20,"x_mm":1,"y_mm":2,"index":1}`, string(data))
}

func TestExportLabels_CreatesFile(t *testing.T) {
	out, _ := buildTestLayout(t)
	path := filepath.Join(t.TempDir(), "labels.pdf")

	require.NoError(t, ExportLabels(path, out, true))
	requireNonEmptyFile(t, path)
}

func TestExportLabels_EmptyLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.pdf")
	assert.ErrorIs(t, ExportLabels(path, model.LayoutOutput{}, true), ErrEmptyLayout)
}

func TestExportLabels_ManyPages(t *testing.T) {
	var out model.LayoutOutput
	for i := 0; i < labelsPerPage+5; i++ {
		out.PositionedPieces = append(out.PositionedPieces, model.PositionedRectangle{
			ID: model.NewID(), Width: 10, Length: 10, TopLeft: model.Vertex{X: i * 10},
		})
	}
	path := filepath.Join(t.TempDir(), "many.pdf")

	require.NoError(t, ExportLabels(path, out, false))
	requireNonEmptyFile(t, path)
}
