package export

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FabricCut/internal/cutlines"
	"github.com/piwi3910/FabricCut/internal/engine"
	"github.com/piwi3910/FabricCut/internal/model"
)

// buildTestLayout lays out three pieces, a filler and one excluded zone
// on a 200 mm wide fabric.
func buildTestLayout(t *testing.T) (model.LayoutOutput, cutlines.Result) {
	t.Helper()
	filler := model.Rectangle{ID: "fill", Width: 20, Length: 20}
	in := model.LayoutInput{
		Pieces: []model.Rectangle{
			{ID: "front", Width: 120, Length: 80},
			{ID: "back", Width: 60, Length: 80},
			{ID: "sleeve", Width: 50, Length: 40},
		},
		ExcludedZones: []model.PositionedRectangle{
			{ID: "flaw", Width: 30, Length: 30, TopLeft: model.Vertex{X: 150, Y: 100}},
		},
		Filler: &filler,
		LayoutConfig: model.LayoutConfig{
			MaxLength:    400,
			DefinedWidth: 200,
		},
	}
	require.NoError(t, in.Validate())

	out := engine.Organize(in)
	require.NotEmpty(t, out.PositionedPieces)
	return out, cutlines.Derive(out.CutRectangles(), out.DefinedWidth)
}

func requireNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}
