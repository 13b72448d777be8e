package cutlines

import (
	"testing"

	"github.com/piwi3910/FabricCut/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(x1, y1, x2, y2 int) model.Line {
	return model.NewLine(model.Vertex{X: x1, Y: y1}, model.Vertex{X: x2, Y: y2})
}

func rect(x, y, w, l int) model.PositionedRectangle {
	return model.PositionedRectangle{Width: w, Length: l, TopLeft: model.Vertex{X: x, Y: y}}
}

// lShapedLayout is the layout of a 200mm table with a zone in the top-left
// corner once the pieces have been placed.
func lShapedLayout() []model.PositionedRectangle {
	return []model.PositionedRectangle{
		rect(0, 0, 150, 60),
		rect(0, 60, 120, 40),
		rect(130, 60, 20, 40),
		rect(160, 0, 40, 70),
		rect(160, 80, 20, 20),
	}
}

func TestDerive_LShapedLayout(t *testing.T) {
	res := Derive(lShapedLayout(), 200)

	assert.Equal(t, []model.Line{
		line(0, 0, 0, 100),
		line(120, 60, 120, 100),
		line(130, 60, 130, 100),
		line(150, 0, 150, 100),
		line(160, 0, 160, 100),
		line(180, 80, 180, 100),
		line(200, 0, 200, 70),
	}, res.Vertical)

	assert.Equal(t, []model.Line{
		line(0, 0, 200, 0),
		line(0, 60, 150, 60),
		line(160, 70, 200, 70),
		line(160, 80, 180, 80),
		line(0, 100, 180, 100),
	}, res.Horizontal)
}

func TestDerive_ReferenceLineOptional(t *testing.T) {
	with := Derive(lShapedLayout(), 200)
	without := Derive(lShapedLayout(), 0)

	// Top edges already span the reference line here
	assert.Equal(t, with, without)

	single := Derive([]model.PositionedRectangle{rect(0, 10, 50, 20)}, 100)
	require.Len(t, single.Horizontal, 3)
	assert.Equal(t, line(0, 0, 100, 0), single.Horizontal[0])
}

func TestDerive_Empty(t *testing.T) {
	res := Derive(nil, 0)
	assert.NotNil(t, res.Vertical)
	assert.NotNil(t, res.Horizontal)
	assert.Equal(t, 0, res.Count())
}

func TestDerive_AbuttingRectanglesShareCut(t *testing.T) {
	res := Derive([]model.PositionedRectangle{rect(0, 0, 50, 50), rect(50, 0, 50, 50)}, 0)

	assert.Equal(t, []model.Line{line(0, 0, 0, 50), line(50, 0, 50, 50), line(100, 0, 100, 50)}, res.Vertical)
	assert.Equal(t, []model.Line{line(0, 0, 100, 0), line(0, 50, 100, 50)}, res.Horizontal)
	assert.Equal(t, 5, res.Count())
	assert.Equal(t, 350, res.TotalLength())
	assert.Len(t, res.All(), 5)
}

func TestMerge_BlockedByCrossingLine(t *testing.T) {
	lines := []model.Line{line(50, 0, 50, 40), line(50, 60, 50, 100)}

	blocked := Merge(lines, []model.Line{line(0, 50, 100, 50)})
	assert.Equal(t, lines, blocked)

	// A perpendicular line ending on the level does not block the merge
	touching := Merge(lines, []model.Line{line(50, 50, 100, 50)})
	assert.Equal(t, []model.Line{line(50, 0, 50, 100)}, touching)
}

func TestMerge_TriesOtherCandidates(t *testing.T) {
	lines := []model.Line{
		line(0, 10, 20, 10),
		line(40, 10, 60, 10),
		line(45, 10, 80, 10),
	}
	perpendicular := []model.Line{line(30, 0, 30, 20)}

	merged := Merge(lines, perpendicular)
	assert.Equal(t, []model.Line{line(0, 10, 20, 10), line(40, 10, 80, 10)}, merged)
}

func TestDerive_MergedCutsNeverCross(t *testing.T) {
	rects := append(lShapedLayout(), rect(10, 120, 60, 30), rect(80, 120, 60, 30), rect(0, 160, 200, 20))

	var rawV, rawH []model.Line
	for _, r := range rects {
		c := r.Corners()
		rawV = append(rawV, model.NewLine(c.TopLeft, c.BottomLeft), model.NewLine(c.TopRight, c.BottomRight))
		rawH = append(rawH, model.NewLine(c.TopLeft, c.TopRight), model.NewLine(c.BottomLeft, c.BottomRight))
	}

	res := Derive(rects, 200)
	for _, v := range res.Vertical {
		for _, h := range rawH {
			assert.False(t, v.Crosses(h), "vertical %v crosses %v", v, h)
		}
	}
	for _, h := range res.Horizontal {
		for _, v := range rawV {
			assert.False(t, h.Crosses(v), "horizontal %v crosses %v", h, v)
		}
	}
}

func TestDerive_Deterministic(t *testing.T) {
	assert.Equal(t, Derive(lShapedLayout(), 200), Derive(lShapedLayout(), 200))
}
