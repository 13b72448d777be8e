// Package cutlines derives the straight cuts that separate the rectangles
// of a finished layout.
package cutlines

import (
	"sort"

	"github.com/piwi3910/FabricCut/internal/model"
)

// Result holds the cuts of a layout, each axis in machine order.
type Result struct {
	Vertical   []model.Line `json:"vertical"`
	Horizontal []model.Line `json:"horizontal"`
}

// Count returns the number of cuts.
func (r Result) Count() int {
	return len(r.Vertical) + len(r.Horizontal)
}

// TotalLength returns the summed length of all cuts in mm.
func (r Result) TotalLength() int {
	total := 0
	for _, l := range r.Vertical {
		total += l.Length()
	}
	for _, l := range r.Horizontal {
		total += l.Length()
	}
	return total
}

// All returns vertical cuts followed by horizontal ones.
func (r Result) All() []model.Line {
	all := make([]model.Line, 0, r.Count())
	all = append(all, r.Vertical...)
	return append(all, r.Horizontal...)
}

// Derive turns every rectangle edge into a cut and merges collinear cuts
// where no perpendicular cut separates them. When referenceWidth is
// positive a cut along the material start edge, (0,0) to
// (referenceWidth,0), is added first.
func Derive(rects []model.PositionedRectangle, referenceWidth int) Result {
	var vertical, horizontal []model.Line

	if referenceWidth > 0 {
		horizontal = append(horizontal, model.NewLine(model.Vertex{}, model.Vertex{X: referenceWidth}))
	}

	for _, r := range rects {
		c := r.Corners()
		vertical = append(vertical,
			model.NewLine(c.TopLeft, c.BottomLeft),
			model.NewLine(c.TopRight, c.BottomRight),
		)
		horizontal = append(horizontal,
			model.NewLine(c.TopLeft, c.TopRight),
			model.NewLine(c.BottomLeft, c.BottomRight),
		)
	}

	res := Result{
		Vertical:   Merge(vertical, horizontal),
		Horizontal: Merge(horizontal, vertical),
	}

	sort.SliceStable(res.Vertical, func(i, j int) bool {
		a, b := res.Vertical[i].Start, res.Vertical[j].Start
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
	sort.SliceStable(res.Horizontal, func(i, j int) bool {
		a, b := res.Horizontal[i].Start, res.Horizontal[j].Start
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.X < b.X
	})
	return res
}

// Merge folds lines into as few cuts as possible. Each line extends the
// first accepted cut on the same level whose union with it crosses none of
// the perpendicular lines; otherwise it is kept as a cut of its own.
func Merge(lines, perpendicular []model.Line) []model.Line {
	var merged []model.Line

	for _, l := range lines {
		joined := false
		for i, m := range merged {
			if !m.SameLevel(l) {
				continue
			}
			u := m.Union(l)
			if crossesAny(u, perpendicular) {
				continue
			}
			merged[i] = u
			joined = true
			break
		}
		if !joined {
			merged = append(merged, l)
		}
	}

	if merged == nil {
		return []model.Line{}
	}
	return merged
}

func crossesAny(l model.Line, perpendicular []model.Line) bool {
	for _, p := range perpendicular {
		if l.Crosses(p) {
			return true
		}
	}
	return false
}
