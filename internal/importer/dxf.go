package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/FabricCut/internal/model"
)

// point is a DXF coordinate in mm.
type point struct {
	X, Y float64
}

// segment is a line between two points, used for chaining disconnected
// LINE entities into closed outlines.
type segment struct {
	start point
	end   point
}

// chainTolerance is the maximum distance between two endpoints that are
// considered connected.
const chainTolerance = 0.01

// ImportDXF imports pieces from a DXF file. Every closed LWPOLYLINE and
// CIRCLE becomes one piece sized by its bounding box. LINE entities are
// chained into outlines only when the file has no polylines, since drawings
// with polylines use lines for annotations and cuts.
func ImportDXF(path string) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]point
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToOutline(e)
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Circle:
			cx, cy, r := e.Center[0], e.Center[1], e.Radius
			outlines = append(outlines, []point{{cx - r, cy - r}, {cx + r, cy - r}, {cx + r, cy + r}, {cx - r, cy + r}})
			result.Warnings = append(result.Warnings, fmt.Sprintf("Circle of radius %.1f mm imported as its bounding square", r))

		case *entity.Line:
			segments = append(segments, segment{
				start: point{X: e.Start[0], Y: e.Start[1]},
				end:   point{X: e.End[0], Y: e.End[1]},
			})
		}
	}

	if len(outlines) == 0 {
		outlines = chainSegments(segments, chainTolerance)
	}
	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	for i, outline := range outlines {
		minP, maxP := boundingBox(outline)
		width := int(math.Round(maxP.X - minP.X))
		length := int(math.Round(maxP.Y - minP.Y))

		if width <= 0 || length <= 0 {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Skipped degenerate shape (%.2f x %.2f mm)", maxP.X-minP.X, maxP.Y-minP.Y))
			continue
		}
		if !isAxisAlignedRectangle(outline) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Shape %d is not an axis-aligned rectangle, using its %d x %d mm bounding box", i+1, width, length))
		}

		result.Pieces = append(result.Pieces, model.Rectangle{
			ID:     fmt.Sprintf("dxf-%d", i+1),
			Width:  width,
			Length: length,
		})
	}

	return result
}

// lwPolylineToOutline returns the polyline vertices. Bulges are ignored:
// only the bounding box of the shape is used.
func lwPolylineToOutline(lw *entity.LwPolyline) []point {
	outline := make([]point, 0, len(lw.Vertices))
	for _, v := range lw.Vertices {
		outline = append(outline, point{X: v[0], Y: v[1]})
	}
	return outline
}

func boundingBox(o []point) (point, point) {
	minP := point{X: math.Inf(1), Y: math.Inf(1)}
	maxP := point{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range o {
		minP.X = math.Min(minP.X, p.X)
		minP.Y = math.Min(minP.Y, p.Y)
		maxP.X = math.Max(maxP.X, p.X)
		maxP.Y = math.Max(maxP.Y, p.Y)
	}
	return minP, maxP
}

// isAxisAlignedRectangle reports whether the outline has four corners and
// only horizontal or vertical edges.
func isAxisAlignedRectangle(o []point) bool {
	if len(o) != 4 {
		return false
	}
	for i := range o {
		a, b := o[i], o[(i+1)%len(o)]
		if math.Abs(a.X-b.X) > chainTolerance && math.Abs(a.Y-b.Y) > chainTolerance {
			return false
		}
	}
	return true
}

// chainSegments connects individual segments into closed outlines, largest
// first.
func chainSegments(segs []segment, tolerance float64) [][]point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]point

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		// Open chains are not shapes.
		if len(chain) < 4 || !pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			continue
		}
		outlines = append(outlines, chain[:len(chain)-1])
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return outlineArea(outlines[i]) > outlineArea(outlines[j])
	})
	return outlines
}

func pointsClose(a, b point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}

// outlineArea computes the absolute area of a polygon with the shoelace formula.
func outlineArea(o []point) float64 {
	n := len(o)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += o[i].X*o[j].Y - o[j].X*o[i].Y
	}
	return math.Abs(area) / 2
}
