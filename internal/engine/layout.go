package engine

import (
	"k8s.io/klog/v2"

	"github.com/piwi3910/FabricCut/internal/model"
)

// MainPlacement is the result of placing the pieces of a disposition.
// Anchors is the remaining candidate pool, used to seed filler placement.
type MainPlacement struct {
	Placed     []model.PositionedRectangle
	Unplaced   []model.Rectangle
	Anchors    []model.Vertex
	LengthUsed int
}

// Organize lays out a validated input: pieces first, then as many copies
// of the filler as fit in the length the pieces used.
func Organize(in model.LayoutInput) model.LayoutOutput {
	spacing := in.SpacingOrZero()

	main := PlacePieces(in.Pieces, in.ExcludedZones, spacing, in.DefinedWidth, in.EffectiveLength())

	var fillers []model.PositionedRectangle
	if in.Filler != nil {
		fillers = PlaceFillers(*in.Filler, spacing, in.DefinedWidth, in.ExcludedZones,
			main.Anchors, main.Placed, main.LengthUsed)
	}

	total := in.DefinedWidth * main.LengthUsed
	used := model.TotalArea(main.Placed, fillers)

	out := model.LayoutOutput{
		PositionedPieces:  nonNil(main.Placed),
		PositionedFillers: nonNil(fillers),
		UnplacedPieces:    main.Unplaced,
		ExcludedZones:     nonNil(append([]model.PositionedRectangle{}, in.ExcludedZones...)),
		LengthUsed:        main.LengthUsed,
		TotalArea:         total,
		UsedArea:          used,
		Usage:             model.UsagePercent(used, total),
		MaxLength:         in.MaxLength,
		DefinedWidth:      in.DefinedWidth,
	}
	if out.UnplacedPieces == nil {
		out.UnplacedPieces = []model.Rectangle{}
	}
	if in.DefinedLength != nil {
		l := *in.DefinedLength
		out.DefinedLength = &l
	}
	return out
}

// PlacePieces places pieces greedily, largest first, each at the first
// anchor (top-most, then left-most) where it fits within
// maxWidth x maxLength, keeps spacing to earlier pieces and does not touch
// the inside of an excluded zone.
func PlacePieces(pieces []model.Rectangle, zones []model.PositionedRectangle, spacing, maxWidth, maxLength int) MainPlacement {
	anchors := []model.Vertex{{X: 0, Y: 0}}
	for _, z := range zones {
		anchors = append(anchors, zoneAnchors(z)...)
	}

	sorted := append([]model.Rectangle{}, pieces...)
	model.SortRectangles(sorted)

	var result MainPlacement
	for _, piece := range sorted {
		model.SortVertices(anchors)

		idx := -1
		var candidate model.PositionedRectangle
		for i, a := range anchors {
			candidate = piece.At(a)
			if fits(candidate, maxWidth, maxLength, spacing, result.Placed, zones) {
				idx = i
				break
			}
		}

		if idx < 0 {
			klog.V(4).Infof("piece %s (%dx%d) does not fit", piece.ID, piece.Width, piece.Length)
			result.Unplaced = append(result.Unplaced, piece)
			continue
		}

		klog.V(4).Infof("piece %s (%dx%d) placed at (%d,%d)",
			piece.ID, piece.Width, piece.Length, candidate.TopLeft.X, candidate.TopLeft.Y)
		result.Placed = append(result.Placed, candidate)
		anchors = append(anchors[:idx], anchors[idx+1:]...)
		anchors = append(anchors, candidate.ExitVertices(spacing)...)
	}

	result.Anchors = anchors
	result.LengthUsed = lengthUsed(result.Placed)
	return result
}

// PlaceFillers repeats filler at the remaining anchors until the pool is
// exhausted. Copies stay within the length already used by the pieces.
func PlaceFillers(filler model.Rectangle, spacing, maxWidth int, zones []model.PositionedRectangle,
	anchors []model.Vertex, placed []model.PositionedRectangle, lengthUsed int) []model.PositionedRectangle {

	pool := append([]model.Vertex{}, anchors...)
	var fillers []model.PositionedRectangle

	for len(pool) > 0 {
		model.SortVertices(pool)
		a := pool[0]
		pool = pool[1:]

		candidate := filler.At(a)
		if !fits(candidate, maxWidth, lengthUsed, spacing, placed, zones) {
			continue
		}
		if conflictsAny(candidate, fillers, spacing) {
			continue
		}

		klog.V(4).Infof("filler placed at (%d,%d)", a.X, a.Y)
		fillers = append(fillers, candidate)
		pool = append(pool, candidate.ExitVertices(spacing)...)
	}

	return fillers
}

// zoneAnchors returns the corners from which packing resumes around an
// excluded zone, plus its projections on both sheet edges. Zones carry no
// spacing buffer, so the corners are not pushed out.
func zoneAnchors(z model.PositionedRectangle) []model.Vertex {
	anchors := z.ExitVertices(0)
	return append(anchors,
		model.Vertex{X: z.Left(), Y: 0},
		model.Vertex{X: 0, Y: z.Top()},
	)
}

func fits(r model.PositionedRectangle, maxWidth, maxLength, spacing int,
	placed, zones []model.PositionedRectangle) bool {

	if !r.WithinBounds(maxWidth, maxLength) {
		return false
	}
	if conflictsAny(r, placed, spacing) {
		return false
	}
	return !conflictsAny(r, zones, 0)
}

func conflictsAny(r model.PositionedRectangle, others []model.PositionedRectangle, spacing int) bool {
	for _, o := range others {
		if r.Conflicts(o, spacing) {
			return true
		}
	}
	return false
}

func lengthUsed(placed []model.PositionedRectangle) int {
	used := 0
	for _, p := range placed {
		if p.Bottom() > used {
			used = p.Bottom()
		}
	}
	return used
}

func nonNil(rects []model.PositionedRectangle) []model.PositionedRectangle {
	if rects == nil {
		return []model.PositionedRectangle{}
	}
	return rects
}
