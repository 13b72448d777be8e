package model

import "sort"

// Remnant is a usable strip of fabric left over after a layout.
type Remnant struct {
	TopLeft Vertex `json:"top_left"`
	Width   int    `json:"width"`
	Length  int    `json:"length"`
}

// Area returns the area of the remnant in square mm.
func (r Remnant) Area() int {
	return r.Width * r.Length
}

// MinRemnantDimension is the minimum width or length (in mm) for a strip
// to be worth keeping. Narrower strips are waste.
const MinRemnantDimension = 50

// MinRemnantArea is the minimum area (in sq mm) for a strip to be worth keeping.
const MinRemnantArea = 10000 // 100mm x 100mm equivalent

// DetectRemnants finds the strip to the right of everything cut and the
// strip between the used length and the end of the usable length.
func DetectRemnants(out LayoutOutput, spacing int) []Remnant {
	effective := out.MaxLength
	if out.DefinedLength != nil {
		effective = *out.DefinedLength
	}

	rects := out.CutRectangles()
	if len(rects) == 0 {
		if !keepRemnant(out.DefinedWidth, effective) {
			return nil
		}
		return []Remnant{{Width: out.DefinedWidth, Length: effective}}
	}

	maxRight := 0
	for _, r := range rects {
		if right := r.Right() + spacing; right > maxRight {
			maxRight = right
		}
	}

	var remnants []Remnant

	if w := out.DefinedWidth - maxRight; keepRemnant(w, out.LengthUsed) {
		remnants = append(remnants, Remnant{
			TopLeft: Vertex{X: maxRight, Y: 0},
			Width:   w,
			Length:  out.LengthUsed,
		})
	}

	start := out.LengthUsed + spacing
	if l := effective - start; keepRemnant(out.DefinedWidth, l) {
		remnants = append(remnants, Remnant{
			TopLeft: Vertex{X: 0, Y: start},
			Width:   out.DefinedWidth,
			Length:  l,
		})
	}

	sort.Slice(remnants, func(i, j int) bool {
		return remnants[i].Area() > remnants[j].Area()
	})
	return remnants
}

func keepRemnant(w, l int) bool {
	return w >= MinRemnantDimension && l >= MinRemnantDimension && w*l >= MinRemnantArea
}
