package model

import "sort"

// Vertex is a point on the sheet in mm. X grows along the width of the
// fabric, Y grows along its length (away from the machine origin).
type Vertex struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the vertex shifted by dx, dy.
func (v Vertex) Add(dx, dy int) Vertex {
	return Vertex{X: v.X + dx, Y: v.Y + dy}
}

// Rectangle is an unpositioned piece shape.
type Rectangle struct {
	ID     string `json:"id"`
	Width  int    `json:"width"`  // mm, along X
	Length int    `json:"length"` // mm, along Y
}

// Area returns the area of the rectangle in square mm.
func (r Rectangle) Area() int {
	return r.Width * r.Length
}

// At positions the rectangle with its top-left corner on v.
func (r Rectangle) At(v Vertex) PositionedRectangle {
	return PositionedRectangle{ID: r.ID, Width: r.Width, Length: r.Length, TopLeft: v}
}

// PositionedRectangle is a rectangle anchored on the sheet by its top-left corner.
type PositionedRectangle struct {
	ID      string `json:"id"`
	Width   int    `json:"width"`
	Length  int    `json:"length"`
	TopLeft Vertex `json:"top_left"`
}

// Corners holds the four corners of a positioned rectangle.
type Corners struct {
	TopLeft     Vertex
	TopRight    Vertex
	BottomLeft  Vertex
	BottomRight Vertex
}

// Rectangle drops the position.
func (p PositionedRectangle) Rectangle() Rectangle {
	return Rectangle{ID: p.ID, Width: p.Width, Length: p.Length}
}

// Area returns the area of the rectangle in square mm.
func (p PositionedRectangle) Area() int {
	return p.Width * p.Length
}

// Corners derives the four corners from the top-left vertex and the size.
func (p PositionedRectangle) Corners() Corners {
	return Corners{
		TopLeft:     p.TopLeft,
		TopRight:    p.TopLeft.Add(p.Width, 0),
		BottomLeft:  p.TopLeft.Add(0, p.Length),
		BottomRight: p.TopLeft.Add(p.Width, p.Length),
	}
}

func (p PositionedRectangle) Left() int   { return p.TopLeft.X }
func (p PositionedRectangle) Right() int  { return p.TopLeft.X + p.Width }
func (p PositionedRectangle) Top() int    { return p.TopLeft.Y }
func (p PositionedRectangle) Bottom() int { return p.TopLeft.Y + p.Length }

// WithinBounds reports whether the rectangle lies entirely inside
// [0, maxWidth] x [0, maxLength].
func (p PositionedRectangle) WithinBounds(maxWidth, maxLength int) bool {
	c := p.Corners()
	return c.BottomRight.X <= maxWidth &&
		c.BottomRight.Y <= maxLength &&
		c.TopLeft.X >= 0 &&
		c.TopLeft.Y >= 0
}

// Conflicts reports whether other comes closer than spacing to p on both
// axes. A gap of exactly spacing is allowed.
func (p PositionedRectangle) Conflicts(other PositionedRectangle, spacing int) bool {
	return other.Top() < p.Bottom()+spacing &&
		other.Right()+spacing > p.Left() &&
		other.Bottom()+spacing > p.Top() &&
		other.Left() < p.Right()+spacing
}

// ExitVertices returns the anchors from which packing can continue once p
// is placed: right of its top-right corner and below its bottom-left
// corner, each pushed out by spacing.
func (p PositionedRectangle) ExitVertices(spacing int) []Vertex {
	c := p.Corners()
	return []Vertex{
		c.TopRight.Add(spacing, 0),
		c.BottomLeft.Add(0, spacing),
	}
}

// RectangleLess orders rectangles widest first, then longest first.
func RectangleLess(a, b Rectangle) bool {
	if a.Width != b.Width {
		return a.Width > b.Width
	}
	return a.Length > b.Length
}

// VertexLess orders vertices closest to the top edge first, then closest
// to the left edge.
func VertexLess(a, b Vertex) bool {
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.X < b.X
}

// SortRectangles sorts in place with RectangleLess, keeping input order for ties.
func SortRectangles(rects []Rectangle) {
	sort.SliceStable(rects, func(i, j int) bool {
		return RectangleLess(rects[i], rects[j])
	})
}

// SortVertices sorts in place with VertexLess.
func SortVertices(vertices []Vertex) {
	sort.SliceStable(vertices, func(i, j int) bool {
		return VertexLess(vertices[i], vertices[j])
	})
}

// TotalArea sums the areas of the given rectangles.
func TotalArea(rects ...[]PositionedRectangle) int {
	total := 0
	for _, group := range rects {
		for _, r := range group {
			total += r.Area()
		}
	}
	return total
}
