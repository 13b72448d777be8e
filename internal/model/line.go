package model

// Line is an axis-aligned cut segment. Start is always the top or left end.
type Line struct {
	Start Vertex `json:"start"`
	End   Vertex `json:"end"`
}

// NewLine builds a line between two vertices, swapping them if needed so
// that Start comes first along the line's axis.
func NewLine(a, b Vertex) Line {
	if a.X > b.X || a.Y > b.Y {
		a, b = b, a
	}
	return Line{Start: a, End: b}
}

// IsVertical reports whether the line runs along the Y axis.
func (l Line) IsVertical() bool {
	return l.Start.X == l.End.X && l.Start.Y != l.End.Y
}

// Level is the fixed coordinate of the line: X for a vertical line, Y for
// a horizontal one.
func (l Line) Level() int {
	if l.IsVertical() {
		return l.Start.X
	}
	return l.Start.Y
}

// Length returns the length of the segment in mm.
func (l Line) Length() int {
	if l.IsVertical() {
		return l.End.Y - l.Start.Y
	}
	return l.End.X - l.Start.X
}

// SameLevel reports whether both lines lie on the same axis and coordinate.
func (l Line) SameLevel(other Line) bool {
	return l.IsVertical() == other.IsVertical() && l.Level() == other.Level()
}

// Union spans both lines. Only meaningful when SameLevel holds.
func (l Line) Union(other Line) Line {
	if l.IsVertical() {
		return Line{
			Start: Vertex{X: l.Start.X, Y: min(l.Start.Y, other.Start.Y)},
			End:   Vertex{X: l.Start.X, Y: max(l.End.Y, other.End.Y)},
		}
	}
	return Line{
		Start: Vertex{X: min(l.Start.X, other.Start.X), Y: l.Start.Y},
		End:   Vertex{X: max(l.End.X, other.End.X), Y: l.Start.Y},
	}
}

// Crosses reports whether l and the perpendicular line perp intersect in
// both interiors. Touching at an endpoint does not count.
func (l Line) Crosses(perp Line) bool {
	if l.IsVertical() {
		return perp.Start.X < l.Start.X && l.Start.X < perp.End.X &&
			l.Start.Y < perp.Start.Y && perp.Start.Y < l.End.Y
	}
	return perp.Start.Y < l.Start.Y && l.Start.Y < perp.End.Y &&
		l.Start.X < perp.Start.X && perp.Start.X < l.End.X
}
