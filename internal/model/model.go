package model

import (
	"fmt"

	"github.com/google/uuid"
)

// PieceKind tags the three shapes a disposition is edited with.
type PieceKind string

const (
	KindPiece        PieceKind = "piece"         // Cut once, placed by the layout engine
	KindFiller       PieceKind = "filler"        // Repeated into leftover space, at most one
	KindExcludedZone PieceKind = "excluded_zone" // Fixed area nothing may overlap
)

func (k PieceKind) String() string {
	switch k {
	case KindPiece:
		return "Piece"
	case KindFiller:
		return "Filler"
	case KindExcludedZone:
		return "Excluded zone"
	default:
		return "Unknown"
	}
}

// PieceRequest is the wire form used to add or edit a shape. TopLeft is
// only read for excluded zones.
type PieceRequest struct {
	Kind    PieceKind `json:"kind"`
	Width   int       `json:"width"`
	Length  int       `json:"length"`
	TopLeft *Vertex   `json:"top_left,omitempty"`
}

// Validate checks the kind, the dimensions and, for zones, the position.
func (r PieceRequest) Validate() error {
	switch r.Kind {
	case KindPiece, KindFiller:
	case KindExcludedZone:
		if r.TopLeft == nil {
			return invalid("top_left", "is required for an excluded zone")
		}
		if r.TopLeft.X < 0 || r.TopLeft.Y < 0 {
			return invalid("top_left", "must not be negative")
		}
	default:
		return invalid("kind", fmt.Sprintf("unknown kind %q", r.Kind))
	}
	return Rectangle{Width: r.Width, Length: r.Length}.Validate()
}

// NewID returns a short random identifier.
func NewID() string {
	return uuid.New().String()[:8]
}

// NewRectangle returns a rectangle with a fresh ID.
func NewRectangle(width, length int) Rectangle {
	return Rectangle{ID: NewID(), Width: width, Length: length}
}

// NewExcludedZone returns a positioned rectangle with a fresh ID.
func NewExcludedZone(width, length int, at Vertex) PositionedRectangle {
	return NewRectangle(width, length).At(at)
}

// Disposition is the editable state a layout is computed from.
type Disposition struct {
	Pieces        []Rectangle           `json:"pieces"`
	ExcludedZones []PositionedRectangle `json:"excluded_zones"`
	Filler        *Rectangle            `json:"filler,omitempty"`
	Config        LayoutConfig          `json:"config"`
}

// NewDisposition returns an empty disposition with the default config.
func NewDisposition() Disposition {
	return Disposition{
		Pieces:        []Rectangle{},
		ExcludedZones: []PositionedRectangle{},
		Config:        DefaultLayoutConfig(),
	}
}

// Clone returns a deep copy that shares no memory with d.
func (d Disposition) Clone() Disposition {
	c := Disposition{
		Pieces:        append([]Rectangle{}, d.Pieces...),
		ExcludedZones: append([]PositionedRectangle{}, d.ExcludedZones...),
		Config:        d.Config.Clone(),
	}
	if d.Filler != nil {
		f := *d.Filler
		c.Filler = &f
	}
	return c
}

// Input snapshots the disposition for the layout engine.
func (d Disposition) Input() LayoutInput {
	c := d.Clone()
	return LayoutInput{
		Pieces:        c.Pieces,
		ExcludedZones: c.ExcludedZones,
		Filler:        c.Filler,
		LayoutConfig:  c.Config,
	}
}

// Clone copies the optional fields so the result can be mutated freely.
func (c LayoutConfig) Clone() LayoutConfig {
	out := c
	if c.Spacing != nil {
		s := *c.Spacing
		out.Spacing = &s
	}
	if c.DefinedLength != nil {
		l := *c.DefinedLength
		out.DefinedLength = &l
	}
	return out
}

// IntPtr is a helper for the optional config fields.
func IntPtr(v int) *int {
	return &v
}
