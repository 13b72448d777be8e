package model

import "fmt"

// ValidationError reports a field of a disposition that cannot be laid out.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// LayoutConfig holds the sheet settings of a disposition.
type LayoutConfig struct {
	Spacing       *int `json:"spacing,omitempty"`        // Gap kept between pieces (mm), nil for none
	MaxLength     int  `json:"max_length"`               // Length of the cutting table (mm)
	DefinedLength *int `json:"defined_length,omitempty"` // Optional length limit below MaxLength (mm)
	DefinedWidth  int  `json:"defined_width"`            // Usable fabric width (mm)
}

// DefaultLayoutConfig returns a config for a typical 1.6m x 3m cutting table.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{MaxLength: 3000, DefinedWidth: 1600}
}

// SpacingOrZero returns the configured spacing, or 0 when unset.
func (c LayoutConfig) SpacingOrZero() int {
	if c.Spacing == nil {
		return 0
	}
	return *c.Spacing
}

// EffectiveLength is the length pieces may occupy: DefinedLength when set,
// MaxLength otherwise.
func (c LayoutConfig) EffectiveLength() int {
	if c.DefinedLength != nil {
		return *c.DefinedLength
	}
	return c.MaxLength
}

// Validate checks the config before a layout is computed.
func (c LayoutConfig) Validate() error {
	if c.Spacing != nil && *c.Spacing <= 0 {
		return invalid("spacing", "must be greater than zero or absent")
	}
	if c.DefinedLength != nil && *c.DefinedLength <= 0 {
		return invalid("defined_length", "must be greater than zero or absent")
	}
	if c.MaxLength <= 0 {
		return invalid("max_length", "must be greater than zero")
	}
	if c.DefinedWidth <= 0 {
		return invalid("defined_width", "must be greater than zero")
	}
	return nil
}

// Validate checks that both dimensions are positive.
func (r Rectangle) Validate() error {
	if r.Width <= 0 {
		return invalid("width", "must be greater than zero")
	}
	if r.Length <= 0 {
		return invalid("length", "must be greater than zero")
	}
	return nil
}

// LayoutInput is an immutable snapshot of everything the layout engine needs.
type LayoutInput struct {
	Pieces        []Rectangle           `json:"pieces"`
	ExcludedZones []PositionedRectangle `json:"excluded_zones"`
	Filler        *Rectangle            `json:"filler,omitempty"`
	LayoutConfig
}

// Validate checks the config and every rectangle of the input.
func (in LayoutInput) Validate() error {
	if err := in.LayoutConfig.Validate(); err != nil {
		return err
	}
	for i, p := range in.Pieces {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("piece %d: %w", i, err)
		}
	}
	for i, z := range in.ExcludedZones {
		if err := z.Rectangle().Validate(); err != nil {
			return fmt.Errorf("excluded zone %d: %w", i, err)
		}
	}
	if in.Filler != nil {
		if err := in.Filler.Validate(); err != nil {
			return fmt.Errorf("filler: %w", err)
		}
	}
	return nil
}

// LayoutOutput is the result of laying out a disposition.
type LayoutOutput struct {
	PositionedPieces  []PositionedRectangle `json:"positioned_pieces"`
	PositionedFillers []PositionedRectangle `json:"positioned_fillers"`
	UnplacedPieces    []Rectangle           `json:"unplaced_pieces"`
	ExcludedZones     []PositionedRectangle `json:"excluded_zones"`
	LengthUsed        int                   `json:"length_used"`
	TotalArea         int                   `json:"total_area"` // DefinedWidth x LengthUsed
	UsedArea          int                   `json:"used_area"`  // Pieces plus fillers
	Usage             float64               `json:"usage"`      // Percentage of TotalArea covered
	MaxLength         int                   `json:"max_length"`
	DefinedLength     *int                  `json:"defined_length,omitempty"`
	DefinedWidth      int                   `json:"defined_width"`
}

// CutRectangles returns pieces and fillers together, the set the cutting
// lines are derived from.
func (o LayoutOutput) CutRectangles() []PositionedRectangle {
	rects := make([]PositionedRectangle, 0, len(o.PositionedPieces)+len(o.PositionedFillers))
	rects = append(rects, o.PositionedPieces...)
	rects = append(rects, o.PositionedFillers...)
	return rects
}

// UsagePercent returns used/total as a percentage, 0 when total is 0.
func UsagePercent(used, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(used) / float64(total) * 100
}
