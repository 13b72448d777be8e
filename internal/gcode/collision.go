package gcode

import (
	"fmt"

	"github.com/piwi3910/FabricCut/internal/cutlines"
	"github.com/piwi3910/FabricCut/internal/model"
)

// ZoneCrossing is a cut whose path enters an excluded zone.
type ZoneCrossing struct {
	Axis      string                    `json:"axis"` // "vertical" or "horizontal"
	LineIndex int                       `json:"line_index"`
	Line      model.Line                `json:"line"`
	ZoneID    string                    `json:"zone_id"`
	Zone      model.PositionedRectangle `json:"zone"`
}

// CheckZoneCrossings reports every cut that passes through the inside of
// an excluded zone. Merging collinear edges across a zone can produce such
// cuts; running along a zone's border is fine.
func CheckZoneCrossings(cuts cutlines.Result, zones []model.PositionedRectangle) []ZoneCrossing {
	if len(zones) == 0 {
		return nil
	}

	var crossings []ZoneCrossing
	check := func(axis string, lines []model.Line) {
		for i, l := range lines {
			for _, z := range zones {
				if lineEntersZone(l, z) {
					crossings = append(crossings, ZoneCrossing{
						Axis:      axis,
						LineIndex: i,
						Line:      l,
						ZoneID:    z.ID,
						Zone:      z,
					})
				}
			}
		}
	}
	check("vertical", cuts.Vertical)
	check("horizontal", cuts.Horizontal)
	return crossings
}

// lineEntersZone reports whether the line runs strictly inside the zone for
// some positive length.
func lineEntersZone(l model.Line, z model.PositionedRectangle) bool {
	if l.IsVertical() {
		x := l.Start.X
		return z.Left() < x && x < z.Right() &&
			l.Start.Y < z.Bottom() && l.End.Y > z.Top()
	}
	y := l.Start.Y
	return z.Top() < y && y < z.Bottom() &&
		l.Start.X < z.Right() && l.End.X > z.Left()
}

// FormatCrossingWarnings produces human-readable warning messages from crossing data.
func FormatCrossingWarnings(crossings []ZoneCrossing) []string {
	var warnings []string
	for _, c := range crossings {
		msg := fmt.Sprintf(
			"%s cut %d from (%d, %d) to (%d, %d) passes through excluded zone %q at (%d, %d) %dx%d",
			c.Axis, c.LineIndex+1,
			c.Line.Start.X, c.Line.Start.Y, c.Line.End.X, c.Line.End.Y,
			c.ZoneID, c.Zone.TopLeft.X, c.Zone.TopLeft.Y, c.Zone.Width, c.Zone.Length,
		)
		warnings = append(warnings, msg)
	}
	return warnings
}
