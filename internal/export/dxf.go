package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/FabricCut/internal/cutlines"
	"github.com/piwi3910/FabricCut/internal/model"
)

// DXF layer names.
const (
	LayerPieces  = "PIECES"
	LayerFillers = "FILLERS"
	LayerZones   = "EXCLUDED_ZONES"
	LayerCuts    = "CUTS"
)

// ExportDXF writes the layout as a DXF drawing: one closed polyline per
// piece, filler and excluded zone on their own layers, and one line per
// cut. DXF grows Y upwards, so layout Y is mirrored around the fabric
// start edge.
func ExportDXF(path string, out model.LayoutOutput, cuts cutlines.Result) error {
	if len(out.PositionedPieces) == 0 {
		return ErrEmptyLayout
	}

	d := dxf.NewDrawing()
	layers := []struct {
		name  string
		color color.ColorNumber
		rects []model.PositionedRectangle
	}{
		{LayerZones, color.Red, out.ExcludedZones},
		{LayerFillers, color.Cyan, out.PositionedFillers},
		{LayerPieces, color.Green, out.PositionedPieces},
	}

	for _, layer := range layers {
		if _, err := d.AddLayer(layer.name, layer.color, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add DXF layer %s: %w", layer.name, err)
		}
		for _, r := range layer.rects {
			if err := addRectangle(d, r); err != nil {
				return fmt.Errorf("failed to draw %s on layer %s: %w", r.ID, layer.name, err)
			}
		}
	}

	if _, err := d.AddLayer(LayerCuts, color.Blue, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add DXF layer %s: %w", LayerCuts, err)
	}
	for _, l := range cuts.All() {
		if _, err := d.Line(float64(l.Start.X), -float64(l.Start.Y), 0, float64(l.End.X), -float64(l.End.Y), 0); err != nil {
			return fmt.Errorf("failed to draw cut: %w", err)
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF %s: %w", path, err)
	}
	return nil
}

func addRectangle(d *drawing.Drawing, r model.PositionedRectangle) error {
	c := r.Corners()
	_, err := d.LwPolyline(true,
		[]float64{float64(c.TopLeft.X), -float64(c.TopLeft.Y)},
		[]float64{float64(c.TopRight.X), -float64(c.TopRight.Y)},
		[]float64{float64(c.BottomRight.X), -float64(c.BottomRight.Y)},
		[]float64{float64(c.BottomLeft.X), -float64(c.BottomLeft.Y)},
	)
	return err
}
