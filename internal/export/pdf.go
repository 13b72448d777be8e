// Package export renders finished layouts to files for the workshop:
// PDF layout sheets, QR piece labels, DXF drawings, spreadsheets and
// usage reports.
package export

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/FabricCut/internal/cutlines"
	"github.com/piwi3910/FabricCut/internal/model"
)

// ErrEmptyLayout is returned when a layout has nothing to render.
var ErrEmptyLayout = errors.New("layout has no positioned pieces")

// pieceColor represents an RGB color for a positioned piece.
type pieceColor struct {
	R, G, B int
}

var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 121, G: 85, B: 72},  // brown
}

var fillerColor = pieceColor{R: 200, G: 200, B: 200}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes a two page PDF: the layout drawing with its cut lines,
// then a summary of the usage statistics.
func ExportPDF(path string, out model.LayoutOutput, cuts cutlines.Result) error {
	if len(out.PositionedPieces) == 0 {
		return ErrEmptyLayout
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, out, cuts)

	pdf.AddPage()
	renderSummaryPage(pdf, out, cuts)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write PDF %s: %w", path, err)
	}
	return nil
}

// canvas maps layout millimetres to page millimetres.
type canvas struct {
	scale, offsetX, offsetY float64
}

func (c canvas) x(v int) float64 { return c.offsetX + float64(v)*c.scale }
func (c canvas) y(v int) float64 { return c.offsetY + float64(v)*c.scale }
func (c canvas) d(v int) float64 { return float64(v) * c.scale }

func newCanvas(width, length int) canvas {
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight

	scale := math.Min(drawWidth/float64(width), drawHeight/float64(length))
	canvasW := float64(width) * scale
	return canvas{
		scale:   scale,
		offsetX: marginLeft + (drawWidth-canvasW)/2,
		offsetY: drawAreaTop,
	}
}

// drawnLength is the length shown on the layout page: the used length,
// extended to cover excluded zones below it.
func drawnLength(out model.LayoutOutput) int {
	length := out.LengthUsed
	for _, z := range out.ExcludedZones {
		if z.Bottom() > length {
			length = z.Bottom()
		}
	}
	if length > 0 {
		return length
	}
	if out.DefinedLength != nil {
		return *out.DefinedLength
	}
	return out.MaxLength
}

func renderLayoutPage(pdf *fpdf.Fpdf, out model.LayoutOutput, cuts cutlines.Result) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Fabric layout (%d x %d mm)", out.DefinedWidth, out.LengthUsed)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Pieces: %d | Fillers: %d | Used area: %d mm2 | Total area: %d mm2 | Usage: %.1f%%",
		len(out.PositionedPieces), len(out.PositionedFillers), out.UsedArea, out.TotalArea, out.Usage)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	length := drawnLength(out)
	c := newCanvas(out.DefinedWidth, length)

	// Fabric background
	pdf.SetFillColor(245, 240, 225)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(c.x(0), c.y(0), c.d(out.DefinedWidth), c.d(length), "FD")

	for _, z := range out.ExcludedZones {
		drawExcludedZone(pdf, c, z)
	}
	for _, f := range out.PositionedFillers {
		drawRectangle(pdf, c, f, fillerColor, "")
	}
	for i, p := range out.PositionedPieces {
		drawRectangle(pdf, c, p, pieceColors[i%len(pieceColors)], p.ID)
	}

	drawCutLines(pdf, c, cuts)
	drawDimensionAnnotations(pdf, c, out.DefinedWidth, length)
	drawPiecesLegend(pdf, out.PositionedPieces, c.y(length)+5)
}

func drawRectangle(pdf *fpdf.Fpdf, c canvas, r model.PositionedRectangle, col pieceColor, label string) {
	pw, ph := c.d(r.Width), c.d(r.Length)
	px, py := c.x(r.Left()), c.y(r.Top())

	pdf.SetFillColor(col.R, col.G, col.B)
	pdf.SetDrawColor(30, 30, 30)
	pdf.SetLineWidth(0.3)
	pdf.Rect(px, py, pw, ph, "FD")

	if label == "" || pw <= 15 || ph <= 8 {
		return
	}

	pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
	pdf.SetTextColor(0, 0, 0)

	dims := fmt.Sprintf("%dx%d", r.Width, r.Length)
	labelW := pdf.GetStringWidth(label)
	dimsW := pdf.GetStringWidth(dims)

	if labelW < pw-2 {
		pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
		pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
	}
	if ph > 14 && dimsW < pw-2 {
		pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
		pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
	}
}

func drawExcludedZone(pdf *fpdf.Fpdf, c canvas, z model.PositionedRectangle) {
	zx, zy := c.x(z.Left()), c.y(z.Top())
	zw, zh := c.d(z.Width), c.d(z.Length)

	pdf.SetFillColor(255, 200, 200)
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.3)
	pdf.Rect(zx, zy, zw, zh, "FD")

	drawHatchPattern(pdf, zx, zy, zw, zh)

	if zw > 20 && zh > 8 {
		pdf.SetFont("Helvetica", "B", 6)
		pdf.SetTextColor(180, 0, 0)
		labelW := pdf.GetStringWidth("NO CUT")
		pdf.SetXY(zx+(zw-labelW)/2, zy+zh/2-2)
		pdf.CellFormat(labelW, 4, "NO CUT", "", 0, "C", false, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

// drawHatchPattern draws diagonal lines inside a rectangle.
func drawHatchPattern(pdf *fpdf.Fpdf, x, y, w, h float64) {
	pdf.SetDrawColor(200, 0, 0)
	pdf.SetLineWidth(0.15)

	spacing := 4.0
	for d := spacing; d < w+h; d += spacing {
		x1 := x + math.Max(0, d-h)
		y1 := y + math.Min(h, d)
		x2 := x + math.Min(w, d)
		y2 := y + math.Max(0, d-w)
		pdf.Line(x1, y1, x2, y2)
	}
}

// drawCutLines overlays the cuts as dashed lines, vertical cuts in blue and
// horizontal cuts in red.
func drawCutLines(pdf *fpdf.Fpdf, c canvas, cuts cutlines.Result) {
	pdf.SetLineWidth(0.4)
	pdf.SetDashPattern([]float64{1.5, 1}, 0)

	pdf.SetDrawColor(0, 70, 200)
	for _, l := range cuts.Vertical {
		pdf.Line(c.x(l.Start.X), c.y(l.Start.Y), c.x(l.End.X), c.y(l.End.Y))
	}
	pdf.SetDrawColor(200, 30, 30)
	for _, l := range cuts.Horizontal {
		pdf.Line(c.x(l.Start.X), c.y(l.Start.Y), c.x(l.End.X), c.y(l.End.Y))
	}

	pdf.SetDashPattern([]float64{}, 0)
}

func drawDimensionAnnotations(pdf *fpdf.Fpdf, c canvas, width, length int) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	canvasW, canvasH := c.d(width), c.d(length)

	widthLabel := fmt.Sprintf("%d mm", width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(c.offsetX+(canvasW-wLabelW)/2, c.offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	lengthLabel := fmt.Sprintf("%d mm", length)
	pdf.TransformBegin()
	pdf.TransformRotate(90, c.offsetX-3, c.offsetY+canvasH/2)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(c.offsetX-3-lLabelW/2, c.offsetY+canvasH/2-2)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

func drawPiecesLegend(pdf *fpdf.Fpdf, pieces []model.PositionedRectangle, startY float64) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Pieces placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range pieces {
		col := pieceColors[i%len(pieceColors)]
		label := fmt.Sprintf("%s (%dx%d)", p.ID, p.Width, p.Length)
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

func renderSummaryPage(pdf *fpdf.Fpdf, out model.LayoutOutput, cuts cutlines.Result) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18
	y = renderItems(pdf, y, "Statistics", summaryItems(out, cuts))

	if len(out.UnplacedPieces) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Pieces", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)
		for _, p := range out.UnplacedPieces {
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s: %d x %d mm", p.ID, p.Width, p.Length), "", 0, "L", false, 0, "")
			y += 5
		}
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by FabricCut", "", 0, "C", false, 0, "")
}

type summaryItem struct {
	label string
	value string
}

func summaryItems(out model.LayoutOutput, cuts cutlines.Result) []summaryItem {
	items := []summaryItem{
		{"Fabric Width", fmt.Sprintf("%d mm", out.DefinedWidth)},
		{"Maximum Length", fmt.Sprintf("%d mm", out.MaxLength)},
		{"Length Used", fmt.Sprintf("%d mm", out.LengthUsed)},
		{"Usage", fmt.Sprintf("%.1f%%", out.Usage)},
		{"Pieces Placed", fmt.Sprintf("%d", len(out.PositionedPieces))},
		{"Fillers Placed", fmt.Sprintf("%d", len(out.PositionedFillers))},
		{"Unplaced Pieces", fmt.Sprintf("%d", len(out.UnplacedPieces))},
		{"Excluded Zones", fmt.Sprintf("%d", len(out.ExcludedZones))},
		{"Cuts", fmt.Sprintf("%d vertical, %d horizontal", len(cuts.Vertical), len(cuts.Horizontal))},
		{"Total Cut Length", fmt.Sprintf("%d mm", cuts.TotalLength())},
	}
	if out.DefinedLength != nil {
		items = append(items, summaryItem{"Defined Length", fmt.Sprintf("%d mm", *out.DefinedLength)})
	}
	return items
}

func renderItems(pdf *fpdf.Fpdf, y float64, title string, items []summaryItem) float64 {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, title, "", 0, "L", false, 0, "")
	y += 9

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range items {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}
	return y
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
