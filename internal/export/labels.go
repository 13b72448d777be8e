package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/FabricCut/internal/model"
)

// LabelInfo holds the data encoded into each piece label's QR code.
type LabelInfo struct {
	ID     string          `json:"id"`
	Kind   model.PieceKind `json:"kind"`
	Width  int             `json:"width_mm"`
	Length int             `json:"length_mm"`
	X      int             `json:"x_mm"`
	Y      int             `json:"y_mm"`
	Index  int             `json:"index"` // 1-based position in cutting order
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows per page).
const (
	labelMarginTop  = 12.7 // mm
	labelMarginLeft = 4.8  // mm
	labelWidth      = 66.7 // mm per label
	labelHeight     = 25.4 // mm per label
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0 // mm
	labelPadding    = 2.0  // mm
)

// CollectLabelInfos lists a label for every positioned piece, followed by
// one for every filler copy when withFillers is set.
func CollectLabelInfos(out model.LayoutOutput, withFillers bool) []LabelInfo {
	var labels []LabelInfo
	add := func(kind model.PieceKind, r model.PositionedRectangle) {
		labels = append(labels, LabelInfo{
			ID:     r.ID,
			Kind:   kind,
			Width:  r.Width,
			Length: r.Length,
			X:      r.TopLeft.X,
			Y:      r.TopLeft.Y,
			Index:  len(labels) + 1,
		})
	}
	for _, p := range out.PositionedPieces {
		add(model.KindPiece, p)
	}
	if withFillers {
		for _, f := range out.PositionedFillers {
			add(model.KindFiller, f)
		}
	}
	return labels
}

// ExportLabels generates a PDF of QR-coded labels laid out on Avery 5160
// sheets (3 columns x 10 rows on US Letter).
func ExportLabels(path string, out model.LayoutOutput, withFillers bool) error {
	labels := CollectLabelInfos(out, withFillers)
	if len(labels) == 0 {
		return ErrEmptyLayout
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for %q: %w", label.ID, err)
		}
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write labels %s: %w", path, err)
	}
	return nil
}

func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}
	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	// Image names must be unique per document.
	imgName := fmt.Sprintf("qr_%d_%s", info.Index, info.ID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)
	pdf.CellFormat(textW, 4.5, fmt.Sprintf("#%d %s", info.Index, info.ID), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	pdf.CellFormat(textW, 3.5, fmt.Sprintf("%d x %d mm", info.Width, info.Length), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	pdf.CellFormat(textW, 3, fmt.Sprintf("%s @ (%d, %d)", info.Kind, info.X, info.Y), "", 1, "L", false, 0, "")

	pdf.SetTextColor(0, 0, 0)
	return nil
}
