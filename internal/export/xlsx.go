package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FabricCut/internal/cutlines"
	"github.com/piwi3910/FabricCut/internal/model"
)

// Sheet names of the cut list workbook.
const (
	SheetPieces  = "Pieces"
	SheetCuts    = "Cuts"
	SheetSummary = "Summary"
)

// ExportCutList writes a workbook with the positioned rectangles, the cuts
// in machine order and the usage statistics.
func ExportCutList(path string, out model.LayoutOutput, cuts cutlines.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetPieces); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", SheetPieces, err)
	}
	for _, name := range []string{SheetCuts, SheetSummary} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	rows := [][]interface{}{{"ID", "Kind", "X", "Y", "Width", "Length", "Area"}}
	addRect := func(kind model.PieceKind, r model.PositionedRectangle) {
		rows = append(rows, []interface{}{r.ID, string(kind), r.TopLeft.X, r.TopLeft.Y, r.Width, r.Length, r.Area()})
	}
	for _, p := range out.PositionedPieces {
		addRect(model.KindPiece, p)
	}
	for _, p := range out.PositionedFillers {
		addRect(model.KindFiller, p)
	}
	for _, z := range out.ExcludedZones {
		addRect(model.KindExcludedZone, z)
	}
	if err := writeRows(f, SheetPieces, rows); err != nil {
		return err
	}

	rows = [][]interface{}{{"#", "Axis", "Start X", "Start Y", "End X", "End Y", "Length"}}
	for i, l := range cuts.All() {
		axis := "horizontal"
		if l.IsVertical() {
			axis = "vertical"
		}
		rows = append(rows, []interface{}{i + 1, axis, l.Start.X, l.Start.Y, l.End.X, l.End.Y, l.Length()})
	}
	if err := writeRows(f, SheetCuts, rows); err != nil {
		return err
	}

	rows = [][]interface{}{
		{"Fabric width (mm)", out.DefinedWidth},
		{"Maximum length (mm)", out.MaxLength},
		{"Length used (mm)", out.LengthUsed},
		{"Total area (mm2)", out.TotalArea},
		{"Used area (mm2)", out.UsedArea},
		{"Usage (%)", out.Usage},
		{"Pieces placed", len(out.PositionedPieces)},
		{"Fillers placed", len(out.PositionedFillers)},
		{"Unplaced pieces", len(out.UnplacedPieces)},
		{"Cuts", cuts.Count()},
		{"Total cut length (mm)", cuts.TotalLength()},
	}
	if err := writeRows(f, SheetSummary, rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook %s: %w", path, err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}
