// Package importer reads piece lists from CSV, Excel and DXF files.
// CSV and Excel imports detect the delimiter and map columns by header
// names, case-insensitively.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/FabricCut/internal/model"
)

// ImportResult holds the results of an import operation. Rows that cannot
// be read are reported in Errors and skipped; the others are still imported.
type ImportResult struct {
	Pieces   []model.Rectangle
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// -1 means the column is absent.
type ColumnMapping struct {
	Label    int
	Width    int
	Length   int
	Quantity int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "id", "piece", "part", "description", "desc", "item"},
	"width":    {"width", "w", "x"},
	"length":   {"length", "len", "l", "height", "h", "y"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter among
// comma, semicolon, tab and pipe. The delimiter that produces the most
// consistent column count (above one) across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping and
// true if any known header was found. Otherwise it returns the positional
// mapping Label, Width, Length, Quantity and false.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{Label: -1, Width: -1, Length: -1, Quantity: -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				switch role {
				case "label":
					setOnce(&mapping.Label, i)
				case "width":
					setOnce(&mapping.Width, i)
				case "length":
					setOnce(&mapping.Length, i)
				case "quantity":
					setOnce(&mapping.Quantity, i)
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{Label: 0, Width: 1, Length: 2, Quantity: 3}, false
	}
	return mapping, true
}

func setOnce(idx *int, i int) {
	if *idx == -1 {
		*idx = i
	}
}

// getCell returns the trimmed cell at idx, or "" when out of range.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseMillimetres reads a dimension. Fractional values are rounded to the
// nearest millimetre, which is reported as a warning.
func parseMillimetres(s, field, rowLabel string) (int, string, string) {
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, field), ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, field, s), ""
	}
	rounded := math.Round(v)
	if rounded != v {
		return int(rounded), "", fmt.Sprintf("%s: %s %s rounded to %d mm", rowLabel, field, s, int(rounded))
	}
	return int(rounded), "", ""
}

// row is one parsed line of a piece list.
type row struct {
	label    string
	width    int
	length   int
	quantity int
}

// parseRow returns the row, an error message and a warning message.
func parseRow(cells []string, mapping ColumnMapping, rowLabel string) (row, string, string) {
	r := row{label: getCell(cells, mapping.Label), quantity: 1}
	var warnings []string

	var errMsg, warning string
	if r.width, errMsg, warning = parseMillimetres(getCell(cells, mapping.Width), "width", rowLabel); errMsg != "" {
		return row{}, errMsg, ""
	}
	if warning != "" {
		warnings = append(warnings, warning)
	}
	if r.length, errMsg, warning = parseMillimetres(getCell(cells, mapping.Length), "length", rowLabel); errMsg != "" {
		return row{}, errMsg, ""
	}
	if warning != "" {
		warnings = append(warnings, warning)
	}

	if qtyStr := getCell(cells, mapping.Quantity); qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return row{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
		r.quantity = qty
	}

	if r.width <= 0 || r.length <= 0 || r.quantity <= 0 {
		return row{}, fmt.Sprintf("%s: Width, length, and quantity must be positive", rowLabel), ""
	}
	return r, "", strings.Join(warnings, "; ")
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports pieces from a CSV file, detecting the delimiter.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, err := readCSV(bytes.NewReader(data), delimiter)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}
	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports pieces from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	records, err := readCSV(reader, delimiter)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot read CSV: %v", err)}}
	}
	return importFromRows(records, "Line", nil)
}

func readCSV(reader io.Reader, delimiter rune) ([][]string, error) {
	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1
	return csvReader.ReadAll()
}

// ImportExcel imports pieces from the first sheet of an Excel workbook.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}
	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data. Each
// row expands to Quantity rectangles. Labels become IDs, suffixed with the
// copy number when a row has several copies; unlabeled pieces get a
// generated ID.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{Warnings: initialWarnings}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		var missing []string
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][1]), 64); err != nil {
			// Unrecognised header: skip it but keep positional mapping.
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	seen := make(map[string]bool)
	for i := startRow; i < len(rows); i++ {
		if isEmptyRow(rows[i]) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		r, errMsg, warning := parseRow(rows[i], mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		for n := 1; n <= r.quantity; n++ {
			id := pieceID(r.label, n, r.quantity)
			if seen[id] {
				id = id + "-" + model.NewID()
			}
			seen[id] = true
			result.Pieces = append(result.Pieces, model.Rectangle{ID: id, Width: r.width, Length: r.length})
		}
	}

	return result
}

func pieceID(label string, n, quantity int) string {
	switch {
	case label == "":
		return model.NewID()
	case quantity == 1:
		return label
	default:
		return fmt.Sprintf("%s#%d", label, n)
	}
}
