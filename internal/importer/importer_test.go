package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "Label,Width,Length,Qty\nShirt,600,300,2\nSkirt,400,800,1\n", ','},
		{"semicolon", "Label;Width;Length;Qty\nShirt;600;300;2\nSkirt;400;800;1\n", ';'},
		{"tab", "Label\tWidth\tLength\tQty\nShirt\t600\t300\t2\nSkirt\t400\t800\t1\n", '\t'},
		{"pipe", "Label|Width|Length|Qty\nShirt|600|300|2\nSkirt|400|800|1\n", '|'},
		{"single column defaults to comma", "600\n300\n", ','},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCSVDelimiter([]byte(tt.data)))
		})
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Label", "Width", "Length", "Quantity"})

	assert.True(t, isHeader)
	assert.Equal(t, ColumnMapping{Label: 0, Width: 1, Length: 2, Quantity: 3}, mapping)
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"QTY", " h ", "Name", "W"})

	assert.True(t, isHeader)
	assert.Equal(t, ColumnMapping{Label: 2, Width: 3, Length: 1, Quantity: 0}, mapping)
}

func TestDetectColumns_FirstMatchWins(t *testing.T) {
	mapping, _ := DetectColumns([]string{"Width", "Length", "Height"})
	assert.Equal(t, 1, mapping.Length)
	assert.Equal(t, -1, mapping.Quantity)
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"Shirt", "600", "300", "2"})

	assert.False(t, isHeader)
	assert.Equal(t, ColumnMapping{Label: 0, Width: 1, Length: 2, Quantity: 3}, mapping)
}

// ─── CSV Import Tests ──────────────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	data := "Label,Width,Length,Quantity\nFront,600,300,2\nBack,400,800,1\n"
	result := ImportCSVFromReader(strings.NewReader(data), ',')

	assert.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 3)

	assert.Equal(t, "Front#1", result.Pieces[0].ID)
	assert.Equal(t, "Front#2", result.Pieces[1].ID)
	assert.Equal(t, 600, result.Pieces[0].Width)
	assert.Equal(t, 300, result.Pieces[0].Length)
	assert.Equal(t, "Back", result.Pieces[2].ID)
	assert.Contains(t, result.Warnings, "Detected header row, skipping")
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Front,600,300,2\nBack,400,800,1\n"), ',')

	assert.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 3)
	assert.Equal(t, 400, result.Pieces[2].Width)
}

func TestImportCSVFromReader_QuantityDefaultsToOne(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Width;Length\n100;50\n"), ';')

	assert.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 1)
	assert.NotEmpty(t, result.Pieces[0].ID, "unlabeled pieces get a generated id")
	assert.Equal(t, 100, result.Pieces[0].Width)
}

func TestImportCSVFromReader_DuplicateLabels(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Width,Length\nCuff,10,20\nCuff,30,40\n"), ',')

	require.Len(t, result.Pieces, 2)
	assert.Equal(t, "Cuff", result.Pieces[0].ID)
	assert.NotEqual(t, result.Pieces[0].ID, result.Pieces[1].ID)
	assert.True(t, strings.HasPrefix(result.Pieces[1].ID, "Cuff-"))
}

func TestImportCSVFromReader_RowErrors(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want string
	}{
		{"invalid width", "Front,abc,300,1", "Invalid width 'abc'"},
		{"missing length", "Front,100,,1", "Missing length value"},
		{"invalid quantity", "Front,100,300,two", "Invalid quantity 'two'"},
		{"negative", "Front,-100,300,1", "must be positive"},
		{"zero quantity", "Front,100,300,0", "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := "Label,Width,Length,Quantity\n" + tt.row + "\nBack,50,50,1\n"
			result := ImportCSVFromReader(strings.NewReader(data), ',')

			require.Len(t, result.Errors, 1)
			assert.Contains(t, result.Errors[0], "Line 2")
			assert.Contains(t, result.Errors[0], tt.want)
			require.Len(t, result.Pieces, 1, "valid rows are still imported")
			assert.Equal(t, "Back", result.Pieces[0].ID)
		})
	}
}

func TestImportCSVFromReader_DecimalValuesAreRounded(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Front,100.4,299.6,1\n"), ',')

	assert.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 1)
	assert.Equal(t, 100, result.Pieces[0].Width)
	assert.Equal(t, 300, result.Pieces[0].Length)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "rounded")
}

func TestImportCSVFromReader_EmptyRowsAndWhitespace(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Front, 100 , 50 ,1\n,,,\n\nBack,20,20,1\n"), ',')

	assert.Empty(t, result.Errors)
	assert.Len(t, result.Pieces, 2)
}

func TestImportCSVFromReader_MissingRequiredColumn(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Label,Width,Quantity\nFront,100,1\n"), ',')

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Length")
	assert.Empty(t, result.Pieces)
}

func TestImportCSVFromReader_UnknownHeaderIsSkipped(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("Stück,Breite,Länge\nFront,100,50\n"), ',')

	assert.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 1)
	assert.Equal(t, "Front", result.Pieces[0].ID)
}

func TestImportCSVFromReader_Empty(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	assert.NotEmpty(t, result.Errors)
}

func TestImportCSV_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pieces.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name;W;L;Qty\nFront;600;300;1\nBack;600;300;1\n"), 0644))

	result := ImportCSV(path)

	assert.Empty(t, result.Errors)
	assert.Len(t, result.Pieces, 2)
	assert.Contains(t, result.Warnings, "Detected semicolon delimiter")
}

func TestImportCSV_FileErrors(t *testing.T) {
	result := ImportCSV(filepath.Join(t.TempDir(), "missing.csv"))
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Cannot open file")

	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))
	result = ImportCSV(path)
	assert.Equal(t, []string{"File is empty"}, result.Errors)
}

// ─── Excel Import Tests ────────────────────────────────────

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pieces.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, ref, cell))
		}
	}
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Length", "Width", "Label"},
		{300, 600, "Front"},
		{800, 400, "Back"},
	})

	result := ImportExcel(path)

	assert.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 2)
	assert.Equal(t, "Front", result.Pieces[0].ID)
	assert.Equal(t, 600, result.Pieces[0].Width)
	assert.Equal(t, 300, result.Pieces[0].Length)
}

func TestImportExcel_WithoutHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Front", 600, 300, 2},
		{"Back", 400, 800, 1},
	})

	result := ImportExcel(path)
	assert.Len(t, result.Pieces, 3)
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "missing.xlsx"))
	require.NotEmpty(t, result.Errors)
	assert.Contains(t, result.Errors[0], "Cannot open Excel file")
}
