package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportCutList(t *testing.T) {
	out, cuts := buildTestLayout(t)
	path := filepath.Join(t.TempDir(), "cutlist.xlsx")

	require.NoError(t, ExportCutList(path, out, cuts))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetPieces, SheetCuts, SheetSummary}, f.GetSheetList())

	rows, err := f.GetRows(SheetPieces)
	require.NoError(t, err)
	want := 1 + len(out.PositionedPieces) + len(out.PositionedFillers) + len(out.ExcludedZones)
	assert.Len(t, rows, want)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "piece", rows[1][1])

	rows, err = f.GetRows(SheetCuts)
	require.NoError(t, err)
	assert.Len(t, rows, 1+cuts.Count())

	rows, err = f.GetRows(SheetSummary)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, "Fabric width (mm)", rows[0][0])
	assert.Equal(t, "200", rows[0][1])
}
