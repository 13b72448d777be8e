package pipeline

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/FabricCut/internal/gcode"
	"github.com/piwi3910/FabricCut/internal/model"
)

func testInput() model.LayoutInput {
	filler := model.Rectangle{ID: "fill", Width: 20, Length: 25}
	return model.LayoutInput{
		Pieces: []model.Rectangle{
			{ID: "front", Width: 40, Length: 50},
			{ID: "cuff", Width: 30, Length: 20},
			{ID: "huge", Width: 500, Length: 10},
		},
		ExcludedZones: []model.PositionedRectangle{
			{ID: "flaw", Width: 10, Length: 10, TopLeft: model.Vertex{X: 80, Y: 40}},
		},
		Filler: &filler,
		LayoutConfig: model.LayoutConfig{
			Spacing:      model.IntPtr(2),
			MaxLength:    300,
			DefinedWidth: 100,
		},
	}
}

func testGenerator() *gcode.Generator {
	snippets := gcode.StaticSnippets{}
	for _, role := range model.SnippetRoles {
		snippets[role] = "( " + string(role) + " )"
	}
	g := gcode.New(snippets)
	g.Now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return g
}

func TestRun_IsIdempotent(t *testing.T) {
	in := testInput()

	first, err := Run(in, Options{ReferenceLine: true})
	require.NoError(t, err)
	second, err := Run(in, Options{ReferenceLine: true})
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
	assert.Equal(t, testInput(), in, "the input snapshot is not modified")
}

func TestRun_ComposesStages(t *testing.T) {
	res, err := Run(testInput(), Options{ReferenceLine: true})
	require.NoError(t, err)

	assert.Len(t, res.Layout.PositionedPieces, 2)
	require.Len(t, res.Layout.UnplacedPieces, 1)
	assert.Equal(t, "huge", res.Layout.UnplacedPieces[0].ID)

	require.NotEmpty(t, res.Cuts.Horizontal)
	assert.Equal(t, model.NewLine(model.Vertex{}, model.Vertex{X: 100}), res.Cuts.Horizontal[0],
		"the reference line spans the defined width")
	assert.NotNil(t, res.Crossings)
	assert.NotNil(t, res.Remnants)
}

func TestRun_WithoutReferenceLine(t *testing.T) {
	res, err := Run(testInput(), Options{})
	require.NoError(t, err)

	for _, l := range res.Cuts.Horizontal {
		assert.False(t, l.Start == model.Vertex{} && l.End == model.Vertex{X: 100})
	}
}

func TestRun_RejectsInvalidInput(t *testing.T) {
	in := testInput()
	in.Spacing = model.IntPtr(0)

	_, err := Run(in, Options{})

	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "spacing", verr.Field)
}

func TestResult_Job(t *testing.T) {
	res, err := Run(testInput(), Options{})
	require.NoError(t, err)

	job := res.Job(ExportOptions{Name: "a"})
	assert.Nil(t, job.PullLength)

	job = res.Job(ExportOptions{Name: "a", PullFabric: true})
	require.NotNil(t, job.PullLength)
	assert.Equal(t, res.Layout.LengthUsed, *job.PullLength)
}

func TestExport_WritesProgram(t *testing.T) {
	res, err := Run(testInput(), Options{ReferenceLine: true})
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "gcode")

	path, err := Export(testGenerator(), dir, res, ExportOptions{Name: "shirt", PullFabric: true})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "shirt.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "G1 Y"+strconv.Itoa(res.Layout.LengthUsed))

	summary := gcode.Summarize(gcode.ParseProgram(text))
	assert.Equal(t, res.Cuts.Count()+1, summary.Cuts, "one cut move per line plus the pull")

	_, err = Export(testGenerator(), dir, res, ExportOptions{Name: "shirt"})
	var werr *gcode.WriteError
	require.True(t, errors.As(err, &werr))
	assert.True(t, errors.Is(err, fs.ErrExist))
}

func TestExport_RejectsEmptyName(t *testing.T) {
	res, err := Run(testInput(), Options{})
	require.NoError(t, err)

	_, err = Export(testGenerator(), t.TempDir(), res, ExportOptions{Name: "  "})
	assert.ErrorIs(t, err, gcode.ErrInvalidName)
}
