package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/piwi3910/FabricCut/internal/engine"
	"github.com/piwi3910/FabricCut/internal/model"
)

// UsageBreakdown splits the total area of a layout into what the pieces,
// the fillers and the excluded zones cover, and what is left unused.
type UsageBreakdown struct {
	Pieces   int `json:"pieces"`
	Fillers  int `json:"fillers"`
	Excluded int `json:"excluded"`
	Unused   int `json:"unused"`
}

// Breakdown computes the usage breakdown of out. Only the part of each
// excluded zone inside the used length is counted.
func Breakdown(out model.LayoutOutput) UsageBreakdown {
	b := UsageBreakdown{
		Pieces:  model.TotalArea(out.PositionedPieces),
		Fillers: model.TotalArea(out.PositionedFillers),
	}
	for _, z := range out.ExcludedZones {
		if z.Top() >= out.LengthUsed {
			continue
		}
		b.Excluded += z.Width * (min(z.Bottom(), out.LengthUsed) - z.Top())
	}
	b.Unused = max(0, out.TotalArea-b.Pieces-b.Fillers-b.Excluded)
	return b
}

// UsagePie charts the usage breakdown of a layout.
func UsagePie(out model.LayoutOutput) *charts.Pie {
	b := Breakdown(out)

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Fabric usage",
			Subtitle: fmt.Sprintf("%d x %d mm, %.1f%% used", out.DefinedWidth, out.LengthUsed, out.Usage),
		}),
	)
	pie.AddSeries("Area (mm2)", []opts.PieData{
		{Name: "Pieces", Value: b.Pieces},
		{Name: "Fillers", Value: b.Fillers},
		{Name: "Excluded zones", Value: b.Excluded},
		{Name: "Unused", Value: b.Unused},
	})
	return pie
}

// RemnantBar charts the reusable strips left by a layout.
func RemnantBar(remnants []model.Remnant) *charts.Bar {
	names := make([]string, 0, len(remnants))
	areas := make([]opts.BarData, 0, len(remnants))
	for _, r := range remnants {
		names = append(names, fmt.Sprintf("%dx%d @ (%d,%d)", r.Width, r.Length, r.TopLeft.X, r.TopLeft.Y))
		areas = append(areas, opts.BarData{Value: r.Area()})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Remnants", Subtitle: "Area in mm2"}))
	bar.SetXAxis(names).AddSeries("Area", areas)
	return bar
}

// ComparisonBar charts usage and length used per what-if scenario.
func ComparisonBar(results []engine.ComparisonResult) *charts.Bar {
	names := make([]string, 0, len(results))
	usage := make([]opts.BarData, 0, len(results))
	length := make([]opts.BarData, 0, len(results))
	for _, r := range results {
		names = append(names, r.Scenario.Name)
		usage = append(usage, opts.BarData{Value: r.Result.Usage})
		length = append(length, opts.BarData{Value: r.LengthUsed})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Scenario comparison"}))
	bar.SetXAxis(names).
		AddSeries("Usage (%)", usage).
		AddSeries("Length used (mm)", length)
	return bar
}

// RenderReport writes an HTML page with the usage pie, the remnant chart
// and, when given, the scenario comparison.
func RenderReport(w io.Writer, out model.LayoutOutput, remnants []model.Remnant, scenarios []engine.ComparisonResult) error {
	page := components.NewPage()
	page.PageTitle = "FabricCut report"
	page.AddCharts(UsagePie(out), RemnantBar(remnants))
	if len(scenarios) > 0 {
		page.AddCharts(ComparisonBar(scenarios))
	}
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

// ExportReport writes the HTML report to a new file at path.
func ExportReport(path string, out model.LayoutOutput, remnants []model.Remnant, scenarios []engine.ComparisonResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}
	if err := RenderReport(f, out, remnants, scenarios); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
