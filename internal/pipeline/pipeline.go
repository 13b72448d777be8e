// Package pipeline composes the layout engine, the cutting-line deriver
// and the program emitter into the operations the server and CLI expose.
package pipeline

import (
	"k8s.io/klog/v2"

	"github.com/piwi3910/FabricCut/internal/cutlines"
	"github.com/piwi3910/FabricCut/internal/engine"
	"github.com/piwi3910/FabricCut/internal/gcode"
	"github.com/piwi3910/FabricCut/internal/model"
)

// Options tune a pipeline run.
type Options struct {
	// ReferenceLine adds a cut along the fabric start edge, as wide as the
	// defined width.
	ReferenceLine bool
}

// Result is everything derived from one input snapshot.
type Result struct {
	Layout    model.LayoutOutput   `json:"layout"`
	Cuts      cutlines.Result      `json:"cuts"`
	Crossings []gcode.ZoneCrossing `json:"crossings"`
	Remnants  []model.Remnant      `json:"remnants"`
}

// Warnings describes the cuts that run through an excluded zone.
func (r Result) Warnings() []string {
	return gcode.FormatCrossingWarnings(r.Crossings)
}

// Run validates in, lays it out and derives its cuts. The input is not
// modified and no state is kept between runs.
func Run(in model.LayoutInput, opts Options) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	out := engine.Organize(in)

	reference := 0
	if opts.ReferenceLine {
		reference = out.DefinedWidth
	}
	cuts := cutlines.Derive(out.CutRectangles(), reference)

	res := Result{
		Layout:    out,
		Cuts:      cuts,
		Crossings: gcode.CheckZoneCrossings(cuts, out.ExcludedZones),
		Remnants:  model.DetectRemnants(out, in.SpacingOrZero()),
	}
	if res.Crossings == nil {
		res.Crossings = []gcode.ZoneCrossing{}
	}
	if res.Remnants == nil {
		res.Remnants = []model.Remnant{}
	}

	klog.V(2).Infof("layout: %d placed, %d fillers, %d unplaced, length %d, usage %.1f%%, %d cuts",
		len(out.PositionedPieces), len(out.PositionedFillers), len(out.UnplacedPieces),
		out.LengthUsed, out.Usage, cuts.Count())
	for _, w := range res.Warnings() {
		klog.Warning(w)
	}
	return res, nil
}

// ExportOptions name the program file and decide whether the fabric is
// pulled onto the table before cutting.
type ExportOptions struct {
	Name       string `json:"file_name"`
	PullFabric bool   `json:"pull_textile"`
}

// Job turns a result into an emitter job. The pull length is the length
// the layout used.
func (r Result) Job(opts ExportOptions) gcode.Job {
	job := gcode.Job{Name: opts.Name, Cuts: r.Cuts}
	if opts.PullFabric {
		job.PullLength = model.IntPtr(r.Layout.LengthUsed)
	}
	return job
}

// Export writes the cutting program for res into dir and returns its path.
func Export(gen *gcode.Generator, dir string, res Result, opts ExportOptions) (string, error) {
	path, err := gen.Write(dir, res.Job(opts))
	if err != nil {
		return "", err
	}
	klog.Infof("cutting program written to %s", path)
	return path, nil
}
