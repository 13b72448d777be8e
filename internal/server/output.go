package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/piwi3910/FabricCut/internal/engine"
	"github.com/piwi3910/FabricCut/internal/export"
	"github.com/piwi3910/FabricCut/internal/gcode"
	"github.com/piwi3910/FabricCut/internal/model"
	"github.com/piwi3910/FabricCut/internal/pipeline"
)

// run lays out a snapshot of the workspace.
func (s *Server) run() (pipeline.Result, error) {
	return pipeline.Run(s.Workspace.Snapshot(), pipeline.Options{ReferenceLine: s.Config.ReferenceLine})
}

func (s *Server) organize(c *gin.Context) {
	res, err := s.run()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, res.Layout)
}

type cuttingLinesResponse struct {
	Vertical   []model.Line `json:"vertical"`
	Horizontal []model.Line `json:"horizontal"`
	Warnings   []string     `json:"warnings"`
}

func (s *Server) cuttingLines(c *gin.Context) {
	res, err := s.run()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, cuttingLinesResponse{
		Vertical:   nonNilLines(res.Cuts.Vertical),
		Horizontal: nonNilLines(res.Cuts.Horizontal),
		Warnings:   nonNilStrings(res.Warnings()),
	})
}

type comparisonResponse struct {
	Name          string  `json:"name"`
	LengthUsed    int     `json:"length_used"`
	Usage         float64 `json:"usage"`
	WastePercent  float64 `json:"waste_percent"`
	FillerCount   int     `json:"filler_count"`
	UnplacedCount int     `json:"unplaced_count"`
}

// compare lays out what-if variations of the current disposition.
func (s *Server) compare(c *gin.Context) {
	in := s.Workspace.Snapshot()
	if err := in.Validate(); err != nil {
		s.fail(c, err)
		return
	}

	results := engine.CompareScenarios(engine.BuildDefaultScenarios(in))
	resp := make([]comparisonResponse, 0, len(results))
	for _, r := range results {
		resp = append(resp, comparisonResponse{
			Name:          r.Scenario.Name,
			LengthUsed:    r.LengthUsed,
			Usage:         r.Result.Usage,
			WastePercent:  r.WastePercent,
			FillerCount:   r.FillerCount,
			UnplacedCount: r.UnplacedCount,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// generateGCode writes the cutting program of the current disposition.
func (s *Server) generateGCode(c *gin.Context) {
	var req pipeline.ExportOptions
	if !s.bind(c, &req) {
		return
	}
	if err := gcode.ValidateJobName(req.Name); err != nil {
		s.fail(c, err)
		return
	}

	res, err := s.run()
	if err != nil {
		s.fail(c, err)
		return
	}
	path, err := pipeline.Export(s.Generator, s.Config.GCodeDir(), res, req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path, "warnings": nonNilStrings(res.Warnings())})
}

// Report formats accepted by POST /api/reports.
const (
	FormatPDF    = "pdf"
	FormatLabels = "labels"
	FormatDXF    = "dxf"
	FormatXLSX   = "xlsx"
	FormatHTML   = "html"
)

type reportRequest struct {
	FileName string `json:"file_name"`
	Format   string `json:"format" binding:"required"`
}

// exportReport renders the current layout to a new file in the report dir.
func (s *Server) exportReport(c *gin.Context) {
	var req reportRequest
	if !s.bind(c, &req) {
		return
	}
	if err := gcode.ValidateJobName(req.FileName); err != nil {
		s.fail(c, err)
		return
	}

	ext := map[string]string{
		FormatPDF:    ".pdf",
		FormatLabels: ".labels.pdf",
		FormatDXF:    ".dxf",
		FormatXLSX:   ".xlsx",
		FormatHTML:   ".html",
	}[req.Format]
	if ext == "" {
		s.fail(c, &model.ValidationError{Field: "format", Message: fmt.Sprintf("unknown format %q", req.Format)})
		return
	}

	res, err := s.run()
	if err != nil {
		s.fail(c, err)
		return
	}

	dir := s.Config.ReportDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		s.fail(c, fmt.Errorf("failed to create report directory: %w", err))
		return
	}
	path := filepath.Join(dir, req.FileName+ext)
	if _, err := os.Stat(path); err == nil {
		s.fail(c, fmt.Errorf("report %s: %w", path, os.ErrExist))
		return
	}

	switch req.Format {
	case FormatPDF:
		err = export.ExportPDF(path, res.Layout, res.Cuts)
	case FormatLabels:
		err = export.ExportLabels(path, res.Layout, true)
	case FormatDXF:
		err = export.ExportDXF(path, res.Layout, res.Cuts)
	case FormatXLSX:
		err = export.ExportCutList(path, res.Layout, res.Cuts)
	case FormatHTML:
		in := s.Workspace.Snapshot()
		err = export.ExportReport(path, res.Layout, res.Remnants, engine.CompareScenarios(engine.BuildDefaultScenarios(in)))
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}

// estimate returns a lower bound of the fabric length the current pieces
// need. Query parameters: waste (percent, default 15) and price (per metre).
func (s *Server) estimate(c *gin.Context) {
	waste, err := floatQuery(c, "waste", 15)
	if err != nil {
		s.fail(c, err)
		return
	}
	price, err := floatQuery(c, "price", 0)
	if err != nil {
		s.fail(c, err)
		return
	}

	in := s.Workspace.Snapshot()
	c.JSON(http.StatusOK, model.CalculateFabricEstimate(in.Pieces, in.DefinedWidth, in.SpacingOrZero(), waste, price))
}

func (s *Server) listProfiles(c *gin.Context) {
	c.JSON(http.StatusOK, model.AllProfiles())
}

func floatQuery(c *gin.Context, key string, def float64) (float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0, &model.ValidationError{Field: key, Message: fmt.Sprintf("must be a non-negative number, got %q", raw)}
	}
	return v, nil
}

func nonNilLines(l []model.Line) []model.Line {
	if l == nil {
		return []model.Line{}
	}
	return l
}
