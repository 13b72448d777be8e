package server

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/piwi3910/FabricCut/internal/importer"
	"github.com/piwi3910/FabricCut/internal/model"
	"github.com/piwi3910/FabricCut/internal/project"
)

func (s *Server) getDisposition(c *gin.Context) {
	c.JSON(http.StatusOK, s.Workspace.State())
}

func (s *Server) clearDisposition(c *gin.Context) {
	s.Workspace.Clear()
	c.Status(http.StatusNoContent)
}

func (s *Server) getConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.Workspace.Config())
}

func (s *Server) setConfig(c *gin.Context) {
	var cfg model.LayoutConfig
	if !s.bind(c, &cfg) {
		return
	}
	saved, err := s.Workspace.SetConfig(cfg)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (s *Server) createPiece(c *gin.Context) {
	var req model.PieceRequest
	if !s.bind(c, &req) {
		return
	}
	id, err := s.Workspace.Add(req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

type importPiecesRequest struct {
	Path string `json:"path" binding:"required"`
}

type importPiecesResponse struct {
	IDs      []string `json:"ids"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// importPieces reads a piece list from a CSV, Excel or DXF file on the
// server host. Rows that fail are reported; the valid ones are added.
func (s *Server) importPieces(c *gin.Context) {
	var req importPiecesRequest
	if !s.bind(c, &req) {
		return
	}

	var result importer.ImportResult
	switch strings.ToLower(filepath.Ext(req.Path)) {
	case ".csv", ".txt":
		result = importer.ImportCSV(req.Path)
	case ".xlsx", ".xlsm":
		result = importer.ImportExcel(req.Path)
	case ".dxf":
		result = importer.ImportDXF(req.Path)
	default:
		s.fail(c, &model.ValidationError{Field: "path", Message: "unsupported file type " + filepath.Ext(req.Path)})
		return
	}

	ids, err := s.Workspace.AddPieces(result.Pieces)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, importPiecesResponse{
		IDs:      nonNilStrings(ids),
		Errors:   nonNilStrings(result.Errors),
		Warnings: nonNilStrings(result.Warnings),
	})
}

func (s *Server) getPiece(c *gin.Context) {
	p, err := s.Workspace.Piece(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) editPiece(c *gin.Context) {
	var req model.PieceRequest
	if !s.bind(c, &req) {
		return
	}
	p, err := s.Workspace.EditPiece(c.Param("id"), req.Width, req.Length)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deletePiece(c *gin.Context) {
	if err := s.Workspace.RemovePiece(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// getFiller returns the filler, or null when none is set.
func (s *Server) getFiller(c *gin.Context) {
	c.JSON(http.StatusOK, s.Workspace.Filler())
}

func (s *Server) deleteFiller(c *gin.Context) {
	s.Workspace.RemoveFiller()
	c.Status(http.StatusNoContent)
}

func (s *Server) getZone(c *gin.Context) {
	z, err := s.Workspace.ExcludedZone(c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, z)
}

func (s *Server) editZone(c *gin.Context) {
	var req model.PieceRequest
	if !s.bind(c, &req) {
		return
	}
	z, err := s.Workspace.EditExcludedZone(c.Param("id"), req)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, z)
}

func (s *Server) deleteZone(c *gin.Context) {
	if err := s.Workspace.RemoveExcludedZone(c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type fileNameRequest struct {
	FileName string `json:"file_name"`
}

func (s *Server) exportDisposition(c *gin.Context) {
	var req fileNameRequest
	if !s.bind(c, &req) {
		return
	}
	path, err := project.ExportDisposition(s.Config.DispositionDir(), req.FileName, s.Workspace.State())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": path})
}

type pathRequest struct {
	Path string `json:"path" binding:"required"`
}

func (s *Server) importDisposition(c *gin.Context) {
	var req pathRequest
	if !s.bind(c, &req) {
		return
	}
	d, err := project.ImportDisposition(req.Path)
	if err != nil {
		s.fail(c, err)
		return
	}
	if err := s.Workspace.Replace(d); err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Workspace.State())
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
