package server

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/piwi3910/FabricCut/internal/model"
)

func idParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id %q", errBadRequest, c.Param("id"))
	}
	return id, nil
}

func (s *Server) listFabrics(c *gin.Context) {
	fabrics, err := s.Catalog.Fabrics()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fabrics)
}

func (s *Server) createFabric(c *gin.Context) {
	var f model.Fabric
	if !s.bind(c, &f) {
		return
	}
	created, err := s.Catalog.CreateFabric(f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) getFabric(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	f, err := s.Catalog.Fabric(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (s *Server) updateFabric(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var f model.Fabric
	if !s.bind(c, &f) {
		return
	}
	f.ID = id
	updated, err := s.Catalog.UpdateFabric(f)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteFabric(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	deleted, err := s.Catalog.DeleteFabric(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// applyFabric makes the fabric width the usable width of the workspace.
func (s *Server) applyFabric(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	f, err := s.Catalog.Fabric(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	cfg := s.Workspace.Config()
	f.ApplyTo(&cfg)
	s.saveConfig(c, cfg)
}

func (s *Server) listCuttingTables(c *gin.Context) {
	tables, err := s.Catalog.CuttingTables()
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tables)
}

func (s *Server) createCuttingTable(c *gin.Context) {
	var t model.CuttingTable
	if !s.bind(c, &t) {
		return
	}
	created, err := s.Catalog.CreateCuttingTable(t)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) getCuttingTable(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	t, err := s.Catalog.CuttingTable(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (s *Server) updateCuttingTable(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var t model.CuttingTable
	if !s.bind(c, &t) {
		return
	}
	t.ID = id
	updated, err := s.Catalog.UpdateCuttingTable(t)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteCuttingTable(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	deleted, err := s.Catalog.DeleteCuttingTable(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// applyCuttingTable sets the table length, and width when narrower, on
// the workspace config.
func (s *Server) applyCuttingTable(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	t, err := s.Catalog.CuttingTable(id)
	if err != nil {
		s.fail(c, err)
		return
	}
	cfg := s.Workspace.Config()
	t.ApplyTo(&cfg)
	s.saveConfig(c, cfg)
}

func (s *Server) saveConfig(c *gin.Context, cfg model.LayoutConfig) {
	saved, err := s.Workspace.SetConfig(cfg)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}
