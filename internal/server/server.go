// Package server exposes the workspace, the layout pipeline and the
// catalog over a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/piwi3910/FabricCut/internal/catalog"
	"github.com/piwi3910/FabricCut/internal/gcode"
	"github.com/piwi3910/FabricCut/internal/model"
	"github.com/piwi3910/FabricCut/internal/project"
)

// statusError is the status code carried by every error body.
const statusError = 1

// AppError is the JSON body of every failed request.
type AppError struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// Server serves one workspace.
type Server struct {
	Config    model.AppConfig
	Workspace *project.Workspace
	Catalog   *catalog.Store
	Generator *gcode.Generator
	Now       func() time.Time
}

// New returns a server for the given collaborators.
func New(cfg model.AppConfig, ws *project.Workspace, store *catalog.Store, gen *gcode.Generator) *Server {
	return &Server{
		Config:    cfg,
		Workspace: ws,
		Catalog:   store,
		Generator: gen,
		Now:       time.Now,
	}
}

// Router builds the gin engine with every route registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(requestLogger(), gin.Recovery())

	api := r.Group("/api")

	d := api.Group("/disposition")
	{
		d.GET("", s.getDisposition)
		d.DELETE("", s.clearDisposition)
		d.GET("/config", s.getConfig)
		d.PUT("/config", s.setConfig)

		d.POST("/pieces", s.createPiece)
		d.POST("/pieces/import", s.importPieces)
		d.GET("/pieces/:id", s.getPiece)
		d.PUT("/pieces/:id", s.editPiece)
		d.DELETE("/pieces/:id", s.deletePiece)

		d.GET("/filler", s.getFiller)
		d.DELETE("/filler", s.deleteFiller)

		d.GET("/zones/:id", s.getZone)
		d.PUT("/zones/:id", s.editZone)
		d.DELETE("/zones/:id", s.deleteZone)

		d.POST("/organize", s.organize)
		d.POST("/cutting-lines", s.cuttingLines)
		d.POST("/compare", s.compare)

		d.POST("/export", s.exportDisposition)
		d.POST("/import", s.importDisposition)
	}

	api.POST("/gcode", s.generateGCode)
	api.POST("/reports", s.exportReport)
	api.GET("/estimate", s.estimate)
	api.GET("/profiles", s.listProfiles)

	f := api.Group("/fabrics")
	{
		f.GET("", s.listFabrics)
		f.POST("", s.createFabric)
		f.GET("/:id", s.getFabric)
		f.PUT("/:id", s.updateFabric)
		f.DELETE("/:id", s.deleteFabric)
		f.POST("/:id/apply", s.applyFabric)
	}

	t := api.Group("/cutting-tables")
	{
		t.GET("", s.listCuttingTables)
		t.POST("", s.createCuttingTable)
		t.GET("/:id", s.getCuttingTable)
		t.PUT("/:id", s.updateCuttingTable)
		t.DELETE("/:id", s.deleteCuttingTable)
		t.POST("/:id/apply", s.applyCuttingTable)
	}

	return r
}

// Run serves on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Config.ListenAddr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		klog.Infof("listening on %s", s.Config.ListenAddr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		klog.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		klog.V(1).Infof("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// fail writes err as an AppError with the HTTP status matching its kind.
func (s *Server) fail(c *gin.Context, err error) {
	code := http.StatusInternalServerError

	var verr *model.ValidationError
	var serr *gcode.SnippetError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, gcode.ErrInvalidName),
		errors.Is(err, project.ErrInvalidFileName),
		errors.Is(err, errBadRequest):
		code = http.StatusBadRequest
	case errors.As(err, &serr):
		code = http.StatusFailedDependency
	case errors.Is(err, project.ErrNotFound), errors.Is(err, catalog.ErrNotFound), errors.Is(err, fs.ErrNotExist):
		code = http.StatusNotFound
	case errors.Is(err, fs.ErrExist):
		code = http.StatusConflict
	}

	if code == http.StatusInternalServerError {
		klog.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.AbortWithStatusJSON(code, AppError{
		Status:    statusError,
		Message:   err.Error(),
		Timestamp: s.Now().UnixMilli(),
	})
}

// errBadRequest marks malformed request bodies and parameters.
var errBadRequest = errors.New("bad request")

// bind decodes the JSON body into v, reporting failures as bad requests.
func (s *Server) bind(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		s.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return false
	}
	return true
}
