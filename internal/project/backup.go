package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/piwi3910/FabricCut/internal/model"
)

// dispositionVersion is written into every exported disposition.
const dispositionVersion = "1.0.0"

// ErrInvalidFileName is returned for export names that are empty or contain
// path separators.
var ErrInvalidFileName = errors.New("invalid file name")

// DispositionFile is the top-level structure of an exported disposition.
type DispositionFile struct {
	Version     string            `json:"version"`
	CreatedAt   string            `json:"created_at"`
	Disposition model.Disposition `json:"disposition"`
}

// ExportDisposition writes the disposition to <dir>/<name>.json. The file
// must not exist yet, so two exports never overwrite each other.
func ExportDisposition(dir, name string, d model.Disposition) (string, error) {
	if strings.TrimSpace(name) == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}

	file := DispositionFile{
		Version:     dispositionVersion,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Disposition: d,
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal disposition: %w", err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, name+".json")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create disposition file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write disposition file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write disposition file: %w", err)
	}
	return path, nil
}

// ImportDisposition reads an exported disposition and validates it.
// The caller is responsible for applying it to the workspace.
func ImportDisposition(path string) (model.Disposition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Disposition{}, fmt.Errorf("failed to read disposition file: %w", err)
	}
	var file DispositionFile
	if err := json.Unmarshal(data, &file); err != nil {
		return model.Disposition{}, fmt.Errorf("failed to parse disposition file: %w", err)
	}
	if file.Version == "" {
		return model.Disposition{}, fmt.Errorf("invalid disposition file: missing version field")
	}

	d := file.Disposition
	if err := d.Input().Validate(); err != nil {
		return model.Disposition{}, fmt.Errorf("invalid disposition file: %w", err)
	}
	// Ensure lists are never nil
	if d.Pieces == nil {
		d.Pieces = []model.Rectangle{}
	}
	if d.ExcludedZones == nil {
		d.ExcludedZones = []model.PositionedRectangle{}
	}
	return d, nil
}
