package model

import "path/filepath"

// AppConfig holds application-wide preferences and default settings.
// Relative paths are resolved against the config directory.
type AppConfig struct {
	ListenAddr     string `json:"listen_addr"`
	OutputDir      string `json:"output_dir"`      // Root of generated programs and exported dispositions
	SnippetDir     string `json:"snippet_dir"`     // Machine snippet files
	DatabasePath   string `json:"database_path"`   // SQLite catalog
	MachineProfile string `json:"machine_profile"` // Name of the machine profile to use
	ReferenceLine  bool   `json:"reference_line"`  // Cut along the material start edge first
	PullFabric     bool   `json:"pull_fabric"`     // Pull the fabric by the used length before cutting

	DefaultLayout LayoutConfig `json:"default_layout"`
	RecentExports []string     `json:"recent_exports"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching DefaultLayoutConfig().
func DefaultAppConfig() AppConfig {
	return AppConfig{
		ListenAddr:     "127.0.0.1:8420",
		OutputDir:      "generated_files",
		SnippetDir:     filepath.Join("configs", "cnc_instructions"),
		DatabasePath:   "fabriccut.db",
		MachineProfile: "Standard",
		ReferenceLine:  true,
		PullFabric:     false,
		DefaultLayout:  DefaultLayoutConfig(),
		RecentExports:  []string{},
	}
}

// GCodeDir is where cutting programs are written.
func (c AppConfig) GCodeDir() string {
	return filepath.Join(c.OutputDir, "gcode")
}

// DispositionDir is where exported dispositions are written.
func (c AppConfig) DispositionDir() string {
	return filepath.Join(c.OutputDir, "disposition")
}

// ReportDir is where PDF, DXF and chart exports are written.
func (c AppConfig) ReportDir() string {
	return filepath.Join(c.OutputDir, "reports")
}

// Resolve makes every relative path absolute under base.
func (c AppConfig) Resolve(base string) AppConfig {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(base, p)
	}
	c.OutputDir = abs(c.OutputDir)
	c.SnippetDir = abs(c.SnippetDir)
	c.DatabasePath = abs(c.DatabasePath)
	return c
}

// ApplyToLayout copies the default layout settings into a disposition config.
// This is used when a new disposition is started so it inherits the saved defaults.
func (c AppConfig) ApplyToLayout(l *LayoutConfig) {
	*l = c.DefaultLayout.Clone()
}
