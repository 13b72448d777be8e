package model

import (
	"path/filepath"
	"testing"
)

func TestDefaultAppConfigMatchesDefaultLayout(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultLayoutConfig()

	if cfg.DefaultLayout.MaxLength != defaults.MaxLength {
		t.Errorf("MaxLength mismatch: config=%d layout=%d", cfg.DefaultLayout.MaxLength, defaults.MaxLength)
	}
	if cfg.DefaultLayout.DefinedWidth != defaults.DefinedWidth {
		t.Errorf("DefinedWidth mismatch: config=%d layout=%d", cfg.DefaultLayout.DefinedWidth, defaults.DefinedWidth)
	}
	if cfg.MachineProfile != "Standard" {
		t.Errorf("expected default machine profile=Standard, got %s", cfg.MachineProfile)
	}
	if cfg.RecentExports == nil {
		t.Error("RecentExports should not be nil")
	}
	if err := cfg.DefaultLayout.Validate(); err != nil {
		t.Errorf("default layout should be valid: %v", err)
	}
}

func TestApplyToLayoutCopiesOptionalFields(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultLayout.Spacing = IntPtr(5)
	cfg.DefaultLayout.DefinedLength = IntPtr(1200)

	var l LayoutConfig
	cfg.ApplyToLayout(&l)

	if l.SpacingOrZero() != 5 {
		t.Errorf("expected spacing=5, got %d", l.SpacingOrZero())
	}
	*l.Spacing = 9
	if *cfg.DefaultLayout.Spacing != 5 {
		t.Error("ApplyToLayout must not share the spacing pointer")
	}
	if l.EffectiveLength() != 1200 {
		t.Errorf("expected effective length=1200, got %d", l.EffectiveLength())
	}
}

func TestResolveKeepsAbsolutePaths(t *testing.T) {
	base := t.TempDir()
	abs := filepath.Join(base, "elsewhere", "catalog.db")

	cfg := DefaultAppConfig()
	cfg.DatabasePath = abs
	cfg = cfg.Resolve(base)

	if cfg.DatabasePath != abs {
		t.Errorf("expected absolute path untouched, got %s", cfg.DatabasePath)
	}
	if cfg.OutputDir != filepath.Join(base, "generated_files") {
		t.Errorf("unexpected output dir %s", cfg.OutputDir)
	}
	if cfg.GCodeDir() != filepath.Join(base, "generated_files", "gcode") {
		t.Errorf("unexpected gcode dir %s", cfg.GCodeDir())
	}
}
