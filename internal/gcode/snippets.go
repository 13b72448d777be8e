package gcode

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/piwi3910/FabricCut/internal/model"
)

// SnippetSource supplies the machine specific text inlined into a program.
type SnippetSource interface {
	Snippet(role model.SnippetRole) (string, error)
}

// SnippetError reports a snippet that could not be opened or read.
type SnippetError struct {
	Role model.SnippetRole
	Path string
	Op   string // "open" or "read"
	Err  error
}

func (e *SnippetError) Error() string {
	return fmt.Sprintf("failed to %s %s snippet at %s: %v", e.Op, e.Role, e.Path, e.Err)
}

func (e *SnippetError) Unwrap() error { return e.Err }

// DirSnippets reads snippets from files in a directory, named after the
// machine profile.
type DirSnippets struct {
	Dir     string
	Profile model.MachineProfile
}

// NewDirSnippets returns a source reading the profile's files. The
// profile's own snippet dir wins over dir when set.
func NewDirSnippets(dir string, profile model.MachineProfile) DirSnippets {
	if profile.SnippetDir != "" {
		dir = profile.SnippetDir
	}
	return DirSnippets{Dir: dir, Profile: profile}
}

// Path returns the file a role is read from.
func (d DirSnippets) Path(role model.SnippetRole) string {
	return filepath.Join(d.Dir, d.Profile.SnippetFile(role))
}

// Snippet reads the file for role verbatim.
func (d DirSnippets) Snippet(role model.SnippetRole) (string, error) {
	path := d.Path(role)
	f, err := os.Open(path)
	if err != nil {
		return "", &SnippetError{Role: role, Path: path, Op: "open", Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", &SnippetError{Role: role, Path: path, Op: "read", Err: err}
	}
	return string(data), nil
}

// Missing lists the roles whose files cannot be opened, for start-up checks.
func (d DirSnippets) Missing() []string {
	var missing []string
	for _, role := range model.SnippetRoles {
		if _, err := os.Stat(d.Path(role)); err != nil {
			missing = append(missing, d.Path(role))
		}
	}
	return missing
}

// StaticSnippets serves snippets from memory; roles not present are empty.
type StaticSnippets map[model.SnippetRole]string

// Snippet returns the stored text for role.
func (s StaticSnippets) Snippet(role model.SnippetRole) (string, error) {
	return s[role], nil
}
