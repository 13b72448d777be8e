package gcode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/piwi3910/FabricCut/internal/cutlines"
	"github.com/piwi3910/FabricCut/internal/model"
)

// timestampLayout is used in the program header.
const timestampLayout = "2006-01-02 15:04:05 -0700"

// ErrInvalidName is returned for job names that cannot be used as a file name.
var ErrInvalidName = errors.New("invalid job name")

// WriteError reports a program file that could not be created or written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write program to %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Job is one cutting program to produce.
type Job struct {
	Name       string
	Cuts       cutlines.Result
	PullLength *int // Fabric pulled onto the table before cutting, nil for none
}

// Generator assembles cutting programs from cut lines and machine snippets.
type Generator struct {
	Snippets SnippetSource
	Now      func() time.Time
}

func New(snippets SnippetSource) *Generator {
	return &Generator{
		Snippets: snippets,
		Now:      time.Now,
	}
}

// ValidateJobName rejects names that are empty or would escape the output dir.
func ValidateJobName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// Build assembles the program text. Vertical cuts are all emitted before
// horizontal ones. Any snippet error aborts the build.
func (g *Generator) Build(job Job) (string, error) {
	var b strings.Builder

	b.WriteString(g.comment(fmt.Sprintf("%s - date: %s", job.Name, g.Now().Format(timestampLayout))))
	b.WriteString("\n")

	if err := g.writeSnippetBlock(&b, "start program", model.SnippetStartProgram); err != nil {
		return "", err
	}

	if job.PullLength != nil {
		if err := g.writePull(&b, *job.PullLength); err != nil {
			return "", err
		}
	}

	if err := g.writeCuts(&b, "vertical", job.Cuts.Vertical,
		model.SnippetBeforeVerticalCut, model.SnippetAfterVerticalCut); err != nil {
		return "", err
	}
	if err := g.writeCuts(&b, "horizontal", job.Cuts.Horizontal,
		model.SnippetBeforeHorizontalCut, model.SnippetAfterHorizontalCut); err != nil {
		return "", err
	}

	if err := g.writeSnippetBlock(&b, "end program", model.SnippetEndProgram); err != nil {
		return "", err
	}

	return b.String(), nil
}

// Write builds the program and writes it to <dir>/<name>.txt. The file
// must not exist yet; nothing is written when the build fails.
func (g *Generator) Write(dir string, job Job) (string, error) {
	if err := ValidateJobName(job.Name); err != nil {
		return "", err
	}

	text, err := g.Build(job)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, job.Name+".txt")
	if err := writeNewFile(path, text); err != nil {
		return "", err
	}
	return path, nil
}

// writeNewFile creates path exclusively and writes text to it. A partial
// file is removed when the write fails.
func writeNewFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Path: path, Err: err}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		os.Remove(path)
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

func (g *Generator) writeSnippetBlock(b *strings.Builder, name string, role model.SnippetRole) error {
	text, err := g.Snippets.Snippet(role)
	if err != nil {
		return err
	}

	b.WriteString(g.comment("Begin " + name))
	writeVerbatim(b, text)
	b.WriteString(g.comment("End " + name))
	b.WriteString("\n")
	return nil
}

func (g *Generator) writePull(b *strings.Builder, length int) error {
	pick, err := g.Snippets.Snippet(model.SnippetPickFiller)
	if err != nil {
		return err
	}
	drop, err := g.Snippets.Snippet(model.SnippetDropFiller)
	if err != nil {
		return err
	}

	b.WriteString(g.comment("Begin pull fabric"))
	writeVerbatim(b, pick)
	b.WriteString(fmt.Sprintf("G1 Y%d\n", length))
	writeVerbatim(b, drop)
	b.WriteString(g.comment("End pull fabric"))
	b.WriteString("\n")
	return nil
}

func (g *Generator) writeCuts(b *strings.Builder, axis string, lines []model.Line, before, after model.SnippetRole) error {
	beforeText, err := g.Snippets.Snippet(before)
	if err != nil {
		return err
	}
	afterText, err := g.Snippets.Snippet(after)
	if err != nil {
		return err
	}

	b.WriteString(g.comment("Begin all " + axis + " cuts"))
	for _, l := range lines {
		b.WriteString(g.comment("Begin " + axis + " cut"))
		b.WriteString(rapidMove(l.Start))
		writeVerbatim(b, beforeText)
		b.WriteString(cutMove(l.End))
		writeVerbatim(b, afterText)
		b.WriteString(g.comment("End " + axis + " cut"))
	}
	b.WriteString(g.comment("End all " + axis + " cuts"))
	b.WriteString("\n")
	return nil
}

// comment formats a parenthesised comment line.
func (g *Generator) comment(text string) string {
	return "( " + text + " )\n"
}

func rapidMove(v model.Vertex) string {
	return fmt.Sprintf("G0 X%d Y%d\n", v.X, v.Y)
}

func cutMove(v model.Vertex) string {
	return fmt.Sprintf("G1 X%d Y%d\n", v.X, v.Y)
}

// writeVerbatim inlines snippet text, ending it with a newline if needed.
func writeVerbatim(b *strings.Builder, text string) {
	if text == "" {
		return
	}
	b.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}
}
