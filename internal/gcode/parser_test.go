package gcode

import (
	"math"
	"testing"
)

func TestParseProgram_Empty(t *testing.T) {
	moves := ParseProgram("")
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for empty input, got %d", len(moves))
	}
}

func TestParseProgram_CommentsOnly(t *testing.T) {
	code := `; This is a comment
( Begin start program )
(parenthetical comment)
`
	moves := ParseProgram(code)
	if len(moves) != 0 {
		t.Errorf("expected 0 moves for comments-only input, got %d", len(moves))
	}
}

func TestParseProgram_RapidMove(t *testing.T) {
	moves := ParseProgram("G0 X10 Y20\n")
	if len(moves) != 1 {
		t.Fatalf("expected 1 move, got %d", len(moves))
	}
	m := moves[0]
	if m.Type != MoveRapid {
		t.Errorf("expected MoveRapid, got %d", m.Type)
	}
	if m.FromX != 0 || m.FromY != 0 {
		t.Errorf("expected from (0,0), got (%.1f, %.1f)", m.FromX, m.FromY)
	}
	if m.ToX != 10 || m.ToY != 20 {
		t.Errorf("expected to (10,20), got (%.1f, %.1f)", m.ToX, m.ToY)
	}
}

func TestParseProgram_PullKeepsX(t *testing.T) {
	moves := ParseProgram("G0 X30 Y0\nG1 Y250\n")
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	m := moves[1]
	if m.Type != MoveCut {
		t.Errorf("expected MoveCut, got %d", m.Type)
	}
	if m.ToX != 30 || m.ToY != 250 {
		t.Errorf("expected to (30,250), got (%.1f, %.1f)", m.ToX, m.ToY)
	}
}

func TestParseProgram_SkipsSnippetCommands(t *testing.T) {
	code := "M3\nG0 X0 Y0 ( go home )\nM8 ; coolant\nG1 X0 Y100\nG21\n"
	moves := ParseProgram(code)
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	if moves[1].ToY != 100 {
		t.Errorf("expected cut to Y100, got %.1f", moves[1].ToY)
	}
}

func TestSummarize(t *testing.T) {
	moves := ParseProgram("G0 X0 Y0\nG1 X0 Y100\nG0 X50 Y0\nG1 X50 Y100\n")
	s := Summarize(moves)

	if s.Rapids != 2 || s.Cuts != 2 {
		t.Errorf("expected 2 rapids and 2 cuts, got %d and %d", s.Rapids, s.Cuts)
	}
	if math.Abs(s.CutDistance-200) > 0.001 {
		t.Errorf("expected cut distance 200, got %.3f", s.CutDistance)
	}
	wantRapid := math.Hypot(50, 100)
	if math.Abs(s.RapidDistance-wantRapid) > 0.001 {
		t.Errorf("expected rapid distance %.3f, got %.3f", wantRapid, s.RapidDistance)
	}
}
