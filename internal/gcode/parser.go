package gcode

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// MoveType represents the type of cutter head movement.
type MoveType int

const (
	MoveRapid MoveType = iota // G0: positioning with the blade up
	MoveCut                   // G1: cutting or pulling move
)

// Move represents a single parsed movement from a program.
type Move struct {
	Type  MoveType
	FromX float64
	FromY float64
	ToX   float64
	ToY   float64
}

// Distance returns the travelled distance of the move.
func (m Move) Distance() float64 {
	return math.Hypot(m.ToX-m.FromX, m.ToY-m.FromY)
}

var coordRe = regexp.MustCompile(`([XY])([-]?\d+\.?\d*)`)

// ParseProgram parses program text into a slice of moves. It tracks the
// absolute head position and skips comments and any line that is not a
// G0/G1 command, so machine snippets pass through untouched.
func ParseProgram(code string) []Move {
	var moves []Move

	curX, curY := 0.0, 0.0

	for _, line := range strings.Split(code, "\n") {
		line = stripComments(line)
		if line == "" {
			continue
		}

		upper := strings.ToUpper(line)
		fields := strings.Fields(upper)

		var moveType MoveType
		switch fields[0] {
		case "G0", "G00":
			moveType = MoveRapid
		case "G1", "G01":
			moveType = MoveCut
		default:
			continue
		}

		newX, newY := curX, curY
		for _, m := range coordRe.FindAllStringSubmatch(upper, -1) {
			val, err := strconv.ParseFloat(m[2], 64)
			if err != nil {
				continue
			}
			switch m[1] {
			case "X":
				newX = val
			case "Y":
				newY = val
			}
		}

		moves = append(moves, Move{
			Type:  moveType,
			FromX: curX,
			FromY: curY,
			ToX:   newX,
			ToY:   newY,
		})
		curX, curY = newX, newY
	}

	return moves
}

// stripComments removes ';' comments and every parenthesised comment.
func stripComments(line string) string {
	if idx := strings.Index(line, ";"); idx >= 0 {
		line = line[:idx]
	}
	for {
		start := strings.Index(line, "(")
		if start < 0 {
			break
		}
		end := strings.Index(line[start:], ")")
		if end < 0 {
			line = line[:start]
			break
		}
		line = line[:start] + line[start+end+1:]
	}
	return strings.TrimSpace(line)
}

// Summary aggregates the moves of a program.
type Summary struct {
	Rapids        int     `json:"rapids"`
	Cuts          int     `json:"cuts"`
	RapidDistance float64 `json:"rapid_distance"` // mm
	CutDistance   float64 `json:"cut_distance"`   // mm
}

// Summarize counts moves and distances by type.
func Summarize(moves []Move) Summary {
	var s Summary
	for _, m := range moves {
		switch m.Type {
		case MoveRapid:
			s.Rapids++
			s.RapidDistance += m.Distance()
		case MoveCut:
			s.Cuts++
			s.CutDistance += m.Distance()
		}
	}
	return s
}
