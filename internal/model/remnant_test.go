package model

import "testing"

func TestDetectRemnantsEmptyLayout(t *testing.T) {
	out := LayoutOutput{MaxLength: 1000, DefinedWidth: 500}
	remnants := DetectRemnants(out, 0)
	if len(remnants) != 1 {
		t.Fatalf("expected 1 remnant for empty layout, got %d", len(remnants))
	}
	if remnants[0].Width != 500 || remnants[0].Length != 1000 {
		t.Errorf("expected full table as remnant, got %dx%d", remnants[0].Width, remnants[0].Length)
	}
}

func TestDetectRemnantsRightAndBottomStrips(t *testing.T) {
	out := LayoutOutput{
		PositionedPieces: []PositionedRectangle{
			{Width: 300, Length: 400, TopLeft: Vertex{X: 0, Y: 0}},
		},
		LengthUsed:    400,
		MaxLength:     2000,
		DefinedLength: IntPtr(1000),
		DefinedWidth:  1000,
	}
	remnants := DetectRemnants(out, 10)
	if len(remnants) != 2 {
		t.Fatalf("expected 2 remnants, got %d", len(remnants))
	}
	// Bottom: 1000 x 590 is larger than right: 690 x 400
	if remnants[0].TopLeft.Y != 410 || remnants[0].Length != 590 {
		t.Errorf("unexpected bottom strip %+v", remnants[0])
	}
	if remnants[1].TopLeft.X != 310 || remnants[1].Width != 690 {
		t.Errorf("unexpected right strip %+v", remnants[1])
	}
}

func TestDetectRemnantsSmallStripIgnored(t *testing.T) {
	out := LayoutOutput{
		PositionedFillers: []PositionedRectangle{
			{Width: 480, Length: 480, TopLeft: Vertex{X: 0, Y: 0}},
		},
		LengthUsed:   480,
		MaxLength:    500,
		DefinedWidth: 500,
	}
	if remnants := DetectRemnants(out, 0); len(remnants) != 0 {
		t.Errorf("expected 0 remnants for near-full table, got %d", len(remnants))
	}
}
