package hexcell

import "testing"

func TestInteriorCellRoundTrip(t *testing.T) {
	tests := []struct {
		width, col, row int
	}{
		{11, 0, 0},
		{11, 10, 10},
		{5, 3, 2},
	}
	for _, tc := range tests {
		c := InteriorCell(tc.width, tc.col, tc.row)
		col, row := c.Coords(tc.width)
		if col != tc.col || row != tc.row {
			t.Errorf("InteriorCell(%d,%d,%d).Coords = (%d,%d), want (%d,%d)",
				tc.width, tc.col, tc.row, col, row, tc.col, tc.row)
		}
	}
}

func TestCellClassification(t *testing.T) {
	if !Resign.IsSpecial() || !Swap.IsSpecial() {
		t.Error("Resign and Swap should be special")
	}
	if North.IsSpecial() || FirstInterior.IsSpecial() {
		t.Error("edges and interior cells should not be special")
	}
	for _, e := range []Cell{North, South, East, West} {
		if !e.IsEdge() {
			t.Errorf("%v should be an edge", e)
		}
	}
	c := InteriorCell(11, 5, 5)
	if !c.IsInterior(11, 11) {
		t.Error("expected interior cell to report IsInterior")
	}
	if North.IsInterior(11, 11) {
		t.Error("edge cell should not report IsInterior")
	}
}

func TestEdgeColour(t *testing.T) {
	if North.EdgeColour() != Black || South.EdgeColour() != Black {
		t.Error("north/south should be black edges")
	}
	if East.EdgeColour() != White || West.EdgeColour() != White {
		t.Error("east/west should be white edges")
	}
	if InteriorCell(11, 0, 0).EdgeColour() != Empty {
		t.Error("interior cell should have no edge colour")
	}
}

func TestCellStringParseRoundTrip(t *testing.T) {
	width := 11
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			c := InteriorCell(width, col, row)
			s := c.String()
			parsed, err := ParseCell(s, width)
			if err != nil {
				t.Fatalf("ParseCell(%q) error: %v", s, err)
			}
			if parsed != c {
				t.Errorf("round-trip mismatch for (%d,%d): got %v, want %v", col, row, parsed, c)
			}
		}
	}
	for _, name := range []string{"resign", "swap-pieces", "north", "south", "east", "west"} {
		c, err := ParseCell(name, width)
		if err != nil {
			t.Fatalf("ParseCell(%q) error: %v", name, err)
		}
		if c.String() != name {
			t.Errorf("ParseCell(%q).String() = %q", name, c.String())
		}
	}
}

func TestParseCellInvalid(t *testing.T) {
	if _, err := ParseCell("z99", 11); err == nil {
		t.Error("expected error for out-of-range column")
	}
	if _, err := ParseCell("a0", 11); err == nil {
		t.Error("expected error for row 0 (1-indexed text form)")
	}
	if _, err := ParseCell("", 11); err == nil {
		t.Error("expected error for empty string")
	}
}
