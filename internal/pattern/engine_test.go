package pattern

import (
	"strings"
	"testing"

	"github.com/hailam/hexvc/internal/boardgeom"
	"github.com/hailam/hexvc/internal/hexcell"
)

// fakeBoard is a minimal colourSource for exercising the Engine without
// pulling in the stoneboard package.
type fakeBoard struct {
	colours map[hexcell.Cell]hexcell.Colour
}

func newFakeBoard() *fakeBoard { return &fakeBoard{colours: map[hexcell.Cell]hexcell.Colour{}} }

func (f *fakeBoard) ColourAt(c hexcell.Cell) hexcell.Colour {
	if col, ok := f.colours[c]; ok {
		return col
	}
	return hexcell.Empty
}

func (f *fakeBoard) set(c hexcell.Cell, colour hexcell.Colour) { f.colours[c] = colour }

func TestRingGodelReflectsNeighbourColours(t *testing.T) {
	geo := boardgeom.Get(11, 11)
	e := NewEngine(geo, nil)
	sb := newFakeBoard()

	c := hexcell.InteriorCell(11, 5, 5)
	east := geo.DirectedNeighbour(c, 0)
	sb.set(east, hexcell.Black)

	e.Recompute(sb)
	godel := e.RingGodel(c)
	if godel&3 != 0 {
		t.Errorf("direction 0 (east) should encode Black (0), got %d", godel&3)
	}
}

func TestUpdateMatchesRecomputeAfterOneMove(t *testing.T) {
	geo := boardgeom.Get(11, 11)
	e := NewEngine(geo, nil)
	sb := newFakeBoard()
	e.Recompute(sb)

	c := hexcell.InteriorCell(11, 5, 5)
	east := geo.DirectedNeighbour(c, 0)
	sb.set(east, hexcell.White)
	e.Update(sb, east)

	fresh := NewEngine(geo, nil)
	fresh.Recompute(sb)

	if e.RingGodel(c) != fresh.RingGodel(c) {
		t.Errorf("incremental Update should match a full Recompute: got %d want %d", e.RingGodel(c), fresh.RingGodel(c))
	}
}

func TestMatchAtFindsImmediateBlackPattern(t *testing.T) {
	text := "[east-black]\n" +
		"v:0,1,0,0,0;0,0,0,0,0;0,0,0,0,0;0,0,0,0,0;0,0,0,0,0;0,0,0,0,0;5\n"
	sets, err := LoadPatternReader(strings.NewReader(text))
	if err != nil {
		t.Fatalf("LoadPatternReader error: %v", err)
	}

	geo := boardgeom.Get(11, 11)
	e := NewEngine(geo, sets)
	sb := newFakeBoard()

	c := hexcell.InteriorCell(11, 5, 5)
	east := geo.DirectedNeighbour(c, 0)
	sb.set(east, hexcell.Black)
	e.Recompute(sb)

	matches := e.MatchAt(sb, c, TypeVulnerable)
	if len(matches) == 0 {
		t.Fatal("expected at least one match with Black to the east")
	}
}

func TestMatchAtColourSwapsPerspective(t *testing.T) {
	text := "[east-black]\n" +
		"v:0,1,0,0,0;0,0,0,0,0;0,0,0,0,0;0,0,0,0,0;0,0,0,0,0;0,0,0,0,0;5\n"
	sets, err := LoadPatternReader(strings.NewReader(text))
	if err != nil {
		t.Fatalf("LoadPatternReader error: %v", err)
	}

	geo := boardgeom.Get(11, 11)
	e := NewEngine(geo, sets)
	sb := newFakeBoard()

	c := hexcell.InteriorCell(11, 5, 5)
	east := geo.DirectedNeighbour(c, 0)
	sb.set(east, hexcell.White)
	e.Recompute(sb)

	// From Black's perspective the east neighbour is White, so the
	// Black-authored pattern shouldn't match.
	if matches := e.MatchAtColour(sb, c, TypeVulnerable, hexcell.Black); len(matches) != 0 {
		t.Error("pattern requiring Black to the east should not match a White stone there")
	}
	// From White's perspective, colours are swapped, so it should match.
	if matches := e.MatchAtColour(sb, c, TypeVulnerable, hexcell.White); len(matches) == 0 {
		t.Error("pattern should match for White's perspective when White is to the east")
	}
}

func TestMatchAtSkipsOccupiedCentre(t *testing.T) {
	sets, err := LoadPatternReader(strings.NewReader(onePatternText))
	if err != nil {
		t.Fatalf("LoadPatternReader error: %v", err)
	}
	geo := boardgeom.Get(11, 11)
	e := NewEngine(geo, sets)
	sb := newFakeBoard()
	c := hexcell.InteriorCell(11, 5, 5)
	sb.set(c, hexcell.Black)
	e.Recompute(sb)

	if matches := e.MatchAt(sb, c, TypeVulnerable); matches != nil {
		t.Error("MatchAt should never match a non-empty centre cell")
	}
}
