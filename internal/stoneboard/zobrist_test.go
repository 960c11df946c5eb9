package stoneboard

import (
	"testing"

	"github.com/hailam/hexvc/internal/hexcell"
)

func TestZobristKeyIsDeterministic(t *testing.T) {
	cell := hexcell.InteriorCell(11, 3, 3)
	if ZobristKey(hexcell.Black, cell) != ZobristKey(hexcell.Black, cell) {
		t.Error("ZobristKey should return the same value for the same inputs every call")
	}
}

func TestZobristKeyDiffersByColourAndCell(t *testing.T) {
	a := hexcell.InteriorCell(11, 1, 1)
	b := hexcell.InteriorCell(11, 2, 2)
	if ZobristKey(hexcell.Black, a) == ZobristKey(hexcell.White, a) {
		t.Error("Black and White keys for the same cell should differ")
	}
	if ZobristKey(hexcell.Black, a) == ZobristKey(hexcell.Black, b) {
		t.Error("keys for distinct cells should differ")
	}
}

func TestPRNGProducesVaryingOutput(t *testing.T) {
	p := newPRNG(1)
	first := p.next()
	second := p.next()
	if first == second {
		t.Error("successive xorshift outputs should not repeat immediately")
	}
}
