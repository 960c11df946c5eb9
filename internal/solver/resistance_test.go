package solver

import (
	"testing"

	"github.com/hailam/hexvc/internal/hexboard"
	"github.com/hailam/hexvc/internal/hexcell"
	"github.com/hailam/hexvc/internal/vc"
)

func TestResistanceSumsParallelConductances(t *testing.T) {
	b := hexboard.New(7, 7, nil, hexboard.EndgameKeepFillin)
	p := hexcell.InteriorCell(7, 2, 2)
	q := hexcell.InteriorCell(7, 4, 4)

	v1 := vc.NewFull(hexcell.North, hexcell.South, hexcell.Of(p), hexcell.Set{}, vc.RuleBase)
	v2 := vc.NewFull(hexcell.East, hexcell.West, hexcell.Of(p, q), hexcell.Set{}, vc.RuleBase)
	b.Black.Add(hexcell.North, hexcell.South, vc.Full, v1)
	b.Black.Add(hexcell.East, hexcell.West, vc.Full, v2)

	res := Resistance(b, hexcell.Black)
	if got, want := res[p], 1.5; got != want {
		t.Errorf("res[p] = %v, want %v (1.0 + 1/2)", got, want)
	}
	if got, want := res[q], 0.5; got != want {
		t.Errorf("res[q] = %v, want %v", got, want)
	}
}

func TestResistanceEmptyForUntouchedColour(t *testing.T) {
	b := hexboard.New(7, 7, nil, hexboard.EndgameKeepFillin)
	res := Resistance(b, hexcell.White)
	if len(res) != 0 {
		t.Errorf("expected no resistance entries before any VC exists, got %v", res)
	}
}
