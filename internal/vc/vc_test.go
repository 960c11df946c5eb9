package vc

import (
	"testing"

	"github.com/hailam/hexvc/internal/hexcell"
)

func TestNewFullNormalisesEndpoints(t *testing.T) {
	a := hexcell.InteriorCell(11, 5, 5)
	b := hexcell.InteriorCell(11, 0, 0)
	v := NewFull(a, b, hexcell.Set{}, hexcell.Set{}, RuleBase)
	if v.X > v.Y {
		t.Error("NewFull should normalise X <= Y regardless of argument order")
	}
	if v.Kind != Full || v.Key != hexcell.NoCell {
		t.Error("a full VC should have Kind Full and no key")
	}
}

func TestNewSemiKeyAndEndpoints(t *testing.T) {
	a := hexcell.InteriorCell(11, 5, 5)
	b := hexcell.InteriorCell(11, 0, 0)
	key := hexcell.InteriorCell(11, 2, 2)
	v := NewSemi(a, b, key, hexcell.Of(key), hexcell.Set{}, RuleBase)
	if v.X > v.Y {
		t.Error("NewSemi should normalise endpoints")
	}
	if v.Kind != Semi || v.Key != key {
		t.Error("semi should retain its key")
	}
}

func TestVCSize(t *testing.T) {
	c1 := hexcell.InteriorCell(11, 0, 0)
	c2 := hexcell.InteriorCell(11, 1, 0)
	v := NewFull(hexcell.North, hexcell.South, hexcell.Of(c1, c2), hexcell.Set{}, RuleBase)
	if v.Size() != 2 {
		t.Errorf("Size() = %d, want 2", v.Size())
	}
}

func TestLessVCOrdersBySizeThenKeyThenCarrier(t *testing.T) {
	small := NewFull(hexcell.North, hexcell.South, hexcell.Of(hexcell.InteriorCell(11, 0, 0)), hexcell.Set{}, RuleBase)
	big := NewFull(hexcell.North, hexcell.South, hexcell.Of(hexcell.InteriorCell(11, 0, 0), hexcell.InteriorCell(11, 1, 0)), hexcell.Set{}, RuleBase)
	if !lessVC(small, big) {
		t.Error("a smaller-carrier VC should sort before a larger one")
	}
	if lessVC(big, small) {
		t.Error("ordering should be asymmetric")
	}
}
