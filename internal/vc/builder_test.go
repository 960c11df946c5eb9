package vc

import (
	"testing"

	"github.com/hailam/hexvc/internal/groupboard"
	"github.com/hailam/hexvc/internal/hexcell"
	"github.com/hailam/hexvc/internal/stoneboard"
)

func newBoard() (*stoneboard.Board, *groupboard.Board) {
	sb := stoneboard.New(11, 11)
	sb.StartNewGame()
	return sb, groupboard.New(sb)
}

func TestBuildStaticBaseRuleConnectsStoneToNeighbours(t *testing.T) {
	sb, gb := newBoard()
	center := hexcell.InteriorCell(11, 5, 5)
	sb.PlayMove(hexcell.Black, center)
	gb.Recompute()

	set := NewSet(hexcell.Black, DefaultSoftLimit)
	b := NewBuilder(hexcell.Black, Limits{MaxOrs: 4, AndOverEdge: true, UsePushRule: false})
	b.BuildStatic(set, gb)

	neighbours := sb.Geometry().DirectNeighbours(center)
	found := 0
	for _, n := range neighbours {
		if n.IsEdge() {
			continue
		}
		l := set.List(center, n, Full)
		for _, v := range l.All() {
			if v.Carrier.IsEmpty() {
				found++
				break
			}
		}
	}
	if found == 0 {
		t.Error("expected at least one empty-carrier base full between the stone and an empty neighbour")
	}
}

func TestProcessSemisCombinesDisjointCarriersIntoFull(t *testing.T) {
	sb, gb := newBoard()
	k1 := hexcell.InteriorCell(11, 2, 2)
	k2 := hexcell.InteriorCell(11, 8, 8)

	set := NewSet(hexcell.Black, DefaultSoftLimit)
	semi1 := NewSemi(hexcell.North, hexcell.South, k1, hexcell.Of(k1), hexcell.Set{}, RuleBase)
	semi2 := NewSemi(hexcell.North, hexcell.South, k2, hexcell.Of(k2), hexcell.Set{}, RuleBase)
	set.Add(hexcell.North, hexcell.South, Semi, semi1)
	set.Add(hexcell.North, hexcell.South, Semi, semi2)

	b := NewBuilder(hexcell.Black, Limits{MaxOrs: 4, AndOverEdge: true, UsePushRule: false})
	_ = sb
	b.processSemis(set, gb, hexcell.North, hexcell.South)

	fulls := set.List(hexcell.North, hexcell.South, Full)
	if fulls.Len() != 1 {
		t.Fatalf("expected 1 combined full, got %d", fulls.Len())
	}
	want := hexcell.Of(k1, k2)
	if !fulls.All()[0].Carrier.Equals(want) {
		t.Errorf("combined carrier = %v, want %v", fulls.All()[0].Carrier.Cells(), want.Cells())
	}
	if !semi1.Processed || !semi2.Processed {
		t.Error("both semis should be marked processed after processSemis")
	}
}

func TestProcessSemisSkipsWhenHardIntersectionNonEmpty(t *testing.T) {
	_, gb := newBoard()
	shared := hexcell.InteriorCell(11, 4, 4)
	k1 := hexcell.InteriorCell(11, 2, 2)
	k2 := hexcell.InteriorCell(11, 8, 8)

	set := NewSet(hexcell.Black, DefaultSoftLimit)
	semi1 := NewSemi(hexcell.North, hexcell.South, k1, hexcell.Of(k1, shared), hexcell.Set{}, RuleBase)
	semi2 := NewSemi(hexcell.North, hexcell.South, k2, hexcell.Of(k2, shared), hexcell.Set{}, RuleBase)
	set.Add(hexcell.North, hexcell.South, Semi, semi1)
	set.Add(hexcell.North, hexcell.South, Semi, semi2)

	b := NewBuilder(hexcell.Black, Limits{MaxOrs: 4, AndOverEdge: true, UsePushRule: false})
	b.processSemis(set, gb, hexcell.North, hexcell.South)

	if set.List(hexcell.North, hexcell.South, Full).Len() != 0 {
		t.Error("a non-empty hard intersection means every combination is blocked; no full should form")
	}
	if !semi1.Processed || !semi2.Processed {
		t.Error("semis sharing a mandatory cell should still be marked processed")
	}
}

func TestPushRuleProducesFullsAndSemis(t *testing.T) {
	_, gb := newBoard()
	x := hexcell.InteriorCell(11, 1, 1)
	y := hexcell.InteriorCell(11, 9, 9)
	p1 := hexcell.InteriorCell(11, 3, 3)
	p2 := hexcell.InteriorCell(11, 7, 7)
	cVc := hexcell.InteriorCell(11, 5, 0)
	cVi := hexcell.InteriorCell(11, 0, 5)
	cVj := hexcell.InteriorCell(11, 10, 5)

	vc := NewSemi(x, y, cVc, hexcell.Of(cVc), hexcell.Set{}, RuleBase)
	vc.Processed = true
	vi := NewSemi(x, y, cVi, hexcell.Of(cVi), hexcell.Of(p1), RuleBase)
	vi.Processed = true
	vj := NewSemi(x, y, cVj, hexcell.Of(cVj), hexcell.Of(p2), RuleBase)
	vj.Processed = true

	set := NewSet(hexcell.Black, DefaultSoftLimit)
	set.Add(x, y, Semi, vc)
	set.Add(x, y, Semi, vi)
	set.Add(x, y, Semi, vj)

	b := NewBuilder(hexcell.Black, DefaultLimits())
	b.pushRule(set, gb, x, y, vc, []*VC{vc, vi, vj})

	foundFullToP1 := set.List(x, p1, Full).Len() > 0 || set.List(y, p1, Full).Len() > 0
	foundFullToP2 := set.List(x, p2, Full).Len() > 0 || set.List(y, p2, Full).Len() > 0
	if !foundFullToP1 {
		t.Error("expected a new full keyed to mustuse cell p1")
	}
	if !foundFullToP2 {
		t.Error("expected a new full keyed to mustuse cell p2")
	}
	if set.List(p1, p2, Semi).Len() == 0 {
		t.Error("expected a new semi between the two distinct mustuse groups' cells")
	}
}
