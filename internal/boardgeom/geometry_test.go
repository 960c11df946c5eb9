package boardgeom

import (
	"testing"

	"github.com/hailam/hexvc/internal/hexcell"
)

func cellSet(cells ...hexcell.Cell) hexcell.Set { return hexcell.Of(cells...) }

// TestCornerNeighbours checks spec scenario S4: const_nbs(a1) == {b1, a2,
// North, West}.
func TestCornerNeighbours(t *testing.T) {
	g := Get(11, 11)
	a1 := hexcell.InteriorCell(11, 0, 0)
	b1 := hexcell.InteriorCell(11, 1, 0)
	a2 := hexcell.InteriorCell(11, 0, 1)

	got := cellSet(g.DirectNeighbours(a1)...)
	want := cellSet(b1, a2, hexcell.North, hexcell.West)
	if !got.Equals(want) {
		t.Errorf("DirectNeighbours(a1) = %v, want %v", got.Cells(), want.Cells())
	}
}

func TestInteriorNeighboursCount(t *testing.T) {
	g := Get(11, 11)
	center := hexcell.InteriorCell(11, 5, 5)
	nbs := g.DirectNeighbours(center)
	if len(nbs) != 6 {
		t.Errorf("interior cell should have 6 neighbours, got %d", len(nbs))
	}
}

func TestEdgeNeighboursExcludeOppositeEdge(t *testing.T) {
	g := Get(11, 11)
	nbs := cellSet(g.DirectNeighbours(hexcell.North)...)
	if nbs.Has(hexcell.South) {
		t.Error("North's neighbours should not include South")
	}
	if !nbs.Has(hexcell.West) || !nbs.Has(hexcell.East) {
		t.Error("North's neighbours should include both side edges")
	}
}

func TestRotate180Involution(t *testing.T) {
	g := Get(11, 11)
	for _, c := range []hexcell.Cell{hexcell.North, hexcell.South, hexcell.East, hexcell.West,
		hexcell.InteriorCell(11, 0, 0), hexcell.InteriorCell(11, 10, 10), hexcell.InteriorCell(11, 3, 7)} {
		twice := g.Rotate180(g.Rotate180(c))
		if twice != c {
			t.Errorf("Rotate180 applied twice should be identity, got %v for %v", twice, c)
		}
	}
}

func TestMirrorRequiresSquare(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic mirroring a non-square board")
		}
	}()
	g := Get(11, 7)
	g.Mirror(hexcell.North)
}

func TestMirrorInvolutionAndEdges(t *testing.T) {
	g := Get(11, 11)
	if g.Mirror(hexcell.North) != hexcell.West || g.Mirror(hexcell.West) != hexcell.North {
		t.Error("Mirror should swap North/West")
	}
	if g.Mirror(hexcell.South) != hexcell.East || g.Mirror(hexcell.East) != hexcell.South {
		t.Error("Mirror should swap South/East")
	}
	c := hexcell.InteriorCell(11, 2, 8)
	if g.Mirror(g.Mirror(c)) != c {
		t.Error("Mirror applied twice should be identity")
	}
}

func TestDistance(t *testing.T) {
	g := Get(11, 11)
	c := hexcell.InteriorCell(11, 5, 5)
	if g.Distance(c, c) != 0 {
		t.Error("distance to self should be 0")
	}
	nbs := g.DirectNeighbours(c)
	for _, n := range nbs {
		if n.IsEdge() {
			continue
		}
		if g.Distance(c, n) != 1 {
			t.Errorf("distance to direct neighbour should be 1, got %d", g.Distance(c, n))
		}
	}
}

func TestNeighboursRadiusBounds(t *testing.T) {
	g := Get(11, 11)
	c := hexcell.InteriorCell(11, 5, 5)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range radius")
		}
	}()
	g.Neighbours(c, MaxPatternRadius+1)
}

func TestNeighboursGrowWithRadius(t *testing.T) {
	g := Get(11, 11)
	c := hexcell.InteriorCell(11, 5, 5)
	r1 := g.Neighbours(c, 1)
	r2 := g.Neighbours(c, 2)
	if len(r2) <= len(r1) {
		t.Error("radius-2 neighbourhood should be strictly larger than radius-1")
	}
}

func TestGeometryCached(t *testing.T) {
	a := Get(9, 9)
	b := Get(9, 9)
	if a != b {
		t.Error("Get should return the cached Geometry instance for repeated calls")
	}
}
