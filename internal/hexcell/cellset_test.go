package hexcell

import "testing"

func TestSetAddRemoveHas(t *testing.T) {
	var s Set
	s = s.Add(North).Add(FirstInterior).Add(Cell(100))
	if !s.Has(North) || !s.Has(FirstInterior) || !s.Has(Cell(100)) {
		t.Fatal("expected added cells to be members")
	}
	s = s.Remove(FirstInterior)
	if s.Has(FirstInterior) {
		t.Error("removed cell still reported as member")
	}
	if s.Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Count())
	}
}

func TestSetUnionIntersectDiff(t *testing.T) {
	a := Of(North, South, East)
	b := Of(South, East, West)

	u := a.Union(b)
	if !u.Equals(Of(North, South, East, West)) {
		t.Error("Union did not produce expected set")
	}
	i := a.Intersect(b)
	if !i.Equals(Of(South, East)) {
		t.Error("Intersect did not produce expected set")
	}
	d := a.Diff(b)
	if !d.Equals(Of(North)) {
		t.Error("Diff did not produce expected set")
	}
	if !a.Intersects(b) {
		t.Error("a and b should intersect")
	}
	if Of(North).Intersects(Of(South)) {
		t.Error("disjoint sets should not intersect")
	}
}

func TestSetSubsetOrdering(t *testing.T) {
	small := Of(North)
	big := Of(North, South)
	if !small.Subset(big) {
		t.Error("small should be a subset of big")
	}
	if !small.ProperSubset(big) {
		t.Error("small should be a proper subset of big")
	}
	if big.ProperSubset(big) {
		t.Error("a set is not a proper subset of itself")
	}
	if !small.Less(big) {
		t.Error("smaller-count set should sort first")
	}
}

func TestSetEmptyAndForEach(t *testing.T) {
	var empty Set
	if !empty.IsEmpty() {
		t.Error("zero value Set should be empty")
	}
	s := Of(North, South, Cell(70))
	var seen []Cell
	s.ForEach(func(c Cell) { seen = append(seen, c) })
	if len(seen) != 3 {
		t.Fatalf("ForEach visited %d cells, want 3", len(seen))
	}
	// ascending order: North=2, South=3, Cell(70)
	if seen[0] != North || seen[1] != South || seen[2] != Cell(70) {
		t.Errorf("ForEach order = %v, want ascending", seen)
	}
	if len(s.Cells()) != 3 {
		t.Error("Cells() length mismatch with Count()")
	}
}

func TestSetWordsRoundTrip(t *testing.T) {
	s := Of(North, South, Cell(100))
	lo, hi := s.Words()
	restored := FromWords(lo, hi)
	if !restored.Equals(s) {
		t.Error("FromWords(Words()) did not round-trip")
	}
}
