package vc

import (
	"github.com/hailam/hexvc/internal/groupboard"
	"github.com/hailam/hexvc/internal/hexcell"
)

// Limits bounds the OR-rule combination search ("max_ors") and
// switches the push rule. AndOverEdge is carried but not read: the AND
// rule never combines over an opposite-coloured captain, edge or not.
type Limits struct {
	MaxOrs      int
	AndOverEdge bool
	UsePushRule bool
}

// DefaultLimits mirrors typical Benzene-lineage defaults: combine up to
// five disjoint semis in one OR step, push rule enabled.
func DefaultLimits() Limits { return Limits{MaxOrs: 4, AndOverEdge: true, UsePushRule: true} }

type pairKey struct{ X, Y hexcell.Cell }

// Builder runs the base/AND/OR rules to fixpoint for one colour,
// maintaining a FIFO work queue of endpoint pairs to (re)process (spec
// §4.6, §5 "Work queue ... FIFO with insertion-uniqueness").
type Builder struct {
	colour hexcell.Colour
	limits Limits
	queue  []pairKey
	queued map[pairKey]bool
}

// NewBuilder creates a ConnectionBuilder for colour.
func NewBuilder(colour hexcell.Colour, limits Limits) *Builder {
	return &Builder{colour: colour, limits: limits, queued: map[pairKey]bool{}}
}

func (b *Builder) enqueue(x, y hexcell.Cell) {
	x, y = endpoints(x, y)
	k := pairKey{x, y}
	if b.queued[k] {
		return
	}
	b.queued[k] = true
	b.queue = append(b.queue, k)
}

// BuildStatic clears set and rebuilds it from scratch: the base rule
// followed by queue processing to fixpoint ("Initial (static)
// build").
func (b *Builder) BuildStatic(set *Set, gb *groupboard.Board) {
	b.queue = nil
	b.queued = map[pairKey]bool{}
	set.Reset()

	for _, x := range gb.Captains(b.colour) {
		for _, y := range gb.Nbs(x, hexcell.Empty).Cells() {
			if x == y {
				continue
			}
			v := NewFull(x, y, hexcell.Set{}, hexcell.Set{}, RuleBase)
			if _, within := set.Add(v.X, v.Y, Full, v); within {
				b.enqueue(v.X, v.Y)
			}
		}
	}
	b.drain(set, gb)
}

func (b *Builder) drain(set *Set, gb *groupboard.Board) {
	for len(b.queue) > 0 {
		k := b.queue[0]
		b.queue = b.queue[1:]
		delete(b.queued, k)
		b.processSemis(set, gb, k.X, k.Y)
		b.processFulls(set, gb, k.X, k.Y)
	}
}

// processFulls runs AndClosure over every unprocessed full between x
// and y ("ProcessFulls").
func (b *Builder) processFulls(set *Set, gb *groupboard.Board, x, y hexcell.Cell) {
	list := set.List(x, y, Full)
	for _, f := range append([]*VC{}, list.All()...) {
		if f.Processed {
			continue
		}
		set.MarkProcessed(x, y, Full, f)
	}
	b.andRule(set, gb, x, y)
}

// andRule implements the AND closure: for every third captain z,
// combine a processed connection x-z with a processed connection z-y
// whose carriers are disjoint and don't touch x or y. z's colour
// decides whether the combination is a full (z is a c-stone, folded
// into the carrier's required-stone set) or a semi keyed on z (z is
// empty).
func (b *Builder) andRule(set *Set, gb *groupboard.Board, x, y hexcell.Cell) {
	for _, z := range b.thirdCaptains(gb, x, y) {
		zColour := gb.ColourAt(z)
		if zColour == b.colour.Other() {
			continue
		}
		for _, v1 := range set.List(x, z, Full).processedAll() {
			for _, v2 := range set.List(z, y, Full).processedAll() {
				b.combineAnd(set, x, y, z, zColour, v1, v2)
			}
		}
	}
}

func (b *Builder) combineAnd(set *Set, x, y, z hexcell.Cell, zColour hexcell.Colour, v1, v2 *VC) {
	if v1.Carrier.Intersects(v2.Carrier) {
		return
	}
	carrier := v1.Carrier.Union(v2.Carrier)
	mustuse := v1.Mustuse.Union(v2.Mustuse)
	if carrier.Has(x) || carrier.Has(y) {
		return
	}
	if zColour == b.colour {
		mustuse = mustuse.Add(z)
		v := NewFull(x, y, carrier, mustuse, RuleAnd)
		if _, within := set.Add(x, y, Full, v); within {
			b.enqueue(x, y)
		}
		return
	}
	carrier = carrier.Add(z)
	v := NewSemi(x, y, z, carrier, mustuse, RuleAnd)
	if _, within := set.Add(x, y, Semi, v); within {
		b.enqueue(x, y)
	}
}

// processSemis runs the OR rule over x,y's semi list
// ("ProcessSemis"): if the hard intersection is non-empty the semis are
// only marked processed; otherwise union carriers of pairwise-
// disjoint subsets of size 2..max_ors+1 looking for a full, falling
// back to a single greedy-union full over every processed semi when
// none is found.
func (b *Builder) processSemis(set *Set, gb *groupboard.Board, x, y hexcell.Cell) {
	semis := set.List(x, y, Semi)
	if semis.Len() == 0 {
		return
	}
	if !semis.HardIntersection().IsEmpty() {
		for _, v := range semis.All() {
			set.MarkProcessed(x, y, Semi, v)
		}
		return
	}
	all := append([]*VC{}, semis.All()...)
	if b.limits.UsePushRule {
		for _, v := range all {
			if !v.Processed {
				b.pushRule(set, gb, x, y, v, all)
			}
		}
	}
	foundFull := false
	for size := 2; size <= b.limits.MaxOrs+1 && size <= len(all) && !foundFull; size++ {
		combos(all, size, func(group []*VC) bool {
			if !disjointCarriers(group) {
				return true
			}
			var carrier hexcell.Set
			for _, v := range group {
				carrier = carrier.Union(v.Carrier)
			}
			if carrier.Has(x) || carrier.Has(y) {
				return true
			}
			full := NewFull(x, y, carrier, hexcell.Set{}, RuleOr)
			if _, within := set.Add(x, y, Full, full); within {
				b.enqueue(x, y)
			}
			foundFull = true
			return false
		})
	}
	for _, v := range all {
		set.MarkProcessed(x, y, Semi, v)
	}
	if !foundFull {
		var carrier hexcell.Set
		for _, v := range all {
			carrier = carrier.Union(v.Carrier)
		}
		if !carrier.Has(x) && !carrier.Has(y) {
			full := NewFull(x, y, carrier, hexcell.Set{}, RuleOr)
			if _, within := set.Add(x, y, Full, full); within {
				b.enqueue(x, y)
			}
		}
	}
}

// pushRule implements the push rule: given an
// unprocessed semi vc between two empty captains x, y and two other
// semis vi, vj from the same (x,y) semi list with pairwise-disjoint
// carriers (outside vc's own carrier) and pairwise-disjoint mustuse
// captain sets (at most one of the three may have an empty mustuse
// set), every stone reachable through one of the three mustuse sets
// can serve as the far endpoint of a new full connection keyed on x or
// y, and every pair of stones drawn from two different mustuse sets
// can serve as endpoints of a new semi keyed on x or y. x and y only
// apply as keys; the edge-bridge miai special case from the original
// ("do not generalise") is not replicated — see DESIGN.md.
func (b *Builder) pushRule(set *Set, gb *groupboard.Board, x, y hexcell.Cell, vc *VC, semis []*VC) {
	if gb.ColourAt(x) != hexcell.Empty || gb.ColourAt(y) != hexcell.Empty {
		return
	}
	keys := [2]hexcell.Cell{x, y}
	mu0 := gb.CaptainizeBitset(vc.Mustuse)
	emptyMustuse0 := vc.Mustuse.IsEmpty()

	for i, vi := range semis {
		if vi == vc || !vi.Processed {
			continue
		}
		if vi.Carrier.Intersects(vc.Carrier) {
			continue
		}
		emptyMustuse1 := emptyMustuse0
		if vi.Mustuse.IsEmpty() {
			if emptyMustuse1 {
				continue
			}
			emptyMustuse1 = true
		}
		mu1 := gb.CaptainizeBitset(vi.Mustuse)
		if mu0.Intersects(mu1) {
			continue
		}

		for j := i + 1; j < len(semis); j++ {
			vj := semis[j]
			if vj == vc || !vj.Processed {
				continue
			}
			if vj.Carrier.Intersects(vc.Carrier) || vj.Carrier.Intersects(vi.Carrier) {
				continue
			}
			emptyMustuse2 := emptyMustuse1
			if vj.Mustuse.IsEmpty() {
				if emptyMustuse2 {
					continue
				}
			}
			mu2 := gb.CaptainizeBitset(vj.Mustuse)
			if mu2.Intersects(mu0.Union(mu1)) {
				continue
			}

			carrier := vi.Carrier.Union(vj.Carrier).Union(vc.Carrier)
			carrier = carrier.Add(x).Add(y)
			mu := mu0.Union(mu1).Union(mu2)

			mu.ForEach(func(p hexcell.Cell) {
				for _, k := range keys {
					c := carrier.Remove(k)
					full := NewFull(k, p, c, hexcell.Set{}, RulePush)
					if _, within := set.Add(full.X, full.Y, Full, full); within {
						b.enqueue(full.X, full.Y)
					}
				}
			})

			groups := [3]hexcell.Set{mu0, mu1, mu2}
			ends := map[pairKey]bool{}
			for a := 0; a < 3; a++ {
				for bb := a + 1; bb < 3; bb++ {
					groups[a].ForEach(func(p1 hexcell.Cell) {
						groups[bb].ForEach(func(p2 hexcell.Cell) {
							nx, ny := endpoints(p1, p2)
							ends[pairKey{nx, ny}] = true
						})
					})
				}
			}
			for _, k := range keys {
				for pair := range ends {
					semi := NewSemi(pair.X, pair.Y, k, carrier, hexcell.Set{}, RulePush)
					if _, within := set.Add(semi.X, semi.Y, Semi, semi); within {
						b.enqueue(semi.X, semi.Y)
					}
				}
			}
		}
	}
}

func disjointCarriers(vcs []*VC) bool {
	var seen hexcell.Set
	for _, v := range vcs {
		if seen.Intersects(v.Carrier) {
			return false
		}
		seen = seen.Union(v.Carrier)
	}
	return true
}

// combos calls f for every size-k subset of items (order-preserving,
// lexicographic), stopping early if f returns false.
func combos(items []*VC, k int, f func([]*VC) bool) {
	n := len(items)
	if k > n || k == 0 {
		return
	}
	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	for {
		group := make([]*VC, k)
		for i, p := range idx {
			group[i] = items[p]
		}
		if !f(group) {
			return
		}
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

// thirdCaptains returns every captain (of either colour, or empty)
// other than x and y.
func (b *Builder) thirdCaptains(gb *groupboard.Board, x, y hexcell.Cell) []hexcell.Cell {
	var out []hexcell.Cell
	for _, z := range gb.Captains(hexcell.Black, hexcell.White, hexcell.Empty) {
		if z != x && z != y {
			out = append(out, z)
		}
	}
	return out
}

// BuildIncremental updates set for newly coloured cells addedSelf
// (this builder's colour) and addedOther (the opponent), per spec
// §4.6's incremental-update steps: kill VCs broken by the opponent's
// new stones, then shrink/upgrade/merge every surviving VC onto the
// post-move captains, then redrain the queue.
func (b *Builder) BuildIncremental(set *Set, gb *groupboard.Board, addedSelf, addedOther hexcell.Set) {
	b.queue = nil
	b.queued = map[pairKey]bool{}

	for k, l := range set.lists {
		for _, v := range append([]*VC{}, l.All()...) {
			if v.Carrier.Intersects(addedOther) {
				set.Remove(k.X, k.Y, k.Kind, v)
			}
		}
	}

	type relocated struct {
		key Key
		vc  *VC
	}
	var moves []relocated
	for k, l := range set.lists {
		for _, v := range append([]*VC{}, l.All()...) {
			cx, cy := gb.Captain(v.X), gb.Captain(v.Y)
			nx, ny := endpoints(cx, cy)
			carrier := v.Carrier
			kind := k.Kind
			if carrier.Intersects(addedSelf) {
				carrier = carrier.Diff(addedSelf)
				if k.Kind == Semi && addedSelf.Has(v.Key) {
					kind = Full
				}
			}
			if nx == k.X && ny == k.Y && kind == k.Kind && carrier.Equals(v.Carrier) {
				continue
			}
			if carrier.Has(nx) || carrier.Has(ny) {
				set.Remove(k.X, k.Y, k.Kind, v)
				continue
			}
			set.Remove(k.X, k.Y, k.Kind, v)
			var nv *VC
			if kind == Full {
				nv = NewFull(nx, ny, carrier, v.Mustuse, v.Rule)
			} else {
				nv = NewSemi(nx, ny, v.Key, carrier, v.Mustuse, v.Rule)
			}
			moves = append(moves, relocated{Key{nx, ny, kind}, nv})
		}
	}
	for _, m := range moves {
		set.Add(m.key.X, m.key.Y, m.key.Kind, m.vc)
		b.enqueue(m.key.X, m.key.Y)
	}
	b.drain(set, gb)
}
