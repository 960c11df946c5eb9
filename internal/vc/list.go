package vc

import (
	"sort"

	"github.com/hailam/hexvc/internal/hexcell"
)

// List is a ConnectionList: VCs between one fixed pair of endpoints of
// one type, sorted by (size, key, carrier), with cached soft/hard
// intersections.
type List struct {
	vcs        []*VC
	softLimit  int
	softCache  hexcell.Set
	hardCache  hexcell.Set
	cacheValid bool
}

func newList(softLimit int) *List { return &List{softLimit: softLimit} }

// Len returns the number of VCs currently in the list.
func (l *List) Len() int { return len(l.vcs) }

// All returns every VC, in sorted order. Callers must not mutate the
// returned slice.
func (l *List) All() []*VC { return l.vcs }

// processedAll returns every VC already marked processed.
func (l *List) processedAll() []*VC {
	out := make([]*VC, 0, len(l.vcs))
	for _, v := range l.vcs {
		if v.Processed {
			out = append(out, v)
		}
	}
	return out
}

func (l *List) invalidateIntersections() { l.cacheValid = false }

func (l *List) recompute() {
	if l.cacheValid {
		return
	}
	if len(l.vcs) == 0 {
		l.softCache, l.hardCache = hexcell.Set{}, hexcell.Set{}
		l.cacheValid = true
		return
	}
	hard := l.vcs[0].Carrier
	for _, v := range l.vcs[1:] {
		hard = hard.Intersect(v.Carrier)
	}
	n := l.softLimit
	if n > len(l.vcs) {
		n = len(l.vcs)
	}
	soft := l.vcs[0].Carrier
	for i := 1; i < n; i++ {
		soft = soft.Intersect(l.vcs[i].Carrier)
	}
	l.softCache, l.hardCache = soft, hard
	l.cacheValid = true
}

// SoftIntersection is the bit-AND of the carriers of the first
// softLimit elements.
func (l *List) SoftIntersection() hexcell.Set { l.recompute(); return l.softCache }

// HardIntersection is the bit-AND of every carrier in the list.
func (l *List) HardIntersection() hexcell.Set { l.recompute(); return l.hardCache }

// Add inserts v respecting the list contract: a carrier that
// is a superset of an existing element is rejected; a carrier that is
// a proper subset of existing elements removes them; an exact carrier
// duplicate is rejected. Returns whether v was inserted and, if so,
// whether it landed within the soft limit (callers enqueue the
// endpoint pair on true).
func (l *List) Add(v *VC) (inserted, withinSoftLimit bool) {
	for _, e := range l.vcs {
		if e.Carrier.Equals(v.Carrier) {
			return false, false
		}
		if e.Carrier.Subset(v.Carrier) {
			return false, false // v is a superset (or equal) of an existing carrier
		}
	}
	kept := l.vcs[:0:0]
	for _, e := range l.vcs {
		if v.Carrier.ProperSubset(e.Carrier) {
			continue // e superseded by the new, smaller-carrier v
		}
		kept = append(kept, e)
	}
	l.vcs = kept
	idx := sort.Search(len(l.vcs), func(i int) bool { return !lessVC(l.vcs[i], v) })
	l.vcs = append(l.vcs, nil)
	copy(l.vcs[idx+1:], l.vcs[idx:])
	l.vcs[idx] = v
	l.invalidateIntersections()
	return true, idx < l.softLimit
}

// Remove deletes v (by identity) from the list.
func (l *List) Remove(v *VC) bool {
	for i, e := range l.vcs {
		if e == v {
			l.vcs = append(l.vcs[:i], l.vcs[i+1:]...)
			l.invalidateIntersections()
			return true
		}
	}
	return false
}

// reinsert restores a previously removed VC to its sorted position
// without re-running the subset/superset business rules, used only by
// change-log undo, where the exact prior state must return.
func (l *List) reinsert(v *VC) {
	idx := sort.Search(len(l.vcs), func(i int) bool { return !lessVC(l.vcs[i], v) })
	l.vcs = append(l.vcs, nil)
	copy(l.vcs[idx+1:], l.vcs[idx:])
	l.vcs[idx] = v
	l.invalidateIntersections()
}
