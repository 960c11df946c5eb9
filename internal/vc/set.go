package vc

import "github.com/hailam/hexvc/internal/hexcell"

// Key identifies one ConnectionList: an (endpoints, type) pair (spec
// §3 ConnectionSet).
type Key struct {
	X, Y hexcell.Cell
	Kind Type
}

func keyFor(x, y hexcell.Cell, t Type) Key {
	x, y = endpoints(x, y)
	return Key{X: x, Y: y, Kind: t}
}

// LogOp distinguishes change-log entry kinds ("change-log
// undo").
type LogOp int

const (
	OpAdd LogOp = iota
	OpRemove
	OpProcessFlip
)

// LogEntry is one change-log record; a HexBoard history frame stores
// the log length at PlayMove entry and UndoMove replays entries back
// to that marker, inverting each.
type LogEntry struct {
	Op  LogOp
	Key Key
	VC  *VC
	Was bool // prior Processed value, valid only for OpProcessFlip
}

// DefaultSoftLimit bounds how many of a list's smallest-carrier VCs
// participate in the soft intersection and get enqueued for
// processing.
const DefaultSoftLimit = 20

// Set is ConnectionSet(c): every ConnectionList for one colour, plus
// the append-only change log used to undo a PlayMove.
type Set struct {
	Colour    hexcell.Colour
	softLimit int
	lists     map[Key]*List
	log       []LogEntry
}

// NewSet creates an empty ConnectionSet for colour.
func NewSet(colour hexcell.Colour, softLimit int) *Set {
	if softLimit <= 0 {
		softLimit = DefaultSoftLimit
	}
	return &Set{Colour: colour, softLimit: softLimit, lists: map[Key]*List{}}
}

// List returns the ConnectionList for (x,y,t), creating an empty one on
// first access. Entries touching an opposite-coloured stone are never
// populated by the builder but remain legally accessible as empty
// lists.
func (s *Set) List(x, y hexcell.Cell, t Type) *List {
	k := keyFor(x, y, t)
	l, ok := s.lists[k]
	if !ok {
		l = newList(s.softLimit)
		s.lists[k] = l
	}
	return l
}

// Keys returns every (endpoints,type) pair with a non-empty list.
func (s *Set) Keys() []Key {
	var out []Key
	for k, l := range s.lists {
		if l.Len() > 0 {
			out = append(out, k)
		}
	}
	return out
}

// Reset drops every list and the change log, used before a static
// rebuild (ComputeAll: "clear connection sets").
func (s *Set) Reset() {
	s.lists = map[Key]*List{}
	s.log = nil
}

// Mark returns the current log length, a marker for a later Undo.
func (s *Set) Mark() int { return len(s.log) }

// Add inserts v into (x,y,t)'s list, logging the mutation. When t is
// Full, also prunes semis between the same endpoints that v supersedes
// ("When a new full is added, remove all semis between the
// same endpoints whose carriers are supersets of the full's carrier").
func (s *Set) Add(x, y hexcell.Cell, t Type, v *VC) (inserted, withinSoftLimit bool) {
	l := s.List(x, y, t)
	inserted, withinSoftLimit = l.Add(v)
	if !inserted {
		return false, false
	}
	s.log = append(s.log, LogEntry{Op: OpAdd, Key: keyFor(x, y, t), VC: v})
	if t == Full {
		semis := s.List(x, y, Semi)
		for _, sv := range append([]*VC{}, semis.All()...) {
			if v.Carrier.Subset(sv.Carrier) {
				if semis.Remove(sv) {
					s.log = append(s.log, LogEntry{Op: OpRemove, Key: keyFor(x, y, Semi), VC: sv})
				}
			}
		}
	}
	return true, withinSoftLimit
}

// Remove deletes v from (x,y,t)'s list, logging the mutation.
func (s *Set) Remove(x, y hexcell.Cell, t Type, v *VC) bool {
	l := s.List(x, y, t)
	if !l.Remove(v) {
		return false
	}
	s.log = append(s.log, LogEntry{Op: OpRemove, Key: keyFor(x, y, t), VC: v})
	return true
}

// MarkProcessed flips v.Processed to true, logging the prior value so
// Undo can restore it.
func (s *Set) MarkProcessed(x, y hexcell.Cell, t Type, v *VC) {
	if v.Processed {
		return
	}
	s.log = append(s.log, LogEntry{Op: OpProcessFlip, Key: keyFor(x, y, t), VC: v, Was: v.Processed})
	v.Processed = true
}

// Undo replays the log back to marker, inverting each entry in reverse
// order.
func (s *Set) Undo(marker int) {
	for i := len(s.log) - 1; i >= marker; i-- {
		e := s.log[i]
		l := s.lists[e.Key]
		switch e.Op {
		case OpAdd:
			l.Remove(e.VC)
		case OpRemove:
			l.reinsert(e.VC)
		case OpProcessFlip:
			e.VC.Processed = e.Was
		}
	}
	s.log = s.log[:marker]
}

// WinningFull returns the full connection between a's two edges, if
// any — isGameOver/terminal-check support.
func (s *Set) WinningFull(edgeA, edgeB hexcell.Cell) (*VC, bool) {
	l := s.List(edgeA, edgeB, Full)
	for _, v := range l.All() {
		if v.Carrier.IsEmpty() {
			return v, true
		}
	}
	if l.Len() > 0 {
		return l.All()[0], true
	}
	return nil, false
}
