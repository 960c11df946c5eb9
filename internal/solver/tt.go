package solver

import "github.com/hailam/hexvc/internal/hexcell"

// TTEntry is one transposition-table slot.
type TTEntry struct {
	Key      uint64
	Winner   hexcell.Colour
	Proof    hexcell.Set
	BestMove hexcell.Cell
	Depth    int
	Valid    bool
}

// TranspositionTable is a fixed-capacity, directly addressed table
// keyed on the full Zobrist hash with last-writer-wins replacement
// ("single slot per bucket, newest entry always replaces the
// old one").
type TranspositionTable struct {
	entries []TTEntry
	mask    uint64
}

// NewTranspositionTable allocates a table of 2^bits slots.
func NewTranspositionTable(bits uint) *TranspositionTable {
	size := uint64(1) << bits
	return &TranspositionTable{entries: make([]TTEntry, size), mask: size - 1}
}

// Probe looks up key, verifying the stored key matches the probe key
// before trusting the slot ("if probed from multiple
// searches, the implementation must ensure torn-read safety by
// verifying the stored key after read").
func (tt *TranspositionTable) Probe(key uint64) (TTEntry, bool) {
	e := tt.entries[key&tt.mask]
	if !e.Valid || e.Key != key {
		return TTEntry{}, false
	}
	return e, true
}

// Store writes e at key's slot, replacing whatever was there.
func (tt *TranspositionTable) Store(key uint64, e TTEntry) {
	e.Key = key
	e.Valid = true
	tt.entries[key&tt.mask] = e
}
