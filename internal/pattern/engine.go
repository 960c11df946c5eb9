// Package pattern implements the PatternEngine: encoded patterns and
// per-cell ring-hash match acceleration.
package pattern

import (
	"github.com/hailam/hexvc/internal/boardgeom"
	"github.com/hailam/hexvc/internal/hexcell"
)

// NumDirections is the fixed six-direction order: E, NE, N, W, SW, S.
const NumDirections = 6

// ringSlice tracks, for one cell and one of the six slices, which of
// the MaxPatternRadius ray positions are occupied and by which colour.
// Bit r-1 corresponds to distance r along the slice's ray.
type ringSlice struct {
	occupied uint32
	black    uint32
	white    uint32
}

// Engine maintains the ring godel (12-bit immediate-neighbour colour
// hash) and slice godel (per-slice occupancy bitmask) for every cell of
// one board, incrementally across PlayMove/UndoMove.
type Engine struct {
	geo *boardgeom.Geometry

	ringGodel [hexcell.MaxCells]uint16
	slices    [hexcell.MaxCells][NumDirections]ringSlice

	// ambiguousDir[c] is d+1 when direction d from c is the obtuse-corner
	// ray position resolving to two edges at once (0 means none); at
	// most one direction can be ambiguous for a given cell. ringGodel
	// stores the Black-coded (0) value for that direction; the White
	// code is the alternate candidate a lookup must also try.
	ambiguousDir [hexcell.MaxCells]int8

	sets     *PatternSets
	hitCache map[uint16][]*rotated
}

// NewEngine creates a PatternEngine for the given geometry. sets may be
// nil if only ring/slice maintenance (no matching) is needed.
func NewEngine(geo *boardgeom.Geometry, sets *PatternSets) *Engine {
	e := &Engine{geo: geo, sets: sets}
	if sets != nil {
		e.hitCache = sets.byRingGodel()
	}
	return e
}

// colourCode encodes a tri-state colour into the 2-bit code used by the
// ring godel: Black=0, White=1, Empty=2.
func colourCode(c hexcell.Colour) uint16 {
	switch c {
	case hexcell.Black:
		return 0
	case hexcell.White:
		return 1
	default:
		return 2
	}
}

func colourOf(sb colourSource, c hexcell.Cell) hexcell.Colour {
	if c == hexcell.NoCell {
		return hexcell.Empty
	}
	return sb.ColourAt(c)
}

// colourSource is the minimal interface pattern needs from a stone
// board, kept narrow to avoid importing the stoneboard package and
// creating a cycle with hexboard.
type colourSource interface {
	ColourAt(c hexcell.Cell) hexcell.Colour
}

// Recompute rebuilds every ring and slice godel from scratch by
// scanning sb.
func (e *Engine) Recompute(sb colourSource) {
	for i := range e.ringGodel {
		e.ringGodel[i] = 0
	}
	for i := range e.slices {
		for d := 0; d < NumDirections; d++ {
			e.slices[i][d] = ringSlice{}
		}
	}
	for _, c := range e.geo.CellOrder() {
		if c.IsSpecial() || c.IsEdge() {
			continue
		}
		e.rebuildCell(sb, c)
	}
}

func (e *Engine) rebuildCell(sb colourSource, c hexcell.Cell) {
	var godel uint16
	e.ambiguousDir[c] = 0
	for d := 0; d < NumDirections; d++ {
		neighbours := e.geo.DirectedNeighbourAll(c, d)
		if len(neighbours) == 2 {
			// Obtuse corner: the ray position is simultaneously
			// adjacent to both edges that meet there, so it is coded
			// Black here and the White code is tried as an alternate
			// candidate by MatchAtColour.
			e.ambiguousDir[c] = int8(d + 1)
			godel |= colourCode(hexcell.Black) << uint(2*d)
		} else {
			var n hexcell.Cell = hexcell.NoCell
			if len(neighbours) == 1 {
				n = neighbours[0]
			}
			godel |= colourCode(colourOf(sb, n)) << uint(2*d)
		}

		var rs ringSlice
		for r := 1; r <= boardgeom.MaxPatternRadius; r++ {
			cells := e.geo.RayCellAll(c, d, r)
			if len(cells) == 2 {
				// Both edges meeting at the obtuse corner are present
				// at this ray position at once (PatternBoard.cpp's
				// documented "the obtuse corner is both black and
				// white"): register both colours, not just one.
				bit := uint32(1) << uint(r-1)
				rs.occupied |= bit
				rs.black |= bit
				rs.white |= bit
				continue
			}
			if len(cells) == 0 {
				continue
			}
			col := colourOf(sb, cells[0])
			if col == hexcell.Empty {
				continue
			}
			bit := uint32(1) << uint(r-1)
			rs.occupied |= bit
			if col == hexcell.Black {
				rs.black |= bit
			} else {
				rs.white |= bit
			}
		}
		e.slices[c][d] = rs
	}
	e.ringGodel[c] = godel
}

// Update incrementally refreshes every cell whose ring or slice godel
// could change because of a stone played/removed at m: m's own
// immediate neighbours (ring godel, updated in O(1) each), and every
// cell within MaxPatternRadius of m along one of the six rays through m
// (slice godel).
func (e *Engine) Update(sb colourSource, m hexcell.Cell) {
	if m.IsSpecial() || m.IsEdge() {
		return
	}
	seen := hexcell.Set{}
	for d := 0; d < NumDirections; d++ {
		n := e.geo.DirectedNeighbour(m, d)
		if n != hexcell.NoCell && !n.IsSpecial() && !n.IsEdge() && !seen.Has(n) {
			seen = seen.Add(n)
			e.rebuildCell(sb, n)
		}
	}
	for r := 1; r <= boardgeom.MaxPatternRadius; r++ {
		for d := 0; d < NumDirections; d++ {
			c := e.geo.RayCell(m, boardgeom.Opposite(d), r)
			if c == hexcell.NoCell || c.IsSpecial() || c.IsEdge() || seen.Has(c) {
				continue
			}
			seen = seen.Add(c)
			e.rebuildCell(sb, c)
		}
	}
	e.rebuildCell(sb, m)
}

// RingGodel returns the current 12-bit immediate-neighbour colour hash
// for c.
func (e *Engine) RingGodel(c hexcell.Cell) uint16 { return e.ringGodel[c] }

// Sets returns the loaded PatternSets (nil if this Engine only
// maintains godels without matching), so a caller building a scratch
// Engine over a different board (the solver's shrink step) can reuse
// the same patterns.
func (e *Engine) Sets() *PatternSets { return e.sets }
