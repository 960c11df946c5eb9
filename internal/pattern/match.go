package pattern

import "github.com/hailam/hexvc/internal/hexcell"

// Match is one pattern hit centred on a cell.
type Match struct {
	Pattern  *Pattern
	Rotation int
	Center   hexcell.Cell
	Marked1  hexcell.Set // e.g. a carrier
	Marked2  hexcell.Set // e.g. a killer set
}

// swapColourCode flips every 2-bit Black/White code (0<->1) in a packed
// value, leaving the Empty code (2) untouched. Patterns are authored
// from Black's perspective; matching for the opposite colour
// reinterprets the board with colours swapped instead of doubling every
// pattern.
func swapColourCode(v uint16) uint16 {
	var out uint16
	for d := 0; d < NumDirections; d++ {
		code := (v >> uint(2*d)) & 3
		switch code {
		case 0:
			code = 1
		case 1:
			code = 0
		}
		out |= code << uint(2*d)
	}
	return out
}

// MatchAt matches every pattern of type t centred on c, from Black's
// perspective. Equivalent to MatchAtColour(sb, c, t, hexcell.Black).
func (e *Engine) MatchAt(sb colourSource, c hexcell.Cell, t Type) []Match {
	return e.MatchAtColour(sb, c, t, hexcell.Black)
}

// MatchAtColour matches patterns centred on c as seen from perspective's
// point of view: patterns are authored with Black meaning "same colour
// as perspective" and White meaning "opposite colour", so matching for
// White reinterprets the board with colours swapped.
func (e *Engine) MatchAtColour(sb colourSource, c hexcell.Cell, t Type, perspective hexcell.Colour) []Match {
	if e.sets == nil || c.IsSpecial() || c.IsEdge() {
		return nil
	}
	if colourOf(sb, c) != hexcell.Empty {
		return nil
	}
	godel := e.ringGodel[c]
	swap := perspective == hexcell.White
	if swap {
		godel = swapColourCode(godel)
	}
	godels := []uint16{godel}
	if ad := e.ambiguousDir[c]; ad != 0 {
		// The ambiguous direction is coded Black (0) in ringGodel; an
		// obtuse-corner cell also matches whatever is filed under the
		// White (1) code there (see rebuildCell).
		d := uint(ad-1) * 2
		godels = append(godels, godel^(1<<d))
	}
	seen := map[*rotated]bool{}
	var out []Match
	for _, g := range godels {
		for _, rp := range e.hitCache[g] {
			if rp.p.Type != t || seen[rp] {
				continue
			}
			if rp.maxRadiusUsed() <= 1 {
				seen[rp] = true
				out = append(out, e.buildMatch(rp, c))
				continue
			}
			if e.matchesExtended(c, rp, swap) {
				seen[rp] = true
				out = append(out, e.buildMatch(rp, c))
			}
		}
	}
	return out
}

func (e *Engine) matchesExtended(c hexcell.Cell, rp *rotated, swap bool) bool {
	for d := 0; d < NumDirections; d++ {
		actual := e.slices[c][d]
		black, white := actual.black, actual.white
		if swap {
			black, white = white, black
		}
		req := rp.slices[d]
		if req.Black&^black != 0 {
			return false
		}
		if req.White&^white != 0 {
			return false
		}
		if req.Cells&actual.occupied != 0 {
			return false
		}
	}
	return true
}

// buildMatch maps a matched rotation's annotation bitmasks back to
// actual board cells.
func (e *Engine) buildMatch(rp *rotated, c hexcell.Cell) Match {
	m := Match{Pattern: rp.p, Rotation: rp.rotation, Center: c}
	m.Marked1 = e.resolveMarks(c, rp, 1)
	m.Marked2 = e.resolveMarks(c, rp, 2)
	return m
}

func (e *Engine) resolveMarks(c hexcell.Cell, rp *rotated, which int) hexcell.Set {
	var out hexcell.Set
	for d := 0; d < NumDirections; d++ {
		mask := rp.slices[d].Marked1
		if which == 2 {
			mask = rp.slices[d].Marked2
		}
		for r := 1; r <= 32 && mask != 0; r++ {
			if mask&1 != 0 {
				for _, rc := range e.geo.RayCellAll(c, d, r) {
					out = out.Add(rc)
				}
			}
			mask >>= 1
		}
	}
	return out
}
