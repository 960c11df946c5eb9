package pattern

import "github.com/hailam/hexvc/internal/boardgeom"

// Type distinguishes pattern kinds; the byte value is the pattern-file
// type character (d c p v ! m s).
type Type byte

const (
	TypeDead                Type = 'd'
	TypeCaptured            Type = 'c'
	TypePermanentlyInferior Type = 'p'
	TypeVulnerable          Type = 'v'
	TypeDominated           Type = '!'
	TypeHeuristicMove       Type = 'm'
	TypeHeuristicStrength   Type = 's'
)

// Slice holds one 60-degree wedge of a pattern: which ray positions
// (distance 1..MaxPatternRadius) must be empty ("Cells", named for the
// pattern-file field of the same name), which must be Black, which must
// be White, and two annotation bitmasks used to encode killer cells,
// carriers, or suggested moves.
type Slice struct {
	Cells   uint32
	Black   uint32
	White   uint32
	Marked1 uint32
	Marked2 uint32
}

// Pattern is one encoded pattern centred on a cell.
type Pattern struct {
	Name    string
	Type    Type
	Slices  [NumDirections]Slice
	Weight  int
	HasMirror bool
}

// rotated is one of a pattern's six 60-degree rotations, precomputed at
// load time so matching only has to look up candidates by ring godel.
type rotated struct {
	p        *Pattern
	rotation int     // how many slices the pattern was rotated by
	slices   [NumDirections]Slice
}

// immediateRequirement returns the colour requirement for the
// immediate ring (r=1) of this rotated pattern as a mask/value pair,
// 2 bits per direction; a direction the pattern doesn't constrain at
// r=1 is left out of the mask.
func (rp *rotated) immediateRequirement() (mask, value uint32) {
	for d := 0; d < NumDirections; d++ {
		s := rp.slices[d]
		bit := uint32(1)
		var code uint32
		var constrained bool
		switch {
		case s.Black&bit != 0:
			code, constrained = 0, true
		case s.White&bit != 0:
			code, constrained = 1, true
		case s.Cells&bit != 0:
			code, constrained = 2, true
		}
		if constrained {
			mask |= 3 << uint(2*d)
			value |= code << uint(2*d)
		}
	}
	return mask, value
}

// maxRadiusUsed returns the largest ray distance any slice of rp
// constrains, used for the "slice-extension <= 1 matches immediately"
// fast path.
func (rp *rotated) maxRadiusUsed() int {
	max := 0
	for _, s := range rp.slices {
		combined := s.Cells | s.Black | s.White
		for r := boardgeom.MaxPatternRadius; r >= 1; r-- {
			if combined&(1<<uint(r-1)) != 0 && r > max {
				max = r
			}
		}
	}
	return max
}

// rotateSlices returns slices rotated by `by` positions (each position is a
// 60-degree turn, matching the six-direction order E,NE,N,W,SW,S).
func rotateSlices(s [NumDirections]Slice, by int) [NumDirections]Slice {
	var out [NumDirections]Slice
	for d := 0; d < NumDirections; d++ {
		out[(d+by)%NumDirections] = s[d]
	}
	return out
}

// PatternSets groups loaded patterns by type, with precomputed
// rotations for matching.
type PatternSets struct {
	All []*Pattern

	rotations []*rotated
}

// ByType returns every pattern of the given type.
func (ps *PatternSets) ByType(t Type) []*Pattern {
	var out []*Pattern
	for _, p := range ps.All {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return out
}

// finalizeRotations builds every 0..5 rotation of every pattern once,
// after loading.
func (ps *PatternSets) finalizeRotations() {
	ps.rotations = ps.rotations[:0]
	for _, p := range ps.All {
		for rot := 0; rot < NumDirections; rot++ {
			ps.rotations = append(ps.rotations, &rotated{
				p:        p,
				rotation: rot,
				slices:   rotateSlices(p.Slices, rot),
			})
		}
	}
}

// byRingGodel indexes every rotation by the ring godel values it could
// match at its centre. A rotation with no r=1 constraint on a direction
// matches any colour there, so it is filed under every godel value
// consistent with its constrained directions.
func (ps *PatternSets) byRingGodel() map[uint16][]*rotated {
	if ps.rotations == nil {
		ps.finalizeRotations()
	}
	idx := map[uint16][]*rotated{}
	for _, rp := range ps.rotations {
		mask, value := rp.immediateRequirement()
		enumerateGodels(mask, value, func(g uint16) {
			idx[g] = append(idx[g], rp)
		})
	}
	return idx
}

// enumerateGodels calls f for every 12-bit godel value consistent with
// the constrained bits in mask/value.
func enumerateGodels(mask, value uint32, f func(uint16)) {
	free := (^mask) & 0xFFF
	// Enumerate subsets of the free bits.
	for sub := free; ; sub = (sub - 1) & free {
		f(uint16(value | sub))
		if sub == 0 {
			break
		}
	}
}
