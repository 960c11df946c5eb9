package stoneboard

import "github.com/hailam/hexvc/internal/hexcell"

// Zobrist hash keys, one per (colour, cell). Generated with a fixed-seed
// PRNG for reproducibility, keyed on (colour, cell) instead of the usual
// (colour, piecetype, square) since stones have no piece type here.
var zobristKey [2][hexcell.MaxCells]uint64

func init() {
	initZobrist()
}

// prng is a xorshift64* generator, used for deterministic key generation.
type prng struct{ state uint64 }

func newPRNG(seed uint64) *prng { return &prng{state: seed} }

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x4845584447414D45) // fixed seed ("HEXGAME" in hex ascii-ish)
	for c := 0; c < 2; c++ {
		for cell := 0; cell < hexcell.MaxCells; cell++ {
			zobristKey[c][cell] = rng.next()
		}
	}
}

// ZobristKey returns the key for a (colour, cell) pair. colour must be
// Black or White.
func ZobristKey(c hexcell.Colour, cell hexcell.Cell) uint64 {
	return zobristKey[c][cell]
}
