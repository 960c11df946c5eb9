// Package stoneboard implements the mutable position: colour of each
// cell, played set, and incremental Zobrist hash.
package stoneboard

import (
	"fmt"

	"github.com/hailam/hexvc/internal/boardgeom"
	"github.com/hailam/hexvc/internal/hexcell"
)

// Board is a mutable Hex position. The zero value is not usable; use
// New.
type Board struct {
	geo *boardgeom.Geometry

	black  hexcell.Set
	white  hexcell.Set
	played hexcell.Set

	hash uint64
}

// New creates an empty board of the given size (edges not yet played;
// callers wanting the StartNewGame invariant should call
// StartNewGame immediately).
func New(width, height int) *Board {
	return &Board{geo: boardgeom.Get(width, height)}
}

// Geometry returns the board's static geometry tables.
func (b *Board) Geometry() *boardgeom.Geometry { return b.geo }

// Black, White and Played return the current bitsets.
func (b *Board) Black() hexcell.Set  { return b.black }
func (b *Board) White() hexcell.Set  { return b.white }
func (b *Board) Played() hexcell.Set { return b.played }

// Hash returns the incremental Zobrist hash: XOR of Zobrist keys over
// (played ∩ Black) with the Black key and (played ∩ White) with the
// White key; unplayed fill-in stones never reach here because SetColor
// does not update hash or played.
func (b *Board) Hash() uint64 { return b.hash }

// ColourAt returns the colour of a cell: Black, White, or Empty.
func (b *Board) ColourAt(c hexcell.Cell) hexcell.Colour {
	if b.black.Has(c) {
		return hexcell.Black
	}
	if b.white.Has(c) {
		return hexcell.White
	}
	return hexcell.Empty
}

// IsPlayed reports whether c is in the played set.
func (b *Board) IsPlayed(c hexcell.Cell) bool { return b.played.Has(c) }

// AddColor adds c to colour's set without touching played or the hash
// (used for internal fill-in bookkeeping prior to a real PlayMove).
func (b *Board) AddColor(colour hexcell.Colour, c hexcell.Cell) {
	switch colour {
	case hexcell.Black:
		b.black = b.black.Add(c)
	case hexcell.White:
		b.white = b.white.Add(c)
	default:
		panic("stoneboard: AddColor requires Black or White")
	}
}

// RemoveColor clears c from both colour sets, played, and unwinds its
// hash contribution if it had been played.
func (b *Board) RemoveColor(c hexcell.Cell) {
	if b.played.Has(c) {
		if b.black.Has(c) {
			b.hash ^= ZobristKey(hexcell.Black, c)
		} else if b.white.Has(c) {
			b.hash ^= ZobristKey(hexcell.White, c)
		}
	}
	b.black = b.black.Remove(c)
	b.white = b.white.Remove(c)
	b.played = b.played.Remove(c)
}

// SetColor(cell, colour) forces a single cell to a colour (Empty clears
// it), without marking it played or touching the hash — used for
// fill-in stones ("unplayed fill-in stones do not contribute"
// to the hash).
func (b *Board) SetColor(c hexcell.Cell, colour hexcell.Colour) {
	b.black = b.black.Remove(c)
	b.white = b.white.Remove(c)
	switch colour {
	case hexcell.Black:
		b.black = b.black.Add(c)
	case hexcell.White:
		b.white = b.white.Add(c)
	}
}

// SetColorMask sets every cell in mask to colour, in bulk.
func (b *Board) SetColorMask(colour hexcell.Colour, mask hexcell.Set) {
	mask.ForEach(func(c hexcell.Cell) { b.SetColor(c, colour) })
}

// PlayMove plays a stone of colour on cell, marking it played and
// updating the hash. Panics if the invariant Black∩White=∅ would be
// violated: invariant violations halt with a diagnostic.
func (b *Board) PlayMove(colour hexcell.Colour, c hexcell.Cell) {
	other := colour.Other()
	if (other == hexcell.Black && b.black.Has(c)) || (other == hexcell.White && b.white.Has(c)) {
		panic(fmt.Sprintf("stoneboard: PlayMove %s on cell already %s-coloured", c, other))
	}
	b.SetColor(c, colour)
	b.played = b.played.Add(c)
	b.hash ^= ZobristKey(colour, c)
}

// UndoMove removes a played stone, restoring the pre-play hash exactly.
func (b *Board) UndoMove(c hexcell.Cell) {
	if !b.played.Has(c) {
		panic("stoneboard: UndoMove on a cell that was not played")
	}
	colour := b.ColourAt(c)
	b.hash ^= ZobristKey(colour, c)
	b.black = b.black.Remove(c)
	b.white = b.white.Remove(c)
	b.played = b.played.Remove(c)
}

// StartNewGame clears the board then plays each of the four edges to
// its fixed colour, leaving exactly four played edge stones (spec
// §4.2).
func (b *Board) StartNewGame() {
	b.black = hexcell.Set{}
	b.white = hexcell.Set{}
	b.played = hexcell.Set{}
	b.hash = 0
	for _, edge := range []hexcell.Cell{hexcell.North, hexcell.South, hexcell.East, hexcell.West} {
		b.PlayMove(edge.EdgeColour(), edge)
	}
}

// WhoseTurn returns the colour whose played-interior count is smaller;
// Black plays first.
func (b *Board) WhoseTurn() hexcell.Colour {
	blackInterior := b.black.Intersect(b.played).Intersect(b.geo.Interior()).Count()
	whiteInterior := b.white.Intersect(b.played).Intersect(b.geo.Interior()).Count()
	if blackInterior <= whiteInterior {
		return hexcell.Black
	}
	return hexcell.White
}

// Validate checks the StoneBoard invariants: Black∩White=∅
// and every edge played in its fixed colour. Returns an error (invalid
// argument class) rather than panicking, since a caller may
// legitimately construct an inconsistent board while loading external
// data.
func (b *Board) Validate() error {
	if b.black.Intersects(b.white) {
		return fmt.Errorf("stoneboard: Black and White overlap")
	}
	for _, edge := range []hexcell.Cell{hexcell.North, hexcell.South, hexcell.East, hexcell.West} {
		if !b.played.Has(edge) || b.ColourAt(edge) != edge.EdgeColour() {
			return fmt.Errorf("stoneboard: edge %s not played in its fixed colour", edge)
		}
	}
	return nil
}

// BoardID packs interior cells into a byte representation using two
// bits per cell (Board-ID packing: 0=empty,1=black,2=white,
// 3=reserved), row-major, four cells per byte, trailing cells padded
// empty.
func (b *Board) BoardID() []byte {
	n := b.geo.Width * b.geo.Height
	out := make([]byte, (n+3)/4)
	for row := 0; row < b.geo.Height; row++ {
		for col := 0; col < b.geo.Width; col++ {
			idx := row*b.geo.Width + col
			c := hexcell.InteriorCell(b.geo.Width, col, row)
			var code byte
			switch b.ColourAt(c) {
			case hexcell.Black:
				code = 1
			case hexcell.White:
				code = 2
			}
			out[idx/4] |= code << uint((idx%4)*2)
		}
	}
	return out
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// Restore copies every field of snapshot into b in place, preserving
// b's identity for callers (GroupBoard, PatternEngine) that hold a
// pointer to it (UndoMove: "restore the StoneBoard").
func (b *Board) Restore(snapshot *Board) {
	*b = *snapshot
}
