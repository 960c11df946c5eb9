// Package boardgeom computes and caches the static per-(width,height)
// tables every other package depends on: cell enumeration, neighbour
// rings by radius, rotation, mirror and distance.
package boardgeom

import (
	"fmt"
	"sync"

	"github.com/hailam/hexvc/internal/hexcell"
)

// MaxPatternRadius bounds the neighbourhood pattern matching can reach.
// Benzene-lineage engines pattern-match out to radius 3; any change here
// invalidates every stored pattern file and must be reflected in the
// pattern-file header.
const MaxPatternRadius = 3

// axial direction order: E, NE, N, W, SW, S. Offset coordinates (col,
// row) used for interior cells are themselves valid axial coordinates
// under this direction set.
type axial struct{ dc, dr int }

var directions = [6]axial{
	{1, 0},  // E
	{1, -1}, // NE
	{0, -1}, // N
	{-1, 0}, // W
	{-1, 1}, // SW
	{0, 1},  // S
}

// Geometry holds the static tables for one board size.
type Geometry struct {
	Width, Height int

	order        []hexcell.Cell // specials, edges, interior row-major
	interior     hexcell.Set
	edgesAndBody hexcell.Set // edges ∪ interior

	nbrCache map[hexcell.Cell][MaxPatternRadius + 1][]hexcell.Cell
}

var (
	cacheMu sync.Mutex
	cache   = map[[2]int]*Geometry{}
)

// Get returns the cached Geometry for (width, height), building it on
// first use.
func Get(width, height int) *Geometry {
	cacheMu.Lock()
	defer cacheMu.Unlock()
	key := [2]int{width, height}
	if g, ok := cache[key]; ok {
		return g
	}
	g := build(width, height)
	cache[key] = g
	return g
}

func build(width, height int) *Geometry {
	g := &Geometry{Width: width, Height: height, nbrCache: map[hexcell.Cell][MaxPatternRadius + 1][]hexcell.Cell{}}

	g.order = append(g.order, hexcell.Resign, hexcell.Swap, hexcell.North, hexcell.South, hexcell.East, hexcell.West)
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			c := hexcell.InteriorCell(width, col, row)
			g.order = append(g.order, c)
			g.interior = g.interior.Add(c)
			g.edgesAndBody = g.edgesAndBody.Add(c)
		}
	}
	g.edgesAndBody = g.edgesAndBody.Add(hexcell.North).Add(hexcell.South).Add(hexcell.East).Add(hexcell.West)
	return g
}

// CellOrder returns the canonical enumeration order of all valid
// identifiers for this board size.
func (g *Geometry) CellOrder() []hexcell.Cell { return g.order }

// Interior returns the bitset of interior cells.
func (g *Geometry) Interior() hexcell.Set { return g.interior }

// EdgesAndInterior returns the bitset of edges ∪ interior.
func (g *Geometry) EdgesAndInterior() hexcell.Set { return g.edgesAndBody }

// toAxial converts an interior cell to its axial coordinate.
func (g *Geometry) toAxial(c hexcell.Cell) axial {
	col, row := c.Coords(g.Width)
	return axial{col, row}
}

// edgesForOutOfBounds returns which board edge(s) an out-of-range axial
// coordinate resolves to. A coordinate resolves to two edges when it lies
// past the board in both row and column (beyond a corner): edges are neighbours
// of each of their row/column cells and of the two side-edges but not
// of the opposite edge.
func (g *Geometry) edgesForOutOfBounds(a axial) []hexcell.Cell {
	var out []hexcell.Cell
	if a.dr < 0 {
		out = append(out, hexcell.North)
	} else if a.dr >= g.Height {
		out = append(out, hexcell.South)
	}
	if a.dc < 0 {
		out = append(out, hexcell.West)
	} else if a.dc >= g.Width {
		out = append(out, hexcell.East)
	}
	return out
}

// resolve maps an axial coordinate to a Cell: an interior cell if in
// range, one or two edge cells if out of range by exactly the
// neighbour/ring step that produced it.
func (g *Geometry) resolve(a axial) []hexcell.Cell {
	if a.dc >= 0 && a.dc < g.Width && a.dr >= 0 && a.dr < g.Height {
		return []hexcell.Cell{hexcell.InteriorCell(g.Width, a.dc, a.dr)}
	}
	return g.edgesForOutOfBounds(a)
}

// direct returns the immediate (radius-1) neighbours of c, deduplicated,
// in a deterministic order.
func (g *Geometry) direct(c hexcell.Cell) []hexcell.Cell {
	if c.IsSpecial() {
		return nil
	}
	if c.IsEdge() {
		return g.edgeNeighbours(c)
	}
	a := g.toAxial(c)
	seen := hexcell.Set{}
	var out []hexcell.Cell
	for _, d := range directions {
		na := axial{a.dc + d.dc, a.dr + d.dr}
		for _, nc := range g.resolve(na) {
			if !seen.Has(nc) {
				seen = seen.Add(nc)
				out = append(out, nc)
			}
		}
	}
	return out
}

// edgeNeighbours returns the cells/edges adjacent to an edge cell: every
// cell in its row/column, and the two side edges, but not the opposite
// edge.
func (g *Geometry) edgeNeighbours(edge hexcell.Cell) []hexcell.Cell {
	var out []hexcell.Cell
	switch edge {
	case hexcell.North:
		for col := 0; col < g.Width; col++ {
			out = append(out, hexcell.InteriorCell(g.Width, col, 0))
		}
		out = append(out, hexcell.West, hexcell.East)
	case hexcell.South:
		for col := 0; col < g.Width; col++ {
			out = append(out, hexcell.InteriorCell(g.Width, col, g.Height-1))
		}
		out = append(out, hexcell.West, hexcell.East)
	case hexcell.West:
		for row := 0; row < g.Height; row++ {
			out = append(out, hexcell.InteriorCell(g.Width, 0, row))
		}
		out = append(out, hexcell.North, hexcell.South)
	case hexcell.East:
		for row := 0; row < g.Height; row++ {
			out = append(out, hexcell.InteriorCell(g.Width, g.Width-1, row))
		}
		out = append(out, hexcell.North, hexcell.South)
	}
	return out
}

// ring returns the axial coordinates at exactly hex-distance radius
// from center, spiralling through the six directions (E, NE, N, W, SW,
// S) starting at SW (index 4).
func ring(center axial, radius int) []axial {
	if radius == 0 {
		return []axial{center}
	}
	out := make([]axial, 0, 6*radius)
	cur := axial{center.dc + directions[4].dc*radius, center.dr + directions[4].dr*radius}
	for i := 0; i < 6; i++ {
		for step := 0; step < radius; step++ {
			out = append(out, cur)
			cur = axial{cur.dc + directions[i].dc, cur.dr + directions[i].dr}
		}
	}
	return out
}

// Neighbours returns the cells within hex-distance radius of c (rings
// 1..radius concatenated in spiral order), resolving off-board rings to
// their edge. radius must be in [1, MaxPatternRadius].
func (g *Geometry) Neighbours(c hexcell.Cell, radius int) []hexcell.Cell {
	if radius < 1 || radius > MaxPatternRadius {
		panic(fmt.Sprintf("boardgeom: radius %d out of [1,%d]", radius, MaxPatternRadius))
	}
	if cached, ok := g.nbrCache[c]; ok && cached[radius] != nil {
		return cached[radius]
	}
	if c.IsSpecial() {
		return nil
	}
	var all []hexcell.Cell
	if c.IsEdge() {
		// Edges only have a well-defined radius-1 neighbourhood; higher
		// radii are not used for edge-centred patterns.
		all = g.edgeNeighbours(c)
	} else {
		a := g.toAxial(c)
		seen := hexcell.Set{}
		for r := 1; r <= radius; r++ {
			for _, ra := range ring(a, r) {
				for _, nc := range g.resolve(ra) {
					if !seen.Has(nc) {
						seen = seen.Add(nc)
						all = append(all, nc)
					}
				}
			}
		}
	}
	entry := g.nbrCache[c]
	entry[radius] = all
	g.nbrCache[c] = entry
	return all
}

// DirectNeighbours returns the radius-1 neighbours of c (the common
// case used by GroupBoard and the VC base rule).
func (g *Geometry) DirectNeighbours(c hexcell.Cell) []hexcell.Cell {
	return g.direct(c)
}

// Rotate180 maps a cell to its 180-degree rotation about the board
// centre: N<->S, E<->W, interior (x,y) -> (W-1-x, H-1-y).
func (g *Geometry) Rotate180(c hexcell.Cell) hexcell.Cell {
	switch c {
	case hexcell.North:
		return hexcell.South
	case hexcell.South:
		return hexcell.North
	case hexcell.East:
		return hexcell.West
	case hexcell.West:
		return hexcell.East
	}
	if c.IsSpecial() {
		return c
	}
	col, row := c.Coords(g.Width)
	return hexcell.InteriorCell(g.Width, g.Width-1-col, g.Height-1-row)
}

// Mirror transposes the board about the acute diagonal; requires a
// square board.
func (g *Geometry) Mirror(c hexcell.Cell) hexcell.Cell {
	if g.Width != g.Height {
		panic("boardgeom: Mirror requires a square board")
	}
	switch c {
	case hexcell.North:
		return hexcell.West
	case hexcell.West:
		return hexcell.North
	case hexcell.South:
		return hexcell.East
	case hexcell.East:
		return hexcell.South
	}
	if c.IsSpecial() {
		return c
	}
	col, row := c.Coords(g.Width)
	return hexcell.InteriorCell(g.Width, row, col)
}

// Distance returns the hex grid-distance between two interior cells
// (used by move ordering and pattern radius checks).
func (g *Geometry) Distance(a, b hexcell.Cell) int {
	aa, ba := g.toAxial(a), g.toAxial(b)
	dq := aa.dc - ba.dc
	dr := aa.dr - ba.dr
	ds := -dq - dr
	return maxInt(abs(dq), maxInt(abs(dr), abs(ds)))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
