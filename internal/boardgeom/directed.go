package boardgeom

import "github.com/hailam/hexvc/internal/hexcell"

// DirectedNeighbour returns the single cell lying in direction dir
// (0=E,1=NE,2=N,3=W,4=SW,5=S) from c, substituting the appropriate edge
// when that direction runs off the board. Unlike DirectNeighbours (which
// deduplicates directions that collapse onto the same edge), this keeps
// the six-direction indexing the pattern engine's ring/slice godels
// depend on.
func (g *Geometry) DirectedNeighbour(c hexcell.Cell, dir int) hexcell.Cell {
	resolved := g.DirectedNeighbourAll(c, dir)
	if len(resolved) == 0 {
		return hexcell.NoCell
	}
	return resolved[0]
}

// DirectedNeighbourAll returns every cell lying in direction dir from c:
// normally one interior cell or edge, but at an obtuse corner one step
// past the board, the single ray position resolves to two edges at
// once (e.g. the NE neighbour of the top-right corner cell is
// simultaneously adjacent to North and East). Callers that fold colour
// information into a pattern match must consider all of them, not just
// the first.
func (g *Geometry) DirectedNeighbourAll(c hexcell.Cell, dir int) []hexcell.Cell {
	if c.IsEdge() {
		// Edges have no single well-defined directional neighbour; the
		// pattern engine never centres a ring/slice godel on an edge.
		return nil
	}
	a := g.toAxial(c)
	d := directions[dir]
	na := axial{a.dc + d.dc, a.dr + d.dr}
	return g.resolve(na)
}

// RayCell returns the cell at distance r along direction dir from c,
// substituting an edge if the ray runs off the board before reaching
// distance r.
func (g *Geometry) RayCell(c hexcell.Cell, dir, r int) hexcell.Cell {
	resolved := g.RayCellAll(c, dir, r)
	if len(resolved) == 0 {
		return hexcell.NoCell
	}
	return resolved[0]
}

// RayCellAll returns every cell at distance r along direction dir from
// c. Ordinarily this is a single cell, but a ray that lands exactly on
// an obtuse corner one step past the board resolves to both edges
// meeting there at once (see DirectedNeighbourAll).
func (g *Geometry) RayCellAll(c hexcell.Cell, dir, r int) []hexcell.Cell {
	if c.IsEdge() {
		return nil
	}
	a := g.toAxial(c)
	d := directions[dir]
	na := axial{a.dc + d.dc*r, a.dr + d.dr*r}
	return g.resolve(na)
}

// Opposite returns the direction index pointing the opposite way.
func Opposite(dir int) int { return (dir + 3) % 6 }
