// Package groupboard implements the union-find over same-colour
// connected stones, and adjacency between groups.
package groupboard

import (
	"fmt"

	"github.com/hailam/hexvc/internal/hexcell"
	"github.com/hailam/hexvc/internal/stoneboard"
)

// Board is the union-find view of a StoneBoard. Every cell is its own
// captain until Recompute unions played same-colour neighbours.
// Opposite-colour and empty cells are always their own captain.
type Board struct {
	sb     *stoneboard.Board
	parent [hexcell.MaxCells]hexcell.Cell

	captainsCache map[hexcell.Colour][]hexcell.Cell
	membersCache  map[hexcell.Cell]hexcell.Set
	nbsCache      map[[2]hexcell.Cell]hexcell.Set
}

// New builds a GroupBoard over sb, performing an initial Recompute.
func New(sb *stoneboard.Board) *Board {
	g := &Board{sb: sb}
	g.Recompute()
	return g
}

func (g *Board) invalidate() {
	g.captainsCache = nil
	g.membersCache = nil
	g.nbsCache = nil
}

// Recompute rebuilds the union-find from scratch by scanning played
// stones and unioning adjacent same-colour cells (including edges).
func (g *Board) Recompute() {
	geo := g.sb.Geometry()
	for i := range g.parent {
		g.parent[i] = hexcell.Cell(i)
	}
	for _, c := range geo.CellOrder() {
		if c.IsSpecial() {
			continue
		}
		colour := g.sb.ColourAt(c)
		if colour == hexcell.Empty {
			continue
		}
		for _, n := range geo.DirectNeighbours(c) {
			if n.IsSpecial() {
				continue
			}
			if g.sb.ColourAt(n) == colour {
				g.union(c, n)
			}
		}
	}
	g.invalidate()
}

// find returns the captain of c, with path compression.
func (g *Board) find(c hexcell.Cell) hexcell.Cell {
	for g.parent[c] != c {
		g.parent[c] = g.parent[g.parent[c]]
		c = g.parent[c]
	}
	return c
}

// union merges the groups of a and b. Edges always remain captains; two
// opposite-colour edges merging is an invariant violation (
// "two opposite-colour edges cannot share a group") and panics per
// see Validate.
func (g *Board) union(a, b hexcell.Cell) {
	ra, rb := g.find(a), g.find(b)
	if ra == rb {
		return
	}
	raEdge, rbEdge := ra.IsEdge(), rb.IsEdge()
	if raEdge && rbEdge {
		if ra.EdgeColour() != rb.EdgeColour() {
			panic(fmt.Sprintf("groupboard: opposite-colour edges %s and %s share a group", ra, rb))
		}
		g.parent[rb] = ra
		return
	}
	if raEdge {
		g.parent[rb] = ra
		return
	}
	if rbEdge {
		g.parent[ra] = rb
		return
	}
	if ra < rb {
		g.parent[rb] = ra
	} else {
		g.parent[ra] = rb
	}
}

// Captain returns the union-find representative of c.
func (g *Board) Captain(c hexcell.Cell) hexcell.Cell { return g.find(c) }

// ColourAt exposes the underlying StoneBoard's colour for c, so callers
// (the VC builder) can classify a captain without importing stoneboard
// directly.
func (g *Board) ColourAt(c hexcell.Cell) hexcell.Colour { return g.sb.ColourAt(c) }

// CaptainizeBitset projects every cell of s to its captain, deduplicated.
func (g *Board) CaptainizeBitset(s hexcell.Set) hexcell.Set {
	var out hexcell.Set
	s.ForEach(func(c hexcell.Cell) { out = out.Add(g.find(c)) })
	return out
}

// Captains returns every distinct captain whose colour is one of the
// given colours (NumGroups / captain enumeration).
func (g *Board) Captains(colours ...hexcell.Colour) []hexcell.Cell {
	want := map[hexcell.Colour]bool{}
	for _, c := range colours {
		want[c] = true
	}
	key := hexcell.Colour(255)
	if len(colours) == 1 {
		key = colours[0]
	}
	if key != 255 {
		if cached, ok := g.captainsCache[key]; ok {
			return cached
		}
	}
	geo := g.sb.Geometry()
	seen := hexcell.Set{}
	var out []hexcell.Cell
	for _, c := range geo.CellOrder() {
		if c.IsSpecial() {
			continue
		}
		if !want[g.sb.ColourAt(c)] {
			continue
		}
		cap := g.find(c)
		if !seen.Has(cap) {
			seen = seen.Add(cap)
			out = append(out, cap)
		}
	}
	if key != 255 {
		if g.captainsCache == nil {
			g.captainsCache = map[hexcell.Colour][]hexcell.Cell{}
		}
		g.captainsCache[key] = out
	}
	return out
}

// NumGroups returns the number of distinct groups among the given
// colours.
func (g *Board) NumGroups(colours ...hexcell.Colour) int {
	return len(g.Captains(colours...))
}

// GroupMembers returns every cell whose captain is captain's captain.
func (g *Board) GroupMembers(cellInGroup hexcell.Cell) hexcell.Set {
	cap := g.find(cellInGroup)
	if g.membersCache == nil {
		g.membersCache = map[hexcell.Cell]hexcell.Set{}
	}
	if cached, ok := g.membersCache[cap]; ok {
		return cached
	}
	var members hexcell.Set
	for _, c := range g.sb.Geometry().CellOrder() {
		if c.IsSpecial() {
			continue
		}
		if g.find(c) == cap {
			members = members.Add(c)
		}
	}
	g.membersCache[cap] = members
	return members
}

// Nbs returns the set of captains of the given colour touching group's
// cells ("the set of opposite-or-empty captains touching
// this group").
func (g *Board) Nbs(group hexcell.Cell, colour hexcell.Colour) hexcell.Set {
	cap := g.find(group)
	ckey := [2]hexcell.Cell{cap, hexcell.Cell(colour)}
	if cached, ok := g.nbsCache[ckey]; ok {
		return cached
	}
	geo := g.sb.Geometry()
	members := g.GroupMembers(cap)
	var out hexcell.Set
	members.ForEach(func(c hexcell.Cell) {
		for _, n := range geo.DirectNeighbours(c) {
			if n.IsSpecial() {
				continue
			}
			if g.sb.ColourAt(n) != colour {
				continue
			}
			ncap := g.find(n)
			if ncap != cap {
				out = out.Add(ncap)
			}
		}
	})
	if g.nbsCache == nil {
		g.nbsCache = map[[2]hexcell.Cell]hexcell.Set{}
	}
	g.nbsCache[ckey] = out
	return out
}

// IsGameOver reports whether the two same-coloured edges share a
// captain, and if so which colour won.
func (g *Board) IsGameOver() (over bool, winner hexcell.Colour) {
	if g.find(hexcell.North) == g.find(hexcell.South) {
		return true, hexcell.Black
	}
	if g.find(hexcell.East) == g.find(hexcell.West) {
		return true, hexcell.White
	}
	return false, hexcell.Empty
}
