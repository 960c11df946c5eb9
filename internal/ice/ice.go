// Package ice implements the ICEngine: dead/captured/dominated/
// vulnerable cell classification and fill-in to fixpoint.
package ice

import (
	"github.com/hailam/hexvc/internal/groupboard"
	"github.com/hailam/hexvc/internal/hexcell"
	"github.com/hailam/hexvc/internal/pattern"
	"github.com/hailam/hexvc/internal/stoneboard"
)

// Killer pairs a replacing cell with the carrier that must stay empty
// for the replacement to be valid.
type Killer struct {
	Killer  hexcell.Cell
	Carrier hexcell.Set
}

func colourIndex(c hexcell.Colour) int {
	if c == hexcell.Black {
		return 0
	}
	return 1
}

// Cells is the per-colour classification of every empty cell.
type Cells struct {
	Dead                 hexcell.Set
	Captured             [2]hexcell.Set
	PermanentlyInferior  [2]hexcell.Set
	PermInferiorCarrier  [2]map[hexcell.Cell]hexcell.Set
	Vulnerable           [2]map[hexcell.Cell][]Killer
	Dominated            [2]map[hexcell.Cell]Killer
	ResolvedDominated    [2]map[hexcell.Cell]hexcell.Cell
}

// New returns an empty classification.
func New() *Cells {
	return &Cells{
		PermInferiorCarrier: [2]map[hexcell.Cell]hexcell.Set{{}, {}},
		Vulnerable:          [2]map[hexcell.Cell][]Killer{{}, {}},
		Dominated:           [2]map[hexcell.Cell]Killer{{}, {}},
		ResolvedDominated:   [2]map[hexcell.Cell]hexcell.Cell{{}, {}},
	}
}

// FillinSet returns Captured[c] ∪ PermanentlyInferior[c].
func (ic *Cells) FillinSet(c hexcell.Colour) hexcell.Set {
	return ic.Captured[colourIndex(c)].Union(ic.PermanentlyInferior[colourIndex(c)])
}

// Clone deep-copies ic, used for HexBoard history frames.
func (ic *Cells) Clone() *Cells {
	cp := &Cells{Dead: ic.Dead, Captured: ic.Captured, PermanentlyInferior: ic.PermanentlyInferior}
	for i := 0; i < 2; i++ {
		cp.PermInferiorCarrier[i] = cloneSetMap(ic.PermInferiorCarrier[i])
		cp.Vulnerable[i] = cloneKillerMap(ic.Vulnerable[i])
		cp.Dominated[i] = cloneSingleKillerMap(ic.Dominated[i])
		cp.ResolvedDominated[i] = cloneCellMap(ic.ResolvedDominated[i])
	}
	return cp
}

func cloneSetMap(m map[hexcell.Cell]hexcell.Set) map[hexcell.Cell]hexcell.Set {
	out := make(map[hexcell.Cell]hexcell.Set, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneKillerMap(m map[hexcell.Cell][]Killer) map[hexcell.Cell][]Killer {
	out := make(map[hexcell.Cell][]Killer, len(m))
	for k, v := range m {
		cp := make([]Killer, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

func cloneSingleKillerMap(m map[hexcell.Cell]Killer) map[hexcell.Cell]Killer {
	out := make(map[hexcell.Cell]Killer, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneCellMap(m map[hexcell.Cell]hexcell.Cell) map[hexcell.Cell]hexcell.Cell {
	out := make(map[hexcell.Cell]hexcell.Cell, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Engine runs ICE classification against a PatternEngine.
type Engine struct {
	pat *pattern.Engine
}

// NewEngine wraps a pattern.Engine for classification use.
func NewEngine(pat *pattern.Engine) *Engine { return &Engine{pat: pat} }

func emptyCells(sb *stoneboard.Board) []hexcell.Cell {
	var out []hexcell.Cell
	for _, c := range sb.Geometry().CellOrder() {
		if c.IsSpecial() || c.IsEdge() {
			continue
		}
		if sb.ColourAt(c) == hexcell.Empty {
			out = append(out, c)
		}
	}
	return out
}

// playFillin colours cell for colour without marking it played, so it
// does not contribute to the position hash, then refreshes the group
// board and pattern engine to reflect it.
func playFillin(sb *stoneboard.Board, gb *groupboard.Board, pe *pattern.Engine, cell hexcell.Cell, colour hexcell.Colour) {
	sb.SetColor(cell, colour)
	gb.Recompute()
	if pe != nil {
		pe.Update(sb, cell)
	}
}

// ComputeFillin runs the dead/captured passes to fixpoint, then the
// presimplicial and unreachable-region passes once.
func (e *Engine) ComputeFillin(sb *stoneboard.Board, gb *groupboard.Board, c hexcell.Colour, out *Cells) {
	for {
		changed := false
		for _, cell := range emptyCells(sb) {
			if out.Dead.Has(cell) {
				continue
			}
			if len(e.pat.MatchAt(sb, cell, pattern.TypeDead)) > 0 {
				out.Dead = out.Dead.Add(cell)
				changed = true
			}
		}
		for _, col := range [2]hexcell.Colour{c, c.Other()} {
			idx := colourIndex(col)
			for _, cell := range emptyCells(sb) {
				if out.Dead.Has(cell) || out.Captured[idx].Has(cell) {
					continue
				}
				if len(e.pat.MatchAtColour(sb, cell, pattern.TypeCaptured, col)) > 0 {
					out.Captured[idx] = out.Captured[idx].Add(cell)
					playFillin(sb, gb, e.pat, cell, col)
					changed = true
				}
			}
		}
		for _, col := range [2]hexcell.Colour{c, c.Other()} {
			idx := colourIndex(col)
			for _, cell := range emptyCells(sb) {
				if out.Dead.Has(cell) || out.Captured[idx].Has(cell) || out.PermanentlyInferior[idx].Has(cell) {
					continue
				}
				matches := e.pat.MatchAtColour(sb, cell, pattern.TypePermanentlyInferior, col)
				if len(matches) == 0 {
					continue
				}
				out.PermanentlyInferior[idx] = out.PermanentlyInferior[idx].Add(cell)
				out.PermInferiorCarrier[idx][cell] = matches[0].Marked1
				playFillin(sb, gb, e.pat, cell, col)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
	e.presimplicial(sb, gb, c, out)
	e.unreachableRegions(sb, gb, c, out)
}

// presimplicial finds simplicial cells: a cell x whose stone
// neighbours form a clique of size <=6, possibly after excluding one
// neighbour, is simplicial; a monochromatic clique captures x for that
// colour, a mixed clique kills x outright (colour-independent).
func (e *Engine) presimplicial(sb *stoneboard.Board, gb *groupboard.Board, c hexcell.Colour, out *Cells) {
	geo := sb.Geometry()
	for {
		progressed := false
		for _, x := range emptyCells(sb) {
			if out.Dead.Has(x) || out.Captured[0].Has(x) || out.Captured[1].Has(x) || out.PermanentlyInferior[0].Has(x) || out.PermanentlyInferior[1].Has(x) {
				continue
			}
			var stones []hexcell.Cell
			for _, n := range geo.DirectNeighbours(x) {
				if !n.IsSpecial() && sb.ColourAt(n) != hexcell.Empty {
					stones = append(stones, n)
				}
			}
			if len(stones) == 0 || len(stones) > 7 {
				continue
			}
			candidates := [][]hexcell.Cell{stones}
			for i := range stones {
				without := make([]hexcell.Cell, 0, len(stones)-1)
				without = append(without, stones[:i]...)
				without = append(without, stones[i+1:]...)
				candidates = append(candidates, without)
			}
			for _, cand := range candidates {
				if len(cand) == 0 || len(cand) > 6 || !isClique(geo, cand) {
					continue
				}
				colourSeen := map[hexcell.Colour]bool{}
				for _, s := range cand {
					colourSeen[sb.ColourAt(s)] = true
				}
				if len(colourSeen) == 1 {
					var only hexcell.Colour
					for k := range colourSeen {
						only = k
					}
					idx := colourIndex(only)
					out.Captured[idx] = out.Captured[idx].Add(x)
					playFillin(sb, gb, e.pat, x, only)
				} else {
					out.Dead = out.Dead.Add(x)
				}
				progressed = true
				break
			}
			if progressed {
				break
			}
		}
		if !progressed {
			return
		}
	}
}

// isClique reports whether every pair of cells in group is mutually a
// direct neighbour.
func isClique(geo interface {
	DirectNeighbours(hexcell.Cell) []hexcell.Cell
}, group []hexcell.Cell) bool {
	adj := func(a, b hexcell.Cell) bool {
		for _, n := range geo.DirectNeighbours(a) {
			if n == b {
				return true
			}
		}
		return false
	}
	for i := 0; i < len(group); i++ {
		for j := i + 1; j < len(group); j++ {
			if !adj(group[i], group[j]) {
				return false
			}
		}
	}
	return true
}

// unreachableRegions finds cells cut off from one edge: empty cells not
// reachable from c's edges through c-and-empty cells are captured for
// ¬c, or dead if also unreachable from ¬c's edges.
func (e *Engine) unreachableRegions(sb *stoneboard.Board, gb *groupboard.Board, c hexcell.Colour, out *Cells) {
	cEdges := edgesFor(c)
	oEdges := edgesFor(c.Other())
	cReach := reachable(sb, cEdges, c)
	oReach := reachable(sb, oEdges, c.Other())
	for _, x := range emptyCells(sb) {
		if out.Dead.Has(x) || out.Captured[0].Has(x) || out.Captured[1].Has(x) || out.PermanentlyInferior[0].Has(x) || out.PermanentlyInferior[1].Has(x) {
			continue
		}
		if cReach.Has(x) {
			continue
		}
		if !oReach.Has(x) {
			out.Dead = out.Dead.Add(x)
			continue
		}
		idx := colourIndex(c.Other())
		out.Captured[idx] = out.Captured[idx].Add(x)
		playFillin(sb, gb, e.pat, x, c.Other())
	}
}

func edgesFor(c hexcell.Colour) [2]hexcell.Cell {
	if c == hexcell.Black {
		return [2]hexcell.Cell{hexcell.North, hexcell.South}
	}
	return [2]hexcell.Cell{hexcell.East, hexcell.West}
}

// reachable returns every empty or colour-coloured cell reachable from
// either of edges through cells coloured colour-or-empty.
func reachable(sb *stoneboard.Board, edges [2]hexcell.Cell, colour hexcell.Colour) hexcell.Set {
	geo := sb.Geometry()
	var visited hexcell.Set
	queue := append([]hexcell.Cell{}, edges[0], edges[1])
	visited = visited.Add(edges[0]).Add(edges[1])
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range geo.DirectNeighbours(cur) {
			if n.IsSpecial() || visited.Has(n) {
				continue
			}
			col := sb.ColourAt(n)
			if n.IsEdge() {
				if n.EdgeColour() != colour {
					continue
				}
			} else if col != hexcell.Empty && col != colour {
				continue
			}
			visited = visited.Add(n)
			queue = append(queue, n)
		}
	}
	return visited
}

// FindVulnerable matches vulnerable patterns over consider, recording a
// killer+carrier pair per hit.
func (e *Engine) FindVulnerable(sb *stoneboard.Board, c hexcell.Colour, consider hexcell.Set, out *Cells) {
	idx := colourIndex(c)
	consider.ForEach(func(cell hexcell.Cell) {
		for _, m := range e.pat.MatchAtColour(sb, cell, pattern.TypeVulnerable, c) {
			killerCell := hexcell.NoCell
			m.Marked2.ForEach(func(k hexcell.Cell) {
				if killerCell == hexcell.NoCell {
					killerCell = k
				}
			})
			if killerCell == hexcell.NoCell {
				continue
			}
			_ = m.Pattern
			out.Vulnerable[idx][cell] = append(out.Vulnerable[idx][cell], Killer{Killer: killerCell, Carrier: m.Marked1})
		}
	})
}

// FindDominated matches dominated patterns over consider, recording a
// single killer per hit.
func (e *Engine) FindDominated(sb *stoneboard.Board, c hexcell.Colour, consider hexcell.Set, out *Cells) {
	idx := colourIndex(c)
	consider.ForEach(func(cell hexcell.Cell) {
		matches := e.pat.MatchAtColour(sb, cell, pattern.TypeDominated, c)
		if len(matches) == 0 {
			return
		}
		killerCell := hexcell.NoCell
		matches[0].Marked2.ForEach(func(k hexcell.Cell) {
			if killerCell == hexcell.NoCell {
				killerCell = k
			}
		})
		if killerCell != hexcell.NoCell {
			if existing, ok := out.Dominated[idx][cell]; !ok || existing.Killer != killerCell {
				out.Dominated[idx][cell] = Killer{Killer: killerCell}
			}
		}
	})
	out.ResolvedDominated[idx] = resolveSCC(out.Dominated[idx])
}

// ComputeInferiorCells composes fill-in then domination analysis on
// what remains.
func (e *Engine) ComputeInferiorCells(sb *stoneboard.Board, gb *groupboard.Board, c hexcell.Colour, out *Cells) {
	e.ComputeFillin(sb, gb, c, out)
	var remaining hexcell.Set
	for _, cell := range emptyCells(sb) {
		remaining = remaining.Add(cell)
	}
	e.FindVulnerable(sb, hexcell.Black, remaining, out)
	e.FindVulnerable(sb, hexcell.White, remaining, out)
	e.FindDominated(sb, hexcell.Black, remaining, out)
	e.FindDominated(sb, hexcell.White, remaining, out)
}

// resolveSCC collapses cyclic domination graphs: each
// strongly-connected component keeps one arbitrary (smallest-id)
// representative so that the reduced graph is acyclic and every node
// transitively points to a kept cell, instead of the legacy
// iterative-removal control flow.
func resolveSCC(dominated map[hexcell.Cell]Killer) map[hexcell.Cell]hexcell.Cell {
	// Tarjan's algorithm over the functional graph x -> killer(x).
	index := map[hexcell.Cell]int{}
	lowlink := map[hexcell.Cell]int{}
	onStack := map[hexcell.Cell]bool{}
	var stack []hexcell.Cell
	counter := 0
	comps := map[hexcell.Cell]int{}
	compNodes := [][]hexcell.Cell{}

	var nodes []hexcell.Cell
	for n := range dominated {
		nodes = append(nodes, n)
	}

	var strongconnect func(v hexcell.Cell)
	strongconnect = func(v hexcell.Cell) {
		index[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		if k, ok := dominated[v]; ok {
			w := k.Killer
			if _, visited := index[w]; !visited {
				if _, hasEdge := dominated[w]; hasEdge {
					strongconnect(w)
					if lowlink[w] < lowlink[v] {
						lowlink[v] = lowlink[w]
					}
				}
			} else if onStack[w] {
				if index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
		}

		if lowlink[v] == index[v] {
			var comp []hexcell.Cell
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			id := len(compNodes)
			compNodes = append(compNodes, comp)
			for _, w := range comp {
				comps[w] = id
			}
		}
	}

	for _, n := range nodes {
		if _, visited := index[n]; !visited {
			strongconnect(n)
		}
	}

	rep := map[int]hexcell.Cell{}
	for id, comp := range compNodes {
		best := comp[0]
		for _, c := range comp[1:] {
			if c < best {
				best = c
			}
		}
		rep[id] = best
	}

	resolved := map[hexcell.Cell]hexcell.Cell{}
	var finalOf func(hexcell.Cell, map[hexcell.Cell]bool) hexcell.Cell
	finalOf = func(c hexcell.Cell, seen map[hexcell.Cell]bool) hexcell.Cell {
		id, inGraph := comps[c]
		if !inGraph {
			return c
		}
		repCell := rep[id]
		if repCell == c {
			return c
		}
		if seen[c] {
			return repCell // guard against re-entering a cycle
		}
		seen[c] = true
		return finalOf(repCell, seen)
	}
	for _, n := range nodes {
		resolved[n] = finalOf(n, map[hexcell.Cell]bool{})
	}
	return resolved
}
