// Package solver implements the mustplay depth-first search that
// proves WIN or LOSS from a HexBoard position, with transposition
// table, persistent-DB leaf checks, proof shrinking, and move ordering
// by resistance and forced-reply size.
package solver

import (
	"context"
	"sort"

	"github.com/hailam/hexvc/internal/boardgeom"
	"github.com/hailam/hexvc/internal/groupboard"
	"github.com/hailam/hexvc/internal/hexboard"
	"github.com/hailam/hexvc/internal/hexcell"
	"github.com/hailam/hexvc/internal/ice"
	"github.com/hailam/hexvc/internal/pattern"
	"github.com/hailam/hexvc/internal/persist"
	"github.com/hailam/hexvc/internal/stoneboard"
	"github.com/hailam/hexvc/internal/vc"
)

// Result is the proved outcome of a search. Unknown means
// the search aborted (deadline, depth limit, or explicit Abort) before
// proving either side.
type Result int

const (
	Unknown Result = iota
	Win
	Loss
)

func (r Result) String() string {
	switch r {
	case Win:
		return "win"
	case Loss:
		return "loss"
	default:
		return "unknown"
	}
}

// Stats accumulates simple search counters, valid even on an aborted
// search.
type Stats struct {
	Nodes  int
	TTHits int
	DBHits int
}

// Solver runs the search over one HexBoard. The zero value
// is not usable; use NewSolver.
type Solver struct {
	TT          *TranspositionTable
	Prober      persist.Prober
	MaxDepth    int
	DBMaxStones int
	Stats       Stats

	aborted bool
}

// NewSolver creates a Solver. prober may be nil (or persist.NoopProber{})
// to disable persistent-DB leaf checks.
func NewSolver(tt *TranspositionTable, prober persist.Prober, maxDepth, dbMaxStones int) *Solver {
	return &Solver{TT: tt, Prober: prober, MaxDepth: maxDepth, DBMaxStones: dbMaxStones}
}

// Abort requests that the in-flight search return Unknown at its next
// opportunity ("abort flag"). The caller must not reuse board
// afterward; its history may be left mid-search.
func (s *Solver) Abort() { s.aborted = true }

func colourIndex(c hexcell.Colour) int {
	if c == hexcell.Black {
		return 0
	}
	return 1
}

func edgesFor(c hexcell.Colour) (hexcell.Cell, hexcell.Cell) {
	if c == hexcell.Black {
		return hexcell.North, hexcell.South
	}
	return hexcell.East, hexcell.West
}

func colourStones(board *hexboard.Board, c hexcell.Colour) hexcell.Set {
	if c == hexcell.Black {
		return board.SB.Black()
	}
	return board.SB.White()
}

func resultFor(winner, toPlay hexcell.Colour) Result {
	if winner == toPlay {
		return Win
	}
	return Loss
}

func ctxDone(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Solve proves WIN, LOSS, or UNKNOWN for toPlay from board's current
// position, following the search algorithm: terminal check, TT/DB
// leaf check, mustplay-reduced move generation with vulnerable-cell
// pruning, resistance-ordered search, and proof shrinking on the way
// back up.
func (s *Solver) Solve(ctx context.Context, board *hexboard.Board, toPlay hexcell.Colour, depth int) (Result, hexcell.Set) {
	s.Stats.Nodes++
	if s.aborted || depth > s.MaxDepth || ctxDone(ctx) {
		return Unknown, hexcell.Set{}
	}

	if full, ok := board.WinningFull(toPlay.Other()); ok {
		return Loss, full.Carrier.Union(colourStones(board, toPlay.Other()))
	}
	if semi, ok := ownWinningSemi(board, toPlay); ok {
		proof := semi.Carrier.Union(colourStones(board, toPlay)).Diff(board.Inferior.Dead)
		return Win, proof
	}

	key := board.SB.Hash()
	if s.TT != nil {
		if e, ok := s.TT.Probe(key); ok {
			s.Stats.TTHits++
			return resultFor(e.Winner, toPlay), e.Proof
		}
	}
	if s.Prober != nil && board.SB.Played().Count() <= s.DBMaxStones {
		boardID := board.SB.BoardID()
		if rec, ok := s.Prober.Probe(key, boardID, mirrorBoardID(board)); ok {
			s.Stats.DBHits++
			return resultFor(rec.Winner, toPlay), rec.Proof
		}
	}

	mustplay, hasThreat := board.Mustplay(toPlay)
	removed := removedFromConsideration(board)
	var consider hexcell.Set
	if hasThreat {
		consider = mustplay.Diff(removed)
	} else {
		geo := board.SB.Geometry()
		consider = geo.Interior().Diff(board.SB.Black()).Diff(board.SB.White()).Diff(removed)
	}
	consider, accumulated := applyVulnerablePruning(board, toPlay, consider)
	var dominatedExtra hexcell.Set
	consider, dominatedExtra = applyDominatedPruning(board, toPlay, consider)
	accumulated = accumulated.Union(dominatedExtra)

	moves := s.orderMoves(board, toPlay, consider)

	// A position that is its own 180-degree rotation (the empty board,
	// before either player has moved) has a symmetric sibling for every
	// move: m and Rotate180(m) lead to positions that are rotations of
	// each other, so whichever is searched first settles both.
	// rotatedAlias records the already-rotated
	// proof for a move not yet reached in the loop, so its sibling
	// subtree is never searched, and mirrors the result into the TT
	// under the sibling's own hash.
	geo := board.SB.Geometry()
	symmetric := boardIsSelfSymmetric(board)
	rotatedAlias := map[hexcell.Cell]hexcell.Set{}

	for _, m := range moves {
		if symmetric {
			if proof, ok := rotatedAlias[m]; ok {
				accumulated = accumulated.Union(proof)
				continue
			}
		}
		board.PlayMove(toPlay, m)
		childResult, childProof := s.Solve(ctx, board, toPlay.Other(), depth+1)
		board.UndoMove()

		if childResult == Unknown {
			return Unknown, hexcell.Set{}
		}
		if childResult == Loss {
			win := s.shrinkProof(board, toPlay, childProof.Union(hexcell.Of(m)))
			if s.TT != nil {
				s.TT.Store(key, TTEntry{Winner: toPlay, Proof: win, BestMove: m, Depth: depth})
			}
			return Win, win
		}
		accumulated = accumulated.Union(childProof)

		if symmetric {
			if rm := geo.Rotate180(m); rm != m {
				rotated := rotateCarrier(geo, childProof)
				rotatedAlias[rm] = rotated
				if s.TT != nil {
					board.PlayMove(toPlay, rm)
					rmKey := board.SB.Hash()
					board.UndoMove()
					s.TT.Store(rmKey, TTEntry{Winner: toPlay.Other(), Proof: rotated, Depth: depth + 1})
				}
			}
		}
	}

	winner := toPlay.Other()
	final := s.shrinkProof(board, winner, accumulated)
	if s.TT != nil {
		s.TT.Store(key, TTEntry{Winner: winner, Proof: final, Depth: depth})
	}
	return Loss, final
}

func ownWinningSemi(board *hexboard.Board, c hexcell.Colour) (*vc.VC, bool) {
	ea, eb := edgesFor(c)
	all := board.SetFor(c).List(ea, eb, vc.Semi).All()
	if len(all) == 0 {
		return nil, false
	}
	return all[0], true
}

// removedFromConsideration is the union of cells the solver never
// needs to try as a move because ICE has already classified them as
// strictly inferior for everyone. Dominated cells
// are handled separately by applyDominatedPruning, which also folds
// the resolved killer into the proof.
func removedFromConsideration(board *hexboard.Board) hexcell.Set {
	ic := board.Inferior
	return ic.Dead.Union(ic.Captured[0]).Union(ic.Captured[1]).
		Union(ic.PermanentlyInferior[0]).Union(ic.PermanentlyInferior[1])
}

// applyDominatedPruning drops every cell of consider that is Dominated
// for toPlay, folding each one's resolved killer (SCC
// resolution) into the proof: a cyclic domination chain is answered by
// its single kept representative, not the possibly-cyclic immediate
// killer recorded in Dominated.
func applyDominatedPruning(board *hexboard.Board, toPlay hexcell.Colour, consider hexcell.Set) (hexcell.Set, hexcell.Set) {
	idx := colourIndex(toPlay)
	reduced := consider
	var extra hexcell.Set
	consider.ForEach(func(cell hexcell.Cell) {
		killer, ok := board.Inferior.ResolvedDominated[idx][cell]
		if !ok {
			return
		}
		reduced = reduced.Remove(cell)
		extra = extra.Add(killer)
	})
	return reduced, extra
}

// applyVulnerablePruning drops every cell of consider that is
// Vulnerable for toPlay, each time folding its smallest-carrier killer
// into the proof that justifies skipping it.
func applyVulnerablePruning(board *hexboard.Board, toPlay hexcell.Colour, consider hexcell.Set) (hexcell.Set, hexcell.Set) {
	idx := colourIndex(toPlay)
	reduced := consider
	var extra hexcell.Set
	consider.ForEach(func(cell hexcell.Cell) {
		killers, ok := board.Inferior.Vulnerable[idx][cell]
		if !ok || len(killers) == 0 {
			return
		}
		best := killers[0]
		for _, k := range killers[1:] {
			if k.Carrier.Count() < best.Carrier.Count() {
				best = k
			}
		}
		reduced = reduced.Remove(cell)
		extra = extra.Add(best.Killer).Union(best.Carrier)
	})
	return reduced, extra
}

// orderMoves scores each candidate by the mustplay size it leaves the
// opponent (fewer forced replies first) and breaks ties by resistance.
func (s *Solver) orderMoves(board *hexboard.Board, toPlay hexcell.Colour, consider hexcell.Set) []hexcell.Cell {
	type scored struct {
		cell         hexcell.Cell
		mustplaySize int
		resistance   float64
	}
	res := Resistance(board, toPlay)
	var scoredMoves []scored
	consider.ForEach(func(cell hexcell.Cell) {
		board.PlayMove(toPlay, cell)
		mp, _ := board.Mustplay(toPlay.Other())
		board.UndoMove()
		scoredMoves = append(scoredMoves, scored{cell, mp.Count(), res[cell]})
	})
	sort.Slice(scoredMoves, func(i, j int) bool {
		if scoredMoves[i].mustplaySize != scoredMoves[j].mustplaySize {
			return scoredMoves[i].mustplaySize < scoredMoves[j].mustplaySize
		}
		return scoredMoves[i].resistance > scoredMoves[j].resistance
	})
	out := make([]hexcell.Cell, len(scoredMoves))
	for i, sm := range scoredMoves {
		out[i] = sm.cell
	}
	return out
}

// boardIsSelfSymmetric reports whether board's position is unchanged
// under 180-degree rotation, i.e. every interior cell has the same
// colour as its rotated image. True for the empty board; false as soon
// as any asymmetric move has been played.
func boardIsSelfSymmetric(board *hexboard.Board) bool {
	geo := board.SB.Geometry()
	symmetric := true
	geo.Interior().ForEach(func(c hexcell.Cell) {
		if symmetric && board.SB.ColourAt(c) != board.SB.ColourAt(geo.Rotate180(c)) {
			symmetric = false
		}
	})
	return symmetric
}

// rotateCarrier maps every cell of a carrier through Rotate180.
func rotateCarrier(geo *boardgeom.Geometry, carrier hexcell.Set) hexcell.Set {
	var out hexcell.Set
	carrier.ForEach(func(c hexcell.Cell) {
		out = out.Add(geo.Rotate180(c))
	})
	return out
}

// mirrorBoardID returns board's diagonal-mirror Board-ID, or nil for a
// non-square board where Mirror is undefined.
func mirrorBoardID(board *hexboard.Board) []byte {
	geo := board.SB.Geometry()
	if geo.Width != geo.Height {
		return nil
	}
	mirrored := stoneboard.New(geo.Width, geo.Height)
	geo.Interior().ForEach(func(c hexcell.Cell) {
		col := board.SB.ColourAt(c)
		if col != hexcell.Empty {
			mirrored.SetColor(geo.Mirror(c), col)
		}
	})
	return mirrored.BoardID()
}

// shrinkProof gives the loser every cell
// outside proof, run ICE fill-in for loser, drop any proof cell that
// fill-in now classifies Dead or Captured[loser] or
// PermanentlyInferior[loser], then restrict to the subset reachable
// between winner's two edges through what remains.
func (s *Solver) shrinkProof(board *hexboard.Board, winner hexcell.Colour, proof hexcell.Set) hexcell.Set {
	loser := winner.Other()
	geo := board.SB.Geometry()

	sbCopy := stoneboard.New(geo.Width, geo.Height)
	sbCopy.StartNewGame()
	geo.Interior().Diff(proof).ForEach(func(c hexcell.Cell) {
		sbCopy.SetColor(c, loser)
	})
	gbCopy := groupboard.New(sbCopy)
	peCopy := pattern.NewEngine(geo, board.PE.Sets())
	peCopy.Recompute(sbCopy)
	iceCopy := ice.NewEngine(peCopy)
	out := ice.New()
	iceCopy.ComputeFillin(sbCopy, gbCopy, loser, out)

	idx := colourIndex(loser)
	filled := out.Dead.Union(out.Captured[idx]).Union(out.PermanentlyInferior[idx])
	shrunk := proof.Diff(filled)

	ea, eb := edgesFor(winner)
	return restrictToReachable(geo, shrunk, ea, eb)
}

// restrictToReachable keeps only the cells of carrier on a path from
// ea to eb through carrier (plus ea, eb themselves), dropping any
// disconnected leftover.
func restrictToReachable(geo *boardgeom.Geometry, carrier hexcell.Set, ea, eb hexcell.Cell) hexcell.Set {
	visited := hexcell.Of(ea)
	queue := []hexcell.Cell{ea}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range geo.DirectNeighbours(cur) {
			if n.IsSpecial() || visited.Has(n) {
				continue
			}
			if n != eb && !carrier.Has(n) {
				continue
			}
			visited = visited.Add(n)
			queue = append(queue, n)
		}
	}
	if !visited.Has(eb) {
		return carrier
	}
	return visited.Intersect(carrier)
}
