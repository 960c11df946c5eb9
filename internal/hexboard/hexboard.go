// Package hexboard composes StoneBoard, GroupBoard, PatternEngine, the
// two colours' ConnectionSets and InferiorCells into the single object
// a Solver drives.
package hexboard

import (
	"github.com/hailam/hexvc/internal/boardgeom"
	"github.com/hailam/hexvc/internal/groupboard"
	"github.com/hailam/hexvc/internal/hexcell"
	"github.com/hailam/hexvc/internal/ice"
	"github.com/hailam/hexvc/internal/pattern"
	"github.com/hailam/hexvc/internal/stoneboard"
	"github.com/hailam/hexvc/internal/vc"
)

// EndgamePolicy controls whether a solid winning fill-in chain is kept
// or unwound after ComputeAll.
type EndgamePolicy int

const (
	// EndgameKeepFillin leaves a to-play win's captured fill-in chain
	// on the board.
	EndgameKeepFillin EndgamePolicy = iota
	// EndgameRemoveFillin unplays non-stone fill-in cells once to-play
	// has already won, so the search can still look for a shorter mate.
	EndgameRemoveFillin
)

// HistoryFrame is one PlayMove's undo record ("HexBoard history
// frame").
type HistoryFrame struct {
	Snapshot  *stoneboard.Board
	Inferior  *ice.Cells
	Move      hexcell.Cell
	Colour    hexcell.Colour
	BlackMark int
	WhiteMark int
}

// Board is the composed HexBoard.
type Board struct {
	SB  *stoneboard.Board
	GB  *groupboard.Board
	PE  *pattern.Engine
	ICE *ice.Engine

	Black *vc.Set
	White *vc.Set

	blackBuilder *vc.Builder
	whiteBuilder *vc.Builder

	Inferior *ice.Cells

	policy  EndgamePolicy
	history []HistoryFrame
}

// New builds a fresh HexBoard of the given size, with the edges played
// and no interior stones (StartNewGame).
func New(width, height int, patterns *pattern.PatternSets, policy EndgamePolicy) *Board {
	sb := stoneboard.New(width, height)
	sb.StartNewGame()
	gb := groupboard.New(sb)
	pe := pattern.NewEngine(sb.Geometry(), patterns)
	pe.Recompute(sb)
	return &Board{
		SB:           sb,
		GB:           gb,
		PE:           pe,
		ICE:          ice.NewEngine(pe),
		Black:        vc.NewSet(hexcell.Black, vc.DefaultSoftLimit),
		White:        vc.NewSet(hexcell.White, vc.DefaultSoftLimit),
		blackBuilder: vc.NewBuilder(hexcell.Black, vc.DefaultLimits()),
		whiteBuilder: vc.NewBuilder(hexcell.White, vc.DefaultLimits()),
		Inferior:     ice.New(),
		policy:       policy,
	}
}

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

func (b *Board) setOf(c hexcell.Colour) *vc.Set {
	if c == hexcell.Black {
		return b.Black
	}
	return b.White
}

// SetFor exposes colour's ConnectionSet, so a Solver can walk its lists
// for move ordering and terminal checks without reaching into Board's
// other internals.
func (b *Board) SetFor(c hexcell.Colour) *vc.Set { return b.setOf(c) }

func (b *Board) builderOf(c hexcell.Colour) *vc.Builder {
	if c == hexcell.Black {
		return b.blackBuilder
	}
	return b.whiteBuilder
}

// IsGameOver reports whether either colour has completed an edge-to-
// edge connection.
func (b *Board) IsGameOver() (over bool, winner hexcell.Colour) { return b.GB.IsGameOver() }

// ComputeAll rebuilds both colours' state from scratch for the given
// to-play colour: inferior-cell classification and fill-in, a static
// VC build for both colours, combinatorial decomposition to fixpoint,
// then the endgame fill-in policy.
func (b *Board) ComputeAll(toPlay hexcell.Colour) {
	b.history = nil
	b.Inferior = ice.New()
	b.ICE.ComputeInferiorCells(b.SB, b.GB, toPlay, b.Inferior)

	b.blackBuilder.BuildStatic(b.Black, b.GB)
	b.whiteBuilder.BuildStatic(b.White, b.GB)

	for b.decomposeStep(toPlay) {
	}

	b.applyEndgamePolicy(toPlay)
}

// PlayMove pushes a history frame, plays the stone, runs ICE fill-in
// for the opponent-to-move perspective, and incrementally updates both
// colours' connection sets with every cell that changed colour — the
// move itself plus any fill-in stones.
func (b *Board) PlayMove(colour hexcell.Colour, cell hexcell.Cell) {
	frame := HistoryFrame{
		Snapshot:  b.SB.Clone(),
		Inferior:  b.Inferior.Clone(),
		Move:      cell,
		Colour:    colour,
		BlackMark: b.Black.Mark(),
		WhiteMark: b.White.Mark(),
	}
	b.history = append(b.history, frame)

	beforeBlack, beforeWhite := b.SB.Black(), b.SB.White()

	b.SB.PlayMove(colour, cell)
	b.GB.Recompute()
	b.PE.Update(b.SB, cell)

	newInferior := ice.New()
	b.ICE.ComputeInferiorCells(b.SB, b.GB, colour.Other(), newInferior)
	b.Inferior = newInferior

	addedBlack := b.SB.Black().Diff(beforeBlack)
	addedWhite := b.SB.White().Diff(beforeWhite)

	b.blackBuilder.BuildIncremental(b.Black, b.GB, addedBlack, addedWhite)
	b.whiteBuilder.BuildIncremental(b.White, b.GB, addedWhite, addedBlack)
}

// UndoMove pops the most recent history frame, unwinds both colours'
// change logs to the recorded markers, and restores the StoneBoard and
// InferiorCells snapshot exactly.
func (b *Board) UndoMove() {
	n := len(b.history)
	if n == 0 {
		panic("hexboard: UndoMove with empty history")
	}
	frame := b.history[n-1]
	b.history = b.history[:n-1]

	b.Black.Undo(frame.BlackMark)
	b.White.Undo(frame.WhiteMark)
	b.Inferior = frame.Inferior
	b.SB.Restore(frame.Snapshot)
	b.GB.Recompute()
	b.PE.Recompute(b.SB)
}

// Mustplay returns the intersection of ¬c's winning semi carriers (the
// cells c must play on to prevent an immediate ¬c connection) and
// whether ¬c has any winning semi at all. hasThreat false means c is
// not forced to respond this move; hasThreat true with an empty
// mustplay means no single move blocks every threat, i.e. c has
// already lost.
func (b *Board) Mustplay(c hexcell.Colour) (mustplay hexcell.Set, hasThreat bool) {
	opp := c.Other()
	ea, eb := edgesFor(opp)
	all := b.setOf(opp).List(ea, eb, vc.Semi).All()
	if len(all) == 0 {
		return hexcell.Set{}, false
	}
	mp := all[0].Carrier
	for _, v := range all[1:] {
		mp = mp.Intersect(v.Carrier)
	}
	return mp, true
}

// WinningFull returns c's full connection between its own two edges, if
// any.
func (b *Board) WinningFull(c hexcell.Colour) (*vc.VC, bool) {
	ea, eb := edgesFor(c)
	return b.setOf(c).WinningFull(ea, eb)
}

func (b *Board) applyEndgamePolicy(toPlay hexcell.Colour) {
	if b.policy != EndgameRemoveFillin {
		return
	}
	over, winner := b.GB.IsGameOver()
	if !over || winner != toPlay {
		return
	}
	idx := colourIndex(toPlay)
	fillin := b.Inferior.Captured[idx].Union(b.Inferior.PermanentlyInferior[idx])
	fillin.ForEach(func(c hexcell.Cell) {
		if !b.SB.IsPlayed(c) {
			b.SB.SetColor(c, hexcell.Empty)
		}
	})
	b.GB.Recompute()
	fillin.ForEach(func(c hexcell.Cell) { b.PE.Update(b.SB, c) })
}

// emptyComponents labels every empty cell with its connected-component
// id under direct-neighbour adjacency, and returns each component's
// full cell-set by id.
func (b *Board) emptyComponents(geo *boardgeom.Geometry) (map[hexcell.Cell]int, map[int]hexcell.Set) {
	ids := map[hexcell.Cell]int{}
	groups := map[int]hexcell.Set{}
	next := 0
	for _, c := range geo.CellOrder() {
		if c.IsSpecial() || b.SB.ColourAt(c) != hexcell.Empty {
			continue
		}
		if _, ok := ids[c]; ok {
			continue
		}
		id := next
		next++
		queue := []hexcell.Cell{c}
		ids[c] = id
		groups[id] = groups[id].Add(c)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, n := range geo.DirectNeighbours(cur) {
				if n.IsSpecial() || b.SB.ColourAt(n) != hexcell.Empty {
					continue
				}
				if _, seen := ids[n]; seen {
					continue
				}
				ids[n] = id
				groups[id] = groups[id].Add(n)
				queue = append(queue, n)
			}
		}
	}
	return ids, groups
}

// decomposeStep finds one combinatorial decomposition: an
// opposite-colour group whose removal leaves to-play's opponent facing
// at least two empty regions each touching the group at two or more
// cells, where to-play already has a full connection confined to one
// region. On success it fills that region's carrier for to-play and
// reports true so the caller can loop; false means no decomposition
// was found this pass.
func (b *Board) decomposeStep(toPlay hexcell.Colour) bool {
	opp := toPlay.Other()
	geo := b.SB.Geometry()
	ids, groups := b.emptyComponents(geo)

	for _, g := range b.GB.Captains(opp) {
		members := b.GB.GroupMembers(g)
		touch := map[int]int{}
		members.ForEach(func(m hexcell.Cell) {
			for _, n := range geo.DirectNeighbours(m) {
				if n.IsSpecial() || b.SB.ColourAt(n) != hexcell.Empty {
					continue
				}
				touch[ids[n]]++
			}
		})
		var qualifying []hexcell.Set
		for id, count := range touch {
			if count >= 2 {
				qualifying = append(qualifying, groups[id])
			}
		}
		if len(qualifying) < 2 {
			continue
		}
		for _, region := range qualifying {
			if full, ok := b.findFullConfinedTo(toPlay, region); ok {
				b.fillCaptured(toPlay, full.Carrier)
				return true
			}
		}
	}
	return false
}

func (b *Board) findFullConfinedTo(colour hexcell.Colour, region hexcell.Set) (*vc.VC, bool) {
	set := b.setOf(colour)
	for _, k := range set.Keys() {
		if k.Kind != vc.Full {
			continue
		}
		for _, v := range set.List(k.X, k.Y, vc.Full).All() {
			if v.Carrier.Subset(region) {
				return v, true
			}
		}
	}
	return nil, false
}

func (b *Board) fillCaptured(colour hexcell.Colour, carrier hexcell.Set) {
	idx := colourIndex(colour)
	carrier.ForEach(func(c hexcell.Cell) {
		b.SB.SetColor(c, colour)
		b.Inferior.Captured[idx] = b.Inferior.Captured[idx].Add(c)
	})
	b.GB.Recompute()
	carrier.ForEach(func(c hexcell.Cell) { b.PE.Update(b.SB, c) })
	b.blackBuilder.BuildStatic(b.Black, b.GB)
	b.whiteBuilder.BuildStatic(b.White, b.GB)
}
