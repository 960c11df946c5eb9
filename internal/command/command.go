// Package command implements the line-oriented command surface an
// external collaborator drives the engine through: set/clear board,
// play/undo, request VC lists and mustplay, request fill-in, solve.
// The wire format follows the HTP dialect (Go Text Protocol lineage):
// one command per line, `=` prefixes a successful reply and `?` an
// error, each reply terminated by a blank line (grounded on
// src/htp/HtpUofAEngine.cpp's command names).
package command

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hailam/hexvc/internal/hexboard"
	"github.com/hailam/hexvc/internal/hexcell"
	"github.com/hailam/hexvc/internal/pattern"
	"github.com/hailam/hexvc/internal/solver"
	"github.com/hailam/hexvc/internal/vc"
)

// Engine holds the command surface's mutable state: the current
// HexBoard, whose turn it is, and the shared solver/pattern
// configuration used to rebuild a board on boardsize/clear_board.
type Engine struct {
	out io.Writer

	board  *hexboard.Board
	toPlay hexcell.Colour
	width  int
	height int

	patterns *pattern.PatternSets
	solve    *solver.Solver
	swap     *hexboard.SwapTable

	firstMove hexcell.Cell
}

// New creates a command Engine writing replies to out. swap may be nil
// to disable the should-swap query.
func New(out io.Writer, patterns *pattern.PatternSets, solve *solver.Solver, swap *hexboard.SwapTable) *Engine {
	e := &Engine{out: out, patterns: patterns, solve: solve, swap: swap}
	e.resize(11, 11)
	return e
}

func (e *Engine) resize(width, height int) {
	e.width, e.height = width, height
	e.board = hexboard.New(width, height, e.patterns, hexboard.EndgameKeepFillin)
	e.toPlay = hexcell.Black
	e.firstMove = hexcell.NoCell
	e.board.ComputeAll(e.toPlay)
}

// Run reads commands from in, one per line, until EOF or "quit" (spec
// §6).
func (e *Engine) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if e.dispatch(line) {
			return
		}
	}
}

// dispatch runs one command line, returning true if the session should
// stop.
func (e *Engine) dispatch(line string) (quit bool) {
	fields := strings.Fields(line)
	cmd := fields[0]
	args := fields[1:]

	switch cmd {
	case "quit":
		e.reply(true, "")
		return true
	case "boardsize":
		e.cmdBoardsize(args)
	case "clear_board":
		e.resize(e.width, e.height)
		e.reply(true, "")
	case "play":
		e.cmdPlay(args)
	case "undo":
		e.cmdUndo()
	case "showboard":
		e.cmdShowboard()
	case "compute-fillin":
		e.cmdComputeFillin(args)
	case "compute-inferior":
		e.cmdComputeInferior(args)
	case "vc-between-cells":
		e.cmdVCBetween(args)
	case "vc-get-mustplay":
		e.cmdMustplay(args)
	case "solve-state":
		e.cmdSolveState(args)
	case "should-swap":
		e.cmdShouldSwap()
	default:
		e.reply(false, fmt.Sprintf("unknown command %q", cmd))
	}
	return false
}

// reply writes one GTP-style response: "=" on success, "?" on failure,
// the payload, then a blank line.
func (e *Engine) reply(ok bool, payload string) {
	prefix := "="
	if !ok {
		prefix = "?"
	}
	if payload == "" {
		fmt.Fprintf(e.out, "%s\n\n", prefix)
		return
	}
	fmt.Fprintf(e.out, "%s %s\n\n", prefix, payload)
}

func parseColour(s string) (hexcell.Colour, error) {
	switch strings.ToLower(s) {
	case "black", "b":
		return hexcell.Black, nil
	case "white", "w":
		return hexcell.White, nil
	default:
		return hexcell.Empty, fmt.Errorf("invalid argument: unknown colour %q", s)
	}
}

func (e *Engine) cmdBoardsize(args []string) {
	if len(args) != 2 {
		e.reply(false, "invalid argument: boardsize requires W H")
		return
	}
	w, errW := strconv.Atoi(args[0])
	h, errH := strconv.Atoi(args[1])
	if errW != nil || errH != nil || w < 1 || h < 1 || w > hexcell.MaxWidth || h > hexcell.MaxHeight {
		e.reply(false, fmt.Sprintf("invalid argument: board size must be within 1..%d", hexcell.MaxWidth))
		return
	}
	e.resize(w, h)
	e.reply(true, "")
}

func (e *Engine) cmdPlay(args []string) {
	if len(args) != 2 {
		e.reply(false, "invalid argument: play requires COLOUR CELL")
		return
	}
	colour, err := parseColour(args[0])
	if err != nil {
		e.reply(false, err.Error())
		return
	}
	if over, _ := e.board.IsGameOver(); over {
		e.reply(false, "invalid argument: game already finished")
		return
	}
	cell, err := hexcell.ParseCell(args[1], e.width)
	if err != nil {
		e.reply(false, err.Error())
		return
	}
	if e.firstMove == hexcell.NoCell && !e.board.SB.IsPlayed(cell) {
		e.firstMove = cell
	}
	e.board.PlayMove(colour, cell)
	e.toPlay = colour.Other()
	e.reply(true, "")
}

// cmdShouldSwap answers whether the second player should invoke the
// swap-pieces special move given the first move played on this board
// size, per the loaded swap-moves file.
func (e *Engine) cmdShouldSwap() {
	if e.swap == nil {
		e.reply(true, "false")
		return
	}
	if e.firstMove == hexcell.NoCell {
		e.reply(false, "invalid argument: no move has been played yet")
		return
	}
	should := e.swap.ShouldSwap(e.width, e.height, e.firstMove)
	if should {
		e.reply(true, "true")
	} else {
		e.reply(true, "false")
	}
}

func (e *Engine) cmdUndo() {
	e.board.UndoMove()
	e.toPlay = e.toPlay.Other()
	e.reply(true, "")
}

func (e *Engine) cmdShowboard() {
	var b strings.Builder
	for row := 0; row < e.height; row++ {
		for col := 0; col < e.width; col++ {
			c := hexcell.InteriorCell(e.width, col, row)
			switch e.board.SB.ColourAt(c) {
			case hexcell.Black:
				b.WriteByte('B')
			case hexcell.White:
				b.WriteByte('W')
			default:
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	e.reply(true, "\n"+b.String())
}

func (e *Engine) cmdComputeFillin(args []string) {
	if len(args) != 1 {
		e.reply(false, "invalid argument: compute-fillin requires COLOUR")
		return
	}
	colour, err := parseColour(args[0])
	if err != nil {
		e.reply(false, err.Error())
		return
	}
	fillin := e.board.Inferior.FillinSet(colour)
	e.reply(true, e.cellsString(fillin))
}

func (e *Engine) cmdComputeInferior(args []string) {
	if len(args) != 1 {
		e.reply(false, "invalid argument: compute-inferior requires COLOUR")
		return
	}
	colour, err := parseColour(args[0])
	if err != nil {
		e.reply(false, err.Error())
		return
	}
	idx := 0
	if colour == hexcell.White {
		idx = 1
	}
	var b strings.Builder
	fmt.Fprintf(&b, "dead %s\n", e.cellsString(e.board.Inferior.Dead))
	fmt.Fprintf(&b, "captured %s\n", e.cellsString(e.board.Inferior.Captured[idx]))
	fmt.Fprintf(&b, "vulnerable %d\n", len(e.board.Inferior.Vulnerable[idx]))
	fmt.Fprintf(&b, "dominated %d", len(e.board.Inferior.ResolvedDominated[idx]))
	e.reply(true, b.String())
}

func (e *Engine) cmdVCBetween(args []string) {
	if len(args) != 3 {
		e.reply(false, "invalid argument: vc-between-cells requires X Y COLOUR")
		return
	}
	x, err := hexcell.ParseCell(args[0], e.width)
	if err != nil {
		e.reply(false, err.Error())
		return
	}
	y, err := hexcell.ParseCell(args[1], e.width)
	if err != nil {
		e.reply(false, err.Error())
		return
	}
	colour, err := parseColour(args[2])
	if err != nil {
		e.reply(false, err.Error())
		return
	}
	set := e.board.SetFor(colour)
	var b strings.Builder
	for _, v := range set.List(x, y, vc.Full).All() {
		fmt.Fprintf(&b, "full %s\n", e.cellsString(v.Carrier))
	}
	for _, v := range set.List(x, y, vc.Semi).All() {
		fmt.Fprintf(&b, "semi key=%s %s\n", v.Key.StringWidth(e.width), e.cellsString(v.Carrier))
	}
	e.reply(true, strings.TrimRight(b.String(), "\n"))
}

func (e *Engine) cmdMustplay(args []string) {
	if len(args) != 1 {
		e.reply(false, "invalid argument: vc-get-mustplay requires COLOUR")
		return
	}
	colour, err := parseColour(args[0])
	if err != nil {
		e.reply(false, err.Error())
		return
	}
	mp, hasThreat := e.board.Mustplay(colour)
	if !hasThreat {
		e.reply(true, "no-threat")
		return
	}
	e.reply(true, e.cellsString(mp))
}

func (e *Engine) cmdSolveState(args []string) {
	if len(args) < 1 {
		e.reply(false, "invalid argument: solve-state requires COLOUR")
		return
	}
	colour, err := parseColour(args[0])
	if err != nil {
		e.reply(false, err.Error())
		return
	}
	if e.solve == nil {
		e.reply(false, "resource limit: no solver configured")
		return
	}
	result, proof := e.solve.Solve(nil, e.board, colour, 0)
	e.reply(true, fmt.Sprintf("%s %s", result, e.cellsString(proof)))
}

func (e *Engine) cellsString(s hexcell.Set) string {
	cells := s.Cells()
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.StringWidth(e.width)
	}
	return strings.Join(parts, " ")
}
