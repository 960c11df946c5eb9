package solver

import (
	"github.com/hailam/hexvc/internal/hexboard"
	"github.com/hailam/hexvc/internal/hexcell"
)

// Resistance scores every cell touched by one of colour's connections
// by treating each VC's carrier as a unit conductor between its
// endpoints and summing the parallel conductances (1/size) of every
// carrier a cell belongs to, following Benzene's electrical-resistance
// move-ordering heuristic (Resistance.hpp). Used only to order
// candidate moves, never to prune them.
func Resistance(board *hexboard.Board, colour hexcell.Colour) map[hexcell.Cell]float64 {
	set := board.SetFor(colour)
	out := map[hexcell.Cell]float64{}
	for _, k := range set.Keys() {
		l := set.List(k.X, k.Y, k.Kind)
		for _, v := range l.All() {
			size := v.Size()
			if size == 0 {
				continue
			}
			conductance := 1.0 / float64(size)
			v.Carrier.ForEach(func(c hexcell.Cell) {
				out[c] += conductance
			})
		}
	}
	return out
}
