// Package vc implements the virtual-connection engine: VCs,
// ConnectionList, ConnectionSet and the ConnectionBuilder's base/AND/OR
// rules with incremental merge/shrink/upgrade.
package vc

import "github.com/hailam/hexvc/internal/hexcell"

// Type distinguishes a full connection (second-player strategy, no key)
// from a semi connection (first-player strategy, parameterised by a
// key move).
type Type int

const (
	Full Type = iota
	Semi
)

func (t Type) String() string {
	if t == Full {
		return "full"
	}
	return "semi"
}

// Rule records a VC's provenance.
type Rule int

const (
	RuleBase Rule = iota
	RuleAnd
	RuleOr
	RulePush
	RuleAll
)

// VC is one virtual connection between endpoint captains X <= Y (spec
// §3). Key is hexcell.NoCell for a full; for a semi, Key is always a
// member of Carrier.
type VC struct {
	X, Y      hexcell.Cell
	Kind      Type
	Key       hexcell.Cell
	Carrier   hexcell.Set
	Mustuse   hexcell.Set
	Rule      Rule
	Processed bool
}

func endpoints(x, y hexcell.Cell) (hexcell.Cell, hexcell.Cell) {
	if x <= y {
		return x, y
	}
	return y, x
}

// NewFull builds a full VC, normalising endpoint order.
func NewFull(x, y hexcell.Cell, carrier, mustuse hexcell.Set, rule Rule) *VC {
	x, y = endpoints(x, y)
	return &VC{X: x, Y: y, Kind: Full, Key: hexcell.NoCell, Carrier: carrier, Mustuse: mustuse, Rule: rule}
}

// NewSemi builds a semi VC keyed on key, normalising endpoint order.
func NewSemi(x, y, key hexcell.Cell, carrier, mustuse hexcell.Set, rule Rule) *VC {
	x, y = endpoints(x, y)
	return &VC{X: x, Y: y, Kind: Semi, Key: key, Carrier: carrier, Mustuse: mustuse, Rule: rule}
}

// Size is the VC's carrier cardinality.
func (v *VC) Size() int { return v.Carrier.Count() }

// lessVC gives ConnectionList its (size, key, carrier) total order
// (ConnectionList contract).
func lessVC(a, b *VC) bool {
	as, bs := a.Size(), b.Size()
	if as != bs {
		return as < bs
	}
	if a.Key != b.Key {
		return a.Key < b.Key
	}
	return a.Carrier.Less(b.Carrier)
}
