// Package equity holds the static evaluators used at the search horizon.
// Every evaluator scores a belief state from the searching player's side:
// positive values favour seats 0 and 2.
package equity

import (
	"github.com/atout-engine/atout/belief"
	"github.com/atout-engine/atout/cards"
)

// Heuristic estimates the value of a partial deal without searching it.
// Implementations must be pure: no state is kept between calls, so one
// value can be shared by concurrent searches.
type Heuristic interface {
	Equity(s belief.State, leader int, trump cards.Suit) float64
	Name() string
}

// ours reports whether a relative seat is on the searching partnership.
func ours(seat int) bool {
	return seat%2 == 0
}
