package equity

import (
	"github.com/atout-engine/atout/belief"
	"github.com/atout-engine/atout/cards"
)

// HandPoints counts only the points in the searching player's own hand.
type HandPoints struct{}

func (HandPoints) Equity(s belief.State, leader int, trump cards.Suit) float64 {
	return float64(s.Hands[0].Points())
}

func (HandPoints) Name() string {
	return "hand-points"
}
