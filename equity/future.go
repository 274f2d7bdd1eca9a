package equity

import (
	"strconv"

	"github.com/atout-engine/atout/belief"
	"github.com/atout-engine/atout/cards"
)

// Future values the points still in play, of which the searching side is
// expected to take a share given by Ratio.
type Future struct {
	Ratio float64
}

func (f Future) Equity(s belief.State, leader int, trump cards.Suit) float64 {
	return float64(s.Union().Points()) * f.Ratio
}

func (f Future) Name() string {
	return "future:" + strconv.FormatFloat(f.Ratio, 'g', -1, 64)
}
