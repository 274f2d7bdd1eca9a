package equity

import (
	"github.com/atout-engine/atout/belief"
	"github.com/atout-engine/atout/cards"
)

// BestCard credits each suit's remaining points to whoever may hold that
// suit's highest remaining card. When several seats might hold it the
// credit is split evenly between them. The result is our share minus theirs.
type BestCard struct{}

func (BestCard) Equity(s belief.State, leader int, trump cards.Suit) float64 {
	remaining := s.Union()
	var us, them float64
	for suit := cards.Hearts; suit < cards.NoSuit; suit++ {
		inSuit := remaining.Intersect(cards.SuitMask(suit))
		top, ok := inSuit.First()
		if !ok {
			continue
		}
		pts := float64(inSuit.Points())
		if pts == 0 {
			continue
		}
		holders, ourHolders := 0, 0
		for seat, h := range s.Hands {
			if h.Has(top) {
				holders++
				if ours(seat) {
					ourHolders++
				}
			}
		}
		share := float64(ourHolders) / float64(holders)
		us += share * pts
		them += (1 - share) * pts
	}
	return us - them
}

func (BestCard) Name() string {
	return "best-card"
}
