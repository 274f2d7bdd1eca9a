// Package prune rejects hypothesized continuations that no real deal could
// produce, using counting (pigeonhole) arguments only. The test is
// necessary, not sufficient: it may let impossible states through, but it
// never rejects a possible one.
package prune

import (
	"github.com/atout-engine/atout/belief"
	"github.com/atout-engine/atout/cards"
)

// Feasible checks a state taken after a hypothesized trick. cardsBefore is
// the number of cards each seat held before that trick, so each seat now
// holds exactly cardsBefore-1 cards.
func Feasible(s belief.State, cardsBefore int) bool {
	n := cardsBefore - 1
	if n <= 0 {
		return true
	}
	all := cards.Empty
	for _, h := range s.Hands {
		if h.Count() < n {
			return false
		}
		all = all.Merge(h)
	}
	// any two of the three hidden hands are disjoint, so together they need
	// 2n distinct candidates.
	for i := 0; i < 3; i++ {
		a, b := 1+i%3, 1+(i+1)%3
		if s.Hands[a].Merge(s.Hands[b]).Count() < 2*n {
			return false
		}
	}
	return all.Count() >= 4*n
}
