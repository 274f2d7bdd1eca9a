// Package belief tracks what each seat may still hold, as seen by one
// player. Seats are relative to that player: 0 is the player itself, 1 acts
// after it, 2 is its partner and 3 acts before it.
//
// The player's own hand is exact. The other three hands are candidate sets:
// they may include cards the seat no longer holds, but never miss one it
// does, except where a seat has shown it is void in a suit.
package belief

import (
	"errors"
	"fmt"

	"github.com/atout-engine/atout/cards"
	"github.com/atout-engine/atout/trick"
)

const NumSeats = trick.NumSeats

var ErrInconsistent = errors.New("belief state is internally inconsistent")

// State is a flat value type; copying it with = yields an independent state.
type State struct {
	Hands [NumSeats]cards.Set
	// Voids holds, per seat, the union of the suit masks the seat is known
	// to be void in.
	Voids  [NumSeats]cards.Set
	Played cards.Set
}

// New returns the belief at the start of a deal: the own hand exactly, and
// every other card possible for each of the other three seats.
func New(own cards.Set) State {
	others := own.Complement()
	return State{
		Hands: [NumSeats]cards.Set{own, others, others, others},
	}
}

// Unplayed is every card not yet seen on the table.
func (s State) Unplayed() cards.Set {
	return s.Played.Complement()
}

// Union is every card some seat may still hold.
func (s State) Union() cards.Set {
	u := cards.Empty
	for _, h := range s.Hands {
		u = u.Merge(h)
	}
	return u
}

// IsVoid reports whether seat has shown it holds no card of suit.
func (s State) IsVoid(seat int, suit cards.Suit) bool {
	m := cards.SuitMask(suit)
	return m != cards.Empty && s.Voids[seat]&m == m
}

// Next returns the state after a completed trick. table is indexed by
// relative seat. A seat that followed the led suit loses exactly the cards on
// the table. A seat that did not follow is void in the led suit: it loses the
// table and every card of that suit, and the void is remembered. With
// inferVoids false every seat is assumed to have followed.
func (s State) Next(table trick.Table, led cards.Suit, inferVoids bool) State {
	played := table.Set()
	ledMask := cards.SuitMask(led)
	next := s
	next.Played = s.Played.Union(played)
	for seat := range next.Hands {
		remove := played
		if inferVoids && ledMask != cards.Empty && table[seat].Suit() != led {
			remove = remove.Union(ledMask)
			next.Voids[seat] = next.Voids[seat].Union(ledMask)
		}
		// voids are permanent: nothing of a void suit comes back.
		remove = remove.Union(next.Voids[seat])
		next.Hands[seat] = s.Hands[seat].Without(remove)
	}
	return next
}

// Observe applies a trick seen at the table. Applying the same trick twice
// changes nothing.
func (s *State) Observe(table trick.Table, led cards.Suit) {
	*s = s.Next(table, led, true)
}

// Validate checks the invariants that hold for any belief built from
// truthful observations.
func (s State) Validate() error {
	for seat := 1; seat < NumSeats; seat++ {
		if both := s.Hands[0].Intersect(s.Hands[seat]); !both.IsEmpty() {
			return fmt.Errorf("%w: own hand shares %v with seat %d", ErrInconsistent, both, seat)
		}
	}
	for seat, h := range s.Hands {
		if p := h.Intersect(s.Played); !p.IsEmpty() {
			return fmt.Errorf("%w: seat %d still believed to hold played %v", ErrInconsistent, seat, p)
		}
		if v := h.Intersect(s.Voids[seat]); !v.IsEmpty() {
			return fmt.Errorf("%w: seat %d holds %v of a void suit", ErrInconsistent, seat, v)
		}
	}
	if u := s.Union(); u != s.Unplayed() {
		return fmt.Errorf("%w: unplayed %v not covered, believed %v", ErrInconsistent,
			s.Unplayed().Without(u), u)
	}
	return nil
}

// Rotate re-expresses the state from the point of view of seat `to`.
func (s State) Rotate(to int) State {
	var out State
	out.Played = s.Played
	for i := range out.Hands {
		out.Hands[i] = s.Hands[(to+i)%NumSeats]
		out.Voids[i] = s.Voids[(to+i)%NumSeats]
	}
	return out
}

func (s State) String() string {
	return fmt.Sprintf("P1=%v P2=%v P3=%v P4=%v", s.Hands[0], s.Hands[1], s.Hands[2], s.Hands[3])
}
