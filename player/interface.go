// Package player holds the card-playing strategies a game asks for moves.
package player

import (
	"context"

	"github.com/atout-engine/atout/cards"
	"github.com/atout-engine/atout/trick"
)

// Turn is everything a seat sees when it must play. Seats are absolute.
type Turn struct {
	Hand     cards.Set
	Playable cards.Set
	// Led is cards.NoSuit when the seat leads the trick.
	Led cards.Suit
	// Trump is cards.NoSuit until the first card of the deal is played.
	Trump  cards.Suit
	Leader int
	// Table holds the cards already played to this trick.
	Table trick.Table
	Seat  int
}

// Strategy chooses cards for one seat during one deal.
type Strategy interface {
	// PlayCard must return a card from turn.Playable.
	PlayCard(ctx context.Context, turn Turn) (cards.Card, error)
	// ObserveTrick is called on every seat once a trick is complete. table
	// is indexed by absolute seat and seat is the observer's own seat.
	ObserveTrick(table trick.Table, led cards.Suit, seat int)
	Name() string
}

// DealStarter is implemented by strategies that want their dealt hand before
// the first card of a deal is played.
type DealStarter interface {
	StartDeal(hand cards.Set)
}
