package game

import (
	"fmt"

	"github.com/atout-engine/atout/cards"
	"github.com/atout-engine/atout/trick"
)

// IllegalMoveError means a strategy chose a card it may not play. It is a
// bug in that strategy and ends the deal.
type IllegalMoveError struct {
	Seat     int
	Card     cards.Card
	Playable cards.Set
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("seat %d played %v, playable cards were %v", e.Seat, e.Card, e.Playable)
}

func (g *Game) checkLegal(seat int, c cards.Card) error {
	playable := trick.Playable(g.seats[seat].hand, g.current.Led)
	if !c.Valid() || !playable.Has(c) {
		return &IllegalMoveError{Seat: seat, Card: c, Playable: playable}
	}
	return nil
}
