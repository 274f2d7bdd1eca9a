// Package game runs deals: it shuffles, asks each seat's strategy for a
// card in turn, checks the card is legal, resolves tricks and keeps score.
// A Game doesn't care how its seats choose their cards.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/atout-engine/atout/belief"
	"github.com/atout-engine/atout/cards"
	"github.com/atout-engine/atout/player"
	"github.com/atout-engine/atout/trick"
)

const NumSeats = trick.NumSeats

var ErrDealOver = errors.New("deal is over")

// Game is one deal of ten tricks.
type Game struct {
	seats   [NumSeats]*seatState
	dealt   [NumSeats]cards.Set
	trump   cards.Suit
	current *trick.Trick
	history []trick.Trick
}

// Deal shuffles the deck with rng and hands the cards out one at a time, so
// seat i receives the cards at positions i, i+4, i+8 and so on.
func Deal(rng *frand.RNG) [NumSeats]cards.Set {
	var hands [NumSeats]cards.Set
	var perm []int
	if rng != nil {
		perm = rng.Perm(cards.DeckSize)
	} else {
		perm = frand.Perm(cards.DeckSize)
	}
	for i, c := range perm {
		hands[i%NumSeats] = hands[i%NumSeats].Add(cards.Card(c))
	}
	return hands
}

// NewGame starts a deal with the given hands. Seat 0 leads the first trick;
// the suit of its card becomes trump.
func NewGame(hands [NumSeats]cards.Set, strategies [NumSeats]player.Strategy) (*Game, error) {
	all := cards.Empty
	for seat, h := range hands {
		if !all.Intersect(h).IsEmpty() {
			return nil, fmt.Errorf("seat %d holds cards dealt to another seat: %v", seat, all.Intersect(h))
		}
		all = all.Union(h)
		if h.Count() != hands[0].Count() {
			return nil, fmt.Errorf("seat %d holds %d cards, seat 0 holds %d", seat, h.Count(), hands[0].Count())
		}
	}
	g := &Game{trump: cards.NoSuit, dealt: hands}
	for seat := range g.seats {
		g.seats[seat] = &seatState{strategy: strategies[seat], hand: hands[seat]}
		if ds, ok := strategies[seat].(player.DealStarter); ok {
			ds.StartDeal(hands[seat])
		}
	}
	g.current = trick.New(0, g.trump)
	return g, nil
}

func (g *Game) Trump() cards.Suit {
	return g.trump
}

// Hand is what seat still holds.
func (g *Game) Hand(seat int) cards.Set {
	return g.seats[seat].hand
}

// Dealt is the hand seat started the deal with.
func (g *Game) Dealt(seat int) cards.Set {
	return g.dealt[seat]
}

// BeliefOf is what seat can know of the other hands from its own hand and
// the completed tricks, relative to seat.
func (g *Game) BeliefOf(seat int) belief.State {
	b := belief.New(g.dealt[seat])
	for _, t := range g.history {
		b.Observe(t.Cards.Rotate(seat), t.Led)
	}
	return b
}

func (g *Game) Strategy(seat int) player.Strategy {
	return g.seats[seat].strategy
}

// OnTurn is the seat that must play next.
func (g *Game) OnTurn() int {
	return g.current.NextSeat()
}

// CurrentTrick is the trick being played. It is empty between tricks.
func (g *Game) CurrentTrick() trick.Trick {
	return *g.current
}

// History is every completed trick, in order.
func (g *Game) History() []trick.Trick {
	return g.history
}

func (g *Game) TricksPlayed() int {
	return len(g.history)
}

// Done reports whether every card has been played.
func (g *Game) Done() bool {
	for _, s := range g.seats {
		if !s.hand.IsEmpty() {
			return false
		}
	}
	return true
}

// PointsFor is what seat has taken so far.
func (g *Game) PointsFor(seat int) int {
	return g.seats[seat].points
}

// Scores are the points taken by each seat.
func (g *Game) Scores() [NumSeats]int {
	var s [NumSeats]int
	for i, st := range g.seats {
		s[i] = st.points
	}
	return s
}

// TeamScores are the points of seats 0+2 and 1+3.
func (g *Game) TeamScores() [2]int {
	s := g.Scores()
	return [2]int{s[0] + s[2], s[1] + s[3]}
}

// Turn is what the seat on turn sees.
func (g *Game) Turn() player.Turn {
	seat := g.OnTurn()
	hand := g.seats[seat].hand
	return player.Turn{
		Hand:     hand,
		Playable: trick.Playable(hand, g.current.Led),
		Led:      g.current.Led,
		Trump:    g.trump,
		Leader:   g.current.Leader,
		Table:    g.current.Cards,
		Seat:     seat,
	}
}

// PlayNext asks the seat on turn for a card and plays it.
func (g *Game) PlayNext(ctx context.Context) (cards.Card, error) {
	if g.Done() {
		return cards.NoCard, ErrDealOver
	}
	turn := g.Turn()
	c, err := g.seats[turn.Seat].strategy.PlayCard(ctx, turn)
	if err != nil {
		return cards.NoCard, fmt.Errorf("seat %d (%s): %w", turn.Seat,
			g.seats[turn.Seat].strategy.Name(), err)
	}
	return c, g.Play(c)
}

// Play puts c on the table for the seat on turn. A card that is not playable
// is rejected with an *IllegalMoveError. Completing a trick resolves it,
// and the winner leads the next one.
func (g *Game) Play(c cards.Card) error {
	if g.Done() {
		return ErrDealOver
	}
	seat := g.OnTurn()
	if err := g.checkLegal(seat, c); err != nil {
		return err
	}
	if err := g.current.Play(seat, c); err != nil {
		return err
	}
	g.seats[seat].hand = g.seats[seat].hand.Remove(c)
	if g.trump == cards.NoSuit {
		g.trump = c.Suit()
		g.current.Trump = g.trump
		log.Debug().Str("trump", g.trump.String()).Msg("trump-chosen")
	}
	if !g.current.Complete() {
		return nil
	}
	return g.finishTrick()
}

func (g *Game) finishTrick() error {
	t := g.current
	if err := t.Resolve(); err != nil {
		return err
	}
	g.seats[t.Winner].points += t.Points
	g.seats[t.Winner].tricks++
	g.history = append(g.history, *t)
	log.Debug().Int("trick", len(g.history)).Str("cards", t.Cards.String()).
		Int("winner", t.Winner).Int("points", t.Points).Msg("trick-complete")
	for seat, s := range g.seats {
		s.strategy.ObserveTrick(t.Cards, t.Led, seat)
	}
	g.current = trick.New(t.Winner, g.trump)
	return nil
}

// PlayDeal plays the deal to the end and returns the points taken by each
// seat.
func (g *Game) PlayDeal(ctx context.Context) ([NumSeats]int, error) {
	for !g.Done() {
		if _, err := g.PlayNext(ctx); err != nil {
			return g.Scores(), err
		}
	}
	return g.Scores(), nil
}
