package player

import (
	"context"
	"errors"

	"lukechampine.com/frand"

	"github.com/atout-engine/atout/cards"
	"github.com/atout-engine/atout/trick"
)

var ErrNothingPlayable = errors.New("no playable card")

// RandomPlayer plays uniformly among the playable cards.
type RandomPlayer struct {
	rng *frand.RNG
}

// NewRandomPlayer returns a random player. A nil rng draws from the global
// generator.
func NewRandomPlayer(rng *frand.RNG) *RandomPlayer {
	return &RandomPlayer{rng: rng}
}

func (p *RandomPlayer) PlayCard(ctx context.Context, turn Turn) (cards.Card, error) {
	return pickRandom(p.rng, turn.Playable)
}

func (p *RandomPlayer) ObserveTrick(trick.Table, cards.Suit, int) {}

func (p *RandomPlayer) Name() string { return "random" }

func pickRandom(rng *frand.RNG, playable cards.Set) (cards.Card, error) {
	options := playable.Cards()
	if len(options) == 0 {
		return cards.NoCard, ErrNothingPlayable
	}
	if rng == nil {
		return options[frand.Intn(len(options))], nil
	}
	return options[rng.Intn(len(options))], nil
}

// HighestPlayer always plays its strongest card: its best trump when it
// leads, the card most likely to take the trick when it follows, and a
// random card when nothing it holds can win.
type HighestPlayer struct {
	rng *frand.RNG
}

func NewHighestPlayer(rng *frand.RNG) *HighestPlayer {
	return &HighestPlayer{rng: rng}
}

func (p *HighestPlayer) PlayCard(ctx context.Context, turn Turn) (cards.Card, error) {
	if turn.Playable.IsEmpty() {
		return cards.NoCard, ErrNothingPlayable
	}
	if turn.Led == cards.NoSuit {
		if trumps := turn.Playable.Intersect(cards.SuitMask(turn.Trump)); !trumps.IsEmpty() {
			c, _ := trumps.First()
			return c, nil
		}
		return highestAnySuit(turn.Playable), nil
	}
	trump := turn.Trump
	if trump == cards.NoSuit {
		trump = turn.Led
	}
	best := cards.NoCard
	for _, c := range turn.Playable.Cards() {
		if c.Suit() != turn.Led && c.Suit() != trump {
			continue
		}
		if best == cards.NoCard || trick.Beats(c, best, turn.Led, trump) {
			best = c
		}
	}
	if best == cards.NoCard {
		return pickRandom(p.rng, turn.Playable)
	}
	return best, nil
}

func (p *HighestPlayer) ObserveTrick(trick.Table, cards.Suit, int) {}

func (p *HighestPlayer) Name() string { return "highest" }

// highestAnySuit is the card of best rank in hand, the first suit winning
// ties.
func highestAnySuit(hand cards.Set) cards.Card {
	best := cards.NoCard
	for _, c := range hand.Cards() {
		if best == cards.NoCard || c.Rank() < best.Rank() {
			best = c
		}
	}
	return best
}
