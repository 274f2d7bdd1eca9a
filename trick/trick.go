// Package trick resolves and records single tricks: four cards, one per
// seat, won by the highest trump or, failing that, the highest card of the
// led suit.
package trick

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atout-engine/atout/cards"
)

const NumSeats = 4

var (
	ErrSeatAlreadyPlayed = errors.New("seat already played to this trick")
	ErrTrickIncomplete   = errors.New("trick is not complete")
)

// Table holds the card each seat played, indexed by seat. Seats that have
// not played hold cards.NoCard.
type Table [NumSeats]cards.Card

// EmptyTable returns a table where nobody has played yet.
func EmptyTable() Table {
	return Table{cards.NoCard, cards.NoCard, cards.NoCard, cards.NoCard}
}

// Set returns the cards on the table.
func (t Table) Set() cards.Set {
	return cards.Of(t[:]...)
}

// Rotate re-indexes the table so that seat `from` becomes seat 0.
func (t Table) Rotate(from int) Table {
	var out Table
	for i := range out {
		out[i] = t[(from+i)%NumSeats]
	}
	return out
}

func (t Table) String() string {
	parts := make([]string, NumSeats)
	for i, c := range t {
		parts[i] = fmt.Sprintf("P%d=%s", i+1, c)
	}
	return strings.Join(parts, " ")
}

// strength is the card's effective rank once masked against led ∪ trump.
// Cards of neither suit are worth 0 and can never win.
func strength(c cards.Card, led, trump cards.Suit) int {
	switch c.Suit() {
	case trump:
		return 2*cards.RanksPerSuit - c.Rank()
	case led:
		return cards.RanksPerSuit - c.Rank()
	}
	return 0
}

// Beats reports whether a beats b given the led and trump suits.
func Beats(a, b cards.Card, led, trump cards.Suit) bool {
	if trump == cards.NoSuit {
		trump = led
	}
	return strength(a, led, trump) > strength(b, led, trump)
}

// Resolve returns the winning seat. An unset trump (the first trick of a
// deal, before trump is fixed) behaves as if the led suit were trump.
func Resolve(t Table, led, trump cards.Suit) int {
	if trump == cards.NoSuit {
		trump = led
	}
	best, bestStrength := 0, -1
	for seat, c := range t {
		if v := strength(c, led, trump); v > bestStrength {
			best, bestStrength = seat, v
		}
	}
	return best
}

// Playable is the part of hand that may legally be played: the cards of the
// led suit if there are any, otherwise the whole hand.
func Playable(hand cards.Set, led cards.Suit) cards.Set {
	if led == cards.NoSuit {
		return hand
	}
	if follow := hand.Intersect(cards.SuitMask(led)); !follow.IsEmpty() {
		return follow
	}
	return hand
}

// Score is the point value of the cards on the table.
func Score(t Table) int {
	return t.Set().Points()
}

// Trick is the running record of one round of play.
type Trick struct {
	Leader int
	Led    cards.Suit
	Trump  cards.Suit
	Cards  Table
	Winner int
	Points int

	played int
}

// New starts a trick led by `leader`. trump may be cards.NoSuit if it has
// not been chosen yet.
func New(leader int, trump cards.Suit) *Trick {
	return &Trick{
		Leader: leader,
		Led:    cards.NoSuit,
		Trump:  trump,
		Cards:  EmptyTable(),
		Winner: -1,
	}
}

// NextSeat is the seat expected to play next.
func (t *Trick) NextSeat() int {
	return (t.Leader + t.played) % NumSeats
}

// NumPlayed is the number of cards on the table.
func (t *Trick) NumPlayed() int {
	return t.played
}

func (t *Trick) Complete() bool {
	return t.played == NumSeats
}

// Play puts a card on the table. The first card fixes the led suit.
func (t *Trick) Play(seat int, c cards.Card) error {
	if t.Cards[seat] != cards.NoCard {
		return fmt.Errorf("%w: seat %d", ErrSeatAlreadyPlayed, seat)
	}
	if t.played == 0 {
		t.Led = c.Suit()
	}
	t.Cards[seat] = c
	t.played++
	return nil
}

// Resolve fills in the winner and the points of a complete trick.
func (t *Trick) Resolve() error {
	if !t.Complete() {
		return ErrTrickIncomplete
	}
	t.Winner = Resolve(t.Cards, t.Led, t.Trump)
	t.Points = Score(t.Cards)
	return nil
}

func (t *Trick) String() string {
	var sb strings.Builder
	for i, c := range t.Cards {
		s := fmt.Sprintf("P%d=%s", i+1, c)
		if i == t.Winner {
			s = "*" + s + "*"
		}
		sb.WriteString(s)
		sb.WriteString(" ")
	}
	fmt.Fprintf(&sb, "(%d pts)", t.Points)
	return sb.String()
}
