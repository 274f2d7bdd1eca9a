// Package cards contains the 40-card universe used by the game: card
// identities, suits, point values and a bit-vector set representation.
package cards

import (
	"errors"
	"fmt"
	"strings"
)

const (
	NumSuits     = 4
	RanksPerSuit = 10
	DeckSize     = NumSuits * RanksPerSuit
	// HandSize is how many cards every seat is dealt.
	HandSize = DeckSize / 4
)

var ErrBadLabel = errors.New("bad card label")

// Suit is one of the four fixed suits. NoSuit stands for an unset led or
// trump suit.
type Suit uint8

const (
	Hearts Suit = iota
	Diamonds
	Clubs
	Spades
	NoSuit
)

var suitLetters = [NumSuits]string{"H", "D", "C", "S"}

func (s Suit) String() string {
	if s >= NoSuit {
		return "-"
	}
	return suitLetters[s]
}

// ParseSuit accepts a single suit letter (H, D, C or S).
func ParseSuit(l string) (Suit, error) {
	for i, sl := range suitLetters {
		if strings.EqualFold(l, sl) {
			return Suit(i), nil
		}
	}
	return NoSuit, fmt.Errorf("%w: suit %q", ErrBadLabel, l)
}

// rank labels, highest first. The index of a rank within its suit is its
// strength: a lower index beats a higher one.
var rankLabels = [RanksPerSuit]string{"A", "K", "Q", "J", "10", "9", "8", "7", "6", "5"}

// Card is an index into the 40-card universe: suit*10 + rank.
type Card uint8

const NoCard Card = 0xff

// NewCard builds a card from a suit and a rank index (0 = ace, 9 = five).
func NewCard(s Suit, rank int) Card {
	return Card(int(s)*RanksPerSuit + rank)
}

func (c Card) Valid() bool {
	return c < DeckSize
}

func (c Card) Suit() Suit {
	if !c.Valid() {
		return NoSuit
	}
	return Suit(c / RanksPerSuit)
}

// Rank returns the rank index within the suit; 0 is the highest card.
func (c Card) Rank() int {
	return int(c % RanksPerSuit)
}

// Points is the card's trick value: aces and tens are worth 10, fives 5.
func (c Card) Points() int {
	if !c.Valid() {
		return 0
	}
	switch rankLabels[c.Rank()] {
	case "A", "10":
		return 10
	case "5":
		return 5
	}
	return 0
}

func (c Card) String() string {
	if !c.Valid() {
		return "--"
	}
	return rankLabels[c.Rank()] + suitLetters[c.Suit()]
}

// ParseCard parses labels such as "AH", "10s" or "5C".
func ParseCard(label string) (Card, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) < 2 {
		return NoCard, fmt.Errorf("%w: %q", ErrBadLabel, label)
	}
	suit, err := ParseSuit(label[len(label)-1:])
	if err != nil {
		return NoCard, err
	}
	rank := label[:len(label)-1]
	for i, rl := range rankLabels {
		if rl == rank {
			return NewCard(suit, i), nil
		}
	}
	return NoCard, fmt.Errorf("%w: rank %q", ErrBadLabel, rank)
}

// MustParseCard is ParseCard for literals known to be valid.
func MustParseCard(label string) Card {
	c, err := ParseCard(label)
	if err != nil {
		panic(err)
	}
	return c
}
