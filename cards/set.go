package cards

import (
	"math/bits"
	"strings"

	"github.com/samber/lo"
)

// Set is a bit-vector over the card universe; bit i is card i.
type Set uint64

const (
	Empty Set = 0
	Full  Set = 1<<DeckSize - 1
)

var suitMasks = [NumSuits]Set{
	(1<<RanksPerSuit - 1) << (0 * RanksPerSuit),
	(1<<RanksPerSuit - 1) << (1 * RanksPerSuit),
	(1<<RanksPerSuit - 1) << (2 * RanksPerSuit),
	(1<<RanksPerSuit - 1) << (3 * RanksPerSuit),
}

// the cards grouped by point value.
var (
	tenPointCards  Set
	fivePointCards Set
)

func init() {
	for c := Card(0); c < DeckSize; c++ {
		switch c.Points() {
		case 10:
			tenPointCards |= Single(c)
		case 5:
			fivePointCards |= Single(c)
		}
	}
}

// SuitMask returns every card of suit s. NoSuit yields the empty set.
func SuitMask(s Suit) Set {
	if s >= NoSuit {
		return Empty
	}
	return suitMasks[s]
}

// Single returns the set holding only c.
func Single(c Card) Set {
	if !c.Valid() {
		return Empty
	}
	return 1 << c
}

// Of builds a set from individual cards.
func Of(cs ...Card) Set {
	var s Set
	for _, c := range cs {
		s |= Single(c)
	}
	return s
}

// ParseSet parses a list of card labels. Labels may also be separated by
// commas or spaces inside a single argument.
func ParseSet(labels ...string) (Set, error) {
	var s Set
	for _, l := range labels {
		for _, f := range strings.FieldsFunc(l, func(r rune) bool { return r == ',' || r == ' ' }) {
			c, err := ParseCard(f)
			if err != nil {
				return Empty, err
			}
			s |= Single(c)
		}
	}
	return s, nil
}

// MustParseSet is ParseSet for literals known to be valid.
func MustParseSet(labels ...string) Set {
	s, err := ParseSet(labels...)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Set) Has(c Card) bool {
	return c.Valid() && s&(1<<c) != 0
}

func (s Set) Add(c Card) Set {
	return s | Single(c)
}

func (s Set) Remove(c Card) Set {
	return s &^ Single(c)
}

func (s Set) Intersect(o Set) Set {
	return s & o
}

func (s Set) Union(o Set) Set {
	return s | o
}

// Merge is union with saturation: a card present in both sets is still
// counted once. On a bit-vector this is the plain union.
func (s Set) Merge(o Set) Set {
	return (s | o) & Full
}

// Without removes every card of o from s.
func (s Set) Without(o Set) Set {
	return s &^ o
}

// Complement is relative to the 40-card universe.
func (s Set) Complement() Set {
	return Full &^ s
}

func (s Set) Count() int {
	return bits.OnesCount64(uint64(s & Full))
}

func (s Set) IsEmpty() bool {
	return s&Full == 0
}

// First returns the lowest-indexed card, which is the highest-ranked card of
// the first non-empty suit in canonical order.
func (s Set) First() (Card, bool) {
	if s.IsEmpty() {
		return NoCard, false
	}
	return Card(bits.TrailingZeros64(uint64(s))), true
}

// Pop splits off the first card. It is the allocation-free way to walk a
// set:
//
//	for rest := s; !rest.IsEmpty(); {
//		var c Card
//		c, rest = rest.Pop()
//	}
func (s Set) Pop() (Card, Set) {
	c, ok := s.First()
	if !ok {
		return NoCard, Empty
	}
	return c, s &^ (1 << c)
}

// Cards lists the members in canonical order.
func (s Set) Cards() []Card {
	out := make([]Card, 0, s.Count())
	for r := s & Full; r != 0; r &= r - 1 {
		out = append(out, Card(bits.TrailingZeros64(uint64(r))))
	}
	return out
}

// Suits returns the suits with at least one card in s.
func (s Set) Suits() []Suit {
	out := make([]Suit, 0, NumSuits)
	for i, m := range suitMasks {
		if s&m != 0 {
			out = append(out, Suit(i))
		}
	}
	return out
}

// Points sums the trick value of every card in the set.
func (s Set) Points() int {
	return 10*(s&tenPointCards).Count() + 5*(s&fivePointCards).Count()
}

func (s Set) String() string {
	return "{" + strings.Join(lo.Map(s.Cards(), func(c Card, _ int) string {
		return c.String()
	}), ",") + "}"
}
