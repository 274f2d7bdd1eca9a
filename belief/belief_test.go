package belief

import (
	"testing"

	"github.com/matryer/is"

	"github.com/atout-engine/atout/cards"
	"github.com/atout-engine/atout/trick"
)

func tbl(labels ...string) trick.Table {
	var t trick.Table
	for i, l := range labels {
		t[i] = cards.MustParseCard(l)
	}
	return t
}

var ownHand = cards.MustParseSet("AS", "QS", "AC", "KC", "10H", "9H", "8D", "7D", "6D", "5D")

func TestNew(t *testing.T) {
	is := is.New(t)
	s := New(ownHand)
	is.Equal(s.Hands[0], ownHand)
	for seat := 1; seat < NumSeats; seat++ {
		is.Equal(s.Hands[seat].Count(), cards.DeckSize-cards.HandSize)
		is.Equal(s.Hands[seat].Intersect(ownHand), cards.Empty)
	}
	is.NoErr(s.Validate())
}

func TestEveryoneFollows(t *testing.T) {
	is := is.New(t)
	s := New(ownHand)
	// trump hearts; we lead the ace of spades and everyone follows low.
	tb := tbl("AS", "6S", "7S", "9S")
	s.Observe(tb, cards.Spades)

	for seat := 0; seat < NumSeats; seat++ {
		is.Equal(s.Voids[seat], cards.Empty)
		is.Equal(s.Hands[seat].Intersect(tb.Set()), cards.Empty)
	}
	is.Equal(s.Hands[0], ownHand.Remove(cards.MustParseCard("AS")))
	is.Equal(s.Hands[1].Count(), 30-3)
	is.NoErr(s.Validate())

	is.Equal(trick.Resolve(tb, cards.Spades, cards.Hearts), 0)
	is.Equal(trick.Score(tb), 10)
}

func TestFailingToFollowProvesVoid(t *testing.T) {
	is := is.New(t)
	s := New(ownHand)
	// clubs led; seat 2 discards a diamond although diamonds are not trump.
	tb := tbl("AC", "5C", "9D", "6C")
	s.Observe(tb, cards.Clubs)

	is.True(s.IsVoid(2, cards.Clubs))
	is.True(!s.IsVoid(1, cards.Clubs))
	is.Equal(s.Hands[2].Intersect(cards.SuitMask(cards.Clubs)), cards.Empty)
	is.True(!s.Hands[1].Intersect(cards.SuitMask(cards.Clubs)).IsEmpty())
	is.NoErr(s.Validate())

	// the void sticks for the rest of the deal
	tb2 := tbl("AS", "KS", "JS", "10S")
	s.Observe(tb2, cards.Spades)
	is.Equal(s.Hands[2].Intersect(cards.SuitMask(cards.Clubs)), cards.Empty)
	is.True(s.IsVoid(2, cards.Clubs))
	is.NoErr(s.Validate())
}

func TestObserveIsIdempotent(t *testing.T) {
	is := is.New(t)
	s := New(ownHand)
	tb := tbl("AC", "5C", "9D", "6C")
	s.Observe(tb, cards.Clubs)
	once := s
	s.Observe(tb, cards.Clubs)
	is.Equal(s, once)
}

func TestNextWithoutVoidInference(t *testing.T) {
	is := is.New(t)
	s := New(ownHand)
	tb := tbl("AC", "5C", "9D", "6C")
	optimistic := s.Next(tb, cards.Clubs, false)
	is.Equal(optimistic.Voids[2], cards.Empty)
	is.Equal(optimistic.Hands[2], s.Hands[2].Without(tb.Set()))
	// the receiver is left untouched
	is.Equal(s, New(ownHand))
}

func TestValidateCatchesBrokenStates(t *testing.T) {
	is := is.New(t)
	s := New(ownHand)
	s.Hands[1] = s.Hands[1].Add(cards.MustParseCard("AS"))
	is.True(s.Validate() != nil)

	s = New(ownHand)
	// removing a card nobody else can hold leaves it unaccounted for
	lost := cards.MustParseCard("KH")
	for seat := 1; seat < NumSeats; seat++ {
		s.Hands[seat] = s.Hands[seat].Remove(lost)
	}
	is.True(s.Validate() != nil)
}

func TestRotate(t *testing.T) {
	is := is.New(t)
	s := New(ownHand)
	r := s.Rotate(2)
	is.Equal(r.Hands[2], ownHand)
	is.Equal(r.Rotate(2), s)
}
