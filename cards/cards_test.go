package cards

import (
	"testing"

	"github.com/matryer/is"
)

func TestFullDeckIsWorth100(t *testing.T) {
	is := is.New(t)
	is.Equal(Full.Count(), DeckSize)
	is.Equal(Full.Points(), 100)

	total := 0
	for c := Card(0); c < DeckSize; c++ {
		total += c.Points()
	}
	is.Equal(total, 100)
}

func TestLabels(t *testing.T) {
	is := is.New(t)
	for c := Card(0); c < DeckSize; c++ {
		back, err := ParseCard(c.String())
		is.NoErr(err)
		is.Equal(back, c)
	}
	is.Equal(MustParseCard("AH"), Card(0))
	is.Equal(MustParseCard("10d").String(), "10D")
	is.Equal(MustParseCard("5S"), Card(39))

	for _, bad := range []string{"", "A", "1H", "AX", "11S"} {
		_, err := ParseCard(bad)
		is.True(err != nil)
	}
}

func TestSuitClassification(t *testing.T) {
	is := is.New(t)
	is.Equal(MustParseCard("QC").Suit(), Clubs)
	is.Equal(NoCard.Suit(), NoSuit)
	for s := Hearts; s < NoSuit; s++ {
		is.Equal(SuitMask(s).Count(), RanksPerSuit)
		is.Equal(SuitMask(s).Points(), 25)
	}
	is.Equal(SuitMask(NoSuit), Empty)
	is.Equal(SuitMask(Hearts).Union(SuitMask(Diamonds)).Union(SuitMask(Clubs)).Union(SuitMask(Spades)), Full)
}

func TestSetAlgebra(t *testing.T) {
	is := is.New(t)
	a := MustParseSet("AH", "KH", "5S")
	b := MustParseSet("KH,10C")

	is.True(a.Has(MustParseCard("5S")))
	is.True(!a.Has(MustParseCard("10C")))
	is.True(!a.Has(NoCard))
	is.Equal(a.Intersect(b), MustParseSet("KH"))
	is.Equal(a.Union(b).Count(), 4)
	is.Equal(a.Merge(b), a.Union(b))
	is.Equal(a.Merge(a), a)
	is.Equal(a.Without(b), MustParseSet("AH", "5S"))
	is.Equal(a.Complement().Count(), DeckSize-3)
	is.Equal(a.Complement().Intersect(a), Empty)
	is.Equal(a.Remove(MustParseCard("AH")).Add(MustParseCard("AH")), a)

	first, ok := b.First()
	is.True(ok)
	is.Equal(first, MustParseCard("KH"))
	_, ok = Empty.First()
	is.True(!ok)

	var popped []Card
	for rest := a; !rest.IsEmpty(); {
		var c Card
		c, rest = rest.Pop()
		popped = append(popped, c)
	}
	is.Equal(popped, a.Cards())
	c, rest := Empty.Pop()
	is.Equal(c, NoCard)
	is.Equal(rest, Empty)

	is.Equal(a.String(), "{AH,KH,5S}")
	is.Equal(a.Suits(), []Suit{Hearts, Spades})
	is.Equal(a.Points(), 15)
}
