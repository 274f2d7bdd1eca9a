package zobrist

import (
	"testing"

	"github.com/matryer/is"

	"github.com/atout-engine/atout/cards"
)

func TestHashIsOrderIndependent(t *testing.T) {
	is := is.New(t)
	z := &Zobrist{}
	z.Initialize()

	hands := [numSeats]cards.Set{
		cards.MustParseSet("AH,KH"),
		cards.MustParseSet("QS,JS,10S"),
		cards.MustParseSet("5C"),
		cards.MustParseSet("QS,9D"),
	}
	h := z.Hash(hands, 1, cards.Hearts, 2)
	is.Equal(h, z.Hash(hands, 1, cards.Hearts, 2))
	// these are extremely unlikely to collide, but this is not technically
	// always true.
	is.True(h != z.Hash(hands, 2, cards.Hearts, 2))
	is.True(h != z.Hash(hands, 1, cards.NoSuit, 2))
	is.True(h != z.Hash(hands, 1, cards.Hearts, 3))


	// one card moving to another seat changes the hash.
	moved := hands
	moved[3] = moved[3].Remove(cards.MustParseCard("QS"))
	moved[2] = moved[2].Add(cards.MustParseCard("QS"))
	is.True(h != z.Hash(moved, 1, cards.Hearts, 2))
}
