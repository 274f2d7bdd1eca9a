package prune

import (
	"testing"

	"github.com/matryer/is"
	"lukechampine.com/frand"

	"github.com/atout-engine/atout/belief"
	"github.com/atout-engine/atout/cards"
	"github.com/atout-engine/atout/trick"
)

func TestRejectsThinHands(t *testing.T) {
	is := is.New(t)
	var s belief.State
	s.Hands[0] = cards.MustParseSet("AH", "KH")
	s.Hands[1] = cards.MustParseSet("AS", "KS")
	s.Hands[2] = cards.MustParseSet("AS", "KS")
	s.Hands[3] = cards.MustParseSet("AD", "KD")
	// 3 cards each before the trick, 2 after: seats 1 and 2 share the same
	// two candidates and cannot both hold two cards.
	is.True(!Feasible(s, 3))

	s.Hands[2] = cards.MustParseSet("AC", "KC")
	is.True(Feasible(s, 3))

	s.Hands[3] = cards.MustParseSet("AD")
	is.True(!Feasible(s, 3))
}

func TestRejectsSmallUnion(t *testing.T) {
	is := is.New(t)
	var s belief.State
	s.Hands[0] = cards.MustParseSet("AH")
	s.Hands[1] = cards.MustParseSet("AS", "KS")
	s.Hands[2] = cards.MustParseSet("KS", "QS")
	s.Hands[3] = cards.MustParseSet("AS", "QS")
	// one card each: pairs need 2 distinct candidates, the union 4.
	is.True(Feasible(s, 2))
	// each seat needs 2 cards: pairs need 4 distinct, only 3 exist.
	s.Hands[0] = cards.MustParseSet("AH", "KH")
	is.True(!Feasible(s, 3))
}

func TestLastTrickAlwaysPasses(t *testing.T) {
	is := is.New(t)
	is.True(Feasible(belief.State{}, 1))
}

func dealHands(rng *frand.RNG) [4]cards.Set {
	perm := rng.Perm(cards.DeckSize)
	var hands [4]cards.Set
	for i, c := range perm {
		hands[i%4] = hands[i%4].Add(cards.Card(c))
	}
	return hands
}

// Simulate real deals with random legal play and check that the true
// continuation always passes, as seen from every seat.
func TestNeverRejectsTrueContinuation(t *testing.T) {
	is := is.New(t)
	rng := frand.NewCustom(make([]byte, 32), 1024, 12)
	for deal := 0; deal < 200; deal++ {
		hands := dealHands(rng)
		var beliefs [4]belief.State
		for seat := range beliefs {
			beliefs[seat] = belief.New(hands[seat])
		}
		leader := 0
		for n := cards.HandSize; n > 0; n-- {
			table := trick.EmptyTable()
			led := cards.NoSuit
			for i := 0; i < 4; i++ {
				seat := (leader + i) % 4
				options := trick.Playable(hands[seat], led).Cards()
				c := options[rng.Intn(len(options))]
				if led == cards.NoSuit {
					led = c.Suit()
				}
				table[seat] = c
				hands[seat] = hands[seat].Remove(c)
			}
			for seat := range beliefs {
				beliefs[seat].Observe(table.Rotate(seat), led)
				is.NoErr(beliefs[seat].Validate())
				is.True(Feasible(beliefs[seat], n))
				for rel := 0; rel < 4; rel++ {
					truth := hands[(seat+rel)%4]
					// never under-approximate
					is.Equal(beliefs[seat].Hands[rel].Intersect(truth), truth)
				}
			}
			leader = trick.Resolve(table, led, cards.Hearts)
		}
	}
}
