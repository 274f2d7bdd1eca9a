package zobrist

import (
	"lukechampine.com/frand"

	"github.com/atout-engine/atout/cards"
)

const bignum = 1<<63 - 2

const (
	numSeats = 4
	// MaxDepth is the deepest look-ahead that gets its own key; deeper
	// searches share the last one.
	MaxDepth = cards.HandSize
)

// Zobrist hashes search positions: which seat may hold which card, who
// leads, the trump suit and the remaining depth.
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	cardTable [numSeats][cards.DeckSize]uint64
	leader    [numSeats]uint64
	trump     [cards.NumSuits + 1]uint64
	depth     [MaxDepth + 1]uint64
}

func (z *Zobrist) Initialize() {
	for s := range z.cardTable {
		for c := range z.cardTable[s] {
			z.cardTable[s][c] = frand.Uint64n(bignum) + 1
		}
	}
	for i := range z.leader {
		z.leader[i] = frand.Uint64n(bignum) + 1
	}
	for i := range z.trump {
		z.trump[i] = frand.Uint64n(bignum) + 1
	}
	for i := range z.depth {
		z.depth[i] = frand.Uint64n(bignum) + 1
	}
}

func (z *Zobrist) Hash(hands [numSeats]cards.Set, leader int, trump cards.Suit, depth int) uint64 {
	key := z.leader[leader%numSeats] ^ z.trump[min(int(trump), cards.NumSuits)] ^
		z.depth[min(max(depth, 0), MaxDepth)]
	for seat, h := range hands {
		for _, c := range h.Cards() {
			key ^= z.cardTable[seat][c]
		}
	}
	return key
}

