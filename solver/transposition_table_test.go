package solver

import (
	"sync"
	"testing"

	"github.com/matryer/is"

	"github.com/atout-engine/atout/cards"
)

func testKey(depth int) Key {
	return Key{
		Hands: [NumSeats]cards.Set{
			cards.MustParseSet("AH,KH"),
			cards.MustParseSet("QH,JH"),
			cards.MustParseSet("10H,9H"),
			cards.MustParseSet("8H,7H"),
		},
		Leader: 1,
		Trump:  uint8(cards.Spades),
		Depth:  uint8(depth),
		Cards:  2,
	}
}

func TestStoreAndLookup(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable(0)

	_, ok := tt.lookup(testKey(1))
	is.True(!ok)

	tt.store(testKey(1), TableEntry{Value: 12.5, Card: cards.MustParseCard("AH")})
	e, ok := tt.lookup(testKey(1))
	is.True(ok)
	is.Equal(e.Value, 12.5)
	is.Equal(e.Card, cards.MustParseCard("AH"))

	// a different depth is a different node
	_, ok = tt.lookup(testKey(2))
	is.True(!ok)

	is.Equal(tt.Lookups(), uint64(3))
	is.Equal(tt.Hits(), uint64(1))
	is.Equal(tt.Len(), 1)
}

func TestStoredEntriesAreNotOverwritten(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable(0)
	tt.store(testKey(1), TableEntry{Value: 1, Card: cards.MustParseCard("AH")})
	tt.store(testKey(1), TableEntry{Value: 2, Card: cards.MustParseCard("KH")})
	e, ok := tt.lookup(testKey(1))
	is.True(ok)
	is.Equal(e.Value, 1.0)
	is.Equal(tt.Created(), uint64(1))
}

func TestResetClears(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable(0)
	tt.store(testKey(1), TableEntry{Value: 1, Card: cards.MustParseCard("AH")})
	tt.Reset(0)
	is.Equal(tt.Len(), 0)
	is.Equal(tt.Created(), uint64(0))
	_, ok := tt.lookup(testKey(1))
	is.True(!ok)
}

func TestFullShardStartsOver(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable(0)
	tt.maxShardEntries = 1
	for d := 0; d < 200; d++ {
		tt.store(testKey(d), TableEntry{Value: float64(d), Card: cards.MustParseCard("AH")})
	}
	is.True(tt.Evictions() > 0)
	is.True(tt.Len() <= numShards)
}

func TestConcurrentAccess(t *testing.T) {
	is := is.New(t)
	tt := NewTranspositionTable(0)
	tt.SetMultiThreadedMode()
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := 0; d < 100; d++ {
				tt.store(testKey(d), TableEntry{Value: float64(d), Card: cards.MustParseCard("KH")})
				tt.lookup(testKey(d))
			}
		}()
	}
	wg.Wait()
	is.Equal(tt.Len(), 100)
	for d := 0; d < 100; d++ {
		e, ok := tt.lookup(testKey(d))
		is.True(ok)
		is.Equal(e.Value, float64(d))
	}
}
