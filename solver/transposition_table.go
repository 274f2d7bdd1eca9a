package solver

import (
	"sync"
	"sync/atomic"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/atout-engine/atout/cards"
	"github.com/atout-engine/atout/zobrist"
)

const (
	numShards = 64
	// rough cost of one map entry, key and value included.
	entrySize = 96
	// never size the table below this many entries.
	minEntries = 1 << 16
)

// Key identifies a search node: the candidate hands after the forced
// restriction, who leads, the trump suit, the remaining depth and the hand
// size. It is comparable and used as a map key as-is.
type Key struct {
	Hands  [NumSeats]cards.Set
	Leader uint8
	Trump  uint8
	Depth  uint8
	Cards  uint8
}

// TableEntry is a memoized search result. Entries are never changed once
// stored.
type TableEntry struct {
	Value float64
	Card  cards.Card
}

type TableLock interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

type FakeLock struct{}

func (f FakeLock) Lock()    {}
func (f FakeLock) Unlock()  {}
func (f FakeLock) RLock()   {}
func (f FakeLock) RUnlock() {}

type shard struct {
	TableLock
	entries map[Key]TableEntry
}

// TranspositionTable memoizes search results for one search session (one
// deal, typically). It is split in shards picked by a zobrist hash of the
// key; in multi-threaded mode each shard has its own lock.
type TranspositionTable struct {
	shards          [numShards]shard
	maxShardEntries int

	created   atomic.Uint64
	lookups   atomic.Uint64
	hits      atomic.Uint64
	evictions atomic.Uint64

	zobrist *zobrist.Zobrist
}

// NewTranspositionTable allocates a single-threaded table allowed to use
// roughly fractionOfMemory of the machine's memory.
func NewTranspositionTable(fractionOfMemory float64) *TranspositionTable {
	t := &TranspositionTable{}
	t.SetSingleThreadedMode()
	t.Reset(fractionOfMemory)
	return t
}

func (t *TranspositionTable) SetSingleThreadedMode() {
	for i := range t.shards {
		t.shards[i].TableLock = &FakeLock{}
	}
}

func (t *TranspositionTable) SetMultiThreadedMode() {
	for i := range t.shards {
		t.shards[i].TableLock = new(sync.RWMutex)
	}
}

func (t *TranspositionTable) shardFor(k Key) *shard {
	h := t.zobrist.Hash(k.Hands, int(k.Leader), cards.Suit(k.Trump), int(k.Depth))
	return &t.shards[h%numShards]
}

func (t *TranspositionTable) lookup(k Key) (TableEntry, bool) {
	t.lookups.Add(1)
	sh := t.shardFor(k)
	sh.RLock()
	defer sh.RUnlock()
	e, ok := sh.entries[k]
	if ok {
		t.hits.Add(1)
	}
	return e, ok
}

func (t *TranspositionTable) store(k Key, e TableEntry) {
	sh := t.shardFor(k)
	sh.Lock()
	defer sh.Unlock()
	if _, ok := sh.entries[k]; ok {
		return
	}
	if len(sh.entries) >= t.maxShardEntries {
		// a full shard starts over rather than tracking age.
		clear(sh.entries)
		t.evictions.Add(1)
	}
	sh.entries[k] = e
	t.created.Add(1)
}

// Reset empties the table and resizes it to about fractionOfMemory of the
// system memory.
func (t *TranspositionTable) Reset(fractionOfMemory float64) {
	totalMem := memory.TotalMemory()
	desired := int(fractionOfMemory * float64(totalMem) / entrySize)
	if desired < minEntries {
		desired = minEntries
	}
	t.maxShardEntries = desired / numShards
	for i := range t.shards {
		sh := &t.shards[i]
		if sh.TableLock == nil {
			sh.TableLock = &FakeLock{}
		}
		sh.Lock()
		sh.entries = make(map[Key]TableEntry)
		sh.Unlock()
	}
	if t.zobrist == nil {
		t.zobrist = &zobrist.Zobrist{}
		t.zobrist.Initialize()
	}
	log.Debug().Int("max-entries", desired).
		Uint64("total-system-memory-bytes", totalMem).
		Float64("fraction", fractionOfMemory).
		Msg("transposition-table-size")

	t.created.Store(0)
	t.lookups.Store(0)
	t.hits.Store(0)
	t.evictions.Store(0)
}

// Len counts the stored entries.
func (t *TranspositionTable) Len() int {
	n := 0
	for i := range t.shards {
		sh := &t.shards[i]
		sh.RLock()
		n += len(sh.entries)
		sh.RUnlock()
	}
	return n
}

func (t *TranspositionTable) Lookups() uint64 { return t.lookups.Load() }
func (t *TranspositionTable) Hits() uint64    { return t.hits.Load() }
func (t *TranspositionTable) Created() uint64 { return t.created.Load() }
func (t *TranspositionTable) Evictions() uint64 {
	return t.evictions.Load()
}
