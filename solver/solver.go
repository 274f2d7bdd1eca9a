// Package solver picks a card to play when the other hands are hidden.
//
// The search runs over a belief state rather than a known deal. At each
// node, for every card the searching seat could play, it enumerates every
// combination of distinct cards the other three seats could answer with,
// drops combinations no real deal could lead to, and scores the rest by the
// trick they produce plus a recursive look-ahead. The outcomes of one
// candidate card are reduced to a single score by an aggregator; a static
// heuristic stands in for the search once the depth budget runs out.
//
// Seats are relative to the searching player (see package belief), and
// positive values favour seats 0 and 2.
package solver

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/atout-engine/atout/belief"
	"github.com/atout-engine/atout/cards"
	"github.com/atout-engine/atout/equity"
	"github.com/atout-engine/atout/prune"
	"github.com/atout-engine/atout/stats"
	"github.com/atout-engine/atout/trick"
)

const NumSeats = trick.NumSeats

var (
	// ErrNoFeasibleContinuation means every continuation of the position was
	// pruned: the belief state cannot correspond to any real deal.
	ErrNoFeasibleContinuation = errors.New("no feasible continuation")
	ErrBadPosition            = errors.New("bad search position")
)

// Unrestricted leaves every candidate hand as it is.
var Unrestricted = [NumSeats]cards.Set{cards.Full, cards.Full, cards.Full, cards.Full}

// Position is the input of a search.
type Position struct {
	Belief belief.State
	// Leader is the relative seat leading the trick being searched.
	Leader int
	// Trump may be cards.NoSuit during the first trick of a deal; the led
	// suit then becomes trump.
	Trump cards.Suit
	// Depth is how many tricks to look ahead before falling back on the
	// heuristic.
	Depth int
	// CardsPerPlayer is how many cards each seat holds before this trick.
	CardsPerPlayer int
	// Forced narrows each seat's candidate cards for this trick only: the
	// playable cards for seat 0, and the card already on the table for a
	// seat that has played.
	Forced [NumSeats]cards.Set
}

// Result is the best candidate card and its aggregated value. Card is
// cards.NoCard when the search stopped at the heuristic.
type Result struct {
	Value float64
	Card  cards.Card
}

type Solver struct {
	heuristic  equity.Heuristic
	aggregator stats.Aggregator
	ttable     *TranspositionTable

	voidInference bool
	threads       int

	nodes  atomic.Uint64
	pruned atomic.Uint64
}

// NewSolver returns a single-threaded solver that infers voids inside its
// look-ahead. A nil table gets a fresh one.
func NewSolver(h equity.Heuristic, a stats.Aggregator, tt *TranspositionTable) *Solver {
	if tt == nil {
		tt = NewTranspositionTable(0)
	}
	return &Solver{
		heuristic:     h,
		aggregator:    a,
		ttable:        tt,
		voidInference: true,
		threads:       1,
	}
}

// SetVoidInference chooses whether a seat that fails to follow suit in a
// hypothetical trick is then treated as void in that suit. Turning it off
// assumes every seat followed, which keeps more continuations alive.
func (s *Solver) SetVoidInference(on bool) {
	s.voidInference = on
}

// SetThreads spreads the candidate cards of the root node over several
// goroutines. The table switches to locked mode accordingly.
func (s *Solver) SetThreads(threads int) {
	if threads < 2 {
		s.threads = 1
		s.ttable.SetSingleThreadedMode()
		return
	}
	s.threads = threads
	s.ttable.SetMultiThreadedMode()
}

func (s *Solver) SetTranspositionTable(tt *TranspositionTable) {
	s.ttable = tt
	s.SetThreads(s.threads)
}

func (s *Solver) TranspositionTable() *TranspositionTable {
	return s.ttable
}

// Nodes is the number of search nodes visited so far.
func (s *Solver) Nodes() uint64 {
	return s.nodes.Load()
}

// Pruned is the number of continuations rejected by the pigeonhole test.
func (s *Solver) Pruned() uint64 {
	return s.pruned.Load()
}

// Search returns the best card for seat 0 and its value.
func (s *Solver) Search(ctx context.Context, pos Position) (Result, error) {
	if pos.Leader < 0 || pos.Leader >= NumSeats {
		return Result{}, fmt.Errorf("%w: leader %d", ErrBadPosition, pos.Leader)
	}
	if pos.Depth < 0 || pos.CardsPerPlayer < 1 {
		return Result{}, fmt.Errorf("%w: depth %d, cards per player %d",
			ErrBadPosition, pos.Depth, pos.CardsPerPlayer)
	}
	nodesBefore := s.nodes.Load()
	res, err := s.search(ctx, &pos, s.threads > 1)
	if err != nil {
		log.Debug().Err(err).Str("belief", pos.Belief.String()).
			Interface("forced", pos.Forced).Msg("search-failed")
		return Result{}, err
	}
	log.Debug().
		Str("card", res.Card.String()).
		Float64("value", res.Value).
		Int("depth", pos.Depth).
		Uint64("nodes", s.nodes.Load()-nodesBefore).
		Uint64("tt-hits", s.ttable.Hits()).
		Uint64("tt-lookups", s.ttable.Lookups()).
		Msg("search-finished")
	return res, nil
}

func (s *Solver) search(ctx context.Context, pos *Position, parallel bool) (Result, error) {
	s.nodes.Add(1)
	if pos.Depth == 0 {
		return Result{
			Value: s.heuristic.Equity(pos.Belief, pos.Leader, pos.Trump),
			Card:  cards.NoCard,
		}, nil
	}

	var restricted [NumSeats]cards.Set
	for seat := range restricted {
		restricted[seat] = pos.Belief.Hands[seat].Intersect(pos.Forced[seat])
	}
	key := Key{
		Hands:  restricted,
		Leader: uint8(pos.Leader),
		Trump:  uint8(pos.Trump),
		Depth:  uint8(min(pos.Depth, 255)),
		Cards:  uint8(pos.CardsPerPlayer),
	}
	if e, ok := s.ttable.lookup(key); ok {
		return Result{Value: e.Value, Card: e.Card}, nil
	}

	candidates := restricted[0].Cards()
	outcomes := make([][]float64, len(candidates))
	if parallel && len(candidates) > 1 {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.threads)
		for i, u := range candidates {
			g.Go(func() error {
				var err error
				outcomes[i], err = s.candidateOutcomes(gctx, pos, &restricted, u)
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return Result{}, err
		}
	} else {
		for i, u := range candidates {
			var err error
			outcomes[i], err = s.candidateOutcomes(ctx, pos, &restricted, u)
			if err != nil {
				return Result{}, err
			}
		}
	}

	best := Result{Card: cards.NoCard}
	for i, u := range candidates {
		if len(outcomes[i]) == 0 {
			continue
		}
		v := s.aggregator.Aggregate(outcomes[i])
		// strict comparison: the first candidate in enumeration order keeps
		// a tie.
		if best.Card == cards.NoCard || v > best.Value {
			best = Result{Value: v, Card: u}
		}
	}
	if best.Card == cards.NoCard {
		return Result{}, ErrNoFeasibleContinuation
	}
	s.ttable.store(key, TableEntry{Value: best.Value, Card: best.Card})
	return best, nil
}

// candidateOutcomes scores every feasible continuation in which seat 0
// plays u.
func (s *Solver) candidateOutcomes(ctx context.Context, pos *Position,
	restricted *[NumSeats]cards.Set, u cards.Card) ([]float64, error) {

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []float64
	table := trick.Table{u, cards.NoCard, cards.NoCard, cards.NoCard}
	taken := cards.Single(u)
	for r1 := restricted[1].Without(taken); !r1.IsEmpty(); {
		table[1], r1 = r1.Pop()
		t1 := taken.Add(table[1])
		for r2 := restricted[2].Without(t1); !r2.IsEmpty(); {
			table[2], r2 = r2.Pop()
			t2 := t1.Add(table[2])
			for r3 := restricted[3].Without(t2); !r3.IsEmpty(); {
				table[3], r3 = r3.Pop()
				v, ok, err := s.continuation(ctx, pos, table)
				if err != nil {
					return nil, err
				}
				if ok {
					out = append(out, v)
				}
			}
		}
	}
	return out, nil
}

// continuation scores one hypothetical trick and what follows it. ok is
// false when the trick cannot happen in any real deal.
func (s *Solver) continuation(ctx context.Context, pos *Position, table trick.Table) (float64, bool, error) {
	led := table[pos.Leader].Suit()
	trump := pos.Trump
	if trump == cards.NoSuit {
		trump = led
	}
	// seat 0's hand is known exactly, so it has to follow suit when it can.
	if pos.Leader != 0 && table[0].Suit() != led &&
		!pos.Belief.Hands[0].Intersect(cards.SuitMask(led)).IsEmpty() {
		return 0, false, nil
	}

	next := pos.Belief.Next(table, led, s.voidInference)
	if !prune.Feasible(next, pos.CardsPerPlayer) {
		s.pruned.Add(1)
		return 0, false, nil
	}

	winner := trick.Resolve(table, led, trump)
	value := float64(trick.Score(table))
	if winner%2 != 0 {
		value = -value
	}
	if pos.CardsPerPlayer-1 <= 1 {
		return value, true, nil
	}

	child := Position{
		Belief:         next,
		Leader:         winner,
		Trump:          trump,
		Depth:          pos.Depth - 1,
		CardsPerPlayer: pos.CardsPerPlayer - 1,
		Forced:         Unrestricted,
	}
	res, err := s.search(ctx, &child, false)
	if errors.Is(err, ErrNoFeasibleContinuation) {
		// the pigeonhole test let an impossible branch through; drop it.
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return value + res.Value, true, nil
}
