package player

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/atout-engine/atout/belief"
	"github.com/atout-engine/atout/cards"
	"github.com/atout-engine/atout/equity"
	"github.com/atout-engine/atout/solver"
	"github.com/atout-engine/atout/stats"
	"github.com/atout-engine/atout/trick"
)

var (
	ErrDealExhausted = errors.New("player has no cards left in this deal")
	ErrBadOptions    = errors.New("bad search player options")
)

type phase int

const (
	uninitialized phase = iota
	active
	exhausted
)

// SearchPlayer plays randomly until its hand is down to KickIn cards, then
// asks the solver. It keeps a belief about the other hands for the length of
// one deal and must not be reused for another.
type SearchPlayer struct {
	opts Options

	heuristic  equity.Heuristic
	aggregator stats.Aggregator
	solver     *solver.Solver
	rng        *frand.RNG

	phase  phase
	belief belief.State
	// countdown is the number of cards in hand when last asked to play.
	countdown int
	// err is a belief failure seen while observing, returned by the next
	// PlayCard.
	err error
}

// NewSearchPlayer validates opts and builds the player. rng may be nil.
func NewSearchPlayer(opts Options, rng *frand.RNG) (*SearchPlayer, error) {
	if opts.NearDepth < 1 || opts.FarDepth < 1 {
		return nil, fmt.Errorf("%w: depths must be positive, got near %d far %d",
			ErrBadOptions, opts.NearDepth, opts.FarDepth)
	}
	if opts.KickIn < 0 {
		return nil, fmt.Errorf("%w: negative kick-in %d", ErrBadOptions, opts.KickIn)
	}
	if opts.EndgameTricks < 0 {
		return nil, fmt.Errorf("%w: negative endgame tricks %d", ErrBadOptions, opts.EndgameTricks)
	}
	h, err := equity.FromName(opts.Heuristic)
	if err != nil {
		return nil, err
	}
	a, err := stats.AggregatorFromName(opts.Aggregator)
	if err != nil {
		return nil, err
	}
	p := &SearchPlayer{
		opts:       opts,
		heuristic:  h,
		aggregator: a,
		rng:        rng,
	}
	return p, nil
}

func (p *SearchPlayer) Name() string {
	return fmt.Sprintf("search(%s,%s,kick-in=%d)", p.heuristic.Name(), p.aggregator.Name(), p.opts.KickIn)
}

// Belief is the current view of the other hands, relative to this seat.
func (p *SearchPlayer) Belief() belief.State {
	return p.belief
}

func (p *SearchPlayer) start(hand cards.Set) {
	p.belief = belief.New(hand)
	p.countdown = hand.Count()
	p.phase = active
	p.err = nil
}

// StartDeal gives the player its dealt hand before any card is played, so
// it follows every trick even if it is not the one choosing its cards.
func (p *SearchPlayer) StartDeal(hand cards.Set) {
	p.start(hand)
}

// ensureSolver builds the solver and its table lazily, so players that
// never reach the kick-in never allocate a table.
func (p *SearchPlayer) ensureSolver() {
	if p.solver != nil {
		return
	}
	p.solver = solver.NewSolver(p.heuristic, p.aggregator,
		solver.NewTranspositionTable(p.opts.TTableMemoryFraction))
	p.solver.SetVoidInference(p.opts.VoidInference)
	p.solver.SetThreads(p.opts.Threads)
}

func (p *SearchPlayer) PlayCard(ctx context.Context, turn Turn) (cards.Card, error) {
	switch p.phase {
	case uninitialized:
		p.start(turn.Hand)
	case exhausted:
		return cards.NoCard, ErrDealExhausted
	}
	if p.err != nil {
		return cards.NoCard, p.err
	}
	if turn.Playable.IsEmpty() {
		return cards.NoCard, ErrNothingPlayable
	}

	p.countdown = turn.Hand.Count()
	c, err := p.choose(ctx, turn)
	if err != nil {
		return cards.NoCard, err
	}
	if p.countdown <= 1 {
		p.phase = exhausted
	}
	return c, nil
}

func (p *SearchPlayer) choose(ctx context.Context, turn Turn) (cards.Card, error) {
	if p.countdown > p.opts.KickIn {
		return pickRandom(p.rng, turn.Playable)
	}
	if turn.Playable.Count() == 1 {
		c, _ := turn.Playable.First()
		return c, nil
	}
	p.ensureSolver()

	depth := p.opts.FarDepth
	if p.countdown <= p.opts.EndgameTricks {
		depth = p.opts.NearDepth
	}
	pos := PositionFor(p.belief, turn, depth)
	res, err := p.solver.Search(ctx, pos)
	if err != nil {
		return cards.NoCard, fmt.Errorf("seat %d: %w", turn.Seat, err)
	}
	log.Debug().Int("seat", turn.Seat).Str("card", res.Card.String()).
		Float64("value", res.Value).Int("depth", depth).Int("cards", p.countdown).
		Msg("search-player-chose")
	return res.Card, nil
}

func (p *SearchPlayer) ObserveTrick(table trick.Table, led cards.Suit, seat int) {
	if p.phase == uninitialized {
		return
	}
	p.belief.Observe(table.Rotate(seat), led)
	if err := p.belief.Validate(); err != nil && p.err == nil {
		log.Error().Err(err).Int("seat", seat).Msg("belief-inconsistent")
		p.err = fmt.Errorf("seat %d: %w", seat, err)
	}
}

// PositionFor is the search position of turn as seen through b, the belief
// of the seat on turn. The cards already on the table are forced for the
// seats that played them.
func PositionFor(b belief.State, turn Turn, depth int) solver.Position {
	forced := solver.Unrestricted
	forced[0] = turn.Playable
	for rel := 1; rel < trick.NumSeats; rel++ {
		if c := turn.Table[(turn.Seat+rel)%trick.NumSeats]; c != cards.NoCard {
			forced[rel] = cards.Single(c)
		}
	}
	return solver.Position{
		Belief:         b,
		Leader:         (turn.Leader - turn.Seat + trick.NumSeats) % trick.NumSeats,
		Trump:          turn.Trump,
		Depth:          depth,
		CardsPerPlayer: turn.Hand.Count(),
		Forced:         forced,
	}
}
