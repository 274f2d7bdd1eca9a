// Package automatic plays search players against simple opponents over many
// deals and tallies how each configuration does.
package automatic

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/atout-engine/atout/game"
	"github.com/atout-engine/atout/player"
	"github.com/atout-engine/atout/stats"
)

// DealResult is the outcome of one deal of a matchup.
type DealResult struct {
	Index int
	// SearchPoints and OpponentPoints are team totals.
	SearchPoints   int
	OpponentPoints int
	Err            error
}

// Tally sums up a matchup.
type Tally struct {
	Matchup        Matchup
	SearchPoints   int
	OpponentPoints int
	Wins           int
	Losses         int
	Draws          int
	// Errors counts aborted deals: illegal cards or an inconsistent belief.
	Errors int
	Margin stats.Statistic
	// Margins is the per-deal difference, search minus opponent.
	Margins []float64
}

func (t *Tally) add(r DealResult) {
	if r.Err != nil {
		t.Errors++
		return
	}
	t.SearchPoints += r.SearchPoints
	t.OpponentPoints += r.OpponentPoints
	margin := float64(r.SearchPoints - r.OpponentPoints)
	t.Margin.Push(margin)
	t.Margins = append(t.Margins, margin)
	switch {
	case margin > 0:
		t.Wins++
	case margin < 0:
		t.Losses++
	default:
		t.Draws++
	}
}

// Runner plays the deals of a plan.
type Runner struct {
	plan    *Plan
	threads int
	seeds   [][32]byte
	// Progress, if set, is called after each matchup.
	Progress func(t *Tally)
}

func NewRunner(plan *Plan, threads int) (*Runner, error) {
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	r := &Runner{plan: plan, threads: max(threads, 1)}
	if plan.SeedsFile != "" {
		seeds, err := LoadSeeds(plan.SeedsFile)
		if err != nil {
			return nil, err
		}
		if len(seeds) < plan.Games {
			return nil, fmt.Errorf("%w: %d seeds for %d games", ErrBadPlan, len(seeds), plan.Games)
		}
		r.seeds = seeds
	}
	return r, nil
}

func (r *Runner) dealSeed(idx int) [32]byte {
	if r.seeds != nil {
		return r.seeds[idx]
	}
	return DealSeed(r.plan.seedName(), idx)
}

// Run plays every matchup of the plan in order.
func (r *Runner) Run(ctx context.Context) ([]*Tally, error) {
	var tallies []*Tally
	for _, m := range r.plan.Matchups() {
		t, err := r.RunMatchup(ctx, m)
		if err != nil {
			return tallies, err
		}
		tallies = append(tallies, t)
		if r.Progress != nil {
			r.Progress(t)
		}
	}
	return tallies, nil
}

// RunMatchup plays the plan's deals for one matchup, several at a time.
// Deal i is the same for every matchup. Aborted deals are counted, not
// fatal; only cancellation stops the run.
func (r *Runner) RunMatchup(ctx context.Context, m Matchup) (*Tally, error) {
	results := make([]DealResult, r.plan.Games)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.threads)
	for i := range results {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = r.playDeal(gctx, m, i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := &Tally{Matchup: m}
	for _, res := range results {
		if res.Err != nil {
			log.Error().Err(res.Err).Int("deal", res.Index).Str("matchup", m.String()).Msg("deal-aborted")
		}
		t.add(res)
	}
	log.Debug().Str("matchup", m.String()).Int("search", t.SearchPoints).
		Int("opponent", t.OpponentPoints).Int("errors", t.Errors).Msg("matchup-finished")
	return t, nil
}

func (r *Runner) playDeal(ctx context.Context, m Matchup, idx int) DealResult {
	res := DealResult{Index: idx}
	seed := r.dealSeed(idx)
	rng := frand.NewCustom(seed[:], 1024, 12)
	hands := game.Deal(rng)

	opts := r.plan.Search
	opts.Heuristic = m.Heuristic
	opts.Aggregator = m.Aggregator
	opts.KickIn = m.KickIn
	opts.Threads = 1

	searchSeat := 0
	if !m.SearchFirst {
		searchSeat = 1
	}
	var strategies [game.NumSeats]player.Strategy
	for seat := range strategies {
		var err error
		if seat%2 == searchSeat {
			strategies[seat], err = player.NewSearchPlayer(opts, rng)
		} else {
			strategies[seat], err = player.FromName(m.Opponent, opts, rng)
		}
		if err != nil {
			res.Err = err
			return res
		}
	}
	g, err := game.NewGame(hands, strategies)
	if err != nil {
		res.Err = err
		return res
	}
	if _, err := g.PlayDeal(ctx); err != nil {
		res.Err = fmt.Errorf("deal %d: %w", idx, err)
		return res
	}
	team := g.TeamScores()
	res.SearchPoints = team[searchSeat]
	res.OpponentPoints = team[1-searchSeat]
	return res
}
