package shell

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/atout-engine/atout/automatic"
	"github.com/atout-engine/atout/cards"
	"github.com/atout-engine/atout/config"
	"github.com/atout-engine/atout/equity"
	"github.com/atout-engine/atout/game"
	"github.com/atout-engine/atout/player"
	"github.com/atout-engine/atout/solver"
	"github.com/atout-engine/atout/stats"
)

var errNoDeal = errors.New("please start a deal first with the `deal` command")

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

func (sc *ShellController) options() player.Options {
	return player.OptionsFromConfig(sc.config)
}

func (sc *ShellController) seededRNG(seed string) *frand.RNG {
	if seed == "" {
		return frand.NewCustom(frand.Bytes(32), 1024, 12)
	}
	s := automatic.DealSeed(seed, 0)
	return frand.NewCustom(s[:], 1024, 12)
}

// deal starts a new deal. -seed makes it reproducible and -players takes a
// comma-separated strategy per seat.
func (sc *ShellController) deal(cmd *shellcmd) (*Response, error) {
	if p := cmd.options.String("players"); p != "" {
		names := strings.Split(p, ",")
		if len(names) != game.NumSeats {
			return nil, fmt.Errorf("need %d players, got %d", game.NumSeats, len(names))
		}
		copy(sc.players[:], lo.Map(names, func(n string, _ int) string { return strings.TrimSpace(n) }))
	}
	seed := cmd.options.String("seed")
	if seed == "" {
		seed = sc.config.GetString(config.ConfigSeed)
	}
	sc.rng = sc.seededRNG(seed)

	var strategies [game.NumSeats]player.Strategy
	for seat, name := range sc.players {
		s, err := player.FromName(name, sc.options(), sc.rng)
		if err != nil {
			return nil, err
		}
		strategies[seat] = s
	}
	g, err := game.NewGame(game.Deal(sc.rng), strategies)
	if err != nil {
		return nil, err
	}
	sc.game = g
	return msg(g.ToDisplayText()), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoDeal
	}
	return msg(sc.game.ToDisplayText()), nil
}

// next plays n cards, one by default.
func (sc *ShellController) next(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoDeal
	}
	n := 1
	if len(cmd.args) > 0 {
		var err error
		n, err = strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	var played []string
	for i := 0; i < n && !sc.game.Done(); i++ {
		seat := sc.game.OnTurn()
		c, err := sc.game.PlayNext(sc.ctx)
		if err != nil {
			return nil, err
		}
		played = append(played, fmt.Sprintf("P%d: %v", seat+1, c))
	}
	return msg(strings.Join(played, "\n") + "\n" + sc.game.ToDisplayText()), nil
}

// trick plays until the current trick is complete.
func (sc *ShellController) trick(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoDeal
	}
	before := sc.game.TricksPlayed()
	for !sc.game.Done() && sc.game.TricksPlayed() == before {
		if _, err := sc.game.PlayNext(sc.ctx); err != nil {
			return nil, err
		}
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) auto(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoDeal
	}
	if _, err := sc.game.PlayDeal(sc.ctx); err != nil {
		return nil, err
	}
	var sb strings.Builder
	for i, t := range sc.game.History() {
		fmt.Fprintf(&sb, "%2d: %s\n", i+1, t.String())
	}
	sb.WriteString(sc.game.ToDisplayText())
	return msg(sb.String()), nil
}

// play puts a card of your choice down for the seat on turn.
func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoDeal
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <card>")
	}
	c, err := cards.ParseCard(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.game.Play(c); err != nil {
		return nil, err
	}
	return msg(sc.game.ToDisplayText()), nil
}

func (sc *ShellController) belief(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoDeal
	}
	seat := sc.game.OnTurn()
	if len(cmd.args) > 0 {
		s, err := strconv.Atoi(cmd.args[0])
		if err != nil {
			return nil, err
		}
		if s < 1 || s > game.NumSeats {
			return nil, fmt.Errorf("seat must be 1 to %d", game.NumSeats)
		}
		seat = s - 1
	}
	b := sc.game.BeliefOf(seat)
	var sb strings.Builder
	for rel, h := range b.Hands {
		abs := (seat + rel) % game.NumSeats
		voids := lo.Filter(cards.Full.Suits(), func(s cards.Suit, _ int) bool { return b.IsVoid(rel, s) })
		fmt.Fprintf(&sb, "P%d (%d cards possible, void in %v): %v\n", abs+1, h.Count(), voids, h)
	}
	return msg(sb.String()), nil
}

// solve runs the solver for the seat on turn from what that seat can know.
func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if sc.game == nil {
		return nil, errNoDeal
	}
	if sc.game.Done() {
		return nil, game.ErrDealOver
	}
	opts := sc.options()
	turn := sc.game.Turn()
	depth := opts.FarDepth
	if turn.Hand.Count() <= opts.EndgameTricks {
		depth = opts.NearDepth
	}
	depth, err := cmd.options.IntDefault("depth", depth)
	if err != nil {
		return nil, err
	}
	hname := opts.Heuristic
	if h := cmd.options.String("heuristic"); h != "" {
		hname = h
	}
	aname := opts.Aggregator
	if a := cmd.options.String("aggregator"); a != "" {
		aname = a
	}
	h, err := equity.FromName(hname)
	if err != nil {
		return nil, err
	}
	a, err := stats.AggregatorFromName(aname)
	if err != nil {
		return nil, err
	}

	s := solver.NewSolver(h, a, solver.NewTranspositionTable(opts.TTableMemoryFraction))
	s.SetVoidInference(opts.VoidInference)
	s.SetThreads(opts.Threads)
	pos := player.PositionFor(sc.game.BeliefOf(turn.Seat), turn, depth)
	res, err := s.Search(sc.ctx, pos)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("P%d should play %v (value %.2f, depth %d, %s/%s, %d nodes, %d pruned, %d/%d table hits)",
		turn.Seat+1, res.Card, res.Value, depth, h.Name(), a.Name(), s.Nodes(), s.Pruned(),
		s.TranspositionTable().Hits(), s.TranspositionTable().Lookups())), nil
}

// set shows or changes a configuration key.
func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 0 {
		keys := sc.config.AllKeys()
		sort.Strings(keys)
		lines := lo.Map(keys, func(k string, _ int) string {
			return fmt.Sprintf("%-24s %v", k, sc.config.Get(k))
		})
		return msg(strings.Join(lines, "\n")), nil
	}
	key := cmd.args[0]
	if !lo.Contains(sc.config.AllKeys(), key) {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	if len(cmd.args) == 1 {
		return msg(fmt.Sprintf("%s = %v", key, sc.config.Get(key))), nil
	}
	val := cmd.args[1]
	switch key {
	case config.ConfigHeuristic:
		if _, err := equity.FromName(val); err != nil {
			return nil, err
		}
	case config.ConfigAggregator:
		if _, err := stats.AggregatorFromName(val); err != nil {
			return nil, err
		}
	case config.ConfigDebug:
		on, err := strconv.ParseBool(val)
		if err != nil {
			return nil, err
		}
		if on {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	}
	sc.config.Set(key, val)
	log.Debug().Str("key", key).Str("value", val).Msg("config-set")
	return msg("set " + key + " to " + val), nil
}

// sweep runs an experiment plan file and prints the report.
func (sc *ShellController) sweep(cmd *shellcmd) (*Response, error) {
	var plan *automatic.Plan
	if len(cmd.args) == 0 {
		plan = automatic.DefaultPlan()
		plan.Search = sc.options()
	} else {
		var err error
		plan, err = automatic.LoadPlan(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	games, err := cmd.options.IntDefault("games", plan.Games)
	if err != nil {
		return nil, err
	}
	plan.Games = games
	threads, err := cmd.options.IntDefault("threads", sc.config.GetInt(config.ConfigThreads))
	if err != nil {
		return nil, err
	}
	r, err := automatic.NewRunner(plan, threads)
	if err != nil {
		return nil, err
	}
	r.Progress = automatic.LogProgress
	tallies, err := r.Run(sc.ctx)
	if err != nil {
		return nil, err
	}
	if out := cmd.options.String("out"); out != "" {
		if err := automatic.SaveResults(out, tallies); err != nil {
			return nil, err
		}
		return msg("results written to " + out), nil
	}
	var sb strings.Builder
	if err := automatic.WriteReport(&sb, tallies, true); err != nil {
		return nil, err
	}
	return msg(sb.String()), nil
}
