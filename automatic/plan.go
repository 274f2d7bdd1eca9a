package automatic

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/atout-engine/atout/equity"
	"github.com/atout-engine/atout/player"
	"github.com/atout-engine/atout/stats"
)

var ErrBadPlan = errors.New("bad experiment plan")

// Plan is an experiment: every combination of heuristic, aggregator, kick-in
// and opponent is played for Games deals, once with the search team seated
// first and once seated second.
type Plan struct {
	Name        string   `yaml:"name"`
	Heuristics  []string `yaml:"heuristics"`
	Aggregators []string `yaml:"aggregators"`
	KickIns     []int    `yaml:"kick_ins"`
	Opponents   []string `yaml:"opponents"`
	Games       int      `yaml:"games"`
	// Seed names the deals. Two plans with the same seed play the same
	// deals. Empty means the plan name.
	Seed string `yaml:"seed,omitempty"`
	// SeedsFile, if set, lists the deal seeds explicitly (see LoadSeeds).
	SeedsFile string `yaml:"seeds_file,omitempty"`
	// Search holds the depth settings shared by every matchup.
	Search player.Options `yaml:"search"`
}

// DefaultPlan is the sweep the engine was tuned with.
func DefaultPlan() *Plan {
	return &Plan{
		Name:        "default",
		Heuristics:  []string{"future:0.4", "future:0.6", "best-card"},
		Aggregators: []string{"cutoff:0.25", "mean", "min", "cutoff:0.45"},
		KickIns:     []int{5, 10},
		Opponents:   []string{"random"},
		Games:       100,
		Search:      player.DefaultOptions(),
	}
}

func LoadPlan(path string) (*Plan, error) {
	bts, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParsePlan(bts)
}

// ParsePlan reads a YAML plan. Missing fields keep DefaultPlan's values.
func ParsePlan(bts []byte) (*Plan, error) {
	p := DefaultPlan()
	if err := yaml.Unmarshal(bts, p); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadPlan, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Plan) Marshal() ([]byte, error) {
	return yaml.Marshal(p)
}

// Validate checks every name in the plan before any deal is played.
func (p *Plan) Validate() error {
	if p.Games < 1 {
		return fmt.Errorf("%w: games must be positive, got %d", ErrBadPlan, p.Games)
	}
	if len(p.Heuristics) == 0 || len(p.Aggregators) == 0 || len(p.KickIns) == 0 || len(p.Opponents) == 0 {
		return fmt.Errorf("%w: heuristics, aggregators, kick-ins and opponents must all be listed", ErrBadPlan)
	}
	for _, h := range p.Heuristics {
		if _, err := equity.FromName(h); err != nil {
			return fmt.Errorf("%w: %w", ErrBadPlan, err)
		}
	}
	for _, a := range p.Aggregators {
		if _, err := stats.AggregatorFromName(a); err != nil {
			return fmt.Errorf("%w: %w", ErrBadPlan, err)
		}
	}
	for _, o := range p.Opponents {
		if _, err := player.FromName(o, p.Search, nil); err != nil {
			return fmt.Errorf("%w: %w", ErrBadPlan, err)
		}
	}
	for _, k := range p.KickIns {
		opts := p.Search
		opts.KickIn = k
		if _, err := player.NewSearchPlayer(opts, nil); err != nil {
			return fmt.Errorf("%w: %w", ErrBadPlan, err)
		}
	}
	return nil
}

// Matchup is one cell of the sweep.
type Matchup struct {
	Heuristic  string `yaml:"heuristic"`
	Aggregator string `yaml:"aggregator"`
	KickIn     int    `yaml:"kick_in"`
	Opponent   string `yaml:"opponent"`
	// SearchFirst seats the search team at 0 and 2, otherwise at 1 and 3.
	SearchFirst bool `yaml:"search_first"`
}

func (m Matchup) String() string {
	seating := "search vs " + m.Opponent
	if !m.SearchFirst {
		seating = m.Opponent + " vs search"
	}
	return fmt.Sprintf("%s -- heuristic=%s, aggregator=%s, kick_in=%d",
		seating, m.Heuristic, m.Aggregator, m.KickIn)
}

// Matchups lists the cells of the sweep in a fixed order.
func (p *Plan) Matchups() []Matchup {
	var out []Matchup
	for _, h := range p.Heuristics {
		for _, a := range p.Aggregators {
			for _, k := range p.KickIns {
				for _, o := range p.Opponents {
					for _, first := range []bool{true, false} {
						out = append(out, Matchup{
							Heuristic: h, Aggregator: a, KickIn: k,
							Opponent: o, SearchFirst: first,
						})
					}
				}
			}
		}
	}
	return out
}

func (p *Plan) seedName() string {
	if p.Seed != "" {
		return p.Seed
	}
	return p.Name
}
