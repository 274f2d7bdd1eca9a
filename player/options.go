package player

import (
	"fmt"
	"strings"

	"lukechampine.com/frand"

	"github.com/atout-engine/atout/config"
)

// Options configure a SearchPlayer.
type Options struct {
	// KickIn is the hand size at or below which the solver is used.
	KickIn     int    `yaml:"kick_in"`
	Heuristic  string `yaml:"heuristic"`
	Aggregator string `yaml:"aggregator"`
	// NearDepth applies once the hand is down to EndgameTricks cards,
	// FarDepth before that.
	NearDepth     int  `yaml:"near_depth"`
	FarDepth      int  `yaml:"far_depth"`
	EndgameTricks int  `yaml:"endgame_tricks"`
	VoidInference bool `yaml:"void_inference"`

	Threads              int     `yaml:"-"`
	TTableMemoryFraction float64 `yaml:"-"`
}

func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig())
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		KickIn:               cfg.GetInt(config.ConfigKickIn),
		Heuristic:            cfg.GetString(config.ConfigHeuristic),
		Aggregator:           cfg.GetString(config.ConfigAggregator),
		NearDepth:            cfg.GetInt(config.ConfigNearDepth),
		FarDepth:             cfg.GetInt(config.ConfigFarDepth),
		EndgameTricks:        cfg.GetInt(config.ConfigEndgameTricks),
		VoidInference:        cfg.GetBool(config.ConfigVoidInference),
		Threads:              cfg.GetInt(config.ConfigThreads),
		TTableMemoryFraction: cfg.GetFloat64(config.ConfigTTableMemoryFraction),
	}
}

// FromName builds a strategy: "search" (or "dp") uses opts, "random" and
// "highest" ignore them.
func FromName(name string, opts Options, rng *frand.RNG) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "search", "dp":
		p, err := NewSearchPlayer(opts, rng)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "random":
		return NewRandomPlayer(rng), nil
	case "highest":
		return NewHighestPlayer(rng), nil
	}
	return nil, fmt.Errorf("%w: unknown strategy %q", ErrBadOptions, name)
}
