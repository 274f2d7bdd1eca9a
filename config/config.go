package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDebug                = "debug"
	ConfigThreads              = "threads"
	ConfigKickIn               = "kick-in"
	ConfigHeuristic            = "heuristic"
	ConfigAggregator           = "aggregator"
	ConfigNearDepth            = "near-depth"
	ConfigFarDepth             = "far-depth"
	ConfigEndgameTricks        = "endgame-tricks"
	ConfigVoidInference        = "void-inference"
	ConfigTTableMemoryFraction = "ttable-memory-fraction"
	ConfigSeed                 = "seed"
	ConfigCPUProfile           = "cpu-profile"
	ConfigMemProfile           = "mem-profile"
)

type Config struct {
	viper.Viper
	args []string
}

// DefaultConfig has every key at its default value, without looking at the
// environment or any flags. Tests use it.
func DefaultConfig() *Config {
	c := &Config{Viper: *viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	c.SetDefault(ConfigDebug, false)
	c.SetDefault(ConfigThreads, 1)
	c.SetDefault(ConfigKickIn, 5)
	c.SetDefault(ConfigHeuristic, "future:0.4")
	c.SetDefault(ConfigAggregator, "mean")
	c.SetDefault(ConfigNearDepth, 3)
	c.SetDefault(ConfigFarDepth, 1)
	c.SetDefault(ConfigEndgameTricks, 3)
	c.SetDefault(ConfigVoidInference, true)
	c.SetDefault(ConfigTTableMemoryFraction, 0.05)
	c.SetDefault(ConfigSeed, "")
	c.SetDefault(ConfigCPUProfile, "")
	c.SetDefault(ConfigMemProfile, "")
}

// Args are the arguments left after the flags, a command line for the shell.
func (c *Config) Args() []string {
	return c.args
}

// Load reads the environment (ATOUT_ prefix, dashes become underscores) and
// then the command-line arguments, which take precedence.
func (c *Config) Load(args []string) error {
	c.Viper = *viper.New()
	c.setDefaults()
	c.SetEnvPrefix("atout")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	fs := pflag.NewFlagSet("atout", pflag.ContinueOnError)
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.Int(ConfigThreads, 1, "goroutines used by the solver and the experiment runner")
	fs.Int(ConfigKickIn, 5, "cards left in hand at which the solver takes over from random play")
	fs.String(ConfigHeuristic, "future:0.4", "leaf heuristic: future[:ratio], best-card, hand-points")
	fs.String(ConfigAggregator, "mean", "outcome aggregator: mean, min, min-utility, cutoff:fraction")
	fs.Int(ConfigNearDepth, 3, "look-ahead in tricks for the last few tricks of a deal")
	fs.Int(ConfigFarDepth, 1, "look-ahead in tricks earlier in the deal")
	fs.Int(ConfigEndgameTricks, 3, "cards in hand at or below which the near depth applies")
	fs.Bool(ConfigVoidInference, true, "infer voids inside the look-ahead")
	fs.Float64(ConfigTTableMemoryFraction, 0.05, "fraction of system memory for the transposition table")
	fs.String(ConfigSeed, "", "seed for reproducible deals")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this file")
	fs.String(ConfigMemProfile, "", "write a heap profile to this file on exit")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	// only flags given explicitly override the environment.
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err == nil {
			err = c.BindPFlag(f.Name, f)
		}
	})
	return err
}
