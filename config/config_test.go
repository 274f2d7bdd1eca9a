package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetInt(ConfigKickIn), 5)
	is.Equal(cfg.GetString(ConfigHeuristic), "future:0.4")
	is.Equal(cfg.GetString(ConfigAggregator), "mean")
	is.Equal(cfg.GetInt(ConfigNearDepth), 3)
	is.Equal(cfg.GetInt(ConfigFarDepth), 1)
	is.True(cfg.GetBool(ConfigVoidInference))
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	is := is.New(t)
	t.Setenv("ATOUT_KICK_IN", "8")
	t.Setenv("ATOUT_AGGREGATOR", "min")

	cfg := &Config{}
	err := cfg.Load([]string{"--aggregator", "cutoff:0.25", "--threads=4"})
	is.NoErr(err)
	is.Equal(cfg.GetInt(ConfigKickIn), 8)
	is.Equal(cfg.GetString(ConfigAggregator), "cutoff:0.25")
	is.Equal(cfg.GetInt(ConfigThreads), 4)
	is.Equal(cfg.GetString(ConfigHeuristic), "future:0.4")
}

func TestUnknownFlag(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.True(cfg.Load([]string{"--lexicon", "NWL18"}) != nil)
}

func TestArgsAfterFlags(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--debug", "--", "deal", "-seed", "abc"}))
	is.True(cfg.GetBool(ConfigDebug))
	is.Equal(cfg.Args(), []string{"deal", "-seed", "abc"})
}
