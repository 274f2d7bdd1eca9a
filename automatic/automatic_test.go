package automatic

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	os.Exit(m.Run())
}

func smallPlan() *Plan {
	p := DefaultPlan()
	p.Name = "small"
	p.Heuristics = []string{"future:0.4"}
	p.Aggregators = []string{"mean"}
	p.KickIns = []int{3}
	p.Games = 4
	p.Search.TTableMemoryFraction = 0
	return p
}

func TestParsePlanKeepsDefaults(t *testing.T) {
	p, err := ParsePlan([]byte(`
name: tiny
heuristics: [best-card]
games: 7
`))
	require.NoError(t, err)
	assert.Equal(t, "tiny", p.Name)
	assert.Equal(t, []string{"best-card"}, p.Heuristics)
	assert.Equal(t, 7, p.Games)
	assert.Equal(t, DefaultPlan().Aggregators, p.Aggregators)
	assert.Equal(t, 3, p.Search.NearDepth)
}

func TestParsePlanRejectsBadNames(t *testing.T) {
	for _, doc := range []string{
		"heuristics: [crystal-ball]",
		"aggregators: [median]",
		"opponents: [oracle]",
		"kick_ins: [-1]",
		"games: 0",
		"search: {near_depth: 0}",
		"heuristics: [",
	} {
		_, err := ParsePlan([]byte(doc))
		assert.ErrorIs(t, err, ErrBadPlan, doc)
	}
}

func TestPlanRoundTrip(t *testing.T) {
	p := smallPlan()
	p.Seed = "fixed"
	bts, err := p.Marshal()
	require.NoError(t, err)
	back, err := ParsePlan(bts)
	require.NoError(t, err)
	// threads and table size are not part of a plan file
	p.Search.TTableMemoryFraction = back.Search.TTableMemoryFraction
	p.Search.Threads = back.Search.Threads
	assert.Equal(t, p, back)
}

func TestMatchups(t *testing.T) {
	ms := DefaultPlan().Matchups()
	// 3 heuristics, 4 aggregators, 2 kick-ins, 1 opponent, 2 seatings
	assert.Len(t, ms, 48)
	assert.Equal(t, Matchup{Heuristic: "future:0.4", Aggregator: "cutoff:0.25", KickIn: 5,
		Opponent: "random", SearchFirst: true}, ms[0])
	assert.False(t, ms[1].SearchFirst)
	assert.Equal(t, "random vs search -- heuristic=future:0.4, aggregator=cutoff:0.25, kick_in=5",
		ms[1].String())
}

func TestDealSeed(t *testing.T) {
	assert.Equal(t, DealSeed("a", 1), DealSeed("a", 1))
	assert.NotEqual(t, DealSeed("a", 1), DealSeed("a", 2))
	assert.NotEqual(t, DealSeed("a", 1), DealSeed("b", 1))
}

func TestSeedsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seeds.txt")
	seeds := GenerateSeeds(5)
	require.NoError(t, SaveSeeds(seeds, path))
	back, err := LoadSeeds(path)
	require.NoError(t, err)
	assert.Equal(t, seeds, back)

	p := smallPlan()
	p.SeedsFile = path
	p.Games = 6
	_, err = NewRunner(p, 1)
	assert.ErrorIs(t, err, ErrBadPlan)
}

func TestRunMatchupTalliesEveryPoint(t *testing.T) {
	p := smallPlan()
	r, err := NewRunner(p, 2)
	require.NoError(t, err)
	for _, m := range p.Matchups() {
		tally, err := r.RunMatchup(context.Background(), m)
		require.NoError(t, err)
		assert.Equal(t, 0, tally.Errors)
		assert.Equal(t, 100*p.Games, tally.SearchPoints+tally.OpponentPoints)
		assert.Equal(t, p.Games, tally.Wins+tally.Losses+tally.Draws)
		assert.Equal(t, p.Games, tally.Margin.Iterations())
	}
}

func TestRunIsReproducible(t *testing.T) {
	p := smallPlan()
	p.Games = 3
	r1, err := NewRunner(p, 1)
	require.NoError(t, err)
	r3, err := NewRunner(p, 3)
	require.NoError(t, err)

	var progressed int
	r1.Progress = func(*Tally) { progressed++ }
	t1, err := r1.Run(context.Background())
	require.NoError(t, err)
	t3, err := r3.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, progressed)
	require.Len(t, t1, 2)
	require.Len(t, t3, 2)
	for i := range t1 {
		assert.Equal(t, t1[i].Margins, t3[i].Margins)
	}
}

func TestCancelledRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r, err := NewRunner(smallPlan(), 2)
	require.NoError(t, err)
	_, err = r.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReportAndResults(t *testing.T) {
	p := smallPlan()
	r, err := NewRunner(p, 2)
	require.NoError(t, err)
	tally, err := r.RunMatchup(context.Background(), p.Matchups()[0])
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, []*Tally{tally}, true))
	assert.Contains(t, buf.String(), "search vs random -- heuristic=future:0.4, aggregator=mean, kick_in=3")

	path := filepath.Join(t.TempDir(), "results.yaml")
	require.NoError(t, SaveResults(path, []*Tally{tally}))
	bts, err := os.ReadFile(path)
	require.NoError(t, err)
	var back []Summary
	require.NoError(t, yaml.Unmarshal(bts, &back))
	require.Len(t, back, 1)
	assert.Equal(t, tally.Matchup, back[0].Matchup)
	assert.Equal(t, tally.SearchPoints, back[0].SearchPoints)
	assert.Equal(t, p.Games, back[0].Deals)
}

func TestLogProgressLeavesTheReportToWriteReport(t *testing.T) {
	var buf bytes.Buffer
	saved, level := log.Logger, zerolog.GlobalLevel()
	log.Logger = zerolog.New(&buf)
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	defer func() {
		log.Logger = saved
		zerolog.SetGlobalLevel(level)
	}()

	p := smallPlan()
	r, err := NewRunner(p, 2)
	require.NoError(t, err)
	r.Progress = LogProgress
	tallies, err := r.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, tallies, 2)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, `"message":"matchup-done"`))
	assert.Contains(t, out, `"matchup":"search vs random -- heuristic=future:0.4, aggregator=mean, kick_in=3"`)
	assert.NotContains(t, out, "W-L-D")
}
