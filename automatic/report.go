package automatic

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/atout-engine/atout/stats"
)

const histogramBins = 12

func (t *Tally) String() string {
	return fmt.Sprintf("%s: search %d, opponent %d, W-L-D %d-%d-%d, margin %s, errors %d",
		t.Matchup, t.SearchPoints, t.OpponentPoints, t.Wins, t.Losses, t.Draws,
		t.Margin.String(), t.Errors)
}

// LogProgress logs a finished matchup. It suits Runner.Progress when the
// full report is printed at the end.
func LogProgress(t *Tally) {
	log.Info().Str("matchup", t.Matchup.String()).Int("search", t.SearchPoints).
		Int("opponent", t.OpponentPoints).Int("errors", t.Errors).Msg("matchup-done")
}

// WriteReport prints one line per tally and, if asked, a histogram of the
// per-deal margins under each line.
func WriteReport(w io.Writer, tallies []*Tally, withHistogram bool) error {
	for _, t := range tallies {
		if _, err := fmt.Fprintln(w, t.String()); err != nil {
			return err
		}
		// a histogram needs a spread of values to bin.
		if !withHistogram || len(t.Margins) == 0 || t.Margin.Min() == t.Margin.Max() {
			continue
		}
		hist := histogram.Hist(histogramBins, t.Margins)
		if err := histogram.Fprint(w, hist, histogram.Linear(40)); err != nil {
			return err
		}
		fmt.Fprintln(w, strings.Repeat("-", 60))
	}
	return nil
}

// Summary is the part of a tally saved to a results file.
type Summary struct {
	Matchup        Matchup `yaml:"matchup"`
	Deals          int     `yaml:"deals"`
	SearchPoints   int     `yaml:"search_points"`
	OpponentPoints int     `yaml:"opponent_points"`
	Wins           int     `yaml:"wins"`
	Losses         int     `yaml:"losses"`
	Draws          int     `yaml:"draws"`
	Errors         int     `yaml:"errors"`
	MeanMargin     float64 `yaml:"mean_margin"`
	MarginStdErr   float64 `yaml:"margin_stderr_95"`
}

func Summarize(tallies []*Tally) []Summary {
	out := make([]Summary, len(tallies))
	for i, t := range tallies {
		out[i] = Summary{
			Matchup:        t.Matchup,
			Deals:          t.Margin.Iterations(),
			SearchPoints:   t.SearchPoints,
			OpponentPoints: t.OpponentPoints,
			Wins:           t.Wins,
			Losses:         t.Losses,
			Draws:          t.Draws,
			Errors:         t.Errors,
			MeanMargin:     t.Margin.Mean(),
			MarginStdErr:   t.Margin.StandardError(stats.Z95),
		}
	}
	return out
}

// SaveResults writes the summaries of tallies to path as YAML.
func SaveResults(path string, tallies []*Tally) error {
	bts, err := yaml.Marshal(Summarize(tallies))
	if err != nil {
		return err
	}
	return os.WriteFile(path, bts, 0o644)
}
