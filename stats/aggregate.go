package stats

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var ErrUnknownAggregator = errors.New("unknown aggregator")

// Aggregator reduces the outcomes of every continuation explored for one
// candidate card to the single score that candidate is ranked by. It must
// not modify its input. Callers never pass an empty slice.
type Aggregator interface {
	Aggregate(outcomes []float64) float64
	Name() string
}

// Mean treats every continuation as equally likely.
type Mean struct{}

func (Mean) Aggregate(outcomes []float64) float64 {
	return stat.Mean(outcomes, nil)
}

func (Mean) Name() string { return "mean" }

// Min assumes the worst continuation is the real one.
type Min struct{}

func (Min) Aggregate(outcomes []float64) float64 {
	return floats.Min(outcomes)
}

func (Min) Name() string { return "min" }

// MinUtility is Min after doubling every loss.
type MinUtility struct{}

func (MinUtility) Aggregate(outcomes []float64) float64 {
	return floats.Min(lo.Map(outcomes, func(v float64, _ int) float64 {
		if v < 0 {
			return 2 * v
		}
		return v
	}))
}

func (MinUtility) Name() string { return "min-utility" }

// Cutoff sorts the outcomes ascending and picks the one at Fraction of the
// way up: 0 is Min, 0.25 the first-quartile outcome.
type Cutoff struct {
	Fraction float64
}

func (c Cutoff) Aggregate(outcomes []float64) float64 {
	sorted := slices.Clone(outcomes)
	slices.Sort(sorted)
	idx := int(float64(len(sorted)) * c.Fraction)
	return sorted[min(max(idx, 0), len(sorted)-1)]
}

func (c Cutoff) Name() string {
	return "cutoff:" + strconv.FormatFloat(c.Fraction, 'g', -1, 64)
}

// AggregatorFromName builds an aggregator from its configuration name:
// "mean", "min", "min-utility" or "cutoff:<fraction>".
func AggregatorFromName(name string) (Aggregator, error) {
	kind, arg, hasArg := strings.Cut(strings.TrimSpace(strings.ToLower(name)), ":")
	if kind == "cutoff" {
		if !hasArg {
			return nil, fmt.Errorf("%w: cutoff needs a fraction, e.g. cutoff:0.25", ErrUnknownAggregator)
		}
		f, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad fraction in %q: %w", ErrUnknownAggregator, name, err)
		}
		if f < 0 || f >= 1 {
			return nil, fmt.Errorf("%w: fraction %v out of [0, 1)", ErrUnknownAggregator, f)
		}
		return Cutoff{Fraction: f}, nil
	}
	if hasArg {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAggregator, name)
	}
	switch kind {
	case "mean":
		return Mean{}, nil
	case "min":
		return Min{}, nil
	case "min-utility":
		return MinUtility{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAggregator, name)
}
