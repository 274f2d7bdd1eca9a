// Package stats reduces lists of outcomes to single numbers: the
// aggregators the solver applies per candidate card, and running
// statistics the experiment harness keeps per matchup.
package stats

import (
	"fmt"
	"math"
)

const (
	Epsilon = 1e-6
)

func FuzzyEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Statistic is a running mean and variance (Welford's algorithm) plus the
// extremes seen so far.
type Statistic struct {
	n    int
	mean float64
	m2   float64
	min  float64
	max  float64
}

func (s *Statistic) Push(val float64) {
	s.n++
	if s.n == 1 {
		s.mean, s.m2, s.min, s.max = val, 0, val, val
		return
	}
	delta := val - s.mean
	s.mean += delta / float64(s.n)
	s.m2 += delta * (val - s.mean)
	s.min = math.Min(s.min, val)
	s.max = math.Max(s.max, val)
}

func (s *Statistic) Mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.mean
}

func (s *Statistic) Variance() float64 {
	if s.n <= 1 {
		return 0
	}
	return s.m2 / float64(s.n-1)
}

func (s *Statistic) Stdev() float64 {
	return math.Sqrt(s.Variance())
}

// StandardError is the half-width of the confidence interval for the mean
// at the given two-tailed z value.
func (s *Statistic) StandardError(z float64) float64 {
	if s.n == 0 {
		return 0
	}
	return z * math.Sqrt(s.Variance()/float64(s.n))
}

func (s *Statistic) Min() float64 { return s.min }
func (s *Statistic) Max() float64 { return s.max }

func (s *Statistic) Iterations() int {
	return s.n
}

func (s *Statistic) String() string {
	return fmt.Sprintf("%.2f ± %.2f (n=%d)", s.Mean(), s.StandardError(Z95), s.n)
}
