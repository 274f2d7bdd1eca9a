package stats

import "gonum.org/v1/gonum/stat/distuv"

var (
	Z95 = ZVal(95)
	Z99 = ZVal(99)
)

// ZVal is the two-tailed z value for a confidence level given in percent.
func ZVal(confidence float64) float64 {
	return distuv.UnitNormal.Quantile(0.5 + confidence/200)
}
