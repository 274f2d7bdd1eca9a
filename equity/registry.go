package equity

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownHeuristic = errors.New("unknown heuristic")

// DefaultFutureRatio is used when "future" is named without a ratio.
const DefaultFutureRatio = 0.4

// FromName builds a heuristic from its configuration name:
// "future[:ratio]", "best-card" or "hand-points".
func FromName(name string) (Heuristic, error) {
	kind, arg, hasArg := strings.Cut(strings.TrimSpace(strings.ToLower(name)), ":")
	switch kind {
	case "future":
		ratio := DefaultFutureRatio
		if hasArg {
			r, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: bad ratio in %q: %w", ErrUnknownHeuristic, name, err)
			}
			if r < 0 || r > 1 {
				return nil, fmt.Errorf("%w: ratio %v out of [0, 1]", ErrUnknownHeuristic, r)
			}
			ratio = r
		}
		return Future{Ratio: ratio}, nil
	case "best-card", "best_card_win":
		if hasArg {
			break
		}
		return BestCard{}, nil
	case "hand-points", "hand":
		if hasArg {
			break
		}
		return HandPoints{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownHeuristic, name)
}
