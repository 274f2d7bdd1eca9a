package game

import (
	"fmt"

	"github.com/atout-engine/atout/cards"
	"github.com/atout-engine/atout/player"
)

type seatState struct {
	strategy player.Strategy
	hand     cards.Set
	points   int
	tricks   int
}

func (s *seatState) stateString(seat int, onturn bool) string {
	marker := ""
	if onturn {
		marker = "-> "
	}
	name := "-"
	if s.strategy != nil {
		name = s.strategy.Name()
	}
	return fmt.Sprintf("%4v P%d %-32v %-40v %3d pts %2d tricks", marker, seat+1, name, s.hand, s.points, s.tricks)
}
