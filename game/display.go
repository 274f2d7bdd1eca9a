package game

import (
	"fmt"
	"strings"
)

// ToDisplayText shows every hand, the trick in progress and the score.
func (g *Game) ToDisplayText() string {
	var lines []string
	onturn := -1
	if !g.Done() {
		onturn = g.OnTurn()
	}
	for seat, s := range g.seats {
		lines = append(lines, s.stateString(seat, seat == onturn))
	}
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Trump: %v", g.trump))
	lines = append(lines, fmt.Sprintf("Trick %d: %v (led %v)", len(g.history)+1, g.current.Cards, g.current.Led))
	if n := len(g.history); n > 0 {
		last := g.history[n-1]
		lines = append(lines, fmt.Sprintf("Last trick: %v", last.String()))
	}
	team := g.TeamScores()
	lines = append(lines, fmt.Sprintf("Score: P1+P3 %d, P2+P4 %d", team[0], team[1]))
	if g.Done() {
		lines = append(lines, "Deal is over.")
	}
	return strings.Join(lines, "\n")
}
