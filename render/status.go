package render

import (
	"fmt"

	"github.com/plus3/blockfall/tetris"
)

// StatusLines returns the HUD text for a board: its score and, when not
// simply running, its state.
func StatusLines(b *tetris.Board) []string {
	lines := []string{fmt.Sprintf("%s  score %d", b.ID(), b.Score())}

	switch {
	case b.ForceStopped() && b.Win():
		lines = append(lines, "stopped: win")
	case b.ForceStopped():
		lines = append(lines, "stopped: lose")
	case b.GameOver():
		lines = append(lines, "game over")
	case b.Paused():
		lines = append(lines, "paused")
	}
	return lines
}
