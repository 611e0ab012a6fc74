package engine

import (
	"time"

	"github.com/plus3/blockfall/tetris"
)

// Frame is what renderers see after each tick or input.
type Frame struct {
	Tick     int64
	Interval time.Duration
	Board    *tetris.Board
	Commands *Commands
	Stats    LoopStats
}
