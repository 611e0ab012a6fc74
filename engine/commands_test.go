package engine_test

import (
	"sync"
	"testing"
	"time"

	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandsFlushInOrder(t *testing.T) {
	board := newBoard(t, 15)
	loop := engine.NewLoop(board, engine.NewStepScheduler())
	loop.Start()

	var order []string
	cmds := loop.Commands()
	cmds.Defer(func() { order = append(order, "first") })
	cmds.Action(tetris.ActionMoveLeft)
	cmds.Key(tetris.KeyD)
	cmds.Key(tetris.KeyD)
	cmds.Defer(func() { order = append(order, "last") })
	assert.Equal(t, 5, cmds.Len())

	assert.Equal(t, 5, loop.Flush())
	assert.Zero(t, cmds.Len())
	assert.Equal(t, []string{"first", "last"}, order)
	assert.Equal(t, tetris.Point{Col: 4, Row: -2}, board.Piece().Anchor())
	assert.Equal(t, int64(3), loop.Stats().Inputs)
}

func TestCommandsQueuedDuringFlushWait(t *testing.T) {
	board := newBoard(t, 15)
	loop := engine.NewLoop(board, engine.NewStepScheduler())

	ran := 0
	loop.Commands().Defer(func() {
		ran++
		loop.Commands().Defer(func() { ran++ })
	})

	assert.Equal(t, 1, loop.Flush())
	assert.Equal(t, 1, ran)
	assert.Equal(t, 1, loop.Flush())
	assert.Equal(t, 2, ran)
}

func TestCommandsControlBoard(t *testing.T) {
	board := newBoard(t, 15)
	loop := engine.NewLoop(board, engine.NewStepScheduler())

	loop.Commands().TogglePause()
	loop.Flush()
	assert.True(t, board.Paused())

	loop.Commands().SetPaused(false)
	loop.Commands().SetSpeed(5)
	loop.Commands().SetSpeed(-1)
	loop.Flush()
	assert.False(t, board.Paused())
	assert.Equal(t, 5, loop.Speed())
	assert.Equal(t, 200*time.Millisecond, loop.Interval())

	loop.Commands().ForceStop(false)
	loop.Flush()
	assert.True(t, board.ForceStopped())
	assert.False(t, board.Win())
}

func TestCommandsConcurrentProducers(t *testing.T) {
	board := newBoard(t, 15)
	loop := engine.NewLoop(board, engine.NewStepScheduler())

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				loop.Commands().Defer(func() {})
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 400, loop.Commands().Len())
	assert.Equal(t, 400, loop.Flush())
}
