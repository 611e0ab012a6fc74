package engine

import (
	"sync"

	"github.com/plus3/blockfall/tetris"
)

// Commands buffers operations that must run on the loop goroutine. Any
// goroutine may queue; Loop.Flush applies them in the order they were
// queued.
type Commands struct {
	mu    sync.Mutex
	queue []command
}

type commandKind uint8

const (
	commandAction commandKind = iota
	commandKey
	commandPause
	commandTogglePause
	commandForceStop
	commandSpeed
	commandDefer
)

type command struct {
	kind   commandKind
	action tetris.Action
	key    tetris.Key
	flag   bool
	speed  int
	fn     func()
}

func newCommands() *Commands {
	return &Commands{}
}

func (c *Commands) push(cmd command) {
	c.mu.Lock()
	c.queue = append(c.queue, cmd)
	c.mu.Unlock()
}

// Action queues an input action.
func (c *Commands) Action(a tetris.Action) {
	c.push(command{kind: commandAction, action: a})
}

// Key queues a key press, resolved through the board's key map on flush.
func (c *Commands) Key(k tetris.Key) {
	c.push(command{kind: commandKey, key: k})
}

// SetPaused queues an explicit pause or resume.
func (c *Commands) SetPaused(paused bool) {
	c.push(command{kind: commandPause, flag: paused})
}

// TogglePause queues a pause flip.
func (c *Commands) TogglePause() {
	c.push(command{kind: commandTogglePause})
}

// ForceStop queues a forced end of the game with the given result.
func (c *Commands) ForceStop(win bool) {
	c.push(command{kind: commandForceStop, flag: win})
}

// SetSpeed queues a tick rate change. Invalid rates are logged and dropped.
func (c *Commands) SetSpeed(ticksPerSecond int) {
	c.push(command{kind: commandSpeed, speed: ticksPerSecond})
}

// Defer queues an arbitrary function.
func (c *Commands) Defer(fn func()) {
	c.push(command{kind: commandDefer, fn: fn})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// take swaps out the queue so commands queued while flushing wait for the
// next flush.
func (c *Commands) take() []command {
	c.mu.Lock()
	defer c.mu.Unlock()
	queued := c.queue
	c.queue = nil
	return queued
}

func (c *Commands) flush(l *Loop) int {
	queued := c.take()
	for _, cmd := range queued {
		switch cmd.kind {
		case commandAction:
			l.Dispatch(cmd.action)
		case commandKey:
			l.DispatchKey(cmd.key)
		case commandPause:
			l.board.TogglePause(cmd.flag)
		case commandTogglePause:
			l.board.TogglePause()
		case commandForceStop:
			l.board.ForceStop(cmd.flag)
		case commandSpeed:
			if err := l.SetSpeed(cmd.speed); err != nil {
				l.logger.Warn("ignoring speed change", "error", err)
			}
		case commandDefer:
			cmd.fn()
		}
	}
	return len(queued)
}
