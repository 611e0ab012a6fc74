// Package engine drives a tetris.Board at a fixed tick rate, queues input
// from other goroutines, and reports each frame to renderers.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// LoopStats provides statistics about tick execution.
type LoopStats struct {
	Ticks         int64
	Inputs        int64
	MinDuration   time.Duration
	MaxDuration   time.Duration
	AvgDuration   time.Duration
	LastDuration  time.Duration
	TotalDuration time.Duration
	Interval      time.Duration
}

type loopStatsInternal struct {
	ticks         int64
	inputs        int64
	minDuration   time.Duration
	maxDuration   time.Duration
	totalDuration time.Duration
	lastDuration  time.Duration
}

// Loop owns the tick cycle of one board. All methods except Commands and
// Done must be called from the goroutine the scheduler runs callbacks on.
type Loop struct {
	board     *tetris.Board
	scheduler TickScheduler
	logger    *slog.Logger
	renderers []Renderer
	commands  *Commands

	speed   int
	quiet   bool
	started bool
	stopped bool
	done    chan struct{}

	stats loopStatsInternal
}

// LoopOption configures optional Loop behaviour.
type LoopOption func(*Loop)

// WithLogger routes loop diagnostics to logger.
func WithLogger(logger *slog.Logger) LoopOption {
	return func(l *Loop) {
		l.logger = logger
	}
}

// WithRenderer appends r to the renderers called after every tick and
// input.
func WithRenderer(r Renderer) LoopOption {
	return func(l *Loop) {
		l.renderers = append(l.renderers, r)
	}
}

// NewLoop creates a loop for board. The tick rate and quiet flag start from
// the board's configuration.
func NewLoop(board *tetris.Board, scheduler TickScheduler, opts ...LoopOption) *Loop {
	if scheduler == nil {
		panic("engine: nil scheduler")
	}

	cfg := board.Config()
	l := &Loop{
		board:     board,
		scheduler: scheduler,
		logger:    slog.New(slog.DiscardHandler),
		commands:  newCommands(),
		speed:     cfg.Speed,
		quiet:     cfg.Quiet,
		done:      make(chan struct{}),
		stats: loopStatsInternal{
			minDuration: time.Duration(1<<63 - 1),
		},
	}

	for _, opt := range opts {
		opt(l)
	}
	return l
}

// AddRenderer registers r after construction.
func (l *Loop) AddRenderer(r Renderer) {
	l.renderers = append(l.renderers, r)
}

// Board returns the board driven by the loop.
func (l *Loop) Board() *tetris.Board {
	return l.board
}

// Start runs the first iteration immediately. Later calls do nothing.
func (l *Loop) Start() {
	if l.started {
		return
	}
	l.started = true
	l.logger.Info("loop started", "board", l.board.ID(), "interval", l.Interval())
	l.step()
}

func (l *Loop) step() {
	l.Flush()

	if l.board.GameOver() {
		l.stop()
		return
	}

	if !l.board.Paused() {
		start := time.Now()
		l.board.Advance()
		l.record(time.Since(start))
		l.render()
	}

	l.scheduler.ScheduleNext(l.Interval(), l.step)
}

func (l *Loop) stop() {
	if l.stopped {
		return
	}
	l.stopped = true

	if !l.quiet {
		l.board.Emit(l.board.Event(tetris.EventStop))
	}
	l.logger.Info("loop stopped",
		"board", l.board.ID(),
		"score", l.board.Score(),
		"win", l.board.Win(),
		"forced", l.board.ForceStopped(),
		"ticks", l.stats.ticks,
	)
	close(l.done)
}

func (l *Loop) record(duration time.Duration) {
	l.stats.ticks++
	l.stats.lastDuration = duration
	l.stats.totalDuration += duration

	if duration < l.stats.minDuration {
		l.stats.minDuration = duration
	}
	if duration > l.stats.maxDuration {
		l.stats.maxDuration = duration
	}
}

func (l *Loop) render() {
	if len(l.renderers) == 0 {
		return
	}
	frame := l.Frame()
	for _, r := range l.renderers {
		r.Render(frame)
	}
}

// Dispatch applies a to the board immediately and re-renders.
func (l *Loop) Dispatch(a tetris.Action) {
	if a == tetris.ActionNone || l.stopped {
		return
	}
	l.stats.inputs++
	l.board.HandleInput(a)
	l.render()
}

// DispatchKey dispatches the action the board binds to k.
func (l *Loop) DispatchKey(k tetris.Key) {
	l.Dispatch(l.board.KeyAction(k))
}

// Commands returns the buffer other goroutines use to reach the loop.
func (l *Loop) Commands() *Commands {
	return l.commands
}

// Flush applies queued commands in order. It runs at the start of every
// iteration; frame-driven frontends may also call it once per frame.
// Returns the number of commands applied.
func (l *Loop) Flush() int {
	return l.commands.flush(l)
}

// Frame builds a snapshot for renderers.
func (l *Loop) Frame() *Frame {
	return &Frame{
		Tick:     l.stats.ticks,
		Interval: l.Interval(),
		Board:    l.board,
		Commands: l.commands,
		Stats:    l.Stats(),
	}
}

// Done is closed once the loop has observed game over and halted.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Stopped reports whether the loop has halted.
func (l *Loop) Stopped() bool {
	return l.stopped
}

// Stats returns statistics about tick execution.
func (l *Loop) Stats() LoopStats {
	stats := LoopStats{
		Ticks:         l.stats.ticks,
		Inputs:        l.stats.inputs,
		MaxDuration:   l.stats.maxDuration,
		LastDuration:  l.stats.lastDuration,
		TotalDuration: l.stats.totalDuration,
		Interval:      l.Interval(),
	}
	if l.stats.ticks > 0 {
		stats.MinDuration = l.stats.minDuration
		stats.AvgDuration = l.stats.totalDuration / time.Duration(l.stats.ticks)
	}
	return stats
}

// SetSpeed changes the tick rate from the next scheduled iteration on.
func (l *Loop) SetSpeed(ticksPerSecond int) error {
	if ticksPerSecond <= 0 {
		return fmt.Errorf("%w: speed must be positive, got %d", tetris.ErrInvalidConfig, ticksPerSecond)
	}
	if ticksPerSecond > tetris.MaxSpeed {
		return fmt.Errorf("%w: speed must be at most %d, got %d", tetris.ErrInvalidConfig, tetris.MaxSpeed, ticksPerSecond)
	}
	l.speed = ticksPerSecond
	return nil
}

// Speed returns the tick rate in ticks per second.
func (l *Loop) Speed() int {
	return l.speed
}

// SetQuiet suppresses the stop event.
func (l *Loop) SetQuiet(quiet bool) {
	l.quiet = quiet
}

func (l *Loop) Quiet() bool { return l.quiet }

// Interval is the delay between iterations.
func (l *Loop) Interval() time.Duration {
	return time.Second / time.Duration(l.speed)
}
