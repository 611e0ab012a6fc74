// Package tetris implements the rules of a falling-block puzzle: the shape
// library, the active piece, and the board state machine that spawns,
// moves, locks and clears rows.
package tetris

import (
	"log/slog"
)

// Cell is a grid value: Empty or a shape colour code.
type Cell uint8

const (
	Empty Cell = 0
	// DefaultColor is painted by pieces whose shape has no colour code.
	DefaultColor Cell = 1
)

// RowReward is the score added per cleared row.
const RowReward = 10

// Board is the persistent grid plus game state. It is not safe for
// concurrent use; the engine drives it from a single goroutine.
type Board struct {
	cfg        Config
	grid       [][]Cell // [row][col]
	rng        Rand
	logger     *slog.Logger
	events     Dispatcher
	keys       KeyMap
	spawnShift int

	piece     *Piece
	needPiece bool
	spawning  bool

	score        int
	gameOver     bool
	win          bool
	forceStopped bool
	paused       bool
}

// BoardOption configures optional Board behaviour.
type BoardOption func(*Board)

// WithLogger routes board diagnostics to logger.
func WithLogger(logger *slog.Logger) BoardOption {
	return func(b *Board) {
		b.logger = logger
	}
}

// WithKeyMap replaces the bindings used by HandleKey.
func WithKeyMap(km KeyMap) BoardOption {
	return func(b *Board) {
		b.keys = km
	}
}

// NewBoard creates an empty board. rng supplies shape choices for every
// spawn. Returns an error wrapping ErrInvalidConfig for bad dimensions or
// speed.
func NewBoard(cfg Config, rng Rand, opts ...BoardOption) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		panic("tetris: nil random source")
	}

	b := &Board{
		cfg:        cfg.clone(),
		rng:        rng,
		logger:     slog.New(slog.DiscardHandler),
		keys:       DefaultKeyMap(),
		spawnShift: (cfg.Cols - ReferenceCols) / 2,
		needPiece:  true,
	}
	b.grid = make([][]Cell, cfg.Rows)
	for row := range b.grid {
		b.grid[row] = make([]Cell, cfg.Cols)
	}

	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

func (b *Board) ID() string         { return b.cfg.ID }
func (b *Board) Cols() int          { return b.cfg.Cols }
func (b *Board) Rows() int          { return b.cfg.Rows }
func (b *Board) Score() int         { return b.score }
func (b *Board) GameOver() bool     { return b.gameOver }
func (b *Board) Win() bool          { return b.win }
func (b *Board) ForceStopped() bool { return b.forceStopped }
func (b *Board) Paused() bool       { return b.paused }

// Config returns a copy of the configuration the board was built with.
func (b *Board) Config() Config {
	return b.cfg.clone()
}

// Piece returns the active piece, which may be locked or nil.
func (b *Board) Piece() *Piece {
	return b.piece
}

// Spawning reports whether the active piece has not yet been shown by its
// first Advance, or a replacement is due. Input is ignored while true.
func (b *Board) Spawning() bool {
	return b.piece == nil || b.needPiece || b.spawning
}

// Cell returns the value at (col, row), or Empty outside the grid.
func (b *Board) Cell(col, row int) Cell {
	if !b.inside(col, row) {
		return Empty
	}
	return b.grid[row][col]
}

// SetCell overwrites a grid cell. Coordinates outside the grid are ignored.
func (b *Board) SetCell(col, row int, c Cell) {
	if b.inside(col, row) {
		b.grid[row][col] = c
	}
}

// Grid returns a row-major copy of the grid.
func (b *Board) Grid() [][]Cell {
	out := make([][]Cell, len(b.grid))
	for row := range b.grid {
		out[row] = append([]Cell(nil), b.grid[row]...)
	}
	return out
}

func (b *Board) inside(col, row int) bool {
	return col >= 0 && col < b.cfg.Cols && row >= 0 && row < b.cfg.Rows
}

// Subscribe registers a lifecycle listener.
func (b *Board) Subscribe(l Listener) (unsubscribe func()) {
	return b.events.Subscribe(l)
}

// Emit delivers e to the board's listeners. The loop uses it for stop
// events.
func (b *Board) Emit(e Event) {
	b.events.Emit(e)
}

// Event builds an event of type t from the current state.
func (b *Board) Event(t EventType) Event {
	return Event{
		Type:         t,
		Score:        b.score,
		BoardID:      b.cfg.ID,
		Win:          b.win,
		ForceStopped: b.forceStopped,
	}
}

// Fits reports whether every cell of p is inside the columns, above the
// floor, and not on an occupied cell. Cells above row 0 only face the
// column bound.
func (b *Board) Fits(p *Piece) bool {
	for _, pt := range p.Cells() {
		if pt.Col < 0 || pt.Col >= b.cfg.Cols {
			return false
		}
		if pt.Row >= 0 && pt.Row < b.cfg.Rows && b.grid[pt.Row][pt.Col] != Empty {
			return false
		}
		if pt.Row >= b.cfg.Rows {
			return false
		}
	}
	return true
}

// Spawn makes p the active piece. It is shown on the next Advance and
// does not respond to input before that.
func (b *Board) Spawn(p *Piece) {
	b.piece = p
	b.needPiece = false
	b.spawning = true
}

func (b *Board) spawnNext() {
	p := RandomPiece(b.rng)
	p.moveBy(b.spawnShift, 0)
	b.logger.Debug("spawned piece", "board", b.cfg.ID, "kind", p.Kind())
	b.Spawn(p)
}

// Advance runs one tick: sweep and spawn if a new piece is due, show a
// freshly spawned piece in place, otherwise drop the active piece one row
// and lock it when it cannot descend.
func (b *Board) Advance() {
	if b.gameOver || b.paused {
		return
	}

	if b.needPiece {
		b.SweepFilledRows()
		b.spawnNext()
	}

	p := b.piece
	if p == nil {
		return
	}

	if b.spawning {
		b.show()
		b.spawning = false
		return
	}

	b.hide()
	p.MoveDown()
	if !b.Fits(p) {
		p.MoveUp()

		// settle probe: the piece only locks after a second failed descent
		p.MoveDown()
		if !b.Fits(p) {
			p.MoveUp()
			b.needPiece = true
			p.lock()
			b.checkGameOver()
		}
	}
	b.show()
}

func (b *Board) checkGameOver() {
	for _, pt := range b.piece.Cells() {
		if pt.Row <= 0 {
			b.gameOver = true
			b.logger.Info("game over", "board", b.cfg.ID, "score", b.score)
			return
		}
	}
}

// HandleInput removes the active piece from the grid, applies a, rolls
// the move back if it no longer fits, and paints the piece again. Ignored
// while paused, after game over, and while a piece is spawning.
func (b *Board) HandleInput(a Action) {
	if a == ActionNone || b.paused || b.gameOver || b.Spawning() {
		return
	}

	p := b.piece
	b.hide()
	a.apply(p)
	if !b.Fits(p) {
		a.revert(p)
	}
	b.show()
}

// HandleKey dispatches the action bound to k. Unbound keys are ignored.
func (b *Board) HandleKey(k Key) {
	b.HandleInput(b.KeyAction(k))
}

// KeyAction returns the action the board's key map binds to k.
func (b *Board) KeyAction(k Key) Action {
	return b.keys.Lookup(k)
}

func (b *Board) hide() {
	if b.piece == nil {
		return
	}
	for _, pt := range b.piece.Cells() {
		if b.inside(pt.Col, pt.Row) {
			b.grid[pt.Row][pt.Col] = Empty
		}
	}
}

func (b *Board) show() {
	if b.piece == nil {
		return
	}
	code := b.piece.ColorCode()
	for _, pt := range b.piece.Cells() {
		if b.inside(pt.Col, pt.Row) {
			b.grid[pt.Row][pt.Col] = code
		}
	}
}

// SweepFilledRows removes every full row, shifting the rows above down
// and inserting empty rows at the top. Each cleared row adds RowReward and
// emits one score event. Returns the number of rows cleared.
func (b *Board) SweepFilledRows() int {
	full := make([]bool, b.cfg.Rows)
	cleared := 0
	for row := range b.grid {
		if !b.rowFull(row) {
			continue
		}
		full[row] = true
		cleared++
		b.score += RowReward
		b.events.Emit(b.Event(EventScore))
	}

	if cleared == 0 {
		return 0
	}

	next := make([][]Cell, 0, b.cfg.Rows)
	for i := 0; i < cleared; i++ {
		next = append(next, make([]Cell, b.cfg.Cols))
	}
	for row, cells := range b.grid {
		if !full[row] {
			next = append(next, cells)
		}
	}
	b.grid = next
	return cleared
}

func (b *Board) rowFull(row int) bool {
	for _, c := range b.grid[row] {
		if c == Empty {
			return false
		}
	}
	return true
}

// ForceStop ends the game immediately with the given result. The loop
// emits the stop event on its next iteration.
func (b *Board) ForceStop(win bool) {
	b.gameOver = true
	b.win = win
	b.forceStopped = true
}

// TogglePause sets paused to explicit[0] when given, otherwise flips it.
// Returns the new value.
func (b *Board) TogglePause(explicit ...bool) bool {
	if len(explicit) > 0 {
		b.paused = explicit[0]
	} else {
		b.paused = !b.paused
	}
	return b.paused
}
