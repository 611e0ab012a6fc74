package tetris_test

import (
	"errors"
	"testing"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBoard(t *testing.T, rows int, rng tetris.Rand) *tetris.Board {
	t.Helper()
	cfg := tetris.DefaultConfig()
	cfg.Rows = rows
	b, err := tetris.NewBoard(cfg, rng)
	require.NoError(t, err)
	return b
}

func fillRow(b *tetris.Board, row int, code tetris.Cell) {
	for col := 0; col < b.Cols(); col++ {
		b.SetCell(col, row, code)
	}
}

func filledRows(b *tetris.Board) int {
	n := 0
	for row := 0; row < b.Rows(); row++ {
		full := true
		for col := 0; col < b.Cols(); col++ {
			if b.Cell(col, row) == tetris.Empty {
				full = false
			}
		}
		if full {
			n++
		}
	}
	return n
}

type eventRecorder struct {
	events []tetris.Event
}

func (r *eventRecorder) HandleEvent(e tetris.Event) {
	r.events = append(r.events, e)
}

func TestNewBoard(t *testing.T) {
	b := newTestBoard(t, 15, kindRand(tetris.KindO))

	assert.Equal(t, 10, b.Cols())
	assert.Equal(t, 15, b.Rows())
	assert.Equal(t, "board", b.ID())
	assert.Zero(t, b.Score())
	assert.False(t, b.GameOver())
	assert.False(t, b.Paused())
	assert.Nil(t, b.Piece())
	assert.True(t, b.Spawning())

	for _, row := range b.Grid() {
		for _, c := range row {
			assert.Equal(t, tetris.Empty, c)
		}
	}
}

func TestNewBoardRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*tetris.Config)
	}{
		{"zero cols", func(c *tetris.Config) { c.Cols = 0 }},
		{"narrow", func(c *tetris.Config) { c.Cols = 3 }},
		{"negative rows", func(c *tetris.Config) { c.Rows = -1 }},
		{"zero speed", func(c *tetris.Config) { c.Speed = 0 }},
		{"speed above max", func(c *tetris.Config) { c.Speed = tetris.MaxSpeed + 1 }},
		{"speed truncating interval", func(c *tetris.Config) { c.Speed = 2_000_000_000 }},
		{"zero cell size", func(c *tetris.Config) { c.CellSize = 0 }},
		{"negative padding", func(c *tetris.Config) { c.Padding = -2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tetris.DefaultConfig()
			tt.mutate(&cfg)

			b, err := tetris.NewBoard(cfg, kindRand(tetris.KindO))
			assert.Nil(t, b)
			assert.True(t, errors.Is(err, tetris.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestBoardFits(t *testing.T) {
	b := newTestBoard(t, 15, kindRand(tetris.KindO))
	b.SetCell(4, 5, 3)

	square := tetris.ShapeOf(tetris.KindO)
	tests := []struct {
		name   string
		anchor tetris.Point
		fits   bool
	}{
		{"inside", tetris.Point{Col: 3, Row: 0}, true},
		{"column -1", tetris.Point{Col: -2, Row: 0}, false},
		{"touching left wall", tetris.Point{Col: -1, Row: 0}, true},
		{"column == cols", tetris.Point{Col: 8, Row: 0}, false},
		{"touching right wall", tetris.Point{Col: 7, Row: 0}, true},
		{"row == rows", tetris.Point{Col: 0, Row: 13}, false},
		{"on the floor", tetris.Point{Col: 0, Row: 12}, true},
		{"overlapping occupied cell", tetris.Point{Col: 3, Row: 4}, false},
		{"above the board", tetris.Point{Col: 3, Row: -3}, true},
		{"above the board past the wall", tetris.Point{Col: 8, Row: -3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fits, b.Fits(tetris.NewPieceAt(square, tt.anchor)))
		})
	}
}

func TestBoardAdvanceSpawnsAndShows(t *testing.T) {
	b := newTestBoard(t, 15, kindRand(tetris.KindO))

	b.Advance()
	require.NotNil(t, b.Piece())
	assert.Equal(t, tetris.KindO, b.Piece().Kind())
	assert.False(t, b.Spawning())
	assert.Equal(t, tetris.Point{Col: 3, Row: -2}, b.Piece().Anchor())

	// only the visible half of the square is painted
	assert.Equal(t, tetris.Cell(4), b.Cell(4, 0))
	assert.Equal(t, tetris.Cell(4), b.Cell(5, 0))
	assert.Equal(t, tetris.Empty, b.Cell(4, 1))

	b.Advance()
	assert.Equal(t, tetris.Point{Col: 3, Row: -1}, b.Piece().Anchor())
	assert.Equal(t, tetris.Cell(4), b.Cell(4, 1))
	assert.Equal(t, tetris.Cell(4), b.Cell(4, 0))
}

func TestBoardSpawnShiftsOnWideBoards(t *testing.T) {
	cfg := tetris.DefaultConfig()
	cfg.Cols = 14
	b, err := tetris.NewBoard(cfg, kindRand(tetris.KindO))
	require.NoError(t, err)

	b.Advance()
	assert.Equal(t, tetris.Point{Col: 5, Row: -2}, b.Piece().Anchor())
}

func TestBoardLocksAfterLanding(t *testing.T) {
	b := newTestBoard(t, 4, kindRand(tetris.KindO))

	b.Advance() // spawn
	b.Advance() // rows 0..1
	b.Advance() // rows 1..2
	b.Advance() // rows 2..3
	require.False(t, b.Piece().Locked())

	b.Advance() // cannot descend
	assert.True(t, b.Piece().Locked())
	assert.True(t, b.Spawning())
	assert.False(t, b.GameOver())
	assert.Equal(t, tetris.Cell(4), b.Cell(4, 3))
	assert.Equal(t, tetris.Cell(4), b.Cell(5, 2))

	b.Advance() // next piece
	assert.False(t, b.Piece().Locked())
	assert.Equal(t, tetris.Cell(4), b.Cell(4, 3), "locked cells stay in the grid")
}

func TestBoardSweepFilledRows(t *testing.T) {
	t.Run("single row", func(t *testing.T) {
		b := newTestBoard(t, 10, kindRand(tetris.KindO))
		rec := &eventRecorder{}
		b.Subscribe(rec)

		fillRow(b, 9, 2)
		b.SetCell(0, 5, 7)
		b.SetCell(3, 0, 6)

		cleared := b.SweepFilledRows()

		assert.Equal(t, 1, cleared)
		assert.Equal(t, 10, b.Score())
		assert.Zero(t, filledRows(b))
		assert.Equal(t, tetris.Cell(7), b.Cell(0, 6))
		assert.Equal(t, tetris.Empty, b.Cell(0, 5))
		assert.Equal(t, tetris.Cell(6), b.Cell(3, 1))
		for col := 0; col < b.Cols(); col++ {
			assert.Equal(t, tetris.Empty, b.Cell(col, 0))
		}

		require.Len(t, rec.events, 1)
		assert.Equal(t, tetris.Event{Type: tetris.EventScore, Score: 10, BoardID: "board"}, rec.events[0])
	})

	t.Run("several rows in one sweep", func(t *testing.T) {
		b := newTestBoard(t, 10, kindRand(tetris.KindO))
		rec := &eventRecorder{}
		b.Subscribe(rec)

		fillRow(b, 7, 3)
		fillRow(b, 9, 3)
		b.SetCell(2, 8, 5)
		b.SetCell(2, 6, 8)

		assert.Equal(t, 2, b.SweepFilledRows())
		assert.Equal(t, 20, b.Score())
		assert.Equal(t, tetris.Cell(5), b.Cell(2, 9))
		assert.Equal(t, tetris.Cell(8), b.Cell(2, 8))
		assert.Zero(t, filledRows(b))

		require.Len(t, rec.events, 2)
		assert.Equal(t, 10, rec.events[0].Score)
		assert.Equal(t, 20, rec.events[1].Score)
	})

	t.Run("nothing to clear", func(t *testing.T) {
		b := newTestBoard(t, 10, kindRand(tetris.KindO))
		b.SetCell(0, 9, 2)

		assert.Zero(t, b.SweepFilledRows())
		assert.Zero(t, b.Score())
		assert.Equal(t, tetris.Cell(2), b.Cell(0, 9))
	})
}

func TestBoardClearsRowBeforeNextSpawn(t *testing.T) {
	b := newTestBoard(t, 15, kindRand(tetris.KindO))
	rec := &eventRecorder{}
	b.Subscribe(rec)

	for col := 0; col < b.Cols(); col++ {
		if col != 4 && col != 5 {
			b.SetCell(col, 14, 7)
		}
	}

	b.Advance()
	for range 20 {
		b.HandleInput(tetris.ActionMoveDown)
	}
	b.Advance()
	require.True(t, b.Piece().Locked())
	assert.Zero(t, b.Score(), "rows are swept on the next spawn")

	b.Advance()
	assert.Equal(t, 10, b.Score())
	require.Len(t, rec.events, 1)
	assert.Equal(t, tetris.Cell(4), b.Cell(4, 14))
	assert.Equal(t, tetris.Empty, b.Cell(0, 14))
}

func TestBoardGameOver(t *testing.T) {
	b := newTestBoard(t, 15, kindRand(tetris.KindO))
	b.SetCell(4, 0, 6)
	b.SetCell(4, 1, 6)
	b.SetCell(5, 1, 6)

	b.Spawn(tetris.NewPiece(tetris.ShapeOf(tetris.KindO)))
	b.Advance() // shown in place over row 0
	assert.False(t, b.GameOver())

	b.Advance()
	assert.True(t, b.GameOver())
	assert.True(t, b.Piece().Locked())
	assert.False(t, b.Win())
	assert.False(t, b.ForceStopped())
	assert.Zero(t, b.Score())

	grid := b.Grid()
	b.Advance()
	assert.Equal(t, grid, b.Grid(), "advance is a no-op after game over")
}

func TestBoardHandleInput(t *testing.T) {
	t.Run("moves and rolls back at the wall", func(t *testing.T) {
		b := newTestBoard(t, 15, kindRand(tetris.KindO))
		b.Advance()

		b.HandleInput(tetris.ActionMoveLeft)
		assert.Equal(t, tetris.Point{Col: 2, Row: -2}, b.Piece().Anchor())
		assert.Equal(t, tetris.Cell(4), b.Cell(3, 0))
		assert.Equal(t, tetris.Empty, b.Cell(5, 0))

		for range 10 {
			b.HandleInput(tetris.ActionMoveLeft)
		}
		assert.Equal(t, tetris.Point{Col: -1, Row: -2}, b.Piece().Anchor())

		for range 10 {
			b.HandleInput(tetris.ActionMoveRight)
		}
		assert.Equal(t, tetris.Point{Col: 7, Row: -2}, b.Piece().Anchor())
		assert.Equal(t, tetris.Cell(4), b.Cell(9, 0))
	})

	t.Run("rotation into an occupied cell is undone", func(t *testing.T) {
		b := newTestBoard(t, 15, kindRand(tetris.KindT))
		shape := tetris.ShapeOf(tetris.KindT)
		b.Spawn(tetris.NewPieceAt(shape, tetris.Point{Col: 3, Row: 5}))
		b.Advance()
		b.SetCell(4, 5, 1)

		b.HandleInput(tetris.ActionRotateLeft)
		assert.Equal(t, shape.Template, b.Piece().Matrix())
		assert.Equal(t, tetris.Cell(5), b.Cell(3, 6))
		assert.Equal(t, tetris.Cell(5), b.Cell(4, 7))
		assert.Equal(t, tetris.Cell(1), b.Cell(4, 5))

		b.SetCell(4, 5, tetris.Empty)
		b.HandleInput(tetris.ActionRotateLeft)
		assert.Equal(t, shape.Template.RotateLeft(), b.Piece().Matrix())
		assert.Equal(t, tetris.Cell(5), b.Cell(4, 5))
		assert.Equal(t, tetris.Empty, b.Cell(5, 6))

		b.HandleInput(tetris.ActionRotateRight)
		assert.Equal(t, shape.Template, b.Piece().Matrix())
	})

	t.Run("ignored while spawning", func(t *testing.T) {
		b := newTestBoard(t, 15, kindRand(tetris.KindO))
		b.HandleInput(tetris.ActionMoveLeft)
		assert.Nil(t, b.Piece())

		b.Spawn(tetris.NewPiece(tetris.ShapeOf(tetris.KindO)))
		b.HandleInput(tetris.ActionMoveLeft)
		assert.Equal(t, tetris.Point{Col: 3, Row: -2}, b.Piece().Anchor())
	})

	t.Run("keys map to actions", func(t *testing.T) {
		b := newTestBoard(t, 15, kindRand(tetris.KindO))
		b.Advance()

		b.HandleKey(tetris.KeyD)
		b.HandleKey(tetris.KeyS)
		b.HandleKey(tetris.Key(999))
		b.HandleKey(tetris.KeyNone)
		assert.Equal(t, tetris.Point{Col: 4, Row: -1}, b.Piece().Anchor())
	})
}

func TestBoardDropThenRotateLockedPiece(t *testing.T) {
	b := newTestBoard(t, 15, kindRand(tetris.KindO))
	b.Advance()

	for range 20 {
		b.HandleInput(tetris.ActionMoveDown)
	}
	assert.Equal(t, tetris.Point{Col: 3, Row: 12}, b.Piece().Anchor())

	b.Advance()
	require.True(t, b.Piece().Locked())

	grid := b.Grid()
	assert.NotPanics(t, func() { b.HandleInput(tetris.ActionRotateLeft) })
	assert.Equal(t, grid, b.Grid())
	assert.Equal(t, tetris.Cell(4), b.Cell(4, 13))
	assert.Equal(t, tetris.Cell(4), b.Cell(5, 14))
}

func TestBoardForceStop(t *testing.T) {
	b := newTestBoard(t, 15, kindRand(tetris.KindO))
	b.Advance()

	b.ForceStop(true)
	assert.True(t, b.GameOver())
	assert.True(t, b.Win())
	assert.True(t, b.ForceStopped())

	anchor := b.Piece().Anchor()
	b.Advance()
	b.HandleInput(tetris.ActionMoveDown)
	assert.Equal(t, anchor, b.Piece().Anchor())

	assert.Equal(t, tetris.Event{
		Type:         tetris.EventStop,
		BoardID:      "board",
		Win:          true,
		ForceStopped: true,
	}, b.Event(tetris.EventStop))
}

func TestBoardTogglePause(t *testing.T) {
	b := newTestBoard(t, 15, kindRand(tetris.KindO))
	b.Advance()

	assert.True(t, b.TogglePause())
	assert.False(t, b.TogglePause())
	assert.True(t, b.TogglePause(true))
	assert.True(t, b.TogglePause(true))

	anchor := b.Piece().Anchor()
	b.Advance()
	b.HandleInput(tetris.ActionMoveLeft)
	assert.Equal(t, anchor, b.Piece().Anchor())

	assert.False(t, b.TogglePause(false))
	b.Advance()
	assert.Equal(t, anchor.Row+1, b.Piece().Anchor().Row)
}

func TestBoardConfigIsCopied(t *testing.T) {
	cfg := tetris.DefaultConfig()
	b, err := tetris.NewBoard(cfg, kindRand(tetris.KindO))
	require.NoError(t, err)

	cfg.Colors[2] = "pink"
	assert.Equal(t, "aqua", b.Config().Colors[2])

	got := b.Config()
	got.Colors[2] = "pink"
	assert.Equal(t, "aqua", b.Config().Colors[2])
}
