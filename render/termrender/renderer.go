// Package termrender draws a board in a terminal with tcell.
package termrender

import (
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/tetris"
)

// CellWidth is the number of terminal columns per board cell, so cells look
// roughly square.
const CellWidth = 2

var (
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleEmpty  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleText   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// Renderer paints the board into the top-left corner of a screen: a
// border, two columns per cell, and the status lines below.
type Renderer struct {
	screen  tcell.Screen
	palette *render.Palette
	cols    int
	rows    int
}

func New(screen tcell.Screen, cfg tetris.Config, palette *render.Palette) *Renderer {
	return &Renderer{
		screen:  screen,
		palette: palette,
		cols:    cfg.Cols,
		rows:    cfg.Rows,
	}
}

// Size returns the terminal area the renderer uses.
func (r *Renderer) Size() (width, height int) {
	return r.cols*CellWidth + 2, r.rows + 3
}

func (r *Renderer) Render(frame *engine.Frame) {
	r.screen.Clear()
	b := frame.Board

	right := r.cols*CellWidth + 1
	for y := 0; y < r.rows; y++ {
		r.screen.SetContent(0, y, '│', nil, styleBorder)
		r.screen.SetContent(right, y, '│', nil, styleBorder)
	}
	r.screen.SetContent(0, r.rows, '└', nil, styleBorder)
	for x := 1; x < right; x++ {
		r.screen.SetContent(x, r.rows, '─', nil, styleBorder)
	}
	r.screen.SetContent(right, r.rows, '┘', nil, styleBorder)

	for row := 0; row < r.rows; row++ {
		for col := 0; col < r.cols; col++ {
			x := 1 + col*CellWidth
			c, ok := r.palette.Color(b.Cell(col, row))
			if !ok {
				r.screen.SetContent(x, row, ' ', nil, styleEmpty)
				r.screen.SetContent(x+1, row, '.', nil, styleEmpty)
				continue
			}
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			r.screen.SetContent(x, row, ' ', nil, style)
			r.screen.SetContent(x+1, row, ' ', nil, style)
		}
	}

	for i, line := range render.StatusLines(b) {
		drawText(r.screen, 0, r.rows+1+i, line, styleText)
	}

	r.screen.Show()
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, ch := range text {
		s.SetContent(x, y, ch, nil, style)
		x++
	}
}

// Key translates a terminal key event into a game key. Letters match in
// either case.
func Key(ev *tcell.EventKey) (tetris.Key, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return tetris.KeyLeft, true
	case tcell.KeyRight:
		return tetris.KeyRight, true
	case tcell.KeyUp:
		return tetris.KeyUp, true
	case tcell.KeyDown:
		return tetris.KeyDown, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return tetris.KeyA, true
		case 'd', 'D':
			return tetris.KeyD, true
		case 's', 'S':
			return tetris.KeyS, true
		case 'w', 'W':
			return tetris.KeyW, true
		case 'z', 'Z':
			return tetris.KeyZ, true
		}
	}
	return tetris.KeyNone, false
}
