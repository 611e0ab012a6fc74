// Package ebitenrender draws a board with Ebiten.
package ebitenrender

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/engine"
	"github.com/plus3/blockfall/render"
	"github.com/plus3/blockfall/tetris"
	"golang.org/x/image/font/basicfont"
)

const (
	hudLineHeight = 16
	hudLines      = 2
)

var (
	colBackground = color.RGBA{255, 255, 255, 255}
	colGridLine   = color.RGBA{0, 0, 0, 255}
	colText       = color.RGBA{40, 40, 40, 255}
)

// Renderer keeps an image of the board, rebuilt on every frame the loop
// reports and blitted to the screen in Draw.
type Renderer struct {
	palette *render.Palette
	geom    render.Geometry
	cols    int
	rows    int

	boardCache *ebiten.Image
	status     []string
}

// New creates a renderer for boards built from cfg.
func New(cfg tetris.Config, palette *render.Palette) *Renderer {
	return &Renderer{
		palette: palette,
		geom:    render.GeometryOf(cfg),
		cols:    cfg.Cols,
		rows:    cfg.Rows,
	}
}

// Size returns the window size needed for the board and the HUD.
func (r *Renderer) Size() (width, height int) {
	w, h := r.geom.Size(r.cols, r.rows)
	return w, h + hudLines*hudLineHeight
}

// Render redraws the cached board image. Called on the loop goroutine,
// which for Ebiten is the Update goroutine.
func (r *Renderer) Render(frame *engine.Frame) {
	w, h := r.geom.Size(r.cols, r.rows)
	if r.boardCache == nil {
		r.boardCache = ebiten.NewImage(w, h)
	}
	r.boardCache.Fill(colBackground)

	grid := r.geom.GridRect(r.cols, r.rows)
	for col := 0; col <= r.cols; col++ {
		x := float32(grid.Min.X + col*r.geom.CellSize)
		vector.StrokeLine(r.boardCache, x+0.5, float32(grid.Min.Y), x+0.5, float32(grid.Max.Y), 1, colGridLine, false)
	}
	for row := 0; row <= r.rows; row++ {
		y := float32(grid.Min.Y + row*r.geom.CellSize)
		vector.StrokeLine(r.boardCache, float32(grid.Min.X), y+0.5, float32(grid.Max.X), y+0.5, 1, colGridLine, false)
	}

	r.palette.Walk(frame.Board, func(col, row int, c color.RGBA) {
		rect := r.geom.CellRect(col, row)
		// one pixel in from the grid line
		vector.DrawFilledRect(r.boardCache,
			float32(rect.Min.X)+1, float32(rect.Min.Y)+1,
			float32(rect.Dx()), float32(rect.Dy()),
			c, false)
	})

	r.status = render.StatusLines(frame.Board)
}

// Draw blits the cached board and the HUD onto screen.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)
	if r.boardCache == nil {
		return
	}
	screen.DrawImage(r.boardCache, &ebiten.DrawImageOptions{})

	_, h := r.geom.Size(r.cols, r.rows)
	for i, line := range r.status {
		text.Draw(screen, line, basicfont.Face7x13, r.geom.Padding, h+(i+1)*hudLineHeight-4, colText)
	}
}
