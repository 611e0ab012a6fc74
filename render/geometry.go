package render

import (
	"image"

	"github.com/plus3/blockfall/tetris"
)

// Geometry places cells on a pixel canvas. Grid lines fall every CellSize
// pixels inside a Padding margin; a filled cell covers CellSize-1 pixels so
// the line to its right and below stays visible.
type Geometry struct {
	CellSize int
	Padding  int
}

// GeometryOf returns the geometry configured for a board.
func GeometryOf(cfg tetris.Config) Geometry {
	return Geometry{CellSize: cfg.CellSize, Padding: cfg.Padding}
}

// CellRect returns the filled rectangle for a cell.
func (g Geometry) CellRect(col, row int) image.Rectangle {
	x := col*g.CellSize + g.Padding
	y := row*g.CellSize + g.Padding
	return image.Rect(x, y, x+g.CellSize-1, y+g.CellSize-1)
}

// GridRect returns the area covered by the grid lines.
func (g Geometry) GridRect(cols, rows int) image.Rectangle {
	return image.Rect(g.Padding, g.Padding, g.Padding+cols*g.CellSize, g.Padding+rows*g.CellSize)
}

// Size returns the canvas size including padding on both sides.
func (g Geometry) Size(cols, rows int) (width, height int) {
	return cols*g.CellSize + 2*g.Padding, rows*g.CellSize + 2*g.Padding
}
