// Package render holds the frontend-neutral pieces of drawing a board:
// the colour of each cell code and where each cell sits on screen.
package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/tetris"
	"golang.org/x/image/colornames"
)

// Palette resolves grid cell codes to colours. Codes mapped to an empty
// name, and codes with no entry, are not drawn.
type Palette struct {
	colors *intmap.Map[tetris.Cell, color.RGBA]
	names  *intmap.Map[tetris.Cell, string]
}

// NewPalette resolves every name through the SVG colour keywords. Names are
// case-insensitive.
func NewPalette(names map[tetris.Cell]string) (*Palette, error) {
	p := &Palette{
		colors: intmap.New[tetris.Cell, color.RGBA](len(names)),
		names:  intmap.New[tetris.Cell, string](len(names)),
	}

	for code, name := range names {
		if name == "" {
			continue
		}
		c, ok := colornames.Map[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown colour %q for cell code %d", name, code)
		}
		p.colors.Put(code, c)
		p.names.Put(code, name)
	}
	return p, nil
}

// MustPalette is like NewPalette but panics on an unknown name.
func MustPalette(names map[tetris.Cell]string) *Palette {
	p, err := NewPalette(names)
	if err != nil {
		panic(err)
	}
	return p
}

// Color returns the colour drawn for code. Empty cells never have one.
func (p *Palette) Color(code tetris.Cell) (color.RGBA, bool) {
	if code == tetris.Empty {
		return color.RGBA{}, false
	}
	return p.colors.Get(code)
}

// Name returns the configured colour name for code.
func (p *Palette) Name(code tetris.Cell) string {
	name, _ := p.names.Get(code)
	return name
}

// Len returns the number of drawable codes.
func (p *Palette) Len() int {
	return p.colors.Len()
}

// Walk calls fn for every cell of b that has a colour, row by row.
func (p *Palette) Walk(b *tetris.Board, fn func(col, row int, c color.RGBA)) {
	for row := 0; row < b.Rows(); row++ {
		for col := 0; col < b.Cols(); col++ {
			if c, ok := p.Color(b.Cell(col, row)); ok {
				fn(col, row, c)
			}
		}
	}
}
