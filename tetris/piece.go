package tetris

// Point is a board coordinate. Row may be negative while a piece is still
// above the visible grid.
type Point struct {
	Col, Row int
}

// Piece is the active tetromino: a shape's matrix placed at an anchor.
// Every mutating method is a no-op once the piece is locked.
type Piece struct {
	shape   Shape
	matrix  Matrix
	anchor  Point
	locked  bool
	toggled bool
}

// NewPiece creates an unlocked piece at the shape's spawn anchor.
func NewPiece(shape Shape) *Piece {
	return &Piece{
		shape:  shape,
		matrix: shape.Template,
		anchor: shape.Spawn,
	}
}

// NewPieceAt creates an unlocked piece at an explicit anchor.
func NewPieceAt(shape Shape, anchor Point) *Piece {
	p := NewPiece(shape)
	p.anchor = anchor
	return p
}

func (p *Piece) Shape() Shape   { return p.shape }
func (p *Piece) Kind() Kind     { return p.shape.Kind }
func (p *Piece) Matrix() Matrix { return p.matrix }
func (p *Piece) Anchor() Point  { return p.anchor }
func (p *Piece) Locked() bool   { return p.locked }

// ColorCode returns the cell value the piece paints into the grid.
func (p *Piece) ColorCode() Cell {
	if p.shape.Color == Empty {
		return DefaultColor
	}
	return p.shape.Color
}

func (p *Piece) MoveLeft()  { p.moveBy(-1, 0) }
func (p *Piece) MoveRight() { p.moveBy(1, 0) }
func (p *Piece) MoveUp()    { p.moveBy(0, -1) }
func (p *Piece) MoveDown()  { p.moveBy(0, 1) }

func (p *Piece) moveBy(dc, dr int) {
	if p.locked {
		return
	}
	p.anchor.Col += dc
	p.anchor.Row += dr
}

// RotateLeft applies the shape's rotation policy. Toggle shapes alternate
// between the spawn orientation and one quarter turn.
func (p *Piece) RotateLeft() {
	if p.locked {
		return
	}

	switch p.shape.Rotation {
	case RotateFull:
		p.matrix = p.matrix.RotateLeft()
	case RotateToggle:
		p.toggle()
	}
}

// RotateRight undoes RotateLeft. For toggle shapes the two-state cycle is
// its own inverse.
func (p *Piece) RotateRight() {
	if p.locked {
		return
	}

	switch p.shape.Rotation {
	case RotateFull:
		p.matrix = p.matrix.RotateRight()
	case RotateToggle:
		p.toggle()
	}
}

func (p *Piece) toggle() {
	if p.toggled {
		p.matrix = p.matrix.RotateRight()
		p.toggled = false
		return
	}
	p.matrix = p.matrix.RotateLeft()
	p.toggled = true
}

// Cells returns the board coordinates of every occupied cell.
func (p *Piece) Cells() []Point {
	local := p.matrix.Cells()
	points := make([]Point, len(local))
	for idx, c := range local {
		points[idx] = Point{Col: p.anchor.Col + c[0], Row: p.anchor.Row + c[1]}
	}
	return points
}

func (p *Piece) lock() {
	p.locked = true
}
