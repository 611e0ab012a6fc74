package tetris

// Kind identifies one of the seven tetromino shapes. The numeric value is the
// index used by the random factory.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindL
	KindJ
	KindS
	KindZ
	KindT
)

// KindCount is the number of shapes in the library.
const KindCount = 7

var kindNames = [KindCount]string{"I", "O", "L", "J", "S", "Z", "T"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "?"
}

// ParseKind returns the kind for a single-letter shape name.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return 0, false
}

// Rotation selects how a shape responds to rotate commands.
type Rotation uint8

const (
	// RotateFull turns the matrix a quarter turn per command (four states).
	RotateFull Rotation = iota
	// RotateToggle flips between two orientations.
	RotateToggle
	// RotateNone ignores rotation.
	RotateNone
)

func (r Rotation) String() string {
	switch r {
	case RotateFull:
		return "full-4-state"
	case RotateToggle:
		return "toggle-2-state"
	case RotateNone:
		return "none"
	default:
		return "unknown"
	}
}

// Shape is the immutable descriptor a Piece is built from.
type Shape struct {
	Kind     Kind
	Template Matrix
	// Spawn is the initial anchor on a ReferenceCols-wide board.
	Spawn    Point
	Rotation Rotation
	Color    Cell
}

// ReferenceCols is the board width the shape spawn anchors are laid out for.
const ReferenceCols = 10

var shapes = [KindCount]Shape{
	KindI: {
		Kind:     KindI,
		Template: NewMatrix(4, [2]int{2, 0}, [2]int{2, 1}, [2]int{2, 2}, [2]int{2, 3}),
		Spawn:    Point{Col: 2, Row: -3},
		Rotation: RotateToggle,
		Color:    2,
	},
	KindO: {
		Kind:     KindO,
		Template: NewMatrix(4, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 1}, [2]int{2, 2}),
		Spawn:    Point{Col: 3, Row: -2},
		Rotation: RotateNone,
		Color:    4,
	},
	KindL: {
		Kind:     KindL,
		Template: NewMatrix(4, [2]int{0, 2}, [2]int{1, 2}, [2]int{2, 2}, [2]int{2, 1}),
		Spawn:    Point{Col: 3, Row: -2},
		Rotation: RotateFull,
		Color:    8,
	},
	KindJ: {
		Kind:     KindJ,
		Template: NewMatrix(4, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 2}, [2]int{3, 2}),
		Spawn:    Point{Col: 3, Row: -2},
		Rotation: RotateFull,
		Color:    7,
	},
	KindS: {
		Kind:     KindS,
		Template: NewMatrix(4, [2]int{0, 2}, [2]int{1, 2}, [2]int{1, 1}, [2]int{2, 1}),
		Spawn:    Point{Col: 3, Row: -2},
		Rotation: RotateToggle,
		Color:    3,
	},
	KindZ: {
		Kind:     KindZ,
		Template: NewMatrix(4, [2]int{0, 1}, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 2}),
		Spawn:    Point{Col: 3, Row: -2},
		Rotation: RotateToggle,
		Color:    6,
	},
	KindT: {
		Kind:     KindT,
		Template: NewMatrix(3, [2]int{0, 1}, [2]int{1, 1}, [2]int{1, 2}, [2]int{2, 1}),
		Spawn:    Point{Col: 3, Row: -2},
		Rotation: RotateFull,
		Color:    5,
	},
}

// ShapeOf returns the descriptor for k. Panics on an unknown kind.
func ShapeOf(k Kind) Shape {
	if int(k) >= len(shapes) {
		panic("unknown shape kind")
	}
	return shapes[k]
}

// Shapes returns every shape descriptor in factory order.
func Shapes() []Shape {
	out := make([]Shape, len(shapes))
	copy(out, shapes[:])
	return out
}

// Rand is the random source the factory draws shape indices from.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// RandomPiece returns a new piece whose shape is drawn uniformly from the
// library using rng.
func RandomPiece(rng Rand) *Piece {
	return NewPiece(ShapeOf(Kind(rng.IntN(KindCount))))
}
