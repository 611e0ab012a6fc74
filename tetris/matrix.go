package tetris

import (
	"math/bits"
	"strings"
)

// MaxMatrixSize is the largest supported side length of a piece matrix.
const MaxMatrixSize = 4

// Matrix is an immutable square occupancy matrix of side length 1..4.
// Index i is the column offset and j the row offset of a cell, so a cell
// (i, j) lands on the board at (anchor.Col+i, anchor.Row+j).
type Matrix struct {
	size uint8
	bits uint16
}

// NewMatrix creates a matrix of the given side length with the listed
// (i, j) cells occupied. Panics if size is out of range or a cell falls
// outside the matrix.
func NewMatrix(size int, cells ...[2]int) Matrix {
	if size < 1 || size > MaxMatrixSize {
		panic("matrix size out of range")
	}

	m := Matrix{size: uint8(size)}
	for _, c := range cells {
		if c[0] < 0 || c[0] >= size || c[1] < 0 || c[1] >= size {
			panic("matrix cell out of range")
		}
		m = m.with(c[0], c[1])
	}
	return m
}

func (m Matrix) with(i, j int) Matrix {
	m.bits |= 1 << (i*MaxMatrixSize + j)
	return m
}

// Size returns the side length.
func (m Matrix) Size() int {
	return int(m.size)
}

// At reports whether local cell (i, j) is occupied.
func (m Matrix) At(i, j int) bool {
	if i < 0 || j < 0 || i >= int(m.size) || j >= int(m.size) {
		return false
	}
	return m.bits&(1<<(i*MaxMatrixSize+j)) != 0
}

// Count returns the number of occupied cells.
func (m Matrix) Count() int {
	return bits.OnesCount16(m.bits)
}

// RotateLeft returns the matrix rotated a quarter turn: new[i][j] = old[j][n-1-i].
func (m Matrix) RotateLeft() Matrix {
	n := int(m.size)
	r := Matrix{size: m.size}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if m.At(j, n-1-i) {
				r = r.with(i, j)
			}
		}
	}
	return r
}

// RotateRight is the inverse of RotateLeft: new[j][n-1-i] = old[i][j].
func (m Matrix) RotateRight() Matrix {
	n := int(m.size)
	r := Matrix{size: m.size}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if m.At(i, j) {
				r = r.with(j, n-1-i)
			}
		}
	}
	return r
}

// Cells returns the occupied local cells in (i, j) order.
func (m Matrix) Cells() [][2]int {
	cells := make([][2]int, 0, m.Count())
	for i := 0; i < int(m.size); i++ {
		for j := 0; j < int(m.size); j++ {
			if m.At(i, j) {
				cells = append(cells, [2]int{i, j})
			}
		}
	}
	return cells
}

// String draws the matrix as it appears on the board, one line per row
// offset, '#' for occupied and '.' for empty.
func (m Matrix) String() string {
	var sb strings.Builder
	for j := 0; j < int(m.size); j++ {
		if j > 0 {
			sb.WriteByte('\n')
		}
		for i := 0; i < int(m.size); i++ {
			if m.At(i, j) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
