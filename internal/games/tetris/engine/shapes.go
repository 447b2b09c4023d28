// Package engine implements the rules of the falling-block game: the piece
// catalog, the 7-bag randomizer, the board, and the game state machine with
// its gravity clock. It has no terminal or rendering dependencies.
package engine

import (
	"strings"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindS
	KindZ
	KindJ
	KindL
)

// KindCount is the number of distinct tetrominoes.
const KindCount = 7

// MatrixSize is the side length of every shape matrix.
const MatrixSize = 4

// Kinds lists all tetrominoes in catalog order.
var Kinds = [KindCount]Kind{KindI, KindO, KindT, KindS, KindZ, KindJ, KindL}

// Matrix is a 4x4 occupancy grid, indexed [row][col]. Cells are 0 or 1.
type Matrix [MatrixSize][MatrixSize]uint8

var catalog = [KindCount]Matrix{
	KindI: {
		{0, 0, 0, 0},
		{1, 1, 1, 1},
	},
	KindO: {
		{1, 1, 0, 0},
		{1, 1, 0, 0},
	},
	KindT: {
		{0, 1, 0, 0},
		{1, 1, 1, 0},
	},
	KindS: {
		{0, 1, 1, 0},
		{1, 1, 0, 0},
	},
	KindZ: {
		{1, 1, 0, 0},
		{0, 1, 1, 0},
	},
	KindJ: {
		{1, 0, 0, 0},
		{1, 1, 1, 0},
	},
	KindL: {
		{0, 0, 1, 0},
		{1, 1, 1, 0},
	},
}

var kindColors = [KindCount]core.Color{
	KindI: core.ColorCyan,
	KindO: core.ColorYellow,
	KindT: core.ColorMagenta,
	KindS: core.ColorGreen,
	KindZ: core.ColorRed,
	KindJ: core.ColorBlue,
	KindL: core.ColorOrange,
}

// Valid reports whether k is one of the seven kinds.
func (k Kind) Valid() bool {
	return k < KindCount
}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if !k.Valid() {
		return "?"
	}
	return string("IOTSZJL"[k])
}

// Shape returns the spawn orientation. The result is a copy.
func (k Kind) Shape() Matrix {
	if !k.Valid() {
		return Matrix{}
	}
	return catalog[k]
}

// Color returns the display color token of the kind.
func (k Kind) Color() core.Color {
	if !k.Valid() {
		return core.ColorDefault
	}
	return kindColors[k]
}

// Cell returns the value stored in a board cell occupied by this kind.
// Zero is reserved for empty cells.
func (k Kind) Cell() uint8 {
	return uint8(k) + 1
}

// KindFromCell converts a non-empty board cell back to its kind.
func KindFromCell(v uint8) (Kind, bool) {
	if v == 0 || v > KindCount {
		return 0, false
	}
	return Kind(v - 1), true
}

// Rotate returns m rotated 90 degrees clockwise.
func Rotate(m Matrix) Matrix {
	var r Matrix
	for y := range MatrixSize {
		for x := range MatrixSize {
			r[x][MatrixSize-1-y] = m[y][x]
		}
	}
	return r
}

// Count returns the number of occupied cells.
func (m Matrix) Count() int {
	n := 0
	for y := range MatrixSize {
		for x := range MatrixSize {
			if m[y][x] != 0 {
				n++
			}
		}
	}
	return n
}

// String renders the matrix as rows of '#' and '.', separated by '/'.
func (m Matrix) String() string {
	var sb strings.Builder
	for y := range MatrixSize {
		if y > 0 {
			sb.WriteByte('/')
		}
		for x := range MatrixSize {
			if m[y][x] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
	}
	return sb.String()
}
